package bot

import "errors"

var (
	ErrInvalidHours    = errors.New("hours must be between 1 and 168")
	ErrInvalidMonths   = errors.New("months must be greater than zero")
	ErrInvalidInterval = errors.New("interval minutes must be greater than zero")
)
