package status

import (
	"net/http"

	"WynwoodBot/pkg/response"
)

var (
	ErrNoChallenge = response.NewError(http.StatusNotFound, "no credential challenge pending")
)
