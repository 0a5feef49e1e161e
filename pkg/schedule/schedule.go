package schedule

import (
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
)

// DayHours is one weekday's opening window. Hours are whole hours in the
// business timezone; Closed overrides Start/End.
type DayHours struct {
	Closed bool `json:"closed"`
	Start  int  `json:"start"`
	End    int  `json:"end"`
}

// BusinessHours answers open/closed for any instant from a static weekday
// table plus a year-independent holiday set. It holds no runtime state.
type BusinessHours struct {
	days     map[time.Weekday]DayHours
	holidays map[string]bool // "01-02" month-day keys
}

type tableConfig struct {
	Days     map[string]DayHours `json:"days"`
	Holidays []string            `json:"holidays"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// New builds the oracle from the BOT_SCHEDULE env var (JSON) when present,
// otherwise from the default storefront table: Mon-Fri 09-18, Sat 10-13,
// Sun closed, holidays Jan 1 and Dec 25.
func New() (*BusinessHours, error) {
	raw := os.Getenv("BOT_SCHEDULE")
	if raw == "" {
		return Default(), nil
	}

	var cfg tableConfig
	if err := jsoniter.Unmarshal([]byte(raw), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse BOT_SCHEDULE: %w", err)
	}

	days := make(map[time.Weekday]DayHours, 7)
	for name, dh := range cfg.Days {
		wd, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in BOT_SCHEDULE", name)
		}
		days[wd] = dh
	}

	holidays := make(map[string]bool, len(cfg.Holidays))
	for _, h := range cfg.Holidays {
		holidays[h] = true
	}

	return &BusinessHours{days: days, holidays: holidays}, nil
}

func Default() *BusinessHours {
	weekday := DayHours{Start: 9, End: 18}
	return &BusinessHours{
		days: map[time.Weekday]DayHours{
			time.Monday:    weekday,
			time.Tuesday:   weekday,
			time.Wednesday: weekday,
			time.Thursday:  weekday,
			time.Friday:    weekday,
			time.Saturday:  {Start: 10, End: 13},
			time.Sunday:    {Closed: true},
		},
		holidays: map[string]bool{
			"01-01": true,
			"12-25": true,
		},
	}
}

// IsOpen reports whether the store is open at t. Holiday dates match on
// month-day regardless of year. Resolution is one hour: the boundary hour
// rounds down, so the store is open at Start:00 and closed at End:00.
func (b *BusinessHours) IsOpen(t time.Time) bool {
	if b.holidays[t.Format("01-02")] {
		return false
	}

	day, ok := b.days[t.Weekday()]
	if !ok || day.Closed {
		return false
	}

	return t.Hour() >= day.Start && t.Hour() < day.End
}

// NextOpening scans forward from t up to seven days for the next opening
// boundary. A false second return means the table never opens, which is a
// configuration error rather than a runtime condition.
func (b *BusinessHours) NextOpening(t time.Time) (time.Time, bool) {
	for addDays := 0; addDays < 7; addDays++ {
		d := t.AddDate(0, 0, addDays)
		if b.holidays[d.Format("01-02")] {
			continue
		}

		day, ok := b.days[d.Weekday()]
		if !ok || day.Closed {
			continue
		}

		opening := time.Date(d.Year(), d.Month(), d.Day(), day.Start, 0, 0, 0, t.Location())
		if opening.After(t) {
			return opening, true
		}
	}

	return time.Time{}, false
}

// NextClosing returns end-of-today when open, otherwise the end boundary of
// the next opening day.
func (b *BusinessHours) NextClosing(t time.Time) time.Time {
	if b.IsOpen(t) {
		day := b.days[t.Weekday()]
		return time.Date(t.Year(), t.Month(), t.Day(), day.End, 0, 0, 0, t.Location())
	}

	opening, ok := b.NextOpening(t)
	if !ok {
		return time.Time{}
	}

	day := b.days[opening.Weekday()]
	return time.Date(opening.Year(), opening.Month(), opening.Day(), day.End, 0, 0, 0, t.Location())
}
