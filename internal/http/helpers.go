package http

import (
	"net/http"
	"strings"
	"time"

	"daftar/internal/core"
)

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// parseWindowQuery extracts the reference date and period type from
// query parameters. Defaults: today (UTC, matching stored day values),
// monthly.
func parseWindowQuery(r *http.Request) (time.Time, core.PeriodType, error) {
	ref := time.Now().UTC()
	if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return time.Time{}, "", core.ErrInvalidDate
		}
		ref = d.Time
	}

	period := core.Monthly
	if v := strings.TrimSpace(r.URL.Query().Get("period")); v != "" {
		period = core.PeriodType(strings.ToLower(v))
	}
	if err := period.Validate(); err != nil {
		return time.Time{}, "", err
	}

	return ref, period, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
