package numerology

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid birth date")

var birthDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// ParseBirthDate accepts ISO dates (optionally with a time part) and the
// Brazilian DD/MM/YYYY form. Only the calendar day is kept.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range birthDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
