package timeutil

import (
	"time"

	"go-events-api/core/errors"
)

// Layouts accepted for local wall-clock input (no zone offset). The form UIs
// submit "YYYY-MM-DDTHH:mm"; records coming back from the store carry full
// RFC-3339 instants.
var localLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// DefaultDisplayLayout is used by FormatInTZ when the caller passes no layout.
const DefaultDisplayLayout = "Jan 2, 2006 3:04 PM"

// ParseInstant parses a persisted timestamp. All persisted timestamps are
// UTC RFC-3339, but it also tolerates the local layouts (interpreted as UTC)
// so a hand-edited record does not wedge the scheduler.
func ParseInstant(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.NewAppError(errors.ErrInvalidDate, "empty timestamp", nil)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewAppError(errors.ErrInvalidDate, "invalid timestamp: "+s, nil)
}

// ToUTCISO converts a local wall-clock string in the given IANA zone into a
// UTC RFC-3339 string ending in Z. An input that already carries an offset is
// normalized to UTC as-is.
func ToUTCISO(local string, zone string) (string, error) {
	if t, err := time.Parse(time.RFC3339, local); err == nil {
		return t.UTC().Format(time.RFC3339), nil
	}

	loc, err := loadZone(zone)
	if err != nil {
		return "", err
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, local, loc); err == nil {
			return t.UTC().Format(time.RFC3339), nil
		}
	}
	return "", errors.NewAppError(errors.ErrInvalidDate, "invalid date string: "+local, nil)
}

// FormatInTZ renders a UTC instant for display in the given IANA zone. The
// optional layout overrides DefaultDisplayLayout.
func FormatInTZ(utcISO string, zone string, layout ...string) (string, error) {
	t, err := ParseInstant(utcISO)
	if err != nil {
		return "", err
	}
	loc, err := loadZone(zone)
	if err != nil {
		return "", err
	}
	l := DefaultDisplayLayout
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}
	return t.In(loc).Format(l), nil
}

func loadZone(zone string) (*time.Location, error) {
	if zone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidDate, "unknown time zone: "+zone, err)
	}
	return loc, nil
}
