package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrMalformedTimestamp input is not an ISO-8601 date or date-time.
var ErrMalformedTimestamp = errors.New("malformed timestamp")

// offset-carrying layouts are tried first so "Z" and "+03:00" are honored
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses the ISO-8601 shapes browsers and clients send for
// datetime-local fields. A space is accepted in place of the T separator.
// Values without an offset are taken as UTC. The result is always in UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrMalformedTimestamp
}
