// Package timezone resolves IANA zone names for the parser and the CLI.
package timezone

import (
	"time"

	"github.com/pkg/errors"
)

// Parse parses an IANA timezone identifier (e.g., "Asia/Shanghai").
// An empty name means UTC.
func Parse(tz string) (*time.Location, error) {
	if tz == "" || tz == "UTC" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", tz)
	}
	return loc, nil
}

// Resolve parses tz, returning fallback if it is not a valid zone.
// A nil fallback means time.Local.
func Resolve(tz string, fallback *time.Location) *time.Location {
	if loc, err := Parse(tz); err == nil {
		return loc
	}
	if fallback == nil {
		return time.Local
	}
	return fallback
}
