// Package clock provides the single source of "now" for the whole shop.
// All date comparisons happen in one fixed civil time zone, never in the
// uploader's local time.
package clock

import "time"

// Clock yields the current instant and the shop's fixed zone.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type fixedZoneClock struct {
	loc *time.Location
}

// NewFixedZone returns a Clock pinned to the named IANA zone. Falls back
// to UTC if the zone database does not know the name.
func NewFixedZone(name string) Clock {
	loc, err := time.LoadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	return &fixedZoneClock{loc: loc}
}

func (c *fixedZoneClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *fixedZoneClock) Location() *time.Location { return c.loc }

// DateOf truncates t to a civil date in loc. Two instants compare equal
// under the date rule iff their DateOf values are equal.
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
