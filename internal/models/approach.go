package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/neoscout/neoscout/internal/timeutil"
)

// CloseApproach represents a close approach to Earth by an NEO.
//
// It records the date and time (UTC, minute precision) of closest approach,
// the nominal approach distance in astronomical units, and the relative
// approach velocity in kilometers per second.
type CloseApproach struct {
	// Designation identifies the approached object. It is the foreign key
	// resolved by the database linker.
	Designation string

	// Time is the moment of closest approach in UTC.
	Time time.Time

	// Distance is the nominal approach distance in astronomical units.
	Distance float64

	// Velocity is the relative approach velocity in km/s.
	Velocity float64

	// NEO points at the approached object. Nil until the database linker
	// assigns it, exactly once.
	NEO *NearEarthObject
}

// NewCloseApproach builds a close approach from the raw string fields of a
// dataset row. The timestamp uses the compact calendar format, for example
// "2025-Nov-30 02:18".
func NewCloseApproach(designation, calendar, distance, velocity string) (*CloseApproach, error) {
	if designation == "" {
		return nil, fmt.Errorf("close approach is missing its designation")
	}

	t, err := timeutil.ParseCalendar(calendar)
	if err != nil {
		return nil, fmt.Errorf("approach of %s: %w", designation, err)
	}

	dist, err := strconv.ParseFloat(distance, 64)
	if err != nil {
		return nil, fmt.Errorf("approach of %s: invalid distance %q: %w", designation, distance, err)
	}

	vel, err := strconv.ParseFloat(velocity, 64)
	if err != nil {
		return nil, fmt.Errorf("approach of %s: invalid velocity %q: %w", designation, velocity, err)
	}

	return &CloseApproach{
		Designation: designation,
		Time:        t,
		Distance:    dist,
		Velocity:    vel,
	}, nil
}

// TimeStr returns the approach time in the fixed human-readable form without
// seconds, matching the precision of the source data.
func (c *CloseApproach) TimeStr() string {
	return timeutil.FormatDisplay(c.Time)
}

// Fullname returns the display name of the approached object. Falls back to
// the bare designation when the approach has not been linked yet.
func (c *CloseApproach) Fullname() string {
	if c.NEO != nil {
		return c.NEO.Fullname()
	}
	return c.Designation
}

// String returns a human-readable one-line description.
func (c *CloseApproach) String() string {
	return fmt.Sprintf("At %s, %q approaches Earth at a distance of %.2f au and a velocity of %.2f km/s.",
		c.TimeStr(), c.Fullname(), c.Distance, c.Velocity)
}
