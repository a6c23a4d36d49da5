// Package models defines the record types for near-Earth objects and their
// close approaches to Earth.
//
// Both types are constructed once from parsed input rows and are immutable
// afterwards, except for the one-time linking step performed by the database
// package: it attaches each approach to its object and each object to its
// approaches.
package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NearEarthObject represents a single near-Earth object (NEO).
//
// Each NEO has a unique primary designation, an optional IAU name, an optional
// diameter in kilometers, and a flag marking it as potentially hazardous.
// An unknown diameter is stored as NaN rather than a separate presence flag,
// matching the source dataset where the column is simply empty.
type NearEarthObject struct {
	// Designation is the primary designation, unique across the dataset.
	Designation string

	// Name is the IAU name. Empty when the object has no name.
	Name string

	// Diameter is the estimated diameter in kilometers. NaN when unknown.
	Diameter float64

	// Hazardous reports whether the object is marked potentially hazardous.
	Hazardous bool

	// Approaches holds this object's close approaches in input order.
	// Populated by the database linker, never by the object itself.
	Approaches []*CloseApproach
}

// NewNearEarthObject builds a NEO from the raw string fields of a dataset row.
// An empty diameter becomes NaN; the hazard column uses "Y" for true, anything
// else for false.
func NewNearEarthObject(designation, name, diameter, hazardous string) (*NearEarthObject, error) {
	designation = strings.TrimSpace(designation)
	if designation == "" {
		return nil, fmt.Errorf("near-Earth object is missing its designation")
	}

	diam := math.NaN()
	if d := strings.TrimSpace(diameter); d != "" {
		parsed, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return nil, fmt.Errorf("object %s: invalid diameter %q: %w", designation, diameter, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("object %s: negative diameter %v", designation, parsed)
		}
		diam = parsed
	}

	return &NearEarthObject{
		Designation: designation,
		Name:        strings.TrimSpace(name),
		Diameter:    diam,
		Hazardous:   hazardous == "Y",
	}, nil
}

// DiameterKnown reports whether the diameter was present in the source data.
func (n *NearEarthObject) DiameterKnown() bool {
	return !math.IsNaN(n.Diameter)
}

// Fullname returns the display name combining designation and name, such as
// "433 (Eros)". Objects without a name render as the designation alone.
func (n *NearEarthObject) Fullname() string {
	if n.Name == "" {
		return n.Designation
	}
	return fmt.Sprintf("%s (%s)", n.Designation, n.Name)
}

// String returns a human-readable one-line description.
func (n *NearEarthObject) String() string {
	hazard := "is not"
	if n.Hazardous {
		hazard = "is"
	}
	if !n.DiameterKnown() {
		return fmt.Sprintf("NEO %s has an unknown diameter and %s potentially hazardous.", n.Fullname(), hazard)
	}
	return fmt.Sprintf("NEO %s has a diameter of %.3f km and %s potentially hazardous.", n.Fullname(), n.Diameter, hazard)
}
