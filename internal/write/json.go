package write

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"

	"github.com/neoscout/neoscout/internal/models"
)

// approachRecord is one element of the JSON output: the approach's own fields
// plus a nested object for the linked NEO.
type approachRecord struct {
	DatetimeUTC string    `json:"datetime_utc"`
	DistanceAU  float64   `json:"distance_au"`
	VelocityKmS float64   `json:"velocity_km_s"`
	NEO         neoRecord `json:"neo"`
}

// neoRecord captures all four fields of the linked object. An unknown
// diameter marshals as null because JSON has no NaN literal; a missing name
// marshals as the empty string.
type neoRecord struct {
	Designation          string   `json:"designation"`
	Name                 string   `json:"name"`
	DiameterKm           *float64 `json:"diameter_km"`
	PotentiallyHazardous bool     `json:"potentially_hazardous"`
}

// ToJSON writes the result stream as a JSON list, in stream order. An empty
// stream produces an empty list, not null.
func ToJSON(results iter.Seq[*models.CloseApproach], path string) error {
	records := make([]approachRecord, 0)
	for ca := range results {
		rec := approachRecord{
			DatetimeUTC: ca.TimeStr(),
			DistanceAU:  ca.Distance,
			VelocityKmS: ca.Velocity,
			NEO: neoRecord{
				Designation:          ca.NEO.Designation,
				Name:                 ca.NEO.Name,
				PotentiallyHazardous: ca.NEO.Hazardous,
			},
		}
		if ca.NEO.DiameterKnown() {
			diameter := ca.NEO.Diameter
			rec.NEO.DiameterKm = &diameter
		}
		records = append(records, rec)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
