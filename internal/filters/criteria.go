package filters

import (
	"log/slog"
	"time"

	"github.com/neoscout/neoscout/internal/logger"
)

// Criteria is the set of optional query options. A nil field means the caller
// did not supply that option; a non-nil field is a concrete value even when
// it is falsy. In particular Hazardous pointing at false selects only
// non-hazardous objects, which is different from leaving it unset.
type Criteria struct {
	// Date selects approaches occurring on exactly this UTC date.
	Date *time.Time
	// StartDate selects approaches on or after this UTC date.
	StartDate *time.Time
	// EndDate selects approaches on or before this UTC date.
	EndDate *time.Time

	// DistanceMin and DistanceMax bound the approach distance in au.
	DistanceMin *float64
	DistanceMax *float64

	// VelocityMin and VelocityMax bound the relative velocity in km/s.
	VelocityMin *float64
	VelocityMax *float64

	// DiameterMin and DiameterMax bound the linked object's diameter in km.
	// Objects with an unknown diameter never satisfy either bound.
	DiameterMin *float64
	DiameterMax *float64

	// Hazardous selects by the linked object's hazard flag.
	Hazardous *bool
}

// option pairs one criteria field with its attribute and operator. The slice
// below is the full option-to-predicate mapping in a fixed order.
type option struct {
	attr Attribute
	op   Op
	ref  func(c Criteria) (any, bool)
}

var options = []option{
	{AttrTime, OpEq, func(c Criteria) (any, bool) { return deref(c.Date) }},
	{AttrTime, OpGE, func(c Criteria) (any, bool) { return deref(c.StartDate) }},
	{AttrTime, OpLE, func(c Criteria) (any, bool) { return deref(c.EndDate) }},
	{AttrDistance, OpGE, func(c Criteria) (any, bool) { return deref(c.DistanceMin) }},
	{AttrDistance, OpLE, func(c Criteria) (any, bool) { return deref(c.DistanceMax) }},
	{AttrVelocity, OpGE, func(c Criteria) (any, bool) { return deref(c.VelocityMin) }},
	{AttrVelocity, OpLE, func(c Criteria) (any, bool) { return deref(c.VelocityMax) }},
	{AttrDiameter, OpGE, func(c Criteria) (any, bool) { return deref(c.DiameterMin) }},
	{AttrDiameter, OpLE, func(c Criteria) (any, bool) { return deref(c.DiameterMax) }},
	{AttrHazardous, OpEq, func(c Criteria) (any, bool) { return deref(c.Hazardous) }},
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Build translates the set options into one comparison filter each, plus the
// list of attributes those filters read. Unset options contribute nothing; an
// empty Criteria yields an empty filter slice, which the query engine treats
// as "match everything".
func (c Criteria) Build() ([]Filter, []Attribute, error) {
	var built []Filter
	var attrs []Attribute

	for _, opt := range options {
		ref, set := opt.ref(c)
		if !set {
			continue
		}
		f, err := NewFilter(opt.attr, opt.op, ref)
		if err != nil {
			return nil, nil, err
		}
		built = append(built, f)
		attrs = append(attrs, opt.attr)
	}

	logger.Debug("built query filters", slog.Int("count", len(built)))
	return built, attrs, nil
}

// Predicates converts built filters to the interface slice the query engine
// consumes.
func Predicates(fs []Filter) []Predicate {
	preds := make([]Predicate, len(fs))
	for i, f := range fs {
		preds[i] = f
	}
	return preds
}
