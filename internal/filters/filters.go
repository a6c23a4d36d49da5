// Package filters builds predicates over linked close approach records and
// provides the limit primitive for truncating result streams.
//
// A Filter is a single-attribute comparison: (operator, reference value,
// attribute). Attribute resolution goes through a fixed dispatch table so one
// filter type serves both approach-level attributes (time, distance,
// velocity) and object-level attributes (diameter, hazardous) without a
// separate type per attribute.
package filters

import (
	"fmt"
	"time"

	"github.com/neoscout/neoscout/internal/models"
	"github.com/neoscout/neoscout/internal/timeutil"
)

// Error codes for filter construction.
const (
	ErrCodeUnsupportedCriterion = "UNSUPPORTED_CRITERION"
	ErrCodeInvalidExpression    = "INVALID_EXPRESSION"
)

// Attribute identifies which field of a linked close approach a filter reads.
type Attribute string

// Recognized attributes. Diameter and hazardous live on the linked NEO, the
// rest on the approach itself; the dispatch table hides that distinction.
const (
	AttrTime      Attribute = "time"
	AttrDistance  Attribute = "distance"
	AttrVelocity  Attribute = "velocity"
	AttrDiameter  Attribute = "diameter"
	AttrHazardous Attribute = "hazardous"
)

// Op is the comparison applied between the attribute value and the reference.
type Op int

// Supported comparison operators.
const (
	OpEq Op = iota
	OpGE
	OpLE
)

func (op Op) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpGE:
		return ">="
	case OpLE:
		return "<="
	default:
		return fmt.Sprintf("Op(%d)", int(op))
	}
}

// UnsupportedCriterionError reports an attribute with no dispatch rule.
// It signals a programming defect: the attribute table is exhaustive for
// every criterion the builder can produce.
type UnsupportedCriterionError struct {
	Attr Attribute
}

func (e *UnsupportedCriterionError) Error() string {
	return fmt.Sprintf("%s: no accessor for attribute %q", ErrCodeUnsupportedCriterion, e.Attr)
}

// Predicate is the contract the query engine evaluates: true keeps the
// approach in the result stream.
type Predicate interface {
	Matches(ca *models.CloseApproach) bool
}

// valueKind tags the comparable form an attribute resolves to.
type valueKind int

const (
	kindNumber valueKind = iota
	kindDate
	kindBool
)

// value is a comparison operand: a number, a UTC date, or a boolean flag.
// valid is false when the attribute is unknown for the record, such as a
// missing diameter; an invalid value satisfies no comparison.
type value struct {
	kind  valueKind
	num   float64
	date  time.Time
	flag  bool
	valid bool
}

func numberValue(v float64) value { return value{kind: kindNumber, num: v, valid: true} }
func dateValue(t time.Time) value {
	return value{kind: kindDate, date: timeutil.DateOnly(t), valid: true}
}
func boolValue(b bool) value { return value{kind: kindBool, flag: b, valid: true} }

// attributes maps each recognized attribute to its comparable kind and a
// typed accessor resolving the value from a linked approach. The time
// accessor truncates to the date component because every date criterion
// compares whole days.
var attributes = map[Attribute]struct {
	kind valueKind
	get  func(ca *models.CloseApproach) value
}{
	AttrTime: {kindDate, func(ca *models.CloseApproach) value {
		return dateValue(ca.Time)
	}},
	AttrDistance: {kindNumber, func(ca *models.CloseApproach) value {
		return numberValue(ca.Distance)
	}},
	AttrVelocity: {kindNumber, func(ca *models.CloseApproach) value {
		return numberValue(ca.Velocity)
	}},
	AttrDiameter: {kindNumber, func(ca *models.CloseApproach) value {
		if ca.NEO == nil || !ca.NEO.DiameterKnown() {
			return value{kind: kindNumber}
		}
		return numberValue(ca.NEO.Diameter)
	}},
	AttrHazardous: {kindBool, func(ca *models.CloseApproach) value {
		if ca.NEO == nil {
			return value{kind: kindBool}
		}
		return boolValue(ca.NEO.Hazardous)
	}},
}

// Filter compares one attribute of a linked close approach against a
// reference value. Construct filters with NewFilter or Criteria.Build.
type Filter struct {
	attr Attribute
	op   Op
	ref  value
}

// NewFilter builds a comparison filter for a single attribute. The reference
// value must match the attribute's kind: float64 for distance, velocity and
// diameter, time.Time for time (compared by UTC date), bool for hazardous.
// An attribute with no dispatch rule fails with UnsupportedCriterionError.
func NewFilter(attr Attribute, op Op, ref any) (Filter, error) {
	entry, ok := attributes[attr]
	if !ok {
		return Filter{}, &UnsupportedCriterionError{Attr: attr}
	}

	var rv value
	switch r := ref.(type) {
	case float64:
		rv = numberValue(r)
	case time.Time:
		rv = dateValue(r)
	case bool:
		rv = boolValue(r)
	default:
		return Filter{}, fmt.Errorf("unsupported reference value type %T for attribute %q", ref, attr)
	}
	if rv.kind != entry.kind {
		return Filter{}, fmt.Errorf("reference value %v does not match the kind of attribute %q", ref, attr)
	}
	if entry.kind == kindBool && op != OpEq {
		return Filter{}, fmt.Errorf("attribute %q supports only equality", attr)
	}

	return Filter{attr: attr, op: op, ref: rv}, nil
}

// Attr returns the attribute this filter reads.
func (f Filter) Attr() Attribute {
	return f.attr
}

// Matches reports whether the approach satisfies the comparison. An approach
// whose attribute value is unknown (an unlinked record or an unknown
// diameter) never matches.
func (f Filter) Matches(ca *models.CloseApproach) bool {
	got := attributes[f.attr].get(ca)
	if !got.valid {
		return false
	}

	switch got.kind {
	case kindNumber:
		switch f.op {
		case OpEq:
			return got.num == f.ref.num
		case OpGE:
			return got.num >= f.ref.num
		case OpLE:
			return got.num <= f.ref.num
		}
	case kindDate:
		c := got.date.Compare(f.ref.date)
		switch f.op {
		case OpEq:
			return c == 0
		case OpGE:
			return c >= 0
		case OpLE:
			return c <= 0
		}
	case kindBool:
		return got.flag == f.ref.flag
	}
	return false
}

// String renders the filter for logs and debugging, e.g. "distance <= 0.5".
func (f Filter) String() string {
	var ref string
	switch f.ref.kind {
	case kindNumber:
		ref = fmt.Sprintf("%v", f.ref.num)
	case kindDate:
		ref = f.ref.date.Format("2006-01-02")
	case kindBool:
		ref = fmt.Sprintf("%t", f.ref.flag)
	}
	return fmt.Sprintf("%s %s %s", f.attr, f.op, ref)
}
