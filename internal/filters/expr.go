package filters

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/neoscout/neoscout/internal/logger"
	"github.com/neoscout/neoscout/internal/models"
)

// ErrInvalidExpression is returned when a where-expression fails to compile.
var ErrInvalidExpression = errors.New("invalid expression syntax")

// ExprPredicate evaluates a user-supplied boolean expression against each
// linked approach. It complements the fixed criteria options with free-form
// conditions such as "distance < 0.5 && hazardous".
//
// The environment exposes the approach fields (designation, time, datetime,
// distance, velocity) and the linked object's fields (name, diameter,
// hazardous). An evaluation error excludes the record and logs a warning; it
// does not abort the query.
type ExprPredicate struct {
	source  string
	program *vm.Program
}

// NewExprPredicate compiles a where-expression. The expression must produce a
// boolean. AllowUndefinedVariables keeps records with missing fields from
// failing compilation; they fail evaluation instead and are excluded.
func NewExprPredicate(source string) (*ExprPredicate, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	logger.Debug("compiled where-expression", slog.String("expression", source))
	return &ExprPredicate{source: source, program: program}, nil
}

// Source returns the original expression text.
func (p *ExprPredicate) Source() string {
	return p.source
}

// Matches evaluates the expression for one approach.
func (p *ExprPredicate) Matches(ca *models.CloseApproach) bool {
	env := map[string]any{
		"designation": ca.Designation,
		"time":        ca.Time,
		"datetime":    ca.TimeStr(),
		"distance":    ca.Distance,
		"velocity":    ca.Velocity,
	}
	if ca.NEO != nil {
		env["name"] = ca.NEO.Name
		env["diameter"] = ca.NEO.Diameter
		env["hazardous"] = ca.NEO.Hazardous
	}

	out, err := expr.Run(p.program, env)
	if err != nil {
		logger.Warn("where-expression evaluation failed; record excluded",
			slog.String("expression", p.source),
			slog.String("designation", ca.Designation),
			slog.String("error", err.Error()),
		)
		return false
	}

	result, ok := out.(bool)
	return ok && result
}
