package processors

import (
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
)

// CheckIrrefutable checks a pattern used where it cannot fail, such as the
// left side of a destructuring let. The report is exhaustive when every value
// of t matches.
func (c *Checker) CheckIrrefutable(pattern typed.Pattern, t typed.Type, loc ast.Location) (*Report, error) {
	match := &typed.Match{Location: loc, Scrutinee: t, Arms: []*typed.Arm{{Location: loc, Pattern: pattern}}}
	report := &Report{Match: match}

	problems, err := validateBindings(pattern, t)
	if err != nil {
		return nil, err
	}
	report.Problems = append(report.Problems, problems...)
	if report.HasErrors() {
		return report, nil
	}

	m, err := buildMatrix(match)
	if err != nil {
		return nil, err
	}
	e := newEngine(c.config.Limits)
	witnesses, truncated, err := e.witnesses(m, t, c.config.WitnessCap)
	if err != nil {
		return nil, err
	}
	report.Exhaustive = len(witnesses) == 0
	if !report.Exhaustive {
		if loc.IsEmpty() {
			loc = pattern.GetLocation()
		}
		report.Problems = append(report.Problems, RefutablePattern{
			Location:  loc,
			Witnesses: witnesses,
			Truncated: truncated,
		})
	}
	report.Plan, err = buildPlan(match, c.config.Limits.MaxSteps)
	if err != nil {
		return nil, err
	}
	return report, nil
}
