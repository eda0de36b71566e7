package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"strings"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Problem is a diagnostic about a single match expression or pattern.
// Rendering is left to the caller; Error gives a plain text form.
type Problem interface {
	error
	Severity() Severity
	GetLocation() ast.Location
}

func witnessList(ws []typed.Pattern, truncated bool) string {
	s := "\n\t" + strings.Join(common.Map(func(p typed.Pattern) string { return p.String() }, ws), "\n\t")
	if truncated {
		s += "\n\t..."
	}
	return s
}

type NonExhaustiveMatch struct {
	Location  ast.Location
	Witnesses []typed.Pattern
	Truncated bool
}

func (p NonExhaustiveMatch) Severity() Severity { return SeverityError }

func (p NonExhaustiveMatch) GetLocation() ast.Location { return p.Location }

func (p NonExhaustiveMatch) Error() string {
	return common.Error{
		Location: p.Location,
		Message:  "pattern matching is not exhaustive, missing patterns:" + witnessList(p.Witnesses, p.Truncated),
	}.Error()
}

// UnreachableArm flags an arm no value can reach. SubsumedBy lists earlier
// arms that each cover it alone; it is empty when only their union does.
type UnreachableArm struct {
	ArmIndex   int
	Location   ast.Location
	SubsumedBy []int
	Extra      []ast.Location
}

func (p UnreachableArm) Severity() Severity { return SeverityWarning }

func (p UnreachableArm) GetLocation() ast.Location { return p.Location }

func (p UnreachableArm) Error() string {
	msg := fmt.Sprintf("arm %d is unreachable", p.ArmIndex)
	if len(p.SubsumedBy) > 0 {
		msg += fmt.Sprintf(", already covered by arm %s",
			strings.Join(common.Map(func(i int) string { return fmt.Sprint(i) }, p.SubsumedBy), ", "))
	}
	return common.Error{Location: p.Location, Extra: p.Extra, Message: msg}.Error()
}

type OverlappingRange struct {
	ArmA      int
	ArmB      int
	LocationA ast.Location
	LocationB ast.Location
	Overlap   string
}

func (p OverlappingRange) Severity() Severity { return SeverityWarning }

func (p OverlappingRange) GetLocation() ast.Location { return p.LocationB }

func (p OverlappingRange) Error() string {
	return common.Error{
		Location: p.LocationB,
		Extra:    []ast.Location{p.LocationA},
		Message:  fmt.Sprintf("range of arm %d overlaps arm %d on %s", p.ArmB, p.ArmA, p.Overlap),
	}.Error()
}

// GuardRequiresCatchAll is reported when the arms only cover every value if
// their guards are assumed to succeed.
type GuardRequiresCatchAll struct {
	ArmIndex  int
	Location  ast.Location
	Witnesses []typed.Pattern
}

func (p GuardRequiresCatchAll) Severity() Severity { return SeverityError }

func (p GuardRequiresCatchAll) GetLocation() ast.Location { return p.Location }

func (p GuardRequiresCatchAll) Error() string {
	return common.Error{
		Location: p.Location,
		Message: "guarded arms need an unguarded fallback, values reaching the end when guards fail:" +
			witnessList(p.Witnesses, false),
	}.Error()
}

type InconsistentOrBinding struct {
	Location ast.Location
	Expected []ast.Identifier
	Found    []ast.Identifier
	Detail   string
}

func (p InconsistentOrBinding) Severity() Severity { return SeverityError }

func (p InconsistentOrBinding) GetLocation() ast.Location { return p.Location }

func (p InconsistentOrBinding) Error() string {
	names := func(xs []ast.Identifier) string {
		return "{" + strings.Join(common.Map(func(x ast.Identifier) string { return string(x) }, xs), ", ") + "}"
	}
	msg := fmt.Sprintf("alternatives of or-pattern bind different variables: expected %s, found %s",
		names(p.Expected), names(p.Found))
	if p.Detail != "" {
		msg = "alternatives of or-pattern bind variables of different types: " + p.Detail
	}
	return common.Error{Location: p.Location, Message: msg}.Error()
}

type DuplicateBinding struct {
	Location ast.Location
	Name     ast.Identifier
}

func (p DuplicateBinding) Severity() Severity { return SeverityError }

func (p DuplicateBinding) GetLocation() ast.Location { return p.Location }

func (p DuplicateBinding) Error() string {
	return common.Error{
		Location: p.Location,
		Message:  fmt.Sprintf("variable `%s` is bound more than once in the same pattern", p.Name),
	}.Error()
}

// RefutablePattern is reported for a destructuring pattern that can fail.
type RefutablePattern struct {
	Location  ast.Location
	Witnesses []typed.Pattern
	Truncated bool
}

func (p RefutablePattern) Severity() Severity { return SeverityError }

func (p RefutablePattern) GetLocation() ast.Location { return p.Location }

func (p RefutablePattern) Error() string {
	return common.Error{
		Location: p.Location,
		Message:  "refutable pattern in irrefutable position, not covered:" + witnessList(p.Witnesses, p.Truncated),
	}.Error()
}
