package processors

import (
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

// Report collects everything the checker found out about one match.
type Report struct {
	Match      *typed.Match
	Exhaustive bool
	Problems   []Problem
	Plan       *Plan
}

func (r *Report) Errors() []Problem {
	return common.Filter(func(p Problem) bool { return p.Severity() == SeverityError }, r.Problems)
}

func (r *Report) Warnings() []Problem {
	return common.Filter(func(p Problem) bool { return p.Severity() == SeverityWarning }, r.Problems)
}

func (r *Report) HasErrors() bool {
	return common.Any(func(p Problem) bool { return p.Severity() == SeverityError }, r.Problems)
}
