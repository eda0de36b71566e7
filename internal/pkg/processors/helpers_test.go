package processors

import (
	"nar-match/internal/pkg/ast"
)

// guardStub stands in for a guard expression; the checker never evaluates guards.
type guardStub struct{}

func (guardStub) String() string { return "cond" }

func (guardStub) GetLocation() ast.Location { return ast.Location{} }
