package typed

import "nar-match/internal/pkg/ast"

type PWildcard struct {
	patternBase
}

func NewPWildcard(loc ast.Location) *PWildcard {
	return &PWildcard{patternBase: patternBase{loc}}
}

func (*PWildcard) _pattern() {}

func (p *PWildcard) String() string {
	return "_"
}
