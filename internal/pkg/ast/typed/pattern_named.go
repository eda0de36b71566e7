package typed

import "nar-match/internal/pkg/ast"

// PBinding matches anything and binds it to Name.
type PBinding struct {
	patternBase
	Name ast.Identifier
}

func NewPBinding(loc ast.Location, name ast.Identifier) *PBinding {
	return &PBinding{patternBase: patternBase{loc}, Name: name}
}

func (*PBinding) _pattern() {}

func (p *PBinding) String() string {
	return string(p.Name)
}
