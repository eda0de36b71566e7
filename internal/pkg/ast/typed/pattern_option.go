package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/common"
)

// PVariant destructures one option of a sum type.
type PVariant struct {
	patternBase
	Name ast.DataOptionIdentifier
	Args []Pattern
}

func NewPVariant(loc ast.Location, name ast.DataOptionIdentifier, args ...Pattern) *PVariant {
	return &PVariant{patternBase: patternBase{loc}, Name: name, Args: args}
}

func (*PVariant) _pattern() {}

func (p *PVariant) String() string {
	if len(p.Args) == 0 {
		return p.Name.Short()
	}
	return fmt.Sprintf("%s(%s)", p.Name.Short(), common.Join(p.Args, ", "))
}
