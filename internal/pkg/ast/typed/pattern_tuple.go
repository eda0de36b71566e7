package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/common"
)

type PTuple struct {
	patternBase
	Items []Pattern
}

func NewPTuple(loc ast.Location, items ...Pattern) *PTuple {
	return &PTuple{patternBase: patternBase{loc}, Items: items}
}

func (*PTuple) _pattern() {}

func (p *PTuple) String() string {
	return fmt.Sprintf("(%s)", common.Join(p.Items, ", "))
}
