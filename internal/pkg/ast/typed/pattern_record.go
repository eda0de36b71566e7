package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"strings"
)

type PField struct {
	Name    ast.Identifier
	Pattern Pattern
}

// PStruct destructures named fields. Unlisted fields are only allowed with HasRest.
type PStruct struct {
	patternBase
	Fields  []PField
	HasRest bool
}

func NewPStruct(loc ast.Location, hasRest bool, fields ...PField) *PStruct {
	return &PStruct{patternBase: patternBase{loc}, Fields: fields, HasRest: hasRest}
}

func (*PStruct) _pattern() {}

func (p *PStruct) String() string {
	parts := make([]string, 0, len(p.Fields)+1)
	for _, f := range p.Fields {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Name, f.Pattern))
	}
	if p.HasRest {
		parts = append(parts, "..")
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

func (p *PStruct) Field(name ast.Identifier) (Pattern, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Pattern, true
		}
	}
	return nil, false
}
