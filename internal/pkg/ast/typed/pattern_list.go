package typed

import (
	"nar-match/internal/pkg/ast"
	"strings"
)

// PList matches lists. Without a rest marker the list length must equal
// len(Prefix); with one it must be at least len(Prefix)+len(Suffix).
type PList struct {
	patternBase
	Prefix   []Pattern
	HasRest  bool
	RestName ast.Identifier
	Suffix   []Pattern
}

func NewPList(loc ast.Location, items ...Pattern) *PList {
	return &PList{patternBase: patternBase{loc}, Prefix: items}
}

func NewPListRest(loc ast.Location, prefix []Pattern, restName ast.Identifier, suffix []Pattern) *PList {
	return &PList{patternBase: patternBase{loc}, Prefix: prefix, HasRest: true, RestName: restName, Suffix: suffix}
}

func (*PList) _pattern() {}

func (p *PList) String() string {
	parts := make([]string, 0, len(p.Prefix)+len(p.Suffix)+1)
	for _, x := range p.Prefix {
		parts = append(parts, x.String())
	}
	if p.HasRest {
		parts = append(parts, ".."+string(p.RestName))
	}
	for _, x := range p.Suffix {
		parts = append(parts, x.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// MinLen is the shortest list the pattern can match.
func (p *PList) MinLen() int {
	return len(p.Prefix) + len(p.Suffix)
}
