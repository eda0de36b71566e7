package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
)

// Pattern is a node of the pattern tree. Nodes are immutable once built.
type Pattern interface {
	fmt.Stringer
	_pattern()
	GetLocation() ast.Location
}

type patternBase struct {
	ast.Location
}

func (p patternBase) GetLocation() ast.Location {
	return p.Location
}

// PLiteral matches a single constant. Int, Bool, Char, String, Float and Unit
// constants are accepted.
type PLiteral struct {
	patternBase
	Value ast.ConstValue
}

func NewPLiteral(loc ast.Location, value ast.ConstValue) *PLiteral {
	return &PLiteral{patternBase: patternBase{loc}, Value: value}
}

func (*PLiteral) _pattern() {}

func (p *PLiteral) String() string {
	return p.Value.String()
}

// PRange matches Int or Char values between Low and High.
type PRange struct {
	patternBase
	Low       ast.ConstValue
	High      ast.ConstValue
	Inclusive bool
}

func NewPRange(loc ast.Location, low, high ast.ConstValue, inclusive bool) *PRange {
	return &PRange{patternBase: patternBase{loc}, Low: low, High: high, Inclusive: inclusive}
}

func (*PRange) _pattern() {}

func (p *PRange) String() string {
	if p.Inclusive {
		return fmt.Sprintf("%v..=%v", p.Low, p.High)
	}
	return fmt.Sprintf("%v..%v", p.Low, p.High)
}

// Bounds returns the range as a closed interval. ok is false when the bounds
// are not of a rangeable kind.
func (p *PRange) Bounds() (lo, hi int64, ok bool) {
	lo, ok = rangeBound(p.Low)
	if !ok {
		return 0, 0, false
	}
	hi, ok = rangeBound(p.High)
	if !ok {
		return 0, 0, false
	}
	if !p.Inclusive {
		hi--
	}
	return lo, hi, true
}

func rangeBound(c ast.ConstValue) (int64, bool) {
	switch e := c.(type) {
	case ast.CInt:
		return e.Value, true
	case ast.CChar:
		return int64(e.Value), true
	}
	return 0, false
}

// POr matches when any alternative matches. Alternatives bind the same names.
type POr struct {
	patternBase
	Alternatives []Pattern
}

func NewPOr(loc ast.Location, alternatives ...Pattern) *POr {
	return &POr{patternBase: patternBase{loc}, Alternatives: alternatives}
}

func (*POr) _pattern() {}

func (p *POr) String() string {
	s := ""
	for i, a := range p.Alternatives {
		if i > 0 {
			s += " | "
		}
		if _, ok := a.(*POr); ok {
			s += "(" + a.String() + ")"
		} else {
			s += a.String()
		}
	}
	return s
}

// PAt binds the whole value to Name and matches Inner against it.
type PAt struct {
	patternBase
	Name  ast.Identifier
	Inner Pattern
}

func NewPAt(loc ast.Location, name ast.Identifier, inner Pattern) *PAt {
	return &PAt{patternBase: patternBase{loc}, Name: name, Inner: inner}
}

func (*PAt) _pattern() {}

func (p *PAt) String() string {
	if _, ok := p.Inner.(*POr); ok {
		return fmt.Sprintf("%s @ (%v)", p.Name, p.Inner)
	}
	return fmt.Sprintf("%s @ %v", p.Name, p.Inner)
}
