package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

// Constructor is one element of the constructor universe of a type: a
// variant, a boolean, the single constructor of tuples, structs and unit, a
// piece of an integer or char domain, a list length class or a literal of a
// type with an infinite value space.
type Constructor interface {
	fmt.Stringer
	_constructor()
}

type ctorVariant struct {
	Data   *typed.TData
	Option *typed.DataOption
	Index  int
}

func (ctorVariant) _constructor() {}

func (c ctorVariant) String() string {
	return c.Option.Name.Short()
}

type ctorBool struct {
	Value bool
}

func (ctorBool) _constructor() {}

func (c ctorBool) String() string {
	return fmt.Sprintf("%v", c.Value)
}

type ctorSingle struct{}

func (ctorSingle) _constructor() {}

func (ctorSingle) String() string {
	return "single"
}

// ctorRange is a closed interval of an Int or Char domain. FromRange marks
// constructors written as range patterns, as opposed to literals.
type ctorRange struct {
	Interval  interval
	Char      bool
	FromRange bool
}

func (ctorRange) _constructor() {}

func (c ctorRange) String() string {
	return c.Interval.format(c.Char)
}

// ctorSlice is a list length class. Fixed classes hold lists of exactly
// Prefix elements; variable ones hold lists of at least Prefix+Suffix
// elements, of which the first Prefix and the last Suffix are inspected.
type ctorSlice struct {
	Fixed  bool
	Prefix int
	Suffix int
}

func (ctorSlice) _constructor() {}

func (c ctorSlice) String() string {
	if c.Fixed {
		return fmt.Sprintf("[len %d]", c.Prefix)
	}
	return fmt.Sprintf("[len >= %d]", c.Prefix+c.Suffix)
}

func (c ctorSlice) arity() int {
	if c.Fixed {
		return c.Prefix
	}
	return c.Prefix + c.Suffix
}

// ctorOpaque is a String or Float literal. Such columns are never complete.
type ctorOpaque struct {
	Value ast.ConstValue
}

func (ctorOpaque) _constructor() {}

func (c ctorOpaque) String() string {
	return c.Value.String()
}

// fieldTypes returns the types of the sub patterns c takes when it builds a value of type t.
func fieldTypes(t typed.Type, c Constructor) ([]typed.Type, error) {
	switch e := c.(type) {
	case ctorVariant:
		return e.Option.Values, nil
	case ctorBool, ctorRange, ctorOpaque:
		return nil, nil
	case ctorSingle:
		switch x := t.(type) {
		case *typed.TTuple:
			return x.Items, nil
		case *typed.TStruct:
			return common.Map(func(f typed.StructField) typed.Type { return f.Type }, x.Fields), nil
		case typed.TUnit:
			return nil, nil
		}
	case ctorSlice:
		if list, ok := t.(*typed.TList); ok {
			return common.Repeat(list.Elem, e.arity()), nil
		}
	}
	return nil, common.NewCompilerError(fmt.Sprintf("constructor %v does not build values of type %v", c, t))
}

// covers reports whether every value built by c is also built by head.
// Constructors produced by splitting are either covered by a head or disjoint from it.
func covers(head Constructor, c Constructor) bool {
	switch h := head.(type) {
	case ctorVariant:
		x, ok := c.(ctorVariant)
		return ok && x.Index == h.Index
	case ctorBool:
		x, ok := c.(ctorBool)
		return ok && x.Value == h.Value
	case ctorSingle:
		_, ok := c.(ctorSingle)
		return ok
	case ctorRange:
		x, ok := c.(ctorRange)
		return ok && h.Interval.contains(x.Interval)
	case ctorOpaque:
		x, ok := c.(ctorOpaque)
		return ok && h.Value.EqualsTo(x.Value)
	case ctorSlice:
		x, ok := c.(ctorSlice)
		if !ok {
			return false
		}
		if h.Fixed {
			return x.Fixed && x.Prefix == h.Prefix
		}
		if x.Fixed {
			return x.Prefix >= h.Prefix+h.Suffix
		}
		return x.Prefix >= h.Prefix && x.Suffix >= h.Suffix
	}
	return false
}

// specializeArgs lines up the arguments of a head constructor with the
// fields of c, which it covers.
func specializeArgs(head PatternConstructor, c Constructor) []Pattern {
	h, ok := head.Ctor.(ctorSlice)
	if !ok || h.Fixed {
		return head.Args
	}
	x := c.(ctorSlice)
	gap := x.arity() - h.Prefix - h.Suffix
	return common.Concat(
		head.Args[:h.Prefix],
		common.Repeat(Pattern(PatternAnything{}), gap),
		head.Args[h.Prefix:])
}
