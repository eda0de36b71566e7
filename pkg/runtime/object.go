package runtime

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/common"
	"slices"
	"strconv"
	"strings"
)

// Value is a runtime value a match can inspect.
type Value interface {
	fmt.Stringer
	_value()
}

type Int struct{ Value int64 }

func (Int) _value() {}

func (v Int) String() string { return strconv.FormatInt(v.Value, 10) }

type Bool struct{ Value bool }

func (Bool) _value() {}

func (v Bool) String() string { return strconv.FormatBool(v.Value) }

type Char struct{ Value rune }

func (Char) _value() {}

func (v Char) String() string { return strconv.QuoteRune(v.Value) }

type String struct{ Value string }

func (String) _value() {}

func (v String) String() string { return strconv.Quote(v.Value) }

type Float struct{ Value float64 }

func (Float) _value() {}

func (v Float) String() string { return strconv.FormatFloat(v.Value, 'g', -1, 64) }

type Unit struct{}

func (Unit) _value() {}

func (Unit) String() string { return "()" }

type Variant struct {
	Option ast.DataOptionIdentifier
	Args   []Value
}

func (Variant) _value() {}

func (v Variant) String() string {
	if len(v.Args) == 0 {
		return v.Option.Short()
	}
	return fmt.Sprintf("%s(%s)", v.Option.Short(), common.Join(v.Args, ", "))
}

type Struct struct {
	Name   ast.FullIdentifier
	Fields map[ast.Identifier]Value
}

func (Struct) _value() {}

func (v Struct) String() string {
	names := make([]ast.Identifier, 0, len(v.Fields))
	for n := range v.Fields {
		names = append(names, n)
	}
	slices.Sort(names)
	parts := common.Map(func(n ast.Identifier) string { return fmt.Sprintf("%s: %v", n, v.Fields[n]) }, names)
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

type Tuple struct{ Items []Value }

func (Tuple) _value() {}

func (v Tuple) String() string { return fmt.Sprintf("(%s)", common.Join(v.Items, ", ")) }

type List struct{ Items []Value }

func (List) _value() {}

func (v List) String() string { return fmt.Sprintf("[%s]", common.Join(v.Items, ", ")) }

// Equal compares values structurally.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Variant:
		y, ok := b.(Variant)
		return ok && x.Option.Short() == y.Option.Short() && equalAll(x.Args, y.Args)
	case Struct:
		y, ok := b.(Struct)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for n, f := range x.Fields {
			g, ok := y.Fields[n]
			if !ok || !Equal(f, g) {
				return false
			}
		}
		return true
	case Tuple:
		y, ok := b.(Tuple)
		return ok && equalAll(x.Items, y.Items)
	case List:
		y, ok := b.(List)
		return ok && equalAll(x.Items, y.Items)
	}
	return a == b
}

func equalAll(xs, ys []Value) bool {
	return slices.EqualFunc(xs, ys, Equal)
}
