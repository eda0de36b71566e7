package runtime

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

type Binding struct {
	Name  ast.Identifier
	Value Value
}

// MatchPattern tests value against pattern. On success it returns the
// bindings the pattern introduces, in source order. An error means the
// value does not have the shape the pattern was typed against.
func MatchPattern(pattern typed.Pattern, value Value) ([]Binding, bool, error) {
	var bindings []Binding
	ok, err := match(pattern, value, &bindings)
	if err != nil || !ok {
		return nil, false, err
	}
	return bindings, true, nil
}

func match(pattern typed.Pattern, obj Value, bindings *[]Binding) (bool, error) {
	switch p := pattern.(type) {
	case *typed.PWildcard:
		return true, nil
	case *typed.PBinding:
		*bindings = append(*bindings, Binding{Name: p.Name, Value: obj})
		return true, nil
	case *typed.PAt:
		*bindings = append(*bindings, Binding{Name: p.Name, Value: obj})
		return match(p.Inner, obj, bindings)
	case *typed.PLiteral:
		return matchLiteral(p.Value, obj)
	case *typed.PRange:
		lo, hi, ok := p.Bounds()
		if !ok {
			return false, fmt.Errorf("range pattern %v has non numeric bounds", p)
		}
		var v int64
		switch x := obj.(type) {
		case Int:
			v = x.Value
		case Char:
			v = int64(x.Value)
		default:
			return false, shapeError(pattern, obj)
		}
		return lo <= v && v <= hi, nil
	case *typed.PVariant:
		x, ok := obj.(Variant)
		if !ok {
			return false, shapeError(pattern, obj)
		}
		if x.Option.Short() != p.Name.Short() {
			return false, nil
		}
		if len(x.Args) != len(p.Args) {
			return false, fmt.Errorf("option %s carries %d values, pattern expects %d", x.Option.Short(), len(x.Args), len(p.Args))
		}
		return matchAll(p.Args, x.Args, bindings)
	case *typed.PTuple:
		x, ok := obj.(Tuple)
		if !ok || len(x.Items) != len(p.Items) {
			return false, shapeError(pattern, obj)
		}
		return matchAll(p.Items, x.Items, bindings)
	case *typed.PStruct:
		x, ok := obj.(Struct)
		if !ok {
			return false, shapeError(pattern, obj)
		}
		for _, f := range p.Fields {
			field, ok := x.Fields[f.Name]
			if !ok {
				return false, fmt.Errorf("value %v has no field `%s`", obj, f.Name)
			}
			if m, err := match(f.Pattern, field, bindings); err != nil || !m {
				return false, err
			}
		}
		return true, nil
	case *typed.PList:
		x, ok := obj.(List)
		if !ok {
			return false, shapeError(pattern, obj)
		}
		n := len(x.Items)
		if p.HasRest && n < p.MinLen() || !p.HasRest && n != len(p.Prefix) {
			return false, nil
		}
		if m, err := matchAll(p.Prefix, x.Items[:len(p.Prefix)], bindings); err != nil || !m {
			return false, err
		}
		if !p.HasRest {
			return true, nil
		}
		if p.RestName != "" {
			rest := common.Concat(x.Items[len(p.Prefix) : n-len(p.Suffix)])
			*bindings = append(*bindings, Binding{Name: p.RestName, Value: List{Items: rest}})
		}
		return matchAll(p.Suffix, x.Items[n-len(p.Suffix):], bindings)
	case *typed.POr:
		for _, alt := range p.Alternatives {
			var tentative []Binding
			m, err := match(alt, obj, &tentative)
			if err != nil {
				return false, err
			}
			if m {
				*bindings = append(*bindings, tentative...)
				return true, nil
			}
		}
		return false, nil
	}
	return false, common.NewCompilerError(fmt.Sprintf("unknown pattern kind %T", pattern))
}

func matchAll(patterns []typed.Pattern, values []Value, bindings *[]Binding) (bool, error) {
	for i, p := range patterns {
		m, err := match(p, values[i], bindings)
		if err != nil || !m {
			return false, err
		}
	}
	return true, nil
}

func matchLiteral(c ast.ConstValue, obj Value) (bool, error) {
	switch x := c.(type) {
	case ast.CInt:
		if v, ok := obj.(Int); ok {
			return v.Value == x.Value, nil
		}
	case ast.CBool:
		if v, ok := obj.(Bool); ok {
			return v.Value == x.Value, nil
		}
	case ast.CChar:
		if v, ok := obj.(Char); ok {
			return v.Value == x.Value, nil
		}
	case ast.CString:
		if v, ok := obj.(String); ok {
			return v.Value == x.Value, nil
		}
	case ast.CFloat:
		if v, ok := obj.(Float); ok {
			return v.Value == x.Value, nil
		}
	case ast.CUnit:
		if _, ok := obj.(Unit); ok {
			return true, nil
		}
	}
	return false, fmt.Errorf("literal %v cannot be compared with value %v", c, obj)
}

func shapeError(pattern typed.Pattern, obj Value) error {
	return fmt.Errorf("pattern %v cannot match value %v", pattern, obj)
}
