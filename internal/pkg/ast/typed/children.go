package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/common"
)

// Children returns the direct sub patterns of p paired with the types they are
// matched against, given that p itself is matched against t.
func Children(p Pattern, t Type) ([]Pattern, []Type, error) {
	switch e := p.(type) {
	case *PWildcard, *PBinding, *PLiteral, *PRange:
		return nil, nil, nil
	case *PAt:
		return []Pattern{e.Inner}, []Type{t}, nil
	case *POr:
		return e.Alternatives, common.Repeat(t, len(e.Alternatives)), nil
	case *PVariant:
		data, ok := t.(*TData)
		if !ok {
			return nil, nil, mismatch(p, t)
		}
		option, _, ok := data.Option(e.Name)
		if !ok {
			return nil, nil, common.Error{
				Location: p.GetLocation(),
				Message:  fmt.Sprintf("`%s` is not an option of `%v`", e.Name.Short(), data),
			}
		}
		if len(option.Values) != len(e.Args) {
			return nil, nil, common.Error{
				Location: p.GetLocation(),
				Message: fmt.Sprintf("option `%s` expects %d arguments, got %d",
					e.Name.Short(), len(option.Values), len(e.Args)),
			}
		}
		return e.Args, option.Values, nil
	case *PTuple:
		tuple, ok := t.(*TTuple)
		if !ok || len(tuple.Items) != len(e.Items) {
			return nil, nil, mismatch(p, t)
		}
		return e.Items, tuple.Items, nil
	case *PStruct:
		st, ok := t.(*TStruct)
		if !ok {
			return nil, nil, mismatch(p, t)
		}
		items := make([]Pattern, 0, len(e.Fields))
		types := make([]Type, 0, len(e.Fields))
		for _, f := range e.Fields {
			ft, _, ok := st.Field(f.Name)
			if !ok {
				return nil, nil, common.Error{
					Location: p.GetLocation(),
					Message:  fmt.Sprintf("`%v` has no field `%s`", st, f.Name),
				}
			}
			items = append(items, f.Pattern)
			types = append(types, ft)
		}
		if !e.HasRest && len(e.Fields) < len(st.Fields) {
			return nil, nil, common.Error{
				Location: p.GetLocation(),
				Message:  fmt.Sprintf("pattern does not mention all fields of `%v`, add `..` to ignore the rest", st),
			}
		}
		return items, types, nil
	case *PList:
		list, ok := t.(*TList)
		if !ok {
			return nil, nil, mismatch(p, t)
		}
		if !e.HasRest && len(e.Suffix) > 0 {
			return nil, nil, common.NewCompilerError("list pattern has a suffix but no rest marker")
		}
		items := common.Concat(e.Prefix, e.Suffix)
		return items, common.Repeat(list.Elem, len(items)), nil
	}
	return nil, nil, common.NewCompilerError(fmt.Sprintf("unknown pattern kind %T", p))
}

func mismatch(p Pattern, t Type) error {
	return common.Error{
		Location: p.GetLocation(),
		Message:  fmt.Sprintf("pattern `%v` cannot match a value of type `%v`", p, t),
	}
}

type Binding struct {
	Name ast.Identifier
	Type Type
}

// Bindings lists the names p introduces in source order. An or-pattern
// contributes the names of its first alternative.
func Bindings(p Pattern, t Type) ([]Binding, error) {
	var result []Binding
	var walk func(p Pattern, t Type) error
	walk = func(p Pattern, t Type) error {
		switch e := p.(type) {
		case *PBinding:
			result = append(result, Binding{Name: e.Name, Type: t})
			return nil
		case *PAt:
			result = append(result, Binding{Name: e.Name, Type: t})
		case *POr:
			if len(e.Alternatives) == 0 {
				return nil
			}
			return walk(e.Alternatives[0], t)
		}
		items, types, err := Children(p, t)
		if err != nil {
			return err
		}
		if l, ok := p.(*PList); ok && l.HasRest && l.RestName != "" {
			for i := 0; i < len(l.Prefix); i++ {
				if err := walk(items[i], types[i]); err != nil {
					return err
				}
			}
			result = append(result, Binding{Name: l.RestName, Type: t})
			for i := len(l.Prefix); i < len(items); i++ {
				if err := walk(items[i], types[i]); err != nil {
					return err
				}
			}
			return nil
		}
		for i := range items {
			if err := walk(items[i], types[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(p, t); err != nil {
		return nil, err
	}
	return result, nil
}
