package runtime

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

// Synthesize builds a value of type t matched by pattern. Wildcards and
// bindings become an arbitrary inhabitant of their type, ranges their lower bound
// and or-patterns their first alternative.
func Synthesize(pattern typed.Pattern, t typed.Type) (Value, error) {
	switch p := pattern.(type) {
	case *typed.PWildcard, *typed.PBinding:
		return Inhabitant(t)
	case *typed.PAt:
		return Synthesize(p.Inner, t)
	case *typed.POr:
		if len(p.Alternatives) == 0 {
			return nil, fmt.Errorf("empty or-pattern")
		}
		return Synthesize(p.Alternatives[0], t)
	case *typed.PLiteral:
		return literalValue(p.Value), nil
	case *typed.PRange:
		return literalValue(p.Low), nil
	case *typed.PVariant:
		items, types, err := typed.Children(p, t)
		if err != nil {
			return nil, err
		}
		option, _, _ := t.(*typed.TData).Option(p.Name)
		args, err := synthesizeAll(items, types)
		if err != nil {
			return nil, err
		}
		return Variant{Option: option.Name, Args: args}, nil
	case *typed.PTuple:
		items, types, err := typed.Children(p, t)
		if err != nil {
			return nil, err
		}
		args, err := synthesizeAll(items, types)
		if err != nil {
			return nil, err
		}
		return Tuple{Items: args}, nil
	case *typed.PStruct:
		if _, _, err := typed.Children(p, t); err != nil {
			return nil, err
		}
		st := t.(*typed.TStruct)
		fields := make(map[ast.Identifier]Value, len(st.Fields))
		for _, f := range st.Fields {
			var v Value
			var err error
			if fp, ok := p.Field(f.Name); ok {
				v, err = Synthesize(fp, f.Type)
			} else {
				v, err = Inhabitant(f.Type)
			}
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return Struct{Name: st.Name, Fields: fields}, nil
	case *typed.PList:
		items, types, err := typed.Children(p, t)
		if err != nil {
			return nil, err
		}
		args, err := synthesizeAll(items, types)
		if err != nil {
			return nil, err
		}
		return List{Items: args}, nil
	}
	return nil, common.NewCompilerError(fmt.Sprintf("unknown pattern kind %T", pattern))
}

func synthesizeAll(items []typed.Pattern, types []typed.Type) ([]Value, error) {
	result := make([]Value, len(items))
	for i, item := range items {
		v, err := Synthesize(item, types[i])
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func literalValue(c ast.ConstValue) Value {
	switch x := c.(type) {
	case ast.CInt:
		return Int{Value: x.Value}
	case ast.CBool:
		return Bool{Value: x.Value}
	case ast.CChar:
		return Char{Value: x.Value}
	case ast.CString:
		return String{Value: x.Value}
	case ast.CFloat:
		return Float{Value: x.Value}
	}
	return Unit{}
}

// Inhabitant returns some value of type t.
func Inhabitant(t typed.Type) (Value, error) {
	return inhabitant(t, map[*typed.TData]struct{}{})
}

func inhabitant(t typed.Type, visiting map[*typed.TData]struct{}) (Value, error) {
	switch e := t.(type) {
	case typed.TBool:
		return Bool{}, nil
	case typed.TInt:
		return Int{}, nil
	case typed.TChar:
		return Char{Value: 'a'}, nil
	case typed.TString:
		return String{}, nil
	case typed.TFloat:
		return Float{}, nil
	case typed.TUnit:
		return Unit{}, nil
	case *typed.TList:
		return List{}, nil
	case *typed.TTuple:
		items := make([]Value, len(e.Items))
		for i, x := range e.Items {
			v, err := inhabitant(x, visiting)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return Tuple{Items: items}, nil
	case *typed.TStruct:
		fields := make(map[ast.Identifier]Value, len(e.Fields))
		for _, f := range e.Fields {
			v, err := inhabitant(f.Type, visiting)
			if err != nil {
				return nil, err
			}
			fields[f.Name] = v
		}
		return Struct{Name: e.Name, Fields: fields}, nil
	case *typed.TData:
		if _, ok := visiting[e]; ok {
			return nil, fmt.Errorf("type %v is recursive", e)
		}
		visiting[e] = struct{}{}
		defer delete(visiting, e)
	options:
		for _, o := range e.Options {
			args := make([]Value, len(o.Values))
			for i, x := range o.Values {
				v, err := inhabitant(x, visiting)
				if err != nil {
					continue options
				}
				args[i] = v
			}
			return Variant{Option: o.Name, Args: args}, nil
		}
	}
	return nil, fmt.Errorf("type %v has no values", t)
}
