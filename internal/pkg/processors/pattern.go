package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

// Pattern is the simplified form the usefulness engine works on. Bindings,
// at-patterns and struct field names are gone; what remains are constructor
// applications, wildcards and or-patterns.
type Pattern interface {
	fmt.Stringer
	_pattern()
}

type PatternAnything struct{}

func (PatternAnything) _pattern() {}

func (PatternAnything) String() string {
	return "_"
}

type PatternConstructor struct {
	Ctor Constructor
	Args []Pattern
}

func (PatternConstructor) _pattern() {}

func (c PatternConstructor) String() string {
	params := common.Join(c.Args, ", ")
	if params != "" {
		params = fmt.Sprintf("(%s)", params)
	}
	return fmt.Sprintf("%v%s", c.Ctor, params)
}

type PatternOr struct {
	Alternatives []Pattern
}

func (PatternOr) _pattern() {}

func (p PatternOr) String() string {
	return "(" + common.Join(p.Alternatives, " | ") + ")"
}

func simplifyPattern(pattern typed.Pattern, t typed.Type) (Pattern, error) {
	switch e := pattern.(type) {
	case *typed.PWildcard:
		return PatternAnything{}, nil
	case *typed.PBinding:
		return PatternAnything{}, nil
	case *typed.PAt:
		return simplifyPattern(e.Inner, t)
	case *typed.POr:
		alts := make([]Pattern, 0, len(e.Alternatives))
		for _, a := range e.Alternatives {
			s, err := simplifyPattern(a, t)
			if err != nil {
				return nil, err
			}
			alts = append(alts, s)
		}
		return PatternOr{Alternatives: alts}, nil
	case *typed.PLiteral:
		ctor, err := literalCtor(e, t)
		if err != nil {
			return nil, err
		}
		return PatternConstructor{Ctor: ctor}, nil
	case *typed.PRange:
		lo, hi, ok := e.Bounds()
		if !ok {
			return nil, typeMismatch(e, t)
		}
		switch t.(type) {
		case typed.TInt:
			if _, isInt := e.Low.(ast.CInt); !isInt {
				return nil, typeMismatch(e, t)
			}
			return PatternConstructor{Ctor: ctorRange{Interval: interval{lo, hi}, FromRange: true}}, nil
		case typed.TChar:
			if _, isChar := e.Low.(ast.CChar); !isChar {
				return nil, typeMismatch(e, t)
			}
			return PatternConstructor{Ctor: ctorRange{Interval: interval{lo, hi}, Char: true, FromRange: true}}, nil
		}
		return nil, typeMismatch(e, t)
	case *typed.PVariant:
		data, ok := t.(*typed.TData)
		if !ok {
			return nil, typeMismatch(e, t)
		}
		items, types, err := typed.Children(e, t)
		if err != nil {
			return nil, err
		}
		option, index, _ := data.Option(e.Name)
		args, err := simplifyAll(items, types)
		if err != nil {
			return nil, err
		}
		return PatternConstructor{Ctor: ctorVariant{Data: data, Option: option, Index: index}, Args: args}, nil
	case *typed.PTuple:
		items, types, err := typed.Children(e, t)
		if err != nil {
			return nil, err
		}
		args, err := simplifyAll(items, types)
		if err != nil {
			return nil, err
		}
		return PatternConstructor{Ctor: ctorSingle{}, Args: args}, nil
	case *typed.PStruct:
		if _, _, err := typed.Children(e, t); err != nil {
			return nil, err
		}
		st := t.(*typed.TStruct)
		args := make([]Pattern, 0, len(st.Fields))
		for _, f := range st.Fields {
			fp, ok := e.Field(f.Name)
			if !ok {
				args = append(args, PatternAnything{})
				continue
			}
			s, err := simplifyPattern(fp, f.Type)
			if err != nil {
				return nil, err
			}
			args = append(args, s)
		}
		return PatternConstructor{Ctor: ctorSingle{}, Args: args}, nil
	case *typed.PList:
		items, types, err := typed.Children(e, t)
		if err != nil {
			return nil, err
		}
		args, err := simplifyAll(items, types)
		if err != nil {
			return nil, err
		}
		return PatternConstructor{
			Ctor: ctorSlice{Fixed: !e.HasRest, Prefix: len(e.Prefix), Suffix: len(e.Suffix)},
			Args: args,
		}, nil
	}
	return nil, common.NewCompilerError(fmt.Sprintf("unknown pattern kind %T", pattern))
}

func simplifyAll(items []typed.Pattern, types []typed.Type) ([]Pattern, error) {
	result := make([]Pattern, 0, len(items))
	for i, item := range items {
		s, err := simplifyPattern(item, types[i])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func literalCtor(p *typed.PLiteral, t typed.Type) (Constructor, error) {
	switch v := p.Value.(type) {
	case ast.CBool:
		if _, ok := t.(typed.TBool); ok {
			return ctorBool{Value: v.Value}, nil
		}
	case ast.CInt:
		if _, ok := t.(typed.TInt); ok {
			return ctorRange{Interval: interval{v.Value, v.Value}}, nil
		}
	case ast.CChar:
		if _, ok := t.(typed.TChar); ok {
			return ctorRange{Interval: interval{int64(v.Value), int64(v.Value)}, Char: true}, nil
		}
	case ast.CString:
		if _, ok := t.(typed.TString); ok {
			return ctorOpaque{Value: v}, nil
		}
	case ast.CFloat:
		if _, ok := t.(typed.TFloat); ok {
			return ctorOpaque{Value: v}, nil
		}
	case ast.CUnit:
		if _, ok := t.(typed.TUnit); ok {
			return ctorSingle{}, nil
		}
	}
	return nil, typeMismatch(p, t)
}

func typeMismatch(p typed.Pattern, t typed.Type) error {
	return common.Error{
		Location: p.GetLocation(),
		Message:  fmt.Sprintf("pattern `%v` cannot match a value of type `%v`", p, t),
	}
}
