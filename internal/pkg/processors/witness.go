package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

// witnesses returns up to limit values the rows of m leave unmatched for a
// scrutinee of type t, and whether more exist.
func (e *engine) witnesses(m matrix, t typed.Type, limit int) ([]typed.Pattern, bool, error) {
	ws, err := e.useful(m, []Pattern{PatternAnything{}}, []typed.Type{t}, 0, limit+1)
	if err != nil {
		return nil, false, err
	}
	truncated := len(ws) > limit
	if truncated {
		ws = ws[:limit]
	}
	result := make([]typed.Pattern, 0, len(ws))
	for _, w := range ws {
		p, err := toTypedWitness(w[0], t)
		if err != nil {
			return nil, false, err
		}
		result = append(result, p)
	}
	return result, truncated, nil
}

// toTypedWitness turns a simplified witness back into a binding-free typed pattern.
func toTypedWitness(p Pattern, t typed.Type) (typed.Pattern, error) {
	var loc ast.Location
	switch e := p.(type) {
	case PatternAnything:
		return typed.NewPWildcard(loc), nil
	case PatternConstructor:
		fts, err := fieldTypes(t, e.Ctor)
		if err != nil {
			return nil, err
		}
		if len(fts) != len(e.Args) {
			return nil, common.NewCompilerError(fmt.Sprintf("witness %v has %d arguments, expected %d", e, len(e.Args), len(fts)))
		}
		args := make([]typed.Pattern, 0, len(e.Args))
		for i, a := range e.Args {
			x, err := toTypedWitness(a, fts[i])
			if err != nil {
				return nil, err
			}
			args = append(args, x)
		}

		switch c := e.Ctor.(type) {
		case ctorVariant:
			return typed.NewPVariant(loc, c.Option.Name, args...), nil
		case ctorBool:
			return typed.NewPLiteral(loc, ast.CBool{Value: c.Value}), nil
		case ctorRange:
			v := representative(c.Interval, c.Char)
			if c.Char {
				return typed.NewPLiteral(loc, ast.CChar{Value: rune(v)}), nil
			}
			return typed.NewPLiteral(loc, ast.CInt{Value: v}), nil
		case ctorOpaque:
			return typed.NewPLiteral(loc, c.Value), nil
		case ctorSingle:
			switch x := t.(type) {
			case *typed.TTuple:
				return typed.NewPTuple(loc, args...), nil
			case *typed.TStruct:
				fields := make([]typed.PField, len(x.Fields))
				for i, f := range x.Fields {
					fields[i] = typed.PField{Name: f.Name, Pattern: args[i]}
				}
				return typed.NewPStruct(loc, false, fields...), nil
			case typed.TUnit:
				return typed.NewPLiteral(loc, ast.CUnit{}), nil
			}
		case ctorSlice:
			if c.Fixed {
				return typed.NewPList(loc, args...), nil
			}
			return typed.NewPListRest(loc, args[:c.Prefix], "", args[c.Prefix:]), nil
		}
	}
	return nil, common.NewCompilerError(fmt.Sprintf("cannot build a witness of type %v from %v", t, p))
}
