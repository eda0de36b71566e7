package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/common"
	"strings"
)

// PathStep selects a part of a value on the way from the scrutinee to a binding.
type PathStep interface {
	fmt.Stringer
	_pathStep()
}

// PayloadField selects argument Index of a variant.
type PayloadField struct {
	Index int
}

func (PayloadField) _pathStep() {}

func (s PayloadField) String() string { return fmt.Sprintf("payload(%d)", s.Index) }

type TupleField struct {
	Index int
}

func (TupleField) _pathStep() {}

func (s TupleField) String() string { return fmt.Sprintf(".%d", s.Index) }

type RecordField struct {
	Name ast.Identifier
}

func (RecordField) _pathStep() {}

func (s RecordField) String() string { return "." + string(s.Name) }

type ListIndex struct {
	Index int
}

func (ListIndex) _pathStep() {}

func (s ListIndex) String() string { return fmt.Sprintf("[%d]", s.Index) }

// ListFromEnd selects the element Offset positions before the end; Offset 1 is the last element.
type ListFromEnd struct {
	Offset int
}

func (ListFromEnd) _pathStep() {}

func (s ListFromEnd) String() string { return fmt.Sprintf("[len-%d]", s.Offset) }

// ListSlice selects the elements between the first From and the last FromEnd ones.
type ListSlice struct {
	From    int
	FromEnd int
}

func (ListSlice) _pathStep() {}

func (s ListSlice) String() string { return fmt.Sprintf("[%d:len-%d]", s.From, s.FromEnd) }

type BindingPath struct {
	Name ast.Identifier
	Path []PathStep
}

func (b BindingPath) String() string {
	return fmt.Sprintf("%s = $%s", b.Name, strings.Join(common.Map(func(s PathStep) string { return s.String() }, b.Path), ""))
}

// BindingPaths returns where each name bound by p is found inside the
// scrutinee. p must not contain or-patterns; see Alternatives.
func BindingPaths(p Pattern, t Type) ([]BindingPath, error) {
	var result []BindingPath
	var walk func(p Pattern, t Type, path []PathStep) error
	walk = func(p Pattern, t Type, path []PathStep) error {
		switch e := p.(type) {
		case *PBinding:
			result = append(result, BindingPath{Name: e.Name, Path: path})
			return nil
		case *PAt:
			result = append(result, BindingPath{Name: e.Name, Path: path})
			return walk(e.Inner, t, path)
		case *POr:
			return common.NewCompilerError("binding paths of or-patterns are ambiguous")
		}
		items, types, err := Children(p, t)
		if err != nil {
			return err
		}
		step := func(i int) PathStep {
			switch e := p.(type) {
			case *PVariant:
				return PayloadField{Index: i}
			case *PTuple:
				return TupleField{Index: i}
			case *PStruct:
				return RecordField{Name: e.Fields[i].Name}
			case *PList:
				if i < len(e.Prefix) {
					return ListIndex{Index: i}
				}
				return ListFromEnd{Offset: len(items) - i}
			}
			return nil
		}
		if l, ok := p.(*PList); ok && l.HasRest && l.RestName != "" {
			for i := range l.Prefix {
				if err := walk(items[i], types[i], common.Concat(path, []PathStep{step(i)})); err != nil {
					return err
				}
			}
			result = append(result, BindingPath{
				Name: l.RestName,
				Path: common.Concat(path, []PathStep{ListSlice{From: len(l.Prefix), FromEnd: len(l.Suffix)}}),
			})
			for i := len(l.Prefix); i < len(items); i++ {
				if err := walk(items[i], types[i], common.Concat(path, []PathStep{step(i)})); err != nil {
					return err
				}
			}
			return nil
		}
		for i := range items {
			if err := walk(items[i], types[i], common.Concat(path, []PathStep{step(i)})); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(p, t, nil); err != nil {
		return nil, err
	}
	return result, nil
}

// Alternatives expands every or-pattern inside p, returning or-free patterns
// in the order a left to right first-match search visits them. It fails when
// the expansion would produce more than limit patterns.
func Alternatives(p Pattern, limit int) ([]Pattern, error) {
	product := func(groups [][]Pattern, build func(items []Pattern) Pattern) ([]Pattern, error) {
		combos := [][]Pattern{{}}
		for _, g := range groups {
			next := make([][]Pattern, 0, len(combos)*len(g))
			for _, c := range combos {
				for _, x := range g {
					next = append(next, common.Concat(c, []Pattern{x}))
				}
			}
			if len(next) > limit {
				return nil, fmt.Errorf("or-pattern `%v` expands to more than %d alternatives", p, limit)
			}
			combos = next
		}
		return common.Map(build, combos), nil
	}
	expandAll := func(items []Pattern) ([][]Pattern, error) {
		groups := make([][]Pattern, 0, len(items))
		for _, item := range items {
			g, err := Alternatives(item, limit)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return groups, nil
	}

	loc := p.GetLocation()
	switch e := p.(type) {
	case *PWildcard, *PBinding, *PLiteral, *PRange:
		return []Pattern{p}, nil
	case *POr:
		var result []Pattern
		for _, a := range e.Alternatives {
			xs, err := Alternatives(a, limit)
			if err != nil {
				return nil, err
			}
			result = append(result, xs...)
			if len(result) > limit {
				return nil, fmt.Errorf("or-pattern `%v` expands to more than %d alternatives", p, limit)
			}
		}
		return result, nil
	case *PAt:
		inner, err := Alternatives(e.Inner, limit)
		if err != nil {
			return nil, err
		}
		return common.Map(func(x Pattern) Pattern { return NewPAt(loc, e.Name, x) }, inner), nil
	case *PVariant:
		groups, err := expandAll(e.Args)
		if err != nil {
			return nil, err
		}
		return product(groups, func(items []Pattern) Pattern { return NewPVariant(loc, e.Name, items...) })
	case *PTuple:
		groups, err := expandAll(e.Items)
		if err != nil {
			return nil, err
		}
		return product(groups, func(items []Pattern) Pattern { return NewPTuple(loc, items...) })
	case *PStruct:
		groups, err := expandAll(common.Map(func(f PField) Pattern { return f.Pattern }, e.Fields))
		if err != nil {
			return nil, err
		}
		return product(groups, func(items []Pattern) Pattern {
			fields := make([]PField, len(items))
			for i, x := range items {
				fields[i] = PField{Name: e.Fields[i].Name, Pattern: x}
			}
			return NewPStruct(loc, e.HasRest, fields...)
		})
	case *PList:
		groups, err := expandAll(common.Concat(e.Prefix, e.Suffix))
		if err != nil {
			return nil, err
		}
		return product(groups, func(items []Pattern) Pattern {
			if !e.HasRest {
				return NewPList(loc, items...)
			}
			return NewPListRest(loc, items[:len(e.Prefix)], e.RestName, items[len(e.Prefix):])
		})
	}
	return nil, common.NewCompilerError(fmt.Sprintf("unknown pattern kind %T", p))
}
