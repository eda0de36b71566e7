package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"strings"

	"github.com/hashicorp/go-set/v3"
)

// validateBindings checks that no name is bound twice in pattern and that all
// alternatives of every or-pattern bind the same names with the same types.
// For `x @ (A | B)` the alternatives A and B must agree on their own; names
// bound outside the or-pattern do not count.
func validateBindings(pattern typed.Pattern, t typed.Type) ([]Problem, error) {
	var problems []Problem

	bindings, err := typed.Bindings(pattern, t)
	if err != nil {
		return nil, err
	}
	seen := set.New[ast.Identifier](len(bindings))
	reported := set.New[ast.Identifier](0)
	for _, b := range bindings {
		if !seen.Insert(b.Name) && reported.Insert(b.Name) {
			problems = append(problems, DuplicateBinding{Location: pattern.GetLocation(), Name: b.Name})
		}
	}

	var walk func(p typed.Pattern, t typed.Type) error
	walk = func(p typed.Pattern, t typed.Type) error {
		if or, ok := p.(*typed.POr); ok && len(or.Alternatives) > 1 {
			if problem, err := checkAlternatives(or, t); err != nil {
				return err
			} else if problem != nil {
				problems = append(problems, *problem)
			}
		}
		items, types, err := typed.Children(p, t)
		if err != nil {
			return err
		}
		for i, item := range items {
			if err := walk(item, types[i]); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(pattern, t); err != nil {
		return nil, err
	}
	return problems, nil
}

func checkAlternatives(or *typed.POr, t typed.Type) (*InconsistentOrBinding, error) {
	expected, err := typed.Bindings(or.Alternatives[0], t)
	if err != nil {
		return nil, err
	}
	expectedNames := bindingNames(expected)
	expectedSet := set.From(expectedNames)

	for _, alt := range or.Alternatives[1:] {
		found, err := typed.Bindings(alt, t)
		if err != nil {
			return nil, err
		}
		foundNames := bindingNames(found)
		foundSet := set.From(foundNames)
		if !expectedSet.Subset(foundSet) || !foundSet.Subset(expectedSet) {
			return &InconsistentOrBinding{
				Location: alt.GetLocation(),
				Expected: expectedNames,
				Found:    foundNames,
			}, nil
		}

		var mismatches []string
		for _, f := range found {
			e, _ := common.Find(func(b typed.Binding) bool { return b.Name == f.Name }, expected)
			if typed.Signature(e.Type) != typed.Signature(f.Type) {
				mismatches = append(mismatches, fmt.Sprintf("`%s` is `%v` here but `%v` in the first alternative",
					f.Name, f.Type, e.Type))
			}
		}
		if len(mismatches) > 0 {
			return &InconsistentOrBinding{
				Location: alt.GetLocation(),
				Expected: expectedNames,
				Found:    foundNames,
				Detail:   strings.Join(mismatches, "; "),
			}, nil
		}
	}
	return nil, nil
}

func bindingNames(bs []typed.Binding) []ast.Identifier {
	return common.Map(func(b typed.Binding) ast.Identifier { return b.Name }, bs)
}
