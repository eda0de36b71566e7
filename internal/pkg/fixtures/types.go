package fixtures

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"

	"gopkg.in/yaml.v3"
)

// declaredTypes decodes the `types` section. Every declaration gets a shell
// first so that declarations may refer to each other and to themselves.
func (d *fixtureDecoder) declaredTypes(node *yaml.Node) (map[string]typed.Type, error) {
	types := map[string]typed.Type{}
	node = resolveAlias(node)
	if node == nil || node.Kind == 0 {
		return types, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, d.errorf(node, "types must be a mapping")
	}

	d.types = types
	for _, e := range entries(node) {
		name, decl := e[0].Value, resolveAlias(e[1])
		if _, ok := types[name]; ok {
			return nil, d.errorf(e[0], "type `%s` declared twice", name)
		}
		if isBuiltinType(name) {
			return nil, d.errorf(e[0], "`%s` is a builtin type", name)
		}
		switch {
		case decl.Kind == yaml.MappingNode && lookup(decl, "variants") != nil:
			types[name] = &typed.TData{Name: ast.FullIdentifier(name)}
		case decl.Kind == yaml.MappingNode && lookup(decl, "fields") != nil:
			types[name] = &typed.TStruct{Name: ast.FullIdentifier(name)}
		default:
			return nil, d.errorf(decl, "type `%s` needs `variants` or `fields`", name)
		}
	}

	for _, e := range entries(node) {
		name, decl := e[0].Value, resolveAlias(e[1])
		switch t := types[name].(type) {
		case *typed.TData:
			variants := resolveAlias(lookup(decl, "variants"))
			if variants.Kind != yaml.SequenceNode {
				return nil, d.errorf(variants, "variants of `%s` must be a list", name)
			}
			for _, v := range variants.Content {
				optName, values, err := d.singleKey(v)
				if err != nil {
					return nil, err
				}
				args, err := d.typeList(values)
				if err != nil {
					return nil, err
				}
				t.Options = append(t.Options, &typed.DataOption{
					Name:   common.MakeDataOptionIdentifier(t.Name, ast.Identifier(optName)),
					Values: args,
				})
			}
		case *typed.TStruct:
			fields := resolveAlias(lookup(decl, "fields"))
			if fields.Kind != yaml.SequenceNode {
				return nil, d.errorf(fields, "fields of `%s` must be a list", name)
			}
			for _, f := range fields.Content {
				fieldName, fieldType, err := d.singleKey(f)
				if err != nil {
					return nil, err
				}
				ft, err := d.decodeType(fieldType)
				if err != nil {
					return nil, err
				}
				t.Fields = append(t.Fields, typed.StructField{Name: ast.Identifier(fieldName), Type: ft})
			}
		}
	}
	return types, nil
}

func isBuiltinType(name string) bool {
	switch name {
	case "Bool", "Int", "Char", "String", "Float", "Unit", "()", "Never":
		return true
	}
	return false
}

// singleKey unpacks a mapping with exactly one entry.
func (d *fixtureDecoder) singleKey(node *yaml.Node) (string, *yaml.Node, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, d.errorf(node, "expected a mapping with a single key")
	}
	return node.Content[0].Value, node.Content[1], nil
}

func (d *fixtureDecoder) typeList(node *yaml.Node) ([]typed.Type, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.SequenceNode:
		result := make([]typed.Type, 0, len(node.Content))
		for _, n := range node.Content {
			t, err := d.decodeType(n)
			if err != nil {
				return nil, err
			}
			result = append(result, t)
		}
		return result, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		t, err := d.decodeType(node)
		if err != nil {
			return nil, err
		}
		return []typed.Type{t}, nil
	}
	return nil, d.errorf(node, "expected a list of types")
}

func (d *fixtureDecoder) decodeType(node *yaml.Node) (typed.Type, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind == 0 {
		return nil, fmt.Errorf("missing type")
	}
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Value {
		case "Bool":
			return typed.TBool{}, nil
		case "Int":
			return typed.TInt{}, nil
		case "Char":
			return typed.TChar{}, nil
		case "String":
			return typed.TString{}, nil
		case "Float":
			return typed.TFloat{}, nil
		case "Unit", "()":
			return typed.TUnit{}, nil
		case "Never":
			return typed.TNever{}, nil
		}
		if t, ok := d.types[node.Value]; ok {
			return t, nil
		}
		return nil, d.errorf(node, "unknown type `%s`", node.Value)
	case yaml.MappingNode:
		key, value, err := d.singleKey(node)
		if err != nil {
			return nil, err
		}
		switch key {
		case "list":
			elem, err := d.decodeType(value)
			if err != nil {
				return nil, err
			}
			return &typed.TList{Elem: elem}, nil
		case "tuple":
			items, err := d.typeList(value)
			if err != nil {
				return nil, err
			}
			return &typed.TTuple{Items: items}, nil
		case "option":
			inner, err := d.decodeType(value)
			if err != nil {
				return nil, err
			}
			return typed.NewOption(inner), nil
		case "result":
			items, err := d.typeList(value)
			if err != nil {
				return nil, err
			}
			if len(items) != 2 {
				return nil, d.errorf(value, "result takes a value and an error type")
			}
			return typed.NewResult(items[0], items[1]), nil
		}
		return nil, d.errorf(node, "unknown type constructor `%s`", key)
	}
	return nil, d.errorf(node, "unexpected type node")
}
