package fixtures

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/pkg/runtime"

	"gopkg.in/yaml.v3"
)

// decodeValue reads a runtime value. Plain scalars are Int, Bool, Float,
// Unit (`()`) or String values, sequences are tuples.
func (d *fixtureDecoder) decodeValue(node *yaml.Node) (runtime.Value, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind == 0 {
		return nil, fmt.Errorf("missing value")
	}
	switch node.Kind {
	case yaml.ScalarNode:
		c, err := d.scalarConst(node)
		if err != nil {
			return nil, err
		}
		switch e := c.(type) {
		case ast.CInt:
			return runtime.Int{Value: e.Value}, nil
		case ast.CBool:
			return runtime.Bool{Value: e.Value}, nil
		case ast.CFloat:
			return runtime.Float{Value: e.Value}, nil
		}
		if node.Value == "()" {
			return runtime.Unit{}, nil
		}
		return runtime.String{Value: node.Value}, nil
	case yaml.SequenceNode:
		items, err := d.valueList(node)
		if err != nil {
			return nil, err
		}
		return runtime.Tuple{Items: items}, nil
	case yaml.MappingNode:
		return d.valueMapping(node)
	}
	return nil, d.errorf(node, "unexpected value node")
}

func (d *fixtureDecoder) valueMapping(node *yaml.Node) (runtime.Value, error) {
	if n := lookup(node, "variant"); n != nil {
		var args []runtime.Value
		if a := lookup(node, "args"); a != nil {
			var err error
			if args, err = d.valueList(a); err != nil {
				return nil, err
			}
		}
		return runtime.Variant{Option: ast.DataOptionIdentifier(n.Value), Args: args}, nil
	}
	if n := lookup(node, "list"); n != nil {
		items, err := d.valueList(n)
		if err != nil {
			return nil, err
		}
		return runtime.List{Items: items}, nil
	}
	if n := lookup(node, "tuple"); n != nil {
		items, err := d.valueList(n)
		if err != nil {
			return nil, err
		}
		return runtime.Tuple{Items: items}, nil
	}
	if n := lookup(node, "struct"); n != nil {
		n = resolveAlias(n)
		if n.Kind != yaml.MappingNode {
			return nil, d.errorf(n, "`struct` must map field names to values")
		}
		s := runtime.Struct{Fields: map[ast.Identifier]runtime.Value{}}
		if name := lookup(node, "name"); name != nil {
			s.Name = ast.FullIdentifier(name.Value)
		}
		for _, e := range entries(n) {
			v, err := d.decodeValue(e[1])
			if err != nil {
				return nil, err
			}
			s.Fields[ast.Identifier(e[0].Value)] = v
		}
		return s, nil
	}
	if n := lookup(node, "char"); n != nil {
		r, err := d.char(n)
		if err != nil {
			return nil, err
		}
		return runtime.Char{Value: r}, nil
	}
	if n := lookup(node, "str"); n != nil {
		return runtime.String{Value: n.Value}, nil
	}
	return nil, d.errorf(node, "unknown value kind")
}

func (d *fixtureDecoder) valueList(node *yaml.Node) ([]runtime.Value, error) {
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, d.errorf(node, "expected a list of values")
	}
	result := make([]runtime.Value, 0, len(node.Content))
	for _, n := range node.Content {
		v, err := d.decodeValue(n)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
