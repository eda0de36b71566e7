package fixtures

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// decodePattern reads a pattern node. Scalars stand for wildcards (`_`),
// unit (`()`), Int, Bool and Float literals and bindings; everything else is
// a mapping keyed by the pattern kind.
func (d *fixtureDecoder) decodePattern(node *yaml.Node) (typed.Pattern, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind == 0 {
		return nil, fmt.Errorf("missing pattern")
	}
	loc := d.location(node)
	switch node.Kind {
	case yaml.ScalarNode:
		c, err := d.scalarConst(node)
		if err != nil {
			return nil, err
		}
		if c != nil {
			return typed.NewPLiteral(loc, c), nil
		}
		switch node.Value {
		case "_":
			return typed.NewPWildcard(loc), nil
		case "()":
			return typed.NewPLiteral(loc, ast.CUnit{}), nil
		}
		return typed.NewPBinding(loc, ast.Identifier(node.Value)), nil
	case yaml.SequenceNode:
		items, err := d.patternList(node)
		if err != nil {
			return nil, err
		}
		return typed.NewPTuple(loc, items...), nil
	case yaml.MappingNode:
		return d.patternMapping(node, loc)
	}
	return nil, d.errorf(node, "unexpected pattern node")
}

func (d *fixtureDecoder) patternMapping(node *yaml.Node, loc ast.Location) (typed.Pattern, error) {
	if n := lookup(node, "variant"); n != nil {
		var args []typed.Pattern
		if a := lookup(node, "args"); a != nil {
			var err error
			if args, err = d.patternList(a); err != nil {
				return nil, err
			}
		}
		return typed.NewPVariant(loc, ast.DataOptionIdentifier(n.Value), args...), nil
	}
	if n := lookup(node, "bind"); n != nil {
		return typed.NewPBinding(loc, ast.Identifier(n.Value)), nil
	}
	if n := lookup(node, "at"); n != nil {
		inner := lookup(node, "pattern")
		if inner == nil {
			return nil, d.errorf(node, "`at` needs a `pattern`")
		}
		p, err := d.decodePattern(inner)
		if err != nil {
			return nil, err
		}
		return typed.NewPAt(loc, ast.Identifier(n.Value), p), nil
	}
	if n := lookup(node, "tuple"); n != nil {
		items, err := d.patternList(n)
		if err != nil {
			return nil, err
		}
		return typed.NewPTuple(loc, items...), nil
	}
	if n := lookup(node, "or"); n != nil {
		alternatives, err := d.patternList(n)
		if err != nil {
			return nil, err
		}
		if len(alternatives) == 0 {
			return nil, d.errorf(n, "`or` needs at least one alternative")
		}
		return typed.NewPOr(loc, alternatives...), nil
	}
	if n := lookup(node, "struct"); n != nil {
		n = resolveAlias(n)
		if n.Kind != yaml.MappingNode {
			return nil, d.errorf(n, "`struct` must map field names to patterns")
		}
		var fields []typed.PField
		for _, e := range entries(n) {
			p, err := d.decodePattern(e[1])
			if err != nil {
				return nil, err
			}
			fields = append(fields, typed.PField{Name: ast.Identifier(e[0].Value), Pattern: p})
		}
		hasRest, err := d.flag(node, "rest")
		if err != nil {
			return nil, err
		}
		return typed.NewPStruct(loc, hasRest, fields...), nil
	}
	if n := lookup(node, "list"); n != nil {
		prefix, err := d.patternList(n)
		if err != nil {
			return nil, err
		}
		rest := lookup(node, "rest")
		suffixNode := lookup(node, "suffix")
		if rest == nil {
			if suffixNode != nil {
				return nil, d.errorf(suffixNode, "`suffix` needs `rest`")
			}
			return typed.NewPList(loc, prefix...), nil
		}
		var suffix []typed.Pattern
		if suffixNode != nil {
			if suffix, err = d.patternList(suffixNode); err != nil {
				return nil, err
			}
		}
		// `rest: ..` or `rest: _` ignores the tail, any other name binds it.
		name := rest.Value
		if name == ".." || name == "_" || rest.Tag == "!!null" {
			name = ""
		}
		return typed.NewPListRest(loc, prefix, ast.Identifier(name), suffix), nil
	}
	if n := lookup(node, "range"); n != nil {
		return d.rangePattern(node, n, loc, false)
	}
	if n := lookup(node, "char_range"); n != nil {
		return d.rangePattern(node, n, loc, true)
	}
	if n := lookup(node, "str"); n != nil {
		return typed.NewPLiteral(loc, ast.CString{Value: n.Value}), nil
	}
	if n := lookup(node, "char"); n != nil {
		r, err := d.char(n)
		if err != nil {
			return nil, err
		}
		return typed.NewPLiteral(loc, ast.CChar{Value: r}), nil
	}
	return nil, d.errorf(node, "unknown pattern kind")
}

func (d *fixtureDecoder) rangePattern(node, bounds *yaml.Node, loc ast.Location, char bool) (typed.Pattern, error) {
	bounds = resolveAlias(bounds)
	if bounds.Kind != yaml.SequenceNode || len(bounds.Content) != 2 {
		return nil, d.errorf(bounds, "a range takes two bounds")
	}
	inclusive, err := d.flag(node, "inclusive")
	if err != nil {
		return nil, err
	}
	var lo, hi ast.ConstValue
	if char {
		l, err := d.char(bounds.Content[0])
		if err != nil {
			return nil, err
		}
		h, err := d.char(bounds.Content[1])
		if err != nil {
			return nil, err
		}
		lo, hi = ast.CChar{Value: l}, ast.CChar{Value: h}
	} else {
		l, err := d.int(bounds.Content[0])
		if err != nil {
			return nil, err
		}
		h, err := d.int(bounds.Content[1])
		if err != nil {
			return nil, err
		}
		lo, hi = ast.CInt{Value: l}, ast.CInt{Value: h}
	}
	return typed.NewPRange(loc, lo, hi, inclusive), nil
}

func (d *fixtureDecoder) patternList(node *yaml.Node) ([]typed.Pattern, error) {
	node = resolveAlias(node)
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, d.errorf(node, "expected a list of patterns")
	}
	result := make([]typed.Pattern, 0, len(node.Content))
	for _, n := range node.Content {
		p, err := d.decodePattern(n)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// scalarConst returns the literal a tagged scalar stands for, nil for plain
// strings.
func (d *fixtureDecoder) scalarConst(node *yaml.Node) (ast.ConstValue, error) {
	switch node.Tag {
	case "!!int":
		v, err := d.int(node)
		if err != nil {
			return nil, err
		}
		return ast.CInt{Value: v}, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, d.errorf(node, "%v", err)
		}
		return ast.CBool{Value: b}, nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return nil, d.errorf(node, "%v", err)
		}
		return ast.CFloat{Value: f}, nil
	}
	return nil, nil
}

func (d *fixtureDecoder) int(node *yaml.Node) (int64, error) {
	var v int64
	if err := resolveAlias(node).Decode(&v); err != nil {
		return 0, d.errorf(node, "expected an Int: %v", err)
	}
	return v, nil
}

// char accepts a single character or a numeric code point such as `0x10FFFF`.
func (d *fixtureDecoder) char(node *yaml.Node) (rune, error) {
	node = resolveAlias(node)
	if node.Tag == "!!int" {
		v, err := d.int(node)
		if err != nil {
			return 0, err
		}
		return rune(v), nil
	}
	s := node.Value
	if len(s) > 1 && (s[0] == '\'' || s[0] == '"') {
		if unq, err := strconv.Unquote(s); err == nil {
			s = unq
		}
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, d.errorf(node, "expected a single character, got %q", node.Value)
	}
	return r, nil
}

func (d *fixtureDecoder) flag(node *yaml.Node, key string) (bool, error) {
	n := lookup(node, key)
	if n == nil {
		return false, nil
	}
	var b bool
	if err := resolveAlias(n).Decode(&b); err != nil {
		return false, d.errorf(n, "`%s` must be a Bool", key)
	}
	return b, nil
}
