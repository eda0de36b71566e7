// Package fixtures decodes YAML descriptions of types, match expressions and
// sample scrutinee values. The command line checker and the tests use it to
// describe matches without a parser for the surface language.
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/pkg/runtime"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

func tracer() tracing.Trace {
	return tracing.Select("match.fixtures")
}

// File is a decoded fixture file.
type File struct {
	Path  string
	Types map[string]typed.Type
	Cases []*Case
}

// Case is one match expression with optional sample values and expectations.
type Case struct {
	Name    string
	Match   *typed.Match
	Samples []Sample
	Expect  *Expectation
}

// Sample is a scrutinee value. Arm is the arm expected to be selected, -1 for
// no arm, nil when not checked.
type Sample struct {
	Location ast.Location
	Value    runtime.Value
	Arm      *int
}

// Expectation states what the checker should find. Unset fields are not checked.
type Expectation struct {
	Exhaustive    *bool    `yaml:"exhaustive"`
	Witnesses     []string `yaml:"witnesses"`
	Truncated     *bool    `yaml:"truncated"`
	Unreachable   []int    `yaml:"unreachable"`
	Overlaps      [][2]int `yaml:"overlaps"`
	GuardCatchAll *int     `yaml:"guard_requires_catch_all"`
	Problems      []string `yaml:"problems"`
}

type fileYAML struct {
	Types   yaml.Node   `yaml:"types"`
	Matches []matchYAML `yaml:"matches"`
}

type matchYAML struct {
	Name      string       `yaml:"name"`
	Scrutinee yaml.Node    `yaml:"scrutinee"`
	Arms      []armYAML    `yaml:"arms"`
	Samples   []sampleYAML `yaml:"samples"`
	Expect    *Expectation `yaml:"expect"`
}

type armYAML struct {
	Pattern yaml.Node `yaml:"pattern"`
	Guard   yaml.Node `yaml:"guard"`
	Body    yaml.Node `yaml:"body"`
}

type sampleYAML struct {
	Value yaml.Node `yaml:"value"`
	Arm   *int      `yaml:"arm"`
}

func Load(path string) (*File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: resolve %s: %w", path, err)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("fixtures: read %s: %w", absPath, err)
	}
	return Decode(absPath, content)
}

// Decode parses fixture content. path is only used for locations.
func Decode(path string, content []byte) (*File, error) {
	var raw fileYAML
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fixtures: %s is empty", path)
		}
		return nil, fmt.Errorf("fixtures: parse %s: %w", path, err)
	}

	d := &fixtureDecoder{path: path, content: []rune(string(content))}
	types, err := d.declaredTypes(&raw.Types)
	if err != nil {
		return nil, err
	}
	d.types = types

	file := &File{Path: path, Types: types}
	for i, m := range raw.Matches {
		c, err := d.decodeCase(i, m)
		if err != nil {
			return nil, err
		}
		file.Cases = append(file.Cases, c)
	}
	tracer().Debugf("decoded %d cases from %s", len(file.Cases), path)
	return file, nil
}

func (d *fixtureDecoder) decodeCase(index int, m matchYAML) (*Case, error) {
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("match-%d", index)
	}
	scrutinee, err := d.decodeType(&m.Scrutinee)
	if err != nil {
		return nil, fmt.Errorf("%s: scrutinee: %w", name, err)
	}
	match := &typed.Match{Location: d.location(&m.Scrutinee), Scrutinee: scrutinee}
	for j, a := range m.Arms {
		p, err := d.decodePattern(&a.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: arm %d: %w", name, j, err)
		}
		arm := &typed.Arm{Location: d.location(&a.Pattern), Pattern: p}
		if a.Guard.Kind != 0 {
			if arm.Guard, err = d.decodeExpression(&a.Guard); err != nil {
				return nil, fmt.Errorf("%s: arm %d guard: %w", name, j, err)
			}
		}
		if a.Body.Kind != 0 {
			if arm.Body, err = d.decodeExpression(&a.Body); err != nil {
				return nil, fmt.Errorf("%s: arm %d body: %w", name, j, err)
			}
		} else {
			arm.Body = &Const{Location: arm.Location, Value: runtime.Int{Value: int64(j)}}
		}
		match.Arms = append(match.Arms, arm)
	}

	c := &Case{Name: name, Match: match, Expect: m.Expect}
	for j, s := range m.Samples {
		v, err := d.decodeValue(&s.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: sample %d: %w", name, j, err)
		}
		c.Samples = append(c.Samples, Sample{Location: d.location(&s.Value), Value: v, Arm: s.Arm})
	}
	return c, nil
}

type fixtureDecoder struct {
	path    string
	content []rune
	types   map[string]typed.Type
}

func (d *fixtureDecoder) location(node *yaml.Node) ast.Location {
	if node.Line == 0 {
		return ast.Location{}
	}
	return ast.NewLocationSrc(d.path, d.content, uint32(node.Line-1), uint32(node.Column-1))
}

func (d *fixtureDecoder) errorf(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %s", d.path, node.Line, node.Column, fmt.Sprintf(format, args...))
}

// entries returns the key/value pairs of a mapping node in document order.
func entries(node *yaml.Node) [][2]*yaml.Node {
	result := make([][2]*yaml.Node, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		result = append(result, [2]*yaml.Node{node.Content[i], node.Content[i+1]})
	}
	return result
}

func lookup(node *yaml.Node, key string) *yaml.Node {
	for _, e := range entries(node) {
		if e[0].Value == key {
			return e[1]
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}
