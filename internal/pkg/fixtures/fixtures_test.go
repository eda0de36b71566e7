package fixtures

import (
	"context"
	"errors"
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"nar-match/internal/pkg/config"
	"nar-match/internal/pkg/processors"
	"nar-match/pkg/runtime"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problemKind(p processors.Problem) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", p), "processors.")
}

func verify(t *testing.T, c *Case, r *processors.Report) {
	e := c.Expect
	if e == nil {
		return
	}
	if e.Exhaustive != nil {
		assert.Equal(t, *e.Exhaustive, r.Exhaustive, "%s: exhaustive", c.Name)
	}
	if e.Problems != nil {
		assert.Equal(t, e.Problems, common.Map(problemKind, r.Problems), "%s: problems", c.Name)
	}
	var unreachable []int
	var overlaps [][2]int
	var witnesses []typed.Pattern
	var truncated bool
	guardCatchAll := -1
	for _, p := range r.Problems {
		switch x := p.(type) {
		case processors.UnreachableArm:
			unreachable = append(unreachable, x.ArmIndex)
		case processors.OverlappingRange:
			overlaps = append(overlaps, [2]int{x.ArmA, x.ArmB})
		case processors.NonExhaustiveMatch:
			witnesses, truncated = x.Witnesses, x.Truncated
		case processors.GuardRequiresCatchAll:
			witnesses, guardCatchAll = x.Witnesses, x.ArmIndex
		}
	}
	if e.Unreachable != nil {
		assert.Equal(t, e.Unreachable, unreachable, "%s: unreachable", c.Name)
	}
	if e.Overlaps != nil {
		assert.Equal(t, e.Overlaps, overlaps, "%s: overlaps", c.Name)
	}
	if e.Witnesses != nil {
		assert.Equal(t, e.Witnesses, common.Map(func(p typed.Pattern) string { return p.String() }, witnesses),
			"%s: witnesses", c.Name)
	}
	if e.Truncated != nil {
		assert.Equal(t, *e.Truncated, truncated, "%s: truncated", c.Name)
	}
	if e.GuardCatchAll != nil {
		assert.Equal(t, *e.GuardCatchAll, guardCatchAll, "%s: guard catch-all", c.Name)
	}
}

func TestScenarios(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.fixtures")
	defer teardown()
	//
	file, err := Load("testdata/scenarios.yaml")
	require.NoError(t, err)
	require.Len(t, file.Cases, 13)

	checker, err := processors.NewChecker(config.Default())
	require.NoError(t, err)
	reports, err := checker.CheckAll(context.Background(),
		common.Map(func(c *Case) *typed.Match { return c.Match }, file.Cases))
	require.NoError(t, err)

	ev := runtime.NewEvaluator(Interpreter{})
	for i, c := range file.Cases {
		r := reports[i]
		verify(t, c, r)
		for _, s := range c.Samples {
			if s.Arm == nil {
				continue
			}
			arm, _, err := ev.Select(c.Match, s.Value, runtime.NewEnvironment(nil))
			if *s.Arm < 0 {
				assert.True(t, errors.Is(err, runtime.ErrNoMatch), "%s: %v at %v", c.Name, s.Value, s.Location)
				continue
			}
			require.NoError(t, err, "%s: %v", c.Name, s.Value)
			assert.Equal(t, *s.Arm, arm, "%s: %v at %v", c.Name, s.Value, s.Location)
		}
	}
}

func TestBodiesEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.fixtures")
	defer teardown()
	//
	file, err := Load("testdata/scenarios.yaml")
	require.NoError(t, err)
	var c *Case
	for _, x := range file.Cases {
		if x.Name == "guard-with-fallback" {
			c = x
		}
	}
	require.NotNil(t, c)
	ev := runtime.NewEvaluator(Interpreter{})
	v, err := ev.Evaluate(c.Match, runtime.Int{Value: 21}, runtime.NewEnvironment(nil), true)
	require.NoError(t, err)
	assert.Equal(t, runtime.Int{Value: 42}, v)
}

func TestLocationsPointIntoTheFile(t *testing.T) {
	file, err := Load("testdata/scenarios.yaml")
	require.NoError(t, err)
	arm := file.Cases[0].Match.Arms[0]
	assert.Equal(t, file.Path, arm.Location.FilePath())
	line, col, _, _ := arm.Location.GetLineAndColumn()
	assert.Greater(t, line, 1)
	assert.Greater(t, col, 1)
}

func TestRecursiveTypes(t *testing.T) {
	file, err := Load("testdata/scenarios.yaml")
	require.NoError(t, err)
	tree, ok := file.Types["Tree"].(*typed.TData)
	require.True(t, ok)
	node, _, ok := tree.Option("Node")
	require.True(t, ok)
	assert.Same(t, tree, node.Values[0])
	assert.Equal(t, "Tree#Node", string(node.Name))
}

func TestDecodeErrors(t *testing.T) {
	for name, src := range map[string]string{
		"unknown type":      "matches:\n  - scrutinee: Nope\n    arms: []\n",
		"unknown key":       "matchez: []\n",
		"bad pattern":       "matches:\n  - scrutinee: Int\n    arms:\n      - pattern: {frobnicate: 1}\n",
		"bad char":          "matches:\n  - scrutinee: Char\n    arms:\n      - pattern: {char: ab}\n",
		"suffix needs rest": "matches:\n  - scrutinee: {list: Int}\n    arms:\n      - pattern: {list: [], suffix: [1]}\n",
		"bad operator":      "matches:\n  - scrutinee: Int\n    arms:\n      - pattern: x\n        guard: {op: \"%\", args: [x, 2]}\n",
		"duplicate type":    "types:\n  A:\n    variants: [X: []]\n  A:\n    fields: []\n",
		"empty":             "",
	} {
		_, err := Decode(name+".yaml", []byte(src))
		assert.Error(t, err, name)
	}
}

func TestInterpreterErrors(t *testing.T) {
	env := runtime.NewEnvironment(nil)
	_, err := Interpreter{}.Evaluate(&Var{Name: "missing"}, env)
	assert.Error(t, err)

	_, err = Interpreter{}.Evaluate(&Binary{
		Op:    "+",
		Left:  &Const{Value: runtime.Int{Value: 1}},
		Right: &Const{Value: runtime.String{Value: "a"}},
	}, env)
	var e common.Error
	assert.True(t, errors.As(err, &e))

	v, err := Interpreter{}.Evaluate(&Binary{
		Op:    "||",
		Left:  &Const{Value: runtime.Bool{Value: true}},
		Right: &Var{Name: "missing"},
	}, env)
	require.NoError(t, err)
	assert.Equal(t, runtime.Bool{Value: true}, v)

	v, err = Interpreter{}.Evaluate(&Not{Operand: &Binary{
		Op:    "<",
		Left:  &Const{Value: runtime.Char{Value: 'a'}},
		Right: &Const{Value: runtime.Char{Value: 'b'}},
	}}, env)
	require.NoError(t, err)
	assert.Equal(t, runtime.Bool{Value: false}, v)
}
