package processors

import (
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/config"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanFollowsArmOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	shape := typed.NewData("Shape",
		typed.Opt("Circle", typed.TInt{}),
		typed.Opt("Square", typed.TInt{}),
		typed.Opt("Empty"))
	r := check(t, shape,
		arm(typed.Or(typed.Variant("Circle", typed.Bind("r")), typed.Variant("Square", typed.Bind("r")))),
		guarded(typed.Variant("Empty")),
		arm(typed.Wild()),
	)
	require.NotNil(t, r.Plan)
	require.Len(t, r.Plan.Steps, 4)
	assert.Equal(t, []int{0, 0, 1, 2}, []int{
		r.Plan.Steps[0].ArmIndex, r.Plan.Steps[1].ArmIndex, r.Plan.Steps[2].ArmIndex, r.Plan.Steps[3].ArmIndex,
	})
	assert.Equal(t, 1, r.Plan.Steps[1].Alternative)
	assert.Equal(t, "Square(r)", r.Plan.Steps[1].Pattern.String())
	require.Len(t, r.Plan.Steps[1].Bindings, 1)
	assert.Equal(t, "r = $payload(0)", r.Plan.Steps[1].Bindings[0].String())
	assert.NotNil(t, r.Plan.Steps[2].Guard)
	assert.Len(t, r.Plan.StepsOf(0), 2)

	tree := r.Plan.Tree().String()
	assert.True(t, strings.Contains(tree, "Square(r)"), tree)
}

func TestPlanBindingPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	point := typed.NewStruct("Point", typed.Fld("x", typed.TInt{}), typed.Fld("tags", &typed.TList{Elem: typed.TInt{}}))
	r := check(t, point,
		arm(typed.Struct(false,
			typed.Field("x", typed.Bind("x")),
			typed.Field("tags", typed.ListRest([]typed.Pattern{typed.Bind("first")}, "middle", []typed.Pattern{typed.Bind("last")})))),
		arm(typed.Wild()),
	)
	steps := r.Plan.StepsOf(0)
	require.Len(t, steps, 1)
	paths := make([]string, 0)
	for _, b := range steps[0].Bindings {
		paths = append(paths, b.String())
	}
	assert.Equal(t, []string{
		"x = $.x",
		"first = $.tags[0]",
		"middle = $.tags[1:len-1]",
		"last = $.tags[len-1]",
	}, paths)
}

func TestPlanExpansionLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Limits.MaxSteps = 1000
	c, err := NewChecker(cfg)
	require.NoError(t, err)
	bit := typed.Or(typed.Bool(true), typed.Bool(false))
	items := make([]typed.Pattern, 12)
	types := make([]typed.Type, 12)
	for i := range items {
		items[i] = bit
		types[i] = typed.TBool{}
	}
	_, err = c.Check(typed.NewMatch(&typed.TTuple{Items: types}, arm(typed.Tuple(items...))))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestCheckIrrefutable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	c := newTestChecker(t)
	pair := &typed.TTuple{Items: []typed.Type{typed.TInt{}, typed.NewOption(typed.TInt{})}}

	r, err := c.CheckIrrefutable(typed.Tuple(typed.Bind("a"), typed.Bind("b")), pair, ast.Location{})
	require.NoError(t, err)
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)
	require.Len(t, r.Plan.Steps, 1)
	assert.Len(t, r.Plan.Steps[0].Bindings, 2)

	r, err = c.CheckIrrefutable(typed.Tuple(typed.Bind("a"), typed.Variant("Some", typed.Bind("b"))), pair, ast.Location{})
	require.NoError(t, err)
	assert.False(t, r.Exhaustive)
	require.Len(t, r.Problems, 1)
	refutable, ok := r.Problems[0].(RefutablePattern)
	require.True(t, ok)
	assert.Equal(t, []string{"(_, None)"}, witnessStrings(refutable.Witnesses))
}
