package processors

import (
	"errors"
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"nar-match/internal/pkg/config"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T) *Checker {
	c, err := NewChecker(config.Default())
	require.NoError(t, err)
	return c
}

func check(t *testing.T, scrutinee typed.Type, arms ...*typed.Arm) *Report {
	report, err := newTestChecker(t).Check(typed.NewMatch(scrutinee, arms...))
	require.NoError(t, err)
	return report
}

func arm(p typed.Pattern) *typed.Arm {
	return typed.NewArm(p, nil, nil)
}

func guarded(p typed.Pattern) *typed.Arm {
	return typed.NewArm(p, guardStub{}, nil)
}

func witnessStrings(ws []typed.Pattern) []string {
	return common.Map(func(p typed.Pattern) string { return p.String() }, ws)
}

func problemsOf[T Problem](r *Report) []T {
	var result []T
	for _, p := range r.Problems {
		if x, ok := p.(T); ok {
			result = append(result, x)
		}
	}
	return result
}

func TestBoolExhaustive(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TBool{}, arm(typed.Bool(true)), arm(typed.Bool(false)))
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)
}

func TestBoolMissingFalse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TBool{}, arm(typed.Bool(true)))
	assert.False(t, r.Exhaustive)
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"false"}, witnessStrings(ne[0].Witnesses))
	assert.False(t, ne[0].Truncated)
	assert.True(t, r.HasErrors())
}

func TestOptionUnreachableArm(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.NewOption(typed.TInt{}),
		arm(typed.Variant("Some", typed.Bind("x"))),
		arm(typed.Variant("None")),
		arm(typed.Variant("Some", typed.Wild())),
	)
	assert.True(t, r.Exhaustive)
	require.Len(t, r.Problems, 1)
	u, ok := r.Problems[0].(UnreachableArm)
	require.True(t, ok, "expected an unreachable arm, got %v", r.Problems[0])
	assert.Equal(t, 2, u.ArmIndex)
	assert.Equal(t, []int{0}, u.SubsumedBy)
	assert.Equal(t, SeverityWarning, u.Severity())
	assert.False(t, r.HasErrors())
}

func TestOverlappingRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TInt{},
		arm(typed.IntRange(0, 10, false)),
		arm(typed.IntRange(5, 15, false)),
		arm(typed.Wild()),
	)
	assert.True(t, r.Exhaustive)
	require.Len(t, r.Problems, 1)
	o, ok := r.Problems[0].(OverlappingRange)
	require.True(t, ok)
	assert.Equal(t, 0, o.ArmA)
	assert.Equal(t, 1, o.ArmB)
	assert.Equal(t, "5..=9", o.Overlap)
}

func TestNestedRangeIsNotAnOverlap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TInt{},
		arm(typed.IntRange(0, 100, true)),
		arm(typed.IntRange(10, 20, true)),
		arm(typed.Wild()),
	)
	assert.Empty(t, problemsOf[OverlappingRange](r))
	u := problemsOf[UnreachableArm](r)
	require.Len(t, u, 1)
	assert.Equal(t, 1, u[0].ArmIndex)
}

func overlapStrings(r *Report) []string {
	return common.Map(func(o OverlappingRange) string {
		return fmt.Sprintf("%d/%d %s", o.ArmA, o.ArmB, o.Overlap)
	}, problemsOf[OverlappingRange](r))
}

func TestOverlapDoesNotDependOnAlternativeOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	for _, alternatives := range [][]typed.Pattern{
		{typed.IntRange(5, 15, false), typed.IntRange(20, 30, false)},
		{typed.IntRange(20, 30, false), typed.IntRange(5, 15, false)},
	} {
		r := check(t, typed.TInt{},
			arm(typed.IntRange(0, 10, false)),
			arm(typed.Or(alternatives...)),
			arm(typed.Wild()),
		)
		assert.Equal(t, []string{"0/1 5..=9"}, overlapStrings(r), "alternatives %v", alternatives)
	}
}

func TestOverlapInLaterTupleColumn(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	pair := &typed.TTuple{Items: []typed.Type{typed.TInt{}, typed.TInt{}}}
	r := check(t, pair,
		arm(typed.Tuple(typed.IntRange(11, 20, true), typed.IntRange(0, 10, true))),
		arm(typed.Tuple(typed.IntRange(0, 20, true), typed.IntRange(5, 15, true))),
	)
	assert.Equal(t, []string{"0/1 5..=10"}, overlapStrings(r))
}

func TestDistinctOverlapsBetweenTheSameArms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	pair := &typed.TTuple{Items: []typed.Type{typed.TInt{}, typed.TInt{}}}
	r := check(t, pair,
		arm(typed.Tuple(typed.IntRange(0, 10, true), typed.IntRange(0, 20, true))),
		arm(typed.Tuple(typed.IntRange(5, 15, true), typed.IntRange(15, 25, true))),
		arm(typed.Wild()),
	)
	assert.Equal(t, []string{"0/1 5..=10", "0/1 15..=20"}, overlapStrings(r))

	r = check(t, typed.TInt{},
		arm(typed.IntRange(0, 10, false)),
		arm(typed.Or(typed.IntRange(5, 15, false), typed.IntRange(-5, 3, false))),
		arm(typed.Wild()),
	)
	assert.Equal(t, []string{"0/1 5..=9", "0/1 0..=2"}, overlapStrings(r))
}

func TestListLengthClasses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	list := &typed.TList{Elem: typed.TInt{}}
	r := check(t, list,
		arm(typed.List()),
		arm(typed.List(typed.Bind("x"))),
		arm(typed.ListRest([]typed.Pattern{typed.Bind("x")}, "rest", nil)),
	)
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)

	r = check(t, list, arm(typed.List()), arm(typed.List(typed.Bind("x"))))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"[_, _, ..]"}, witnessStrings(ne[0].Witnesses))
}

func TestListSuffix(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	list := &typed.TList{Elem: typed.TBool{}}
	r := check(t, list,
		arm(typed.List()),
		arm(typed.ListRest(nil, "", []typed.Pattern{typed.Bool(true)})),
		arm(typed.ListRest(nil, "", []typed.Pattern{typed.Bool(false)})),
	)
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)
}

func TestGuardRequiresCatchAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TInt{}, guarded(typed.Bind("x")))
	assert.False(t, r.Exhaustive)
	require.Len(t, r.Problems, 1)
	g, ok := r.Problems[0].(GuardRequiresCatchAll)
	require.True(t, ok, "expected GuardRequiresCatchAll, got %v", r.Problems[0])
	assert.Equal(t, 0, g.ArmIndex)
	assert.Equal(t, []string{"_"}, witnessStrings(g.Witnesses))

	r = check(t, typed.TInt{}, guarded(typed.Bind("x")), arm(typed.Wild()))
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)
}

func TestGuardedArmIsNeverUnreachable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TBool{}, arm(typed.Wild()), guarded(typed.Bool(true)))
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)
}

func TestNonExhaustiveWithGuardsStillMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TBool{}, guarded(typed.Bool(true)))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Empty(t, problemsOf[GuardRequiresCatchAll](r))
}

func TestWitnessTruncation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	color := typed.NewData("Color", typed.Opt("Red"), typed.Opt("Green"), typed.Opt("Blue"),
		typed.Opt("Yellow"), typed.Opt("Black"))
	r := check(t, color, arm(typed.Variant("Red")))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"Green", "Blue", "Yellow"}, witnessStrings(ne[0].Witnesses))
	assert.True(t, ne[0].Truncated)
	assert.Contains(t, ne[0].Error(), "...")
}

func TestIntWitnesses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TInt{}, arm(typed.Int(0)), arm(typed.Int(1)), arm(typed.Int(2)))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.ElementsMatch(t, []string{"-1", "3"}, witnessStrings(ne[0].Witnesses))
}

func TestCharDomainHasAGap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TChar{},
		arm(typed.CharRange(0, 0xD7FF, true)),
		arm(typed.CharRange(0xE000, 0x10FFFF, true)),
	)
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)

	r = check(t, typed.TChar{}, arm(typed.CharRange(0, 0xD7FF, true)))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"'\\ue000'"}, witnessStrings(ne[0].Witnesses))
}

func TestStringAndFloatNeedCatchAll(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TString{}, arm(typed.Str("")), arm(typed.Str("a")))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{`"b"`}, witnessStrings(ne[0].Witnesses))

	r = check(t, typed.TFloat{}, arm(typed.Float(1.5)))
	ne = problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"0"}, witnessStrings(ne[0].Witnesses))

	r = check(t, typed.TString{}, arm(typed.Str("a")), arm(typed.Str("a")), arm(typed.Wild()))
	assert.True(t, r.Exhaustive)
	u := problemsOf[UnreachableArm](r)
	require.Len(t, u, 1)
	assert.Equal(t, 1, u[0].ArmIndex)
}

func TestUninhabitedOptionIsSkipped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.NewOption(typed.TNever{}), arm(typed.Variant("None")))
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)

	r = check(t, typed.TNever{})
	assert.True(t, r.Exhaustive)

	r = check(t, typed.NewData("Void"))
	assert.True(t, r.Exhaustive)
}

func TestStructAndTupleWitnesses(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	point := typed.NewStruct("Point", typed.Fld("x", typed.TInt{}), typed.Fld("y", typed.TBool{}))
	r := check(t, point, arm(typed.Struct(true, typed.Field("y", typed.Bool(true)))))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"{ x: _, y: false }"}, witnessStrings(ne[0].Witnesses))

	r = check(t, point,
		arm(typed.Struct(true, typed.Field("y", typed.Bool(true)))),
		arm(typed.Struct(false, typed.Field("x", typed.Wild()), typed.Field("y", typed.Bool(false)))),
	)
	assert.True(t, r.Exhaustive)

	pair := &typed.TTuple{Items: []typed.Type{typed.TBool{}, typed.TBool{}}}
	r = check(t, pair,
		arm(typed.Tuple(typed.Bool(true), typed.Wild())),
		arm(typed.Tuple(typed.Wild(), typed.Bool(true))),
	)
	ne = problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"(false, false)"}, witnessStrings(ne[0].Witnesses))
}

func TestNestedVariantWitness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.NewOption(typed.TBool{}), arm(typed.Variant("Some", typed.Bool(true))), arm(typed.Variant("None")))
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"Some(false)"}, witnessStrings(ne[0].Witnesses))
}

func TestUnionSubsumption(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TBool{}, arm(typed.Bool(true)), arm(typed.Bool(false)), arm(typed.Wild()))
	u := problemsOf[UnreachableArm](r)
	require.Len(t, u, 1)
	assert.Equal(t, 2, u[0].ArmIndex)
	assert.Empty(t, u[0].SubsumedBy)
}

func TestOrPatternCoverage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	shape := typed.NewData("Shape",
		typed.Opt("Circle", typed.TInt{}),
		typed.Opt("Square", typed.TInt{}),
		typed.Opt("Empty"))
	r := check(t, shape,
		arm(typed.Or(typed.Variant("Circle", typed.Bind("r")), typed.Variant("Square", typed.Bind("r")))),
		arm(typed.Variant("Empty")),
	)
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)

	r = check(t, shape,
		arm(typed.Or(typed.Variant("Circle", typed.Wild()), typed.Variant("Empty"))),
		arm(typed.Variant("Empty")),
	)
	assert.False(t, r.Exhaustive)
	u := problemsOf[UnreachableArm](r)
	require.Len(t, u, 1)
	assert.Equal(t, 1, u[0].ArmIndex)
	ne := problemsOf[NonExhaustiveMatch](r)
	require.Len(t, ne, 1)
	assert.Equal(t, []string{"Square(_)"}, witnessStrings(ne[0].Witnesses))
}

func TestInconsistentOrBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	shape := typed.NewData("Shape", typed.Opt("Circle", typed.TInt{}), typed.Opt("Label", typed.TString{}))
	r := check(t, shape,
		arm(typed.Or(typed.Variant("Circle", typed.Bind("r")), typed.Variant("Label", typed.Wild()))),
	)
	require.True(t, r.HasErrors())
	errs := problemsOf[InconsistentOrBinding](r)
	require.Len(t, errs, 1)
	assert.Nil(t, r.Plan)

	r = check(t, shape,
		arm(typed.Or(typed.Variant("Circle", typed.Bind("v")), typed.Variant("Label", typed.Bind("v")))),
	)
	errs = problemsOf[InconsistentOrBinding](r)
	require.Len(t, errs, 1)
	assert.NotEmpty(t, errs[0].Detail)

	r = check(t, &typed.TTuple{Items: []typed.Type{typed.TInt{}, typed.TInt{}}},
		arm(typed.Tuple(typed.Bind("a"), typed.Bind("a"))))
	dups := problemsOf[DuplicateBinding](r)
	require.Len(t, dups, 1)
	assert.Equal(t, "a", string(dups[0].Name))
}

func TestAtOverOrRequiresIdenticalBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	opt := typed.NewOption(typed.TInt{})
	r := check(t, opt, arm(typed.At("whole", typed.Or(typed.Variant("Some", typed.Bind("x")), typed.Variant("None")))))
	require.Len(t, problemsOf[InconsistentOrBinding](r), 1)

	r = check(t, opt, arm(typed.At("whole", typed.Or(typed.Variant("Some", typed.Wild()), typed.Variant("None")))))
	assert.True(t, r.Exhaustive)
	assert.Empty(t, r.Problems)
}

func TestIllTypedPatternIsAnError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	_, err := newTestChecker(t).Check(typed.NewMatch(typed.TBool{}, arm(typed.Int(1))))
	require.Error(t, err)
	var e common.Error
	assert.True(t, errors.As(err, &e))

	_, err = newTestChecker(t).Check(typed.NewMatch(typed.NewOption(typed.TInt{}), arm(typed.Variant("Nope"))))
	require.Error(t, err)
}

func TestStepLimit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	cfg := config.Default()
	cfg.Limits.MaxSteps = 3
	c, err := NewChecker(cfg)
	require.NoError(t, err)
	quad := &typed.TTuple{Items: []typed.Type{typed.TBool{}, typed.TBool{}, typed.TBool{}, typed.TBool{}}}
	_, err = c.Check(typed.NewMatch(quad,
		arm(typed.Tuple(typed.Bool(true), typed.Wild(), typed.Wild(), typed.Wild())),
		arm(typed.Tuple(typed.Wild(), typed.Bool(true), typed.Wild(), typed.Bool(false))),
	))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStepLimit))
}

func TestProblemsAreInArmOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "match.checker")
	defer teardown()
	//
	r := check(t, typed.TInt{},
		arm(typed.IntRange(0, 10, true)),
		arm(typed.Int(3)),
		arm(typed.IntRange(5, 20, true)),
		arm(typed.Int(7)),
	)
	require.Len(t, r.Problems, 4)
	_, ok := r.Problems[0].(UnreachableArm)
	assert.True(t, ok)
	_, ok = r.Problems[1].(OverlappingRange)
	assert.True(t, ok)
	_, ok = r.Problems[2].(UnreachableArm)
	assert.True(t, ok)
	_, ok = r.Problems[3].(NonExhaustiveMatch)
	assert.True(t, ok)
}
