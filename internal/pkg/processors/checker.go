package processors

import (
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"nar-match/internal/pkg/config"
	"slices"
)

// Checker analyses match expressions. It holds no per-match state and may be
// used from several goroutines at once.
type Checker struct {
	config config.Config
	cache  *VerdictCache
}

func NewChecker(cfg config.Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Checker{config: cfg}
	if cfg.CacheSize > 0 {
		c.cache = NewVerdictCache(cfg.CacheSize)
	}
	return c, nil
}

// Cache returns the verdict cache, nil when caching is disabled.
func (c *Checker) Cache() *VerdictCache {
	return c.cache
}

// verdict is the location independent outcome of the analysis of a match.
type verdict struct {
	exhaustive    bool
	witnesses     []typed.Pattern
	truncated     bool
	guardCatchAll int
	unreachable   []unreachable
	overlaps      []rangeOverlap
}

type unreachable struct {
	arm        int
	subsumedBy []int
}

// Check analyses a typed match. Structural errors and warnings are returned
// in the report. The error result is reserved for ill-typed input, exceeded
// resource limits and broken internal invariants.
func (c *Checker) Check(match *typed.Match) (*Report, error) {
	report := &Report{Match: match}

	for _, arm := range match.Arms {
		problems, err := validateBindings(arm.Pattern, match.Scrutinee)
		if err != nil {
			return nil, err
		}
		report.Problems = append(report.Problems, problems...)
	}
	if report.HasErrors() {
		return report, nil
	}

	m, err := buildMatrix(match)
	if err != nil {
		return nil, err
	}

	var v *verdict
	var key uint64
	if c.cache != nil {
		key = contentKey(match)
		v, _ = c.cache.get(key)
	}
	if v == nil {
		v, err = c.analyse(match, m)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			c.cache.put(key, v)
		}
	} else {
		tracer().Debugf("verdict cache hit for match at %v", match.Location)
	}

	report.Exhaustive = v.exhaustive
	report.Problems = append(report.Problems, v.problems(match)...)

	report.Plan, err = buildPlan(match, c.config.Limits.MaxSteps)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func buildMatrix(match *typed.Match) (matrix, error) {
	m := make(matrix, 0, len(match.Arms))
	for i, arm := range match.Arms {
		p, err := simplifyPattern(arm.Pattern, match.Scrutinee)
		if err != nil {
			return nil, err
		}
		m = append(m, row{patterns: []Pattern{p}, arm: i, guarded: arm.HasGuard()})
	}
	return m, nil
}

func (c *Checker) analyse(match *typed.Match, m matrix) (*verdict, error) {
	e := newEngine(c.config.Limits)
	types := []typed.Type{match.Scrutinee}
	v := &verdict{guardCatchAll: -1}

	// Guards are not taken into account: a guarded row never covers anything,
	// even when the guard is always true, and guarded arms are never reported
	// as unreachable.
	unguarded := m.filter(func(r row) bool { return !r.guarded })

	for i, r := range m {
		if !r.guarded {
			earlier := unguarded.filter(func(x row) bool { return x.arm < i })
			useful, err := e.isUseful(earlier, r.patterns, types)
			if err != nil {
				return nil, err
			}
			if !useful {
				u := unreachable{arm: i}
				for _, x := range earlier {
					if slices.Contains(u.subsumedBy, x.arm) {
						continue
					}
					alone, err := e.isUseful(matrix{x}, r.patterns, types)
					if err != nil {
						return nil, err
					}
					if !alone {
						u.subsumedBy = append(u.subsumedBy, x.arm)
					}
				}
				v.unreachable = append(v.unreachable, u)
			}
		}

		if hasRange(r.patterns[0]) {
			e.overlaps = &overlapSink{queryArm: i}
			if _, err := e.isUseful(m.filter(func(x row) bool { return x.arm < i }), r.patterns, types); err != nil {
				return nil, err
			}
			v.overlaps = append(v.overlaps, e.overlaps.found...)
			e.overlaps = nil
		}
	}

	witnesses, truncated, err := e.witnesses(unguarded, match.Scrutinee, c.config.WitnessCap)
	if err != nil {
		return nil, err
	}
	v.exhaustive = len(witnesses) == 0
	if !v.exhaustive {
		lastGuarded := -1
		for _, r := range m {
			if r.guarded {
				lastGuarded = r.arm
			}
		}
		if lastGuarded >= 0 {
			all := common.Map(func(r row) row { return row{patterns: r.patterns, arm: r.arm} }, m)
			stillMissing, err := e.isUseful(all, []Pattern{PatternAnything{}}, types)
			if err != nil {
				return nil, err
			}
			if !stillMissing {
				v.guardCatchAll = lastGuarded
			}
		}
		v.witnesses = witnesses
		v.truncated = truncated
	}
	tracer().Debugf("match at %v: exhaustive=%v after %d steps", match.Location, v.exhaustive, e.steps)
	return v, nil
}

func hasRange(p Pattern) bool {
	switch e := p.(type) {
	case PatternConstructor:
		if r, ok := e.Ctor.(ctorRange); ok && r.FromRange {
			return true
		}
		return common.Any(hasRange, e.Args)
	case PatternOr:
		return common.Any(hasRange, e.Alternatives)
	}
	return false
}

func armLocation(match *typed.Match, i int) ast.Location {
	arm := match.Arms[i]
	if arm.Location.IsEmpty() {
		return arm.Pattern.GetLocation()
	}
	return arm.Location
}

// problems attaches a verdict to the arms of match, in arm order.
func (v *verdict) problems(match *typed.Match) []Problem {
	var problems []Problem
	for i := range match.Arms {
		for _, u := range v.unreachable {
			if u.arm != i {
				continue
			}
			problems = append(problems, UnreachableArm{
				ArmIndex:   i,
				Location:   armLocation(match, i),
				SubsumedBy: u.subsumedBy,
				Extra:      common.Map(func(j int) ast.Location { return armLocation(match, j) }, u.subsumedBy),
			})
		}
		for _, o := range v.overlaps {
			if o.armB != i {
				continue
			}
			problems = append(problems, OverlappingRange{
				ArmA:      o.armA,
				ArmB:      o.armB,
				LocationA: armLocation(match, o.armA),
				LocationB: armLocation(match, o.armB),
				Overlap:   o.overlap.format(o.char),
			})
		}
	}
	switch {
	case v.exhaustive:
	case v.guardCatchAll >= 0:
		problems = append(problems, GuardRequiresCatchAll{
			ArmIndex:  v.guardCatchAll,
			Location:  armLocation(match, v.guardCatchAll),
			Witnesses: v.witnesses,
		})
	default:
		loc := match.Location
		if loc.IsEmpty() && len(match.Arms) > 0 {
			loc = armLocation(match, len(match.Arms)-1)
		}
		problems = append(problems, NonExhaustiveMatch{
			Location:  loc,
			Witnesses: v.witnesses,
			Truncated: v.truncated,
		})
	}
	return problems
}
