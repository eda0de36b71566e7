package processors

import (
	"errors"
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"nar-match/internal/pkg/config"
)

// ErrStepLimit is returned when the analysis of a single match exceeds its step
// or depth budget.
var ErrStepLimit = errors.New("pattern analysis exceeded its resource limits")

// engine runs the usefulness algorithm. An engine is used by one goroutine
// for one match; it only carries the step budget and the overlap sink.
type engine struct {
	limits   config.Limits
	steps    int
	overlaps *overlapSink
}

func newEngine(limits config.Limits) *engine {
	return &engine{limits: limits}
}

// useful computes witnesses for query against m: value vectors matched by
// query and by no row of m. It stops after want witnesses. An empty result
// means query is not useful.
func (e *engine) useful(m matrix, query []Pattern, types []typed.Type, depth int, want int) ([][]Pattern, error) {
	e.steps++
	if e.steps > e.limits.MaxSteps || depth > e.limits.MaxDepth {
		return nil, fmt.Errorf("%w: %d steps, depth %d", ErrStepLimit, e.steps, depth)
	}
	if want <= 0 {
		return nil, nil
	}
	if len(query) != len(types) {
		return nil, common.NewCompilerErrorWithDump("query arity does not match column types", m.dump(types, query))
	}
	for _, r := range m {
		if len(r.patterns) != len(query) {
			return nil, common.NewCompilerErrorWithDump(
				fmt.Sprintf("row of arm %d has arity %d, expected %d", r.arm, len(r.patterns), len(query)),
				m.dump(types, query))
		}
	}

	if len(query) == 0 {
		if len(m) == 0 {
			return [][]Pattern{{}}, nil
		}
		return nil, nil
	}

	m = m.expandOrs()
	switch head := query[0].(type) {
	case PatternOr:
		var result [][]Pattern
		for _, alt := range head.Alternatives {
			ws, err := e.useful(m, common.Concat([]Pattern{alt}, query[1:]), types, depth+1, e.remaining(want, result))
			if err != nil {
				return nil, err
			}
			result = append(result, ws...)
			if e.satisfied(want, result) {
				break
			}
		}
		return result, nil

	case PatternConstructor:
		heads := m.heads()
		e.checkOverlap(head, heads)
		var result [][]Pattern
		for _, c := range splitConstructor(types[0], head.Ctor, ctorsOf(heads)) {
			ws, err := e.usefulForCtor(m, query, types, c, depth, e.remaining(want, result))
			if err != nil {
				return nil, err
			}
			result = append(result, ws...)
			if e.satisfied(want, result) {
				break
			}
		}
		return result, nil

	case PatternAnything:
		heads := m.heads()
		all, missing, err := splitWildcard(types[0], ctorsOf(heads))
		if err != nil {
			return nil, err
		}
		if len(missing) == 0 {
			var result [][]Pattern
			for _, c := range all {
				ws, err := e.usefulForCtor(m, query, types, c, depth, e.remaining(want, result))
				if err != nil {
					return nil, err
				}
				result = append(result, ws...)
				if e.satisfied(want, result) {
					break
				}
			}
			return result, nil
		}

		ws, err := e.useful(m.defaultMatrix(), query[1:], types[1:], depth+1, want)
		if err != nil || len(ws) == 0 {
			return nil, err
		}
		if len(heads) == 0 {
			return common.Map(func(w []Pattern) []Pattern {
				return common.Concat([]Pattern{PatternAnything{}}, w)
			}, ws), nil
		}
		var result [][]Pattern
		for _, w := range ws {
			for _, c := range missing {
				fts, err := fieldTypes(types[0], c)
				if err != nil {
					return nil, err
				}
				result = append(result, common.Concat([]Pattern{PatternConstructor{
					Ctor: c,
					Args: common.Repeat(Pattern(PatternAnything{}), len(fts)),
				}}, w))
				if len(result) >= want {
					return result, nil
				}
			}
		}
		return result, nil
	}
	return nil, common.NewCompilerErrorWithDump(fmt.Sprintf("unknown pattern %T in query", query[0]), m.dump(types, query))
}

// usefulForCtor specializes matrix and query by c and rebuilds the witnesses
// of the specialized problem into witnesses for the original one.
func (e *engine) usefulForCtor(
	m matrix, query []Pattern, types []typed.Type, c Constructor, depth int, want int,
) ([][]Pattern, error) {
	fts, err := fieldTypes(types[0], c)
	if err != nil {
		return nil, err
	}
	q, ok := specializeRowByCtor(c, len(fts))(query)
	if !ok {
		return nil, common.NewCompilerErrorWithDump(
			fmt.Sprintf("query head does not cover constructor %v", c), m.dump(types, query))
	}
	ws, err := e.useful(m.specialize(c, len(fts)), q, common.Concat(fts, types[1:]), depth+1, want)
	if err != nil {
		return nil, err
	}
	return common.Map(func(w []Pattern) []Pattern {
		return common.Concat([]Pattern{PatternConstructor{Ctor: c, Args: w[:len(fts)]}}, w[len(fts):])
	}, ws), nil
}

// While overlaps are collected every alternative and every split piece is
// visited, however many witnesses were already found.
func (e *engine) satisfied(want int, result [][]Pattern) bool {
	return e.overlaps == nil && len(result) >= want
}

func (e *engine) remaining(want int, result [][]Pattern) int {
	if e.overlaps != nil {
		return max(want-len(result), 1)
	}
	return want - len(result)
}

func (e *engine) isUseful(m matrix, query []Pattern, types []typed.Type) (bool, error) {
	ws, err := e.useful(m, query, types, 0, 1)
	return len(ws) > 0, err
}

// overlapSink collects ranges of the query arm that partially overlap ranges
// of earlier arms.
type overlapSink struct {
	queryArm int
	found    []rangeOverlap
}

type rangeOverlap struct {
	armA, armB int
	overlap    interval
	char       bool
}

func (e *engine) checkOverlap(query PatternConstructor, heads []headCtor) {
	if e.overlaps == nil {
		return
	}
	q, ok := query.Ctor.(ctorRange)
	if !ok || !q.FromRange {
		return
	}
	for _, h := range heads {
		r, ok := h.ctor.(ctorRange)
		if !ok || !r.FromRange || h.arm == e.overlaps.queryArm {
			continue
		}
		shared, ok := q.Interval.intersect(r.Interval)
		if !ok || q.Interval.contains(r.Interval) || r.Interval.contains(q.Interval) {
			continue
		}
		if common.Any(func(o rangeOverlap) bool { return o.armA == h.arm && o.overlap == shared }, e.overlaps.found) {
			continue
		}
		e.overlaps.found = append(e.overlaps.found, rangeOverlap{
			armA:    h.arm,
			armB:    e.overlaps.queryArm,
			overlap: shared,
			char:    q.Char,
		})
	}
}
