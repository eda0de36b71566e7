package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"

	"github.com/xlab/treeprint"
)

// row is one line of the pattern matrix. Rows created from the same arm by
// or-expansion share arm and guarded.
type row struct {
	patterns []Pattern
	arm      int
	guarded  bool
}

func (r row) String() string {
	return common.Join(r.patterns, ", ")
}

// matrix rows are never modified in place; every operation builds new rows.
type matrix []row

type headCtor struct {
	ctor Constructor
	arm  int
}

// expandOrs replaces rows starting with an or-pattern by one row per alternative.
func (m matrix) expandOrs() matrix {
	if !common.Any(func(r row) bool { _, ok := r.patterns[0].(PatternOr); return ok }, m) {
		return m
	}
	result := make(matrix, 0, len(m))
	for _, r := range m {
		result = append(result, expandRow(r)...)
	}
	return result
}

func expandRow(r row) []row {
	or, ok := r.patterns[0].(PatternOr)
	if !ok {
		return []row{r}
	}
	var result []row
	for _, alt := range or.Alternatives {
		result = append(result, expandRow(row{
			patterns: common.Concat([]Pattern{alt}, r.patterns[1:]),
			arm:      r.arm,
			guarded:  r.guarded,
		})...)
	}
	return result
}

func (m matrix) heads() []headCtor {
	var result []headCtor
	for _, r := range m {
		if c, ok := r.patterns[0].(PatternConstructor); ok {
			result = append(result, headCtor{ctor: c.Ctor, arm: r.arm})
		}
	}
	return result
}

func ctorsOf(heads []headCtor) []Constructor {
	return common.Map(func(h headCtor) Constructor { return h.ctor }, heads)
}

// specialize keeps the rows whose head covers c, replacing the head by its
// arity sub patterns. The matrix must be or-expanded.
func (m matrix) specialize(c Constructor, arity int) matrix {
	return common.MapIf(func(r row) (row, bool) {
		patterns, ok := specializeRowByCtor(c, arity)(r.patterns)
		return row{patterns: patterns, arm: r.arm, guarded: r.guarded}, ok
	}, m)
}

func specializeRowByCtor(c Constructor, arity int) func(patterns []Pattern) ([]Pattern, bool) {
	return func(patterns []Pattern) ([]Pattern, bool) {
		switch e := patterns[0].(type) {
		case PatternAnything:
			return common.Concat(common.Repeat(Pattern(PatternAnything{}), arity), patterns[1:]), true
		case PatternConstructor:
			if !covers(e.Ctor, c) {
				return nil, false
			}
			return common.Concat(specializeArgs(e, c), patterns[1:]), true
		}
		return nil, false
	}
}

// defaultMatrix keeps the rows starting with a wildcard, minus that column.
func (m matrix) defaultMatrix() matrix {
	return common.MapIf(func(r row) (row, bool) {
		if _, ok := r.patterns[0].(PatternAnything); !ok {
			return row{}, false
		}
		return row{patterns: r.patterns[1:], arm: r.arm, guarded: r.guarded}, true
	}, m)
}

func (m matrix) filter(p func(row) bool) matrix {
	return common.Filter(p, m)
}

// dump renders the matrix for internal error reports.
func (m matrix) dump(types []typed.Type, query []Pattern) string {
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("matrix [%s]", common.Join(types, ", ")))
	rows := tree.AddBranch("rows")
	for _, r := range m {
		label := fmt.Sprintf("arm %d: %v", r.arm, r)
		if r.guarded {
			label += " (guarded)"
		}
		rows.AddNode(label)
	}
	if query != nil {
		tree.AddNode(fmt.Sprintf("query: %s", common.Join(query, ", ")))
	}
	return tree.String()
}
