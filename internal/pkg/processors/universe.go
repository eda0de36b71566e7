package processors

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"strconv"
)

// splitWildcard enumerates the constructors of t as seen by a column whose
// rows start with heads. Open domains are cut into the classes the heads
// can tell apart. missing lists the constructors no head covers.
func splitWildcard(t typed.Type, heads []Constructor) (all []Constructor, missing []Constructor, err error) {
	switch e := t.(type) {
	case typed.TBool:
		all = []Constructor{ctorBool{Value: false}, ctorBool{Value: true}}
	case *typed.TData:
		for i, o := range e.Options {
			c := ctorVariant{Data: e, Option: o, Index: i}
			if typed.IsOptionUninhabited(o) && !common.Any(func(h Constructor) bool { return covers(h, c) }, heads) {
				continue
			}
			all = append(all, c)
		}
	case *typed.TTuple, *typed.TStruct, typed.TUnit:
		all = []Constructor{ctorSingle{}}
	case typed.TNever:
		return nil, nil, nil
	case typed.TInt, typed.TChar:
		_, char := e.(typed.TChar)
		var cuts []interval
		for _, h := range heads {
			if r, ok := h.(ctorRange); ok {
				cuts = append(cuts, r.Interval)
			}
		}
		for _, piece := range splitDomain(domainOf(char), cuts) {
			all = append(all, ctorRange{Interval: piece, Char: char})
		}
	case *typed.TList:
		prefix, suffix := sliceClasses(heads, nil)
		for n := 0; n < prefix+suffix; n++ {
			all = append(all, ctorSlice{Fixed: true, Prefix: n})
		}
		all = append(all, ctorSlice{Prefix: prefix, Suffix: suffix})
	case typed.TString, typed.TFloat:
		var seen []Constructor
		for _, h := range heads {
			if o, ok := h.(ctorOpaque); ok && !common.Any(func(x Constructor) bool { return covers(x, o) }, seen) {
				seen = append(seen, o)
			}
		}
		fresh := ctorOpaque{Value: freshLiteral(e, seen)}
		return append(seen, fresh), []Constructor{fresh}, nil
	default:
		return nil, nil, common.NewCompilerError(fmt.Sprintf("no constructor universe for type %v", t))
	}

	if len(all) == 0 && !typed.IsUninhabited(t) {
		return nil, nil, common.NewCompilerError(fmt.Sprintf("empty constructor universe for inhabited type %v", t))
	}
	for _, c := range all {
		if !common.Any(func(h Constructor) bool { return covers(h, c) }, heads) {
			missing = append(missing, c)
		}
	}
	return all, missing, nil
}

// splitConstructor refines a constructor coming from the query row into the
// classes of the column; the query is useful iff it is useful for one of them.
func splitConstructor(t typed.Type, c Constructor, heads []Constructor) []Constructor {
	switch e := c.(type) {
	case ctorRange:
		var cuts []interval
		for _, h := range heads {
			if r, ok := h.(ctorRange); ok {
				cuts = append(cuts, r.Interval)
			}
		}
		var result []Constructor
		for _, piece := range splitDomain(clip(domainOf(e.Char), e.Interval), cuts) {
			result = append(result, ctorRange{Interval: piece, Char: e.Char})
		}
		return result
	case ctorSlice:
		if e.Fixed {
			return []Constructor{e}
		}
		prefix, suffix := sliceClasses(heads, &e)
		var result []Constructor
		for n := e.Prefix + e.Suffix; n < prefix+suffix; n++ {
			result = append(result, ctorSlice{Fixed: true, Prefix: n})
		}
		return append(result, ctorSlice{Prefix: prefix, Suffix: suffix})
	}
	return []Constructor{c}
}

// sliceClasses chooses the length classes for a list column: every length
// below prefix+suffix is its own class and longer lists share one class
// inspecting their first prefix and last suffix elements.
func sliceClasses(heads []Constructor, extra *ctorSlice) (prefix int, suffix int) {
	maxFixed := -1
	visit := func(s ctorSlice) {
		if s.Fixed {
			maxFixed = max(maxFixed, s.Prefix)
		} else {
			prefix = max(prefix, s.Prefix)
			suffix = max(suffix, s.Suffix)
		}
	}
	for _, h := range heads {
		if s, ok := h.(ctorSlice); ok {
			visit(s)
		}
	}
	if extra != nil {
		visit(*extra)
	}
	if maxFixed+1 > prefix+suffix {
		prefix = maxFixed + 1 - suffix
	}
	return prefix, suffix
}

// freshLiteral returns a literal of t that none of seen equals.
func freshLiteral(t typed.Type, seen []Constructor) ast.ConstValue {
	taken := func(v ast.ConstValue) bool {
		return common.Any(func(c Constructor) bool {
			o, ok := c.(ctorOpaque)
			return ok && o.Value.EqualsTo(v)
		}, seen)
	}
	for i := 0; ; i++ {
		var v ast.ConstValue
		if _, ok := t.(typed.TFloat); ok {
			v = ast.CFloat{Value: float64(i)}
		} else if i == 0 {
			v = ast.CString{Value: ""}
		} else if i <= 26 {
			v = ast.CString{Value: string(rune('a' + i - 1))}
		} else {
			v = ast.CString{Value: "s" + strconv.Itoa(i)}
		}
		if !taken(v) {
			return v
		}
	}
}
