package runtime

import (
	"fmt"
	"nar-match/internal/pkg/ast/typed"
)

// Resolve follows an access path from a scrutinee to one of its parts.
func Resolve(v Value, path []typed.PathStep) (Value, error) {
	for _, step := range path {
		switch s := step.(type) {
		case typed.PayloadField:
			x, ok := v.(Variant)
			if !ok || s.Index >= len(x.Args) {
				return nil, pathError(v, step)
			}
			v = x.Args[s.Index]
		case typed.TupleField:
			x, ok := v.(Tuple)
			if !ok || s.Index >= len(x.Items) {
				return nil, pathError(v, step)
			}
			v = x.Items[s.Index]
		case typed.RecordField:
			x, ok := v.(Struct)
			if !ok {
				return nil, pathError(v, step)
			}
			f, ok := x.Fields[s.Name]
			if !ok {
				return nil, pathError(v, step)
			}
			v = f
		case typed.ListIndex:
			x, ok := v.(List)
			if !ok || s.Index >= len(x.Items) {
				return nil, pathError(v, step)
			}
			v = x.Items[s.Index]
		case typed.ListFromEnd:
			x, ok := v.(List)
			if !ok || s.Offset < 1 || s.Offset > len(x.Items) {
				return nil, pathError(v, step)
			}
			v = x.Items[len(x.Items)-s.Offset]
		case typed.ListSlice:
			x, ok := v.(List)
			if !ok || s.From+s.FromEnd > len(x.Items) {
				return nil, pathError(v, step)
			}
			v = List{Items: append([]Value(nil), x.Items[s.From:len(x.Items)-s.FromEnd]...)}
		default:
			return nil, pathError(v, step)
		}
	}
	return v, nil
}

func pathError(v Value, step typed.PathStep) error {
	return fmt.Errorf("cannot apply %v to %v", step, v)
}
