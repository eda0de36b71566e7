package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/common"
	"strings"
)

// Type describes the shape of a scrutinee as far as pattern checking needs it.
type Type interface {
	fmt.Stringer
	_type()
}

type TBool struct{}

func (TBool) _type() {}

func (TBool) String() string { return "Bool" }

// TInt is a signed 64 bit integer.
type TInt struct{}

func (TInt) _type() {}

func (TInt) String() string { return "Int" }

// TChar ranges over unicode scalar values, surrogates excluded.
type TChar struct{}

func (TChar) _type() {}

func (TChar) String() string { return "Char" }

type TString struct{}

func (TString) _type() {}

func (TString) String() string { return "String" }

type TFloat struct{}

func (TFloat) _type() {}

func (TFloat) String() string { return "Float" }

type TUnit struct{}

func (TUnit) _type() {}

func (TUnit) String() string { return "()" }

// TNever has no values.
type TNever struct{}

func (TNever) _type() {}

func (TNever) String() string { return "Never" }

type DataOption struct {
	Name   ast.DataOptionIdentifier
	Values []Type
}

func (d *DataOption) String() string {
	if len(d.Values) == 0 {
		return d.Name.Short()
	}
	return fmt.Sprintf("%s(%s)", d.Name.Short(), common.Join(d.Values, ", "))
}

// TData is a sum type. Options may refer back to the same *TData.
type TData struct {
	Name    ast.FullIdentifier
	Options []*DataOption
}

func (*TData) _type() {}

func (t *TData) String() string {
	return string(t.Name.Name())
}

// Option looks up a variant by its full or short name.
func (t *TData) Option(name ast.DataOptionIdentifier) (*DataOption, int, bool) {
	for i, o := range t.Options {
		if o.Name == name || o.Name.Short() == name.Short() {
			return o, i, true
		}
	}
	return nil, -1, false
}

type StructField struct {
	Name ast.Identifier
	Type Type
}

type TStruct struct {
	Name   ast.FullIdentifier
	Fields []StructField
}

func (*TStruct) _type() {}

func (t *TStruct) String() string {
	if t.Name != "" {
		return string(t.Name.Name())
	}
	return fmt.Sprintf("{ %s }", strings.Join(common.Map(func(f StructField) string {
		return fmt.Sprintf("%s: %v", f.Name, f.Type)
	}, t.Fields), ", "))
}

// FieldOrder returns the declared field order, which is the column order used
// when a struct pattern is specialized.
func (t *TStruct) FieldOrder() []ast.Identifier {
	return common.Map(func(f StructField) ast.Identifier { return f.Name }, t.Fields)
}

func (t *TStruct) Field(name ast.Identifier) (Type, int, bool) {
	for i, f := range t.Fields {
		if f.Name == name {
			return f.Type, i, true
		}
	}
	return nil, -1, false
}

type TTuple struct {
	Items []Type
}

func (*TTuple) _type() {}

func (t *TTuple) String() string {
	return fmt.Sprintf("( %s )", common.Join(t.Items, ", "))
}

type TList struct {
	Elem Type
}

func (*TList) _type() {}

func (t *TList) String() string {
	return fmt.Sprintf("List[%v]", t.Elem)
}

func NewOption(value Type) *TData {
	return &TData{
		Name: common.NarBaseOptionOption,
		Options: []*DataOption{
			{Name: common.NarBaseOptionSome, Values: []Type{value}},
			{Name: common.NarBaseOptionNone},
		},
	}
}

func NewResult(value Type, err Type) *TData {
	return &TData{
		Name: common.NarBaseResultResult,
		Options: []*DataOption{
			{Name: common.NarBaseResultOk, Values: []Type{value}},
			{Name: common.NarBaseResultErr, Values: []Type{err}},
		},
	}
}

// IsUninhabited reports whether no value of t can exist. Recursive data types
// currently being inspected count as inhabited.
func IsUninhabited(t Type) bool {
	return isUninhabited(t, map[*TData]struct{}{})
}

func isUninhabited(t Type, visiting map[*TData]struct{}) bool {
	switch e := t.(type) {
	case TNever:
		return true
	case *TData:
		if _, ok := visiting[e]; ok {
			return false
		}
		visiting[e] = struct{}{}
		defer delete(visiting, e)
		for _, o := range e.Options {
			if !isOptionUninhabited(o, visiting) {
				return false
			}
		}
		return true
	case *TStruct:
		return common.Any(func(f StructField) bool { return isUninhabited(f.Type, visiting) }, e.Fields)
	case *TTuple:
		return common.Any(func(x Type) bool { return isUninhabited(x, visiting) }, e.Items)
	}
	return false
}

// IsOptionUninhabited reports whether a variant carries a payload that cannot be built.
func IsOptionUninhabited(o *DataOption) bool {
	return isOptionUninhabited(o, map[*TData]struct{}{})
}

func isOptionUninhabited(o *DataOption, visiting map[*TData]struct{}) bool {
	return common.Any(func(x Type) bool { return isUninhabited(x, visiting) }, o.Values)
}

// Signature renders t structurally, expanding data types once. It is stable
// between runs and is used to key cached verdicts.
func Signature(t Type) string {
	sb := strings.Builder{}
	writeSignature(&sb, t, map[*TData]struct{}{})
	return sb.String()
}

func writeSignature(sb *strings.Builder, t Type, seen map[*TData]struct{}) {
	switch e := t.(type) {
	case *TData:
		sb.WriteString(string(e.Name))
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		sb.WriteString("{")
		for i, o := range e.Options {
			if i > 0 {
				sb.WriteString("|")
			}
			sb.WriteString(string(o.Name))
			sb.WriteString("(")
			for j, v := range o.Values {
				if j > 0 {
					sb.WriteString(",")
				}
				writeSignature(sb, v, seen)
			}
			sb.WriteString(")")
		}
		sb.WriteString("}")
	case *TStruct:
		sb.WriteString(string(e.Name))
		sb.WriteString("{")
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(string(f.Name))
			sb.WriteString(":")
			writeSignature(sb, f.Type, seen)
		}
		sb.WriteString("}")
	case *TTuple:
		sb.WriteString("(")
		for i, x := range e.Items {
			if i > 0 {
				sb.WriteString(",")
			}
			writeSignature(sb, x, seen)
		}
		sb.WriteString(")")
	case *TList:
		sb.WriteString("[")
		writeSignature(sb, e.Elem, seen)
		sb.WriteString("]")
	default:
		sb.WriteString(t.String())
	}
}
