package typed

import (
	"nar-match/internal/pkg/ast"
)

// Location-less constructors for patterns, types and arms.

func Wild() Pattern {
	return NewPWildcard(ast.Location{})
}

func Bind(name string) Pattern {
	return NewPBinding(ast.Location{}, ast.Identifier(name))
}

func Int(v int64) Pattern {
	return NewPLiteral(ast.Location{}, ast.CInt{Value: v})
}

func Bool(v bool) Pattern {
	return NewPLiteral(ast.Location{}, ast.CBool{Value: v})
}

func Char(v rune) Pattern {
	return NewPLiteral(ast.Location{}, ast.CChar{Value: v})
}

func Str(v string) Pattern {
	return NewPLiteral(ast.Location{}, ast.CString{Value: v})
}

func Float(v float64) Pattern {
	return NewPLiteral(ast.Location{}, ast.CFloat{Value: v})
}

func Unit() Pattern {
	return NewPLiteral(ast.Location{}, ast.CUnit{})
}

func Variant(name string, args ...Pattern) Pattern {
	return NewPVariant(ast.Location{}, ast.DataOptionIdentifier(name), args...)
}

func Tuple(items ...Pattern) Pattern {
	return NewPTuple(ast.Location{}, items...)
}

func Field(name string, p Pattern) PField {
	return PField{Name: ast.Identifier(name), Pattern: p}
}

func Struct(hasRest bool, fields ...PField) Pattern {
	return NewPStruct(ast.Location{}, hasRest, fields...)
}

func List(items ...Pattern) Pattern {
	return NewPList(ast.Location{}, items...)
}

func ListRest(prefix []Pattern, rest string, suffix []Pattern) Pattern {
	return NewPListRest(ast.Location{}, prefix, ast.Identifier(rest), suffix)
}

func IntRange(lo, hi int64, inclusive bool) Pattern {
	return NewPRange(ast.Location{}, ast.CInt{Value: lo}, ast.CInt{Value: hi}, inclusive)
}

func CharRange(lo, hi rune, inclusive bool) Pattern {
	return NewPRange(ast.Location{}, ast.CChar{Value: lo}, ast.CChar{Value: hi}, inclusive)
}

func Or(alternatives ...Pattern) Pattern {
	return NewPOr(ast.Location{}, alternatives...)
}

func At(name string, inner Pattern) Pattern {
	return NewPAt(ast.Location{}, ast.Identifier(name), inner)
}

func NewArm(p Pattern, guard Expression, body Expression) *Arm {
	return &Arm{Pattern: p, Guard: guard, Body: body}
}

func NewMatch(scrutinee Type, arms ...*Arm) *Match {
	return &Match{Scrutinee: scrutinee, Arms: arms}
}

// NewData builds a sum type from option names and payloads, in declaration order.
func NewData(name string, options ...*DataOption) *TData {
	full := ast.FullIdentifier(name)
	for _, o := range options {
		o.Name = ast.DataOptionIdentifier(string(full) + "#" + o.Name.Short())
	}
	return &TData{Name: full, Options: options}
}

func Opt(name string, values ...Type) *DataOption {
	return &DataOption{Name: ast.DataOptionIdentifier(name), Values: values}
}

func NewStruct(name string, fields ...StructField) *TStruct {
	return &TStruct{Name: ast.FullIdentifier(name), Fields: fields}
}

func Fld(name string, t Type) StructField {
	return StructField{Name: ast.Identifier(name), Type: t}
}
