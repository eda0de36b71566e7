package ast

import (
	"fmt"
	"strconv"
)

// ConstValue is a literal that may appear in a pattern.
type ConstValue interface {
	fmt.Stringer
	_constValue()
	EqualsTo(o ConstValue) bool
}

type CInt struct {
	Value int64
}

func (CInt) _constValue() {}

func (c CInt) EqualsTo(o ConstValue) bool {
	y, ok := o.(CInt)
	return ok && c.Value == y.Value
}

func (c CInt) String() string {
	return strconv.FormatInt(c.Value, 10)
}

type CBool struct {
	Value bool
}

func (CBool) _constValue() {}

func (c CBool) EqualsTo(o ConstValue) bool {
	y, ok := o.(CBool)
	return ok && c.Value == y.Value
}

func (c CBool) String() string {
	return strconv.FormatBool(c.Value)
}

type CChar struct {
	Value rune
}

func (CChar) _constValue() {}

func (c CChar) EqualsTo(o ConstValue) bool {
	y, ok := o.(CChar)
	return ok && c.Value == y.Value
}

func (c CChar) String() string {
	return strconv.QuoteRune(c.Value)
}

type CFloat struct {
	Value float64
}

func (CFloat) _constValue() {}

func (c CFloat) EqualsTo(o ConstValue) bool {
	y, ok := o.(CFloat)
	return ok && c.Value == y.Value
}

func (c CFloat) String() string {
	return strconv.FormatFloat(c.Value, 'g', -1, 64)
}

type CString struct {
	Value string
}

func (CString) _constValue() {}

func (c CString) EqualsTo(o ConstValue) bool {
	y, ok := o.(CString)
	return ok && c.Value == y.Value
}

func (c CString) String() string {
	return strconv.Quote(c.Value)
}

type CUnit struct {
}

func (CUnit) _constValue() {}

func (c CUnit) EqualsTo(o ConstValue) bool {
	_, ok := o.(CUnit)
	return ok
}

func (c CUnit) String() string {
	return "()"
}
