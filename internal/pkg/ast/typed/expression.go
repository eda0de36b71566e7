package typed

import (
	"fmt"
	"nar-match/internal/pkg/ast"
)

// Expression is a guard or arm body. Its meaning belongs to the caller; the
// pattern core only threads it through and hands it to an interpreter.
type Expression interface {
	fmt.Stringer
	GetLocation() ast.Location
}

type Arm struct {
	ast.Location
	Pattern Pattern
	Guard   Expression
	Body    Expression
}

func (a *Arm) HasGuard() bool {
	return a.Guard != nil
}

func (a *Arm) String() string {
	if a.Guard != nil {
		return fmt.Sprintf("%v if %v -> %v", a.Pattern, a.Guard, a.Body)
	}
	return fmt.Sprintf("%v -> %v", a.Pattern, a.Body)
}

// Match is a typed match expression: a scrutinee type and arms in source order.
type Match struct {
	ast.Location
	Scrutinee Type
	Arms      []*Arm
}
