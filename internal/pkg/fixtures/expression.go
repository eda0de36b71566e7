package fixtures

import (
	"cmp"
	"fmt"
	"nar-match/internal/pkg/ast"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
	"nar-match/pkg/runtime"

	"gopkg.in/yaml.v3"
)

// Const is a literal value.
type Const struct {
	ast.Location
	Value runtime.Value
}

func (e *Const) GetLocation() ast.Location { return e.Location }

func (e *Const) String() string { return e.Value.String() }

// Var reads a name from the enclosing scopes.
type Var struct {
	ast.Location
	Name ast.Identifier
}

func (e *Var) GetLocation() ast.Location { return e.Location }

func (e *Var) String() string { return string(e.Name) }

type Binary struct {
	ast.Location
	Op          string
	Left, Right typed.Expression
}

func (e *Binary) GetLocation() ast.Location { return e.Location }

func (e *Binary) String() string { return fmt.Sprintf("(%v %s %v)", e.Left, e.Op, e.Right) }

type Not struct {
	ast.Location
	Operand typed.Expression
}

func (e *Not) GetLocation() ast.Location { return e.Location }

func (e *Not) String() string { return fmt.Sprintf("!%v", e.Operand) }

func (d *fixtureDecoder) decodeExpression(node *yaml.Node) (typed.Expression, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	loc := d.location(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!str" && node.Value != "()" {
			return &Var{Location: loc, Name: ast.Identifier(node.Value)}, nil
		}
		v, err := d.decodeValue(node)
		if err != nil {
			return nil, err
		}
		return &Const{Location: loc, Value: v}, nil
	case yaml.MappingNode:
		if op := lookup(node, "op"); op != nil {
			args := resolveAlias(lookup(node, "args"))
			if args == nil || args.Kind != yaml.SequenceNode || len(args.Content) != 2 {
				return nil, d.errorf(node, "operator `%s` takes two args", op.Value)
			}
			if !knownOperator(op.Value) {
				return nil, d.errorf(op, "unknown operator `%s`", op.Value)
			}
			left, err := d.decodeExpression(args.Content[0])
			if err != nil {
				return nil, err
			}
			right, err := d.decodeExpression(args.Content[1])
			if err != nil {
				return nil, err
			}
			return &Binary{Location: loc, Op: op.Value, Left: left, Right: right}, nil
		}
		if n := lookup(node, "not"); n != nil {
			operand, err := d.decodeExpression(n)
			if err != nil {
				return nil, err
			}
			return &Not{Location: loc, Operand: operand}, nil
		}
		if n := lookup(node, "value"); n != nil {
			v, err := d.decodeValue(n)
			if err != nil {
				return nil, err
			}
			return &Const{Location: loc, Value: v}, nil
		}
		v, err := d.valueMapping(node)
		if err != nil {
			return nil, err
		}
		return &Const{Location: loc, Value: v}, nil
	}
	return nil, d.errorf(node, "unexpected expression node")
}

func knownOperator(op string) bool {
	switch op {
	case "+", "-", "*", "==", "!=", "<", "<=", ">", ">=", "&&", "||":
		return true
	}
	return false
}

// Interpreter evaluates fixture expressions.
type Interpreter struct{}

func (Interpreter) Evaluate(expr typed.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *Const:
		return e.Value, nil
	case *Var:
		v, err := env.Get(e.Name)
		if err != nil {
			return nil, common.Error{Location: e.Location, Message: err.Error()}
		}
		return v, nil
	case *Not:
		v, err := Interpreter{}.Evaluate(e.Operand, env)
		if err != nil {
			return nil, err
		}
		b, ok := v.(runtime.Bool)
		if !ok {
			return nil, common.Error{Location: e.Location, Message: fmt.Sprintf("cannot negate %v", v)}
		}
		return runtime.Bool{Value: !b.Value}, nil
	case *Binary:
		return evalBinary(e, env)
	}
	return nil, common.NewCompilerError(fmt.Sprintf("unknown expression %T", expr))
}

func evalBinary(e *Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := Interpreter{}.Evaluate(e.Left, env)
	if err != nil {
		return nil, err
	}
	if e.Op == "&&" || e.Op == "||" {
		l, ok := left.(runtime.Bool)
		if !ok {
			return nil, operandError(e, left)
		}
		if (e.Op == "&&") != l.Value {
			return l, nil
		}
		right, err := Interpreter{}.Evaluate(e.Right, env)
		if err != nil {
			return nil, err
		}
		if _, ok := right.(runtime.Bool); !ok {
			return nil, operandError(e, right)
		}
		return right, nil
	}

	right, err := Interpreter{}.Evaluate(e.Right, env)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case "==":
		return runtime.Bool{Value: runtime.Equal(left, right)}, nil
	case "!=":
		return runtime.Bool{Value: !runtime.Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		c, ok := compare(left, right)
		if !ok {
			return nil, operandError(e, right)
		}
		switch e.Op {
		case "<":
			return runtime.Bool{Value: c < 0}, nil
		case "<=":
			return runtime.Bool{Value: c <= 0}, nil
		case ">":
			return runtime.Bool{Value: c > 0}, nil
		}
		return runtime.Bool{Value: c >= 0}, nil
	}

	switch l := left.(type) {
	case runtime.Int:
		r, ok := right.(runtime.Int)
		if !ok {
			return nil, operandError(e, right)
		}
		switch e.Op {
		case "+":
			return runtime.Int{Value: l.Value + r.Value}, nil
		case "-":
			return runtime.Int{Value: l.Value - r.Value}, nil
		}
		return runtime.Int{Value: l.Value * r.Value}, nil
	case runtime.Float:
		r, ok := right.(runtime.Float)
		if !ok {
			return nil, operandError(e, right)
		}
		switch e.Op {
		case "+":
			return runtime.Float{Value: l.Value + r.Value}, nil
		case "-":
			return runtime.Float{Value: l.Value - r.Value}, nil
		}
		return runtime.Float{Value: l.Value * r.Value}, nil
	case runtime.String:
		r, ok := right.(runtime.String)
		if !ok || e.Op != "+" {
			return nil, operandError(e, right)
		}
		return runtime.String{Value: l.Value + r.Value}, nil
	}
	return nil, operandError(e, left)
}

func compare(a, b runtime.Value) (int, bool) {
	switch x := a.(type) {
	case runtime.Int:
		y, ok := b.(runtime.Int)
		return cmp.Compare(x.Value, y.Value), ok
	case runtime.Char:
		y, ok := b.(runtime.Char)
		return cmp.Compare(x.Value, y.Value), ok
	case runtime.Float:
		y, ok := b.(runtime.Float)
		return cmp.Compare(x.Value, y.Value), ok
	case runtime.String:
		y, ok := b.(runtime.String)
		return cmp.Compare(x.Value, y.Value), ok
	}
	return 0, false
}

func operandError(e *Binary, v runtime.Value) error {
	return common.Error{
		Location: e.Location,
		Message:  fmt.Sprintf("operator `%s` cannot be applied to %v", e.Op, v),
	}
}
