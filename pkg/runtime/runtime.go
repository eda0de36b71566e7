package runtime

import (
	"errors"
	"fmt"
	"nar-match/internal/pkg/ast/typed"
	"nar-match/internal/pkg/common"
)

// ErrNoMatch is returned when no arm of a match that was not proven
// exhaustive accepts the scrutinee.
var ErrNoMatch = errors.New("no arm matched")

// Interpreter evaluates guards and arm bodies.
type Interpreter interface {
	Evaluate(expr typed.Expression, env *Environment) (Value, error)
}

type StateKind int

const (
	StateTesting StateKind = iota
	StateMatched
	StateNoMatch
)

func (k StateKind) String() string {
	switch k {
	case StateTesting:
		return "testing"
	case StateMatched:
		return "matched"
	}
	return "no match"
}

// State of the arm selection. Arm is meaningful for Testing and Matched.
type State struct {
	Kind StateKind
	Arm  int
}

func (s State) String() string {
	if s.Kind == StateNoMatch {
		return s.Kind.String()
	}
	return fmt.Sprintf("%v(%d)", s.Kind, s.Arm)
}

// Evaluator runs match expressions. It keeps no state between calls, so
// nested and concurrent matches are independent.
type Evaluator struct {
	interpreter Interpreter
}

func NewEvaluator(interpreter Interpreter) *Evaluator {
	return &Evaluator{interpreter: interpreter}
}

// Evaluate selects the first arm whose pattern matches scrutinee and whose
// guard holds, then evaluates its body. Bindings live in a fresh scope whose
// parent is env. exhaustive tells whether the checker proved the match
// exhaustive; falling through such a match is an internal error.
func (ev *Evaluator) Evaluate(match *typed.Match, scrutinee Value, env *Environment, exhaustive bool) (Value, error) {
	_, value, err := ev.run(match, scrutinee, env, exhaustive)
	return value, err
}

// Select is Evaluate without running the body. It returns the index of the
// chosen arm and the scope its body would run in.
func (ev *Evaluator) Select(match *typed.Match, scrutinee Value, env *Environment) (int, *Environment, error) {
	state := State{Kind: StateTesting}
	var scope *Environment
	for {
		switch state.Kind {
		case StateTesting:
			if state.Arm >= len(match.Arms) {
				state = State{Kind: StateNoMatch}
				continue
			}
			arm := match.Arms[state.Arm]
			bindings, ok, err := MatchPattern(arm.Pattern, scrutinee)
			if err != nil {
				return -1, nil, err
			}
			if !ok {
				state = State{Kind: StateTesting, Arm: state.Arm + 1}
				continue
			}
			scope = NewEnvironment(env)
			for _, b := range bindings {
				scope.Define(b.Name, b.Value)
			}
			if arm.Guard != nil {
				passed, err := ev.guard(arm, scope)
				if err != nil {
					return -1, nil, err
				}
				if !passed {
					state = State{Kind: StateTesting, Arm: state.Arm + 1}
					continue
				}
			}
			state = State{Kind: StateMatched, Arm: state.Arm}
		case StateMatched:
			tracer().Debugf("%v selected for %v", state, scrutinee)
			return state.Arm, scope, nil
		case StateNoMatch:
			return -1, nil, fmt.Errorf("%w: %v", ErrNoMatch, scrutinee)
		}
	}
}

func (ev *Evaluator) run(match *typed.Match, scrutinee Value, env *Environment, exhaustive bool) (int, Value, error) {
	arm, scope, err := ev.Select(match, scrutinee, env)
	if err != nil {
		if exhaustive && errors.Is(err, ErrNoMatch) {
			return -1, nil, common.NewCompilerError(fmt.Sprintf(
				"match at %v was proven exhaustive but no arm accepts %v; arms:\n%s",
				match.Location, scrutinee, common.Join(match.Arms, "\n")))
		}
		return -1, nil, err
	}
	value, err := ev.interpreter.Evaluate(match.Arms[arm].Body, scope)
	if err != nil {
		return -1, nil, err
	}
	return arm, value, nil
}

func (ev *Evaluator) guard(arm *typed.Arm, scope *Environment) (bool, error) {
	v, err := ev.interpreter.Evaluate(arm.Guard, scope)
	if err != nil {
		return false, err
	}
	b, ok := v.(Bool)
	if !ok {
		return false, common.Error{
			Location: arm.Guard.GetLocation(),
			Message:  fmt.Sprintf("guard `%v` evaluated to %v, expected a Bool", arm.Guard, v),
		}
	}
	return b.Value, nil
}
