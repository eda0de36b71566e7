package runtime

import (
	"fmt"
	"nar-match/internal/pkg/ast"
	"slices"
	"sync"
)

// Environment is a lexical scope. Lookups fall back to the parent chain.
type Environment struct {
	values map[ast.Identifier]Value
	parent *Environment
	mu     sync.RWMutex
}

func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		values: make(map[ast.Identifier]Value),
		parent: parent,
	}
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define inserts or shadows a binding in this scope.
func (e *Environment) Define(name ast.Identifier, value Value) {
	e.mu.Lock()
	e.values[name] = value
	e.mu.Unlock()
}

func (e *Environment) Get(name ast.Identifier) (Value, error) {
	e.mu.RLock()
	if v, ok := e.values[name]; ok {
		e.mu.RUnlock()
		return v, nil
	}
	parent := e.parent
	e.mu.RUnlock()
	if parent != nil {
		return parent.Get(name)
	}
	return nil, fmt.Errorf("undefined variable `%s`", name)
}

func (e *Environment) Has(name ast.Identifier) bool {
	_, err := e.Get(name)
	return err == nil
}

// Keys returns the names defined in this scope only, sorted.
func (e *Environment) Keys() []ast.Identifier {
	e.mu.RLock()
	keys := make([]ast.Identifier, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	e.mu.RUnlock()
	slices.Sort(keys)
	return keys
}
