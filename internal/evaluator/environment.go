package evaluator

import (
	"sync"

	"github.com/funvibe/blisp/internal/typesystem"
)

// Binding is one variable slot. Type is fixed the moment the binding is
// created and never changes; Value == nil is the Declared state, a non-nil
// Value the Initialized state.
type Binding struct {
	Name  string
	Type  typesystem.Type
	Value Object
}

// Initialized reports whether the binding holds a value yet.
func (b *Binding) Initialized() bool { return b.Value != nil }

// Environment is the single flat store of variable bindings shared by the
// resolver (which installs and checks the fixed types) and the evaluator
// (which fills in values). The grammar has no nested scopes, so there is no
// outer chain. Not safe for concurrent mutation of one program run without
// external synchronization; the mutex only guards against torn reads when
// the environment is inspected from another goroutine.
type Environment struct {
	mu    sync.RWMutex
	store map[string]*Binding
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]*Binding)}
}

// Declare inserts a binding with a fixed type and no value. Returns false
// if the name is already taken.
func (e *Environment) Declare(name string, typ typesystem.Type) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.store[name]; ok {
		return false
	}
	e.store[name] = &Binding{Name: name, Type: typ}
	return true
}

// Lookup returns the binding for name.
func (e *Environment) Lookup(name string) (*Binding, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.store[name]
	return b, ok
}

// SetValue transitions a binding to Initialized. Returns false if no such
// binding exists; the value is assumed to already match the binding's type
// (the resolver pinned it).
func (e *Environment) SetValue(name string, val Object) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.store[name]
	if !ok {
		return false
	}
	b.Value = val
	return true
}

// Value returns the initialized value of name; ok is false when the name is
// unknown or still only Declared.
func (e *Environment) Value(name string) (Object, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	b, ok := e.store[name]
	if !ok || b.Value == nil {
		return nil, false
	}
	return b.Value, true
}
