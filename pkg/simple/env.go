package simple

import (
	"maps"
	"slices"
	"strings"
)

// Environment maps variable names to values. It is persistent: Update
// returns a new Environment and never alters the receiver, so any number of
// machine states may share one.
type Environment struct {
	vars map[string]Value
}

// NewEnvironment returns an Environment with no bindings.
func NewEnvironment() Environment {
	return Environment{}
}

// Get returns the value bound to name, if any.
func (env Environment) Get(name string) (Value, bool) {
	val, ok := env.vars[name]
	return val, ok
}

// Lookup returns the value bound to name, or an *UnboundVariableError.
func (env Environment) Lookup(name string) (Value, error) {
	val, ok := env.vars[name]
	if !ok {
		return nil, &UnboundVariableError{Name: name}
	}
	return val, nil
}

// Update returns a copy of env with name bound to val.
func (env Environment) Update(name string, val Value) Environment {
	vars := make(map[string]Value, len(env.vars)+1)
	maps.Copy(vars, env.vars)
	vars[name] = val
	return Environment{vars: vars}
}

func (env Environment) Len() int {
	return len(env.vars)
}

// Names returns the bound names in sorted order.
func (env Environment) Names() []string {
	return slices.Sorted(maps.Keys(env.vars))
}

// Equal reports whether both environments bind the same names to the same
// values.
func (env Environment) Equal(other Environment) bool {
	return maps.Equal(env.vars, other.vars)
}

// Map returns a copy of the bindings.
func (env Environment) Map() map[string]Value {
	return maps.Clone(env.vars)
}

func (env Environment) String() string {
	if len(env.vars) == 0 {
		return "{}"
	}
	pairs := make([]string, 0, len(env.vars))
	for _, name := range env.Names() {
		pairs = append(pairs, name+"="+env.vars[name].String())
	}
	return "{ " + strings.Join(pairs, ", ") + " }"
}
