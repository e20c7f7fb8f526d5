package builtins

import (
	"strings"

	"phpsa/types"
)

// BuiltinFunc folds a call whose arguments are all known. It returns
// types.Unknown when the result cannot be computed statically.
type BuiltinFunc func(args []types.Value) types.Value

// Registry holds the language's built-in functions and classes. Names are
// case-insensitive. A function may be registered without a folder, in which
// case it is only known to exist.
type Registry struct {
	funcs     map[string]BuiltinFunc
	refParams map[string][]int
	classes   map[string]bool
}

// NewRegistry creates a registry with the standard library registered
func NewRegistry() *Registry {
	r := &Registry{
		funcs:     make(map[string]BuiltinFunc),
		refParams: make(map[string][]int),
		classes:   make(map[string]bool),
	}

	registerStrings(r)
	registerMath(r)
	registerTypes(r)
	registerArrays(r)
	registerOutput(r)
	registerMisc(r)
	registerClasses(r)

	return r
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, `\`))
}

// Register adds a builtin function. fn may be nil.
func (r *Registry) Register(name string, fn BuiltinFunc) {
	r.funcs[normalize(name)] = fn
}

// RegisterNames adds functions that exist but are never folded
func (r *Registry) RegisterNames(names ...string) {
	for _, name := range names {
		r.Register(name, nil)
	}
}

// Get retrieves a builtin function by name
// Returns (folder, true) if found; the folder may be nil
func (r *Registry) Get(name string) (BuiltinFunc, bool) {
	fn, ok := r.funcs[normalize(name)]
	return fn, ok
}

// Has checks if a builtin function is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[normalize(name)]
	return ok
}

// Fold evaluates name on known arguments. Unknown is returned when the
// function is not registered, has no folder, or any argument is unknown.
func (r *Registry) Fold(name string, args []types.Value) types.Value {
	fn, ok := r.Get(name)
	if !ok || fn == nil {
		return types.Unknown
	}
	for _, a := range args {
		if !types.IsKnown(a) {
			return types.Unknown
		}
	}
	return fn(args)
}

// RegisterRefParams marks the zero-based positions of by-reference output
// parameters; variables passed there are defined by the call
func (r *Registry) RegisterRefParams(name string, positions ...int) {
	r.refParams[normalize(name)] = positions
}

// IsRefParam reports whether argument pos of name is passed by reference
func (r *Registry) IsRefParam(name string, pos int) bool {
	for _, p := range r.refParams[normalize(name)] {
		if p == pos {
			return true
		}
	}
	return false
}

// RegisterClass adds a built-in class or interface
func (r *Registry) RegisterClass(names ...string) {
	for _, name := range names {
		r.classes[normalize(name)] = true
	}
}

// HasClass checks if a built-in class or interface is registered
func (r *Registry) HasClass(name string) bool {
	return r.classes[normalize(name)]
}
