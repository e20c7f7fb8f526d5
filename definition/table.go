package definition

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSealed is returned when a Builder is used after Build
	ErrSealed = errors.New("definition table already built")
	// ErrDuplicateClass is returned for a redeclared class
	ErrDuplicateClass = errors.New("class already declared")
	// ErrDuplicateFunction is returned for a redeclared function
	ErrDuplicateFunction = errors.New("function already declared")
)

// Builder collects definitions during harvesting. Build converts it into
// an immutable Table; the builder is unusable afterwards.
type Builder struct {
	classes    []*ClassDefinition
	classIndex map[string]ClassID
	functions  []*FunctionDefinition
	funcIndex  map[string]int
	sealed     bool
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{
		classIndex: make(map[string]ClassID),
		funcIndex:  make(map[string]int),
	}
}

func key(fqn string) string {
	return strings.ToLower(strings.TrimPrefix(fqn, `\`))
}

// AddClass takes ownership of def and returns its handle. The first
// declaration of a name wins.
func (b *Builder) AddClass(def *ClassDefinition) (ClassID, error) {
	if b.sealed {
		return NoClass, ErrSealed
	}
	k := key(def.FQN())
	if existing, ok := b.classIndex[k]; ok {
		return existing, fmt.Errorf("%w: %s in %s", ErrDuplicateClass, def.FQN(), b.classes[existing].Filepath)
	}
	id := ClassID(len(b.classes))
	b.classes = append(b.classes, def)
	b.classIndex[k] = id
	return id, nil
}

// AddFunction records a free function. The first declaration wins.
func (b *Builder) AddFunction(def *FunctionDefinition) error {
	if b.sealed {
		return ErrSealed
	}
	k := key(def.FQN())
	if existing, ok := b.funcIndex[k]; ok {
		return fmt.Errorf("%w: %s in %s", ErrDuplicateFunction, def.FQN(), b.functions[existing].Filepath)
	}
	b.funcIndex[k] = len(b.functions)
	b.functions = append(b.functions, def)
	return nil
}

// Build seals the builder and returns the table
func (b *Builder) Build() (*Table, error) {
	if b.sealed {
		return nil, ErrSealed
	}
	b.sealed = true
	t := &Table{
		classes:    b.classes,
		classIndex: b.classIndex,
		functions:  b.functions,
		funcIndex:  b.funcIndex,
	}
	b.classes, b.classIndex, b.functions, b.funcIndex = nil, nil, nil, nil
	return t, nil
}

// Table is the whole-program definition table. It is read-only and safe
// for concurrent use.
type Table struct {
	classes    []*ClassDefinition
	classIndex map[string]ClassID
	functions  []*FunctionDefinition
	funcIndex  map[string]int
}

// NumClasses returns the number of classes
func (t *Table) NumClasses() int {
	return len(t.classes)
}

// Class returns the class for a handle, or nil for NoClass
func (t *Table) Class(id ClassID) *ClassDefinition {
	if id < 0 || int(id) >= len(t.classes) {
		return nil
	}
	return t.classes[id]
}

// LookupClass finds a class by fully qualified name (case-insensitive)
func (t *Table) LookupClass(fqn string) (ClassID, bool) {
	id, ok := t.classIndex[key(fqn)]
	if !ok {
		return NoClass, false
	}
	return id, true
}

// LookupFunction finds a function by fully qualified name
func (t *Table) LookupFunction(fqn string) (*FunctionDefinition, bool) {
	idx, ok := t.funcIndex[key(fqn)]
	if !ok {
		return nil, false
	}
	return t.functions[idx], true
}

// Functions returns the functions in harvest order
func (t *Table) Functions() []*FunctionDefinition {
	return t.functions
}

// Lookup is the outcome of a member search along a parent chain
type Lookup int

const (
	// Missing means every class in the chain was searched
	Missing Lookup = iota
	// Found means a declaring class was found
	Found
	// Unresolved means the chain reached a class that was not harvested,
	// so the member may exist outside the analyzed program
	Unresolved
)

// Parent returns the handle of id's parent. ok is false when the class
// has no parent or the parent was not harvested; external reports the
// latter.
func (t *Table) Parent(id ClassID) (parent ClassID, ok, external bool) {
	c := t.Class(id)
	if c == nil || c.Extends == "" {
		return NoClass, false, false
	}
	pid, found := t.LookupClass(c.Extends)
	if !found {
		return NoClass, false, true
	}
	return pid, true, false
}

// walk visits id and its ancestors until visit returns something other
// than Missing. It reports Unresolved when an ancestor is missing from the
// table. Inheritance cycles stop after every class was seen once.
func (t *Table) walk(id ClassID, visit func(*ClassDefinition) Lookup) Lookup {
	seen := 0
	for id != NoClass && seen <= len(t.classes) {
		c := t.Class(id)
		if c == nil {
			return Missing
		}
		if res := visit(c); res != Missing {
			return res
		}
		if c.UsesTraits {
			return Unresolved
		}
		parent, ok, external := t.Parent(id)
		if external {
			return Unresolved
		}
		if !ok {
			return Missing
		}
		id = parent
		seen++
	}
	return Missing
}

func found(ok bool) Lookup {
	if ok {
		return Found
	}
	return Missing
}

// FindMethod searches id, its parents and the interfaces they implement
// for a method
func (t *Table) FindMethod(id ClassID, name string) (*ClassMethod, Lookup) {
	var method *ClassMethod
	seen := make(map[string]bool)
	res := t.walk(id, func(c *ClassDefinition) Lookup {
		if m, ok := c.Method(name); ok {
			method = m
			return Found
		}
		var res Lookup
		method, res = t.interfaceMethod(c.Implements, name, seen)
		return res
	})
	return method, res
}

// interfaceMethod searches the named interfaces and the interfaces they
// extend. A name missing from the table makes the result Unresolved unless
// another interface declares the method.
func (t *Table) interfaceMethod(names []string, name string, seen map[string]bool) (*ClassMethod, Lookup) {
	res := Missing
	for _, fqn := range names {
		if seen[key(fqn)] {
			continue
		}
		seen[key(fqn)] = true
		id, ok := t.LookupClass(fqn)
		if !ok {
			res = Unresolved
			continue
		}
		c := t.Class(id)
		if m, ok := c.Method(name); ok {
			return m, Found
		}
		if m, r := t.interfaceMethod(c.Implements, name, seen); r == Found {
			return m, Found
		} else if r == Unresolved {
			res = Unresolved
		}
	}
	return nil, res
}

// FindProperty searches id and its parents for a property
func (t *Table) FindProperty(id ClassID, name string) Lookup {
	return t.walk(id, func(c *ClassDefinition) Lookup {
		return found(c.HasProperty(name))
	})
}

// FindConst searches id and its parents for a constant. Constants may also
// come from implemented interfaces, which are not harvested.
func (t *Table) FindConst(id ClassID, name string) (*Constant, Lookup) {
	var constant *Constant
	res := t.walk(id, func(c *ClassDefinition) Lookup {
		if k, ok := c.constants[name]; ok {
			constant = k
			return Found
		}
		if len(c.Implements) > 0 {
			return Unresolved
		}
		return Missing
	})
	return constant, res
}

// IsAncestor reports whether ancestor is id itself or one of its parents
func (t *Table) IsAncestor(ancestor, id ClassID) bool {
	if ancestor == NoClass {
		return false
	}
	return t.walk(id, func(c *ClassDefinition) Lookup {
		return found(t.Class(ancestor) == c)
	}) == Found
}
