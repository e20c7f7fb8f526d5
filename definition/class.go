package definition

import (
	"strings"

	"phpsa/parser"
)

// ClassID is a handle to a class in a Table. Contexts hold handles, never
// pointers, so the table stays the single owner of class metadata.
type ClassID int

// NoClass is the handle of free functions and top-level code
const NoClass ClassID = -1

// ClassMethod is a harvested method. The body is stored, not analyzed.
type ClassMethod struct {
	Name  string
	Flags parser.Modifiers
	Node  *parser.ClassMethodStmt
}

// IsStatic reports whether the method was declared static
func (m *ClassMethod) IsStatic() bool {
	return m.Flags.IsStatic()
}

// Property is a declared property
type Property struct {
	Name  string
	Flags parser.Modifiers
	Node  *parser.PropertyItem
}

// Constant is a declared class constant
type Constant struct {
	Name string
	Node *parser.ConstItem
}

// ClassDefinition is the metadata of one declared class. It is populated by
// the harvester and becomes read-only once added to a Builder.
type ClassDefinition struct {
	Name       string
	Namespace  string
	Filepath   string
	Flags      parser.Modifiers
	Extends    string // fully qualified parent name, empty when none
	Implements []string
	Node       *parser.ClassStmt
	Aliases    *AliasTable // imports in effect at the declaration
	UsesTraits bool        // members may come from traits, which are not harvested

	methods     []*ClassMethod
	methodIndex map[string]int // lowercased name
	properties  map[string]*Property
	constants   map[string]*Constant
}

// NewClass creates an empty class definition
func NewClass(name, namespace, path string) *ClassDefinition {
	return &ClassDefinition{
		Name:        name,
		Namespace:   namespace,
		Filepath:    path,
		methodIndex: make(map[string]int),
		properties:  make(map[string]*Property),
		constants:   make(map[string]*Constant),
	}
}

// FQN returns the fully qualified name without a leading backslash
func (c *ClassDefinition) FQN() string {
	return qualify(c.Namespace, c.Name)
}

// AddMethod records a method. Method names are case-insensitive; a
// redeclaration keeps the first one and returns false.
func (c *ClassDefinition) AddMethod(m *ClassMethod) bool {
	key := strings.ToLower(m.Name)
	if _, exists := c.methodIndex[key]; exists {
		return false
	}
	c.methodIndex[key] = len(c.methods)
	c.methods = append(c.methods, m)
	return true
}

// AddProperty records a property. Property names are case-sensitive.
func (c *ClassDefinition) AddProperty(p *Property) {
	if _, exists := c.properties[p.Name]; !exists {
		c.properties[p.Name] = p
	}
}

// AddConst records a class constant
func (c *ClassDefinition) AddConst(k *Constant) {
	if _, exists := c.constants[k.Name]; !exists {
		c.constants[k.Name] = k
	}
}

// Method returns the method declared on this class, ignoring parents
func (c *ClassDefinition) Method(name string) (*ClassMethod, bool) {
	idx, ok := c.methodIndex[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return c.methods[idx], true
}

// HasMethod checks this class only
func (c *ClassDefinition) HasMethod(name string) bool {
	_, ok := c.Method(name)
	return ok
}

// HasProperty checks this class only
func (c *ClassDefinition) HasProperty(name string) bool {
	_, ok := c.properties[name]
	return ok
}

// HasConst checks this class only
func (c *ClassDefinition) HasConst(name string) bool {
	_, ok := c.constants[name]
	return ok
}

// Methods returns the methods in declaration order
func (c *ClassDefinition) Methods() []*ClassMethod {
	return c.methods
}

// FunctionDefinition is a harvested free function
type FunctionDefinition struct {
	Name      string
	Namespace string
	Filepath  string
	Node      *parser.FunctionStmt
	Aliases   *AliasTable
}

// FQN returns the fully qualified name without a leading backslash
func (f *FunctionDefinition) FQN() string {
	return qualify(f.Namespace, f.Name)
}

func qualify(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + `\` + name
}
