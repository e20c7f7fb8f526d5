package definition

import (
	"strings"

	"phpsa/parser"
)

// AliasTable maps imported short names to fully qualified names for one
// namespace block. Class and function names are case-insensitive, so keys
// are lowercased; constants keep their case.
type AliasTable struct {
	namespace string
	classes   map[string]string
	functions map[string]string
	constants map[string]string
}

// NewAliasTable creates an empty table for namespace ("" is global)
func NewAliasTable(namespace string) *AliasTable {
	return &AliasTable{
		namespace: namespace,
		classes:   make(map[string]string),
		functions: make(map[string]string),
		constants: make(map[string]string),
	}
}

// Namespace returns the namespace the table belongs to
func (a *AliasTable) Namespace() string {
	if a == nil {
		return ""
	}
	return a.namespace
}

// AddUse records every item of a use statement
func (a *AliasTable) AddUse(stmt *parser.UseStmt) {
	for _, item := range stmt.Uses {
		a.Add(item.Type, item.ShortName(), item.Name.String())
	}
}

// Add records one import
func (a *AliasTable) Add(kind parser.UseType, alias, fqn string) {
	switch kind {
	case parser.UseFunction:
		a.functions[strings.ToLower(alias)] = fqn
	case parser.UseConstant:
		a.constants[alias] = fqn
	default:
		a.classes[strings.ToLower(alias)] = fqn
	}
}

// ResolveClass returns the fully qualified class name n refers to.
// self, static and parent are returned unchanged.
func (a *AliasTable) ResolveClass(n parser.Name) string {
	if n.FullyQualified || n.IsSpecialClass() {
		return n.String()
	}
	if n.Relative {
		return qualify(a.Namespace(), n.String())
	}
	if a != nil {
		if fqn, ok := a.classes[strings.ToLower(n.First())]; ok {
			if len(n.Parts) == 1 {
				return fqn
			}
			return fqn + `\` + strings.Join(n.Parts[1:], `\`)
		}
	}
	return qualify(a.Namespace(), n.String())
}

// ResolveFunction returns the candidate fully qualified names for a
// function call, most specific first. Unqualified calls inside a namespace
// fall back to the global function.
func (a *AliasTable) ResolveFunction(n parser.Name) []string {
	if n.FullyQualified {
		return []string{n.String()}
	}
	if n.Relative {
		return []string{qualify(a.Namespace(), n.String())}
	}
	if a != nil {
		if n.IsUnqualified() {
			if fqn, ok := a.functions[strings.ToLower(n.First())]; ok {
				return []string{fqn}
			}
		} else if fqn, ok := a.classes[strings.ToLower(n.First())]; ok {
			// Qualified names resolve their first segment as a namespace import
			return []string{fqn + `\` + strings.Join(n.Parts[1:], `\`)}
		}
	}
	ns := a.Namespace()
	if ns == "" {
		return []string{n.String()}
	}
	if n.IsUnqualified() {
		return []string{qualify(ns, n.String()), n.String()}
	}
	return []string{qualify(ns, n.String())}
}
