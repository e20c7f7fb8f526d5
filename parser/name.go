package parser

import "strings"

// Name is a possibly qualified name: Foo, Foo\Bar, \Foo\Bar, namespace\Foo
type Name struct {
	Parts          []string
	FullyQualified bool // leading backslash
	Relative       bool // namespace\ prefix
}

// NewName splits a backslash-separated name
func NewName(s string) Name {
	n := Name{}
	if strings.HasPrefix(s, `\`) {
		n.FullyQualified = true
		s = s[1:]
	}
	if s != "" {
		n.Parts = strings.Split(s, `\`)
	}
	return n
}

// IsEmpty reports whether the name has no parts
func (n Name) IsEmpty() bool {
	return len(n.Parts) == 0
}

// IsUnqualified reports a single-segment name with no leading backslash
func (n Name) IsUnqualified() bool {
	return len(n.Parts) == 1 && !n.FullyQualified && !n.Relative
}

// First returns the first segment
func (n Name) First() string {
	if len(n.Parts) == 0 {
		return ""
	}
	return n.Parts[0]
}

// Last returns the last segment
func (n Name) Last() string {
	if len(n.Parts) == 0 {
		return ""
	}
	return n.Parts[len(n.Parts)-1]
}

// String joins the parts without the leading backslash
func (n Name) String() string {
	return strings.Join(n.Parts, `\`)
}

// IsSpecialClass reports self, static and parent (case-insensitive)
func (n Name) IsSpecialClass() bool {
	if !n.IsUnqualified() {
		return false
	}
	switch strings.ToLower(n.Parts[0]) {
	case "self", "static", "parent":
		return true
	}
	return false
}
