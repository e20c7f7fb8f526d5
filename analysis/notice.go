package analysis

import (
	"fmt"
	"sync"

	"phpsa/parser"
)

// Notice kinds. The identifiers are stable and appear in reports.
const (
	KindUndefinedVariable = "undefined-variable"
	KindUnusedVariable    = "unused-variable"
	KindUndefinedMCall    = "undefined-mcall"
	KindUndefinedSCall    = "undefined-scall"
	KindUndefinedFCall    = "undefined-fcall"
	KindUndefinedProperty = "undefined-property"
	KindUndefinedConst    = "undefined-const"
	KindUndefinedClass    = "undefined-class"
	KindDivisionZero      = "division-zero"
	KindUnsupportedOps    = "unsupported-operand-types"
	KindDuplicateClass    = "duplicate-class"
	KindDuplicateFunction = "duplicate-function"

	KindFormatArgument    = "function_argument_invalid"
	KindFormatType        = "function_format_type_invalid"
	KindFormatArrayLength = "function_array_length_invalid"
	KindFormatArgsLength  = "function_arguments_length_invalid"
)

// Severity orders notices for reporting
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

var severities = map[string]Severity{
	KindUndefinedVariable: SeverityError,
	KindUnusedVariable:    SeverityInfo,
	KindUndefinedMCall:    SeverityError,
	KindUndefinedSCall:    SeverityError,
	KindUndefinedFCall:    SeverityError,
	KindUndefinedProperty: SeverityWarning,
	KindUndefinedConst:    SeverityError,
	KindUndefinedClass:    SeverityError,
	KindDivisionZero:      SeverityError,
	KindUnsupportedOps:    SeverityError,
	KindDuplicateClass:    SeverityError,
	KindDuplicateFunction: SeverityError,
	KindFormatArgument:    SeverityWarning,
	KindFormatType:        SeverityError,
	KindFormatArrayLength: SeverityError,
	KindFormatArgsLength:  SeverityError,
}

// SeverityOf returns the severity implied by a notice kind. Unregistered
// kinds are warnings.
func SeverityOf(kind string) Severity {
	if s, ok := severities[kind]; ok {
		return s
	}
	return SeverityWarning
}

// Kinds returns every notice kind the engine emits
func Kinds() []string {
	return []string{
		KindUndefinedVariable, KindUnusedVariable, KindUndefinedMCall,
		KindUndefinedSCall, KindUndefinedFCall, KindUndefinedProperty,
		KindUndefinedConst, KindUndefinedClass, KindDivisionZero,
		KindUnsupportedOps, KindDuplicateClass, KindDuplicateFunction,
		KindFormatArgument, KindFormatType, KindFormatArrayLength,
		KindFormatArgsLength,
	}
}

// Notice is one diagnostic
type Notice struct {
	Kind    string
	Message string
	File    string
	Pos     parser.Position
	Routine string // e.g. "Foo::bar" or "{main}"; empty for harvest notices
}

// Severity returns the severity implied by the kind
func (n Notice) Severity() Severity {
	return SeverityOf(n.Kind)
}

func (n Notice) String() string {
	return fmt.Sprintf("%s:%d %s %s", n.File, n.Pos.Line, n.Kind, n.Message)
}

// Sink receives notices flushed from a Context
type Sink interface {
	Emit(n Notice)
}

// Collector is a Sink that keeps notices in arrival order. It is safe for
// use by several Contexts at once.
type Collector struct {
	mu      sync.Mutex
	notices []Notice
}

// Emit appends a notice
func (c *Collector) Emit(n Notice) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, n)
}

// Notices returns a copy of the collected notices
func (c *Collector) Notices() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Len returns the number of collected notices
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.notices)
}
