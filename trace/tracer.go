package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"phpsa/types"
)

// Tracer provides analysis tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

// Global tracer instance
var globalTracer *Tracer

// New creates a tracer. A nil writer means stderr.
func New(enabled bool, filters []string, writer io.Writer) *Tracer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Tracer{
		enabled: enabled,
		filters: filters,
		writer:  writer,
	}
}

// Init initializes the global tracer
func Init(enabled bool, filters []string, writer io.Writer) {
	globalTracer = New(enabled, filters, writer)
}

// Global returns the global tracer, which may be nil
func Global() *Tracer {
	return globalTracer
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	return globalTracer.Enabled()
}

// Enabled reports whether t writes anything. A nil tracer is disabled.
func (t *Tracer) Enabled() bool {
	return t != nil && t.enabled
}

// matchesFilter checks if a routine name matches any of the filter patterns
func (t *Tracer) matchesFilter(routine string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, routine); matched {
			return true
		}
	}
	return false
}

func (t *Tracer) active(routine string) bool {
	return t.Enabled() && t.matchesFilter(routine)
}

func (t *Tracer) printf(format string, args ...interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] "+format+"\n", args...)
}

// FileHarvested logs the definitions collected from one file in phase 1
func (t *Tracer) FileHarvested(path string, classes, functions int) {
	if !t.Enabled() {
		return
	}
	t.printf("HARVEST %s classes=%d functions=%d", path, classes, functions)
}

// RoutineStart logs the start of a method or function body analysis
func (t *Tracer) RoutineStart(routine, path string) {
	if !t.active(routine) {
		return
	}
	t.printf("BEGIN %s (%s)", routine, path)
}

// RoutineFinish logs the end of a body analysis
func (t *Tracer) RoutineFinish(routine string, symbols, notices int) {
	if !t.active(routine) {
		return
	}
	t.printf("END %s symbols=%d notices=%d", routine, symbols, notices)
}

// Compiled logs the inferred value of one expression
func (t *Tracer) Compiled(routine string, line int, expr string, result types.Value) {
	if !t.active(routine) {
		return
	}
	resultStr := types.Unknown.String()
	if result != nil {
		resultStr = result.String()
	}
	t.printf("  line %d %s => %s", line, expr, resultStr)
}

// UnknownNode logs a node the engine does not infer
func (t *Tracer) UnknownNode(routine string, line int, nodeType string) {
	if !t.active(routine) {
		return
	}
	t.printf("  line %d unhandled %s", line, nodeType)
}

// DepthLimit logs an expression nested deeper than the configured bound
func (t *Tracer) DepthLimit(routine string, line, depth int) {
	if !t.active(routine) {
		return
	}
	t.printf("  line %d depth limit %d reached", line, depth)
}

// Notice logs a notice as it is emitted
func (t *Tracer) Notice(routine string, line int, kind, message string) {
	if !t.active(routine) {
		return
	}
	t.printf("  NOTICE line %d %s: %s", line, kind, message)
}

// Global convenience functions

// FileHarvested logs a harvested file using the global tracer
func FileHarvested(path string, classes, functions int) {
	globalTracer.FileHarvested(path, classes, functions)
}

// RoutineStart logs a routine start using the global tracer
func RoutineStart(routine, path string) {
	globalTracer.RoutineStart(routine, path)
}

// RoutineFinish logs a routine finish using the global tracer
func RoutineFinish(routine string, symbols, notices int) {
	globalTracer.RoutineFinish(routine, symbols, notices)
}
