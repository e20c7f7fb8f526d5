package conformance

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
	"gopkg.in/yaml.v3"

	"phpsa/analysis"
	"phpsa/compiler"
	"phpsa/config"
	"phpsa/parser"
	"phpsa/pass"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Notices    []analysis.Notice
	Error      error
}

// Runner executes conformance tests
type Runner struct {
	Workers int // passed to the analyzer
}

// NewRunner creates a sequential runner
func NewRunner() *Runner {
	return &Runner{Workers: 1}
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	notices, faults, err := r.analyze(test.Test)
	if err != nil {
		return TestResult{Test: test, Error: err}
	}
	if err := checkFaults(test.Test.Expect.Faults, faults); err != nil {
		return TestResult{Test: test, Notices: notices, Error: err}
	}
	if err := checkNotices(test.Test.Expect.Notices, notices); err != nil {
		return TestResult{Test: test, Notices: notices, Error: err}
	}
	return TestResult{Test: test, Passed: true, Notices: notices}
}

// analyze harvests and analyzes the case's files. Files the decoder
// rejects are returned in faults and left out of the program.
func (r *Runner) analyze(tc TestCase) ([]analysis.Notice, []string, error) {
	cfg := config.Default()
	if tc.Analysis != nil {
		cfg.Analysis = *tc.Analysis
	}

	sink := &analysis.Collector{}
	h := compiler.NewHarvester(sink, nil)
	var faults []string
	for _, src := range tc.Files {
		data, err := src.JSON()
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", src.Path, err)
		}
		file, err := parser.Decode(src.Path, data)
		if err != nil {
			faults = append(faults, src.Path)
			continue
		}
		if err := h.Harvest(file); err != nil {
			return nil, nil, err
		}
	}
	prog, err := h.Build()
	if err != nil {
		return nil, nil, err
	}

	a := compiler.NewAnalyzer(sink, pass.Default())
	a.Builtins = cfg.Builtins()
	a.Options = cfg.Options()
	a.Workers = r.Workers
	a.Analyze(prog)
	return sink.Notices(), faults, nil
}

func checkFaults(want, got []string) error {
	if strings.Join(want, ",") != strings.Join(got, ",") {
		return fmt.Errorf("expected faults %v, got %v", want, got)
	}
	return nil
}

func checkNotices(want []ExpectedNotice, got []analysis.Notice) error {
	if len(want) != len(got) {
		return fmt.Errorf("expected %d notices, got %d:\n%s", len(want), len(got), describe(got))
	}
	for i, w := range want {
		n := got[i]
		if n.Kind != w.Kind {
			return fmt.Errorf("notice %d: expected kind %s, got %s", i, w.Kind, n.Kind)
		}
		if w.Line != 0 && n.Pos.Line != w.Line {
			return fmt.Errorf("notice %d: expected line %d, got %d", i, w.Line, n.Pos.Line)
		}
		if w.File != "" && n.File != w.File {
			return fmt.Errorf("notice %d: expected file %s, got %s", i, w.File, n.File)
		}
		if w.Message != "" && n.Message != w.Message {
			return fmt.Errorf("notice %d: expected message %q, got %q", i, w.Message, n.Message)
		}
		if w.Routine != "" && n.Routine != w.Routine {
			return fmt.Errorf("notice %d: expected routine %s, got %s", i, w.Routine, n.Routine)
		}
	}
	return nil
}

func describe(notices []analysis.Notice) string {
	var sb strings.Builder
	for _, n := range notices {
		sb.WriteString("  ")
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// ============================================================================
// YAML TO JSON
// ============================================================================

// JSON renders the file's AST as the JSON dump the decoder reads
func (f *SourceFile) JSON() ([]byte, error) {
	if f.Raw != "" {
		return []byte(f.Raw), nil
	}
	var a fastjson.Arena
	v, err := convertNode(&a, &f.AST)
	if err != nil {
		return nil, err
	}
	return v.MarshalTo(nil), nil
}

// convertNode maps a YAML node onto a JSON value, keeping mapping key order
func convertNode(a *fastjson.Arena, n *yaml.Node) (*fastjson.Value, error) {
	switch n.Kind {
	case 0:
		// absent "ast" key: an empty file
		return a.NewArray(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return a.NewNull(), nil
		}
		return convertNode(a, n.Content[0])
	case yaml.AliasNode:
		return convertNode(a, n.Alias)
	case yaml.SequenceNode:
		arr := a.NewArray()
		for i, item := range n.Content {
			v, err := convertNode(a, item)
			if err != nil {
				return nil, err
			}
			arr.SetArrayItem(i, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := a.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := convertNode(a, n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.ScalarNode:
		return convertScalar(a, n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func convertScalar(a *fastjson.Arena, n *yaml.Node) (*fastjson.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return a.NewNull(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		if b {
			return a.NewTrue(), nil
		}
		return a.NewFalse(), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// beyond int64: keep the digits, the decoder reads them as a float
			return a.NewNumberString(n.Value), nil
		}
		return a.NewNumberString(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return a.NewNumberFloat64(f), nil
	default:
		return a.NewString(n.Value), nil
	}
}
