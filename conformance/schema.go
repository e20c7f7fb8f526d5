package conformance

import (
	"gopkg.in/yaml.v3"

	"phpsa/config"
)

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Tests       []TestCase `yaml:"tests"`
}

// TestCase is one analysis scenario: a set of files harvested in order,
// then analyzed together
type TestCase struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description,omitempty"`
	Skip        interface{}            `yaml:"skip,omitempty"` // bool or string
	Analysis    *config.AnalysisConfig `yaml:"analysis,omitempty"`
	Files       []SourceFile           `yaml:"files"`
	Expect      Expectation            `yaml:"expect"`
}

// SourceFile is one input file. AST is the parser's JSON dump written as
// YAML; Raw, when set, is passed to the decoder verbatim instead.
type SourceFile struct {
	Path string    `yaml:"path"`
	AST  yaml.Node `yaml:"ast"`
	Raw  string    `yaml:"raw,omitempty"`
}

// Expectation lists the notices in emission order. Faults names the files
// expected to be rejected by the decoder.
type Expectation struct {
	Notices []ExpectedNotice `yaml:"notices"`
	Faults  []string         `yaml:"faults,omitempty"`
}

// ExpectedNotice matches one notice. Empty fields are not compared.
type ExpectedNotice struct {
	Kind    string `yaml:"kind"`
	Line    int    `yaml:"line,omitempty"`
	File    string `yaml:"file,omitempty"`
	Message string `yaml:"message,omitempty"`
	Routine string `yaml:"routine,omitempty"`
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
