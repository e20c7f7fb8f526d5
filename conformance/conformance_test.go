package conformance

import (
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestConformance(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	if len(tests) == 0 {
		t.Fatal("No tests loaded")
	}

	runner := NewRunner()
	results := runner.RunAll(tests)
	stats := ComputeStats(results)

	// Group results by file for organized output
	fileGroups := make(map[string][]TestResult)
	var files []string
	for _, result := range results {
		if _, seen := fileGroups[result.Test.File]; !seen {
			files = append(files, result.Test.File)
		}
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	for _, file := range files {
		fileResults := fileGroups[file]
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				result := result
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("Skipped: %s", result.SkipReason)
					} else if !result.Passed {
						if result.Error != nil {
							t.Errorf("Test failed: %v", result.Error)
						} else {
							t.Error("Test failed")
						}
					}
				})
			}
		})
	}

	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
}

func TestParallelRunnerMatches(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("Failed to load tests: %v", err)
	}
	sequential := NewRunner()
	parallel := &Runner{Workers: 4}
	for _, test := range tests {
		a := sequential.Run(test)
		b := parallel.Run(test)
		if !reflect.DeepEqual(a.Notices, b.Notices) {
			t.Errorf("%s/%s: expected identical notices with 4 workers", test.File, test.Test.Name)
		}
	}
}

func TestYAMLParsing(t *testing.T) {
	tests, err := LoadAllTests()
	if err != nil {
		t.Fatalf("YAML parsing failed: %v", err)
	}

	files := make(map[string]bool)
	for i, test := range tests {
		files[test.File] = true
		if test.Test.Name == "" {
			t.Errorf("Test %d in %s has no name", i, test.File)
		}
		if len(test.Test.Files) == 0 {
			t.Errorf("Test %s in %s has no files", test.Test.Name, test.File)
		}
		for _, f := range test.Test.Files {
			if f.Path == "" {
				t.Errorf("Test %s in %s has a file without path", test.Test.Name, test.File)
			}
		}
	}
	if len(files) < 4 {
		t.Errorf("Expected at least 4 suites, got %d", len(files))
	}
}

func TestSourceFileJSON(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"key order kept", "ast: {b: 1, a: 2}", `{"b":1,"a":2}`},
		{"scalars", "ast: [1, 1.5, true, false, null, text, '7']", `[1,1.5,true,false,null,"text","7"]`},
		{"nested", "ast: [{nodeType: Expr_Variable, name: x}]", `[{"nodeType":"Expr_Variable","name":"x"}]`},
		{"missing ast", "path: empty.php", `[]`},
		{"anchors", "ast: [&v {name: x}, *v]", `[{"name":"x"},{"name":"x"}]`},
		{"raw", "raw: '{\"nodeType\": '", `{"nodeType": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f SourceFile
			if err := yaml.Unmarshal([]byte(tt.src), &f); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			got, err := f.JSON()
			if err != nil {
				t.Fatalf("JSON error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	tests := []struct {
		skip   interface{}
		want   bool
		reason string
	}{
		{nil, false, ""},
		{false, false, ""},
		{true, true, "skipped"},
		{"needs traits", true, "needs traits"},
	}
	for _, tt := range tests {
		tc := TestCase{Skip: tt.skip}
		got, reason := tc.IsSkipped()
		if got != tt.want || reason != tt.reason {
			t.Errorf("Skip %v: expected (%v, %q), got (%v, %q)", tt.skip, tt.want, tt.reason, got, reason)
		}
	}
}
