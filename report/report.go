package report

import (
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/valyala/fastjson"
	"golang.org/x/crypto/blake2b"

	"phpsa/analysis"
)

// Fingerprint identifies a notice independently of its line, so that a
// baseline survives unrelated edits above it. occurrence distinguishes
// identical notices of the same routine, counted from zero in emission
// order.
func Fingerprint(n analysis.Notice, occurrence int) string {
	h, _ := blake2b.New256(nil)
	for _, part := range []string{n.Kind, n.File, n.Routine, n.Message, strconv.Itoa(occurrence)} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprints returns the fingerprint of every notice, numbering repeated
// notices in order
func Fingerprints(notices []analysis.Notice) []string {
	type occurrenceKey struct{ kind, file, routine, message string }
	seen := make(map[occurrenceKey]int)
	out := make([]string, len(notices))
	for i, n := range notices {
		k := occurrenceKey{n.Kind, n.File, n.Routine, n.Message}
		out[i] = Fingerprint(n, seen[k])
		seen[k]++
	}
	return out
}

// Summary counts notices per severity
type Summary struct {
	Files   int
	Total   int
	ByLevel map[analysis.Severity]int
}

// Summarize counts notices
func Summarize(files int, notices []analysis.Notice) Summary {
	s := Summary{Files: files, Total: len(notices), ByLevel: make(map[analysis.Severity]int)}
	for _, n := range notices {
		s.ByLevel[n.Severity()]++
	}
	return s
}

// WriteText writes one "file:line kind message" line per notice, followed
// by a summary line
func WriteText(w io.Writer, files int, notices []analysis.Notice) error {
	for _, n := range notices {
		if _, err := fmt.Fprintln(w, n.String()); err != nil {
			return err
		}
	}
	s := Summarize(files, notices)
	_, err := fmt.Fprintf(w, "%d files, %d notices (%d errors, %d warnings, %d info)\n",
		s.Files, s.Total, s.ByLevel[analysis.SeverityError], s.ByLevel[analysis.SeverityWarning], s.ByLevel[analysis.SeverityInfo])
	return err
}

// WriteJSON writes the notices as a JSON document:
//
//	{"files": 2, "notices": [{"kind": ..., "fingerprint": ...}], "counts": {"undefined-variable": 1}}
func WriteJSON(w io.Writer, files int, notices []analysis.Notice) error {
	var a fastjson.Arena
	root := a.NewObject()
	root.Set("files", a.NewNumberInt(files))

	list := a.NewArray()
	counts := make(map[string]int)
	fingerprints := Fingerprints(notices)
	for i, n := range notices {
		counts[n.Kind]++
		o := a.NewObject()
		o.Set("kind", a.NewString(n.Kind))
		o.Set("severity", a.NewString(n.Severity().String()))
		o.Set("message", a.NewString(n.Message))
		o.Set("file", a.NewString(n.File))
		o.Set("line", a.NewNumberInt(n.Pos.Line))
		if n.Pos.EndLine > 0 {
			o.Set("end_line", a.NewNumberInt(n.Pos.EndLine))
		}
		if n.Routine != "" {
			o.Set("routine", a.NewString(n.Routine))
		}
		o.Set("fingerprint", a.NewString(fingerprints[i]))
		list.SetArrayItem(i, o)
	}
	root.Set("notices", list)

	kinds := make([]string, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	byKind := a.NewObject()
	for _, k := range kinds {
		byKind.Set(k, a.NewNumberInt(counts[k]))
	}
	root.Set("counts", byKind)

	out := root.MarshalTo(nil)
	out = append(out, '\n')
	_, err := w.Write(out)
	return err
}
