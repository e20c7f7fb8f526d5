package parser

import "fmt"

// Position is the source span of a node. Token offsets index the token
// stream of the external parser; -1 means unknown.
type Position struct {
	Line       int
	EndLine    int
	StartToken int
	EndToken   int
}

// NoPos is the position of synthesized nodes
var NoPos = Position{StartToken: -1, EndToken: -1}

// String returns "line" or "line-endline"
func (p Position) String() string {
	if p.EndLine > p.Line {
		return fmt.Sprintf("%d-%d", p.Line, p.EndLine)
	}
	return fmt.Sprintf("%d", p.Line)
}
