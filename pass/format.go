package pass

import (
	"strconv"
	"strings"

	"phpsa/analysis"
	"phpsa/parser"
	"phpsa/types"
)

// Conversion characters accepted in a format directive
const conversions = "bcdeEfFgGosuxX"

// formatFunctions maps each checked function to the position of its format
// argument
var formatFunctions = map[string]int{
	"printf":  0,
	"sprintf": 0,
	"fprintf": 1,
}

// FormatString validates printf-style calls: the format must be a string
// literal, every directive must be well formed, and the number of
// directives must match the arguments supplied.
type FormatString struct{}

// NewFormatString creates the format-string pass
func NewFormatString() *FormatString {
	return &FormatString{}
}

func (p *FormatString) Name() string { return "format-string" }

func (p *FormatString) Description() string {
	return "checks printf-style format strings against their arguments"
}

func (p *FormatString) Kinds() []parser.NodeKind {
	return []parser.NodeKind{parser.KindFuncCall}
}

// Examine checks one call
func (p *FormatString) Examine(node parser.Node, ctx *analysis.Context) bool {
	call, ok := node.(*parser.FuncCallExpr)
	if !ok || call.NameExpr != nil || len(call.Name.Parts) != 1 || call.Name.Relative {
		return true
	}
	idx, ok := formatFunctions[strings.ToLower(call.Name.Last())]
	if !ok {
		return true
	}
	name := call.Name.String()

	format, ok := formatArg(call.Args, idx)
	if !ok {
		ctx.Noticef(analysis.KindFormatArgument, call, "First parameter of %s must be string", name)
		return true
	}

	count, valid := CountDirectives(format)
	if !valid {
		ctx.Noticef(analysis.KindFormatType, call, "Unexpected type format in %s function string", name)
		return true
	}

	rest := call.Args[idx+1:]
	for _, a := range rest {
		if a.Unpack {
			return true
		}
	}
	if len(rest) > 0 {
		if arr, isArray := rest[0].Value.(*parser.ArrayExpr); isArray {
			if items, known := arrayLen(arr); known && items != count {
				ctx.Noticef(analysis.KindFormatArrayLength, call, "Unexpected length of array passed to %s", name)
			}
			return true
		}
	}
	if len(rest) != count {
		ctx.Noticef(analysis.KindFormatArgsLength, call, "Unexpected length of arguments passed to %s", name)
	}
	return true
}

// formatArg returns the string literal at args[idx]
func formatArg(args []*parser.Arg, idx int) (string, bool) {
	if idx >= len(args) || args[idx].Unpack {
		return "", false
	}
	lit, ok := args[idx].Value.(*parser.LiteralExpr)
	if !ok {
		return "", false
	}
	s, ok := lit.Value.(types.StrValue)
	if !ok {
		return "", false
	}
	return s.Value(), true
}

// arrayLen counts the items of an array literal. known is false when an
// item is spread.
func arrayLen(arr *parser.ArrayExpr) (n int, known bool) {
	for _, item := range arr.Items {
		if item == nil {
			continue
		}
		if item.Unpack {
			return 0, false
		}
		n++
	}
	return n, true
}

// CountDirectives returns the number of arguments a format string consumes.
// %% is a literal percent sign. A directive is
// %[argnum$][flags][width][.precision][l]conversion; when argnums are used the
// highest one counts. valid is false for an unknown conversion or a
// truncated directive.
func CountDirectives(format string) (count int, valid bool) {
	sequential, highest := 0, 0
	i := 0
	for i < len(format) {
		if format[i] != '%' {
			i++
			continue
		}
		i++
		if i >= len(format) {
			return 0, false
		}
		if format[i] == '%' {
			i++
			continue
		}

		argnum := 0
		j := i
		for j < len(format) && isDigit(format[j]) {
			j++
		}
		if j > i && j < len(format) && format[j] == '$' {
			n, err := strconv.Atoi(format[i:j])
			if err != nil || n == 0 {
				return 0, false
			}
			argnum = n
			i = j + 1
		}

	flags:
		for i < len(format) {
			switch format[i] {
			case '-', '+', ' ', '0':
				i++
			case '\'':
				// custom padding character
				i += 2
			default:
				break flags
			}
		}
		for i < len(format) && isDigit(format[i]) {
			i++
		}
		if i < len(format) && format[i] == '.' {
			i++
			for i < len(format) && isDigit(format[i]) {
				i++
			}
		}

		if i < len(format) && format[i] == 'l' {
			// length modifier, ignored
			i++
		}

		if i >= len(format) || strings.IndexByte(conversions, format[i]) < 0 {
			return 0, false
		}
		i++

		if argnum > 0 {
			if argnum > highest {
				highest = argnum
			}
		} else {
			sequential++
		}
	}
	if highest > sequential {
		return highest, true
	}
	return sequential, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
