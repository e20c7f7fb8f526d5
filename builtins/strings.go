package builtins

import (
	"strings"

	"phpsa/types"
)

// ============================================================================
// STRING BUILTINS
// ============================================================================

func registerStrings(r *Registry) {
	r.Register("strlen", builtinStrlen)
	r.Register("strtoupper", builtinStrtoupper)
	r.Register("strtolower", builtinStrtolower)
	r.Register("ucfirst", builtinUcfirst)
	r.Register("lcfirst", builtinLcfirst)
	r.Register("trim", builtinTrim)
	r.Register("ltrim", builtinLtrim)
	r.Register("rtrim", builtinRtrim)
	r.Register("str_repeat", builtinStrRepeat)
	r.Register("strrev", builtinStrrev)

	r.RegisterNames(
		"sprintf", "vsprintf", "number_format", "str_replace", "str_ireplace",
		"substr", "strpos", "stripos", "strrpos", "strstr", "str_contains",
		"str_starts_with", "str_ends_with", "explode", "implode", "join",
		"str_pad", "str_split", "wordwrap", "nl2br", "htmlspecialchars",
		"html_entity_decode", "strip_tags", "addslashes", "stripslashes",
		"ucwords", "strcmp", "strcasecmp", "strncmp", "substr_count",
		"md5", "sha1", "crc32", "hash", "base64_encode", "base64_decode",
		"urlencode", "urldecode", "rawurlencode", "http_build_query",
		"json_encode", "json_decode", "serialize", "unserialize",
		"preg_match", "preg_match_all", "preg_replace", "preg_replace_callback",
		"preg_split", "preg_quote", "mb_strlen", "mb_substr", "mb_strtolower",
		"mb_strtoupper", "chr", "ord", "dechex", "hexdec", "bin2hex", "parse_str",
		"sscanf",
	)

	r.RegisterRefParams("preg_match", 2)
	r.RegisterRefParams("preg_match_all", 2)
	r.RegisterRefParams("preg_replace", 4)
	r.RegisterRefParams("preg_replace_callback", 4)
	r.RegisterRefParams("str_replace", 3)
	r.RegisterRefParams("str_ireplace", 3)
	r.RegisterRefParams("parse_str", 1)
	r.RegisterRefParams("similar_text", 2)
}

// strlen(string) -> int
func builtinStrlen(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	s, ok := args[0].(types.StrValue)
	if !ok {
		return types.Unknown
	}
	return types.NewInt(int64(s.Len()))
}

// stringArg converts the single argument to a string
func stringArg(args []types.Value) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	if args[0].Type() == types.TYPE_ARRAY {
		return "", false
	}
	return types.ToString(args[0])
}

func builtinStrtoupper(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	return types.NewStr(strings.ToUpper(s))
}

func builtinStrtolower(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	return types.NewStr(strings.ToLower(s))
}

func builtinUcfirst(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	if s == "" {
		return types.NewStr(s)
	}
	return types.NewStr(strings.ToUpper(s[:1]) + s[1:])
}

func builtinLcfirst(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	if s == "" {
		return types.NewStr(s)
	}
	return types.NewStr(strings.ToLower(s[:1]) + s[1:])
}

// Default character set stripped by trim, ltrim and rtrim
const trimChars = " \t\n\r\x00\x0B"

func builtinTrim(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	return types.NewStr(strings.Trim(s, trimChars))
}

func builtinLtrim(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	return types.NewStr(strings.TrimLeft(s, trimChars))
}

func builtinRtrim(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	return types.NewStr(strings.TrimRight(s, trimChars))
}

// str_repeat(string, times) -> string
// Large results are not folded.
func builtinStrRepeat(args []types.Value) types.Value {
	if len(args) != 2 {
		return types.Unknown
	}
	s, ok := args[0].(types.StrValue)
	if !ok {
		return types.Unknown
	}
	n, ok := args[1].(types.IntValue)
	if !ok || n.Val < 0 || int64(s.Len())*n.Val > 1<<16 {
		return types.Unknown
	}
	return types.NewStr(strings.Repeat(s.Value(), int(n.Val)))
}

// strrev reverses bytes, not characters
func builtinStrrev(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return types.NewStr(string(b))
}
