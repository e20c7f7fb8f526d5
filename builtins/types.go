package builtins

import (
	"phpsa/types"
)

func registerTypes(r *Registry) {
	r.Register("intval", builtinIntval)
	r.Register("floatval", builtinFloatval)
	r.Register("doubleval", builtinFloatval)
	r.Register("boolval", builtinBoolval)
	r.Register("strval", builtinStrval)
	r.Register("gettype", builtinGettype)

	r.Register("is_null", typeCheck(types.TYPE_NULL))
	r.Register("is_bool", typeCheck(types.TYPE_BOOL))
	r.Register("is_int", typeCheck(types.TYPE_INT))
	r.Register("is_integer", typeCheck(types.TYPE_INT))
	r.Register("is_float", typeCheck(types.TYPE_FLOAT))
	r.Register("is_string", typeCheck(types.TYPE_STR))
	r.Register("is_array", typeCheck(types.TYPE_ARRAY))
	r.Register("is_scalar", builtinIsScalar)
	r.Register("is_numeric", builtinIsNumeric)

	r.RegisterNames(
		"is_object", "is_callable", "is_iterable", "is_countable", "is_resource",
		"settype", "get_class", "get_parent_class", "get_object_vars",
		"method_exists", "property_exists", "class_exists", "function_exists",
		"interface_exists", "is_a", "is_subclass_of", "spl_object_hash",
		"spl_autoload_register", "define", "defined", "constant",
	)
}

func builtinIntval(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	i, ok := types.ToInt(args[0])
	if !ok {
		return types.Unknown
	}
	return types.NewInt(i)
}

func builtinFloatval(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	f, ok := types.ToFloat(args[0])
	if !ok {
		return types.Unknown
	}
	return types.NewFloat(f)
}

func builtinBoolval(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	b, ok := types.ToBool(args[0])
	if !ok {
		return types.Unknown
	}
	return types.NewBool(b)
}

// strval of an array is a conversion notice at runtime; not folded
func builtinStrval(args []types.Value) types.Value {
	s, ok := stringArg(args)
	if !ok {
		return types.Unknown
	}
	return types.NewStr(s)
}

// gettype(value) -> string, using the runtime's type names
func builtinGettype(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	names := map[types.TypeCode]string{
		types.TYPE_NULL:  "NULL",
		types.TYPE_BOOL:  "boolean",
		types.TYPE_INT:   "integer",
		types.TYPE_FLOAT: "double",
		types.TYPE_STR:   "string",
		types.TYPE_ARRAY: "array",
	}
	name, ok := names[args[0].Type()]
	if !ok {
		return types.Unknown
	}
	return types.NewStr(name)
}

func typeCheck(code types.TypeCode) BuiltinFunc {
	return func(args []types.Value) types.Value {
		if len(args) != 1 {
			return types.Unknown
		}
		return types.NewBool(args[0].Type() == code)
	}
}

func builtinIsScalar(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	return types.NewBool(args[0].Type().IsScalar())
}

// is_numeric accepts ints, floats and whole numeric strings
func builtinIsNumeric(args []types.Value) types.Value {
	if len(args) != 1 {
		return types.Unknown
	}
	switch v := args[0].(type) {
	case types.IntValue, types.FloatValue:
		return types.NewBool(true)
	case types.StrValue:
		_, whole := types.NumericPrefix(v.Value())
		return types.NewBool(whole)
	default:
		return types.NewBool(false)
	}
}
