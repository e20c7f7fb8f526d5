package parser

// NodeKind is the closed set of node kinds the engine dispatches on
type NodeKind int

const (
	// Statements
	KindNamespace NodeKind = iota
	KindUse
	KindClass
	KindClassMethod
	KindProperty
	KindClassConst
	KindFunction
	KindExpression
	KindReturn
	KindEcho
	KindIf
	KindWhile
	KindForeach
	KindUnsupportedStmt

	// Expressions
	KindLiteral
	KindConstFetch
	KindVariable
	KindAssign
	KindAssignOp
	KindBinary
	KindUnary
	KindArray
	KindTernary
	KindMethodCall
	KindStaticCall
	KindPropertyFetch
	KindClassConstFetch
	KindFuncCall
	KindNew
	KindUnsupportedExpr

	numKinds
)

var kindNames = [...]string{
	KindNamespace:       "Namespace",
	KindUse:             "Use",
	KindClass:           "Class",
	KindClassMethod:     "ClassMethod",
	KindProperty:        "Property",
	KindClassConst:      "ClassConst",
	KindFunction:        "Function",
	KindExpression:      "Expression",
	KindReturn:          "Return",
	KindEcho:            "Echo",
	KindIf:              "If",
	KindWhile:           "While",
	KindForeach:         "Foreach",
	KindUnsupportedStmt: "UnsupportedStmt",
	KindLiteral:         "Literal",
	KindConstFetch:      "ConstFetch",
	KindVariable:        "Variable",
	KindAssign:          "Assign",
	KindAssignOp:        "AssignOp",
	KindBinary:          "Binary",
	KindUnary:           "Unary",
	KindArray:           "Array",
	KindTernary:         "Ternary",
	KindMethodCall:      "MethodCall",
	KindStaticCall:      "StaticCall",
	KindPropertyFetch:   "PropertyFetch",
	KindClassConstFetch: "ClassConstFetch",
	KindFuncCall:        "FuncCall",
	KindNew:             "New",
	KindUnsupportedExpr: "UnsupportedExpr",
}

// String returns the kind name
func (k NodeKind) String() string {
	if k < 0 || k >= numKinds {
		return "Invalid"
	}
	return kindNames[k]
}

// Valid reports whether k is a member of the closed kind set
func (k NodeKind) Valid() bool {
	return k >= 0 && k < numKinds
}

// BinaryOp is a binary operator
type BinaryOp int

const (
	OpPlus BinaryOp = iota
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpPow
	OpConcat
	OpSpaceship
	OpEqual
	OpNotEqual
	OpIdentical
	OpNotIdentical
	OpSmaller
	OpSmallerOrEqual
	OpGreater
	OpGreaterOrEqual
	OpBooleanAnd
	OpBooleanOr
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpBitwiseAnd
	OpBitwiseOr
	OpBitwiseXor
	OpShiftLeft
	OpShiftRight
	OpCoalesce
)

var binaryOpSymbols = [...]string{
	OpPlus:           "+",
	OpMinus:          "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpMod:            "%",
	OpPow:            "**",
	OpConcat:         ".",
	OpSpaceship:      "<=>",
	OpEqual:          "==",
	OpNotEqual:       "!=",
	OpIdentical:      "===",
	OpNotIdentical:   "!==",
	OpSmaller:        "<",
	OpSmallerOrEqual: "<=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
	OpBooleanAnd:     "&&",
	OpBooleanOr:      "||",
	OpLogicalAnd:     "and",
	OpLogicalOr:      "or",
	OpLogicalXor:     "xor",
	OpBitwiseAnd:     "&",
	OpBitwiseOr:      "|",
	OpBitwiseXor:     "^",
	OpShiftLeft:      "<<",
	OpShiftRight:     ">>",
	OpCoalesce:       "??",
}

// String returns the operator symbol
func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpSymbols) {
		return "?"
	}
	return binaryOpSymbols[op]
}

// UnaryOp is a unary operator
type UnaryOp int

const (
	OpUnaryPlus UnaryOp = iota
	OpUnaryMinus
	OpNot
	OpBitwiseNot
)

// String returns the operator symbol
func (op UnaryOp) String() string {
	switch op {
	case OpUnaryPlus:
		return "+"
	case OpUnaryMinus:
		return "-"
	case OpNot:
		return "!"
	case OpBitwiseNot:
		return "~"
	default:
		return "?"
	}
}

// Modifiers are declaration flags, bit values as emitted by the parser
type Modifiers int

const (
	ModPublic    Modifiers = 1
	ModProtected Modifiers = 2
	ModPrivate   Modifiers = 4
	ModStatic    Modifiers = 8
	ModAbstract  Modifiers = 16
	ModFinal     Modifiers = 32
	ModReadonly  Modifiers = 64
)

func (m Modifiers) IsStatic() bool    { return m&ModStatic != 0 }
func (m Modifiers) IsAbstract() bool  { return m&ModAbstract != 0 }
func (m Modifiers) IsFinal() bool     { return m&ModFinal != 0 }
func (m Modifiers) IsPrivate() bool   { return m&ModPrivate != 0 }
func (m Modifiers) IsProtected() bool { return m&ModProtected != 0 }

// IsPublic is true when declared public or with no visibility keyword
func (m Modifiers) IsPublic() bool {
	return m&(ModPrivate|ModProtected) == 0
}
