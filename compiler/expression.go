package compiler

import (
	"strings"

	"phpsa/analysis"
	"phpsa/definition"
	"phpsa/parser"
	"phpsa/types"
)

// Compiler infers expression values and walks routine bodies against one
// Context. It never fails: whatever cannot be inferred is types.Unknown.
type Compiler struct {
	ctx   *analysis.Context
	depth int
}

// New creates a compiler bound to ctx
func New(ctx *analysis.Context) *Compiler {
	return &Compiler{ctx: ctx}
}

// Compile infers the value of expr, emitting notices through ctx
func Compile(expr parser.Expr, ctx *analysis.Context) types.Value {
	return New(ctx).Compile(expr)
}

// Compile infers the value of expr. A nil expression is Unknown.
func (c *Compiler) Compile(expr parser.Expr) types.Value {
	if expr == nil {
		return types.Unknown
	}
	if limit := c.ctx.Options.MaxDepth; limit > 0 && c.depth >= limit {
		c.ctx.Tracer().DepthLimit(c.ctx.Routine, expr.Position().Line, limit)
		return types.Unknown
	}
	c.depth++
	defer func() { c.depth-- }()

	result := c.dispatch(expr)
	if result == nil {
		result = types.Unknown
	}
	if tr := c.ctx.Tracer(); tr.Enabled() {
		tr.Compiled(c.ctx.Routine, expr.Position().Line, parser.Unparse(expr), result)
	}
	return result
}

// dispatch selects the handler for the node kind
func (c *Compiler) dispatch(expr parser.Expr) types.Value {
	switch n := expr.(type) {
	case *parser.LiteralExpr:
		return n.Value
	case *parser.ConstFetchExpr:
		return c.compileConstFetch(n)
	case *parser.VariableExpr:
		return c.compileVariable(n)
	case *parser.AssignExpr:
		return c.compileAssign(n)
	case *parser.AssignOpExpr:
		return c.compileAssignOp(n)
	case *parser.BinaryExpr:
		return c.compileBinary(n)
	case *parser.UnaryExpr:
		return c.compileUnary(n)
	case *parser.ArrayExpr:
		return c.compileArray(n)
	case *parser.TernaryExpr:
		return c.compileTernary(n)
	case *parser.MethodCallExpr:
		return c.compileMethodCall(n)
	case *parser.StaticCallExpr:
		return c.compileStaticCall(n)
	case *parser.PropertyFetchExpr:
		return c.compilePropertyFetch(n)
	case *parser.ClassConstFetchExpr:
		return c.compileClassConstFetch(n)
	case *parser.FuncCallExpr:
		return c.compileFuncCall(n)
	case *parser.NewExpr:
		return c.compileNew(n)
	case *parser.UnsupportedExpr:
		return c.compileUnsupported(n)
	default:
		c.ctx.Tracer().UnknownNode(c.ctx.Routine, expr.Position().Line, expr.Kind().String())
		return types.Unknown
	}
}

// ============================================================================
// CONSTANTS AND VARIABLES
// ============================================================================

// Predefined global constants with a fixed value
var knownConstants = map[string]types.Value{
	"php_eol":             types.NewStr("\n"),
	"php_int_max":         types.NewInt(1<<63 - 1),
	"php_int_min":         types.NewInt(-1 << 63),
	"php_int_size":        types.NewInt(8),
	"php_float_epsilon":   types.NewFloat(2.220446049250313e-16),
	"m_pi":                types.NewFloat(3.141592653589793),
	"e_all":               types.NewInt(32767),
	"directory_separator": types.NewStr("/"),
}

func (c *Compiler) compileConstFetch(n *parser.ConstFetchExpr) types.Value {
	name := strings.ToLower(n.Name.Last())
	if len(n.Name.Parts) == 1 {
		switch name {
		case "true":
			return types.NewBool(true)
		case "false":
			return types.NewBool(false)
		case "null":
			return types.Null
		}
		if v, ok := knownConstants[name]; ok {
			return v
		}
	}
	c.ctx.Tracer().UnknownNode(c.ctx.Routine, n.Pos.Line, "constant "+n.Name.String())
	return types.Unknown
}

func (c *Compiler) compileVariable(n *parser.VariableExpr) types.Value {
	if n.NameExpr != nil {
		// $$name: the variable cannot be known
		c.Compile(n.NameExpr)
		return types.Unknown
	}
	if sym := c.ctx.Symbols.Lookup(n.Name); sym != nil {
		sym.IncGets()
		return sym.Value
	}
	c.ctx.Noticef(analysis.KindUndefinedVariable, n, "You trying to use undefined variable $%s", n.Name)
	// Register the name so repeated uses are not reported again
	c.ctx.Symbols.Add(&analysis.Symbol{Name: n.Name, Gets: 1, Node: n})
	return types.Unknown
}

// compileQuiet compiles an operand of isset, empty or ??, where an
// undefined variable is not an error
func (c *Compiler) compileQuiet(expr parser.Expr) types.Value {
	switch n := expr.(type) {
	case *parser.VariableExpr:
		if n.NameExpr != nil {
			return c.Compile(n)
		}
		sym := c.ctx.Symbols.Lookup(n.Name)
		if sym == nil {
			return types.Unknown
		}
		sym.IncGets()
		if sym.Value == nil {
			return types.Unknown
		}
		return sym.Value
	case *parser.PropertyFetchExpr:
		c.compileQuiet(n.Var)
		if n.NameExpr != nil {
			c.Compile(n.NameExpr)
		}
		return types.Unknown
	case *parser.UnsupportedExpr:
		if isDimFetch(n) {
			for i, child := range n.Children {
				if e, ok := child.(parser.Expr); ok {
					if i == 0 {
						c.compileQuiet(e)
					} else {
						c.Compile(e)
					}
				}
			}
			return types.Unknown
		}
	}
	return c.Compile(expr)
}

// ============================================================================
// ASSIGNMENT
// ============================================================================

func (c *Compiler) compileAssign(n *parser.AssignExpr) types.Value {
	value := c.Compile(n.Value)
	if n.ByRef {
		c.assignTarget(n.Target, types.Unknown)
		return types.Unknown
	}
	c.assignTarget(n.Target, value)
	return value
}

// assignTarget records a write of value to target
func (c *Compiler) assignTarget(target parser.Expr, value types.Value) {
	switch t := target.(type) {
	case *parser.VariableExpr:
		if t.NameExpr != nil {
			c.Compile(t.NameExpr)
			return
		}
		c.writeVariable(t, value)
	case *parser.ArrayExpr:
		// list() / [] destructuring
		for _, item := range t.Items {
			if item == nil {
				continue
			}
			if item.Key != nil {
				c.Compile(item.Key)
			}
			c.assignTarget(item.Value, types.Unknown)
		}
	case *parser.PropertyFetchExpr:
		// Writes may create dynamic properties; only the object is read
		c.Compile(t.Var)
		if t.NameExpr != nil {
			c.Compile(t.NameExpr)
		}
	case *parser.UnsupportedExpr:
		if isDimFetch(t) && len(t.Children) > 0 {
			// $a[...] = v defines $a when it does not exist yet
			base, _ := t.Children[0].(parser.Expr)
			if v, ok := base.(*parser.VariableExpr); ok && v.NameExpr == nil {
				if sym := c.ctx.Symbols.Lookup(v.Name); sym != nil {
					sym.IncGets()
					sym.IncSets()
				} else {
					c.writeVariable(v, types.Unknown)
				}
			} else {
				c.assignTarget(base, types.Unknown)
			}
			for _, child := range t.Children[1:] {
				if e, ok := child.(parser.Expr); ok {
					c.Compile(e)
				}
			}
			return
		}
		c.Compile(t)
	default:
		c.Compile(target)
	}
}

// writeVariable increments the write counter of an existing symbol or
// registers a new one
func (c *Compiler) writeVariable(v *parser.VariableExpr, value types.Value) {
	if sym := c.ctx.Symbols.Lookup(v.Name); sym != nil {
		sym.IncSets()
		if sym.Sets == 1 {
			sym.Value = value
		}
		if sym.Node == nil {
			sym.Node = v
		}
		return
	}
	c.ctx.Symbols.Add(&analysis.Symbol{Name: v.Name, Sets: 1, Value: value, Node: v})
}

func (c *Compiler) compileAssignOp(n *parser.AssignOpExpr) types.Value {
	var current types.Value
	if n.Operator == parser.OpCoalesce {
		current = c.compileQuiet(n.Target)
	} else {
		current = c.readTarget(n.Target)
	}
	c.checkDivisor(n.Operator, n.Value, n)
	value := c.Compile(n.Value)
	c.checkOperands(n.Operator, current, value, n)

	result := foldBinary(n.Operator, current, value)
	if v, ok := n.Target.(*parser.VariableExpr); ok && v.NameExpr == nil {
		sym := c.ctx.Symbols.Lookup(v.Name)
		if sym == nil {
			c.writeVariable(v, result)
		} else {
			sym.IncSets()
		}
	}
	return result
}

// readTarget compiles the target of a compound assignment as a read
func (c *Compiler) readTarget(target parser.Expr) types.Value {
	switch t := target.(type) {
	case *parser.VariableExpr, *parser.PropertyFetchExpr:
		return c.Compile(t)
	}
	c.assignTarget(target, types.Unknown)
	return types.Unknown
}

// ============================================================================
// OPERATORS
// ============================================================================

// isLiteralZero reports an integer or float literal equal to zero
func isLiteralZero(expr parser.Expr) bool {
	lit, ok := expr.(*parser.LiteralExpr)
	if !ok {
		return false
	}
	switch v := lit.Value.(type) {
	case types.IntValue:
		return v.Val == 0
	case types.FloatValue:
		return v.Val == 0
	}
	return false
}

// checkDivisor reports division or modulo by a literal zero
func (c *Compiler) checkDivisor(op parser.BinaryOp, divisor parser.Expr, node parser.Node) {
	if op != parser.OpDiv && op != parser.OpMod {
		return
	}
	if isLiteralZero(divisor) {
		c.ctx.Noticef(analysis.KindDivisionZero, node, "You trying to use division on %s", parser.Unparse(divisor))
	}
}

// checkOperands reports arithmetic on arrays
func (c *Compiler) checkOperands(op parser.BinaryOp, left, right types.Value, node parser.Node) {
	if unsupportedOperands(op, left, right) {
		c.ctx.Noticef(analysis.KindUnsupportedOps, node, "Unsupported operand types: %s %s %s",
			typeName(left), op, typeName(right))
	}
}

func (c *Compiler) compileBinary(n *parser.BinaryExpr) types.Value {
	// Division by a literal zero does not short-circuit operand checks
	c.checkDivisor(n.Operator, n.Right, n)

	var left types.Value
	if n.Operator == parser.OpCoalesce {
		left = c.compileQuiet(n.Left)
	} else {
		left = c.Compile(n.Left)
	}
	right := c.Compile(n.Right)

	c.checkOperands(n.Operator, left, right, n)
	return foldBinary(n.Operator, left, right)
}

func (c *Compiler) compileUnary(n *parser.UnaryExpr) types.Value {
	operand := c.Compile(n.Operand)

	switch n.Operator {
	case parser.OpUnaryPlus:
		if operand.Type() == types.TYPE_ARRAY {
			c.ctx.Notice(analysis.KindUnsupportedOps, "Unsupported operand types +{array}", n)
			return types.Unknown
		}
		return foldUnaryPlus(operand)
	case parser.OpUnaryMinus:
		return foldUnaryMinus(operand)
	case parser.OpNot:
		return foldNot(operand)
	case parser.OpBitwiseNot:
		return foldBitwiseNot(operand)
	}
	return types.Unknown
}

// compileArray evaluates an array literal. Keys are normalized the way the
// runtime does; a later duplicate key overwrites the earlier value in
// place. The result is Unknown when a key is unknown or an item is spread.
func (c *Compiler) compileArray(n *parser.ArrayExpr) types.Value {
	var elements []types.Value
	index := make(map[string]int)
	known := true
	nextInt := int64(0)

	for _, item := range n.Items {
		if item == nil {
			continue
		}
		var key types.Value
		if item.Key != nil {
			key = c.Compile(item.Key)
		}
		value := c.Compile(item.Value)
		if item.Unpack || item.ByRef || !known {
			known = false
			continue
		}

		var k string
		if item.Key == nil {
			k = types.NewInt(nextInt).String()
			nextInt++
		} else {
			normalized, ok := arrayKey(key)
			if !ok {
				known = false
				continue
			}
			k = normalized.String()
			if i, isInt := normalized.(types.IntValue); isInt && i.Val >= nextInt {
				nextInt = i.Val + 1
			}
		}
		if pos, dup := index[k]; dup {
			elements[pos] = value
			continue
		}
		index[k] = len(elements)
		elements = append(elements, value)
	}

	if !known {
		return types.Unknown
	}
	return types.NewArray(elements)
}

// arrayKey converts a key the way the runtime does: integer-like strings
// become ints, floats and bools truncate to int, null becomes "".
func arrayKey(key types.Value) (types.Value, bool) {
	switch k := key.(type) {
	case types.IntValue:
		return k, true
	case types.StrValue:
		s := k.Value()
		if num, whole := types.NumericPrefix(s); whole {
			if i, ok := num.(types.IntValue); ok && i.String() == s {
				return i, true
			}
		}
		return k, true
	case types.FloatValue, types.BoolValue:
		i, _ := types.ToInt(k)
		return types.NewInt(i), true
	case types.NullValue:
		return types.NewStr(""), true
	}
	return nil, false
}

func (c *Compiler) compileTernary(n *parser.TernaryExpr) types.Value {
	cond := c.Compile(n.Cond)
	var then types.Value
	if n.Then != nil {
		then = c.Compile(n.Then)
	} else {
		then = cond
	}
	els := c.Compile(n.Else)

	if b, ok := types.ToBool(cond); ok {
		if b {
			return then
		}
		return els
	}
	if identical(then, els) {
		return then
	}
	return types.Unknown
}

// ============================================================================
// CLASS MEMBERS
// ============================================================================

// isThis reports a plain $this reference
func isThis(expr parser.Expr) bool {
	v, ok := expr.(*parser.VariableExpr)
	return ok && v.IsThis()
}

// inInstanceScope reports whether $this refers to a harvested class
func (c *Compiler) inInstanceScope() bool {
	return c.ctx.Scope != definition.NoClass && !c.ctx.Static && c.ctx.Table != nil
}

func (c *Compiler) compileArgs(args []*parser.Arg) []types.Value {
	values := make([]types.Value, 0, len(args))
	for _, a := range args {
		values = append(values, c.Compile(a.Value))
	}
	return values
}

func (c *Compiler) compileMethodCall(n *parser.MethodCallExpr) types.Value {
	c.Compile(n.Var)
	if n.NameExpr != nil {
		c.Compile(n.NameExpr)
	}
	c.compileArgs(n.Args)

	if !isThis(n.Var) || n.NameExpr != nil || !c.inInstanceScope() {
		return types.Unknown
	}
	table := c.ctx.Table
	if _, res := table.FindMethod(c.ctx.Scope, n.Name); res != definition.Missing {
		return types.Unknown
	}
	if _, res := table.FindMethod(c.ctx.Scope, "__call"); res != definition.Missing {
		return types.Unknown
	}
	c.ctx.Noticef(analysis.KindUndefinedMCall, n, "Method %s() is not exists on %s scope", n.Name, "this")
	return types.Unknown
}

// classRef is the class named by a static reference
type classRef struct {
	id       definition.ClassID
	name     string // as written, for messages
	fqn      string
	special  string // "self", "static", "parent" or ""
	resolved bool   // id is valid
	external bool   // not harvested but known to exist, or unknowable
}

// resolveClass resolves the class part of a static reference. It reports
// undefined-class for names that exist nowhere.
func (c *Compiler) resolveClass(name parser.Name, node parser.Node) classRef {
	ref := classRef{id: definition.NoClass, name: name.String()}

	if name.IsSpecialClass() {
		ref.special = strings.ToLower(name.First())
		if c.ctx.Scope == definition.NoClass || c.ctx.Table == nil {
			ref.external = true
			return ref
		}
		switch ref.special {
		case "self", "static":
			ref.id, ref.resolved = c.ctx.Scope, true
		case "parent":
			parent, ok, external := c.ctx.Table.Parent(c.ctx.Scope)
			ref.id, ref.resolved, ref.external = parent, ok, external
		}
		if cls := c.ctx.Table.Class(ref.id); cls != nil {
			ref.fqn = cls.FQN()
		}
		return ref
	}

	ref.fqn = c.ctx.Aliases.ResolveClass(name)
	if c.ctx.Table != nil {
		if id, ok := c.ctx.Table.LookupClass(ref.fqn); ok {
			ref.id, ref.resolved = id, true
			return ref
		}
	}
	if c.ctx.Builtins.HasClass(ref.fqn) {
		ref.external = true
		return ref
	}
	c.ctx.Noticef(analysis.KindUndefinedClass, node, "Class %s is not exists", ref.fqn)
	return ref
}

func (c *Compiler) compileStaticCall(n *parser.StaticCallExpr) types.Value {
	var ref classRef
	if n.ClassExpr != nil {
		c.Compile(n.ClassExpr)
		ref.external = true
	} else {
		ref = c.resolveClass(n.Class, n)
	}
	if n.NameExpr != nil {
		c.Compile(n.NameExpr)
	}
	c.compileArgs(n.Args)

	if n.NameExpr != nil || !ref.resolved {
		if ref.special == "parent" && !ref.external && c.ctx.Scope != definition.NoClass {
			// parent:: in a class without a parent
			c.ctx.Noticef(analysis.KindUndefinedSCall, n, "Static method %s() is not exists on %s scope", n.Name, ref.special)
		}
		return types.Unknown
	}

	table := c.ctx.Table
	method, res := table.FindMethod(ref.id, n.Name)
	if res == definition.Unresolved {
		return types.Unknown
	}
	if res == definition.Missing {
		if _, magic := table.FindMethod(ref.id, "__callStatic"); magic != definition.Missing {
			return types.Unknown
		}
	} else {
		// parent:: and strict ancestors named explicitly forward $this, so
		// only existence is checked for them. Naming the current class
		// behaves like self::.
		forwarding := ref.special == "parent" ||
			(ref.special == "" && c.ctx.Scope != definition.NoClass && ref.id != c.ctx.Scope &&
				table.IsAncestor(ref.id, c.ctx.Scope))
		if method.IsStatic() || forwarding {
			return types.Unknown
		}
	}

	scope := ref.special
	if scope == "" {
		scope = ref.name
	}
	c.ctx.Noticef(analysis.KindUndefinedSCall, n, "Static method %s() is not exists on %s scope", n.Name, scope)
	return types.Unknown
}

func (c *Compiler) compilePropertyFetch(n *parser.PropertyFetchExpr) types.Value {
	c.Compile(n.Var)
	if n.NameExpr != nil {
		c.Compile(n.NameExpr)
		return types.Unknown
	}
	if !isThis(n.Var) || !c.inInstanceScope() {
		return types.Unknown
	}
	table := c.ctx.Table
	if table.FindProperty(c.ctx.Scope, n.Name) != definition.Missing {
		return types.Unknown
	}
	if _, res := table.FindMethod(c.ctx.Scope, "__get"); res != definition.Missing {
		return types.Unknown
	}
	c.ctx.Noticef(analysis.KindUndefinedProperty, n, "Property %s is not exists on %s scope", n.Name, "this")
	return types.Unknown
}

func (c *Compiler) compileClassConstFetch(n *parser.ClassConstFetchExpr) types.Value {
	if n.ClassExpr != nil {
		c.Compile(n.ClassExpr)
		return types.Unknown
	}
	if strings.EqualFold(n.Name, "class") {
		return c.className(n.Class)
	}
	ref := c.resolveClass(n.Class, n)
	if !ref.resolved {
		return types.Unknown
	}

	constant, res := c.ctx.Table.FindConst(ref.id, n.Name)
	switch res {
	case definition.Found:
		if lit, ok := constant.Node.Value.(*parser.LiteralExpr); ok && ref.special != "static" {
			return lit.Value
		}
		return types.Unknown
	case definition.Unresolved:
		return types.Unknown
	}

	scope := ref.special
	if scope == "" {
		scope = ref.name
	}
	c.ctx.Noticef(analysis.KindUndefinedConst, n, "Constant %s is not exists on %s scope", n.Name, scope)
	return types.Unknown
}

// ============================================================================
// FUNCTIONS
// ============================================================================

// className folds Foo::class. The class need not exist.
func (c *Compiler) className(name parser.Name) types.Value {
	if !name.IsSpecialClass() {
		return types.NewStr(c.ctx.Aliases.ResolveClass(name))
	}
	switch strings.ToLower(name.First()) {
	case "self":
		if cls := c.ctx.Class(); cls != nil {
			return types.NewStr(cls.FQN())
		}
	case "parent":
		if c.ctx.Table != nil && c.ctx.Scope != definition.NoClass {
			if parent, ok, _ := c.ctx.Table.Parent(c.ctx.Scope); ok {
				return types.NewStr(c.ctx.Table.Class(parent).FQN())
			}
			if cls := c.ctx.Class(); cls != nil && cls.Extends != "" {
				return types.NewStr(cls.Extends)
			}
		}
	}
	return types.Unknown
}

func (c *Compiler) compileFuncCall(n *parser.FuncCallExpr) types.Value {
	if n.NameExpr != nil {
		c.Compile(n.NameExpr)
		c.compileArgs(n.Args)
		return types.Unknown
	}

	candidates := c.ctx.Aliases.ResolveFunction(n.Name)
	var userFunc *definition.FunctionDefinition
	builtin := ""
	for _, fqn := range candidates {
		if c.ctx.Table != nil {
			if fn, ok := c.ctx.Table.LookupFunction(fqn); ok {
				userFunc = fn
				break
			}
		}
		if c.ctx.Builtins.Has(fqn) {
			builtin = fqn
			break
		}
	}

	values := make([]types.Value, 0, len(n.Args))
	foldable := builtin != ""
	for i, arg := range n.Args {
		if c.isRefArg(userFunc, builtin, i) {
			if v, ok := arg.Value.(*parser.VariableExpr); ok && v.NameExpr == nil {
				// the callee may read the current value
				if sym := c.ctx.Symbols.Lookup(v.Name); sym != nil {
					sym.IncGets()
				}
			}
			c.assignTarget(arg.Value, types.Unknown)
			values = append(values, types.Unknown)
			foldable = false
			continue
		}
		values = append(values, c.Compile(arg.Value))
		if arg.Unpack || arg.ByRef {
			foldable = false
		}
	}

	if userFunc == nil && builtin == "" {
		c.ctx.Noticef(analysis.KindUndefinedFCall, n, "Function %s() is not exists", n.Name.String())
		return types.Unknown
	}
	if builtin != "" && strings.EqualFold(builtin, "compact") {
		c.readCompacted(n.Args)
	}
	if !foldable {
		return types.Unknown
	}
	return c.ctx.Builtins.Fold(builtin, values)
}

// isRefArg reports whether argument i is a by-reference output parameter
func (c *Compiler) isRefArg(fn *definition.FunctionDefinition, builtin string, i int) bool {
	if fn != nil && fn.Node != nil {
		params := fn.Node.Params
		if i < len(params) {
			return params[i].ByRef
		}
		return len(params) > 0 && params[len(params)-1].Variadic && params[len(params)-1].ByRef
	}
	if builtin != "" {
		return c.ctx.Builtins.IsRefParam(builtin, i)
	}
	return false
}

// readCompacted marks the variables named by compact('a', 'b') as read
func (c *Compiler) readCompacted(args []*parser.Arg) {
	for _, a := range args {
		lit, ok := a.Value.(*parser.LiteralExpr)
		if !ok {
			continue
		}
		if s, ok := lit.Value.(types.StrValue); ok {
			if sym := c.ctx.Symbols.Lookup(s.Value()); sym != nil {
				sym.IncGets()
			}
		}
	}
}

func (c *Compiler) compileNew(n *parser.NewExpr) types.Value {
	if n.ClassExpr != nil {
		c.Compile(n.ClassExpr)
	} else {
		c.resolveClass(n.Class, n)
	}
	c.compileArgs(n.Args)
	return types.Unknown
}

// ============================================================================
// NODES WITHOUT A DEDICATED KIND
// ============================================================================

func isDimFetch(n *parser.UnsupportedExpr) bool {
	return n.NodeType == "Expr_ArrayDimFetch"
}

// castTargets maps cast node types to their conversion
var castTargets = map[string]func(types.Value) types.Value{
	"Expr_Cast_Int": func(v types.Value) types.Value {
		if i, ok := types.ToInt(v); ok {
			return types.NewInt(i)
		}
		return types.Unknown
	},
	"Expr_Cast_Double": func(v types.Value) types.Value {
		if f, ok := types.ToFloat(v); ok {
			return types.NewFloat(f)
		}
		return types.Unknown
	},
	"Expr_Cast_String": func(v types.Value) types.Value {
		if s, ok := types.ToString(v); ok {
			return types.NewStr(s)
		}
		return types.Unknown
	},
	"Expr_Cast_Bool": func(v types.Value) types.Value {
		if b, ok := types.ToBool(v); ok {
			return types.NewBool(b)
		}
		return types.Unknown
	},
}

func (c *Compiler) compileUnsupported(n *parser.UnsupportedExpr) types.Value {
	switch n.NodeType {
	case "Expr_Isset", "Expr_Empty":
		for _, child := range n.Children {
			if e, ok := child.(parser.Expr); ok {
				c.compileQuiet(e)
			}
		}
		return types.Unknown

	case "Expr_Closure", "Expr_ArrowFunction":
		// Closures have their own scope; only captured outer variables
		// count as reads here
		parser.Inspect(n, func(node parser.Node) bool {
			if v, ok := node.(*parser.VariableExpr); ok && v.NameExpr == nil {
				if sym := c.ctx.Symbols.Lookup(v.Name); sym != nil {
					sym.IncGets()
				}
			}
			return true
		})
		return types.Unknown

	case "Stmt_Class":
		// anonymous class body, not analyzed
		return types.Unknown

	case "Expr_PreInc", "Expr_PreDec", "Expr_PostInc", "Expr_PostDec":
		for _, child := range n.Children {
			if v, ok := child.(*parser.VariableExpr); ok && v.NameExpr == nil {
				c.Compile(v)
				if sym := c.ctx.Symbols.Lookup(v.Name); sym != nil {
					sym.IncSets()
				}
			} else if e, ok := child.(parser.Expr); ok {
				c.Compile(e)
			}
		}
		return types.Unknown
	}

	if conv, ok := castTargets[n.NodeType]; ok && len(n.Children) == 1 {
		if e, isExpr := n.Children[0].(parser.Expr); isExpr {
			return conv(c.Compile(e))
		}
	}

	c.ctx.Tracer().UnknownNode(c.ctx.Routine, n.Pos.Line, n.NodeType)
	for _, child := range n.Children {
		switch ch := child.(type) {
		case parser.Expr:
			c.Compile(ch)
		case parser.Stmt:
			c.compileStmt(ch)
		}
	}
	return types.Unknown
}
