package parser

import "phpsa/types"

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
	Kind() NodeKind
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// File is one decoded source unit
type File struct {
	Path  string
	Stmts []Stmt
}

// Comment is a comment attached to a declaration
type Comment struct {
	Text string
	Line int
	Doc  bool // /** ... */ doc comment
}

// LiteralExpr holds an integer, float or string scalar
type LiteralExpr struct {
	Pos   Position
	Value types.Value
}

func (e *LiteralExpr) Position() Position { return e.Pos }
func (e *LiteralExpr) Kind() NodeKind     { return KindLiteral }
func (e *LiteralExpr) exprNode()          {}

// ConstFetchExpr is a bare constant reference: true, false, null, PHP_EOL, ...
type ConstFetchExpr struct {
	Pos  Position
	Name Name
}

func (e *ConstFetchExpr) Position() Position { return e.Pos }
func (e *ConstFetchExpr) Kind() NodeKind     { return KindConstFetch }
func (e *ConstFetchExpr) exprNode()          {}

// VariableExpr represents a variable reference: $name or $$expr
type VariableExpr struct {
	Pos      Position
	Name     string
	NameExpr Expr // set for variable variables, Name is then empty
}

func (e *VariableExpr) Position() Position { return e.Pos }
func (e *VariableExpr) Kind() NodeKind     { return KindVariable }
func (e *VariableExpr) exprNode()          {}

// IsThis reports whether the variable is the implicit instance reference
func (e *VariableExpr) IsThis() bool {
	return e.NameExpr == nil && e.Name == "this"
}

// AssignExpr represents assignment: target = value (or =& when ByRef)
type AssignExpr struct {
	Pos    Position
	Target Expr
	Value  Expr
	ByRef  bool
}

func (e *AssignExpr) Position() Position { return e.Pos }
func (e *AssignExpr) Kind() NodeKind     { return KindAssign }
func (e *AssignExpr) exprNode()          {}

// AssignOpExpr represents compound assignment: target op= value
type AssignOpExpr struct {
	Pos      Position
	Operator BinaryOp
	Target   Expr
	Value    Expr
}

func (e *AssignOpExpr) Position() Position { return e.Pos }
func (e *AssignOpExpr) Kind() NodeKind     { return KindAssignOp }
func (e *AssignOpExpr) exprNode()          {}

// BinaryExpr represents a binary operation
type BinaryExpr struct {
	Pos      Position
	Operator BinaryOp
	Left     Expr
	Right    Expr
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) Kind() NodeKind     { return KindBinary }
func (e *BinaryExpr) exprNode()          {}

// UnaryExpr represents a unary operation
type UnaryExpr struct {
	Pos      Position
	Operator UnaryOp
	Operand  Expr
}

func (e *UnaryExpr) Position() Position { return e.Pos }
func (e *UnaryExpr) Kind() NodeKind     { return KindUnary }
func (e *UnaryExpr) exprNode()          {}

// ArrayExpr represents an array literal: [k => v, ...]
type ArrayExpr struct {
	Pos   Position
	Items []*ArrayItem // nil entries are skipped list() slots
}

// ArrayItem is one element of an array literal
type ArrayItem struct {
	Pos    Position
	Key    Expr // optional
	Value  Expr
	ByRef  bool
	Unpack bool // ...$spread
}

func (e *ArrayExpr) Position() Position { return e.Pos }
func (e *ArrayExpr) Kind() NodeKind     { return KindArray }
func (e *ArrayExpr) exprNode()          {}

// TernaryExpr represents cond ? then : else. Then is nil for cond ?: else.
type TernaryExpr struct {
	Pos  Position
	Cond Expr
	Then Expr
	Else Expr
}

func (e *TernaryExpr) Position() Position { return e.Pos }
func (e *TernaryExpr) Kind() NodeKind     { return KindTernary }
func (e *TernaryExpr) exprNode()          {}

// Arg is one call argument
type Arg struct {
	Pos    Position
	Value  Expr
	ByRef  bool
	Unpack bool // ...$args
}

// MethodCallExpr represents var->name(args)
type MethodCallExpr struct {
	Pos      Position
	Var      Expr
	Name     string
	NameExpr Expr // dynamic method name, Name is then empty
	Args     []*Arg
}

func (e *MethodCallExpr) Position() Position { return e.Pos }
func (e *MethodCallExpr) Kind() NodeKind     { return KindMethodCall }
func (e *MethodCallExpr) exprNode()          {}

// StaticCallExpr represents Class::name(args)
type StaticCallExpr struct {
	Pos       Position
	Class     Name
	ClassExpr Expr // dynamic class ($obj::m()), Class is then empty
	Name      string
	NameExpr  Expr
	Args      []*Arg
}

func (e *StaticCallExpr) Position() Position { return e.Pos }
func (e *StaticCallExpr) Kind() NodeKind     { return KindStaticCall }
func (e *StaticCallExpr) exprNode()          {}

// PropertyFetchExpr represents var->name
type PropertyFetchExpr struct {
	Pos      Position
	Var      Expr
	Name     string
	NameExpr Expr
}

func (e *PropertyFetchExpr) Position() Position { return e.Pos }
func (e *PropertyFetchExpr) Kind() NodeKind     { return KindPropertyFetch }
func (e *PropertyFetchExpr) exprNode()          {}

// ClassConstFetchExpr represents Class::NAME
type ClassConstFetchExpr struct {
	Pos       Position
	Class     Name
	ClassExpr Expr
	Name      string
}

func (e *ClassConstFetchExpr) Position() Position { return e.Pos }
func (e *ClassConstFetchExpr) Kind() NodeKind     { return KindClassConstFetch }
func (e *ClassConstFetchExpr) exprNode()          {}

// FuncCallExpr represents name(args)
type FuncCallExpr struct {
	Pos      Position
	Name     Name
	NameExpr Expr // $callable(...), Name is then empty
	Args     []*Arg
}

func (e *FuncCallExpr) Position() Position { return e.Pos }
func (e *FuncCallExpr) Kind() NodeKind     { return KindFuncCall }
func (e *FuncCallExpr) exprNode()          {}

// NewExpr represents new Class(args)
type NewExpr struct {
	Pos       Position
	Class     Name
	ClassExpr Expr // new $class, or an anonymous class
	Args      []*Arg
}

func (e *NewExpr) Position() Position { return e.Pos }
func (e *NewExpr) Kind() NodeKind     { return KindNew }
func (e *NewExpr) exprNode()          {}

// UnsupportedExpr stands in for any expression kind the engine does not
// model (closures, isset, interpolated strings, ...). Children keeps the
// nested nodes so that traversals can still reach them.
type UnsupportedExpr struct {
	Pos      Position
	NodeType string
	Children []Node
}

func (e *UnsupportedExpr) Position() Position { return e.Pos }
func (e *UnsupportedExpr) Kind() NodeKind     { return KindUnsupportedExpr }
func (e *UnsupportedExpr) exprNode()          {}

// Statement AST nodes

// NamespaceStmt represents namespace Name { ... }. Name is empty for the
// global namespace block.
type NamespaceStmt struct {
	Pos   Position
	Name  Name
	Stmts []Stmt
}

func (s *NamespaceStmt) Position() Position { return s.Pos }
func (s *NamespaceStmt) Kind() NodeKind     { return KindNamespace }
func (s *NamespaceStmt) stmtNode()          {}

// UseType distinguishes use, use function and use const
type UseType int

const (
	UseNormal   UseType = 1
	UseFunction UseType = 2
	UseConstant UseType = 3
)

// UseStmt represents an import declaration
type UseStmt struct {
	Pos  Position
	Uses []*UseItem
}

// UseItem is one imported name. Alias is empty when none was given.
type UseItem struct {
	Pos   Position
	Type  UseType
	Name  Name
	Alias string
}

// ShortName returns the name the import is visible under
func (u *UseItem) ShortName() string {
	if u.Alias != "" {
		return u.Alias
	}
	return u.Name.Last()
}

func (s *UseStmt) Position() Position { return s.Pos }
func (s *UseStmt) Kind() NodeKind     { return KindUse }
func (s *UseStmt) stmtNode()          {}

// ClassType distinguishes the class-like declarations
type ClassType int

const (
	ClassTypeClass ClassType = iota
	ClassTypeInterface
	ClassTypeTrait
	ClassTypeEnum
)

// ClassStmt represents a class, interface, trait or enum declaration.
// Interfaces list the interfaces they extend in Implements.
type ClassStmt struct {
	Pos        Position
	Comments   []Comment
	Type       ClassType
	Name       string
	Flags      Modifiers
	Extends    *Name
	Implements []Name
	Members    []Stmt // ClassMethodStmt, PropertyStmt, ClassConstStmt, UnsupportedStmt
}

func (s *ClassStmt) Position() Position { return s.Pos }
func (s *ClassStmt) Kind() NodeKind     { return KindClass }
func (s *ClassStmt) stmtNode()          {}

// Param is a routine parameter. Flags is non-zero for a promoted
// constructor property.
type Param struct {
	Pos      Position
	Name     string
	Default  Expr
	ByRef    bool
	Variadic bool
	Flags    Modifiers
}

// ClassMethodStmt represents a method declaration. Stmts is nil for
// abstract and interface methods.
type ClassMethodStmt struct {
	Pos      Position
	Comments []Comment
	Name     string
	Flags    Modifiers
	Params   []*Param
	Stmts    []Stmt
}

func (s *ClassMethodStmt) Position() Position { return s.Pos }
func (s *ClassMethodStmt) Kind() NodeKind     { return KindClassMethod }
func (s *ClassMethodStmt) stmtNode()          {}

// PropertyStmt represents a property declaration, possibly of several names
type PropertyStmt struct {
	Pos      Position
	Comments []Comment
	Flags    Modifiers
	Props    []*PropertyItem
}

// PropertyItem is one declared property
type PropertyItem struct {
	Pos     Position
	Name    string
	Default Expr
}

func (s *PropertyStmt) Position() Position { return s.Pos }
func (s *PropertyStmt) Kind() NodeKind     { return KindProperty }
func (s *PropertyStmt) stmtNode()          {}

// ClassConstStmt represents a class constant declaration
type ClassConstStmt struct {
	Pos      Position
	Comments []Comment
	Flags    Modifiers
	Consts   []*ConstItem
}

// ConstItem is one declared constant
type ConstItem struct {
	Pos   Position
	Name  string
	Value Expr
}

func (s *ClassConstStmt) Position() Position { return s.Pos }
func (s *ClassConstStmt) Kind() NodeKind     { return KindClassConst }
func (s *ClassConstStmt) stmtNode()          {}

// FunctionStmt represents a free function declaration
type FunctionStmt struct {
	Pos      Position
	Comments []Comment
	Name     string
	Params   []*Param
	Stmts    []Stmt
}

func (s *FunctionStmt) Position() Position { return s.Pos }
func (s *FunctionStmt) Kind() NodeKind     { return KindFunction }
func (s *FunctionStmt) stmtNode()          {}

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	Pos  Position
	Expr Expr
}

func (s *ExprStmt) Position() Position { return s.Pos }
func (s *ExprStmt) Kind() NodeKind     { return KindExpression }
func (s *ExprStmt) stmtNode()          {}

// ReturnStmt represents return statement
type ReturnStmt struct {
	Pos   Position
	Value Expr // Can be nil
}

func (s *ReturnStmt) Position() Position { return s.Pos }
func (s *ReturnStmt) Kind() NodeKind     { return KindReturn }
func (s *ReturnStmt) stmtNode()          {}

// EchoStmt represents echo a, b;
type EchoStmt struct {
	Pos   Position
	Exprs []Expr
}

func (s *EchoStmt) Position() Position { return s.Pos }
func (s *EchoStmt) Kind() NodeKind     { return KindEcho }
func (s *EchoStmt) stmtNode()          {}

// IfStmt represents if/elseif/else
type IfStmt struct {
	Pos     Position
	Cond    Expr
	Stmts   []Stmt
	ElseIfs []*ElseIfClause
	Else    []Stmt // Can be nil
}

type ElseIfClause struct {
	Pos   Position
	Cond  Expr
	Stmts []Stmt
}

func (s *IfStmt) Position() Position { return s.Pos }
func (s *IfStmt) Kind() NodeKind     { return KindIf }
func (s *IfStmt) stmtNode()          {}

// WhileStmt represents while loops
type WhileStmt struct {
	Pos   Position
	Cond  Expr
	Stmts []Stmt
}

func (s *WhileStmt) Position() Position { return s.Pos }
func (s *WhileStmt) Kind() NodeKind     { return KindWhile }
func (s *WhileStmt) stmtNode()          {}

// ForeachStmt represents foreach (expr as key => value)
type ForeachStmt struct {
	Pos      Position
	Expr     Expr
	KeyVar   Expr // Can be nil
	ValueVar Expr
	ByRef    bool
	Stmts    []Stmt
}

func (s *ForeachStmt) Position() Position { return s.Pos }
func (s *ForeachStmt) Kind() NodeKind     { return KindForeach }
func (s *ForeachStmt) stmtNode()          {}

// UnsupportedStmt stands in for statement kinds the engine does not model
// (try, switch, for, ...). Children keeps nested nodes for traversals.
type UnsupportedStmt struct {
	Pos      Position
	NodeType string
	Children []Node
}

func (s *UnsupportedStmt) Position() Position { return s.Pos }
func (s *UnsupportedStmt) Kind() NodeKind     { return KindUnsupportedStmt }
func (s *UnsupportedStmt) stmtNode()          {}
