package config

const Version = "0.1.0"

const SourceFileExt = ".bl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".bl", ".blisp"}

// Built-in type names (resolver/evaluator canonical spelling)
const (
	IntTypeName   = "Int"
	UintTypeName  = "Uint"
	FloatTypeName = "Float"
	BoolTypeName  = "Bool"
	CharTypeName  = "Char"
	UnitTypeName  = "Unit"
	ListTypeName  = "List"
)

// Built-in operator names (canonical form; surface aliases live in internal/token)
const (
	AddFuncName      = "add"
	SubFuncName      = "sub"
	MulFuncName      = "mul"
	DivFuncName      = "div"
	PrintFuncName    = "print"
	ReadFuncName     = "read"
	IfFuncName       = "if"
	WhileFuncName    = "while"
	EqFuncName       = "eq"
	NeqFuncName      = "neq"
	LeqFuncName      = "leq"
	GeqFuncName      = "geq"
	LtFuncName       = "lt"
	GtFuncName       = "gt"
	AndFuncName      = "and"
	OrFuncName       = "or"
	ConcatFuncName   = "concat"
	PrependFuncName  = "prepend"
	TakeFuncName     = "take"
	SplitFuncName    = "split"
	DefFuncName      = "def"
	InitFuncName     = "init"
	SetFuncName      = "set"
	ToStringFuncName = "tostring"
	EvalFuncName     = "eval"
)
