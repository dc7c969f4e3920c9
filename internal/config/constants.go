package config

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".bas", ".basic"}

// ProgramContextName is the display name of the root frame in tracebacks.
const ProgramContextName = "<program>"

// StdinSourceName names input typed at the REPL or passed with -e.
const StdinSourceName = "<stdin>"

// Global constants
const (
	NullName   = "NULL"
	FalseName  = "FALSE"
	TrueName   = "TRUE"
	MathPiName = "MATH_PI"
)

// Built-in function names
const (
	PrintFuncName    = "PRINT"
	PrintRetFuncName = "PRINT_RET"
	InputFuncName    = "INPUT"
	InputIntFuncName = "INPUT_INT"
	ClearFuncName    = "CLEAR"
	ClsFuncName      = "CLS"
	IsNumFuncName    = "IS_NUM"
	IsStrFuncName    = "IS_STR"
	IsListFuncName   = "IS_LIST"
	IsFunFuncName    = "IS_FUN"
	AppendFuncName   = "APPEND"
	PopFuncName      = "POP"
	ExtendFuncName   = "EXTEND"
)
