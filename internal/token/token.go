package token

import "fmt"

type TokenType string

const (
	INT        TokenType = "INT"
	FLOAT      TokenType = "FLOAT"
	STRING     TokenType = "STRING"
	IDENTIFIER TokenType = "IDENTIFIER"
	KEYWORD    TokenType = "KEYWORD"

	PLUS  TokenType = "PLUS"
	MINUS TokenType = "MINUS"
	MUL   TokenType = "MUL"
	DIV   TokenType = "DIV"
	POW   TokenType = "POW"

	EQ  TokenType = "EQ"
	EE  TokenType = "EE"
	NE  TokenType = "NE"
	LT  TokenType = "LT"
	GT  TokenType = "GT"
	LTE TokenType = "LTE"
	GTE TokenType = "GTE"

	LPAREN  TokenType = "LPAREN"
	RPAREN  TokenType = "RPAREN"
	LSQUARE TokenType = "LSQUARE"
	RSQUARE TokenType = "RSQUARE"
	COMMA   TokenType = "COMMA"
	ARROW   TokenType = "ARROW"

	NEWLINE TokenType = "NEWLINE"
	EOF     TokenType = "EOF"
)

// Keywords
const (
	VAR   = "VAR"
	AND   = "AND"
	OR    = "OR"
	NOT   = "NOT"
	IF    = "IF"
	ELIF  = "ELIF"
	ELSE  = "ELSE"
	FOR   = "FOR"
	TO    = "TO"
	STEP  = "STEP"
	WHILE = "WHILE"
	FUN   = "FUN"
	THEN  = "THEN"
	END   = "END"
)

var keywords = map[string]bool{
	VAR: true, AND: true, OR: true, NOT: true,
	IF: true, ELIF: true, ELSE: true,
	FOR: true, TO: true, STEP: true, WHILE: true,
	FUN: true, THEN: true, END: true,
}

// IsKeyword reports whether ident is a reserved word. Keywords are case-sensitive.
func IsKeyword(ident string) bool {
	return keywords[ident]
}

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal interface{} // int64, float64 or string
	Start   Position
	End     Position
}

// Matches reports whether the token has type t and, for keywords and
// identifiers, the given text.
func (t Token) Matches(tt TokenType, text string) bool {
	return t.Type == tt && t.Lexeme == text
}

// IsKeyword reports whether the token is the keyword kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Matches(KEYWORD, kw)
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s:%v", t.Type, t.Literal)
	}
	return string(t.Type)
}
