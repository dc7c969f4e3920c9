package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/funvibe/basic/internal/diagnostics"
	"github.com/funvibe/basic/internal/token"
)

const (
	digits  = "0123456789"
	letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_"
)

type Lexer struct {
	input    string
	pos      token.Position
	ch       byte // 0 at end of input
	comments int
}

func New(file, input string) *Lexer {
	l := &Lexer{input: input, pos: token.NewPosition(file, input)}
	l.readChar()
	return l
}

// Tokenize splits text into tokens terminated by EOF.
func Tokenize(file, text string) ([]token.Token, *diagnostics.DiagnosticError) {
	return New(file, text).Tokens()
}

// HasComments reports whether text contains a # comment. Comments are not
// tokens, so anything rebuilt from the tree loses them.
func HasComments(text string) bool {
	l := New("", text)
	l.Tokens()
	return l.comments > 0
}

func (l *Lexer) readChar() {
	l.pos = l.pos.Advance(l.ch)
	if l.pos.Index < len(l.input) {
		l.ch = l.input[l.pos.Index]
	} else {
		l.ch = 0
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos.Index >= len(l.input)
}

// single emits a one-character token and moves past it.
func (l *Lexer) single(tt token.TokenType) token.Token {
	start := l.pos
	lexeme := string(l.ch)
	l.readChar()
	return token.Token{Type: tt, Lexeme: lexeme, Start: start, End: l.pos}
}

func (l *Lexer) Tokens() ([]token.Token, *diagnostics.DiagnosticError) {
	var tokens []token.Token

	for !l.atEnd() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			l.skipComment()
		case l.ch == ';' || l.ch == '\n':
			tokens = append(tokens, l.single(token.NEWLINE))
		case strings.IndexByte(digits, l.ch) >= 0:
			tokens = append(tokens, l.readNumber())
		case strings.IndexByte(letters, l.ch) >= 0:
			tokens = append(tokens, l.readIdentifier())
		case l.ch == '"':
			tok, err := l.readString()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case l.ch == '+':
			tokens = append(tokens, l.single(token.PLUS))
		case l.ch == '-':
			tokens = append(tokens, l.readMinusOrArrow())
		case l.ch == '*':
			tokens = append(tokens, l.single(token.MUL))
		case l.ch == '/':
			tokens = append(tokens, l.single(token.DIV))
		case l.ch == '^':
			tokens = append(tokens, l.single(token.POW))
		case l.ch == '(':
			tokens = append(tokens, l.single(token.LPAREN))
		case l.ch == ')':
			tokens = append(tokens, l.single(token.RPAREN))
		case l.ch == '[':
			tokens = append(tokens, l.single(token.LSQUARE))
		case l.ch == ']':
			tokens = append(tokens, l.single(token.RSQUARE))
		case l.ch == ',':
			tokens = append(tokens, l.single(token.COMMA))
		case l.ch == '!':
			tok, err := l.readNotEquals()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
		case l.ch == '=':
			tokens = append(tokens, l.readOptionalEquals(token.EQ, token.EE))
		case l.ch == '<':
			tokens = append(tokens, l.readOptionalEquals(token.LT, token.LTE))
		case l.ch == '>':
			tokens = append(tokens, l.readOptionalEquals(token.GT, token.GTE))
		default:
			start := l.pos
			r, size := utf8.DecodeRuneInString(l.input[l.pos.Index:])
			for range size {
				l.readChar()
			}
			return nil, diagnostics.NewError(diagnostics.ErrL001, start, l.pos, "'%c'", r)
		}
	}

	eofEnd := l.pos.Advance(0)
	tokens = append(tokens, token.Token{Type: token.EOF, Start: l.pos, End: eofEnd})
	return tokens, nil
}

func (l *Lexer) skipComment() {
	l.comments++
	for !l.atEnd() && l.ch != '\n' {
		l.readChar()
	}
}

// readNumber consumes digits and at most one dot. A second dot ends the number.
func (l *Lexer) readNumber() token.Token {
	start := l.pos
	dots := 0
	for !l.atEnd() && (strings.IndexByte(digits, l.ch) >= 0 || l.ch == '.') {
		if l.ch == '.' {
			if dots == 1 {
				break
			}
			dots++
		}
		l.readChar()
	}
	lexeme := l.input[start.Index:l.pos.Index]

	if dots == 0 {
		n, err := strconv.ParseInt(lexeme, 10, 64)
		if err == nil {
			return token.Token{Type: token.INT, Lexeme: lexeme, Literal: n, Start: start, End: l.pos}
		}
		// too large for int64, keep it as a float
	}
	f, _ := strconv.ParseFloat(strings.TrimSuffix(lexeme, "."), 64)
	return token.Token{Type: token.FLOAT, Lexeme: lexeme, Literal: f, Start: start, End: l.pos}
}

func (l *Lexer) readIdentifier() token.Token {
	start := l.pos
	for !l.atEnd() && (strings.IndexByte(letters, l.ch) >= 0 || strings.IndexByte(digits, l.ch) >= 0) {
		l.readChar()
	}
	ident := l.input[start.Index:l.pos.Index]
	tt := token.IDENTIFIER
	if token.IsKeyword(ident) {
		tt = token.KEYWORD
	}
	return token.Token{Type: tt, Lexeme: ident, Literal: ident, Start: start, End: l.pos}
}

var escapes = map[byte]byte{
	'n': '\n',
	't': '\t',
}

func (l *Lexer) readString() (token.Token, *diagnostics.DiagnosticError) {
	start := l.pos
	var sb strings.Builder
	escaped := false
	l.readChar()

	for !l.atEnd() && (l.ch != '"' || escaped) {
		switch {
		case escaped:
			if r, ok := escapes[l.ch]; ok {
				sb.WriteByte(r)
			} else {
				sb.WriteByte(l.ch)
			}
			escaped = false
		case l.ch == '\\':
			escaped = true
		default:
			sb.WriteByte(l.ch)
		}
		l.readChar()
	}

	if l.atEnd() {
		return token.Token{}, diagnostics.NewError(diagnostics.ErrL002, start, l.pos, "'\"' (to close string)")
	}
	l.readChar()

	return token.Token{
		Type:    token.STRING,
		Lexeme:  l.input[start.Index:l.pos.Index],
		Literal: sb.String(),
		Start:   start,
		End:     l.pos,
	}, nil
}

func (l *Lexer) readMinusOrArrow() token.Token {
	start := l.pos
	l.readChar()
	if l.ch == '>' && !l.atEnd() {
		l.readChar()
		return token.Token{Type: token.ARROW, Lexeme: "->", Start: start, End: l.pos}
	}
	return token.Token{Type: token.MINUS, Lexeme: "-", Start: start, End: l.pos}
}

func (l *Lexer) readNotEquals() (token.Token, *diagnostics.DiagnosticError) {
	start := l.pos
	l.readChar()
	if l.ch == '=' && !l.atEnd() {
		l.readChar()
		return token.Token{Type: token.NE, Lexeme: "!=", Start: start, End: l.pos}, nil
	}
	l.readChar()
	return token.Token{}, diagnostics.NewError(diagnostics.ErrL002, start, l.pos, "'=' (after '!')")
}

// readOptionalEquals handles '=', '<', '>' and their '=' suffixed forms.
func (l *Lexer) readOptionalEquals(plain, withEq token.TokenType) token.Token {
	start := l.pos
	first := l.ch
	l.readChar()
	if l.ch == '=' && !l.atEnd() {
		l.readChar()
		return token.Token{Type: withEq, Lexeme: string(first) + "=", Start: start, End: l.pos}
	}
	return token.Token{Type: plain, Lexeme: string(first), Start: start, End: l.pos}
}
