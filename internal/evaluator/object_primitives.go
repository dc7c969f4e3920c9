package evaluator

import (
	"math"
	"strconv"
	"strings"

	"github.com/funvibe/basic/internal/token"
)

// Number is the only numeric type; integers are whole float64 values.
type Number struct {
	Value float64
	provenance
}

func NewNumber(v float64) *Number { return &Number{Value: v} }

// Null is the value of expressions that produce nothing.
func Null() *Number { return NewNumber(0) }

// Bool converts b to the canonical 1/0.
func Bool(b bool) *Number {
	if b {
		return NewNumber(1)
	}
	return NewNumber(0)
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string  { return FormatNumber(n.Value) }
func (n *Number) String() string   { return FormatNumber(n.Value) }
func (n *Number) IsTrue() bool     { return n.Value != 0 }

func (n *Number) WithPos(start, end token.Position) Object {
	c := *n
	c.start, c.end = start, end
	return &c
}

func (n *Number) WithContext(ctx *Context) Object {
	c := *n
	c.ctx = ctx
	return &c
}

// IsInteger reports whether the value has no fractional part.
func (n *Number) IsInteger() bool {
	return n.Value == math.Trunc(n.Value) && !math.IsInf(n.Value, 0)
}

// FormatNumber prints whole numbers without a fractional part.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		return strconv.FormatInt(int64(v), 10)
	case math.Abs(v) >= 1e-4 && math.Abs(v) < 1e15:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type String struct {
	Value string
	provenance
}

func NewString(s string) *String { return &String{Value: s} }

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return `"` + strings.ReplaceAll(s.Value, `"`, `\"`) + `"` }
func (s *String) String() string   { return s.Value }
func (s *String) IsTrue() bool     { return len(s.Value) > 0 }

func (s *String) WithPos(start, end token.Position) Object {
	c := *s
	c.start, c.end = start, end
	return &c
}

func (s *String) WithContext(ctx *Context) Object {
	c := *s
	c.ctx = ctx
	return &c
}
