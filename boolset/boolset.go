// Package boolset provides an evaluator of set expressions on fixed-length
// vectors of booleans, written as strings of 0 and 1.
package boolset

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zephyrtronium/infix"
)

// Vector is a fixed-length vector of booleans.
type Vector []bool

// Parse parses a vector written as a string of 0 and 1, most significant
// element first.
func Parse(s string) (Vector, error) {
	v := make(Vector, len(s))
	for i, c := range []byte(s) {
		switch c {
		case '0': // do nothing
		case '1':
			v[i] = true
		default:
			return nil, errors.New("invalid digit " + strconv.QuoteRune(rune(c)) + " in boolean vector")
		}
	}
	return v, nil
}

func (v Vector) String() string {
	var b strings.Builder
	b.Grow(len(v))
	for _, x := range v {
		if x {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Operators.
var (
	Negate = infix.NewOperator("-", 1, infix.Right, 3)
	And    = infix.NewOperator("*", 2, infix.Left, 2)
	Or     = infix.NewOperator("+", 2, infix.Left, 1)
)

// Constants. True is all ones, and False is all zeros.
var (
	True  = infix.Constant{Name: "true"}
	False = infix.Constant{Name: "false"}
)

// Context is the evaluation context for boolean vectors. Every literal and
// constant in an expression has Length elements.
type Context struct {
	Length int
}

// Evaluator evaluates expressions on boolean vectors.
type Evaluator struct {
	*infix.Engine[Vector]
}

// New creates an evaluator for boolean vector expressions using parentheses
// for grouping.
func New() *Evaluator {
	g := infix.NewGrammar().
		AddOperators(Negate, And, Or).
		AddConstants(True, False).
		AddExpressionBrackets(infix.Parentheses)
	e, err := infix.New[Vector](g, strategy{})
	if err != nil {
		panic("boolset: " + err.Error())
	}
	return &Evaluator{e}
}

// Eval evaluates an expression on vectors of a given length.
func (e *Evaluator) Eval(expr string, length int) (Vector, error) {
	return e.EvaluateContext(expr, Context{Length: length})
}

// ErrNoLength is returned when an expression is evaluated without a Context.
var ErrNoLength = errors.New("boolset: evaluation context must give the vector length")

// LengthError is an error for a literal whose length differs from the
// context's.
type LengthError struct {
	Text string
	Want int
}

func (err *LengthError) Error() string {
	return "vector " + strconv.Quote(err.Text) + " has length " + strconv.Itoa(len(err.Text)) + ", want " + strconv.Itoa(err.Want)
}

func length(ctx any) (int, error) {
	switch c := ctx.(type) {
	case Context:
		return c.Length, nil
	case *Context:
		if c != nil {
			return c.Length, nil
		}
	}
	return 0, ErrNoLength
}

type strategy struct {
	infix.Unsupported[Vector]
}

func (s strategy) Constant(c infix.Constant, ctx any) (Vector, error) {
	n, err := length(ctx)
	if err != nil {
		return nil, err
	}
	r := make(Vector, n)
	switch c {
	case True:
		for i := range r {
			r[i] = true
		}
		return r, nil
	case False:
		return r, nil
	}
	return s.Unsupported.Constant(c, ctx)
}

func (s strategy) Operator(op infix.Operator, x []Vector, ctx any) (Vector, error) {
	r := make(Vector, len(x[0]))
	switch op {
	case Negate:
		for i, v := range x[0] {
			r[i] = !v
		}
		return r, nil
	case And:
		for i := range r {
			r[i] = x[0][i] && x[1][i]
		}
		return r, nil
	case Or:
		for i := range r {
			r[i] = x[0][i] || x[1][i]
		}
		return r, nil
	}
	return s.Unsupported.Operator(op, x, ctx)
}

func (s strategy) Literal(text string, ctx any) (Vector, error) {
	n, err := length(ctx)
	if err != nil {
		return nil, err
	}
	if len(text) != n {
		return nil, &LengthError{Text: text, Want: n}
	}
	return Parse(text)
}
