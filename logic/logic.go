// Package logic provides evaluators of boolean expressions, one with symbolic
// operators and one with word operators whose literals test a set of
// properties.
package logic

import (
	"errors"
	"strconv"
	"strings"

	"github.com/zephyrtronium/infix"
)

// Symbolic operators.
var (
	Not = infix.NewOperator("!", 1, infix.Right, 3)
	And = infix.NewOperator("&&", 2, infix.Left, 2)
	Or  = infix.NewOperator("||", 2, infix.Left, 1)
)

// Textual operators.
var (
	NotWord = infix.NewOperator("NOT", 1, infix.Right, 3)
	AndWord = infix.NewOperator("AND", 2, infix.Left, 2)
	OrWord  = infix.NewOperator("OR", 2, infix.Left, 1)
)

// Constants.
var (
	True  = infix.Constant{Name: "true"}
	False = infix.Constant{Name: "false"}
)

// Evaluator evaluates boolean expressions.
type Evaluator struct {
	*infix.Engine[bool]
}

// NewSymbolic creates an evaluator for expressions like "true && !(a || b)".
// Literals are either variables from an infix.Variables[bool] context or
// anything strconv.ParseBool accepts.
func NewSymbolic() *Evaluator {
	g := infix.NewGrammar().
		AddOperators(Not, And, Or).
		AddConstants(True, False).
		AddExpressionBrackets(infix.Parentheses)
	e, err := infix.New[bool](g, strategy{})
	if err != nil {
		panic("logic: " + err.Error())
	}
	return &Evaluator{e}
}

// Properties is the evaluation context of a textual evaluator.
type Properties map[string]string

// NewTextual creates an evaluator for expressions like
// "type=PORT AND NOT state=closed". Tokens are separated by whitespace. A
// literal name=value is true if the Properties context maps name to value;
// other literals are parsed with strconv.ParseBool.
func NewTextual() *Evaluator {
	g := infix.NewGrammar().
		AddOperators(NotWord, AndWord, OrWord)
	e, err := infix.New[bool](g, strategy{}, infix.WithTokenizer(infix.FieldsTokenizer{}))
	if err != nil {
		panic("logic: " + err.Error())
	}
	return &Evaluator{e}
}

// ErrNoProperties is returned when a property test is evaluated without a
// Properties context.
var ErrNoProperties = errors.New("logic: no properties to test")

type strategy struct {
	infix.Unsupported[bool]
}

func (s strategy) Constant(c infix.Constant, ctx any) (bool, error) {
	switch c {
	case True:
		return true, nil
	case False:
		return false, nil
	}
	return s.Unsupported.Constant(c, ctx)
}

func (s strategy) Operator(op infix.Operator, x []bool, ctx any) (bool, error) {
	switch op {
	case Not, NotWord:
		return !x[0], nil
	case And, AndWord:
		return x[0] && x[1], nil
	case Or, OrWord:
		return x[0] || x[1], nil
	}
	return s.Unsupported.Operator(op, x, ctx)
}

func (s strategy) Literal(text string, ctx any) (bool, error) {
	name, value, ok := strings.Cut(text, "=")
	if !ok {
		return strconv.ParseBool(text)
	}
	p, _ := ctx.(Properties)
	if p == nil {
		if m, _ := ctx.(map[string]string); m != nil {
			p = m
		} else {
			return false, ErrNoProperties
		}
	}
	v, ok := p[name]
	return ok && v == value, nil
}
