package infix

import (
	"errors"
	"strconv"
)

// ExpressionError indicates a malformed expression: mismatched brackets, a
// misplaced separator or operator, adjacent literals, and so on. It
// implements InputError.
type ExpressionError struct {
	// Col is the position of the token where the problem was detected, or
	// the position just past the input if it was detected at the end.
	Col int
	// Token is the offending token, if any.
	Token string
	// Cause describes the problem.
	Cause string
}

func (err *ExpressionError) Error() string {
	msg := "invalid expression: " + err.Cause
	if err.Token != "" {
		msg += " (" + strconv.Quote(err.Token) + ")"
	}
	return errpos(err.Col, msg)
}

func (err *ExpressionError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the bracket that closed the call.
	Col int
	// Func is the function name as written in the expression.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// Min and Max are the bounds the function accepts.
	Min, Max int
}

func (err *CallError) Error() string {
	want := strconv.Itoa(err.Min)
	if err.Max != err.Min {
		want += " to " + strconv.Itoa(err.Max)
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (want "+want+")")
}

func (err *CallError) Pos() int {
	return err.Col
}

// LiteralError indicates a literal that is not a constant, not a variable in
// the evaluation context, and not parseable by the strategy. It implements
// InputError and unwraps to the strategy's error.
type LiteralError struct {
	Col  int
	Text string
	Err  error
}

func (err *LiteralError) Error() string {
	msg := "invalid literal " + strconv.Quote(err.Text)
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return errpos(err.Col, msg)
}

func (err *LiteralError) Pos() int {
	return err.Col
}

func (err *LiteralError) Unwrap() error {
	return err.Err
}

// ErrUnsupported is the error that UnsupportedError matches with errors.Is.
var ErrUnsupported = errors.New("not supported by this evaluator")

// ErrNoValue may be wrapped by an error from Strategy.Constant to indicate
// that the constant has no value in the given context. Resolution then
// continues with the context's variables and finally the literal hook.
var ErrNoValue = errors.New("no value")

// UnsupportedError indicates that a strategy hook was invoked for something
// the evaluator registered but never implemented. It is a mistake in the
// evaluator's definition rather than in the expression, so it is not an
// InputError.
type UnsupportedError struct {
	// Kind is "constant", "function", "operator", or "literal".
	Kind string
	// Name is the name or symbol of the item.
	Name string
}

func (err *UnsupportedError) Error() string {
	return err.Kind + " " + strconv.Quote(err.Name) + " is " + ErrUnsupported.Error()
}

func (err *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}

// ConfigError indicates a grammar that cannot be used to build an engine.
type ConfigError struct {
	Cause string
}

func (err *ConfigError) Error() string {
	return "infix: invalid grammar: " + err.Cause
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*ExpressionError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*LiteralError)(nil)
)
