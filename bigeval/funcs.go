package bigeval

import (
	"errors"
	"math/big"
	"strconv"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/infix"
)

// Func implements a function from reals to reals. The function's arity is
// given by the infix.Function it is registered under.
type Func interface {
	// Call evaluates the function. args has a length the function's bounds
	// allow, and Call may modify its elements. Call must set r to its result
	// and should not use the value of r otherwise.
	Call(ctx *Context, args []*big.Float, r *big.Float) error
}

// Functions.
var (
	Exp  = infix.NewFunctionN("exp", 1)
	Ln   = infix.NewFunctionN("ln", 1)
	Log  = infix.NewFunction("log", 1, 2)
	Sqrt = infix.NewFunctionN("sqrt", 1)
	Abs  = infix.NewFunctionN("abs", 1)
)

// Constants.
var (
	Pi = infix.Constant{Name: "pi"}
	E  = infix.Constant{Name: "e"}
)

var globalfuncs = map[infix.Function]Func{
	Exp:  Monadic(bigfloat.Exp),
	Ln:   Monadic(positive(bigfloat.Log)),
	Log:  logfunc{},
	Sqrt: Monadic((*big.Float).Sqrt),
	Abs:  Monadic((*big.Float).Abs),
}

var globalconsts = map[infix.Constant]func(out *big.Float) *big.Float{
	Pi: bigfloat.Pi,
	E: func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	},
}

// positive restricts a logarithm to positive arguments. The log of zero is
// negative infinity.
func positive(f func(out, in *big.Float) *big.Float) func(out, in *big.Float) *big.Float {
	return func(out, in *big.Float) *big.Float {
		switch in.Sign() {
		case -1:
			panic(big.ErrNaN{})
		case 0:
			return out.SetInf(true)
		}
		return f(out, in)
	}
}

// logfunc is the logarithm with an optional base, 10 by default.
type logfunc struct{}

func (logfunc) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	ln := Monadic(positive(bigfloat.Log))
	if err := ln.Call(ctx, args[:1], r); err != nil {
		return err
	}
	base := new(big.Float).SetPrec(ctx.Prec()).SetInt64(10)
	if len(args) > 1 {
		base.Set(args[1])
	}
	if base.Sign() <= 0 || base.Cmp(big.NewFloat(1)) == 0 {
		return &DomainError{X: args[len(args)-1], Arg: len(args)}
	}
	bigfloat.Log(base, base)
	r.Quo(r, base)
	return nil
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, args []*big.Float, r *big.Float) (err error) {
	in := args[0]
	defer func() {
		x := recover()
		if x == nil {
			return
		}
		e, ok := x.(error)
		if !ok || !errors.As(e, &big.ErrNaN{}) {
			panic(x)
		}
		err = &DomainError{X: in, Arg: 1}
	}()
	r.SetPrec(ctx.Prec())
	m.f(r, in)
	return nil
}

// Monadic wraps a function of one variable into a Func. f must set out to its
// result, to the precision of out; its return value is always ignored. If f is
// called on an argument outside f's domain, it should panic with an error of
// type big.ErrNaN, or that unwraps to it.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type niladic struct {
	f func(out *big.Float) *big.Float
}

func (n niladic) Call(ctx *Context, args []*big.Float, r *big.Float) error {
	r.SetPrec(ctx.Prec())
	n.f(r)
	return nil
}

// Niladic wraps a function of zero variables, generally a function which
// computes a constant, into a Func. f must set out to its result; its return
// value is always ignored. Unlike Monadic, the wrapped function is expected
// never to panic.
func Niladic(f func(out *big.Float) *big.Float) Func {
	return niladic{f}
}

// DomainError is an error returned when a function or operator is applied to
// arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X *big.Float
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
