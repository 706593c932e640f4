// Package bigeval provides an evaluator of arithmetic expressions on
// arbitrary-precision floats.
package bigeval

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/infix"
)

// Operators. The alternate forms of multiplication and division have the
// same meaning as * and /.
var (
	Neg    = infix.NewOperator("-", 1, infix.Right, 3)
	Pos    = infix.NewOperator("+", 1, infix.Right, 3)
	Add    = infix.NewOperator("+", 2, infix.Left, 1)
	Sub    = infix.NewOperator("-", 2, infix.Left, 1)
	Mul    = infix.NewOperator("*", 2, infix.Left, 2)
	MulAlt = infix.NewOperator("×", 2, infix.Left, 2)
	Div    = infix.NewOperator("/", 2, infix.Left, 2)
	DivAlt = infix.NewOperator("÷", 2, infix.Left, 2)
	Pow    = infix.NewOperator("^", 2, infix.Right, 4)
)

// DefaultGrammar returns a new grammar with the package's operators, default
// functions, and constants. Both parentheses and brackets group expressions
// and enclose function arguments.
func DefaultGrammar() *infix.Grammar {
	return infix.NewGrammar().
		AddOperators(Neg, Pos, Add, Sub, Mul, MulAlt, Div, DivAlt, Pow).
		AddConstants(Pi, E).
		AddFunctions(Exp, Ln, Log, Sqrt, Abs).
		AddExpressionBrackets(infix.Parentheses, infix.Brackets).
		AddFunctionBrackets(infix.Parentheses, infix.Brackets)
}

// Evaluator evaluates expressions to *big.Float. Every result is a new value
// the caller owns.
type Evaluator struct {
	*infix.Engine[*big.Float]
}

// Option is an option for creating an Evaluator.
type Option interface {
	evalOption(*strategy)
}

type funcopt struct {
	f    infix.Function
	impl Func
}

func (o funcopt) evalOption(s *strategy) {
	s.funcs[o.f] = o.impl
}

// WithFunc implements a function. f must also be added to the grammar passed
// to New. It may replace one of the default functions.
func WithFunc(f infix.Function, impl Func) Option {
	return funcopt{f, impl}
}

// New creates an evaluator for a grammar built from the package's operators,
// functions, and constants, plus any functions given with WithFunc.
func New(g *infix.Grammar, opts ...Option) (*Evaluator, error) {
	s := strategy{funcs: make(map[infix.Function]Func, len(globalfuncs))}
	for f, impl := range globalfuncs {
		s.funcs[f] = impl
	}
	for _, opt := range opts {
		if opt != nil {
			opt.evalOption(&s)
		}
	}
	e, err := infix.New[*big.Float](g, &s)
	if err != nil {
		return nil, err
	}
	return &Evaluator{e}, nil
}

var defaultEvaluator = func() *Evaluator {
	e, err := New(DefaultGrammar())
	if err != nil {
		panic("bigeval: default grammar: " + err.Error())
	}
	return e
}()

// Default returns an evaluator for DefaultGrammar.
func Default() *Evaluator {
	return defaultEvaluator
}

// Eval evaluates an expression in a context. If ctx is nil, a new context
// with default precision is used.
func (e *Evaluator) Eval(expr string, ctx *Context) (*big.Float, error) {
	if ctx == nil {
		ctx = NewContext()
	}
	return e.EvaluateContext(expr, ctx)
}

// EvalString is a shortcut to evaluate an expression with the default
// evaluator in a new context.
func EvalString(expr string, opts ...ContextOption) (*big.Float, error) {
	return defaultEvaluator.Eval(expr, NewContext(opts...))
}

type strategy struct {
	infix.Unsupported[*big.Float]
	funcs map[infix.Function]Func
}

// ctxof gets the *Context out of an evaluation context.
func ctxof(ctx any) *Context {
	if c, ok := ctx.(*Context); ok && c != nil {
		return c
	}
	return NewContext()
}

func (s *strategy) Constant(c infix.Constant, ctx any) (*big.Float, error) {
	f := globalconsts[c]
	if f == nil {
		return s.Unsupported.Constant(c, ctx)
	}
	r := new(big.Float).SetPrec(ctxof(ctx).Prec())
	return f(r), nil
}

func (s *strategy) Function(f infix.Function, args []*big.Float, ctx any) (*big.Float, error) {
	impl := s.funcs[f]
	if impl == nil {
		return s.Unsupported.Function(f, args, ctx)
	}
	c := ctxof(ctx)
	r := new(big.Float).SetPrec(c.Prec())
	if err := impl.Call(c, args, r); err != nil {
		if d, ok := err.(*DomainError); ok && d.Func == "" {
			d.Func = f.Name
		}
		return nil, err
	}
	return r, nil
}

func (s *strategy) Operator(op infix.Operator, x []*big.Float, ctx any) (*big.Float, error) {
	r := new(big.Float).SetPrec(ctxof(ctx).Prec())
	switch op {
	case Neg:
		return r.Neg(x[0]), nil
	case Pos:
		return r.Set(x[0]), nil
	case Add:
		if x[0].IsInf() && x[1].IsInf() && x[0].Signbit() != x[1].Signbit() {
			return nil, &DomainError{X: x[1], Arg: 2, Func: op.Symbol}
		}
		return r.Add(x[0], x[1]), nil
	case Sub:
		if x[0].IsInf() && x[1].IsInf() && x[0].Signbit() == x[1].Signbit() {
			return nil, &DomainError{X: x[1], Arg: 2, Func: op.Symbol}
		}
		return r.Sub(x[0], x[1]), nil
	case Mul, MulAlt:
		if x[0].IsInf() && x[1].Sign() == 0 || x[0].Sign() == 0 && x[1].IsInf() {
			return nil, &DomainError{X: x[1], Arg: 2, Func: op.Symbol}
		}
		return r.Mul(x[0], x[1]), nil
	case Div, DivAlt:
		// Guard against invalid divisions, 0/0 or inf/inf.
		if x[0].Sign() == 0 && x[1].Sign() == 0 || x[0].IsInf() && x[1].IsInf() {
			return nil, &DomainError{X: x[1], Arg: 2, Func: op.Symbol}
		}
		return r.Quo(x[0], x[1]), nil
	case Pow:
		return pow(r, x[0], x[1])
	}
	return s.Unsupported.Operator(op, x, ctx)
}

// pow sets r to l^e. A negative base is allowed only with an integer
// exponent.
func pow(r, l, e *big.Float) (*big.Float, error) {
	if !l.Signbit() {
		return bigfloat.Pow(r, l, e), nil
	}
	if !e.IsInt() {
		return nil, &DomainError{X: l, Arg: 1, Func: "^"}
	}
	a := new(big.Float).Abs(l)
	// Pow returns a new value instead of r for some exponents.
	r.Set(bigfloat.Pow(r, a, e))
	if n, _ := e.Int(nil); n.Bit(0) == 1 {
		r.Neg(r)
	}
	return r, nil
}

func (s *strategy) Literal(text string, ctx any) (*big.Float, error) {
	return ctxof(ctx).num(text)
}
