// Package double provides an evaluator of arithmetic expressions on float64.
package double

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/zephyrtronium/infix"
)

// Style selects the precedence of unary minus.
type Style int8

const (
	// Standard makes unary minus bind looser than exponentiation, so -2^2
	// is -4.
	Standard Style = iota
	// Excel makes unary minus bind tighter than exponentiation, so -2^2 is
	// 4, as in spreadsheets.
	Excel
)

// Operators.
var (
	Negate     = infix.NewOperator("-", 1, infix.Right, 3)
	NegateHigh = infix.NewOperator("-", 1, infix.Right, 5)
	Minus      = infix.NewOperator("-", 2, infix.Left, 1)
	Plus       = infix.NewOperator("+", 2, infix.Left, 1)
	Multiply   = infix.NewOperator("*", 2, infix.Left, 2)
	Divide     = infix.NewOperator("/", 2, infix.Left, 2)
	Modulo     = infix.NewOperator("%", 2, infix.Left, 2)
	Exponent   = infix.NewOperator("^", 2, infix.Right, 4)
)

// Constants.
var (
	Pi = infix.Constant{Name: "pi"}
	E  = infix.Constant{Name: "e"}
)

// Functions.
var (
	Abs     = infix.NewFunctionN("abs", 1)
	Ceil    = infix.NewFunctionN("ceil", 1)
	Floor   = infix.NewFunctionN("floor", 1)
	Round   = infix.NewFunctionN("round", 1)
	Sine    = infix.NewFunctionN("sin", 1)
	Cosine  = infix.NewFunctionN("cos", 1)
	Tangent = infix.NewFunctionN("tan", 1)
	Asin    = infix.NewFunctionN("asin", 1)
	Acos    = infix.NewFunctionN("acos", 1)
	Atan    = infix.NewFunctionN("atan", 1)
	Sinh    = infix.NewFunctionN("sinh", 1)
	Cosh    = infix.NewFunctionN("cosh", 1)
	Tanh    = infix.NewFunctionN("tanh", 1)
	Ln      = infix.NewFunctionN("ln", 1)
	Log     = infix.NewFunctionN("log", 1)
	Min     = infix.NewFunction("min", 1, math.MaxInt32)
	Max     = infix.NewFunction("max", 1, math.MaxInt32)
	Sum     = infix.NewFunction("sum", 1, math.MaxInt32)
	Average = infix.NewFunction("avg", 1, math.MaxInt32)
	Random  = infix.NewFunctionN("random", 0)
)

// DefaultGrammar returns a new grammar with every operator, function, and
// constant of the package, using parentheses for grouping and for function
// arguments.
func DefaultGrammar(style Style) *infix.Grammar {
	neg := Negate
	if style == Excel {
		neg = NegateHigh
	}
	return infix.NewGrammar().
		AddOperators(neg, Minus, Plus, Multiply, Divide, Modulo, Exponent).
		AddConstants(Pi, E).
		AddFunctions(Abs, Ceil, Floor, Round,
			Sine, Cosine, Tangent, Asin, Acos, Atan, Sinh, Cosh, Tanh,
			Ln, Log, Min, Max, Sum, Average, Random).
		AddExpressionBrackets(infix.Parentheses).
		AddFunctionBrackets(infix.Parentheses)
}

// Evaluator evaluates expressions to float64.
type Evaluator struct {
	*infix.Engine[float64]
}

// Option is an option for creating an Evaluator.
type Option func(*strategy)

// WithLiteralParser replaces strconv.ParseFloat as the parser of numeric
// literals, e.g. to accept a decimal comma.
func WithLiteralParser(parse func(string) (float64, error)) Option {
	return func(s *strategy) {
		s.parse = parse
	}
}

// New creates an evaluator for a grammar. The grammar may use any subset of
// the package's operators, functions, and constants, possibly translated.
func New(g *infix.Grammar, opts ...Option) (*Evaluator, error) {
	s := strategy{parse: parseFloat}
	for _, opt := range opts {
		opt(&s)
	}
	e, err := infix.New[float64](g, &s)
	if err != nil {
		return nil, err
	}
	return &Evaluator{e}, nil
}

// Default returns an evaluator for DefaultGrammar(Standard).
func Default() *Evaluator {
	e, err := New(DefaultGrammar(Standard))
	if err != nil {
		panic("double: default grammar: " + err.Error())
	}
	return e
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

type strategy struct {
	infix.Unsupported[float64]
	parse func(string) (float64, error)
}

func (s *strategy) Constant(c infix.Constant, ctx any) (float64, error) {
	switch c {
	case Pi:
		return math.Pi, nil
	case E:
		return math.E, nil
	}
	return s.Unsupported.Constant(c, ctx)
}

func (s *strategy) Operator(op infix.Operator, x []float64, ctx any) (float64, error) {
	switch op {
	case Negate, NegateHigh:
		return -x[0], nil
	case Minus:
		return x[0] - x[1], nil
	case Plus:
		return x[0] + x[1], nil
	case Multiply:
		return x[0] * x[1], nil
	case Divide:
		return x[0] / x[1], nil
	case Modulo:
		return math.Mod(x[0], x[1]), nil
	case Exponent:
		return math.Pow(x[0], x[1]), nil
	}
	return s.Unsupported.Operator(op, x, ctx)
}

func (s *strategy) Function(f infix.Function, args []float64, ctx any) (float64, error) {
	switch f {
	case Abs:
		return math.Abs(args[0]), nil
	case Ceil:
		return math.Ceil(args[0]), nil
	case Floor:
		return math.Floor(args[0]), nil
	case Round:
		// Half rounds up, including for negative numbers.
		return math.Floor(args[0] + 0.5), nil
	case Sine:
		return math.Sin(args[0]), nil
	case Cosine:
		return math.Cos(args[0]), nil
	case Tangent:
		return math.Tan(args[0]), nil
	case Asin:
		return math.Asin(args[0]), nil
	case Acos:
		return math.Acos(args[0]), nil
	case Atan:
		return math.Atan(args[0]), nil
	case Sinh:
		return math.Sinh(args[0]), nil
	case Cosh:
		return math.Cosh(args[0]), nil
	case Tanh:
		return math.Tanh(args[0]), nil
	case Ln:
		return math.Log(args[0]), nil
	case Log:
		return math.Log10(args[0]), nil
	case Min:
		r := args[0]
		for _, x := range args[1:] {
			r = math.Min(r, x)
		}
		return r, nil
	case Max:
		r := args[0]
		for _, x := range args[1:] {
			r = math.Max(r, x)
		}
		return r, nil
	case Sum:
		return sum(args), nil
	case Average:
		return sum(args) / float64(len(args)), nil
	case Random:
		return rand.Float64(), nil
	}
	return s.Unsupported.Function(f, args, ctx)
}

func (s *strategy) Literal(text string, ctx any) (float64, error) {
	return s.parse(text)
}

func sum(x []float64) float64 {
	var r float64
	for _, v := range x {
		r += v
	}
	return r
}
