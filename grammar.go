package infix

import "strconv"

// Associativity is the grouping of a sequence of operators with the same
// precedence.
type Associativity int8

const (
	// Left groups a op b op c as (a op b) op c.
	Left Associativity = iota
	// Right groups a op b op c as a op (b op c).
	Right
)

func (a Associativity) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "Associativity(" + strconv.Itoa(int(a)) + ")"
	}
}

// Operator is a unary prefix or binary infix operator. Operators are
// comparable values; a strategy identifies the operator it is asked to apply
// by comparing it against the values it registered.
type Operator struct {
	// Symbol is the text of the operator in expressions, e.g. "+" or "NOT".
	Symbol string
	// Operands is 1 for a unary operator or 2 for a binary one.
	Operands int
	// Assoc is the operator's associativity.
	Assoc Associativity
	// Prec is the operator's precedence. Higher binds tighter.
	Prec int
}

// NewOperator creates an operator. Panics if operands is not 1 or 2 or if
// the symbol is empty.
func NewOperator(symbol string, operands int, assoc Associativity, prec int) Operator {
	if symbol == "" {
		panic("infix: empty operator symbol")
	}
	if operands != 1 && operands != 2 {
		panic("infix: operator " + strconv.Quote(symbol) + " has " + strconv.Itoa(operands) + " operands")
	}
	return Operator{Symbol: symbol, Operands: operands, Assoc: assoc, Prec: prec}
}

// Function is a named function taking a bracketed argument list.
type Function struct {
	Name string
	// Min and Max are the inclusive bounds on the number of arguments.
	Min, Max int
}

// NewFunction creates a function accepting between min and max arguments.
// Panics if min is negative or max is less than min.
func NewFunction(name string, min, max int) Function {
	if name == "" {
		panic("infix: empty function name")
	}
	if min < 0 || max < min {
		panic("infix: function " + name + " has invalid arity [" + strconv.Itoa(min) + ", " + strconv.Itoa(max) + "]")
	}
	return Function{Name: name, Min: min, Max: max}
}

// NewFunctionN creates a function accepting exactly n arguments.
func NewFunctionN(name string, n int) Function {
	return NewFunction(name, n, n)
}

// CanCall returns whether the function accepts n arguments.
func (f Function) CanCall(n int) bool {
	return f.Min <= n && n <= f.Max
}

// Constant is a named value. The value itself comes from the strategy at
// evaluation time.
type Constant struct {
	Name string
}

// BracketPair is a pair of open and close delimiters.
type BracketPair struct {
	Open, Close string
}

// Predefined bracket pairs.
var (
	Parentheses = BracketPair{"(", ")"}
	Brackets    = BracketPair{"[", "]"}
	Braces      = BracketPair{"{", "}"}
	Angles      = BracketPair{"<", ">"}
)

// NewBracketPair creates a bracket pair. Panics if either delimiter is empty
// or they are equal.
func NewBracketPair(open, close string) BracketPair {
	if open == "" || close == "" || open == close {
		panic("infix: invalid bracket pair " + strconv.Quote(open) + " " + strconv.Quote(close))
	}
	return BracketPair{Open: open, Close: close}
}

func (p BracketPair) String() string {
	return p.Open + p.Close
}

// Grammar describes the vocabulary of an evaluator. It is a builder: add
// everything the evaluator supports, then pass it to New. The engine keeps
// its own copy, so changes made to a Grammar after New has returned do not
// affect the engine.
//
// A Grammar performs no validation of its own; New reports duplicates and
// ambiguous operators.
type Grammar struct {
	operators []Operator
	functions []Function
	constants []Constant
	exprs     []BracketPair
	funcs     []BracketPair
	names     map[string]string
	sep       rune
	spaces    bool
}

// NewGrammar creates an empty grammar with ',' as the function argument
// separator.
func NewGrammar() *Grammar {
	return &Grammar{sep: ','}
}

// AddOperators adds operators to the grammar.
func (g *Grammar) AddOperators(ops ...Operator) *Grammar {
	g.operators = append(g.operators, ops...)
	return g
}

// AddFunctions adds functions to the grammar.
func (g *Grammar) AddFunctions(fns ...Function) *Grammar {
	g.functions = append(g.functions, fns...)
	return g
}

// AddConstants adds constants to the grammar.
func (g *Grammar) AddConstants(cs ...Constant) *Grammar {
	g.constants = append(g.constants, cs...)
	return g
}

// AddExpressionBrackets adds bracket pairs which group subexpressions.
func (g *Grammar) AddExpressionBrackets(pairs ...BracketPair) *Grammar {
	g.exprs = append(g.exprs, pairs...)
	return g
}

// AddFunctionBrackets adds bracket pairs which enclose function argument
// lists.
func (g *Grammar) AddFunctionBrackets(pairs ...BracketPair) *Grammar {
	g.funcs = append(g.funcs, pairs...)
	return g
}

// Translate sets the name used in expressions for the function, constant, or
// operator originally named name.
func (g *Grammar) Translate(name, translated string) *Grammar {
	if g.names == nil {
		g.names = make(map[string]string)
	}
	g.names[name] = translated
	return g
}

// TranslateFunction localizes the name of a function.
func (g *Grammar) TranslateFunction(f Function, translated string) *Grammar {
	return g.Translate(f.Name, translated)
}

// TranslateConstant localizes the name of a constant.
func (g *Grammar) TranslateConstant(c Constant, translated string) *Grammar {
	return g.Translate(c.Name, translated)
}

// Translation returns the name used in expressions for name. If name has no
// translation, the result is name itself.
func (g *Grammar) Translation(name string) string {
	if t, ok := g.names[name]; ok {
		return t
	}
	return name
}

// SetSeparator sets the function argument separator.
func (g *Grammar) SetSeparator(sep rune) *Grammar {
	g.sep = sep
	return g
}

// AllowSpacesInLiterals sets whether the default tokenizer keeps whitespace
// inside a literal, e.g. "3 000", instead of splitting it into separate
// literals.
func (g *Grammar) AllowSpacesInLiterals(allow bool) *Grammar {
	g.spaces = allow
	return g
}

// Separator returns the function argument separator as a string.
func (g *Grammar) Separator() string {
	return string(g.sep)
}

// Operators returns a copy of the grammar's operators.
func (g *Grammar) Operators() []Operator {
	return append([]Operator(nil), g.operators...)
}

// Functions returns a copy of the grammar's functions.
func (g *Grammar) Functions() []Function {
	return append([]Function(nil), g.functions...)
}

// Constants returns a copy of the grammar's constants.
func (g *Grammar) Constants() []Constant {
	return append([]Constant(nil), g.constants...)
}

// ExpressionBrackets returns a copy of the grammar's expression brackets.
func (g *Grammar) ExpressionBrackets() []BracketPair {
	return append([]BracketPair(nil), g.exprs...)
}

// FunctionBrackets returns a copy of the grammar's function brackets.
func (g *Grammar) FunctionBrackets() []BracketPair {
	return append([]BracketPair(nil), g.funcs...)
}

// Clone returns a deep copy of the grammar, e.g. to extend a default grammar
// without modifying it.
func (g *Grammar) Clone() *Grammar {
	n := Grammar{
		operators: g.Operators(),
		functions: g.Functions(),
		constants: g.Constants(),
		exprs:     g.ExpressionBrackets(),
		funcs:     g.FunctionBrackets(),
		sep:       g.sep,
		spaces:    g.spaces,
	}
	if g.names != nil {
		n.names = make(map[string]string, len(g.names))
		for k, v := range g.names {
			n.names[k] = v
		}
	}
	return &n
}
