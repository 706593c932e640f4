package infix

import (
	"errors"
	"strconv"
)

// Engine evaluates infix expressions over values of type T. The grammar is
// fixed when the engine is created, and Evaluate keeps all of its working
// state local to the call, so an Engine may be used concurrently if its
// Strategy may be.
//
// Operators are grouped by the usual shunting-yard rule, except that a
// prefix operator, one with no operand on its left, is pushed without first
// applying the operators already on the stack. Those operators are still
// waiting for their right operand, which the prefix operator begins, so
// 2*3^-1 is 2*(3^(-1)) rather than an error or (2*3)^(-1).
type Engine[T any] struct {
	strategy  Strategy[T]
	tokenizer Tokenizer
	homonyms  HomonymPolicy

	// Symbol tables are keyed by translated names but hold the original
	// values, which are what the strategy sees.
	functions map[string]Function
	operators map[string][]Operator
	constants map[string]Constant
	// exprs and funcs map both the open and close strings of each pair.
	exprs map[string]BracketPair
	funcs map[string]BracketPair
	sep   string
}

// New creates an engine for a grammar and strategy. The engine copies what it
// needs from g. New returns a *ConfigError if functions or constants are
// duplicated, if an operator is registered twice, if the homonym policy
// rejects a group of operators sharing a symbol, if one bracket string is in
// two different pairs of the same kind, or if the separator is also an
// operator or bracket.
func New[T any](g *Grammar, s Strategy[T], opts ...Option) (*Engine[T], error) {
	if g == nil || s == nil {
		return nil, &ConfigError{Cause: "nil grammar or strategy"}
	}
	o := engineopts{homonyms: ArityPolicy{}}
	for _, opt := range opts {
		if opt != nil {
			opt.engineOption(&o)
		}
	}
	e := Engine[T]{
		strategy:  s,
		homonyms:  o.homonyms,
		functions: make(map[string]Function, len(g.functions)),
		operators: make(map[string][]Operator, len(g.operators)),
		constants: make(map[string]Constant, len(g.constants)),
		exprs:     make(map[string]BracketPair, 2*len(g.exprs)),
		funcs:     make(map[string]BracketPair, 2*len(g.funcs)),
		sep:       g.Separator(),
	}
	var delims []string
	for _, p := range g.funcs {
		if err := addBrackets(e.funcs, p); err != nil {
			return nil, err
		}
		delims = append(delims, p.Open, p.Close)
	}
	for _, p := range g.exprs {
		if err := addBrackets(e.exprs, p); err != nil {
			return nil, err
		}
		delims = append(delims, p.Open, p.Close)
	}
	for _, op := range g.operators {
		sym := g.Translation(op.Symbol)
		for _, k := range e.operators[sym] {
			if k == op {
				return nil, &ConfigError{Cause: "duplicate operator " + strconv.Quote(sym)}
			}
		}
		if len(e.operators[sym]) == 0 {
			delims = append(delims, sym)
		}
		e.operators[sym] = append(e.operators[sym], op)
	}
	for _, ops := range e.operators {
		if len(ops) > 1 {
			if err := e.homonyms.Validate(ops); err != nil {
				return nil, err
			}
		}
	}
	multi := false
	for _, f := range g.functions {
		name := g.Translation(f.Name)
		if _, ok := e.functions[name]; ok {
			return nil, &ConfigError{Cause: "duplicate function " + strconv.Quote(name)}
		}
		if _, ok := e.operators[name]; ok {
			return nil, &ConfigError{Cause: "function " + strconv.Quote(name) + " is also an operator"}
		}
		e.functions[name] = f
		if f.Max > 1 {
			multi = true
		}
	}
	for _, c := range g.constants {
		name := g.Translation(c.Name)
		if _, ok := e.constants[name]; ok {
			return nil, &ConfigError{Cause: "duplicate constant " + strconv.Quote(name)}
		}
		if _, ok := e.functions[name]; ok {
			return nil, &ConfigError{Cause: "constant " + strconv.Quote(name) + " is also a function"}
		}
		e.constants[name] = c
	}
	if _, ok := e.operators[e.sep]; ok {
		return nil, &ConfigError{Cause: "separator " + strconv.Quote(e.sep) + " is also an operator"}
	}
	if e.bracket(e.sep) {
		return nil, &ConfigError{Cause: "separator " + strconv.Quote(e.sep) + " is also a bracket"}
	}
	// The separator only needs to split tokens if some function can take
	// more than one argument.
	if multi {
		delims = append(delims, e.sep)
	}
	e.tokenizer = o.tokenizer
	if e.tokenizer == nil {
		e.tokenizer = NewDelimiterTokenizer(delims, g.spaces)
	}
	return &e, nil
}

// addBrackets maps both strings of p to p. A string may belong to only one
// pair of each kind.
func addBrackets(m map[string]BracketPair, p BracketPair) error {
	for _, s := range [...]string{p.Open, p.Close} {
		if q, ok := m[s]; ok && q != p {
			return &ConfigError{Cause: "bracket " + strconv.Quote(s) + " is in both " + q.String() + " and " + p.String()}
		}
		m[s] = p
	}
	return nil
}

func (e *Engine[T]) bracket(s string) bool {
	_, x := e.exprs[s]
	_, f := e.funcs[s]
	return x || f
}

// Evaluate evaluates an expression with no context.
func (e *Engine[T]) Evaluate(expr string) (T, error) {
	return e.EvaluateContext(expr, nil)
}

// EvaluateContext evaluates an expression. ctx is passed to every strategy
// hook; if it implements Variables[T], literals which are not constants are
// looked up in it before being parsed.
func (e *Engine[T]) EvaluateContext(expr string, ctx any) (T, error) {
	var zero T
	values := newStack[T]()
	ops := newStack[Token]()
	var marks stack[int]
	if len(e.functions) != 0 {
		// Value stack heights at each function's open bracket.
		marks = newStack[int]()
	}
	toks := e.tokenizer.Tokenize(expr)
	var prev Token
	end := 1
	for {
		text, col, ok := toks.Next()
		if !ok {
			end = col
			break
		}
		tok, err := e.classify(prev, text, col)
		if err != nil {
			return zero, err
		}
		if prev.Kind == TokenFunction && tok.Kind != TokenOpen {
			return zero, &ExpressionError{Col: col, Token: text, Cause: "function " + prev.Text + " must be followed by an argument list"}
		}
		switch tok.Kind {
		case TokenOpen:
			brackets, what := e.exprs, "in expression"
			if prev.Kind == TokenFunction {
				brackets, what = e.funcs, "after function"
			}
			p, ok := brackets[text]
			if !ok || p.Open != text {
				return zero, &ExpressionError{Col: col, Token: text, Cause: "invalid bracket " + what}
			}
			tok.Brackets = p
			ops.push(tok)
		case TokenClose:
			switch prev.Kind {
			case TokenNone:
				return zero, &ExpressionError{Col: col, Token: text, Cause: "expression can't start with a close bracket"}
			case TokenSeparator:
				return zero, &ExpressionError{Col: col, Token: text, Cause: "argument is missing"}
			}
			if err := e.closeBracket(values, ops, marks, tok, ctx); err != nil {
				return zero, err
			}
		case TokenSeparator:
			switch prev.Kind {
			case TokenNone:
				return zero, &ExpressionError{Col: col, Token: text, Cause: "expression can't start with a separator"}
			case TokenOpen, TokenSeparator:
				return zero, &ExpressionError{Col: col, Token: text, Cause: "argument is missing"}
			}
			if err := e.separate(values, ops, tok, ctx); err != nil {
				return zero, err
			}
		case TokenFunction:
			ops.push(tok)
			marks.push(values.len())
		case TokenOperator:
			if tok.Operator.Operands == 2 && !prev.IsOperand() {
				return zero, &ExpressionError{Col: col, Token: text, Cause: "missing operand"}
			}
			// A prefix operator has nothing on its left to reduce.
			if prev.IsOperand() {
				for {
					top, ok := ops.top()
					if !ok || top.Kind != TokenOperator || !yields(tok.Operator, top.Operator) {
						break
					}
					if err := e.apply(values, ops.pop(), ctx); err != nil {
						return zero, err
					}
				}
			}
			ops.push(tok)
		case TokenLiteral:
			if prev.Kind == TokenLiteral {
				return zero, &ExpressionError{Col: col, Token: text, Cause: "a literal can't follow another literal"}
			}
			v, err := e.literal(tok, ctx)
			if err != nil {
				return zero, err
			}
			values.push(v)
		default:
			panic("infix: classified invalid token " + tok.String())
		}
		prev = tok
	}
	if prev.Kind == TokenFunction {
		return zero, &ExpressionError{Col: end, Cause: "function " + prev.Text + " must be followed by an argument list"}
	}
	for ops.len() != 0 {
		tok := ops.pop()
		switch tok.Kind {
		case TokenOpen, TokenClose:
			return zero, &ExpressionError{Col: tok.Col, Token: tok.Text, Cause: "brackets mismatched"}
		case TokenFunction:
			return zero, &ExpressionError{Col: tok.Col, Token: tok.Text, Cause: "unterminated function call"}
		}
		if err := e.apply(values, tok, ctx); err != nil {
			return zero, err
		}
	}
	switch values.len() {
	case 1:
		return values.pop(), nil
	case 0:
		return zero, &ExpressionError{Col: end, Cause: "no expression"}
	default:
		return zero, &ExpressionError{Col: end, Cause: strconv.Itoa(values.len()) + " values with no operator between them"}
	}
}

// yields returns whether an incoming operator op lets the operator top on the
// stack be applied first.
func yields(op, top Operator) bool {
	return op.Assoc == Left && op.Prec <= top.Prec || op.Prec < top.Prec
}

// closeBracket applies everything back to the open bracket matching tok,
// then calls the function owning the bracket, if any.
func (e *Engine[T]) closeBracket(values stack[T], ops stack[Token], marks stack[int], tok Token, ctx any) error {
	for {
		top, ok := ops.top()
		if !ok {
			return &ExpressionError{Col: tok.Col, Token: tok.Text, Cause: "brackets mismatched"}
		}
		ops.pop()
		if top.Kind == TokenOpen {
			if top.Brackets != tok.Brackets {
				return &ExpressionError{Col: tok.Col, Token: top.Text + tok.Text, Cause: "invalid bracket match"}
			}
			break
		}
		if err := e.apply(values, top, ctx); err != nil {
			return err
		}
	}
	top, ok := ops.top()
	if !ok || top.Kind != TokenFunction {
		return nil
	}
	ops.pop()
	f := top.Function
	n := values.len() - marks.pop()
	if !f.CanCall(n) {
		return &CallError{Col: tok.Col, Func: top.Text, Len: n, Min: f.Min, Max: f.Max}
	}
	v, err := e.strategy.Function(f, values.popn(n), ctx)
	if err != nil {
		return err
	}
	values.push(v)
	return nil
}

// separate applies everything back to the open bracket of the enclosing
// argument list.
func (e *Engine[T]) separate(values stack[T], ops stack[Token], tok Token, ctx any) error {
	for {
		top, ok := ops.top()
		if !ok {
			return &ExpressionError{Col: tok.Col, Token: tok.Text, Cause: "separator or brackets mismatched"}
		}
		if top.Kind == TokenOpen {
			break
		}
		if err := e.apply(values, ops.pop(), ctx); err != nil {
			return err
		}
	}
	open := ops.pop()
	call, ok := ops.top()
	ops.push(open)
	if !ok || call.Kind != TokenFunction {
		return &ExpressionError{Col: tok.Col, Token: tok.Text, Cause: "separator outside of function arguments"}
	}
	return nil
}

// apply applies an operator token to the values on top of the value stack.
func (e *Engine[T]) apply(values stack[T], tok Token, ctx any) error {
	if tok.Kind != TokenOperator {
		panic("infix: apply " + tok.String())
	}
	op := tok.Operator
	if values.len() < op.Operands {
		return &ExpressionError{Col: tok.Col, Token: tok.Text, Cause: "missing operand"}
	}
	v, err := e.strategy.Operator(op, values.popn(op.Operands), ctx)
	if err != nil {
		return err
	}
	values.push(v)
	return nil
}

// literal resolves a literal token: constants first, then variables in the
// context, then the strategy's parser.
func (e *Engine[T]) literal(tok Token, ctx any) (T, error) {
	if c, ok := e.constants[tok.Text]; ok {
		v, err := e.strategy.Constant(c, ctx)
		if !errors.Is(err, ErrNoValue) {
			return v, err
		}
	}
	if vars, ok := ctx.(Variables[T]); ok {
		if v, ok := vars.Lookup(tok.Text); ok {
			return v, nil
		}
	}
	v, err := e.strategy.Literal(tok.Text, ctx)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return v, err
		}
		return v, &LiteralError{Col: tok.Col, Text: tok.Text, Err: err}
	}
	return v, nil
}

// classify converts a raw token into a Token given the token before it.
func (e *Engine[T]) classify(prev Token, text string, col int) (Token, error) {
	tok := Token{Text: text, Col: col}
	if text == e.sep {
		tok.Kind = TokenSeparator
		return tok, nil
	}
	if f, ok := e.functions[text]; ok {
		tok.Kind = TokenFunction
		tok.Function = f
		return tok, nil
	}
	if ops := e.operators[text]; len(ops) != 0 {
		tok.Kind = TokenOperator
		if len(ops) == 1 {
			tok.Operator = ops[0]
			return tok, nil
		}
		op, ok := e.homonyms.Resolve(prev, ops)
		if !ok {
			return tok, &ExpressionError{Col: col, Token: text, Cause: "no form of the operator fits here"}
		}
		tok.Operator = op
		return tok, nil
	}
	p, ok := e.exprs[text]
	if !ok {
		p, ok = e.funcs[text]
	}
	if ok {
		tok.Kind = TokenClose
		if p.Open == text {
			tok.Kind = TokenOpen
		}
		tok.Brackets = p
		return tok, nil
	}
	tok.Kind = TokenLiteral
	return tok, nil
}

// Tokens returns the classified tokens of an expression without evaluating
// it. The only errors are from homonym resolution.
func (e *Engine[T]) Tokens(expr string) ([]Token, error) {
	var r []Token
	var prev Token
	toks := e.tokenizer.Tokenize(expr)
	for {
		text, col, ok := toks.Next()
		if !ok {
			return r, nil
		}
		tok, err := e.classify(prev, text, col)
		if err != nil {
			return r, err
		}
		r = append(r, tok)
		prev = tok
	}
}

// Operators returns the operators the engine supports, ordered by symbol and
// then operand count.
func (e *Engine[T]) Operators() []Operator {
	var r []Operator
	for _, ops := range e.operators {
		r = append(r, ops...)
	}
	sortby(r, func(a, b Operator) bool {
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		return a.Operands < b.Operands
	})
	return r
}

// Functions returns the functions the engine supports, ordered by name.
func (e *Engine[T]) Functions() []Function {
	r := make([]Function, 0, len(e.functions))
	for _, f := range e.functions {
		r = append(r, f)
	}
	sortby(r, func(a, b Function) bool { return a.Name < b.Name })
	return r
}

// Constants returns the constants the engine supports, ordered by name.
func (e *Engine[T]) Constants() []Constant {
	r := make([]Constant, 0, len(e.constants))
	for _, c := range e.constants {
		r = append(r, c)
	}
	sortby(r, func(a, b Constant) bool { return a.Name < b.Name })
	return r
}

// sortby sorts a short slice without using package sort because that has
// reflection and allocation problems.
func sortby[E any](v []E, less func(a, b E) bool) {
	for i := 1; i < len(v); i++ {
		for j := i; j > 0 && less(v[j], v[j-1]); j-- {
			v[j], v[j-1] = v[j-1], v[j]
		}
	}
}
