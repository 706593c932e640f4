package infix

import "strconv"

// Option is an option for creating an engine.
type Option interface {
	engineOption(*engineopts)
}

type engineopts struct {
	tokenizer Tokenizer
	homonyms  HomonymPolicy
}

type (
	tokenizeropt struct{ t Tokenizer }
	homonymopt   struct{ p HomonymPolicy }
)

// WithTokenizer replaces the default delimiter tokenizer, e.g. with
// FieldsTokenizer for grammars whose operators are words.
func WithTokenizer(t Tokenizer) Option {
	return tokenizeropt{t}
}

func (o tokenizeropt) engineOption(e *engineopts) {
	e.tokenizer = o.t
}

// WithHomonymPolicy replaces the policy used to validate and resolve
// operators sharing a symbol.
func WithHomonymPolicy(p HomonymPolicy) Option {
	return homonymopt{p}
}

func (o homonymopt) engineOption(e *engineopts) {
	e.homonyms = o.p
}

// HomonymPolicy decides between operators that share a symbol.
type HomonymPolicy interface {
	// Validate checks a group of two or more operators registered under the
	// same symbol when the engine is created.
	Validate(ops []Operator) error
	// Resolve chooses among candidates given the previous token, which has
	// kind TokenNone at the start of an expression. ok is false if none of
	// the candidates fits.
	Resolve(prev Token, candidates []Operator) (op Operator, ok bool)
}

// ArityPolicy is the default HomonymPolicy. It allows at most two operators
// per symbol, one unary and one binary, like unary and binary minus. An
// operator following an operand (a literal or close bracket) is binary;
// anything else is unary.
//
// Deciding between more than two operators, e.g. prefix, infix, and postfix
// forms of one symbol, needs more context than the previous token and is
// left to custom policies.
type ArityPolicy struct{}

func (ArityPolicy) Validate(ops []Operator) error {
	if len(ops) > 2 {
		return &ConfigError{Cause: strconv.Itoa(len(ops)) + " operators share the symbol " + strconv.Quote(ops[0].Symbol)}
	}
	if len(ops) == 2 && ops[0].Operands == ops[1].Operands {
		return &ConfigError{Cause: "operators sharing the symbol " + strconv.Quote(ops[0].Symbol) + " must differ in operand count"}
	}
	return nil
}

func (ArityPolicy) Resolve(prev Token, candidates []Operator) (Operator, bool) {
	n := 1
	if prev.IsOperand() {
		n = 2
	}
	for _, op := range candidates {
		if op.Operands == n {
			return op, true
		}
	}
	// After an operand with no binary form registered, fall back to unary.
	if n == 2 {
		for _, op := range candidates {
			if op.Operands == 1 {
				return op, true
			}
		}
	}
	return Operator{}, false
}
