package infix

import "strconv"

// TokenKind is the classification of a token.
type TokenKind int8

const (
	// TokenNone is the kind of the zero Token. It stands for "no previous
	// token" at the start of an expression.
	TokenNone TokenKind = iota
	// TokenOpen is an open bracket.
	TokenOpen
	// TokenClose is a close bracket.
	TokenClose
	// TokenSeparator is a function argument separator.
	TokenSeparator
	// TokenFunction is a function name.
	TokenFunction
	// TokenOperator is an operator symbol.
	TokenOperator
	// TokenLiteral is anything else: a number, a constant or variable name,
	// or whatever the strategy can parse.
	TokenLiteral
)

var tokenKindNames = [...]string{"None", "Open", "Close", "Separator", "Function", "Operator", "Literal"}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenKindNames[k]
}

// Token is a classified token. Only the field corresponding to Kind is set
// among Operator, Function, and Brackets.
type Token struct {
	Kind TokenKind
	// Text is the raw token text.
	Text string
	// Col is the 1-based rune column of the token.
	Col int

	Operator Operator
	Function Function
	Brackets BracketPair
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Col)
}

// IsOperand returns whether the token ends an operand, i.e. whatever follows
// it has something on its left.
func (t Token) IsOperand() bool {
	return t.Kind == TokenLiteral || t.Kind == TokenClose
}
