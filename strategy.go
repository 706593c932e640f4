package infix

// Strategy gives meaning to the vocabulary of a grammar for values of type T.
// Each hook receives the evaluation context passed to EvaluateContext.
type Strategy[T any] interface {
	// Constant returns the value of a constant. An error wrapping ErrNoValue
	// lets the engine look the name up as a variable or literal instead.
	Constant(c Constant, ctx any) (T, error)
	// Function applies a function to its arguments, in the order they appear
	// in the expression.
	Function(f Function, args []T, ctx any) (T, error)
	// Operator applies an operator to its operands, left to right.
	Operator(op Operator, operands []T, ctx any) (T, error)
	// Literal parses a literal which is neither a constant nor a variable.
	Literal(text string, ctx any) (T, error)
}

// Unsupported implements every Strategy hook by returning an
// *UnsupportedError. Embed it in a strategy and override the hooks the
// evaluator supports.
type Unsupported[T any] struct{}

func (Unsupported[T]) Constant(c Constant, ctx any) (T, error) {
	var zero T
	return zero, &UnsupportedError{Kind: "constant", Name: c.Name}
}

func (Unsupported[T]) Function(f Function, args []T, ctx any) (T, error) {
	var zero T
	return zero, &UnsupportedError{Kind: "function", Name: f.Name}
}

func (Unsupported[T]) Operator(op Operator, operands []T, ctx any) (T, error) {
	var zero T
	return zero, &UnsupportedError{Kind: "operator", Name: op.Symbol}
}

func (Unsupported[T]) Literal(text string, ctx any) (T, error) {
	var zero T
	return zero, &UnsupportedError{Kind: "literal", Name: text}
}

// Variables is implemented by evaluation contexts that bind names to values.
// When a literal is not a constant, the engine looks it up with Lookup before
// asking the strategy to parse it.
type Variables[T any] interface {
	Lookup(name string) (T, bool)
}

// VarSet is a simple set of variables.
type VarSet[T any] map[string]T

// Lookup returns the value of a variable.
func (v VarSet[T]) Lookup(name string) (T, bool) {
	x, ok := v[name]
	return x, ok
}

// Set sets the value of a variable. Returns v for chaining.
func (v VarSet[T]) Set(name string, value T) VarSet[T] {
	v[name] = value
	return v
}
