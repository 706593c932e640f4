// Package infix implements a configurable infix expression evaluator over
// values of any type.
//
// A Grammar lists the operators, functions, constants, and brackets an
// evaluator understands, and a Strategy says what they mean for the result
// type. New combines the two into an Engine, which tokenizes each expression
// on the grammar's symbols and evaluates it with two stacks, one of pending
// operators and brackets and one of computed values:
//
//	g := infix.NewGrammar().
//		AddOperators(plus, times).
//		AddExpressionBrackets(infix.Parentheses)
//	e, err := infix.New[float64](g, arith{})
//	v, err := e.Evaluate("2 + 3 * 4") // 14
//
// Operators may share a symbol when they differ in operand count, like unary
// and binary minus; the engine picks one from the token before it. Function
// and constant names can be translated, so "somme(1; 2)" can mean
// "sum(1, 2)". Packages double, bigeval, boolset, and logic hold ready-made
// evaluators.
package infix
