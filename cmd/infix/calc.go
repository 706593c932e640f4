package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/bigeval"
	"github.com/zephyrtronium/infix/boolset"
	"github.com/zephyrtronium/infix/double"
	"github.com/zephyrtronium/infix/logic"
)

// calculator is an evaluator bound to its evaluation context.
type calculator interface {
	// eval evaluates an expression and formats the result with verb.
	eval(expr, verb string) (string, error)
	// tokens classifies an expression's tokens.
	tokens(expr string) ([]infix.Token, error)
}

// evaluators lists the names accepted by --evaluator.
var evaluators = []string{"double", "big", "bool", "logic", "words"}

func newCalculator(s *settings, log *logrus.Logger) (calculator, error) {
	given, err := s.givens()
	if err != nil {
		return nil, err
	}
	switch s.Evaluator {
	case "double", "":
		return newDoubleCalc(s, given)
	case "big":
		return newBigCalc(s, given)
	case "bool":
		if len(given) != 0 {
			log.Warn("boolean vector expressions have no variables; ignoring --given")
		}
		return &boolCalc{ev: boolset.New(), ctx: boolset.Context{Length: s.Width}}, nil
	case "logic":
		return newLogicCalc(given)
	case "words":
		p := make(logic.Properties, len(given))
		for _, d := range given {
			p[d[0]] = d[1]
		}
		return &logicCalc{ev: logic.NewTextual(), ctx: p}, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q (want one of %v)", s.Evaluator, evaluators)
	}
}

// localize applies the configured translations and separator to g.
func localize(g *infix.Grammar, s *settings) *infix.Grammar {
	for name, translated := range s.Translations {
		g.Translate(name, translated)
	}
	if r := s.separator(); r != 0 {
		g.SetSeparator(r)
	}
	return g.AllowSpacesInLiterals(s.Spaces)
}

type doubleCalc struct {
	ev   *double.Evaluator
	vars infix.VarSet[float64]
}

func newDoubleCalc(s *settings, given [][2]string) (*doubleCalc, error) {
	style := double.Standard
	if s.Excel {
		style = double.Excel
	}
	ev, err := double.New(localize(double.DefaultGrammar(style), s))
	if err != nil {
		return nil, err
	}
	c := doubleCalc{ev: ev, vars: infix.VarSet[float64]{}}
	for _, d := range given {
		r, err := ev.EvaluateContext(d[1], c.vars)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", d[0], err)
		}
		c.vars.Set(d[0], r)
	}
	return &c, nil
}

func (c *doubleCalc) eval(expr, verb string) (string, error) {
	r, err := c.ev.EvaluateContext(expr, c.vars)
	if err != nil {
		return "", err
	}
	if verb == "" {
		verb = "%g"
	}
	return fmt.Sprintf(verb, r), nil
}

func (c *doubleCalc) tokens(expr string) ([]infix.Token, error) {
	return c.ev.Tokens(expr)
}

type bigCalc struct {
	ev  *bigeval.Evaluator
	ctx *bigeval.Context
}

func newBigCalc(s *settings, given [][2]string) (*bigCalc, error) {
	ev, err := bigeval.New(localize(bigeval.DefaultGrammar(), s))
	if err != nil {
		return nil, err
	}
	c := bigCalc{ev: ev, ctx: bigeval.NewContext(bigeval.Prec(s.Precision))}
	for _, d := range given {
		r, err := ev.Eval(d[1], c.ctx)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", d[0], err)
		}
		c.ctx.Set(d[0], r)
	}
	return &c, nil
}

func (c *bigCalc) eval(expr, verb string) (string, error) {
	r, err := c.ev.Eval(expr, c.ctx)
	if err != nil {
		return "", err
	}
	if verb == "" {
		verb = "%g"
	}
	return fmt.Sprintf(verb, r), nil
}

func (c *bigCalc) tokens(expr string) ([]infix.Token, error) {
	return c.ev.Tokens(expr)
}

type boolCalc struct {
	ev  *boolset.Evaluator
	ctx boolset.Context
}

func (c *boolCalc) eval(expr, verb string) (string, error) {
	r, err := c.ev.EvaluateContext(expr, c.ctx)
	if err != nil {
		return "", err
	}
	if verb == "" {
		verb = "%v"
	}
	return fmt.Sprintf(verb, r), nil
}

func (c *boolCalc) tokens(expr string) ([]infix.Token, error) {
	return c.ev.Tokens(expr)
}

type logicCalc struct {
	ev  *logic.Evaluator
	ctx any
}

func newLogicCalc(given [][2]string) (*logicCalc, error) {
	ev := logic.NewSymbolic()
	vars := infix.VarSet[bool]{}
	for _, d := range given {
		r, err := ev.EvaluateContext(d[1], vars)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", d[0], err)
		}
		vars.Set(d[0], r)
	}
	return &logicCalc{ev: ev, ctx: vars}, nil
}

func (c *logicCalc) eval(expr, verb string) (string, error) {
	r, err := c.ev.EvaluateContext(expr, c.ctx)
	if err != nil {
		return "", err
	}
	if verb == "" {
		verb = "%v"
	}
	return fmt.Sprintf(verb, r), nil
}

func (c *logicCalc) tokens(expr string) ([]infix.Token, error) {
	return c.ev.Tokens(expr)
}
