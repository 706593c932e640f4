package double_test

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/double"
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"frac", "0.25", 0.25},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"mod", "10 % 4", 2},
		{"prec", "2+3*4", 14},
		{"pow", "2^3^2", 512},
		{"neg", "-3+4", 1},
		{"neg-neg", "4- -3", 7},
		{"neg-pow", "-2^2", -4},
		{"pow-neg", "2^-2", 0.25},
		{"neg-group", "-(2+3)", -5},
		{"group", "(2+3)*4", 20},
		{"nested", "((1))", 1},
		{"pi", "pi", math.Pi},
		{"e", "e", math.E},
		{"sin", "sin(pi/2)", 1},
		{"cos", "cos(0)", 1},
		{"tan", "tan(0)", 0},
		{"asin", "asin(1)", math.Pi / 2},
		{"acos", "acos(1)", 0},
		{"atan", "atan(1)", math.Pi / 4},
		{"sinh", "sinh(0)", 0},
		{"cosh", "cosh(0)", 1},
		{"tanh", "tanh(0)", 0},
		{"ln", "ln(e)", 1},
		{"log", "log(1000)", 3},
		{"abs", "abs(-2)", 2},
		{"ceil", "ceil(1.2)", 2},
		{"floor", "floor(-1.2)", -2},
		{"round", "round(2.5)", 3},
		{"round-neg", "round(-2.5)", -2},
		{"min", "min(3, 1, 2)", 1},
		{"max", "max(3, 1, 2)", 3},
		{"sum", "sum(1, 2, 3, 4)", 10},
		{"avg", "avg(1, 2, 3)", 2},
		{"avg-one", "avg(5)", 5},
		{"args-expr", "max(1+2, 2*2)", 4},
		{"nested-call", "sum(1, max(2, 3), abs(-4))", 8},
		{"spaces", "  1 +   2 ", 3},
	}
	ev := double.Default()
	approx := cmpopts.EquateApprox(0, 1e-12)
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ev.Evaluate(c.src)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if diff := cmp.Diff(c.r, r, approx); diff != "" {
				t.Errorf("%q gave wrong result (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestStyle(t *testing.T) {
	cases := []struct {
		name  string
		style double.Style
		src   string
		r     float64
	}{
		{"standard", double.Standard, "-2^2", -4},
		{"excel", double.Excel, "-2^2", 4},
		{"standard-mul", double.Standard, "-2*3", -6},
		{"excel-mul", double.Excel, "-2*3", -6},
		{"excel-sub", double.Excel, "1-2^2", -3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ev, err := double.New(double.DefaultGrammar(c.style))
			if err != nil {
				t.Fatal(err)
			}
			r, err := ev.Evaluate(c.src)
			if err != nil {
				t.Fatal(err)
			}
			if r != c.r {
				t.Errorf("%q: want %g, got %g", c.src, c.r, r)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	ev := double.Default()
	for i := 0; i < 100; i++ {
		r, err := ev.Evaluate("random()")
		if err != nil {
			t.Fatal(err)
		}
		if r < 0 || r >= 1 {
			t.Fatalf("random out of range: %g", r)
		}
	}
}

func TestVariables(t *testing.T) {
	ev := double.Default()
	vars := infix.VarSet[float64]{}
	for _, x := range []float64{-1, 0, 0.5, 3} {
		vars.Set("x", x)
		r, err := ev.EvaluateContext("x^2 + 2*x + 1", vars)
		if err != nil {
			t.Fatal(err)
		}
		if want := (x + 1) * (x + 1); r != want {
			t.Errorf("x=%g: want %g, got %g", x, want, r)
		}
	}
	// Constants take priority over variables.
	r, err := ev.EvaluateContext("pi", infix.VarSet[float64]{"pi": 3})
	if err != nil {
		t.Fatal(err)
	}
	if r != math.Pi {
		t.Errorf("pi was shadowed: got %g", r)
	}
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  any
		pos  int
	}{
		{"empty", "", new(*infix.ExpressionError), 1},
		{"adjacent", "3 4", new(*infix.ExpressionError), 3},
		{"no-call", "sin 0", new(*infix.ExpressionError), 5},
		{"no-args", "sum()", new(*infix.CallError), 5},
		{"too-many", "abs(1, 2)", new(*infix.CallError), 9},
		{"trailing-op", "1+", new(*infix.ExpressionError), 2},
		{"unclosed", "(1+2", new(*infix.ExpressionError), 1},
		{"unopened", "1+2)", new(*infix.ExpressionError), 4},
		{"sep-top", "1,2", new(*infix.ExpressionError), 2},
		{"sep-end", "max(1,)", new(*infix.ExpressionError), 7},
		{"sep-start", "max(,1)", new(*infix.ExpressionError), 5},
		{"literal", "1+x", new(*infix.LiteralError), 3},
	}
	ev := double.Default()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ev.Evaluate(c.src)
			if err == nil {
				t.Fatalf("%q succeeded", c.src)
			}
			if !errors.As(err, c.err) {
				t.Fatalf("%q: wrong error type %T: %v", c.src, err, err)
			}
			var ie infix.InputError
			if !errors.As(err, &ie) {
				t.Fatalf("%q: %T is not an InputError", c.src, err)
			}
			if ie.Pos() != c.pos {
				t.Errorf("%q: wrong position: want %d, got %d (%v)", c.src, c.pos, ie.Pos(), err)
			}
		})
	}
}

func TestLiteralErrorUnwraps(t *testing.T) {
	_, err := double.Default().Evaluate("1.2.3")
	var ne *strconv.NumError
	if !errors.As(err, &ne) {
		t.Fatalf("want *strconv.NumError in chain, got %v", err)
	}
}

// parseFrench parses numbers written with a decimal comma and spaces
// between groups of digits.
func parseFrench(s string) (float64, error) {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}

func TestLocalized(t *testing.T) {
	g := double.DefaultGrammar(double.Standard).
		TranslateFunction(double.Sum, "somme").
		TranslateFunction(double.Average, "moyenne").
		SetSeparator(';').
		AllowSpacesInLiterals(true)
	ev, err := double.New(g, double.WithLiteralParser(parseFrench))
	if err != nil {
		t.Fatal(err)
	}
	r, err := ev.Evaluate("3 000 +moyenne(3 ; somme(1,5 ; 7 ; -3,5))")
	if err != nil {
		t.Fatal(err)
	}
	if r != 3004 {
		t.Errorf("want 3004, got %g", r)
	}
	// The untranslated names are no longer functions.
	if _, err := ev.Evaluate("sum(1; 2)"); err == nil {
		t.Error("untranslated function was accepted")
	}
	// The grammar passed to New is still usable for other evaluators.
	g.SetSeparator(',')
	if _, err := ev.Evaluate("somme(1; 2)"); err != nil {
		t.Errorf("changing the grammar after New affected the evaluator: %v", err)
	}
}

func TestRestricted(t *testing.T) {
	g := infix.NewGrammar().
		AddOperators(double.Plus, double.Minus, double.Negate).
		AddExpressionBrackets(infix.Parentheses)
	ev, err := double.New(g)
	if err != nil {
		t.Fatal(err)
	}
	if r, err := ev.Evaluate("-(1+2)-3"); err != nil || r != -6 {
		t.Errorf("want -6, got %g, %v", r, err)
	}
	if _, err := ev.Evaluate("2*3"); err == nil {
		t.Error("restricted evaluator accepted *")
	}
}

func TestBrackets(t *testing.T) {
	g := infix.NewGrammar().
		AddOperators(double.Plus, double.Divide).
		AddFunctions(double.Sine).
		AddConstants(double.Pi).
		AddExpressionBrackets(infix.Parentheses, infix.Brackets).
		AddFunctionBrackets(infix.Angles)
	ev, err := double.New(g)
	if err != nil {
		t.Fatal(err)
	}
	ok := []struct {
		src string
		r   float64
	}{
		{"[(0.5)+(0.5)]", 1},
		{"sin<[pi/2]>", 1},
		{"sin<pi/2>+[1]", 2},
	}
	for _, c := range ok {
		r, err := ev.Evaluate(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if math.Abs(r-c.r) > 1e-12 {
			t.Errorf("%q: want %g, got %g", c.src, c.r, r)
		}
	}
	for _, src := range []string{"sin(0.5)", "sin[0.5]", "(1]", "[1)", "<1>", "[(1)"} {
		_, err := ev.Evaluate(src)
		var ierr *infix.ExpressionError
		if !errors.As(err, &ierr) {
			t.Errorf("%q: want expression error, got %v", src, err)
		}
	}
}

func BenchmarkEvaluate(b *testing.B) {
	ev := double.Default()
	srcs := []string{
		"1",
		"2+3*4",
		"sin(pi/2) + max(1, 2, 3) ^ 2",
		"-(1+2)*(3-4)/(5%6)^-0.5",
	}
	for _, src := range srcs {
		b.Run(src, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				ev.Evaluate(src)
			}
		})
	}
}
