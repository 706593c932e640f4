package logic_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/logic"
)

func TestSymbolic(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    bool
	}{
		{"true", "true", true},
		{"false", "false", false},
		{"parse", "T", true},
		{"not", "!true", false},
		{"not-not", "!!true", true},
		{"and", "true && false", false},
		{"or", "true || false", true},
		{"prec", "true || false && false", true},
		{"group", "(true || false) && false", false},
		{"not-prec", "!false && false", false},
		{"var", "a && !b", true},
		{"var-or", "b || a && b", false},
	}
	ev := logic.NewSymbolic()
	vars := infix.VarSet[bool]{"a": true, "b": false}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ev.EvaluateContext(c.src, vars)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("%q: want %t, got %t", c.src, c.r, r)
			}
		})
	}
}

func TestTextual(t *testing.T) {
	props := logic.Properties{"type": "PORT", "state": "open"}
	cases := []struct {
		name string
		src  string
		r    bool
	}{
		{"match", "type=PORT", true},
		{"mismatch", "type=SHIP", false},
		{"missing", "owner=me", false},
		{"and", "type=PORT AND state=open", true},
		{"not", "type=PORT AND NOT state=closed", true},
		{"or", "type=SHIP OR state=open", true},
		{"prec", "type=SHIP AND state=open OR type=PORT", true},
		{"word", "ANDROID=1", false},
		{"bool", "true AND NOT false", true},
	}
	ev := logic.NewTextual()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := ev.EvaluateContext(c.src, props)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if r != c.r {
				t.Errorf("%q: want %t, got %t", c.src, c.r, r)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	sym := logic.NewSymbolic()
	if _, err := sym.Evaluate("maybe"); !errors.As(err, new(*infix.LiteralError)) {
		t.Errorf("bad literal gave %T: %v", err, err)
	}
	if _, err := sym.Evaluate("true &&"); !errors.As(err, new(*infix.ExpressionError)) {
		t.Errorf("missing operand gave %T: %v", err, err)
	}
	txt := logic.NewTextual()
	if _, err := txt.Evaluate("type=PORT"); !errors.Is(err, logic.ErrNoProperties) {
		t.Errorf("missing properties gave %v", err)
	}
	if _, err := txt.EvaluateContext("type=PORT state=open", map[string]string{}); !errors.As(err, new(*infix.ExpressionError)) {
		t.Errorf("adjacent literals gave %T: %v", err, err)
	}
}

func ExampleNewTextual() {
	ev := logic.NewTextual()
	props := map[string]string{"type": "PORT", "state": "open"}
	for _, src := range []string{"type=PORT AND state=open", "NOT type=PORT OR state=closed"} {
		r, err := ev.EvaluateContext(src, props)
		fmt.Println(src, "→", r, err)
	}

	// Output:
	// type=PORT AND state=open → true <nil>
	// NOT type=PORT OR state=closed → false <nil>
}
