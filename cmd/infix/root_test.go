package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errs bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errs)
	err = cmd.Execute()
	return out.String(), errs.String(), err
}

func TestRun(t *testing.T) {
	cases := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"args", "", []string{"1+2", "2^3^2"}, "3\n512\n"},
		{"stdin", "2*\n3", nil, "6\n"},
		{"lines", "1+1\n\n2+2\n", []string{"-n"}, "2\n4\n"},
		{"given", "", []string{"--given", "x=2+1", "--given", "y = x*2", "x*y"}, "18\n"},
		{"fmt", "", []string{"--fmt", "%.3f", "pi"}, "3.142\n"},
		{"excel", "", []string{"--excel", "--", "-2^2"}, "4\n"},
		{"translate", "", []string{"--translate", "sum=somme", "--separator", ";", "somme(1;2)"}, "3\n"},
		{"big", "", []string{"--evaluator", "big", "--prec", "100", "--fmt", "%.25f", "1/3"}, "0.3333333333333333333333333\n"},
		{"bool", "", []string{"--evaluator", "bool", "--width", "4", "0011 * 1010"}, "0010\n"},
		{"logic", "", []string{"--evaluator", "logic", "--given", "a=true", "a && !false"}, "true\n"},
		{"words", "", []string{"--evaluator", "words", "--given", "type=PORT", "type=PORT AND NOT type=SHIP"}, "true\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, errs, err := execute(t, c.stdin, c.args...)
			if err != nil {
				t.Fatalf("failed: %v\n%s", err, errs)
			}
			if diff := cmp.Diff(c.want, out); diff != "" {
				t.Errorf("wrong output (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunFailures(t *testing.T) {
	out, _, err := execute(t, "", "1+", "2")
	if err == nil {
		t.Fatal("failed expression gave no error")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "missing operand") || lines[1] != "2" {
		t.Errorf("wrong output %q", out)
	}
	if _, _, err := execute(t, "", "--evaluator", "nope", "1"); err == nil {
		t.Error("unknown evaluator accepted")
	}
	if _, _, err := execute(t, "", "--given", "x", "1"); err == nil {
		t.Error("bad variable definition accepted")
	}
	if _, _, err := execute(t, "", "--separator", ";;", "1"); err == nil {
		t.Error("long separator accepted")
	}
}

func TestEcho(t *testing.T) {
	out, _, err := execute(t, "", "--echo", "--", "-1")
	if err != nil {
		t.Fatal(err)
	}
	if want := "Operator:-@1 Literal:1@2\n-1\n"; out != want {
		t.Errorf("want %q, got %q", want, out)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "infix.yaml")
	conf := `evaluator: double
separator: ";"
translations:
  avg: moyenne
given:
  - x=4
`
	if err := os.WriteFile(file, []byte(conf), 0o600); err != nil {
		t.Fatal(err)
	}
	out, errs, err := execute(t, "", "--config", file, "moyenne(x; 2)")
	if err != nil {
		t.Fatalf("failed: %v\n%s", err, errs)
	}
	if out != "3\n" {
		t.Errorf("want 3, got %q", out)
	}
	// Flags override the file.
	out, errs, err = execute(t, "", "--config", file, "--evaluator", "big", "x*2")
	if err != nil {
		t.Fatalf("failed: %v\n%s", err, errs)
	}
	if out != "8\n" {
		t.Errorf("want 8, got %q", out)
	}
	if _, _, err := execute(t, "", "--config", filepath.Join(dir, "missing.yaml"), "1"); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestInputFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "exprs.txt")
	if err := os.WriteFile(file, []byte("1+1\n3*3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, errs, err := execute(t, "", "--in", file, "-n", "5")
	if err != nil {
		t.Fatalf("failed: %v\n%s", err, errs)
	}
	if want := "5\n2\n9\n"; out != want {
		t.Errorf("want %q, got %q", want, out)
	}
}

func TestVerbose(t *testing.T) {
	out, errs, err := execute(t, "", "-v", "1+2")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n" {
		t.Errorf("want 3, got %q", out)
	}
	for _, want := range []string{"msg=settings", "msg=evaluating", "msg=token", "kind=Operator", "text=+"} {
		if !strings.Contains(errs, want) {
			t.Errorf("log is missing %q:\n%s", want, errs)
		}
	}
}
