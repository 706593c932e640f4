package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	errColor  = color.New(color.FgRed)
	echoColor = color.New(color.FgCyan)
)

// newRootCmd creates the infix command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infix [flags] [expression...]",
		Short: "Evaluate infix expressions",
		Long: `Evaluate infix expressions given as arguments, or read from a file or stdin
if no arguments are given. Flags may also be set in a config file or through
INFIX_-prefixed environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	fs := cmd.Flags()
	fs.String("evaluator", "double", "evaluator to use: "+strings.Join(evaluators, ", "))
	fs.Uint("prec", 64, "precision of calculations in bits for the big evaluator")
	fs.Int("width", 8, "vector length for the bool evaluator")
	fs.String("separator", ",", "function argument separator")
	fs.Bool("spaces", false, "allow spaces inside literals, e.g. 3 000")
	fs.Bool("excel", false, "give unary minus higher precedence than ^ in the double evaluator")
	fs.StringToString("translate", nil, "name=translated localization of a function, constant, or operator")
	fs.StringArray("given", nil, "name=value variable definition (any number of times)")
	fs.String("fmt", "", "result formatting string (default %g for numbers, %v otherwise)")
	fs.String("in", "", "input file (default stdin if no args given)")
	fs.BoolP("n", "n", false, "evaluate separate input lines as separate expressions")
	fs.Bool("echo", false, "print the classified tokens of each expression")
	fs.StringP("config", "c", "", "config file path")
	fs.BoolP("verbose", "v", false, "log debugging information")
	return cmd
}

func newLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	return log
}

func run(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr())
	s, err := loadSettings(cmd, log)
	if err != nil {
		errColor.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}
	if s.Verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{
		"evaluator": s.Evaluator,
		"precision": s.Precision,
		"separator": s.Separator,
	}).Debug("settings")

	calc, err := newCalculator(s, log)
	if err != nil {
		errColor.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	exprs, err := inputs(s, args, cmd.InOrStdin())
	if err != nil {
		errColor.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, expr := range exprs {
		log.WithField("expr", expr).Debug("evaluating")
		if log.IsLevelEnabled(logrus.DebugLevel) {
			trace(log, calc, expr)
		}
		if s.Echo {
			echo(out, calc, expr)
		}
		r, err := calc.eval(expr, s.Format)
		if err != nil {
			failed++
			errColor.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, r)
	}
	if failed != 0 {
		err := fmt.Errorf("%d of %d expressions failed", failed, len(exprs))
		log.Error(err)
		return err
	}
	return nil
}

func echo(w io.Writer, calc calculator, expr string) {
	toks, err := calc.tokens(expr)
	var b strings.Builder
	for i, t := range toks {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	if err != nil {
		b.WriteString(" ! ")
		b.WriteString(err.Error())
	}
	echoColor.Fprintln(w, b.String())
}

func trace(log *logrus.Logger, calc calculator, expr string) {
	toks, err := calc.tokens(expr)
	for _, t := range toks {
		log.WithFields(logrus.Fields{
			"kind": t.Kind,
			"text": t.Text,
			"col":  t.Col,
		}).Debug("token")
	}
	if err != nil {
		log.WithError(err).Debug("classification stopped")
	}
}

// inputs collects the expressions to evaluate: the arguments, then the input
// file or stdin. Stdin is only read if there are no arguments and no file.
func inputs(s *settings, args []string, stdin io.Reader) ([]string, error) {
	exprs := append([]string(nil), args...)
	var in io.Reader
	switch {
	case s.In != "" && s.In != "-":
		f, err := os.Open(s.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	case s.In == "-", len(args) == 0:
		in = stdin
	}
	if in == nil {
		return exprs, nil
	}
	if !s.Lines {
		b, err := io.ReadAll(in)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(string(b)) != "" {
			exprs = append(exprs, string(b))
		}
		return exprs, nil
	}
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if line := sc.Text(); strings.TrimSpace(line) != "" {
			exprs = append(exprs, line)
		}
	}
	return exprs, sc.Err()
}
