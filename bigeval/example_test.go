package bigeval_test

import (
	"fmt"
	"math/big"

	"github.com/zephyrtronium/infix"
	"github.com/zephyrtronium/infix/bigeval"
)

type nargin struct{}

func (nargin) Call(ctx *bigeval.Context, args []*big.Float, r *big.Float) error {
	r.SetInt64(int64(len(args)))
	return nil
}

func ExampleWithFunc() {
	f := infix.NewFunction("nargin", 0, 10)
	ev, err := bigeval.New(bigeval.DefaultGrammar().AddFunctions(f), bigeval.WithFunc(f, nargin{}))
	if err != nil {
		panic(err)
	}
	for _, src := range []string{"nargin()", "nargin(100)", "nargin[3, 2, 1]"} {
		r, err := ev.Eval(src, nil)
		fmt.Println(r, err)
	}

	// Output:
	// 0 <nil>
	// 1 <nil>
	// 3 <nil>
}

func ExampleEvalString() {
	r, err := bigeval.EvalString("sqrt(2)", bigeval.Prec(200))
	if err != nil {
		panic(err)
	}
	fmt.Println(r.Text('g', 50))

	// Output:
	// 1.4142135623730950488016887242096980785696718753769
}
