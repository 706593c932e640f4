package bigeval

import (
	"maps"
	"math/big"
	"strings"
)

// Context is a context for evaluating expressions: the precision of results
// and the values of variables. It is not safe to use a Context concurrently.
type Context struct {
	nums  map[string]*big.Float
	names map[string]*big.Float
	prec  uint
}

// ContextOption is an option used when creating a context. Options apply in
// order, so Prec should come before variables that need its precision.
type ContextOption func(*Context)

// SetVar sets the value of a variable in the context.
func SetVar(name string, val *big.Float) ContextOption {
	return func(ctx *Context) { ctx.Set(name, val) }
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]*big.Float) ContextOption {
	return func(ctx *Context) {
		for name, val := range vars {
			ctx.Set(name, val)
		}
	}
}

// Prec sets the precision of calculations. Variables already in the context
// are rounded to it.
func Prec(prec uint) ContextOption {
	return func(ctx *Context) {
		if prec == ctx.prec {
			return
		}
		ctx.prec = prec
		// Cached literals are only reusable at the same precision.
		ctx.nums = nil
		names := make(map[string]*big.Float, len(ctx.names))
		for name, val := range ctx.names {
			names[name] = new(big.Float).SetPrec(prec).Set(val)
		}
		ctx.names = names
	}
}

// NewContext creates a new evaluation context. If no precision is given, the
// default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: 64}
	return ctx.Clone(opts...)
}

// Set sets the value of a variable. Returns ctx for chaining.
func (ctx *Context) Set(name string, value *big.Float) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]*big.Float)
	}
	ctx.names[name] = new(big.Float).SetPrec(ctx.prec).Set(value)
	return ctx
}

// Lookup returns a copy of the value of a variable. ok is false if there is no
// such variable in the context.
func (ctx *Context) Lookup(name string) (v *big.Float, ok bool) {
	v = ctx.names[name]
	if v == nil {
		return nil, false
	}
	return new(big.Float).Copy(v), true
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Clone creates a copy of a context and applies options to it. Stored values
// are never modified in place, so the copy shares them with ctx.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		nums:  maps.Clone(ctx.nums),
		names: maps.Clone(ctx.names),
		prec:  ctx.prec,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&n)
		}
	}
	return &n
}

// num parses a possibly cached number from its text. The result is a new
// value the caller may modify.
func (ctx *Context) num(s string) (*big.Float, error) {
	if r := ctx.nums[s]; r != nil {
		return new(big.Float).Copy(r), nil
	}
	t := s
	if t == "∞" {
		t = "inf"
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(t, 0)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// N.B. t is non-empty, otherwise we couldn't overflow.
		r = new(big.Float).SetPrec(ctx.prec).SetInf(t[0] == '-')
	default:
		return nil, err
	}
	if ctx.nums == nil {
		ctx.nums = make(map[string]*big.Float)
	}
	ctx.nums[s] = r
	return new(big.Float).Copy(r), nil
}
