package boot

import (
	"github.com/rhencke/rebol-sub017/rebol/context"
	"github.com/rhencke/rebol-sub017/rebol/value"
)

// registerMath installs the arithmetic and comparison operators. All of
// them are enfixed normal-arity actions: there is no precedence table,
// so `1 + 2 * 3` is 9 (§4.3, §8 scenario 1).
func (rt *Runtime) registerMath() {
	binary := func(name string, fn func(a, b value.Cell) (value.Cell, error)) {
		rt.register(name, value.FlagEnfixed,
			[]context.Key{rt.arg("left"), rt.arg("right")},
			func(f *context.Frame) (context.Signal, error) {
				out, err := fn(f.Values[0], f.Values[1])
				if err != nil {
					return context.SignalNormal, err
				}
				f.Out = out
				return context.SignalNormal, nil
			})
	}

	binary("+", func(a, b value.Cell) (value.Cell, error) { return arith(a, b, '+') })
	binary("-", func(a, b value.Cell) (value.Cell, error) { return arith(a, b, '-') })
	binary("*", func(a, b value.Cell) (value.Cell, error) { return arith(a, b, '*') })
	binary("/", func(a, b value.Cell) (value.Cell, error) { return arith(a, b, '/') })

	binary("=", func(a, b value.Cell) (value.Cell, error) {
		return value.Logic(value.Equal(a, b)), nil
	})
	binary("!=", func(a, b value.Cell) (value.Cell, error) {
		return value.Logic(!value.Equal(a, b)), nil
	})
	binary("==", func(a, b value.Cell) (value.Cell, error) {
		return value.Logic(value.StrictEqual(a, b)), nil
	})
	binary("!==", func(a, b value.Cell) (value.Cell, error) {
		return value.Logic(!value.StrictEqual(a, b)), nil
	})

	order := func(name string, accept func(int) bool) {
		binary(name, func(a, b value.Cell) (value.Cell, error) {
			cmp, ok := value.Order(a, b)
			if !ok {
				return value.Null(), value.NewError("script", "invalid-compare",
					"cannot compare "+a.BaseKind().String()+" with "+b.BaseKind().String()).AsError()
			}
			return value.Logic(accept(cmp)), nil
		})
	}
	order("<", func(c int) bool { return c < 0 })
	order(">", func(c int) bool { return c > 0 })
	order("<=", func(c int) bool { return c <= 0 })
	order(">=", func(c int) bool { return c >= 0 })

	binary("and", func(a, b value.Cell) (value.Cell, error) {
		return value.Logic(a.Truthy() && b.Truthy()), nil
	})
	binary("or", func(a, b value.Cell) (value.Cell, error) {
		return value.Logic(a.Truthy() || b.Truthy()), nil
	})

	rt.register("not", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			f.Out = value.Logic(!f.Values[0].Truthy())
			return context.SignalNormal, nil
		})

	rt.register("negate", 0, []context.Key{rt.arg("value")},
		func(f *context.Frame) (context.Signal, error) {
			v := f.Values[0]
			switch v.BaseKind() {
			case value.KindInteger:
				f.Out = value.Integer(-v.AsInteger())
			case value.KindDecimal:
				f.Out = value.Decimal(-v.AsDecimal())
			default:
				return context.SignalNormal, errMathType(v)
			}
			return context.SignalNormal, nil
		})

	rt.register("add", 0, []context.Key{rt.arg("a"), rt.arg("b")},
		func(f *context.Frame) (context.Signal, error) {
			out, err := arith(f.Values[0], f.Values[1], '+')
			if err != nil {
				return context.SignalNormal, err
			}
			f.Out = out
			return context.SignalNormal, nil
		})

	// Logic literals: words bound to LOGIC! values in lib.
	mustAppend := func(name string, v value.Cell) {
		if err := rt.Lib.Append(rt.Syms.Intern(name), v); err != nil {
			panic("boot: duplicate literal " + name)
		}
	}
	mustAppend("true", value.Logic(true))
	mustAppend("false", value.Logic(false))
	mustAppend("on", value.Logic(true))
	mustAppend("off", value.Logic(false))
	mustAppend("yes", value.Logic(true))
	mustAppend("no", value.Logic(false))
}

// arith implements + - * / with INTEGER!/DECIMAL! promotion. Quoting is
// seen through and preserved on output (§3.3 "Generic actions see
// through quoting ... preserving escape depth on output").
func arith(a, b value.Cell, op byte) (value.Cell, error) {
	ai, depth := a.Unwrap()
	bi, _ := b.Unwrap()

	ak, bk := ai.BaseKind(), bi.BaseKind()
	if ak == value.KindInteger && bk == value.KindInteger {
		x, y := ai.AsInteger(), bi.AsInteger()
		var r int64
		switch op {
		case '+':
			r = x + y
		case '-':
			r = x - y
		case '*':
			r = x * y
		case '/':
			if y == 0 {
				return value.Null(), value.NewError("math", "zero-divide", "attempt to divide by zero").AsError()
			}
			if x%y == 0 {
				r = x / y
			} else {
				return value.Requote(value.Decimal(float64(x)/float64(y)), depth), nil
			}
		}
		return value.Requote(value.Integer(r), depth), nil
	}

	x, xok := numOf(ai)
	y, yok := numOf(bi)
	if !xok || !yok {
		if !xok {
			return value.Null(), errMathType(ai)
		}
		return value.Null(), errMathType(bi)
	}
	var r float64
	switch op {
	case '+':
		r = x + y
	case '-':
		r = x - y
	case '*':
		r = x * y
	case '/':
		if y == 0 {
			return value.Null(), value.NewError("math", "zero-divide", "attempt to divide by zero").AsError()
		}
		r = x / y
	}
	return value.Requote(value.Decimal(r), depth), nil
}

func numOf(c value.Cell) (float64, bool) {
	switch c.BaseKind() {
	case value.KindInteger:
		return float64(c.AsInteger()), true
	case value.KindDecimal, value.KindMoney:
		return c.AsDecimal(), true
	case value.KindPercent:
		return c.AsDecimal() / 100, true
	default:
		return 0, false
	}
}

func errMathType(c value.Cell) error {
	return value.NewError("script", "expect-arg",
		"math operation needs a number, got "+c.BaseKind().String()).AsError()
}
