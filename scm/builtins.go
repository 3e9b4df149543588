package scm

import "math"

// installBuiltins populates the global frame with spec.md §4.6's
// table. Mirrors the teacher's declare.go pattern of registering each
// primitive under its symbol in one place, minus the Declaration
// metadata (no `help` built-in is in scope here).
func installBuiltins(it *Interp) {
	bindBuiltinSymbol(it, "#t", it.newSymbolUnchecked("#t"))
	bindBuiltinSymbol(it, "#f", it.newSymbolUnchecked("#f"))

	bindBuiltinProc(it, "+", arithFold(it, 0, func(acc, x int64) int64 { return acc + x }))
	bindBuiltinProc(it, "-", arithFold(it, 0, func(acc, x int64) int64 { return acc - x }))
	bindBuiltinProc(it, "*", arithFold(it, 1, func(acc, x int64) int64 { return acc * x }))
	bindBuiltinProc(it, "<", compareFold(it, math.MinInt64, func(a, b int64) bool { return a < b }))
	bindBuiltinProc(it, ">", compareFold(it, math.MaxInt64, func(a, b int64) bool { return a > b }))
	bindBuiltinProc(it, "gc", func(args *Value) (*Value, error) {
		it.Collect()
		return Void, nil
	})
}

func bindBuiltinSymbol(it *Interp, name string, v *Value) {
	it.Global.pairs = append(it.Global.pairs, pair{sym: it.newSymbolUnchecked(name), val: v})
}

func bindBuiltinProc(it *Interp, name string, fn Proc) {
	bindBuiltinSymbol(it, name, it.NewProcedure(fn))
}

// arithFold implements spec.md §4.6: given a bare Integer, return it
// unchanged; given a List, fold left from neutral across every
// element (including the first — the same rule the math() helper in
// the original C source applies uniformly to + and
// *, so `-` and all others follow it too rather than special-casing
// the first argument the way many Schemes do). Overflow wraps, since
// Go's int64 arithmetic is twos-complement with no trap.
func arithFold(it *Interp, neutral int64, op func(acc, x int64) int64) Proc {
	return func(args *Value) (*Value, error) {
		if args.kind == KindInteger {
			return args, nil
		}
		if args.kind != KindList {
			return nil, newErr(ErrKindTypeError, "arithmetic argument must be integer or list")
		}
		result := neutral
		for e := args.head; e != nil; e = e.next {
			if e.kind != KindInteger {
				return nil, newErr(ErrKindTypeError, "arithmetic on non-integer")
			}
			result = op(result, e.i)
		}
		return it.NewInteger(result), nil
	}
}

// compareFold folds pairwise from neutral (spec.md §4.6: `<` uses the
// minimum representable integer, `>` the maximum, so a lone argument
// still "behaves sensibly") and returns a boolean Symbol rather than
// an Integer.
func compareFold(it *Interp, neutral int64, cmp func(a, b int64) bool) Proc {
	return func(args *Value) (*Value, error) {
		if args.kind == KindInteger {
			return it.boolSymbol(cmp(neutral, args.i)), nil
		}
		if args.kind != KindList {
			return nil, newErr(ErrKindTypeError, "comparison argument must be integer or list")
		}
		result := neutral
		ok := true
		for e := args.head; e != nil; e = e.next {
			if e.kind != KindInteger {
				return nil, newErr(ErrKindTypeError, "comparison on non-integer")
			}
			if !cmp(result, e.i) {
				ok = false
			}
			result = e.i
		}
		return it.boolSymbol(ok), nil
	}
}

func (it *Interp) boolSymbol(b bool) *Value {
	if b {
		return it.newSymbolUnchecked("#t")
	}
	return it.newSymbolUnchecked("#f")
}
