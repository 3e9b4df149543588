package scm

// deepCopy implements spec.md §4.5: a structurally identical value
// tree disjoint from the source. Symbols and Integers copy as
// scalars; Lists recurse element-wise preserving order; Procedures and
// Lambdas copy shallowly (their Go closures / captured bodies are
// shared) because the only caller that needs a deep copy — lambda
// application protecting its stored body template, see eval.go — only
// ever relinks the List nodes of the copy (at any depth), never reaches
// back into a nested Procedure/Lambda's own internals.
func (it *Interp) deepCopy(v *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindInteger:
		return it.NewInteger(v.i)
	case KindSymbol:
		return it.newSymbolUnchecked(v.sym)
	case KindEmpty:
		return it.NewEmpty()
	case KindList:
		elems := make([]*Value, 0, v.Len())
		for e := v.head; e != nil; e = e.next {
			elems = append(elems, it.deepCopy(e))
		}
		return it.NewList(elems)
	case KindProcedure:
		return it.registerValue(&Value{kind: KindProcedure, proc: v.proc})
	case KindLambda:
		return it.registerValue(&Value{kind: KindLambda, params: v.params, body: v.body})
	default:
		panic("deepCopy: unknown kind")
	}
}
