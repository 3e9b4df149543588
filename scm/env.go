package scm

// Frame is one level of the lexical environment (spec.md §3.2): an
// ORDERED association list of (Symbol, Value) pairs plus an optional
// outer-frame link. Order must survive for iteration, and lookup
// returns the first match, so pairs is a slice (append-ordered)
// rather than the map the teacher's Env.Vars uses — the teacher's
// Lookup/Bind are unordered by design, spec.md's are not.
type Frame struct {
	pairs []pair
	outer *Frame
	id    uint64
}

type pair struct {
	sym *Value
	val *Value
}

// lookup implements spec.md §4.3 Lookup: first matching pair in this
// frame, else recurse outward; Unbound if the chain is exhausted.
func lookup(sym string, f *Frame) (*Value, error) {
	for cur := f; cur != nil; cur = cur.outer {
		for _, p := range cur.pairs {
			if p.sym.sym == sym {
				return p.val, nil
			}
		}
	}
	return nil, newErr(ErrKindUnbound, sym)
}

// bind implements spec.md §4.3 Bind (define semantics, set_flag=false):
// update in place if sym already exists in THIS frame, else append.
func bind(it *Interp, sym string, val *Value, f *Frame) {
	for i := range f.pairs {
		if f.pairs[i].sym.sym == sym {
			f.pairs[i].val = val
			return
		}
	}
	f.pairs = append(f.pairs, pair{sym: it.newSymbolUnchecked(sym), val: val})
}

// assign implements spec.md §4.3 Assign (set! semantics, set_flag=true):
// walk the chain outward for an existing binding and update it in
// place; Unbound if no frame in the chain has it.
func assign(sym string, val *Value, f *Frame) error {
	for cur := f; cur != nil; cur = cur.outer {
		for i := range cur.pairs {
			if cur.pairs[i].sym.sym == sym {
				cur.pairs[i].val = val
				return nil
			}
		}
	}
	return newErr(ErrKindUnbound, sym)
}
