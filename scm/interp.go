package scm

import (
	"encoding/binary"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Interp is the explicit interpreter handle spec.md's Design Notes ask
// for in place of hidden package-level globals: the global environment
// and both allocation registries live here, so multiple independent
// interpreters can coexist in one process (even though this module
// only ever runs one at a time, per §5's single-threaded contract).
type Interp struct {
	Global *Frame

	mgr *manager

	// current is the frame the evaluator is working against; updated
	// on every Eval entry (spec.md §4.7) so a `(gc)` call always marks
	// from the right root.
	current *Frame

	// EvalCount is incremented once per top-level expression the host
	// hands to Eval; it is ambient REPL bookkeeping, not part of the
	// language, but it gives cmd/miniclisp something to report via its
	// onexit hook.
	EvalCount uint64

	uuidCounter uint64
	procIDs     map[*Value]uuid.UUID
}

// Void is the sentinel "no value" result of define/set!/gc (spec.md
// §9): a distinguished Empty-kind value distinct from the surface
// '() literal by identity, never equal (==) to any value the reader
// produces, so the printer can suppress it with a plain pointer check.
var Void = &Value{kind: KindEmpty}

// NewInterp builds a fresh interpreter with its own global environment
// and memory manager, and installs the built-in primitives of §4.6.
func NewInterp() *Interp {
	it := &Interp{
		mgr:     newManager(),
		procIDs: make(map[*Value]uuid.UUID),
	}
	it.uuidCounter = uint64(time.Now().UnixNano())
	it.Global = it.newFrame(nil)
	it.current = it.Global
	installBuiltins(it)
	return it
}

func (it *Interp) registerValue(v *Value) *Value {
	it.mgr.registerValue(v)
	return v
}

func (it *Interp) newFrame(outer *Frame) *Frame {
	f := &Frame{outer: outer}
	it.mgr.registerFrame(f)
	return f
}

func (it *Interp) NewInteger(i int64) *Value {
	return it.registerValue(&Value{kind: KindInteger, i: i})
}

// NewSymbol validates the MaxSymbolBytes bound (spec.md §3.1/§4.1)
// before registering; use newSymbolUnchecked only for symbols already
// validated by the reader or built in by the interpreter itself.
func (it *Interp) NewSymbol(s string) (*Value, error) {
	if len(s) > MaxSymbolBytes {
		return nil, newErr(ErrKindTokenTooLong, s)
	}
	return it.newSymbolUnchecked(s), nil
}

func (it *Interp) newSymbolUnchecked(s string) *Value {
	return it.registerValue(&Value{kind: KindSymbol, sym: s})
}

func (it *Interp) NewEmpty() *Value {
	return it.registerValue(&Value{kind: KindEmpty})
}

// NewList links elems into a head/next chain and registers the list
// node itself. Callers must not reuse an element already linked into
// another list (spec.md §3.1's no-shared-element invariant); deepCopy
// (copy.go) is how the evaluator gets a safe-to-mutate duplicate.
func (it *Interp) NewList(elems []*Value) *Value {
	lst := &Value{kind: KindList}
	var prev *Value
	for _, e := range elems {
		e.next = nil
		if prev == nil {
			lst.head = e
		} else {
			prev.next = e
		}
		prev = e
	}
	return it.registerValue(lst)
}

func (it *Interp) NewProcedure(p Proc) *Value {
	return it.registerValue(&Value{kind: KindProcedure, proc: p})
}

func (it *Interp) NewLambda(params, body *Value) *Value {
	return it.registerValue(&Value{kind: KindLambda, params: params, body: body})
}

// shallowCopy duplicates the node header without recursing, detaching
// it from whatever list it might have been embedded in (spec.md §4.4
// rule 1: Symbol lookup returns a shallow copy to sever `next`).
func (it *Interp) shallowCopy(v *Value) *Value {
	cp := *v
	cp.next = nil
	cp.id = 0
	return it.registerValue(&cp)
}

// Collect runs one mark-and-sweep cycle from the interpreter's current
// frame; this is the body of the `gc` built-in (spec.md §4.6/§4.7).
func (it *Interp) Collect() {
	it.mgr.Collect(it.current)
}

func (it *Interp) LiveValues() int { return it.mgr.liveValues() }
func (it *Interp) LiveFrames() int { return it.mgr.liveFrames() }

// procOpaqueID mints (and memoizes) a stable opaque id for a
// Procedure or Lambda value, shown by the verbose printer. The
// generator is the teacher's storage/fast_uuid.go technique verbatim:
// an atomic counter folded with a timestamp, avoiding any dependency
// on crypto/rand (irrelevant for a display-only label, and a toy REPL
// has no business stalling on entropy at startup).
func (it *Interp) procOpaqueID(v *Value) uuid.UUID {
	if id, ok := it.procIDs[v]; ok {
		return id
	}
	ctr := atomic.AddUint64(&it.uuidCounter, 1)
	now := uint64(time.Now().UnixNano())
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:8], ctr)
	binary.LittleEndian.PutUint64(b[8:16], ctr^now^(now<<17))
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id := uuid.UUID(b)
	it.procIDs[v] = id
	return id
}
