package scm

import "github.com/google/btree"

// manager is the memory manager of spec.md §4.7: an append-only
// registry of every allocated Value and every allocated Frame, each
// carrying an in_use mark bit, swept by Collect on demand (the `gc`
// built-in — collection never runs implicitly).
//
// The registries are ordered btrees keyed by allocation sequence
// number (github.com/google/btree, the same generic BTreeG the teacher
// uses in storage/index.go for its secondary indices) so that mark
// clear and sweep iterate in a stable, deterministic order instead of
// Go map iteration order — useful for reproducible tests and mirrors
// the teacher's reach for btree whenever order matters.
type manager struct {
	nextID uint64

	values     *btree.BTreeG[*valueEntry]
	valueIndex map[*Value]*valueEntry

	frames     *btree.BTreeG[*frameEntry]
	frameIndex map[*Frame]*frameEntry
}

type valueEntry struct {
	id     uint64
	v      *Value
	inUse  bool
}

type frameEntry struct {
	id    uint64
	f     *Frame
	inUse bool
}

func newManager() *manager {
	return &manager{
		values: btree.NewG(32, func(a, b *valueEntry) bool {
			return a.id < b.id
		}),
		valueIndex: make(map[*Value]*valueEntry),
		frames: btree.NewG(32, func(a, b *frameEntry) bool {
			return a.id < b.id
		}),
		frameIndex: make(map[*Frame]*frameEntry),
	}
}

// registerValue is idempotent by pointer identity (spec.md §3.3): a
// Value already present in the registry is left untouched.
func (m *manager) registerValue(v *Value) {
	if _, ok := m.valueIndex[v]; ok {
		return
	}
	m.nextID++
	v.id = m.nextID
	e := &valueEntry{id: v.id, v: v, inUse: true}
	m.valueIndex[v] = e
	m.values.ReplaceOrInsert(e)
}

func (m *manager) registerFrame(f *Frame) {
	if _, ok := m.frameIndex[f]; ok {
		return
	}
	m.nextID++
	f.id = m.nextID
	e := &frameEntry{id: f.id, f: f, inUse: true}
	m.frameIndex[f] = e
	m.frames.ReplaceOrInsert(e)
}

// Collect runs one mark-and-sweep cycle rooted at current, the frame
// chain active when `(gc)` was evaluated.
func (m *manager) Collect(current *Frame) {
	m.markClear()
	m.mark(current)
	m.sweep()
}

func (m *manager) markClear() {
	m.values.Ascend(func(e *valueEntry) bool {
		e.inUse = false
		return true
	})
	m.frames.Ascend(func(e *frameEntry) bool {
		e.inUse = false
		return true
	})
}

func (m *manager) mark(f *Frame) {
	for f != nil {
		fe, ok := m.frameIndex[f]
		if !ok {
			return // not a registered frame (shouldn't happen)
		}
		if fe.inUse {
			return // already marked from here outward in a prior pass
		}
		fe.inUse = true
		for _, p := range f.pairs {
			m.markValue(p.sym)
			m.markValue(p.val)
		}
		f = f.outer
	}
}

func (m *manager) markValue(v *Value) {
	for v != nil {
		ve, ok := m.valueIndex[v]
		if !ok {
			return
		}
		if ve.inUse {
			return
		}
		ve.inUse = true
		switch v.kind {
		case KindList:
			for e := v.head; e != nil; e = e.next {
				m.markValue(e)
			}
		case KindLambda:
			m.markValue(v.params)
			m.markValue(v.body)
		}
		v = v.next
	}
}

func (m *manager) sweep() {
	var deadValues []*valueEntry
	m.values.Ascend(func(e *valueEntry) bool {
		if !e.inUse {
			deadValues = append(deadValues, e)
		}
		return true
	})
	for _, e := range deadValues {
		m.values.Delete(e)
		delete(m.valueIndex, e.v)
		release(e.v)
	}

	var deadFrames []*frameEntry
	m.frames.Ascend(func(e *frameEntry) bool {
		if !e.inUse {
			deadFrames = append(deadFrames, e)
		}
		return true
	})
	for _, e := range deadFrames {
		m.frames.Delete(e)
		delete(m.frameIndex, e.f)
		e.f.pairs = nil
		e.f.outer = nil
	}
}

// release drops a freed Value's outgoing references so the host Go
// runtime's own collector can reclaim the memory; Go has no manual
// free, so "freeing" here means deregistering and unlinking.
func release(v *Value) {
	v.head = nil
	v.next = nil
	v.params = nil
	v.body = nil
	v.proc = nil
}

func (m *manager) liveValues() int {
	return m.values.Len()
}

func (m *manager) liveFrames() int {
	return m.frames.Len()
}
