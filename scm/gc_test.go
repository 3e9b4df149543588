package scm

import "testing"

func TestCollectKeepsReachableValues(t *testing.T) {
	it := NewInterp()
	evalSurface(t, it, "(define x (quote (1 2 3)))")

	before := it.LiveValues()
	it.Collect()
	after := it.LiveValues()

	if after > before {
		t.Fatalf("live value count grew after collect: %d -> %d", before, after)
	}

	// x must still resolve to its original structure after the sweep.
	got := evalSurface(t, it, "x")
	if got != "(1 2 3)" {
		t.Fatalf("x was collected while still reachable: got %q", got)
	}
}

func TestCollectFreesUnreachableGarbage(t *testing.T) {
	it := NewInterp()
	// Each top-level Eval call allocates scratch values (e.g. the
	// Integer literals in "(+ 1 2)") that become unreachable the
	// instant the statement finishes, since nothing binds them into
	// any frame still on the current chain.
	for i := 0; i < 50; i++ {
		evalSurface(t, it, "(+ 1 2)")
	}
	before := it.LiveValues()
	it.Collect()
	after := it.LiveValues()

	if after >= before {
		t.Fatalf("expected Collect to reclaim unreachable garbage: before=%d after=%d", before, after)
	}
}

func TestCollectIsIdempotent(t *testing.T) {
	it := NewInterp()
	evalSurface(t, it, "(define x 1)")
	it.Collect()
	first := it.LiveValues()
	it.Collect()
	second := it.LiveValues()
	if first != second {
		t.Fatalf("a second Collect with no new allocations changed live count: %d -> %d", first, second)
	}
}

func TestRegisterValueIsIdempotentByPointerIdentity(t *testing.T) {
	it := NewInterp()
	v := it.NewInteger(5)
	before := it.LiveValues()
	it.registerValue(v)
	after := it.LiveValues()
	if after != before {
		t.Fatalf("re-registering the same *Value pointer should not grow the registry: %d -> %d", before, after)
	}
}

func TestCollectNeverRunsImplicitly(t *testing.T) {
	it := NewInterp()
	before := it.LiveValues()
	evalSurface(t, it, "(+ 1 2)")
	evalSurface(t, it, "(+ 3 4)")
	after := it.LiveValues()
	if after <= before {
		t.Fatalf("expected live values to accumulate without an explicit gc call: before=%d after=%d", before, after)
	}
}
