package scm

import "testing"

func TestReadInteger(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("42")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsInteger() || v.Int() != 42 {
		t.Fatalf("got %+v", v)
	}
}

func TestReadNegativeInteger(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("-7")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsInteger() || v.Int() != -7 {
		t.Fatalf("got %+v", v)
	}
}

func TestReadSymbol(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("foo-bar")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsSymbol() || v.Symbol() != "foo-bar" {
		t.Fatalf("got %+v", v)
	}
}

func TestReadList(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("(+ 1 2)")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsList() || v.Len() != 3 {
		t.Fatalf("got %+v", v)
	}
	elems := v.Elements()
	if !elems[0].IsSymbol() || elems[0].Symbol() != "+" {
		t.Fatalf("head: got %+v", elems[0])
	}
	if elems[1].Int() != 1 || elems[2].Int() != 2 {
		t.Fatalf("args: got %+v %+v", elems[1], elems[2])
	}
}

func TestReadNestedList(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("(+ (* 2 100) (* 1 10))")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if v.Len() != 3 {
		t.Fatalf("got len %d", v.Len())
	}
	inner := v.Elements()[1]
	if !inner.IsList() || inner.Len() != 3 {
		t.Fatalf("inner: got %+v", inner)
	}
}

func TestReadQuoteEmptyLiteral(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("'()")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsEmpty() {
		t.Fatalf("expected Empty, got %+v", v)
	}
}

func TestReadQuoteOfEmptyList(t *testing.T) {
	it := NewInterp()
	v, err := it.Read("(quote ())")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsList() || v.Len() != 2 {
		t.Fatalf("expected a 2-element List, got %+v", v)
	}
	inner := v.Elements()[1]
	if !inner.IsList() || inner.Len() != 0 {
		t.Fatalf("expected second element to be an empty List, got %+v", inner)
	}
}

func TestReadUnbalancedParenFails(t *testing.T) {
	it := NewInterp()
	_, err := it.Read(")")
	if !isKind(err, ErrKindUnbalancedParen) {
		t.Fatalf("expected UnbalancedParen, got %v", err)
	}
}

func TestReadUnexpectedEOF(t *testing.T) {
	it := NewInterp()
	_, err := it.Read("(+ 1")
	if !isKind(err, ErrKindUnexpectedEOF) {
		t.Fatalf("expected UnexpectedEOF, got %v", err)
	}
}

func TestReadTokenTooLong(t *testing.T) {
	it := NewInterp()
	tok := make([]byte, MaxSymbolBytes+1)
	for i := range tok {
		tok[i] = 'x'
	}
	_, err := it.Read(string(tok))
	if !isKind(err, ErrKindTokenTooLong) {
		t.Fatalf("expected TokenTooLong, got %v", err)
	}
}

func TestReadTokenExactlyMaxLengthAccepted(t *testing.T) {
	it := NewInterp()
	tok := make([]byte, MaxSymbolBytes)
	for i := range tok {
		tok[i] = 'x'
	}
	v, err := it.Read(string(tok))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !v.IsSymbol() || v.Symbol() != string(tok) {
		t.Fatalf("got %+v", v)
	}
}

// TestReadPrintSurfaceRoundTrip exercises spec.md §8's round-trip
// invariant: print_surface(read(s)) re-read yields a structurally
// equal value, for a handful of representative inputs.
func TestReadPrintSurfaceRoundTrip(t *testing.T) {
	inputs := []string{
		"42",
		"-3",
		"foo",
		"(+ 1 2)",
		"(if (> 6 5) (+ 1 1) (+ 2 2))",
		"(define x 3)",
	}
	for _, in := range inputs {
		it := NewInterp()
		v, err := it.Read(in)
		if err != nil {
			t.Fatalf("Read(%q): %v", in, err)
		}
		surface := it.Print(Surface, v)
		surface = surface[:len(surface)-1] // drop the trailing newline Print adds
		v2, err := it.Read(surface)
		if err != nil {
			t.Fatalf("re-Read(%q) from %q: %v", in, surface, err)
		}
		if !structuralEqual(v, v2) {
			t.Fatalf("round-trip mismatch for %q: %q -> %+v vs %+v", in, surface, v, v2)
		}
	}
}
