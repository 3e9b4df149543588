package scm

import (
	"strconv"
	"strings"
)

// Mode selects one of the printer's two renderings (spec.md §4.2).
type Mode uint8

const (
	// Verbose is the REPL's rendering: tagged, debug-oriented.
	Verbose Mode = iota
	// Surface is reserved for quote-rendered output: plain Lisp syntax.
	Surface
)

// Print renders v in the given mode, followed by a trailing newline —
// the newline only ever appears at this outermost call, never from the
// recursive helpers below (spec.md §4.2).
func (it *Interp) Print(mode Mode, v *Value) string {
	var b strings.Builder
	switch mode {
	case Surface:
		it.writeSurface(&b, v)
	default:
		it.writeVerbose(&b, v)
	}
	b.WriteByte('\n')
	return b.String()
}

func (it *Interp) writeVerbose(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("nil")
		return
	}
	switch v.kind {
	case KindInteger:
		b.WriteString(" INT: ")
		b.WriteString(strconv.FormatInt(v.i, 10))
		b.WriteByte(' ')
	case KindSymbol:
		b.WriteString(" SYM:'")
		b.WriteString(v.sym)
		b.WriteString("' ")
	case KindEmpty:
		b.WriteString("()")
	case KindList:
		b.WriteString(" EXPRLIST[")
		for e := v.head; e != nil; e = e.next {
			it.writeVerbose(b, e)
		}
		b.WriteString("] ")
	case KindProcedure:
		b.WriteString(" PROC: ")
		b.WriteString(it.procOpaqueID(v).String())
		b.WriteByte(' ')
	case KindLambda:
		b.WriteString("[LAMBDA EXPR ARGS:")
		it.writeVerbose(b, v.params)
		b.WriteString(" BODY ")
		it.writeVerbose(b, v.body)
		b.WriteByte(']')
	}
}

func (it *Interp) writeSurface(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("nil")
		return
	}
	switch v.kind {
	case KindInteger:
		b.WriteString(strconv.FormatInt(v.i, 10))
	case KindSymbol:
		b.WriteString(v.sym)
	case KindEmpty:
		b.WriteString(" [] ")
	case KindList:
		b.WriteByte('(')
		for e := v.head; e != nil; e = e.next {
			it.writeSurface(b, e)
			if e.next != nil {
				b.WriteByte(' ')
			}
		}
		b.WriteByte(')')
	case KindProcedure:
		b.WriteString(" PROC: ")
		b.WriteString(it.procOpaqueID(v).String())
		b.WriteByte(' ')
	case KindLambda:
		b.WriteString("[LAMBDA EXPR ARGS:")
		it.writeSurface(b, v.params)
		b.WriteString(" BODY ")
		it.writeSurface(b, v.body)
		b.WriteByte(']')
	}
}
