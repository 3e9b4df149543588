package scm

// special is a special-form handler: spec.md's Design Notes ask for a
// first-class, data-driven special-form table rather than a chain of
// string-equality branches, so that new forms can be added without
// touching Eval's dispatch logic.
type special func(it *Interp, list *Value, frame *Frame) (*Value, error)

var specialForms = map[string]special{
	"define": evalDefine,
	"set!":   evalSet,
	"quote":  evalQuote,
	"if":     evalIf,
	"begin":  evalBegin,
	"lambda": evalLambda,
}

// Eval is spec.md §4.4's single recursive eval(v, frame) -> v'.
func (it *Interp) Eval(v *Value, frame *Frame) (*Value, error) {
	it.current = frame

	switch v.kind {
	case KindSymbol:
		found, err := lookup(v.sym, frame)
		if err != nil {
			return nil, err
		}
		return it.shallowCopy(found), nil
	case KindList:
		return it.evalList(v, frame)
	default:
		// Integer, Empty, Procedure, Lambda evaluate to themselves.
		return v, nil
	}
}

func (it *Interp) evalList(list *Value, frame *Frame) (*Value, error) {
	head := list.head
	if head == nil {
		return nil, newErr(ErrKindEmptyCombination, "")
	}
	if head.kind == KindSymbol {
		if sf, ok := specialForms[head.sym]; ok {
			return sf(it, list, frame)
		}
	}
	return it.evalCombination(list, frame)
}

func evalDefine(it *Interp, list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	if len(elems) != 3 {
		return nil, newErr(ErrKindArityMismatch, "define")
	}
	key := elems[1]
	if key.kind != KindSymbol {
		return nil, newErr(ErrKindTypeError, "define: first argument must be a symbol")
	}
	val, err := it.Eval(elems[2], frame)
	if err != nil {
		return nil, err
	}
	bind(it, key.sym, val, frame)
	return Void, nil
}

func evalSet(it *Interp, list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	if len(elems) != 3 {
		return nil, newErr(ErrKindArityMismatch, "set!")
	}
	key := elems[1]
	if key.kind != KindSymbol {
		return nil, newErr(ErrKindTypeError, "set!: first argument must be a symbol")
	}
	val, err := it.Eval(elems[2], frame)
	if err != nil {
		return nil, err
	}
	if err := assign(key.sym, val, frame); err != nil {
		return nil, err
	}
	return Void, nil
}

func evalQuote(it *Interp, list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	if len(elems) != 2 {
		return nil, newErr(ErrKindArityMismatch, "quote")
	}
	return elems[1], nil
}

func evalIf(it *Interp, list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	if len(elems) != 4 {
		return nil, newErr(ErrKindArityMismatch, "if")
	}
	cond, err := it.Eval(elems[1], frame)
	if err != nil {
		return nil, err
	}
	switch {
	case cond.kind == KindInteger:
		return it.Eval(elems[2], frame)
	case cond.kind == KindSymbol && cond.sym == "#t":
		return it.Eval(elems[2], frame)
	case cond.kind == KindSymbol && cond.sym == "#f":
		return it.Eval(elems[3], frame)
	default:
		return nil, newErr(ErrKindIfConditionType, "")
	}
}

func evalBegin(it *Interp, list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	body := elems[1:]
	if len(body) == 0 {
		return Void, nil
	}
	var result *Value
	var err error
	for _, e := range body {
		result, err = it.Eval(e, frame)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalLambda(it *Interp, list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	if len(elems) < 3 {
		return nil, newErr(ErrKindArityMismatch, "lambda")
	}
	params := elems[1]
	if params.kind != KindList {
		return nil, newErr(ErrKindTypeError, "lambda: parameter list must be a list")
	}
	for _, p := range params.Elements() {
		if p.kind != KindSymbol {
			return nil, newErr(ErrKindTypeError, "lambda: parameters must be symbols")
		}
	}
	// Every element after the parameter list is a body form, evaluated
	// in sequence at application time (an implicit begin) — the same
	// "remaining elements after the params" shape the original reader
	// hands the evaluator, so a lambda with one body form and one with
	// several are stored identically and applied the same way.
	body := it.NewList(elems[2:])
	return it.NewLambda(params, body), nil
}

// evalCombination implements spec.md §4.4's "Combination" dispatch:
// evaluate every element left-to-right into a separate slice, then
// apply. The list's own elements are not replaced by their values.
func (it *Interp) evalCombination(list *Value, frame *Frame) (*Value, error) {
	elems := list.Elements()
	evaluated := make([]*Value, len(elems))
	for i, e := range elems {
		v, err := it.Eval(e, frame)
		if err != nil {
			return nil, err
		}
		evaluated[i] = v
	}
	head := evaluated[0]
	args := evaluated[1:]

	switch head.kind {
	case KindProcedure:
		argList := it.NewList(append([]*Value{}, args...))
		return head.proc(argList)
	case KindLambda:
		return it.applyLambda(head, args, frame)
	default:
		return nil, newErr(ErrKindNotApplicable, "")
	}
}

// applyLambda parents the new activation frame on the caller's frame
// (caller is the frame parameter threaded down from evalCombination,
// not it.current — that field is overwritten on every Eval call and
// never restored on return, so by the time a nested sub-expression has
// finished evaluating it no longer points at this call's caller).
func (it *Interp) applyLambda(lambda *Value, args []*Value, caller *Frame) (*Value, error) {
	params := lambda.params.Elements()
	if len(params) != len(args) {
		return nil, newErr(ErrKindArityMismatch, "lambda")
	}
	newFrame := it.newFrame(caller)
	for i, p := range params {
		bind(it, p.sym, args[i], newFrame)
	}
	body := it.deepCopy(lambda.body)
	if body.kind == KindList {
		elems := body.Elements()
		if len(elems) == 0 {
			return Void, nil
		}
		var result *Value
		var err error
		for _, e := range elems {
			result, err = it.Eval(e, newFrame)
			if err != nil {
				return nil, err
			}
		}
		return result, nil
	}
	return it.Eval(body, newFrame)
}
