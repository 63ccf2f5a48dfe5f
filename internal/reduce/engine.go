// Package reduce runs programs by rewriting them with operator rules.
//
// Reduction takes items off the front of a pending sequence, initially the
// whole program. Literals and stacks pass straight to the output. A block's
// items are put back onto the front of pending, so deferred code runs only
// once reduction reaches it. A word must name an operator: the first of its
// entries whose pattern matches the items after the word replaces the
// matched items with its instantiated state, and reduction continues from
// the front.
//
// Nothing stops an operator from rewriting into its own invocation forever;
// callers that run untrusted rules should use WithStepLimit, or a context
// deadline.
package reduce

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/panicerr"
	"github.com/jcorbin/filo/internal/rule"
)

// Execute reduces program using the operators in table, returning the output
// items. No output is returned with an error.
func Execute(ctx context.Context, program []item.Program, table *rule.Table, opts ...Option) ([]item.Program, error) {
	eng := engine{
		table:   table,
		pending: newDeque(program),
	}
	for _, opt := range opts {
		opt.apply(&eng)
	}

	err := panicerr.Recover("reduce", func() error {
		eng.run(ctx)
		return nil
	})
	if err != nil {
		var halt haltError
		if errors.As(err, &halt) {
			err = halt.error
		}
		return nil, err
	}
	return eng.out, nil
}

type engine struct {
	logging

	table   *rule.Table
	pending *deque
	out     []item.Program
	m       matcher

	steps     int
	stepLimit int
}

func (eng *engine) halt(err error) {
	eng.logf("#", "halt error: %v", err)
	panic(haltError{err})
}

func (eng *engine) haltif(err error) {
	if err != nil {
		eng.halt(err)
	}
}

func (eng *engine) run(ctx context.Context) {
	for eng.pending.len() > 0 {
		eng.step()
		eng.haltif(ctx.Err())
	}
}

func (eng *engine) step() {
	if eng.steps++; eng.stepLimit > 0 && eng.steps > eng.stepLimit {
		eng.halt(StepLimitError{eng.stepLimit})
	}

	it := eng.pending.popFront()
	switch it.Kind {
	case item.AtomKind:
		if it.Atom.IsWord() {
			eng.invoke(it.Atom.Word)
			return
		}
		eng.logf(">", "%v", it)
		eng.out = append(eng.out, it)

	case item.StackKind:
		eng.logf(">", "%v", it)
		eng.out = append(eng.out, it)

	case item.BlockKind:
		eng.logf("{", "%v", it)
		eng.pending.pushFront(it.Items...)

	default:
		panic(fmt.Sprintf("invalid item kind %v", it.Kind))
	}
}

func (eng *engine) invoke(word string) {
	op, defined := eng.table.Lookup(word)
	if !defined {
		eng.halt(UnknownOperatorError{Word: word, Suggest: suggest(word, eng.table.Names())})
	}

	for i, ent := range op.Entries {
		eng.m.reset()
		n, ok := eng.m.match(ent.Pattern, eng.pending, 0, false)
		if !ok {
			continue
		}
		rewrite, err := eng.m.instantiate(op.Name, ent.State)
		eng.haltif(err)
		if eng.logfn != nil {
			eng.logf("~", "%v #%v %v", op.Name, i, ent)
			eng.logf("=", "%v => %v", item.Format(span(eng.pending, 0, n)), item.Format(rewrite))
		}
		eng.pending.drop(n)
		eng.pending.pushFront(rewrite...)
		return
	}

	eng.halt(NoMatchError{Operator: op.Name, Input: span(eng.pending, 0, eng.pending.len())})
}

type logging struct {
	logfn func(mess string, args ...interface{})
}

func (log logging) logf(mark, mess string, args ...interface{}) {
	if log.logfn == nil {
		return
	}
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	log.logfn("%v %v", mark, mess)
}
