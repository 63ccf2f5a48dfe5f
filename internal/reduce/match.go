package reduce

import (
	"fmt"

	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/rule"
)

type binding struct {
	name  string
	items []item.Program
}

// matcher binds pattern variables against input, undoing bindings as it
// backtracks out of list captures.
type matcher struct {
	bindings []binding
}

func (m *matcher) reset() { m.bindings = m.bindings[:0] }

func (m *matcher) bind(name string, items []item.Program) {
	m.bindings = append(m.bindings, binding{name, items})
}

func (m *matcher) lookup(name string) ([]item.Program, bool) {
	for i := len(m.bindings) - 1; i >= 0; i-- {
		if b := m.bindings[i]; b.name == name {
			return b.items, true
		}
	}
	return nil, false
}

// match matches ps against in starting at i, returning the end of the
// matched span. When whole is true, the span must reach the end of in;
// otherwise any prefix will do.
//
// List variables and remainders capture as few items as they can while still
// letting the rest of the pattern match.
func (m *matcher) match(ps []rule.Pattern, in window, i int, whole bool) (int, bool) {
	if len(ps) == 0 {
		return i, !whole || i == in.len()
	}
	p, rest := ps[0], ps[1:]
	mark := len(m.bindings)

	switch p.Kind {
	case rule.StackEnd:
		return i, len(rest) == 0 && i == in.len()

	case rule.ListVariable, rule.Remainder:
		for j := i; j <= in.len(); j++ {
			if p.Kind == rule.ListVariable {
				m.bind(p.Name, span(in, i, j))
			}
			if end, ok := m.match(rest, in, j, whole); ok {
				return end, true
			}
			m.bindings = m.bindings[:mark]
		}
		return i, false
	}

	if i >= in.len() || !m.matchOne(p, in.at(i)) {
		m.bindings = m.bindings[:mark]
		return i, false
	}
	end, ok := m.match(rest, in, i+1, whole)
	if !ok {
		m.bindings = m.bindings[:mark]
	}
	return end, ok
}

func (m *matcher) matchOne(p rule.Pattern, it item.Program) bool {
	switch p.Kind {
	case rule.Variable:
		m.bind(p.Name, []item.Program{it})
		return true

	case rule.Literal:
		return it.Kind == item.AtomKind && !it.Atom.IsWord() && it.Atom.Value == p.Value

	case rule.OperatorRef:
		return it.Kind == item.AtomKind && it.Atom.IsWord() && it.Atom.Word == p.Name

	case rule.Stack:
		if it.Kind != item.StackKind {
			return false
		}
		_, ok := m.match(p.Items, sliceWindow(it.Items), 0, true)
		return ok
	}
	panic(fmt.Sprintf("invalid pattern kind %v", p.Kind))
}

func span(in window, i, j int) []item.Program {
	if i == j {
		return nil
	}
	items := make([]item.Program, 0, j-i)
	for ; i < j; i++ {
		items = append(items, in.at(i))
	}
	return items
}

// instantiate builds the items of states from the current bindings. A
// variable bound to a list splices in all of its items.
func (m *matcher) instantiate(op string, ss []rule.State) ([]item.Program, error) {
	var out []item.Program
	for _, s := range ss {
		switch s.Kind {
		case rule.Variable:
			items, bound := m.lookup(s.Name)
			if !bound {
				return nil, UnboundVariableError{Operator: op, Name: s.Name}
			}
			out = append(out, items...)

		case rule.StackEnd, rule.Remainder:

		case rule.Literal:
			out = append(out, item.V(s.Value))

		case rule.OperatorRef:
			out = append(out, item.W(s.Name))

		case rule.Stack, rule.Block:
			sub, err := m.instantiate(op, s.Items)
			if err != nil {
				return nil, err
			}
			kind := item.StackKind
			if s.Kind == rule.Block {
				kind = item.BlockKind
			}
			out = append(out, item.Program{Kind: kind, Items: sub})

		default:
			panic(fmt.Sprintf("invalid state kind %v", s.Kind))
		}
	}
	return out, nil
}
