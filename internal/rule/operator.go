package rule

import (
	"fmt"

	"github.com/jcorbin/filo/internal/fileinput"
)

// Entry is one "pattern => state" rule.
type Entry struct {
	Pattern []Pattern
	State   []State
	Loc     fileinput.Location
}

// NewEntry checks that every variable used by state is bound by pattern.
func NewEntry(pattern []Pattern, state []State) (Entry, error) {
	if unbound := Unbound(state, Bound(pattern)); len(unbound) > 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnboundVariable, unbound[0])
	}
	return Entry{Pattern: pattern, State: state}, nil
}

func (ent Entry) String() string {
	return fmt.Sprintf("%v => %v", formatPatterns(ent.Pattern), formatStates(ent.State))
}

// Operator is a named list of entries, tried in order.
type Operator struct {
	Name    string
	Entries []Entry
	Loc     fileinput.Location
}

// Table maps names to operators, remembering the order names were first
// defined. Once built, a Table is only read, so it may be shared by any
// number of concurrent reductions.
type Table struct {
	names []string
	index map[string]int
	ops   []Operator
}

// Define adds an operator, replacing any prior operator of the same name.
// Returns true if one was replaced.
func (t *Table) Define(op Operator) (replaced bool) {
	if i, defined := t.index[op.Name]; defined {
		t.ops[i] = op
		return true
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	t.index[op.Name] = len(t.ops)
	t.names = append(t.names, op.Name)
	t.ops = append(t.ops, op)
	return false
}

// Lookup returns the named operator.
func (t *Table) Lookup(name string) (*Operator, bool) {
	if t == nil {
		return nil, false
	}
	i, defined := t.index[name]
	if !defined {
		return nil, false
	}
	return &t.ops[i], true
}

// Names returns all operator names in definition order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

// Len returns the number of operators.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ops)
}
