package rule

import (
	"fmt"
	"strings"

	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/token"
)

// State is one element of an entry's right hand side, the template that
// replaces matched input.
type State struct {
	Kind  Kind
	Name  string     // Variable, OperatorRef
	Value item.Value // Literal
	Items []State    // Stack, Block
}

func (s State) String() string {
	switch s.Kind {
	case Variable, OperatorRef:
		return s.Name
	case StackEnd:
		return stackEndWord
	case Remainder:
		return remainderWord
	case Literal:
		return s.Value.String()
	case Stack:
		return "[" + formatStates(s.Items) + "]"
	case Block:
		return "{" + formatStates(s.Items) + "}"
	}
	return "<invalid state>"
}

func formatStates(ss []State) string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// CompileState compiles the items of a rule's right hand side. Unlike
// patterns, states may contain blocks, but may not declare list variables: a
// list bound by the pattern is spliced in through a plain variable.
func CompileState(items []item.Item[token.Token], operators map[string]bool) ([]State, error) {
	ss := make([]State, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case item.AtomKind:
			s, err := stateAtom(it.Atom.Text, operators)
			if err != nil {
				return nil, item.PosError{Token: it.Atom, Err: err}
			}
			ss = append(ss, s)

		case item.StackKind, item.BlockKind:
			sub, err := CompileState(it.Items, operators)
			if err != nil {
				return nil, err
			}
			kind := Stack
			if it.Kind == item.BlockKind {
				kind = Block
			}
			ss = append(ss, State{Kind: kind, Items: sub})
		}
	}
	return ss, nil
}

func stateAtom(word string, operators map[string]bool) (State, error) {
	atom, err := item.ClassifyWord(word)
	if err != nil {
		return State{}, err
	}
	if !atom.IsWord() {
		return State{Kind: Literal, Value: atom.Value}, nil
	}

	switch {
	case word == stackEndWord:
		return State{Kind: StackEnd}, nil
	case word == remainderWord:
		return State{Kind: Remainder}, nil
	case strings.HasPrefix(word, remainderWord):
		return State{}, fmt.Errorf("%w: %q", ErrListVariableInState, word)
	case operators[word]:
		return State{Kind: OperatorRef, Name: word}, nil
	}
	return State{Kind: Variable, Name: word}, nil
}

// Unbound returns the names of any variables in states that are not in bound,
// in order of first use.
func Unbound(states []State, bound map[string]bool) (names []string) {
	seen := make(map[string]bool)
	var walk func(ss []State)
	walk = func(ss []State) {
		for _, s := range ss {
			switch s.Kind {
			case Variable:
				if !bound[s.Name] && !seen[s.Name] {
					seen[s.Name] = true
					names = append(names, s.Name)
				}
			case Stack, Block:
				walk(s.Items)
			}
		}
	}
	walk(states)
	return names
}
