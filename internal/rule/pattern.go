package rule

import (
	"fmt"
	"strings"

	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/token"
)

const (
	stackEndWord  = "_"
	remainderWord = "..."
)

// Pattern is one element of an entry's left hand side.
type Pattern struct {
	Kind  Kind
	Name  string     // Variable, ListVariable, OperatorRef
	Value item.Value // Literal
	Items []Pattern  // Stack
}

func (p Pattern) String() string {
	switch p.Kind {
	case Variable, OperatorRef:
		return p.Name
	case ListVariable:
		return remainderWord + p.Name
	case StackEnd:
		return stackEndWord
	case Remainder:
		return remainderWord
	case Literal:
		return p.Value.String()
	case Stack:
		return "[" + formatPatterns(p.Items) + "]"
	}
	return "<invalid pattern>"
}

func formatPatterns(ps []Pattern) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

// CompilePattern compiles the items of a rule's left hand side. Words naming
// one of the given operators match only that word; any other word is a
// variable. Blocks may not appear in a pattern, and no variable may be bound
// twice.
func CompilePattern(items []item.Item[token.Token], operators map[string]bool) ([]Pattern, error) {
	pc := patternCompiler{operators: operators, bound: make(map[string]bool)}
	return pc.compile(items)
}

type patternCompiler struct {
	operators map[string]bool
	bound     map[string]bool
}

func (pc patternCompiler) compile(items []item.Item[token.Token]) ([]Pattern, error) {
	ps := make([]Pattern, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case item.AtomKind:
			p, err := pc.atom(it.Atom.Text)
			if err != nil {
				return nil, item.PosError{Token: it.Atom, Err: err}
			}
			ps = append(ps, p)

		case item.StackKind:
			sub, err := pc.compile(it.Items)
			if err != nil {
				return nil, err
			}
			ps = append(ps, Pattern{Kind: Stack, Items: sub})

		case item.BlockKind:
			return nil, ErrBlockInPattern
		}
	}
	return ps, nil
}

func (pc patternCompiler) atom(word string) (Pattern, error) {
	atom, err := item.ClassifyWord(word)
	if err != nil {
		return Pattern{}, err
	}
	if !atom.IsWord() {
		return Pattern{Kind: Literal, Value: atom.Value}, nil
	}

	switch {
	case word == stackEndWord:
		return Pattern{Kind: StackEnd}, nil

	case word == remainderWord:
		return Pattern{Kind: Remainder}, nil

	case strings.HasPrefix(word, remainderWord):
		name := word[len(remainderWord):]
		if pc.operators[name] {
			return Pattern{}, fmt.Errorf("%w: %q", ErrOperatorVariable, name)
		}
		return pc.bind(Pattern{Kind: ListVariable, Name: name})

	case pc.operators[word]:
		return Pattern{Kind: OperatorRef, Name: word}, nil
	}
	return pc.bind(Pattern{Kind: Variable, Name: word})
}

func (pc patternCompiler) bind(p Pattern) (Pattern, error) {
	if pc.bound[p.Name] {
		return Pattern{}, fmt.Errorf("%w: %q", ErrDuplicateVariable, p.Name)
	}
	pc.bound[p.Name] = true
	return p, nil
}

// Bound returns the names of every variable and list variable in patterns.
func Bound(patterns []Pattern) map[string]bool {
	bound := make(map[string]bool)
	var walk func(ps []Pattern)
	walk = func(ps []Pattern) {
		for _, p := range ps {
			switch p.Kind {
			case Variable, ListVariable:
				bound[p.Name] = true
			case Stack:
				walk(p.Items)
			}
		}
	}
	walk(patterns)
	return bound
}
