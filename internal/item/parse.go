package item

import (
	"fmt"

	"github.com/jcorbin/filo/internal/token"
)

// Parse builds one group of items from tokens, returning it along with any
// tokens left after its closing bracket.
//
// Items accumulate until a closing bracket: "]" returns them as a Stack, "}"
// as a Block. Reaching the end of tokens returns the accumulated items as a
// Stack with no remainder; callers tell a complete top level parse apart by
// checking that the remainder is empty. Each nested group must be closed by
// the same kind of bracket that opened it.
//
// Every other token becomes an atom through classify.
func Parse[A any](toks []token.Token, classify func(token.Token) (A, error)) (Item[A], []token.Token, error) {
	items, closer, rest, err := parseGroup(toks, classify)
	if err != nil {
		return Item[A]{}, nil, err
	}
	kind := StackKind
	if closer.Text == "}" {
		kind = BlockKind
	}
	return Item[A]{Kind: kind, Items: items}, rest, nil
}

// ParseTop parses all of toks as the items of one top level stack. A closing
// bracket with no matching opener is an ExpectError.
func ParseTop[A any](toks []token.Token, classify func(token.Token) (A, error)) ([]Item[A], error) {
	items, closer, _, err := parseGroup(toks, classify)
	if err != nil {
		return nil, err
	}
	if closer.Text != "" {
		return nil, ExpectError{
			Expected: "stack",
			Got:      fmt.Sprintf("unmatched %q at %v", closer.Text, closer.Pos),
		}
	}
	return items, nil
}

// ParseProgram tokenizes and parses program text into the items of its top
// level stack.
func ParseProgram(name, text string) ([]Program, error) {
	toks, err := token.Tokenize(name, text)
	if err != nil {
		return nil, err
	}
	return ParseTop(toks, Classify)
}

func parseGroup[A any](toks []token.Token, classify func(token.Token) (A, error)) (items []Item[A], closer token.Token, rest []token.Token, err error) {
	for len(toks) > 0 {
		tok := toks[0]
		toks = toks[1:]

		switch {
		case tok.IsOpen():
			sub, subCloser, subRest, err := parseGroup(toks, classify)
			if err != nil {
				return nil, closer, nil, err
			}
			if subCloser.Text != tok.Closer() {
				return nil, closer, nil, BracketError{Open: tok, Close: subCloser}
			}
			kind := StackKind
			if tok.Text == "{" {
				kind = BlockKind
			}
			items = append(items, Item[A]{Kind: kind, Items: sub})
			toks = subRest

		case tok.IsClose():
			return items, tok, toks, nil

		default:
			atom, err := classify(tok)
			if err != nil {
				return nil, closer, nil, err
			}
			items = append(items, Leaf(atom))
		}
	}
	return items, closer, nil, nil
}
