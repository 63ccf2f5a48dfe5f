// Package item implements the item tree shared by programs and rule
// definitions: atoms, data stacks written as [...], and deferred blocks
// written as {...}.
package item

import (
	"fmt"
	"strings"
)

// Kind tags which variant an Item holds.
type Kind uint8

const (
	AtomKind  Kind = iota // a leaf
	StackKind             // [ ... ] data
	BlockKind             // { ... } deferred code
)

func (k Kind) String() string {
	switch k {
	case AtomKind:
		return "atom"
	case StackKind:
		return "stack"
	case BlockKind:
		return "block"
	}
	return "invalid"
}

// Item is a node in a parsed tree, generic over what its leaves are.
// Atom is only meaningful for AtomKind, Items only for StackKind and BlockKind.
type Item[A any] struct {
	Kind  Kind
	Atom  A
	Items []Item[A]
}

// Leaf returns an atom item.
func Leaf[A any](atom A) Item[A] { return Item[A]{Kind: AtomKind, Atom: atom} }

// Stack returns a stack item.
func Stack[A any](items ...Item[A]) Item[A] { return Item[A]{Kind: StackKind, Items: items} }

// Block returns a block item.
func Block[A any](items ...Item[A]) Item[A] { return Item[A]{Kind: BlockKind, Items: items} }

// Atom is a program leaf: a literal Value, or a Word naming an operator when
// Value is nil.
type Atom struct {
	Value Value
	Word  string
}

// IsWord returns true if the atom is a word rather than a literal.
func (a Atom) IsWord() bool { return a.Value == nil }

func (a Atom) String() string {
	if a.Value != nil {
		return a.Value.String()
	}
	return a.Word
}

// Program is an item tree of program atoms.
type Program = Item[Atom]

// V returns a literal program item.
func V(v Value) Program { return Leaf(Atom{Value: v}) }

// W returns a word program item.
func W(word string) Program { return Leaf(Atom{Word: word}) }

// Format renders items as canonical source text, separated by single spaces.
// Atoms are printed with fmt, so Stringer atoms control their own text.
func Format[A any](items []Item[A]) string {
	var sb strings.Builder
	format(&sb, items)
	return sb.String()
}

// String renders the item as canonical source text.
func (it Item[A]) String() string {
	return Format([]Item[A]{it})
}

func format[A any](sb *strings.Builder, items []Item[A]) {
	for i, it := range items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch it.Kind {
		case AtomKind:
			fmt.Fprint(sb, it.Atom)
		case StackKind:
			sb.WriteByte('[')
			format(sb, it.Items)
			sb.WriteByte(']')
		case BlockKind:
			sb.WriteByte('{')
			format(sb, it.Items)
			sb.WriteByte('}')
		}
	}
}
