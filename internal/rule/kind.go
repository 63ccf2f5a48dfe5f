// Package rule compiles operator definitions: each operator is an ordered
// list of entries, and each entry rewrites input matching its pattern into
// its state.
package rule

// Kind tags which variant a Pattern or State holds.
type Kind uint8

const (
	Variable     Kind = iota // binds (or substitutes) one item by name
	ListVariable             // ...name binds a run of items; patterns only
	StackEnd                 // _ asserts nothing follows
	Remainder                // ... matches a run of items without binding it
	Literal                  // matches (or produces) an equal value
	OperatorRef              // matches (or produces) an operator's word
	Stack                    // [ ... ]
	Block                    // { ... }; states only
)

var kindNames = [...]string{
	Variable:     "variable",
	ListVariable: "list variable",
	StackEnd:     "stack end",
	Remainder:    "remainder",
	Literal:      "literal",
	OperatorRef:  "operator",
	Stack:        "stack",
	Block:        "block",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}
