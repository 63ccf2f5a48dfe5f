/*
Package main implements FILO, a language of rewrite rules.

FILO programs are sequences of items, read left to right. There are no
built in operations at all: every word names an operator defined by the
programmer as an ordered list of rewrite rules.

Items

	5 2.5 true     literal values: 32-bit integers, 32-bit floats, booleans
	swap           a word, naming an operator
	[1 2 3]        a stack: data, passed through untouched
	{swap 1 2}     a block: code, run when reduction reaches it

# Operators

Operators are defined in files of this form:

	def swap:
	a b => b a

	def not:
	true => false
	false => true

A definition starts with a "def NAME:" line, and runs until a blank line or
the end of its file. Each entry line has a pattern and a state, separated
by exactly one "=>". Lines outside of any definition are ignored, so they
may be used for commentary.

# Reduction

Reduction repeatedly takes the first pending item:
  - literals and stacks go to the output
  - a block's items become the first pending items
  - a word invokes its operator

Invoking an operator tries each of its entries in order against the items
that follow the word. The first entry whose pattern matches a prefix of
those items replaces exactly the items it matched with its state, and
reduction continues from the front. If no entry matches, or the word names
no operator, reduction stops with an error and produces no output.

So given the definitions above:

	swap 1 2           => 2 1
	not true 3         => false 3
	{swap 1 2} [swap]  => 2 1 [swap]

Patterns

	x        any one item, bound to x
	...xs    as few items as possible, bound to xs as a list
	...      as few items as possible, unbound
	_        the end of input; only valid last
	5 true   an equal literal value; 1 and 1.0 differ
	swap     the word naming a defined operator
	[x ...]  a stack whose items all match the inner pattern

Blocks may not appear in patterns, and a variable may only be bound once
per pattern. Outside of a stack, a pattern need only match a prefix of the
pending items; inside one it must match every item.

# States

A state is built from the same words, plus blocks. A variable is replaced by
what it was bound to: one item, or all of a list's items spliced in place.
States introduce new deferred code with blocks:

	def when:
	true [...body] => {body}
	false [...body] =>

Every variable in a state must be bound by its pattern.

# Termination

Nothing stops an operator from rewriting into its own invocation forever;
use -step-limit or -timeout when running rules that might.

Usage

	filo -defs ops.filo 'swap 1 2' 'not true'
	echo 'swap 1 2' | filo -defs ops.filo
	filo -defs ops.filo -i

Each program argument is reduced concurrently against the same operators;
outputs are printed one per line, in argument order. See -help for all flags.
Settings may also come from a YAML file given with -config:

	defs: [ops.filo, more.filo]
	step_limit: 100000
	timeout: 5s
	trace: false
	history: .filo_history
*/
package main
