package rule

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jcorbin/filo/internal/fileinput"
	"github.com/jcorbin/filo/internal/item"
	"github.com/jcorbin/filo/internal/token"
)

// Option customizes table building.
type Option interface{ apply(b *builder) }

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(b *builder) { b.logfn = logfn }

// WithLogf sets a function to log table building, like a replaced
// definition.
func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }

type builder struct {
	logfn func(mess string, args ...interface{})
}

func (b builder) logf(mess string, args ...interface{}) {
	if b.logfn != nil {
		b.logfn(mess, args...)
	}
}

var defPattern = regexp.MustCompile(`^def (\S+):$`)

const entrySep = "=>"

// ParseSource builds a table from one named string of definitions.
func ParseSource(name, text string, opts ...Option) (*Table, error) {
	var in fileinput.Input
	in.Add(name, text)
	return Build(&in, opts...)
}

// LoadFiles builds one table from all of the given definition files.
func LoadFiles(paths []string, opts ...Option) (*Table, error) {
	var in fileinput.Input
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			for _, r := range in.Queue {
				r.(io.Closer).Close()
			}
			return nil, ReadError{path, err}
		}
		in.Queue = append(in.Queue, f)
	}
	return Build(&in, opts...)
}

// Build reads every line of in, and builds a table from its definitions.
//
// A definition starts with a "def NAME:" line, and continues with one
// "pattern => state" entry per line until a blank line or the end of its
// file. Any other line that starts with "def" is an error. All names are
// collected before any entry is compiled, so entries may refer to operators
// defined after them. Other lines outside of a definition are ignored.
func Build(in *fileinput.Input, opts ...Option) (*Table, error) {
	var b builder
	for _, opt := range opts {
		opt.apply(&b)
	}

	lines, err := in.ReadAll()
	if err != nil {
		return nil, ReadError{"definitions", err}
	}

	type heading struct {
		i    int
		name string
	}
	var headings []heading
	operators := make(map[string]bool)
	for i, line := range lines {
		if !strings.HasPrefix(line.Text, "def") {
			continue
		}
		m := defPattern.FindStringSubmatch(line.Text)
		if m == nil {
			return nil, SyntaxError{Location: line.Location, Err: ErrBadDefinition}
		}
		headings = append(headings, heading{i, m[1]})
		operators[m[1]] = true
	}

	var t Table
	for _, h := range headings {
		op := Operator{Name: h.name, Loc: lines[h.i].Location}
		for _, line := range lines[h.i+1:] {
			if line.Blank() || line.Name != op.Loc.Name {
				break
			}
			ent, err := parseEntry(line, operators)
			if err != nil {
				return nil, err
			}
			op.Entries = append(op.Entries, ent)
		}
		if t.Define(op) {
			b.logf("%v: redefined %v", op.Loc, op.Name)
		} else {
			b.logf("%v: defined %v with %v entries", op.Loc, op.Name, len(op.Entries))
		}
	}
	return &t, nil
}

func parseEntry(line fileinput.Line, operators map[string]bool) (Entry, error) {
	lineErr := func(column int, err error) error {
		return SyntaxError{Location: line.Location, Column: column, Err: err}
	}

	if strings.Count(line.Text, entrySep) != 1 {
		return Entry{}, lineErr(0, ErrBadEntry)
	}
	sep := strings.Index(line.Text, entrySep)

	// token columns are relative to each half, shift them back onto the line
	half := func(offset int, text string) ([]item.Item[token.Token], error) {
		toks, err := token.Tokenize("", text)
		if err != nil {
			return nil, lineErr(offset+1, err)
		}
		for i := range toks {
			toks[i].Pos.Column += offset
		}
		items, err := item.ParseTop(toks, item.Raw)
		if err != nil {
			return nil, located(lineErr, err)
		}
		return items, nil
	}

	patItems, err := half(0, line.Text[:sep])
	if err != nil {
		return Entry{}, err
	}
	stateItems, err := half(sep+len(entrySep), line.Text[sep+len(entrySep):])
	if err != nil {
		return Entry{}, err
	}

	pattern, err := CompilePattern(patItems, operators)
	if err != nil {
		return Entry{}, located(lineErr, err)
	}
	state, err := CompileState(stateItems, operators)
	if err != nil {
		return Entry{}, located(lineErr, err)
	}

	ent, err := NewEntry(pattern, state)
	if err != nil {
		return Entry{}, lineErr(0, err)
	}
	ent.Loc = line.Location
	return ent, nil
}

// located unwraps a token position, if any, into a line column.
func located(lineErr func(int, error) error, err error) error {
	if posErr, ok := err.(item.PosError); ok {
		return lineErr(posErr.Token.Pos.Column, posErr.Err)
	}
	if bracketErr, ok := err.(item.BracketError); ok {
		return lineErr(bracketErr.Open.Pos.Column, err)
	}
	return lineErr(0, err)
}
