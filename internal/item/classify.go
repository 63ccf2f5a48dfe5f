package item

import (
	"regexp"
	"strconv"

	"github.com/jcorbin/filo/internal/token"
)

var (
	intPattern   = regexp.MustCompile(`^[0-9]+$`)
	floatPattern = regexp.MustCompile(`^[0-9]+\.[0-9]*$`)
)

// ClassifyWord classifies a bare word as an Int, Float, or Bool literal,
// falling through to a Word atom. Literal patterns are fully anchored, so a
// word like "123abc" is a Word.
func ClassifyWord(word string) (Atom, error) {
	switch {
	case intPattern.MatchString(word):
		n, err := strconv.ParseInt(word, 10, 32)
		if err != nil {
			return Atom{}, LiteralError{word, err}
		}
		return Atom{Value: Int(n)}, nil

	case floatPattern.MatchString(word):
		f, err := strconv.ParseFloat(word, 32)
		if err != nil {
			return Atom{}, LiteralError{word, err}
		}
		return Atom{Value: Float(f)}, nil

	case word == "true":
		return Atom{Value: Bool(true)}, nil

	case word == "false":
		return Atom{Value: Bool(false)}, nil
	}
	return Atom{Word: word}, nil
}

// Classify is ClassifyWord for a token, suitable for passing to Parse.
func Classify(tok token.Token) (Atom, error) {
	atom, err := ClassifyWord(tok.Text)
	if err != nil {
		return Atom{}, PosError{tok, err}
	}
	return atom, nil
}

// Raw keeps each token as its own atom, deferring classification.
func Raw(tok token.Token) (token.Token, error) { return tok, nil }
