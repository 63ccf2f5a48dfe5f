package item

import (
	"fmt"

	"github.com/jcorbin/filo/internal/token"
)

// LiteralError indicates a word that looks like a number, but that does not
// fit in 32 bits.
type LiteralError struct {
	Word string
	Err  error
}

func (err LiteralError) Error() string {
	return fmt.Sprintf("invalid literal %q: %v", err.Word, err.Err)
}

func (err LiteralError) Unwrap() error { return err.Err }

// BracketError indicates an opening bracket closed by the other kind, or
// never closed at all when Close is the zero token.
type BracketError struct {
	Open  token.Token
	Close token.Token
}

func (err BracketError) Error() string {
	if err.Close.Text == "" {
		return fmt.Sprintf("unclosed %q opened at %v", err.Open.Text, err.Open.Pos)
	}
	return fmt.Sprintf("inconsistent brackets: %q opened at %v closed by %q at %v",
		err.Open.Text, err.Open.Pos, err.Close.Text, err.Close.Pos)
}

// ExpectError indicates that a parse did not produce a single top level stack.
type ExpectError struct {
	Expected string
	Got      string
}

func (err ExpectError) Error() string {
	if err.Got == "" {
		return fmt.Sprintf("expected %v", err.Expected)
	}
	return fmt.Sprintf("expected %v, got %v", err.Expected, err.Got)
}

// PosError attaches a token position to an error.
type PosError struct {
	Token token.Token
	Err   error
}

func (err PosError) Error() string { return fmt.Sprintf("%v: %v", err.Token.Pos, err.Err) }
func (err PosError) Unwrap() error { return err.Err }
