package rule

import (
	"errors"
	"fmt"

	"github.com/jcorbin/filo/internal/fileinput"
)

var (
	ErrBadDefinition       = errors.New("bad operator definition")
	ErrBadEntry            = errors.New(`bad entry, expected "pattern => state"`)
	ErrBlockInPattern      = errors.New("can't include blocks in patterns")
	ErrOperatorVariable    = errors.New("operator name used as variable")
	ErrDuplicateVariable   = errors.New("variable bound more than once")
	ErrListVariableInState = errors.New("list variables can't be declared in states")
	ErrUnboundVariable     = errors.New("state uses unbound variable")
)

// SyntaxError locates a problem with an operator definition. Column is 0 when
// the problem is with the line as a whole.
type SyntaxError struct {
	fileinput.Location
	Column int
	Err    error
}

func (err SyntaxError) Error() string {
	if err.Column > 0 {
		return fmt.Sprintf("parse error at %v:%v: %v", err.Location, err.Column, err.Err)
	}
	return fmt.Sprintf("parse error at %v: %v", err.Location, err.Err)
}

func (err SyntaxError) Unwrap() error { return err.Err }

// ReadError indicates that definition source could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (err ReadError) Error() string {
	return fmt.Sprintf("couldn't read file %v: %v", err.Path, err.Err)
}

func (err ReadError) Unwrap() error { return err.Err }
