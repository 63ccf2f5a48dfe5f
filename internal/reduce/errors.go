package reduce

import (
	"fmt"
	"strings"

	"github.com/jcorbin/filo/internal/item"
)

// UnknownOperatorError indicates a word that no operator is defined for.
type UnknownOperatorError struct {
	Word    string
	Suggest []string
}

func (err UnknownOperatorError) Error() string {
	if len(err.Suggest) > 0 {
		return fmt.Sprintf("unrecognized operator %v (did you mean %v?)",
			err.Word, strings.Join(err.Suggest, ", "))
	}
	return fmt.Sprintf("unrecognized operator %v", err.Word)
}

// NoMatchError indicates an operator invocation that none of the operator's
// entries matched.
type NoMatchError struct {
	Operator string
	Input    []item.Program
}

func (err NoMatchError) Error() string {
	const maxShown = 8
	input := err.Input
	more := ""
	if len(input) > maxShown {
		input = input[:maxShown]
		more = " ..."
	}
	return fmt.Sprintf("unmatched operator invocation %v [%v%v]", err.Operator, item.Format(input), more)
}

// UnboundVariableError indicates a state that refers to a variable that its
// entry's pattern did not bind.
type UnboundVariableError struct {
	Operator string
	Name     string
}

func (err UnboundVariableError) Error() string {
	return fmt.Sprintf("operator %v uses unbound variable %v", err.Operator, err.Name)
}

// StepLimitError indicates that a reduction ran for more than its step limit.
type StepLimitError struct {
	Limit int
}

func (err StepLimitError) Error() string {
	return fmt.Sprintf("reduction exceeded step limit of %v", err.Limit)
}

type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }
