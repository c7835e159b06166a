package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFinalized     = errors.New("wizard already submitted")
	ErrNotAtSummary  = errors.New("submission is only possible from the quotation summary")
	ErrSubmitToLeave = errors.New("the quotation summary can only be left by submitting or going back")
	ErrInvalidStep   = errors.New("invalid wizard step")
)

// IncompleteError reports the step whose guard failed and the fields it
// is missing.
type IncompleteError struct {
	Step    Step
	Missing []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("step %d (%s) incomplete: missing %s", int(e.Step), e.Step, strings.Join(e.Missing, ", "))
}
