package reconcile

import (
	"fmt"
	"strings"
)

// ValidationError reports draft problems found before any network call.
// The submit is rejected locally; nothing reaches the Trip Service.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "draft not ready to submit: " + strings.Join(e.Problems, "; ")
}

// StepError reports a submit that failed partway through its step
// sequence. Steps listed in Completed have already changed server state
// and are not rolled back; the draft is left untouched so the user can
// retry.
type StepError struct {
	Step      string
	Completed []string
	Err       error
}

func (e *StepError) Error() string {
	if len(e.Completed) == 0 {
		return fmt.Sprintf("submit failed at step %q: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("submit failed at step %q after %s: %v",
		e.Step, strings.Join(e.Completed, ", "), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
