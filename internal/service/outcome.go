package service

import (
	"github.com/set-night/invoicedash/internal/validation"
)

type OutcomeKind string

const (
	// OutcomeRedirect tells the boundary to navigate to Target.
	OutcomeRedirect OutcomeKind = "redirect"
	// OutcomeError carries a State to render next to the form.
	OutcomeError OutcomeKind = "error"
	// OutcomeDone means the mutation succeeded and no navigation follows.
	OutcomeDone OutcomeKind = "done"
)

// State is what a caller renders after a failed mutation.
type State struct {
	Errors  validation.FieldErrors `json:"errors,omitempty"`
	Message string                 `json:"message,omitempty"`
}

// Outcome is the result of an invoice mutation. Err is the classified cause
// of an error outcome; it is for logging and status mapping only and is never
// shown to the user.
type Outcome struct {
	Kind   OutcomeKind
	Target string
	State  State
	Err    error
}

func redirect(target string) Outcome {
	return Outcome{Kind: OutcomeRedirect, Target: target}
}

func done() Outcome {
	return Outcome{Kind: OutcomeDone}
}

func failed(err error, message string, fieldErrors validation.FieldErrors) Outcome {
	return Outcome{
		Kind:  OutcomeError,
		State: State{Errors: fieldErrors, Message: message},
		Err:   err,
	}
}
