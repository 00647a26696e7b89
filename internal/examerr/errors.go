// Package examerr defines the typed domain errors shared by the content,
// workflow and service layers. Handlers translate these into API error codes.
package examerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conditions that carry no extra payload.
var (
	// ErrNotFound signals that the requested exam (or record) does not exist.
	ErrNotFound = errors.New("exam not found")

	// ErrMissingReason signals a rejection attempt without a non-blank reason.
	ErrMissingReason = errors.New("rejection requires a non-empty reason")

	// ErrCannotDeletePublished signals a delete attempt on an approved or
	// published exam. The exam must be unpublished and withdrawn first.
	ErrCannotDeletePublished = errors.New("cannot delete an approved or published exam")

	// ErrConflict signals that the exam was modified concurrently and the
	// caller's version stamp is stale.
	ErrConflict = errors.New("exam was modified concurrently")

	// ErrForbidden signals that the actor's role or ownership does not permit
	// the attempted operation.
	ErrForbidden = errors.New("actor is not permitted to perform this operation")
)

// Violation describes one broken content invariant. Path points at the exact
// location inside the skill content (e.g. "parts[1].questions[2].options[3]").
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ValidationFailed is returned when exam content fails invariant checks,
// carrying every violation so the author can fix all of them at once.
type ValidationFailed struct {
	Violations []Violation
}

func (e *ValidationFailed) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("content validation failed: %s", strings.Join(msgs, "; "))
}

// InvalidStateTransition is returned when a lifecycle action is not legal
// from the exam's current status.
type InvalidStateTransition struct {
	From      string
	Attempted string
}

func (e *InvalidStateTransition) Error() string {
	return fmt.Sprintf("cannot %s an exam in status %s", e.Attempted, e.From)
}

// IndexOutOfRange is returned when a part or question index does not exist
// in the targeted content.
type IndexOutOfRange struct {
	Kind  string // "part", "question", ...
	Index int
}

func (e *IndexOutOfRange) Error() string {
	return fmt.Sprintf("%s index %d is out of range", e.Kind, e.Index)
}
