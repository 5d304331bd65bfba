package planner

import (
	"context"
	"errors"
	"fmt"

	"plan2read/internal/gateway"
	"plan2read/internal/plan"
)

var (
	ErrValidation  = errors.New("invalid input")
	ErrConflict    = errors.New("time conflict")
	ErrUnsupported = errors.New("not yet supported")
)

// ValidationError is raised locally; the request never reaches the
// backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + " " + e.Reason
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError names the existing session a candidate overlaps.
type ConflictError struct {
	With plan.Session
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps %q on %s %s-%s", e.With.Subject, e.With.DayOfWeek, e.With.StartTime, e.With.EndTime)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// PartialShareError reports a publish whose public header was created
// but whose sessions were not copied. The header stays visible.
type PartialShareError struct {
	ScheduleID string
	Err        error
}

func (e *PartialShareError) Error() string {
	return fmt.Sprintf("schedule %s published without sessions: %v", e.ScheduleID, e.Err)
}

func (e *PartialShareError) Unwrap() error { return e.Err }

// UserMessage turns any error from this package or the gateway into a
// sentence fit for display.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var (
		partial   *PartialShareError
		bad       *ValidationError
		conflict  *ConflictError
		transport *gateway.TransportError
		remote    *gateway.RemoteError
	)
	switch {
	case errors.As(err, &partial):
		return "The schedule was shared, but its sessions could not be copied: " + UserMessage(partial.Err)
	case errors.As(err, &bad):
		return capitalize(bad.Error()) + "."
	case errors.As(err, &conflict):
		return fmt.Sprintf("This time overlaps with %q (%s-%s).", conflict.With.Subject, conflict.With.StartTime, conflict.With.EndTime)
	case errors.Is(err, ErrUnsupported):
		return "This action is not supported yet."
	case errors.Is(err, context.Canceled):
		return "The request was cancelled."
	case errors.Is(err, context.DeadlineExceeded):
		return "The server took too long to answer."
	case errors.Is(err, gateway.ErrNotFound):
		return "The item no longer exists."
	case errors.As(err, &transport):
		return "Could not reach the server. Please try again."
	case errors.As(err, &remote):
		return "The server rejected the request: " + remote.Message
	default:
		return "Something went wrong: " + err.Error()
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
