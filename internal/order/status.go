package order

import (
	"fmt"
	"strings"

	"kisan-be/internal/apperror"
)

type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

var statuses = []Status{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// Statuses lists every status in lifecycle order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, known := range statuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// ParseStatus accepts any known label, case-insensitively. A missing status
// reads as processing.
func ParseStatus(s string) (Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return StatusProcessing, nil
	}
	st := Status(s)
	if !st.Valid() {
		return "", apperror.Validation(
			fmt.Sprintf("unknown order status %q", s),
			map[string]string{"status": "must be one of processing, shipped, delivered, cancelled"},
		)
	}
	return st, nil
}

var ErrStatusRequired = apperror.Validation("invalid input", map[string]string{"status": "is required"})

// ParseTarget parses a requested new status. Unlike ParseStatus, a blank
// value is rejected rather than read as processing.
func ParseTarget(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return "", ErrStatusRequired
	}
	return ParseStatus(s)
}

// TransitionError reports a status change the policy does not allow.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Kind() apperror.Kind { return apperror.KindConflict }

type Policy string

const (
	// PolicyStrict follows the fulfillment lifecycle.
	PolicyStrict Policy = "strict"
	// PolicyPermissive lets a vendor set any known status at any time.
	PolicyPermissive Policy = "permissive"
)

func ParsePolicy(s string) Policy {
	if Policy(strings.ToLower(strings.TrimSpace(s))) == PolicyPermissive {
		return PolicyPermissive
	}
	return PolicyStrict
}

var strictTransitions = map[Status][]Status{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

// Allowed lists the statuses reachable from s under p.
func (p Policy) Allowed(from Status) []Status {
	if p == PolicyPermissive {
		out := make([]Status, 0, len(statuses)-1)
		for _, s := range statuses {
			if s != from {
				out = append(out, s)
			}
		}
		return out
	}
	next := strictTransitions[from]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// Transition validates from -> to and returns the new status.
func (p Policy) Transition(from, to Status) (Status, error) {
	if !to.Valid() {
		_, err := ParseStatus(string(to))
		return from, err
	}
	if from == "" {
		from = StatusProcessing
	}
	for _, next := range p.Allowed(from) {
		if next == to {
			return to, nil
		}
	}
	return from, &TransitionError{From: from, To: to}
}
