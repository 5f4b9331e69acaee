package mng

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when Build is called with a point set that
// cannot back a construction (currently: fewer than 2 points).
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("mng: invalid input: %s", e.Reason)
}

// ErrAllocation is returned when an internal allocation required to build
// the metric matrices or adjacency lists fails (e.g. n too large for the
// O(n^2) matrices to fit in addressable memory).
type ErrAllocation struct {
	Reason string
	cause  error
}

func (e *ErrAllocation) Error() string {
	return fmt.Sprintf("mng: allocation failed: %s", e.Reason)
}

func (e *ErrAllocation) Unwrap() error { return e.cause }

// ErrCoverInfeasible is returned when a per-vertex set cover fails its
// coverage post-condition (setcover.CoversAll) despite MinimumAdjacencyList's
// fallback step, which should make this unreachable under a true metric.
// Build treats it as an assertion failure rather than a signal to retry at a
// larger degree budget.
type ErrCoverInfeasible struct {
	Vertex uint32
}

func (e *ErrCoverInfeasible) Error() string {
	return fmt.Sprintf("mng: vertex %d has no feasible set cover", e.Vertex)
}

// ErrBudgetSearchExhausted is returned by Build when the exponential degree
// search exceeds MaxAttempts (see WithMaxAttempts) without finding a degree
// budget under which every vertex's set cover fits. This is a defensive
// ceiling: the reference construction loops forever, but a bounded API
// needs a way to report "this dataset needs more attempts than configured"
// rather than hang.
var ErrBudgetSearchExhausted = errors.New("mng: exponential degree search exhausted its attempt budget")

// errBudgetExceeded is an internal sentinel solveOpt's block dispatcher uses
// to short-circuit the current attempt once the total degree estimate is
// blown, without treating it as a hard failure of Build itself.
var errBudgetExceeded = errors.New("mng: degree budget exceeded for this attempt")
