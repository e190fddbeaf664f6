package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrPageRead is returned when a page's geometry cannot be retrieved or
	// a detector fails on it. No partial tree is returned.
	ErrPageRead = errors.New("layout: page read failed")

	// ErrInconsistent is returned when an internal invariant is violated,
	// such as margin expansion failing to converge.
	ErrInconsistent = errors.New("layout: engine consistency violated")
)

// PageError records the 1-based page a failure belongs to
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
