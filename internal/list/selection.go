package list

import (
	"context"
	"sync"
)

// Selection wraps a Controller with pick-one-row modal semantics: the
// lead, property and staff pickers on the create and edit screens.
//
// Opening loads the first page. Confirming stores the row, notifies the
// owner and closes. Closing without confirming leaves any earlier
// selection untouched, as does reopening.
type Selection[T any] struct {
	list     *Controller[T]
	onSelect func(T)

	mu       sync.Mutex
	open     bool
	selected *T
}

// NewSelection creates a selection around an existing controller.
// onSelect, when set, runs on each confirm with the chosen row.
func NewSelection[T any](ctrl *Controller[T], onSelect func(T)) *Selection[T] {
	return &Selection[T]{list: ctrl, onSelect: onSelect}
}

// List exposes the underlying controller for paging and searching
// while the modal is open.
func (s *Selection[T]) List() *Controller[T] {
	return s.list
}

// Open shows the modal and fetches the current page.
func (s *Selection[T]) Open(ctx context.Context) {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
	s.list.Refresh(ctx)
}

// Close hides the modal. Any existing selection is kept.
func (s *Selection[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Confirm records row as the selection, notifies the owner and closes
// the modal.
func (s *Selection[T]) Confirm(row T) {
	s.mu.Lock()
	s.selected = &row
	s.open = false
	s.mu.Unlock()

	if s.onSelect != nil {
		s.onSelect(row)
	}
}

// Clear discards the current selection.
func (s *Selection[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

// Selected returns the confirmed row, if any.
func (s *Selection[T]) Selected() (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		var zero T
		return zero, false
	}
	return *s.selected, true
}

// IsOpen reports whether the modal is showing.
func (s *Selection[T]) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}
