package listfilter

import (
	"fmt"
	"slices"
)

// View is the visible collection of one screen plus its selection and status line.
type View[T any] struct {
	id       func(T) int64
	visible  []T
	selected int64
	status   string
}

func NewView[T any](id func(T) int64) *View[T] {
	return &View[T]{
		id:      id,
		visible: []T{},
		status:  "Ready",
	}
}

// Replace swaps the visible collection. A selection that is no longer visible is cleared.
func (v *View[T]) Replace(items []T) {
	if items == nil {
		items = []T{}
	}

	v.visible = items

	if _, ok := v.Selected(); !ok {
		v.selected = 0
	}
}

func (v *View[T]) Visible() []T {
	return slices.Clone(v.visible)
}

func (v *View[T]) Count() int {
	return len(v.visible)
}

// CountWhere is recomputed on every call.
func (v *View[T]) CountWhere(pred func(T) bool) int {
	n := 0

	for _, item := range v.visible {
		if pred(item) {
			n++
		}
	}

	return n
}

// Select marks the visible row with the given id; it reports false when no such row is visible.
func (v *View[T]) Select(id int64) bool {
	for _, item := range v.visible {
		if v.id(item) == id {
			v.selected = id

			return true
		}
	}

	return false
}

func (v *View[T]) Selected() (T, bool) {
	var zero T

	if v.selected == 0 {
		return zero, false
	}

	for _, item := range v.visible {
		if v.id(item) == v.selected {
			return item, true
		}
	}

	return zero, false
}

func (v *View[T]) ClearSelection() {
	v.selected = 0
}

func (v *View[T]) SetStatus(format string, args ...any) {
	v.status = fmt.Sprintf(format, args...)
}

func (v *View[T]) Status() string {
	return v.status
}
