// Package listfilter holds the filter criteria and visible-collection state
// shared by every list screen.
package listfilter

import (
	"carrental/shared/timezone"
	"fmt"
	"strings"
	"time"
)

// All disables the status filter.
const All = "All"

const DateLayout = "2006-01-02"

type Criteria struct {
	Search string
	Status string
	From   *time.Time
	To     *time.Time
}

func (c Criteria) HasSearch() bool {
	return strings.TrimSpace(c.Search) != ""
}

// MatchesText is a case-insensitive substring match of the search text against
// any of fields. An empty search matches everything.
func (c Criteria) MatchesText(fields ...string) bool {
	if !c.HasSearch() {
		return true
	}

	needle := strings.ToLower(strings.TrimSpace(c.Search))

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return false
}

func (c Criteria) MatchesStatus(status string) bool {
	return c.Status == "" || c.Status == All || c.Status == status
}

// MatchesDate compares calendar dates, both bounds inclusive. A nil bound is open.
func (c Criteria) MatchesDate(t time.Time) bool {
	return c.matchesDay(timezone.DateOf(t))
}

// MatchesDay is MatchesDate for date-only fields.
func (c Criteria) MatchesDay(t time.Time) bool {
	return c.matchesDay(timezone.CalendarDate(t))
}

func (c Criteria) matchesDay(day time.Time) bool {
	if c.From != nil && day.Before(timezone.DateOf(*c.From)) {
		return false
	}

	if c.To != nil && day.After(timezone.DateOf(*c.To)) {
		return false
	}

	return true
}

// Apply keeps the items for which keep returns true. The result is never nil.
func Apply[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

// ParseDate reads a yyyy-mm-dd bound; an empty value is an open bound.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	t, err := timezone.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected yyyy-mm-dd: %w", value, err)
	}

	return &t, nil
}

// LastDays returns the range [today-days, today].
func LastDays(now time.Time, days int) (from, to *time.Time) {
	end := timezone.DateOf(now)
	start := end.AddDate(0, 0, -days)

	return &start, &end
}
