package history

import (
	"slices"
	"strings"

	"github.com/myrjola/fitplan/internal/workout"
)

// Order is the sort order of the history browser.
type Order string

const (
	OrderRecent Order = "recent"
	OrderOldest Order = "oldest"
)

// ParseOrder returns the order named s, defaulting to OrderRecent.
func ParseOrder(s string) Order {
	if Order(s) == OrderOldest {
		return OrderOldest
	}
	return OrderRecent
}

// Query selects and orders history entries.
type Query struct {
	// Filter is matched case-insensitively against the plan name, the day focus and the feedback.
	Filter string
	Order  Order
}

// Browse returns the entries matching q.Filter sorted by completion time. The input is not modified.
func Browse(entries []workout.HistoryEntry, q Query) []workout.HistoryEntry {
	needle := strings.ToLower(q.Filter)
	result := make([]workout.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		if needle == "" || matches(e, needle) {
			result = append(result, e)
		}
	}
	slices.SortStableFunc(result, func(a, b workout.HistoryEntry) int {
		if q.Order == OrderOldest {
			return a.CompletedAt.Compare(b.CompletedAt)
		}
		return b.CompletedAt.Compare(a.CompletedAt)
	})
	return result
}

func matches(e workout.HistoryEntry, needle string) bool {
	for _, field := range []string{e.PlanName, e.Day.Focus, e.Feedback} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
