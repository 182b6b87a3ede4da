package task

import "strings"

// FilterAll is the wildcard value for the status and priority filter axes.
const FilterAll = "all"

// View derives the displayable subset of a snapshot. A task is included
// iff its title contains query (case-insensitive; empty query matches
// everything) and it matches both categorical filters, each either
// FilterAll or one enumerated value. Snapshot order is preserved and the
// snapshot itself is never mutated.
func View(snapshot []Task, query, statusFilter, priorityFilter string) []Task {
	q := strings.ToLower(query)

	out := make([]Task, 0, len(snapshot))
	for _, t := range snapshot {
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		if statusFilter != FilterAll && string(t.Status) != statusFilter {
			continue
		}
		if priorityFilter != FilterAll && string(t.Priority) != priorityFilter {
			continue
		}
		out = append(out, t)
	}
	return out
}
