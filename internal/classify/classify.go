package classify

import (
	"strings"

	"workhours/worklog"
)

// Conflict pairs a candidate with the stored entry that already holds its
// (name, date) slot but differs in times or comment.
type Conflict struct {
	Candidate worklog.Entry
	Existing  worklog.Entry
}

type Result struct {
	ToAdd      []worklog.Entry
	Conflicts  []Conflict
	Duplicates int
}

// Entries splits candidates by the outcome logging them would have against
// existing. Accepted candidates occupy their slot for later candidates in
// the same batch.
func Entries(candidates, existing []worklog.Entry, caseSensitive bool) Result {
	result := Result{
		ToAdd:     make([]worklog.Entry, 0, len(candidates)),
		Conflicts: make([]Conflict, 0),
	}

	taken := make(map[slot]worklog.Entry, len(existing)+len(candidates))
	for _, entry := range existing {
		taken[slotOf(entry, caseSensitive)] = entry
	}

	for _, candidate := range candidates {
		key := slotOf(candidate, caseSensitive)
		current, ok := taken[key]
		switch {
		case !ok:
			taken[key] = candidate
			result.ToAdd = append(result.ToAdd, candidate)
		case Equivalent(current, candidate):
			result.Duplicates++
		default:
			result.Conflicts = append(result.Conflicts, Conflict{Candidate: candidate, Existing: current})
		}
	}

	return result
}

// Equivalent reports whether two entries record the same shift.
func Equivalent(a, b worklog.Entry) bool {
	return a.StartTime == b.StartTime &&
		a.EndTime == b.EndTime &&
		strings.TrimSpace(a.Comment) == strings.TrimSpace(b.Comment)
}

type slot struct {
	name string
	date string
}

func slotOf(entry worklog.Entry, caseSensitive bool) slot {
	name := strings.TrimSpace(entry.Name)
	if !caseSensitive {
		name = strings.ToLower(name)
	}
	return slot{name: name, date: entry.Date}
}
