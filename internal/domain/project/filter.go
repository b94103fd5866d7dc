package project

import (
	"fmt"
	"strings"
)

// StatusFilter selects projects by status. StatusAll disables the predicate.
type StatusFilter string

const StatusAll StatusFilter = "all"

// ParseStatusFilter accepts "all", "" or any project status.
func ParseStatusFilter(s string) (StatusFilter, error) {
	if s == "" || s == string(StatusAll) {
		return StatusAll, nil
	}
	if Status(s).Valid() {
		return StatusFilter(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Filter is the query applied to a board's project list.
type Filter struct {
	Query  string       `json:"query"`
	Status StatusFilter `json:"status"`
}

// Match reports whether p passes the filter.
func (f Filter) Match(p Project) bool {
	if f.Status != "" && f.Status != StatusAll && p.Status != Status(f.Status) {
		return false
	}
	if f.Query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Query))
}

// Result is the filtered view of a project list.
type Result struct {
	Projects []Project `json:"projects"`
	// Empty is set when nothing matched; callers render the empty state.
	Empty bool `json:"empty"`
}

// Apply returns the matching projects in their original order.
func (f Filter) Apply(projects []Project) Result {
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return Result{Projects: out, Empty: len(out) == 0}
}
