// Package jobs implements the candidate-facing job filter: a pure predicate
// over a company's job list plus the derivation of the facet values offered
// in the filter UI.
package jobs

import (
	"sort"
	"strings"

	"github.com/openhire/pagebuilder/internal/builder/models"
)

// sentinel is the "match everything" value a facet may carry.
const sentinel = "all"

// active reports whether a categorical criterion constrains the result.
func active(value string) bool {
	return value != "" && value != sentinel
}

// Matches reports whether the job satisfies every active criterion in the
// filter. The free-text search is a case-insensitive substring test against
// the title or the department; categorical criteria are exact,
// case-sensitive equality tests. Criteria combine with AND.
func Matches(job models.Job, filter models.JobFilter) bool {
	if filter.Search != "" {
		term := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(job.Title), term) &&
			!strings.Contains(strings.ToLower(job.Department), term) {
			return false
		}
	}
	if active(filter.Location) && job.Location != filter.Location {
		return false
	}
	if active(filter.Department) && job.Department != filter.Department {
		return false
	}
	if active(filter.EmploymentType) && job.EmploymentType != filter.EmploymentType {
		return false
	}
	if active(filter.WorkPolicy) && job.WorkPolicy != filter.WorkPolicy {
		return false
	}
	return true
}

// Filter returns the subsequence of jobs matching the filter, preserving
// input order. An empty filter returns all jobs.
func Filter(all []models.Job, filter models.JobFilter) []models.Job {
	out := make([]models.Job, 0, len(all))
	for _, job := range all {
		if Matches(job, filter) {
			out = append(out, job)
		}
	}
	return out
}

// Options derives the facet values offered to candidates: the distinct
// non-empty values of each categorical field across the full job list,
// sorted ascending. Callers recompute this whenever the job list changes;
// nothing is cached.
func Options(all []models.Job) models.FilterOptions {
	return models.FilterOptions{
		Locations:       distinct(all, func(j models.Job) string { return j.Location }),
		Departments:     distinct(all, func(j models.Job) string { return j.Department }),
		EmploymentTypes: distinct(all, func(j models.Job) string { return j.EmploymentType }),
		WorkPolicies:    distinct(all, func(j models.Job) string { return j.WorkPolicy }),
	}
}

func distinct(all []models.Job, field func(models.Job) string) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, job := range all {
		v := field(job)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
