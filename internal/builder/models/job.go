package models

import (
	"time"

	"github.com/google/uuid"
)

// Job is an open position sourced from the recruiting pipeline. Jobs are
// read-only from the editor's perspective.
type Job struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Title           string
	WorkPolicy      string
	Location        string
	Department      string
	EmploymentType  string
	ExperienceLevel string
	JobType         string
	SalaryRange     string
	Slug            string
	Description     string
	PostedAt        time.Time
	CreatedAt       time.Time
}

// JobFilter is the set of criteria a candidate can apply to a company's job
// list. A criterion is active when it is non-empty and not the "all"
// sentinel.
type JobFilter struct {
	Search         string
	Location       string
	Department     string
	EmploymentType string
	WorkPolicy     string
}

// FilterOptions are the enumerable facet values offered to candidates,
// derived from the company's full job list.
type FilterOptions struct {
	Locations       []string `json:"locations"`
	Departments     []string `json:"departments"`
	EmploymentTypes []string `json:"employmentTypes"`
	WorkPolicies    []string `json:"workPolicies"`
}
