// Package types provides shared type definitions used across esgcopilot packages.
// This package exists to break import cycles between store, copilot, and the CLI.
// Types in this package should be foundational data structures with no complex dependencies.
package types

import "time"

// =============================================================================
// CLOSED ENUMERATIONS
// =============================================================================

// Status tracks a question through the assessment workflow.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusVerified   Status = "verified"
)

// Valid reports whether s is one of the four workflow states.
func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusVerified:
		return true
	}
	return false
}

// Answered reports whether the status requires a non-empty value.
func (s Status) Answered() bool {
	return s == StatusCompleted || s == StatusVerified
}

// Category is one of the three ESG assessment pillars.
type Category string

const (
	CategoryEnvironment Category = "Environment"
	CategorySocial      Category = "Social"
	CategoryGovernance  Category = "Governance"
)

// Categories returns the pillars in display order.
func Categories() []Category {
	return []Category{CategoryEnvironment, CategorySocial, CategoryGovernance}
}

// Valid reports whether c is a known pillar.
func (c Category) Valid() bool {
	switch c {
	case CategoryEnvironment, CategorySocial, CategoryGovernance:
		return true
	}
	return false
}

// CompanySize buckets follow the VSME standard's SME size classes.
type CompanySize string

const (
	SizeMicro  CompanySize = "Micro"
	SizeSmall  CompanySize = "Small"
	SizeMedium CompanySize = "Medium"
)

// EvidenceType classifies an uploaded supporting document.
type EvidenceType string

const (
	EvidenceInvoice EvidenceType = "Invoice"
	EvidencePolicy  EvidenceType = "Policy"
	EvidenceReport  EvidenceType = "Report"
	EvidenceOther   EvidenceType = "Other"
)

// Valid reports whether t is a known document class.
func (t EvidenceType) Valid() bool {
	switch t {
	case EvidenceInvoice, EvidencePolicy, EvidenceReport, EvidenceOther:
		return true
	}
	return false
}

// Impact rates how much an action plan item moves the ESG needle.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Valid reports whether i is in the closed impact enumeration.
func (i Impact) Valid() bool {
	switch i {
	case ImpactHigh, ImpactMedium, ImpactLow:
		return true
	}
	return false
}

// Effort rates how hard an action plan item is to execute.
type Effort string

const (
	EffortHard   Effort = "Hard"
	EffortMedium Effort = "Medium"
	EffortEasy   Effort = "Easy"
)

// Valid reports whether e is in the closed effort enumeration.
func (e Effort) Valid() bool {
	switch e {
	case EffortHard, EffortMedium, EffortEasy:
		return true
	}
	return false
}

// ActionStatus tracks an action plan item across the board columns.
type ActionStatus string

const (
	ActionPlanned    ActionStatus = "Planned"
	ActionInProgress ActionStatus = "In Progress"
	ActionDone       ActionStatus = "Done"
)

// Valid reports whether s is in the closed action status enumeration.
func (s ActionStatus) Valid() bool {
	switch s {
	case ActionPlanned, ActionInProgress, ActionDone:
		return true
	}
	return false
}

// ChatRole identifies who produced a conversation turn.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// =============================================================================
// ENTITIES
// =============================================================================

// CompanyProfile is the singleton profile of the reporting company.
// It is replaced wholesale via the store's UpdateCompany; never deleted.
type CompanyProfile struct {
	Name          string      `json:"name"`
	Industry      string      `json:"industry"`
	Size          CompanySize `json:"size"`
	Location      string      `json:"location"`
	ReportingYear int         `json:"reportingYear"`
}

// Question is a single VSME assessment question.
//
// Value holds the respondent's answer as text; numeric answers are stored in
// their decimal representation and "" means no answer yet. A completed or
// verified question always carries a non-empty Value (store invariant).
type Question struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Topic       string   `json:"topic"`
	Text        string   `json:"text"`
	Description string   `json:"description"`
	Value       string   `json:"value"`
	Unit        string   `json:"unit,omitempty"`
	Status      Status   `json:"status"`

	// EvidenceIDs is an ordered set; every id references an existing
	// Evidence entity (the store cascades removals on evidence deletion).
	EvidenceIDs []string `json:"evidenceIds"`

	LastUpdated  string `json:"lastUpdated,omitempty"` // ISO date
	AISuggestion string `json:"aiSuggestion,omitempty"`
}

// HasEvidence reports whether the question references the given evidence id.
func (q Question) HasEvidence(id string) bool {
	for _, eid := range q.EvidenceIDs {
		if eid == id {
			return true
		}
	}
	return false
}

// Evidence is a supporting document uploaded by the user.
// RelatedQuestionID is a weak reference: it never cascades and is not
// validated against the question collection.
type Evidence struct {
	ID                string            `json:"id"`
	Filename          string            `json:"filename"`
	UploadDate        string            `json:"uploadDate"` // ISO date
	Type              EvidenceType      `json:"type"`
	RelatedQuestionID string            `json:"relatedQuestionId,omitempty"`
	ExtractedData     map[string]string `json:"extractedData,omitempty"`
	ConfidenceScore   float64           `json:"confidenceScore,omitempty"` // in [0,1]
}

// ActionPlanItem is a remediation task on the action board.
type ActionPlanItem struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Impact Impact       `json:"impact"`
	Effort Effort       `json:"effort"`
	Status ActionStatus `json:"status"`
}

// ChatMessage is one turn in the copilot conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Progress summarizes answer completion for the dashboard.
// A question counts as done when its status is completed or verified.
type Progress struct {
	Total      int
	Done       int
	ByCategory map[Category]CategoryProgress
}

// CategoryProgress is the per-pillar slice of Progress.
type CategoryProgress struct {
	Total int
	Done  int
}

// Percent returns the overall completion percentage, 0 when empty.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return p.Done * 100 / p.Total
}
