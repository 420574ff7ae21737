package domain

import (
	"time"

	userdomain "github.com/maintain-ai/maintain-backend/internal/users/domain"
)

// AIAnalysis is the structured classification result attached to an
// issue, kept verbatim for provenance. The issue's own category/severity
// fields are the authoritative copies used for filtering and sorting.
type AIAnalysis struct {
	Domain        string  `json:"domain,omitempty"`
	Category      string  `json:"category,omitempty"`
	Urgency       string  `json:"urgency,omitempty"`
	Priority      string  `json:"priority,omitempty"`
	Severity      string  `json:"severity,omitempty"`
	Confidence    float64 `json:"confidence,omitempty"`
	Reasoning     string  `json:"reasoning,omitempty"`
	EstimatedCost string  `json:"estimatedCost,omitempty"`
	TimeToResolve string  `json:"timeToResolve,omitempty"`
	RiskLevel     string  `json:"riskLevel,omitempty"`
}

// MaintenanceIssue is a reported maintenance problem.
type MaintenanceIssue struct {
	ID                   string      `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Severity             string      `json:"severity"`
	Status               string      `json:"status"`
	Progress             int         `json:"progress"`
	Location             string      `json:"location,omitempty"`
	ImageURLs            []string    `json:"imageUrls"`
	ReporterID           string      `json:"reporterId"`
	AssignedTechnicianID string      `json:"assignedTechnicianId,omitempty"`
	AIAnalysis           *AIAnalysis `json:"aiAnalysis,omitempty"`
	Upvotes              int         `json:"upvotes"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// IssueWithReporter is the denormalized read model served by the feed.
type IssueWithReporter struct {
	MaintenanceIssue
	Reporter userdomain.User `json:"reporter"`
}

// Comment is a user remark on an issue.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	IssueID   string    `json:"issueId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateIssueRequest carries the client-supplied fields for a new issue.
// Status, progress and upvotes are always server-assigned.
type CreateIssueRequest struct {
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Category             string      `json:"category"`
	Severity             string      `json:"severity"`
	Location             string      `json:"location"`
	ImageURLs            []string    `json:"imageUrls"`
	ReporterID           string      `json:"reporterId"`
	AssignedTechnicianID string      `json:"assignedTechnicianId"`
	AIAnalysis           *AIAnalysis `json:"aiAnalysis"`
}

// UpdateIssueRequest is a partial update; nil fields are left untouched.
type UpdateIssueRequest struct {
	Title                *string     `json:"title"`
	Description          *string     `json:"description"`
	Category             *string     `json:"category"`
	Severity             *string     `json:"severity"`
	Status               *string     `json:"status"`
	Progress             *int        `json:"progress"`
	Location             *string     `json:"location"`
	ImageURLs            []string    `json:"imageUrls"`
	AssignedTechnicianID *string     `json:"assignedTechnicianId"`
	AIAnalysis           *AIAnalysis `json:"aiAnalysis"`
}

// ToggleUpvoteResult reports the membership state after a toggle.
type ToggleUpvoteResult struct {
	Upvoted  bool `json:"upvoted"`
	NewCount int  `json:"newCount"`
}
