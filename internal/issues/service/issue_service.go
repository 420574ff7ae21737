package service

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/maintain-ai/maintain-backend/internal/issues/domain"
	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
	techdomain "github.com/maintain-ai/maintain-backend/internal/technicians/domain"
	userdomain "github.com/maintain-ai/maintain-backend/internal/users/domain"
)

// IssueService owns the issue lifecycle: creation defaults, partial
// updates with transition checks, upvote toggling and the denormalized
// feed views.
type IssueService struct {
	store *memory.Store
}

func NewIssueService(store *memory.Store) *IssueService {
	return &IssueService{store: store}
}

// CreateIssue validates the request and stores a new issue. Status,
// progress and upvote count are always server-assigned regardless of
// what the client sent.
func (s *IssueService) CreateIssue(req *domain.CreateIssueRequest) (domain.MaintenanceIssue, error) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(req.Title) == "" {
		verr.Add("title", "title is required")
	}
	if strings.TrimSpace(req.Description) == "" {
		verr.Add("description", "description is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		verr.Add("category", "category is required")
	}
	if req.Severity == "" {
		verr.Add("severity", "severity is required")
	} else if !domain.ValidSeverity(req.Severity) {
		verr.Addf("severity", "severity must be one of low, medium, high, critical")
	}
	if strings.TrimSpace(req.ReporterID) == "" {
		verr.Add("reporterId", "reporterId is required")
	} else if _, err := s.store.GetUser(req.ReporterID); errors.Is(err, userdomain.ErrUserNotFound) {
		verr.Addf("reporterId", "user %s does not exist", req.ReporterID)
	}
	if req.AssignedTechnicianID != "" {
		if _, err := s.store.GetTechnician(req.AssignedTechnicianID); errors.Is(err, techdomain.ErrTechnicianNotFound) {
			verr.Addf("assignedTechnicianId", "technician %s does not exist", req.AssignedTechnicianID)
		}
	}
	if verr.HasErrors() {
		return domain.MaintenanceIssue{}, verr
	}

	now := time.Now()
	iss := domain.MaintenanceIssue{
		Title:                req.Title,
		Description:          req.Description,
		Category:             req.Category,
		Severity:             req.Severity,
		Status:               domain.StatusOpen,
		Progress:             0,
		Location:             req.Location,
		ImageURLs:            req.ImageURLs,
		ReporterID:           req.ReporterID,
		AssignedTechnicianID: req.AssignedTechnicianID,
		Upvotes:              0,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if iss.ImageURLs == nil {
		iss.ImageURLs = []string{}
	}
	if req.AIAnalysis != nil {
		applyAnalysis(&iss, req.AIAnalysis)
	}

	return s.store.CreateIssue(iss), nil
}

func (s *IssueService) GetIssue(id string) (domain.MaintenanceIssue, error) {
	return s.store.GetIssue(id)
}

// UpdateIssue merges the provided fields over the existing record and
// refreshes updatedAt. Status changes go through the workflow state
// machine; illegal ones fail with ErrInvalidTransition.
func (s *IssueService) UpdateIssue(id string, req *domain.UpdateIssueRequest) (domain.MaintenanceIssue, error) {
	verr := domain.NewValidationError()
	if req.Severity != nil && !domain.ValidSeverity(*req.Severity) {
		verr.Add("severity", "severity must be one of low, medium, high, critical")
	}
	if req.Status != nil && !domain.ValidStatus(*req.Status) {
		verr.Add("status", "status must be one of open, assigned, in_progress, resolved")
	}
	if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
		verr.Add("progress", "progress must be between 0 and 100")
	}
	if req.AssignedTechnicianID != nil && *req.AssignedTechnicianID != "" {
		if _, err := s.store.GetTechnician(*req.AssignedTechnicianID); errors.Is(err, techdomain.ErrTechnicianNotFound) {
			verr.Addf("assignedTechnicianId", "technician %s does not exist", *req.AssignedTechnicianID)
		}
	}
	if verr.HasErrors() {
		return domain.MaintenanceIssue{}, verr
	}

	return s.store.UpdateIssue(id, func(iss *domain.MaintenanceIssue) error {
		if req.Status != nil {
			if !domain.CanTransition(iss.Status, *req.Status) {
				return domain.ErrInvalidTransition
			}
			iss.Status = *req.Status
		}
		if req.Title != nil {
			iss.Title = *req.Title
		}
		if req.Description != nil {
			iss.Description = *req.Description
		}
		if req.Category != nil {
			iss.Category = *req.Category
		}
		if req.Severity != nil {
			iss.Severity = *req.Severity
		}
		if req.Progress != nil {
			iss.Progress = *req.Progress
		}
		if req.Location != nil {
			iss.Location = *req.Location
		}
		if req.ImageURLs != nil {
			iss.ImageURLs = req.ImageURLs
		}
		if req.AssignedTechnicianID != nil {
			iss.AssignedTechnicianID = *req.AssignedTechnicianID
		}
		if req.AIAnalysis != nil {
			// Dual write: authoritative issue fields and the provenance
			// blob change together in this single critical section.
			applyAnalysis(iss, req.AIAnalysis)
		}
		iss.UpdatedAt = time.Now()
		return nil
	})
}

func (s *IssueService) DeleteIssue(id string) error {
	if !s.store.DeleteIssue(id) {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (s *IssueService) ToggleUpvote(issueID, userID string) (domain.ToggleUpvoteResult, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.ToggleUpvoteResult{}, domain.NewValidationError().Add("userId", "userId is required")
	}
	return s.store.ToggleUpvote(issueID, userID)
}

// ListIssues assembles the feed view: every issue with its reporter
// embedded, newest first. Feed consumers depend on this ordering.
func (s *IssueService) ListIssues() []domain.IssueWithReporter {
	return s.withReporters(s.store.ListIssues())
}

// ListIssuesByReporter is the "my issues" view: the same join filtered
// to one reporter, same ordering.
func (s *IssueService) ListIssuesByReporter(userID string) []domain.IssueWithReporter {
	all := s.store.ListIssues()
	mine := make([]domain.MaintenanceIssue, 0, len(all))
	for _, iss := range all {
		if iss.ReporterID == userID {
			mine = append(mine, iss)
		}
	}
	return s.withReporters(mine)
}

func (s *IssueService) withReporters(issues []domain.MaintenanceIssue) []domain.IssueWithReporter {
	out := make([]domain.IssueWithReporter, 0, len(issues))
	for _, iss := range issues {
		reporter, err := s.store.GetUser(iss.ReporterID)
		if err != nil {
			reporter = userdomain.PlaceholderUser(iss.ReporterID)
		}
		out = append(out, domain.IssueWithReporter{
			MaintenanceIssue: iss,
			Reporter:         reporter,
		})
	}
	// Input arrives in insertion order; the stable sort keeps that
	// order for issues created in the same instant.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ---- Comments ----

func (s *IssueService) ListComments(issueID string) []domain.Comment {
	return s.store.ListCommentsByIssue(issueID)
}

func (s *IssueService) CreateComment(issueID, content, userID string) (domain.Comment, error) {
	verr := domain.NewValidationError()
	if strings.TrimSpace(content) == "" {
		verr.Add("content", "content is required")
	}
	if strings.TrimSpace(userID) == "" {
		verr.Add("userId", "userId is required")
	} else if _, err := s.store.GetUser(userID); errors.Is(err, userdomain.ErrUserNotFound) {
		verr.Addf("userId", "user %s does not exist", userID)
	}
	if verr.HasErrors() {
		return domain.Comment{}, verr
	}
	if _, err := s.store.GetIssue(issueID); err != nil {
		return domain.Comment{}, err
	}

	return s.store.CreateComment(domain.Comment{
		Content:   content,
		IssueID:   issueID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}), nil
}

// applyAnalysis writes the classification's category and severity onto
// the issue's own fields and keeps the full result for display. The
// classifier reports severity upper-cased; the issue enum is lower-case.
func applyAnalysis(iss *domain.MaintenanceIssue, analysis *domain.AIAnalysis) {
	result := *analysis
	iss.AIAnalysis = &result
	if result.Category != "" {
		iss.Category = result.Category
	}
	if sev := strings.ToLower(result.Severity); domain.ValidSeverity(sev) {
		iss.Severity = sev
	}
}
