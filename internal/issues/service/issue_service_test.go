package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maintain-ai/maintain-backend/internal/issues/domain"
	"github.com/maintain-ai/maintain-backend/internal/storage/memory"
)

func newTestService(t *testing.T) (*IssueService, *memory.Store, string) {
	t.Helper()
	store := memory.NewStore()
	reporter, err := store.GetUserByUsername("user")
	require.NoError(t, err)
	return NewIssueService(store), store, reporter.ID
}

func intptr(n int) *int { return &n }

func TestCreateIssue_ServerAssignsLifecycleFields(t *testing.T) {
	svc, _, reporterID := newTestService(t)

	created, err := svc.CreateIssue(&domain.CreateIssueRequest{
		Title:       "Dripping faucet",
		Description: "Faucet in room 210 drips constantly",
		Category:    "plumbing",
		Severity:    domain.SeverityHigh,
		ReporterID:  reporterID,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusOpen, created.Status)
	assert.Equal(t, 0, created.Progress)
	assert.Equal(t, 0, created.Upvotes)
	assert.NotNil(t, created.ImageURLs)
	assert.Empty(t, created.ImageURLs)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateIssue_ValidationFailures(t *testing.T) {
	svc, store, reporterID := newTestService(t)

	cases := []struct {
		name  string
		req   domain.CreateIssueRequest
		field string
	}{
		{
			name:  "missing title",
			req:   domain.CreateIssueRequest{Description: "d", Category: "c", Severity: "low", ReporterID: reporterID},
			field: "title",
		},
		{
			name:  "missing description",
			req:   domain.CreateIssueRequest{Title: "t", Category: "c", Severity: "low", ReporterID: reporterID},
			field: "description",
		},
		{
			name:  "bad severity",
			req:   domain.CreateIssueRequest{Title: "t", Description: "d", Category: "c", Severity: "extreme", ReporterID: reporterID},
			field: "severity",
		},
		{
			name:  "unknown reporter",
			req:   domain.CreateIssueRequest{Title: "t", Description: "d", Category: "c", Severity: "low", ReporterID: "ghost"},
			field: "reporterId",
		},
		{
			name: "unknown technician",
			req: domain.CreateIssueRequest{
				Title: "t", Description: "d", Category: "c", Severity: "low",
				ReporterID: reporterID, AssignedTechnicianID: "ghost-tech",
			},
			field: "assignedTechnicianId",
		},
	}

	before := len(store.ListIssues())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateIssue(&tc.req)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
	assert.Len(t, store.ListIssues(), before, "failed creates must not persist")
}

func TestCreateIssue_AttachedAnalysisSyncsCategoryAndSeverity(t *testing.T) {
	svc, _, reporterID := newTestService(t)

	created, err := svc.CreateIssue(&domain.CreateIssueRequest{
		Title:       "Sparking outlet",
		Description: "Outlet sparks when plugging in",
		Category:    "general",
		Severity:    domain.SeverityLow,
		ReporterID:  reporterID,
		AIAnalysis: &domain.AIAnalysis{
			Category:  "Electrical",
			Severity:  "HIGH",
			Reasoning: "Sparking outlets are a fire hazard",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Electrical", created.Category)
	assert.Equal(t, domain.SeverityHigh, created.Severity)
	require.NotNil(t, created.AIAnalysis)
	assert.Equal(t, "HIGH", created.AIAnalysis.Severity)
}

func TestUpdateIssue_StatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{domain.StatusOpen, domain.StatusAssigned, true},
		{domain.StatusAssigned, domain.StatusInProgress, true},
		{domain.StatusOpen, domain.StatusResolved, true},
		{domain.StatusAssigned, domain.StatusResolved, true},
		{domain.StatusInProgress, domain.StatusResolved, true},
		{domain.StatusOpen, domain.StatusOpen, true},
		{domain.StatusOpen, domain.StatusInProgress, false},
		{domain.StatusResolved, domain.StatusOpen, false},
		{domain.StatusResolved, domain.StatusInProgress, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"_to_"+tc.to, func(t *testing.T) {
			svc, store, reporterID := newTestService(t)
			seeded := store.CreateIssue(domain.MaintenanceIssue{
				Title: "t", Description: "d", Category: "c",
				Severity: domain.SeverityLow, Status: tc.from,
				ReporterID: reporterID,
				CreatedAt:  time.Now(), UpdatedAt: time.Now(),
			})

			updated, err := svc.UpdateIssue(seeded.ID, &domain.UpdateIssueRequest{Status: &tc.to})
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				current, gerr := store.GetIssue(seeded.ID)
				require.NoError(t, gerr)
				assert.Equal(t, tc.from, current.Status)
			}
		})
	}
}

func TestUpdateIssue_PartialMerge(t *testing.T) {
	svc, store, _ := newTestService(t)
	id := store.ListIssues()[0].ID
	before, err := store.GetIssue(id)
	require.NoError(t, err)

	updated, err := svc.UpdateIssue(id, &domain.UpdateIssueRequest{
		Progress: intptr(80),
	})
	require.NoError(t, err)

	assert.Equal(t, 80, updated.Progress)
	assert.Equal(t, before.Title, updated.Title)
	assert.Equal(t, before.Status, updated.Status)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt) || updated.UpdatedAt.Equal(before.UpdatedAt))
	assert.Equal(t, before.CreatedAt, updated.CreatedAt)
}

func TestUpdateIssue_RejectsOutOfRangeProgress(t *testing.T) {
	svc, store, _ := newTestService(t)
	id := store.ListIssues()[0].ID

	for _, p := range []int{-1, 101} {
		_, err := svc.UpdateIssue(id, &domain.UpdateIssueRequest{Progress: intptr(p)})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "progress")
	}
}

func TestUpdateIssue_UnknownIssue(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.UpdateIssue("missing", &domain.UpdateIssueRequest{Progress: intptr(10)})
	assert.ErrorIs(t, err, domain.ErrIssueNotFound)
}

func TestDeleteIssue_RemovesCommentsAndVotes(t *testing.T) {
	svc, store, reporterID := newTestService(t)
	id := store.ListIssues()[0].ID

	_, err := svc.CreateComment(id, "checking this today", reporterID)
	require.NoError(t, err)
	_, err = svc.ToggleUpvote(id, reporterID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteIssue(id))
	assert.ErrorIs(t, svc.DeleteIssue(id), domain.ErrIssueNotFound)
	assert.Empty(t, svc.ListComments(id))
}

func TestToggleUpvote_RequiresUser(t *testing.T) {
	svc, store, _ := newTestService(t)
	id := store.ListIssues()[0].ID

	_, err := svc.ToggleUpvote(id, "  ")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "userId")
}

func TestListIssues_NewestFirstWithReporter(t *testing.T) {
	svc, store, reporterID := newTestService(t)

	newest := store.CreateIssue(domain.MaintenanceIssue{
		Title: "Newest", Description: "d", Category: "c",
		Severity: domain.SeverityLow, Status: domain.StatusOpen,
		ReporterID: reporterID,
		CreatedAt:  time.Now().Add(time.Hour), UpdatedAt: time.Now().Add(time.Hour),
	})

	feed := svc.ListIssues()
	require.NotEmpty(t, feed)
	assert.Equal(t, newest.ID, feed[0].ID)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].CreatedAt.After(feed[i-1].CreatedAt))
	}
	assert.Equal(t, "user", feed[0].Reporter.Username)
}

func TestListIssues_EqualTimestampsKeepCreationOrder(t *testing.T) {
	svc, store, reporterID := newTestService(t)
	store.Reset()

	ts := time.Now().Add(time.Hour)
	first := store.CreateIssue(domain.MaintenanceIssue{
		Title: "first of pair", Severity: domain.SeverityLow, Status: domain.StatusOpen,
		ReporterID: reporterID, CreatedAt: ts, UpdatedAt: ts,
	})
	second := store.CreateIssue(domain.MaintenanceIssue{
		Title: "second of pair", Severity: domain.SeverityLow, Status: domain.StatusOpen,
		ReporterID: reporterID, CreatedAt: ts, UpdatedAt: ts,
	})

	feed := svc.ListIssues()
	require.GreaterOrEqual(t, len(feed), 2)
	assert.Equal(t, first.ID, feed[0].ID)
	assert.Equal(t, second.ID, feed[1].ID)
}

func TestListIssues_MissingReporterGetsPlaceholder(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.CreateIssue(domain.MaintenanceIssue{
		Title: "Orphaned", Description: "d", Category: "c",
		Severity: domain.SeverityLow, Status: domain.StatusOpen,
		ReporterID: "deleted-user",
		CreatedAt:  time.Now().Add(time.Hour), UpdatedAt: time.Now().Add(time.Hour),
	})

	feed := svc.ListIssues()
	require.NotEmpty(t, feed)
	assert.Equal(t, "Unknown User", feed[0].Reporter.Username)
	assert.Equal(t, "deleted-user", feed[0].Reporter.ID)
	assert.Equal(t, 0, feed[0].Reporter.CredibilityScore)
}

func TestListIssuesByReporter_FiltersToOneUser(t *testing.T) {
	svc, store, reporterID := newTestService(t)

	mineBefore := len(svc.ListIssuesByReporter(reporterID))
	store.CreateIssue(domain.MaintenanceIssue{
		Title: "Mine", Severity: domain.SeverityLow, Status: domain.StatusOpen,
		ReporterID: reporterID, CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})
	store.CreateIssue(domain.MaintenanceIssue{
		Title: "Someone else's", Severity: domain.SeverityLow, Status: domain.StatusOpen,
		ReporterID: "other", CreatedAt: time.Now(), UpdatedAt: time.Now(),
	})

	mine := svc.ListIssuesByReporter(reporterID)
	assert.Len(t, mine, mineBefore+1)
	for _, iss := range mine {
		assert.Equal(t, reporterID, iss.ReporterID)
	}
}

func TestCreateComment_Validation(t *testing.T) {
	svc, store, reporterID := newTestService(t)
	id := store.ListIssues()[0].ID

	_, err := svc.CreateComment(id, "", reporterID)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "content")

	_, err = svc.CreateComment(id, "hello", "ghost")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "userId")

	_, err = svc.CreateComment("missing-issue", "hello", reporterID)
	assert.ErrorIs(t, err, domain.ErrIssueNotFound)

	c, err := svc.CreateComment(id, "hello", reporterID)
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, id, c.IssueID)
}
