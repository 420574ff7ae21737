package memory

import (
	"time"

	"github.com/google/uuid"

	issuedomain "github.com/maintain-ai/maintain-backend/internal/issues/domain"
	techdomain "github.com/maintain-ai/maintain-backend/internal/technicians/domain"
	userdomain "github.com/maintain-ai/maintain-backend/internal/users/domain"
)

// seedLocked populates the fixed demo dataset: two users, three
// technicians and three issues. The reset endpoint restores exactly
// this state. Caller must hold the write lock.
func (s *Store) seedLocked() {
	now := time.Now()

	admin := userdomain.User{
		ID:               uuid.New().String(),
		Username:         "admin",
		Email:            "admin@maintain.ai",
		Role:             userdomain.RoleAdmin,
		CredibilityScore: 9,
		FirebaseUID:      "admin-firebase-uid",
		CreatedAt:        now,
	}
	regular := userdomain.User{
		ID:               uuid.New().String(),
		Username:         "user",
		Email:            "user@maintain.ai",
		Role:             userdomain.RoleUser,
		CredibilityScore: 7,
		FirebaseUID:      "user-firebase-uid",
		CreatedAt:        now,
	}
	s.users[admin.ID] = admin
	s.users[regular.ID] = regular

	plumber := s.createTechnicianLocked(techdomain.Technician{
		Name:      "John Smith",
		Specialty: "Plumbing",
		Status:    techdomain.StatusAvailable,
		Phone:     "+1-555-0101",
		Email:     "john@maintain.ai",
		CreatedAt: now,
	})
	electrician := s.createTechnicianLocked(techdomain.Technician{
		Name:      "Lisa Garcia",
		Specialty: "Electrical",
		Status:    techdomain.StatusBusy,
		Phone:     "+1-555-0102",
		Email:     "lisa@maintain.ai",
		CreatedAt: now,
	})
	s.createTechnicianLocked(techdomain.Technician{
		Name:      "Tom Wilson",
		Specialty: "General",
		Status:    techdomain.StatusAvailable,
		Phone:     "+1-555-0103",
		Email:     "tom@maintain.ai",
		CreatedAt: now,
	})

	demoIssues := []issuedomain.MaintenanceIssue{
		{
			Title: "Water leak in Building A hallway",
			Description: "Major water leak in the hallway near Room 315. Water is spreading rapidly " +
				"and affecting multiple units. Urgent attention needed!",
			Category:             "plumbing",
			Severity:             issuedomain.SeverityHigh,
			Status:               issuedomain.StatusInProgress,
			Progress:             75,
			Location:             "Building A, Floor 3",
			ImageURLs:            []string{"/sample-images/Water-leaking-into-hallway.jpg"},
			ReporterID:           regular.ID,
			AssignedTechnicianID: plumber.ID,
			AIAnalysis: &issuedomain.AIAnalysis{
				Category: "Plumbing Emergency",
				Severity: "High",
				Reasoning: "Water damage can spread quickly and cause structural damage. Immediate " +
					"response required to prevent further property damage and potential safety hazards.",
			},
			Upvotes:   24,
			CreatedAt: now.Add(-2 * time.Hour),
			UpdatedAt: now,
		},
		{
			Title: "Flickering lights in library",
			Description: "Flickering lights in the main reading area. Affecting multiple study areas " +
				"and causing distraction for students.",
			Category:             "electrical",
			Severity:             issuedomain.SeverityMedium,
			Status:               issuedomain.StatusAssigned,
			Progress:             30,
			Location:             "Library Building",
			ImageURLs:            []string{"/sample-images/flickering-light-bulb.jpg"},
			ReporterID:           admin.ID,
			AssignedTechnicianID: electrician.ID,
			AIAnalysis: &issuedomain.AIAnalysis{
				Category: "Electrical Maintenance",
				Severity: "Medium",
				Reasoning: "Electrical issues affecting productivity but not immediately dangerous. " +
					"Should be scheduled within 24 hours to prevent potential disruption to daily operations.",
			},
			Upvotes:   12,
			CreatedAt: now.Add(-4 * time.Hour),
			UpdatedAt: now,
		},
		{
			Title: "Paint peeling in cafeteria",
			Description: "Paint peeling on the wall near the entrance. Not urgent but affects the " +
				"appearance of the space.",
			Category:   "cosmetic",
			Severity:   issuedomain.SeverityLow,
			Status:     issuedomain.StatusOpen,
			Progress:   10,
			Location:   "Cafeteria",
			ImageURLs:  []string{"/sample-images/paint-peeling-on-wall.jpg"},
			ReporterID: regular.ID,
			AIAnalysis: &issuedomain.AIAnalysis{
				Category: "Cosmetic/Paint",
				Severity: "Low",
				Reasoning: "Cosmetic issue that can be scheduled for routine maintenance within 2 weeks. " +
					"Affects appearance but poses no immediate safety concerns.",
			},
			Upvotes:   6,
			CreatedAt: now.Add(-24 * time.Hour),
			UpdatedAt: now,
		},
	}

	for _, iss := range demoIssues {
		iss.ID = uuid.New().String()
		s.nextSeq++
		s.seq[iss.ID] = s.nextSeq
		s.issues[iss.ID] = iss
	}
}
