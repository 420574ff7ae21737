package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	issuedomain "github.com/maintain-ai/maintain-backend/internal/issues/domain"
	techdomain "github.com/maintain-ai/maintain-backend/internal/technicians/domain"
	userdomain "github.com/maintain-ai/maintain-backend/internal/users/domain"
)

// Store is the authoritative in-memory home of every entity type.
// One mutex serializes all mutations, so every read-modify-write
// (partial updates, upvote recounts) happens in a single critical
// section and readers always see fully applied records. All data is
// lost on process exit; that is the intended lifecycle.
type Store struct {
	mu sync.RWMutex

	users       map[string]userdomain.User
	issues      map[string]issuedomain.MaintenanceIssue
	technicians map[string]techdomain.Technician
	comments    map[string]issuedomain.Comment

	// upvotes is the source of truth for endorsement; the Upvotes
	// counter on an issue is a cached projection of the set size.
	upvotes map[string]map[string]struct{}

	// insertion sequence numbers give listings a deterministic order
	// and break createdAt ties in the feed.
	seq       map[string]uint64
	techOrder []string
	nextSeq   uint64
}

func NewStore() *Store {
	s := &Store{}
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
	return s
}

// Reset wipes every map and re-populates the fixed demo dataset
// (2 users, 3 technicians, 3 issues). Used by the operator-facing
// reset endpoint and for test isolation.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) resetLocked() {
	s.users = make(map[string]userdomain.User)
	s.issues = make(map[string]issuedomain.MaintenanceIssue)
	s.technicians = make(map[string]techdomain.Technician)
	s.comments = make(map[string]issuedomain.Comment)
	s.upvotes = make(map[string]map[string]struct{})
	s.seq = make(map[string]uint64)
	s.techOrder = nil
	s.nextSeq = 0
	s.seedLocked()
}

// Counts reports per-entity totals, used by the health endpoint.
type Counts struct {
	Users       int `json:"users"`
	Issues      int `json:"issues"`
	Technicians int `json:"technicians"`
	Comments    int `json:"comments"`
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{
		Users:       len(s.users),
		Issues:      len(s.issues),
		Technicians: len(s.technicians),
		Comments:    len(s.comments),
	}
}

// ---- Users ----

func (s *Store) GetUser(id string) (userdomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return userdomain.User{}, userdomain.ErrUserNotFound
	}
	return u, nil
}

func (s *Store) GetUserByUsername(username string) (userdomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return userdomain.User{}, userdomain.ErrUserNotFound
}

func (s *Store) GetUserByFirebaseUID(uid string) (userdomain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return userdomain.User{}, userdomain.ErrUserNotFound
}

// CreateUser assigns an id and stores the user, enforcing uniqueness of
// username, email and firebase uid.
func (s *Store) CreateUser(u userdomain.User) (userdomain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		switch {
		case existing.Username == u.Username:
			return userdomain.User{}, fmt.Errorf("username %q: %w", u.Username, userdomain.ErrDuplicateUser)
		case existing.Email == u.Email:
			return userdomain.User{}, fmt.Errorf("email %q: %w", u.Email, userdomain.ErrDuplicateUser)
		case existing.FirebaseUID == u.FirebaseUID:
			return userdomain.User{}, fmt.Errorf("firebaseUid %q: %w", u.FirebaseUID, userdomain.ErrDuplicateUser)
		}
	}

	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Store) ListUsers() []userdomain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]userdomain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}

// ---- Issues ----

func (s *Store) GetIssue(id string) (issuedomain.MaintenanceIssue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	iss, ok := s.issues[id]
	if !ok {
		return issuedomain.MaintenanceIssue{}, issuedomain.ErrIssueNotFound
	}
	return cloneIssue(iss), nil
}

// CreateIssue stores a fully-built issue record, assigning an id and an
// insertion sequence number. Defaulting of status/progress is the
// lifecycle service's job, not the store's.
func (s *Store) CreateIssue(iss issuedomain.MaintenanceIssue) issuedomain.MaintenanceIssue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if iss.ID == "" {
		iss.ID = uuid.New().String()
	}
	s.nextSeq++
	s.seq[iss.ID] = s.nextSeq
	s.issues[iss.ID] = cloneIssue(iss)
	return cloneIssue(iss)
}

// UpdateIssue applies mutate to the stored record under the write lock,
// so concurrent partial updates cannot interleave. The mutated record is
// written back only if mutate returns nil.
func (s *Store) UpdateIssue(id string, mutate func(*issuedomain.MaintenanceIssue) error) (issuedomain.MaintenanceIssue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iss, ok := s.issues[id]
	if !ok {
		return issuedomain.MaintenanceIssue{}, issuedomain.ErrIssueNotFound
	}

	updated := cloneIssue(iss)
	if err := mutate(&updated); err != nil {
		return issuedomain.MaintenanceIssue{}, err
	}
	updated.ID = id
	s.issues[id] = updated
	return cloneIssue(updated), nil
}

// DeleteIssue removes the issue and cascades its comments and upvote
// set, so no orphaned relations survive. Returns whether it existed.
func (s *Store) DeleteIssue(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.issues[id]; !ok {
		return false
	}
	delete(s.issues, id)
	delete(s.seq, id)
	delete(s.upvotes, id)
	for cid, c := range s.comments {
		if c.IssueID == id {
			delete(s.comments, cid)
		}
	}
	return true
}

// ListIssues returns a snapshot of every issue in insertion order.
// Callers own the copies; later store mutations are not reflected.
func (s *Store) ListIssues() []issuedomain.MaintenanceIssue {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]issuedomain.MaintenanceIssue, 0, len(s.issues))
	for _, iss := range s.issues {
		out = append(out, cloneIssue(iss))
	}
	sortBySeq(out, s.seq)
	return out
}

// ---- Upvotes ----

// ToggleUpvote flips the (issue, user) membership and recomputes the
// cached counter from the set size inside one critical section, so two
// concurrent toggles by different users can never lose an update.
func (s *Store) ToggleUpvote(issueID, userID string) (issuedomain.ToggleUpvoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	iss, ok := s.issues[issueID]
	if !ok {
		return issuedomain.ToggleUpvoteResult{}, issuedomain.ErrIssueNotFound
	}

	voters := s.upvotes[issueID]
	if voters == nil {
		voters = make(map[string]struct{})
		s.upvotes[issueID] = voters
	}

	_, wasUpvoted := voters[userID]
	if wasUpvoted {
		delete(voters, userID)
	} else {
		voters[userID] = struct{}{}
	}

	iss.Upvotes = len(voters)
	s.issues[issueID] = iss

	return issuedomain.ToggleUpvoteResult{
		Upvoted:  !wasUpvoted,
		NewCount: len(voters),
	}, nil
}

// ---- Technicians ----

func (s *Store) GetTechnician(id string) (techdomain.Technician, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.technicians[id]
	if !ok {
		return techdomain.Technician{}, techdomain.ErrTechnicianNotFound
	}
	return t, nil
}

func (s *Store) CreateTechnician(t techdomain.Technician) techdomain.Technician {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createTechnicianLocked(t)
}

func (s *Store) createTechnicianLocked(t techdomain.Technician) techdomain.Technician {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = techdomain.StatusAvailable
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	s.technicians[t.ID] = t
	s.techOrder = append(s.techOrder, t.ID)
	return t
}

func (s *Store) UpdateTechnician(id string, mutate func(*techdomain.Technician)) (techdomain.Technician, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.technicians[id]
	if !ok {
		return techdomain.Technician{}, techdomain.ErrTechnicianNotFound
	}
	mutate(&t)
	t.ID = id
	s.technicians[id] = t
	return t, nil
}

func (s *Store) ListTechnicians() []techdomain.Technician {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]techdomain.Technician, 0, len(s.techOrder))
	for _, id := range s.techOrder {
		if t, ok := s.technicians[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ---- Comments ----

func (s *Store) CreateComment(c issuedomain.Comment) issuedomain.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.nextSeq++
	s.seq[c.ID] = s.nextSeq
	s.comments[c.ID] = c
	return c
}

// ListCommentsByIssue returns an issue's comments oldest first.
func (s *Store) ListCommentsByIssue(issueID string) []issuedomain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]issuedomain.Comment, 0)
	for _, c := range s.comments {
		if c.IssueID == issueID {
			out = append(out, c)
		}
	}
	sortCommentsBySeq(out, s.seq)
	return out
}

// ---- helpers ----

func cloneIssue(iss issuedomain.MaintenanceIssue) issuedomain.MaintenanceIssue {
	out := iss
	if iss.ImageURLs != nil {
		// keep empty slices non-nil so imageUrls always serializes as an array
		out.ImageURLs = append([]string{}, iss.ImageURLs...)
	}
	if iss.AIAnalysis != nil {
		analysis := *iss.AIAnalysis
		out.AIAnalysis = &analysis
	}
	return out
}

func sortBySeq(issues []issuedomain.MaintenanceIssue, seq map[string]uint64) {
	sort.SliceStable(issues, func(i, j int) bool {
		return seq[issues[i].ID] < seq[issues[j].ID]
	})
}

func sortCommentsBySeq(comments []issuedomain.Comment, seq map[string]uint64) {
	sort.SliceStable(comments, func(i, j int) bool {
		return seq[comments[i].ID] < seq[comments[j].ID]
	})
}
