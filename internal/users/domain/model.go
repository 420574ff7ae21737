package domain

import (
	"errors"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultCredibilityScore is assigned to new reporters until score
// adjustments exist.
const DefaultCredibilityScore = 7

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// User is a registered reporter or admin. Identity comes from Firebase;
// the record itself is immutable after creation except for credibility
// adjustments.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	Role             string    `json:"role"`
	CredibilityScore int       `json:"credibilityScore"`
	FirebaseUID      string    `json:"firebaseUid"`
	CreatedAt        time.Time `json:"createdAt"`
}

// PlaceholderUser is substituted in issue views when a reporter id no
// longer resolves, so a deleted account never breaks the feed.
func PlaceholderUser(id string) User {
	return User{
		ID:               id,
		Username:         "Unknown User",
		Email:            "unknown@maintain.ai",
		Role:             RoleUser,
		CredibilityScore: 0,
		FirebaseUID:      "unknown",
		CreatedAt:        time.Now(),
	}
}
