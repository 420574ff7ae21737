package http

type createUserRequest struct {
	Username         string `json:"username" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Role             string `json:"role"`
	CredibilityScore int    `json:"credibilityScore"`
	FirebaseUID      string `json:"firebaseUid" binding:"required"`
}
