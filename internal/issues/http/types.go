package http

// createCommentRequest is the comment creation body. The userId falls
// back to the acting identity when omitted.
type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
	UserID  string `json:"userId"`
}
