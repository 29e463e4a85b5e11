package dto

// ActionRequest is the body of manual moderation calls.
type ActionRequest struct {
	Reason string `json:"reason"`
}

// ActionResponse acknowledges an applied moderation action.
type ActionResponse struct {
	CommentID string `json:"comment_id"`
	Action    string `json:"action"`
}

// BatchFailureResponse names one comment a batch run could not moderate.
type BatchFailureResponse struct {
	CommentID string `json:"comment_id"`
	Error     string `json:"error"`
}

// BatchResponse reports a batch moderation run comment by comment.
type BatchResponse struct {
	Processed int                    `json:"processed"`
	Succeeded []string               `json:"succeeded"`
	Failed    []BatchFailureResponse `json:"failed"`
}

// ModerationStatsResponse is the JSON form of moderation log aggregates.
type ModerationStatsResponse struct {
	Total     int64            `json:"total"`
	Succeeded int64            `json:"succeeded"`
	Failed    int64            `json:"failed"`
	ByAction  map[string]int64 `json:"by_action"`
}
