package dto

import "time"

// ReplyRequest is the body of POST /chat/reply.
type ReplyRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ReplyDocument describes one knowledge document a reply was grounded on.
type ReplyDocument struct {
	Type       string  `json:"type"`
	ID         string  `json:"id"`
	Title      string  `json:"title,omitempty"`
	Similarity float64 `json:"similarity"`
}

// ReplyResponse is the assistant's answer.
type ReplyResponse struct {
	Reply     string          `json:"reply"`
	Fallback  bool            `json:"fallback"`
	Documents []ReplyDocument `json:"documents"`
}

// KnowledgeStatsResponse describes the knowledge cache.
type KnowledgeStatsResponse struct {
	Posts     int       `json:"posts"`
	Responses int       `json:"responses"`
	Insights  int       `json:"insights"`
	Total     int       `json:"total"`
	BuiltAt   time.Time `json:"built_at"`
	Fresh     bool      `json:"fresh"`
}
