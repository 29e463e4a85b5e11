// Package dto defines the request and response bodies of the v1 HTTP API.
package dto

import "time"

// ProcessCommentRequest is the body of POST /comments.
type ProcessCommentRequest struct {
	CommentID string `json:"comment_id"`
	PageID    string `json:"page_id"`
	Message   string `json:"message"`
}

// AnalysisResponse is the JSON form of a comment analysis.
type AnalysisResponse struct {
	CommentID        string     `json:"comment_id"`
	PageID           string     `json:"page_id"`
	Message          string     `json:"message"`
	CleanedMessage   string     `json:"cleaned_message"`
	Sentiment        string     `json:"sentiment"`
	Score            float64    `json:"score"`
	Confidence       float64    `json:"confidence"`
	Keywords         []string   `json:"keywords"`
	Language         string     `json:"language"`
	IsSpam           bool       `json:"is_spam"`
	IsDuplicate      bool       `json:"is_duplicate"`
	DuplicateOf      string     `json:"duplicate_of,omitempty"`
	IsToxic          bool       `json:"is_toxic"`
	ToxicCategory    string     `json:"toxic_category,omitempty"`
	ToxicScore       float64    `json:"toxic_score"`
	ModerationAction string     `json:"moderation_action"`
	ModeratedAt      *time.Time `json:"moderated_at,omitempty"`
	ShouldReply      bool       `json:"should_reply"`
	CreatedAt        time.Time  `json:"created_at"`
}

// AnalysisListResponse wraps a list of analyses.
type AnalysisListResponse struct {
	Data []AnalysisResponse `json:"data"`
}
