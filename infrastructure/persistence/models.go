// Package persistence provides database storage implementations.
package persistence

import (
	"encoding/json"
	"time"
)

// AnalysisModel represents a comment analysis in the database.
// One row exists per comment; reprocessing upserts on comment_id.
type AnalysisModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	CommentID        string          `gorm:"column:comment_id;uniqueIndex;size:255"`
	PageID           string          `gorm:"column:page_id;index;size:255"`
	Message          string          `gorm:"column:message;type:text"`
	CleanedMessage   string          `gorm:"column:cleaned_message;type:text;index"`
	Sentiment        string          `gorm:"column:sentiment;index;size:32"`
	Score            float64         `gorm:"column:score"`
	Confidence       float64         `gorm:"column:confidence"`
	Keywords         json.RawMessage `gorm:"column:keywords;type:text"`
	Language         string          `gorm:"column:language;size:8"`
	Metadata         json.RawMessage `gorm:"column:metadata;type:text"`
	IsSpam           bool            `gorm:"column:is_spam;index;default:false"`
	IsDuplicate      bool            `gorm:"column:is_duplicate;default:false"`
	DuplicateOf      string          `gorm:"column:duplicate_of;size:255"`
	IsToxic          bool            `gorm:"column:is_toxic;index;default:false"`
	ToxicCategory    string          `gorm:"column:toxic_category;size:64"`
	ToxicScore       float64         `gorm:"column:toxic_score;index"`
	ModerationAction string          `gorm:"column:moderation_action;size:32"`
	ModeratedAt      *time.Time      `gorm:"column:moderated_at"`
	CreatedAt        time.Time       `gorm:"column:created_at;index"`
	UpdatedAt        time.Time       `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (AnalysisModel) TableName() string {
	return "comment_analyses"
}

// ModerationLogModel represents one moderation attempt in the database.
type ModerationLogModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CommentID string    `gorm:"column:comment_id;index;size:255"`
	Action    string    `gorm:"column:action;index;size:32"`
	Reason    string    `gorm:"column:reason;size:255"`
	Succeeded bool      `gorm:"column:succeeded;default:false"`
	ErrorMsg  string    `gorm:"column:error_msg;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (ModerationLogModel) TableName() string {
	return "moderation_logs"
}

// SpamPatternModel represents a spam detection rule in the database.
type SpamPatternModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Type      string    `gorm:"column:type;index;size:32"`
	Value     string    `gorm:"column:value;size:512"`
	Active    bool      `gorm:"column:active;index;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName returns the table name.
func (SpamPatternModel) TableName() string {
	return "spam_patterns"
}

// ToxicKeywordModel represents a toxicity rule in the database.
type ToxicKeywordModel struct {
	ID       int64   `gorm:"primaryKey;autoIncrement"`
	Keyword  string  `gorm:"column:keyword;index;size:255"`
	Category string  `gorm:"column:category;size:64"`
	Severity float64 `gorm:"column:severity"`
	Active   bool    `gorm:"column:active;index;default:true"`
}

// TableName returns the table name.
func (ToxicKeywordModel) TableName() string {
	return "toxic_keywords"
}

// SentimentKeywordModel represents a sentiment rule in the database.
type SentimentKeywordModel struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Keyword   string  `gorm:"column:keyword;index;size:255"`
	Sentiment string  `gorm:"column:sentiment;index;size:16"`
	Weight    float64 `gorm:"column:weight"`
	Category  string  `gorm:"column:category;size:64"`
	Active    bool    `gorm:"column:active;index;default:true"`
}

// TableName returns the table name.
func (SentimentKeywordModel) TableName() string {
	return "sentiment_keywords"
}

// PostModel represents a published page post in the database.
type PostModel struct {
	ID          string    `gorm:"column:id;primaryKey;size:255"`
	Title       string    `gorm:"column:title;size:512"`
	Content     string    `gorm:"column:content;type:text"`
	Likes       int       `gorm:"column:likes;default:0"`
	Comments    int       `gorm:"column:comments;default:0"`
	Shares      int       `gorm:"column:shares;default:0"`
	PublishedAt time.Time `gorm:"column:published_at;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (PostModel) TableName() string {
	return "page_posts"
}

// ResponseModel represents a curated keyword-answer pair in the database.
type ResponseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Keyword   string    `gorm:"column:keyword;index;size:255"`
	Response  string    `gorm:"column:response;type:text"`
	Active    bool      `gorm:"column:active;index;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name.
func (ResponseModel) TableName() string {
	return "curated_responses"
}

// ExperimentModel represents an A/B experiment in the database. Variants are
// stored as a JSON array.
type ExperimentModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;size:255"`
	Status    string          `gorm:"column:status;index;size:32"`
	Variants  json.RawMessage `gorm:"column:variants;type:text"`
	CreatedAt time.Time       `gorm:"column:created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;index"`
}

// TableName returns the table name.
func (ExperimentModel) TableName() string {
	return "ab_experiments"
}

// TurnModel represents one conversation turn in the database.
type TurnModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;index;size:255"`
	Role      string    `gorm:"column:role;size:16"`
	Content   string    `gorm:"column:content;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

// TableName returns the table name.
func (TurnModel) TableName() string {
	return "chat_turns"
}
