// Package comment defines the comment analysis aggregate: sentiment,
// spam/toxicity/duplicate flags, and the moderation stamp.
package comment

import (
	"time"

	"github.com/pagepulse/pagepulse/domain/moderation"
)

// Metadata captures structural facts about the original comment text.
// Fields are exported because the struct is serialized as-is.
type Metadata struct {
	Length    int    `json:"length"`
	WordCount int    `json:"word_count"`
	HasEmoji  bool   `json:"has_emoji"`
	HasLink   bool   `json:"has_link"`
	HasTag    bool   `json:"has_tag"`
	Language  string `json:"language"`
}

// Analysis is the immutable result of running a comment through the
// moderation pipeline. Exactly one Analysis exists per comment; reprocessing
// replaces the previous row.
type Analysis struct {
	id               int64
	commentID        string
	pageID           string
	message          string
	cleanedMessage   string
	sentiment        Sentiment
	score            float64
	confidence       float64
	keywords         []string
	language         string
	metadata         Metadata
	isSpam           bool
	isDuplicate      bool
	duplicateOf      string
	isToxic          bool
	toxicCategory    string
	toxicScore       float64
	moderationAction moderation.Action
	moderatedAt      *time.Time
	createdAt        time.Time
	updatedAt        time.Time
}

// NewAnalysis creates an Analysis for a freshly received comment.
func NewAnalysis(commentID, pageID, message string) Analysis {
	now := time.Now().UTC()
	return Analysis{
		commentID:        commentID,
		pageID:           pageID,
		message:          message,
		sentiment:        SentimentNeutral,
		moderationAction: moderation.ActionNone,
		createdAt:        now,
		updatedAt:        now,
	}
}

// ReconstructAnalysis rebuilds an Analysis from persisted state.
func ReconstructAnalysis(
	id int64,
	commentID, pageID, message, cleanedMessage string,
	sentiment Sentiment,
	score, confidence float64,
	keywords []string,
	language string,
	metadata Metadata,
	isSpam, isDuplicate bool,
	duplicateOf string,
	isToxic bool,
	toxicCategory string,
	toxicScore float64,
	moderationAction moderation.Action,
	moderatedAt *time.Time,
	createdAt, updatedAt time.Time,
) Analysis {
	return Analysis{
		id:               id,
		commentID:        commentID,
		pageID:           pageID,
		message:          message,
		cleanedMessage:   cleanedMessage,
		sentiment:        sentiment,
		score:            score,
		confidence:       confidence,
		keywords:         copyStrings(keywords),
		language:         language,
		metadata:         metadata,
		isSpam:           isSpam,
		isDuplicate:      isDuplicate,
		duplicateOf:      duplicateOf,
		isToxic:          isToxic,
		toxicCategory:    toxicCategory,
		toxicScore:       toxicScore,
		moderationAction: moderationAction,
		moderatedAt:      moderatedAt,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ID returns the database identifier.
func (a Analysis) ID() int64 { return a.id }

// CommentID returns the platform comment identifier.
func (a Analysis) CommentID() string { return a.commentID }

// PageID returns the page the comment belongs to.
func (a Analysis) PageID() string { return a.pageID }

// Message returns the original comment text.
func (a Analysis) Message() string { return a.message }

// CleanedMessage returns the normalized comment text.
func (a Analysis) CleanedMessage() string { return a.cleanedMessage }

// Sentiment returns the classified sentiment.
func (a Analysis) Sentiment() Sentiment { return a.sentiment }

// Score returns the sentiment score in [-1, 1].
func (a Analysis) Score() float64 { return a.score }

// Confidence returns the classifier confidence in [0, 1].
func (a Analysis) Confidence() float64 { return a.confidence }

// Keywords returns the extracted keywords.
func (a Analysis) Keywords() []string { return copyStrings(a.keywords) }

// Language returns the detected language code.
func (a Analysis) Language() string { return a.language }

// Metadata returns structural facts about the comment text.
func (a Analysis) Metadata() Metadata { return a.metadata }

// IsSpam reports whether the comment was classified as spam.
func (a Analysis) IsSpam() bool { return a.isSpam }

// IsDuplicate reports whether the comment duplicates a recent one.
func (a Analysis) IsDuplicate() bool { return a.isDuplicate }

// DuplicateOf returns the comment ID this comment duplicates, if any.
func (a Analysis) DuplicateOf() string { return a.duplicateOf }

// IsToxic reports whether the comment was classified as toxic.
func (a Analysis) IsToxic() bool { return a.isToxic }

// ToxicCategory returns the first matched toxicity category.
func (a Analysis) ToxicCategory() string { return a.toxicCategory }

// ToxicScore returns the toxicity score in [0, 1].
func (a Analysis) ToxicScore() float64 { return a.toxicScore }

// ModerationAction returns the recommended or applied moderation action.
func (a Analysis) ModerationAction() moderation.Action { return a.moderationAction }

// ModeratedAt returns when a platform action was applied, or nil.
func (a Analysis) ModeratedAt() *time.Time { return a.moderatedAt }

// CreatedAt returns when the analysis was first stored.
func (a Analysis) CreatedAt() time.Time { return a.createdAt }

// UpdatedAt returns when the analysis was last modified.
func (a Analysis) UpdatedAt() time.Time { return a.updatedAt }

// NeedsAttention reports whether the comment should appear in the
// moderation queue: a toxic or spam verdict with an enforceable action
// that has not been applied yet.
func (a Analysis) NeedsAttention() bool {
	return (a.isToxic || a.isSpam) && a.moderationAction.IsEnforceable() && a.moderatedAt == nil
}

// ShouldReply reports whether the comment merits an automatic reply.
// Spam, toxic, and duplicate comments never get one.
func (a Analysis) ShouldReply() bool {
	return !a.isSpam && !a.isToxic && !a.isDuplicate
}

// WithText returns a copy with the normalized text fields set.
func (a Analysis) WithText(cleaned string, keywords []string, language string, metadata Metadata) Analysis {
	a.cleanedMessage = cleaned
	a.keywords = copyStrings(keywords)
	a.language = language
	a.metadata = metadata
	a.updatedAt = time.Now().UTC()
	return a
}

// WithSentiment returns a copy with sentiment classification applied.
func (a Analysis) WithSentiment(sentiment Sentiment, score, confidence float64) Analysis {
	a.sentiment = sentiment
	a.score = score
	a.confidence = confidence
	a.updatedAt = time.Now().UTC()
	return a
}

// WithSpam returns a copy flagged as spam.
func (a Analysis) WithSpam(action moderation.Action) Analysis {
	a.isSpam = true
	a.moderationAction = action
	a.updatedAt = time.Now().UTC()
	return a
}

// WithDuplicate returns a copy flagged as a duplicate of another comment.
func (a Analysis) WithDuplicate(originalID string) Analysis {
	a.isDuplicate = true
	a.duplicateOf = originalID
	a.updatedAt = time.Now().UTC()
	return a
}

// WithToxicity returns a copy flagged as toxic with the recommended action.
func (a Analysis) WithToxicity(category string, score float64, action moderation.Action) Analysis {
	a.isToxic = true
	a.toxicCategory = category
	a.toxicScore = score
	a.moderationAction = action
	a.updatedAt = time.Now().UTC()
	return a
}

// WithModerationAction returns a copy with the action replaced.
func (a Analysis) WithModerationAction(action moderation.Action) Analysis {
	a.moderationAction = action
	a.updatedAt = time.Now().UTC()
	return a
}

// WithModeratedAt returns a copy stamped with the enforcement time.
func (a Analysis) WithModeratedAt(t time.Time) Analysis {
	a.moderatedAt = &t
	a.updatedAt = time.Now().UTC()
	return a
}

func copyStrings(s []string) []string {
	if s == nil {
		return nil
	}
	cp := make([]string, len(s))
	copy(cp, s)
	return cp
}
