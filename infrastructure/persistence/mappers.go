package persistence

import (
	"encoding/json"
	"time"

	"github.com/pagepulse/pagepulse/domain/chat"
	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/domain/rules"
)

// AnalysisMapper maps between domain Analysis and persistence AnalysisModel.
type AnalysisMapper struct{}

// ToDomain converts an AnalysisModel to a domain Analysis.
func (m AnalysisMapper) ToDomain(e AnalysisModel) comment.Analysis {
	var keywords []string
	if len(e.Keywords) > 0 {
		_ = json.Unmarshal(e.Keywords, &keywords)
	}

	var metadata comment.Metadata
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return comment.ReconstructAnalysis(
		e.ID,
		e.CommentID,
		e.PageID,
		e.Message,
		e.CleanedMessage,
		comment.Sentiment(e.Sentiment),
		e.Score,
		e.Confidence,
		keywords,
		e.Language,
		metadata,
		e.IsSpam,
		e.IsDuplicate,
		e.DuplicateOf,
		e.IsToxic,
		e.ToxicCategory,
		e.ToxicScore,
		moderation.Action(e.ModerationAction),
		e.ModeratedAt,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Analysis to an AnalysisModel.
func (m AnalysisMapper) ToModel(a comment.Analysis) AnalysisModel {
	keywords, _ := json.Marshal(a.Keywords())
	metadata, _ := json.Marshal(a.Metadata())

	return AnalysisModel{
		ID:               a.ID(),
		CommentID:        a.CommentID(),
		PageID:           a.PageID(),
		Message:          a.Message(),
		CleanedMessage:   a.CleanedMessage(),
		Sentiment:        string(a.Sentiment()),
		Score:            a.Score(),
		Confidence:       a.Confidence(),
		Keywords:         keywords,
		Language:         a.Language(),
		Metadata:         metadata,
		IsSpam:           a.IsSpam(),
		IsDuplicate:      a.IsDuplicate(),
		DuplicateOf:      a.DuplicateOf(),
		IsToxic:          a.IsToxic(),
		ToxicCategory:    a.ToxicCategory(),
		ToxicScore:       a.ToxicScore(),
		ModerationAction: string(a.ModerationAction()),
		ModeratedAt:      a.ModeratedAt(),
		CreatedAt:        a.CreatedAt(),
		UpdatedAt:        a.UpdatedAt(),
	}
}

// ModerationLogMapper maps between domain Log and persistence ModerationLogModel.
type ModerationLogMapper struct{}

// ToDomain converts a ModerationLogModel to a domain Log.
func (m ModerationLogMapper) ToDomain(e ModerationLogModel) moderation.Log {
	return moderation.ReconstructLog(
		e.ID,
		e.CommentID,
		moderation.Action(e.Action),
		e.Reason,
		e.Succeeded,
		e.ErrorMsg,
		e.CreatedAt,
	)
}

// ToModel converts a domain Log to a ModerationLogModel.
func (m ModerationLogMapper) ToModel(l moderation.Log) ModerationLogModel {
	return ModerationLogModel{
		ID:        l.ID(),
		CommentID: l.CommentID(),
		Action:    string(l.Action()),
		Reason:    l.Reason(),
		Succeeded: l.Succeeded(),
		ErrorMsg:  l.ErrorMsg(),
		CreatedAt: l.CreatedAt(),
	}
}

// SpamPatternMapper maps between domain SpamPattern and persistence SpamPatternModel.
type SpamPatternMapper struct{}

// ToDomain converts a SpamPatternModel to a domain SpamPattern.
func (m SpamPatternMapper) ToDomain(e SpamPatternModel) rules.SpamPattern {
	return rules.ReconstructSpamPattern(e.ID, rules.PatternType(e.Type), e.Value, e.Active, e.CreatedAt)
}

// ToModel converts a domain SpamPattern to a SpamPatternModel.
func (m SpamPatternMapper) ToModel(p rules.SpamPattern) SpamPatternModel {
	return SpamPatternModel{
		ID:        p.ID(),
		Type:      string(p.Type()),
		Value:     p.Value(),
		Active:    p.Active(),
		CreatedAt: p.CreatedAt(),
	}
}

// ToxicKeywordMapper maps between domain ToxicKeyword and persistence ToxicKeywordModel.
type ToxicKeywordMapper struct{}

// ToDomain converts a ToxicKeywordModel to a domain ToxicKeyword.
func (m ToxicKeywordMapper) ToDomain(e ToxicKeywordModel) rules.ToxicKeyword {
	return rules.ReconstructToxicKeyword(e.ID, e.Keyword, e.Category, e.Severity, e.Active)
}

// ToModel converts a domain ToxicKeyword to a ToxicKeywordModel.
func (m ToxicKeywordMapper) ToModel(k rules.ToxicKeyword) ToxicKeywordModel {
	return ToxicKeywordModel{
		ID:       k.ID(),
		Keyword:  k.Keyword(),
		Category: k.Category(),
		Severity: k.Severity(),
		Active:   k.Active(),
	}
}

// SentimentKeywordMapper maps between domain SentimentKeyword and persistence SentimentKeywordModel.
type SentimentKeywordMapper struct{}

// ToDomain converts a SentimentKeywordModel to a domain SentimentKeyword.
func (m SentimentKeywordMapper) ToDomain(e SentimentKeywordModel) rules.SentimentKeyword {
	return rules.ReconstructSentimentKeyword(e.ID, e.Keyword, rules.SentimentLabel(e.Sentiment), e.Weight, e.Category, e.Active)
}

// ToModel converts a domain SentimentKeyword to a SentimentKeywordModel.
func (m SentimentKeywordMapper) ToModel(k rules.SentimentKeyword) SentimentKeywordModel {
	return SentimentKeywordModel{
		ID:        k.ID(),
		Keyword:   k.Keyword(),
		Sentiment: string(k.Sentiment()),
		Weight:    k.Weight(),
		Category:  k.Category(),
		Active:    k.Active(),
	}
}

// PostMapper maps between domain Post and persistence PostModel.
type PostMapper struct{}

// ToDomain converts a PostModel to a domain Post.
func (m PostMapper) ToDomain(e PostModel) rag.Post {
	return rag.NewPost(e.ID, e.Title, e.Content, e.Likes, e.Comments, e.Shares, e.PublishedAt)
}

// ToModel converts a domain Post to a PostModel.
func (m PostMapper) ToModel(p rag.Post) PostModel {
	now := time.Now().UTC()
	return PostModel{
		ID:          p.ID(),
		Title:       p.Title(),
		Content:     p.Content(),
		Likes:       p.Likes(),
		Comments:    p.Comments(),
		Shares:      p.Shares(),
		PublishedAt: p.PublishedAt(),
		UpdatedAt:   now,
	}
}

// ResponseMapper maps between domain Response and persistence ResponseModel.
type ResponseMapper struct{}

// ToDomain converts a ResponseModel to a domain Response.
func (m ResponseMapper) ToDomain(e ResponseModel) rag.Response {
	return rag.ReconstructResponse(e.ID, e.Keyword, e.Response, e.Active)
}

// ToModel converts a domain Response to a ResponseModel.
func (m ResponseMapper) ToModel(r rag.Response) ResponseModel {
	return ResponseModel{
		ID:        r.ID(),
		Keyword:   r.Keyword(),
		Response:  r.Response(),
		Active:    r.Active(),
		UpdatedAt: time.Now().UTC(),
	}
}

// ExperimentMapper maps between domain Experiment and persistence ExperimentModel.
type ExperimentMapper struct{}

// ToDomain converts an ExperimentModel to a domain Experiment.
func (m ExperimentMapper) ToDomain(e ExperimentModel) rag.Experiment {
	var variants []rag.Variant
	if len(e.Variants) > 0 {
		_ = json.Unmarshal(e.Variants, &variants)
	}
	return rag.ReconstructExperiment(e.ID, e.Name, e.Status, variants)
}

// ToModel converts a domain Experiment to an ExperimentModel.
func (m ExperimentMapper) ToModel(x rag.Experiment) ExperimentModel {
	variants, _ := json.Marshal(x.Variants())
	return ExperimentModel{
		ID:        x.ID(),
		Name:      x.Name(),
		Status:    x.Status(),
		Variants:  variants,
		UpdatedAt: time.Now().UTC(),
	}
}

// TurnMapper maps between domain Turn and persistence TurnModel.
type TurnMapper struct{}

// ToDomain converts a TurnModel to a domain Turn.
func (m TurnMapper) ToDomain(e TurnModel) chat.Turn {
	return chat.ReconstructTurn(e.ID, e.UserID, chat.Role(e.Role), e.Content, e.CreatedAt)
}

// ToModel converts a domain Turn to a TurnModel.
func (m TurnMapper) ToModel(t chat.Turn) TurnModel {
	return TurnModel{
		ID:        t.ID(),
		UserID:    t.UserID(),
		Role:      string(t.Role()),
		Content:   t.Content(),
		CreatedAt: t.CreatedAt(),
	}
}
