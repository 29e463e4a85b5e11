package moderation

import "context"

// Platform abstracts the social network's moderation surface. Implementations
// talk to the real Graph API; tests substitute fakes.
type Platform interface {
	// Hide makes a comment invisible to everyone except its author.
	Hide(ctx context.Context, commentID string) error
	// Unhide restores a previously hidden comment.
	Unhide(ctx context.Context, commentID string) error
	// Delete permanently removes a comment.
	Delete(ctx context.Context, commentID string) error
}

// ToxicityReport is the outcome of toxicity classification.
type ToxicityReport struct {
	Toxic       bool
	Score       float64
	MaxSeverity float64
	Category    string
	Keywords    []string
	Recommended Action
}

// SpamReport is the outcome of spam classification.
type SpamReport struct {
	Spam     bool
	Patterns []string
}

// ToxicityDetector classifies a cleaned comment for toxic content.
type ToxicityDetector interface {
	Detect(ctx context.Context, cleaned string) (ToxicityReport, error)
}

// SpamDetector classifies a raw comment for spam. Detection runs on the
// original text because cleaning strips the links and digits spam rules
// match on.
type SpamDetector interface {
	Detect(ctx context.Context, original string) (SpamReport, error)
}
