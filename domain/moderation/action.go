// Package moderation defines moderation actions, the audit log, and the
// platform abstraction used to enforce decisions on the social network.
package moderation

// Action is the moderation decision for a comment.
type Action string

// Action values.
const (
	ActionNone         Action = "none"
	ActionHide         Action = "hide"
	ActionDelete       Action = "delete"
	ActionManualReview Action = "manual_review"
	ActionRestore      Action = "restore"
)

// Severity thresholds for the toxicity action ladder. The highest single
// keyword severity in a comment is compared against these from highest to
// lowest.
const (
	SeverityDelete = 4.0
	SeverityHide   = 2.5
	SeverityReview = 1.5
)

// Moderation reasons recorded in the audit log.
const (
	ReasonSpam          = "Spam detected"
	ReasonToxic         = "Toxic content detected"
	ReasonManual        = "Manual moderation"
	ReasonManualRestore = "Manual restore"
)

// ActionForSeverity maps the highest matched keyword severity to a
// recommended action.
func ActionForSeverity(severity float64) Action {
	switch {
	case severity >= SeverityDelete:
		return ActionDelete
	case severity >= SeverityHide:
		return ActionHide
	case severity >= SeverityReview:
		return ActionManualReview
	default:
		return ActionNone
	}
}

// IsEnforceable reports whether the action results in a platform call when
// auto-moderation is enabled. Manual review and none are advisory only.
func (a Action) IsEnforceable() bool {
	return a == ActionHide || a == ActionDelete
}
