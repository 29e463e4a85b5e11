// Package v1 implements the versioned HTTP API routers.
package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagepulse/pagepulse"
	"github.com/pagepulse/pagepulse/domain/comment"
	"github.com/pagepulse/pagepulse/infrastructure/api/middleware"
	"github.com/pagepulse/pagepulse/infrastructure/api/v1/dto"
)

// CommentsRouter handles comment analysis endpoints.
type CommentsRouter struct {
	client *pagepulse.Client
	logger *slog.Logger
}

// NewCommentsRouter creates a new CommentsRouter.
func NewCommentsRouter(client *pagepulse.Client) *CommentsRouter {
	return &CommentsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for comment endpoints.
func (r *CommentsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", r.Process)
	router.Get("/{commentID}", r.Get)

	return router
}

// Process handles POST /api/v1/comments: run one comment through the
// analysis pipeline and return the stored verdict.
func (r *CommentsRouter) Process(w http.ResponseWriter, req *http.Request) {
	var body dto.ProcessCommentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if body.CommentID == "" || body.Message == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "comment_id and message are required", nil), r.logger)
		return
	}

	analysis, err := r.client.Moderation.Process(req.Context(), body.CommentID, body.PageID, body.Message)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analysisToResponse(analysis))
}

// Get handles GET /api/v1/comments/{commentID}: fetch a stored analysis.
func (r *CommentsRouter) Get(w http.ResponseWriter, req *http.Request) {
	commentID := chi.URLParam(req, "commentID")

	analysis, err := r.client.Moderation.ByCommentID(req.Context(), commentID)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, analysisToResponse(analysis))
}

func analysisToResponse(a comment.Analysis) dto.AnalysisResponse {
	return dto.AnalysisResponse{
		CommentID:        a.CommentID(),
		PageID:           a.PageID(),
		Message:          a.Message(),
		CleanedMessage:   a.CleanedMessage(),
		Sentiment:        string(a.Sentiment()),
		Score:            a.Score(),
		Confidence:       a.Confidence(),
		Keywords:         a.Keywords(),
		Language:         a.Language(),
		IsSpam:           a.IsSpam(),
		IsDuplicate:      a.IsDuplicate(),
		DuplicateOf:      a.DuplicateOf(),
		IsToxic:          a.IsToxic(),
		ToxicCategory:    a.ToxicCategory(),
		ToxicScore:       a.ToxicScore(),
		ModerationAction: string(a.ModerationAction()),
		ModeratedAt:      a.ModeratedAt(),
		ShouldReply:      a.ShouldReply(),
		CreatedAt:        a.CreatedAt(),
	}
}
