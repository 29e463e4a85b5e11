package v1

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagepulse/pagepulse"
	"github.com/pagepulse/pagepulse/domain/moderation"
	"github.com/pagepulse/pagepulse/infrastructure/api/middleware"
	"github.com/pagepulse/pagepulse/infrastructure/api/v1/dto"
)

// ModerationRouter handles moderation enforcement endpoints.
type ModerationRouter struct {
	client *pagepulse.Client
	logger *slog.Logger
}

// NewModerationRouter creates a new ModerationRouter.
func NewModerationRouter(client *pagepulse.Client) *ModerationRouter {
	return &ModerationRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for moderation endpoints.
func (r *ModerationRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/queue", r.Queue)
	router.Post("/batch", r.Batch)
	router.Get("/stats", r.Stats)
	router.Post("/{commentID}/hide", r.Hide)
	router.Post("/{commentID}/delete", r.Delete)
	router.Post("/{commentID}/restore", r.Restore)

	return router
}

// Queue handles GET /api/v1/moderation/queue: list flagged comments
// awaiting enforcement.
func (r *ModerationRouter) Queue(w http.ResponseWriter, req *http.Request) {
	pending, err := r.client.Actions.Queue(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.AnalysisListResponse{Data: make([]dto.AnalysisResponse, 0, len(pending))}
	for _, analysis := range pending {
		response.Data = append(response.Data, analysisToResponse(analysis))
	}

	middleware.WriteJSON(w, http.StatusOK, response)
}

// Batch handles POST /api/v1/moderation/batch: enforce the pending queue.
func (r *ModerationRouter) Batch(w http.ResponseWriter, req *http.Request) {
	result, err := r.client.Actions.Batch(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	failed := make([]dto.BatchFailureResponse, 0, len(result.Failed))
	for _, f := range result.Failed {
		failed = append(failed, dto.BatchFailureResponse{CommentID: f.CommentID, Error: f.Error})
	}
	succeeded := result.Succeeded
	if succeeded == nil {
		succeeded = []string{}
	}

	middleware.WriteJSON(w, http.StatusOK, dto.BatchResponse{
		Processed: result.Processed,
		Succeeded: succeeded,
		Failed:    failed,
	})
}

// Stats handles GET /api/v1/moderation/stats: moderation log aggregates.
func (r *ModerationRouter) Stats(w http.ResponseWriter, req *http.Request) {
	stats, err := r.client.Analytics.ModerationStats(req.Context(), sinceParam(req))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	byAction := make(map[string]int64, len(stats.ByAction))
	for action, count := range stats.ByAction {
		byAction[action] = count
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ModerationStatsResponse{
		Total:     stats.Total,
		Succeeded: stats.Succeeded,
		Failed:    stats.Failed,
		ByAction:  byAction,
	})
}

// Hide handles POST /api/v1/moderation/{commentID}/hide.
func (r *ModerationRouter) Hide(w http.ResponseWriter, req *http.Request) {
	r.manual(w, req, moderation.ActionHide)
}

// Delete handles POST /api/v1/moderation/{commentID}/delete.
func (r *ModerationRouter) Delete(w http.ResponseWriter, req *http.Request) {
	r.manual(w, req, moderation.ActionDelete)
}

// Restore handles POST /api/v1/moderation/{commentID}/restore.
func (r *ModerationRouter) Restore(w http.ResponseWriter, req *http.Request) {
	commentID := chi.URLParam(req, "commentID")
	if err := r.client.Actions.Restore(req.Context(), commentID); err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, dto.ActionResponse{
		CommentID: commentID,
		Action:    string(moderation.ActionRestore),
	})
}

func (r *ModerationRouter) manual(w http.ResponseWriter, req *http.Request, action moderation.Action) {
	commentID := chi.URLParam(req, "commentID")

	// The reason body is optional for manual actions.
	var body dto.ActionRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	reason := body.Reason
	if reason == "" {
		reason = moderation.ReasonManual
	}

	var err error
	switch action {
	case moderation.ActionDelete:
		err = r.client.Actions.Delete(req.Context(), commentID, reason)
	default:
		err = r.client.Actions.Hide(req.Context(), commentID, reason)
	}
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ActionResponse{
		CommentID: commentID,
		Action:    string(action),
	})
}
