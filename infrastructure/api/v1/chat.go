package v1

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pagepulse/pagepulse"
	"github.com/pagepulse/pagepulse/domain/rag"
	"github.com/pagepulse/pagepulse/infrastructure/api/middleware"
	"github.com/pagepulse/pagepulse/infrastructure/api/v1/dto"
)

// ChatRouter handles assistant reply and knowledge cache endpoints.
type ChatRouter struct {
	client *pagepulse.Client
	logger *slog.Logger
}

// NewChatRouter creates a new ChatRouter.
func NewChatRouter(client *pagepulse.Client) *ChatRouter {
	return &ChatRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for chat endpoints.
func (r *ChatRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/reply", r.Reply)
	router.Post("/knowledge/refresh", r.RefreshKnowledge)
	router.Get("/knowledge/stats", r.KnowledgeStats)

	return router
}

// Reply handles POST /api/v1/chat/reply: generate a grounded assistant reply.
func (r *ChatRouter) Reply(w http.ResponseWriter, req *http.Request) {
	var body dto.ReplyRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "invalid request body", err), r.logger)
		return
	}
	if body.UserID == "" || body.Message == "" {
		middleware.WriteError(w, req, middleware.NewAPIError(http.StatusBadRequest, "user_id and message are required", nil), r.logger)
		return
	}

	reply, err := r.client.Assistant.Reply(req.Context(), body.UserID, body.Message)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	documents := make([]dto.ReplyDocument, 0, len(reply.Documents))
	for _, scored := range reply.Documents {
		documents = append(documents, dto.ReplyDocument{
			Type:       string(scored.Document.Type()),
			ID:         scored.Document.ID(),
			Title:      scored.Document.Title(),
			Similarity: scored.Similarity,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, dto.ReplyResponse{
		Reply:     reply.Text,
		Fallback:  reply.Fallback,
		Documents: documents,
	})
}

// RefreshKnowledge handles POST /api/v1/chat/knowledge/refresh: rebuild the
// knowledge cache immediately instead of waiting for the TTL.
func (r *ChatRouter) RefreshKnowledge(w http.ResponseWriter, req *http.Request) {
	stats, err := r.client.Assistant.RefreshKnowledge(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, statsToResponse(stats))
}

// KnowledgeStats handles GET /api/v1/chat/knowledge/stats.
func (r *ChatRouter) KnowledgeStats(w http.ResponseWriter, req *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, statsToResponse(r.client.Assistant.KnowledgeStats()))
}

func statsToResponse(stats rag.CacheStats) dto.KnowledgeStatsResponse {
	return dto.KnowledgeStatsResponse{
		Posts:     stats.Posts,
		Responses: stats.Responses,
		Insights:  stats.Insights,
		Total:     stats.Total(),
		BuiltAt:   stats.BuiltAt,
		Fresh:     stats.Fresh,
	}
}
