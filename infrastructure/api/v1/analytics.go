package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pagepulse/pagepulse"
	"github.com/pagepulse/pagepulse/infrastructure/api/middleware"
	"github.com/pagepulse/pagepulse/infrastructure/api/v1/dto"
)

// defaultWindowDays is the analytics lookback when the caller does not pass
// a "days" query parameter.
const defaultWindowDays = 7

// AnalyticsRouter handles aggregate reporting endpoints.
type AnalyticsRouter struct {
	client *pagepulse.Client
	logger *slog.Logger
}

// NewAnalyticsRouter creates a new AnalyticsRouter.
func NewAnalyticsRouter(client *pagepulse.Client) *AnalyticsRouter {
	return &AnalyticsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for analytics endpoints.
func (r *AnalyticsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/summary", r.Summary)
	router.Get("/trend", r.Trend)
	router.Get("/keywords", r.Keywords)
	router.Get("/toxic", r.ToxicForReview)

	return router
}

// Summary handles GET /api/v1/analytics/summary.
func (r *AnalyticsRouter) Summary(w http.ResponseWriter, req *http.Request) {
	summary, err := r.client.Analytics.Summary(req.Context(), req.URL.Query().Get("page_id"), sinceParam(req))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	bySentiment := make(map[string]int64, len(summary.BySentiment))
	for sentiment, count := range summary.BySentiment {
		bySentiment[string(sentiment)] = count
	}

	middleware.WriteJSON(w, http.StatusOK, dto.SummaryResponse{
		Total:          summary.Total,
		BySentiment:    bySentiment,
		SpamCount:      summary.SpamCount,
		ToxicCount:     summary.ToxicCount,
		DuplicateCount: summary.DuplicateCount,
		AvgScore:       summary.AvgScore,
		AvgConfidence:  summary.AvgConfidence,
	})
}

// Trend handles GET /api/v1/analytics/trend.
func (r *AnalyticsRouter) Trend(w http.ResponseWriter, req *http.Request) {
	points, err := r.client.Analytics.Trend(req.Context(), req.URL.Query().Get("page_id"), sinceParam(req))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.TrendResponse{Data: make([]dto.TrendPointResponse, 0, len(points))}
	for _, p := range points {
		response.Data = append(response.Data, dto.TrendPointResponse{
			Date:      p.Date,
			Sentiment: string(p.Sentiment),
			Count:     p.Count,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, response)
}

// Keywords handles GET /api/v1/analytics/keywords.
func (r *AnalyticsRouter) Keywords(w http.ResponseWriter, req *http.Request) {
	limit := intParam(req, "limit", 0)
	keywords, err := r.client.Analytics.TopKeywords(req.Context(), req.URL.Query().Get("page_id"), sinceParam(req), limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.KeywordsResponse{Data: make([]dto.KeywordCountResponse, 0, len(keywords))}
	for _, k := range keywords {
		response.Data = append(response.Data, dto.KeywordCountResponse{
			Keyword: k.Keyword,
			Count:   k.Count,
		})
	}

	middleware.WriteJSON(w, http.StatusOK, response)
}

// ToxicForReview handles GET /api/v1/analytics/toxic: unmoderated toxic
// comments for a human to look at.
func (r *AnalyticsRouter) ToxicForReview(w http.ResponseWriter, req *http.Request) {
	minSeverity := floatParam(req, "min_severity", 0)
	analyses, err := r.client.Analytics.ToxicForReview(req.Context(), minSeverity)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	response := dto.AnalysisListResponse{Data: make([]dto.AnalysisResponse, 0, len(analyses))}
	for _, analysis := range analyses {
		response.Data = append(response.Data, analysisToResponse(analysis))
	}

	middleware.WriteJSON(w, http.StatusOK, response)
}

// sinceParam converts the optional "days" query parameter into a cutoff time.
func sinceParam(req *http.Request) time.Time {
	days := intParam(req, "days", defaultWindowDays)
	if days <= 0 {
		days = defaultWindowDays
	}
	return time.Now().AddDate(0, 0, -days)
}

func intParam(req *http.Request, name string, fallback int) int {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func floatParam(req *http.Request, name string, fallback float64) float64 {
	raw := req.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}
