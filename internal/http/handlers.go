package http

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ahump20/blaze-data-gateway/internal/breaker"
	"github.com/ahump20/blaze-data-gateway/internal/cache"
	"github.com/ahump20/blaze-data-gateway/internal/domain"
	"github.com/ahump20/blaze-data-gateway/internal/gateway"
	"github.com/ahump20/blaze-data-gateway/internal/logging"
	"github.com/ahump20/blaze-data-gateway/internal/refresher"
	"github.com/ahump20/blaze-data-gateway/internal/timeutil"
)

// Gateway is the orchestrator surface the handlers need.
type Gateway interface {
	ExecuteGames(ctx context.Context, date string) ([]domain.Game, error)
	ExecuteTeamStats(ctx context.Context, team, season string) (domain.TeamStats, error)
	BreakerStatus() map[string]breaker.Status
	CacheStats() cache.Stats
	ClearCache(prefix string) int
}

type nowFunc func() time.Time

// Handler wires HTTP routes to the gateway.
type Handler struct {
	gw         Gateway
	logger     *slog.Logger
	now        nowFunc
	statusFn   func() refresher.Status
	adminToken string
}

// NewHandler constructs a Handler with defaults.
func NewHandler(gw Gateway, logger *slog.Logger, statusFn func() refresher.Status, adminToken string) *Handler {
	return &Handler{
		gw:         gw,
		logger:     logger,
		now:        time.Now,
		statusFn:   statusFn,
		adminToken: adminToken,
	}
}

// Health reports process liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on the refresher's recent health.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Games resolves the slate for a date (default: today, UTC).
func (h *Handler) Games(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = timeutil.FormatDate(h.now().UTC())
	} else if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}

	games, err := h.gw.ExecuteGames(r.Context(), date)
	if err != nil {
		h.writeGatewayError(w, r, err, logger)
		return
	}

	logging.Info(logger, "served games",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(games)),
	)
	writeJSON(w, http.StatusOK, domain.GamesResponse{Date: date, Games: games}, logger)
}

var seasonPattern = regexp.MustCompile(`^\d{4}$`)

// TeamStats resolves one team's season stat line.
func (h *Handler) TeamStats(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)

	team := strings.TrimSpace(chi.URLParam(r, "team"))
	if team == "" {
		writeError(w, r, http.StatusBadRequest, "missing team", logger)
		return
	}

	season := strings.TrimSpace(r.URL.Query().Get("season"))
	if season == "" {
		season = h.now().UTC().Format("2006")
	} else if !seasonPattern.MatchString(season) {
		writeError(w, r, http.StatusBadRequest, "invalid season (expected YYYY)", logger)
		return
	}

	stats, err := h.gw.ExecuteTeamStats(r.Context(), team, season)
	if err != nil {
		h.writeGatewayError(w, r, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, stats, logger)
}

// Breakers reports per-provider circuit state.
func (h *Handler) Breakers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"breakers": h.gw.BreakerStatus()}, h.logger)
}

// CacheStats reports cache occupancy.
func (h *Handler) CacheStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.gw.CacheStats(), h.logger)
}

// CacheClear evicts cache entries, optionally scoped to one provider.
// Guarded by the admin token; returns 401 when missing or wrong.
func (h *Handler) CacheClear(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized", slog.String(logging.FieldPath, r.URL.Path))
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}

	provider := strings.TrimSpace(r.URL.Query().Get("provider"))
	removed := h.gw.ClearCache(provider)

	logging.Info(logger, "cache cleared",
		slog.String(logging.FieldProvider, provider),
		slog.Int(logging.FieldCount, removed),
	)
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed}, logger)
}

func (h *Handler) authorize(r *http.Request) bool {
	if h.adminToken == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.adminToken
}

// writeGatewayError maps resolution failures to HTTP statuses. Exhausted
// failover surfaces as 502 with the per-provider trail so callers can see
// who was skipped and who failed.
func (h *Handler) writeGatewayError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if agg, ok := gateway.AsAggregate(err); ok {
		trail := make([]map[string]any, 0, len(agg.Trail))
		for _, entry := range agg.Trail {
			item := map[string]any{
				"provider": entry.Provider,
				"skipped":  entry.Skipped,
			}
			if entry.Err != nil {
				item["error"] = entry.Err.Error()
			}
			trail = append(trail, item)
		}
		logging.Warn(logger, "all providers failed",
			slog.String(logging.FieldOperation, agg.Operation),
			slog.Int(logging.FieldCount, len(agg.Trail)),
		)
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":     "all providers failed",
			"operation": agg.Operation,
			"trail":     trail,
		}, logger)
		return
	}
	if r.Context().Err() != nil {
		writeError(w, r, http.StatusServiceUnavailable, "request canceled", logger)
		return
	}
	logging.Error(logger, "gateway request failed", err)
	writeError(w, r, http.StatusBadGateway, "upstream failure", logger)
}
