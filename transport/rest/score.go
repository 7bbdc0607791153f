package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/arcade-backend/internal/service"
)

type scoreRequest struct {
	Game  string   `json:"game" validate:"required"`
	Score *float64 `json:"score" validate:"required"`
}

func (that *handlers) submitScore(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "submitScore")

	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req scoreRequest
	if err := that.decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing game or score")
		return
	}

	log.Debug("saving score", "userID", identity.UserID, "game", req.Game, "score", *req.Score)

	saved, err := that.scores.Submit(r.Context(), identity.UserID, req.Game, *req.Score)
	if err != nil {
		that.writeServiceError(w, log, err, "Failed to save score")
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (that *handlers) myStats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "myStats")

	identity, ok := identityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := that.scores.MyStats(r.Context(), identity.UserID)
	if err != nil {
		that.writeServiceError(w, log, err, "Failed to fetch stats")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (that *handlers) leaderboard(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "leaderboard")

	game := chi.URLParam(r, "game")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > service.MaxLeaderboardLimit {
			writeError(w, http.StatusBadRequest, "Invalid limit")
			return
		}

		limit = parsed
	}

	entries, err := that.scores.Leaderboard(r.Context(), game, limit)
	if err != nil {
		that.writeServiceError(w, log, err, "Failed to fetch leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
