package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
)

const maxBodySize = 1 << 20

type authService interface {
	Register(ctx context.Context, username, password string) (*entity.User, error)
	Login(ctx context.Context, username, password string) (string, *entity.User, error)
	Authenticate(ctx context.Context, token string) (*entity.Identity, error)
	Logout(ctx context.Context, token string) error
}

type scoreService interface {
	Submit(ctx context.Context, userID int64, game string, score float64) (*entity.Score, error)
	MyStats(ctx context.Context, userID int64) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, game string, limit int) ([]entity.LeaderboardEntry, error)
}

type roomStats interface {
	Stats() tictactoe.Stats
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	validate *validator.Validate

	auth   authService
	scores scoreService
	rooms  roomStats
}

func newHandlers(logger *slog.Logger, auth authService, scores scoreService, rooms roomStats) *handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		auth:     auth,
		scores:   scores,
		rooms:    rooms,
	}
}

func (that *handlers) roomStats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, that.rooms.Stats())
}

// decode reads a JSON body into dst and validates it.
func (that *handlers) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}

	if err := that.validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid body: %w", err)
	}

	return nil
}

// writeServiceError maps known sentinels to their status; anything else is a 500 with fallback.
func (that *handlers) writeServiceError(w http.ResponseWriter, log *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperror.ErrUserExists):
		writeError(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, apperror.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, apperror.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, apperror.ErrInvalidScore):
		writeError(w, http.StatusBadRequest, "Missing game or score")
	case errors.Is(err, apperror.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	default:
		log.Error(fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
