package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

const MaxLeaderboardLimit = 100

type ScoreService interface {
	Submit(ctx context.Context, userID int64, game string, score float64) (*entity.Score, error)
	MyStats(ctx context.Context, userID int64) ([]entity.GameStats, error)
	Leaderboard(ctx context.Context, game string, limit int) ([]entity.LeaderboardEntry, error)
}

type scoreRepo interface {
	Save(ctx context.Context, score *entity.Score) error
	SummaryByUser(ctx context.Context, userID int64) ([]entity.ScoreSummary, error)
	Top(ctx context.Context, game string, order entity.SortOrder, limit int) ([]entity.LeaderboardEntry, error)
}

type scoreService struct {
	scores       scoreRepo
	policy       entity.RankingPolicy
	defaultLimit int
}

func NewScoreService(scores scoreRepo, policy entity.RankingPolicy, defaultLimit int) ScoreService {
	return &scoreService{
		scores:       scores,
		policy:       policy,
		defaultLimit: defaultLimit,
	}
}

func (that *scoreService) Submit(ctx context.Context, userID int64, game string, score float64) (*entity.Score, error) {
	game = strings.TrimSpace(game)
	if game == "" {
		return nil, apperror.ErrInvalidScore
	}

	record := &entity.Score{
		UserID: userID,
		Game:   game,
		Score:  score,
	}

	if err := that.scores.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("could not save score: %w", err)
	}

	return record, nil
}

// MyStats reports the best score per game, the minimum for games where lower is better.
func (that *scoreService) MyStats(ctx context.Context, userID int64) ([]entity.GameStats, error) {
	summaries, err := that.scores.SummaryByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("could not get stats: %w", err)
	}

	stats := make([]entity.GameStats, 0, len(summaries))
	for _, summary := range summaries {
		best := summary.MaxScore
		if that.policy.LowerIsBetter(summary.Game) {
			best = summary.MinScore
		}

		stats = append(stats, entity.GameStats{
			Game:      summary.Game,
			BestScore: best,
			PlayCount: summary.PlayCount,
		})
	}

	return stats, nil
}

// Leaderboard returns the top records for game. A non-positive limit means the
// configured default; larger limits are capped.
func (that *scoreService) Leaderboard(ctx context.Context, game string, limit int) ([]entity.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = that.defaultLimit
	}

	limit = min(limit, MaxLeaderboardLimit)

	entries, err := that.scores.Top(ctx, game, that.policy.Order(game), limit)
	if err != nil {
		return nil, fmt.Errorf("could not get leaderboard for %q: %w", game, err)
	}

	return entries, nil
}
