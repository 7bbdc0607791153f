package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
)

type mockAuth struct {
	mock.Mock
}

func (that *mockAuth) Register(ctx context.Context, username, password string) (*entity.User, error) {
	args := that.Called(ctx, username, password)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (that *mockAuth) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	args := that.Called(ctx, username, password)
	user, _ := args.Get(1).(*entity.User)

	return args.String(0), user, args.Error(2)
}

func (that *mockAuth) Authenticate(ctx context.Context, token string) (*entity.Identity, error) {
	args := that.Called(ctx, token)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (that *mockAuth) Logout(ctx context.Context, token string) error {
	return that.Called(ctx, token).Error(0)
}

type mockScores struct {
	mock.Mock
}

func (that *mockScores) Submit(ctx context.Context, userID int64, game string, score float64) (*entity.Score, error) {
	args := that.Called(ctx, userID, game, score)
	saved, _ := args.Get(0).(*entity.Score)

	return saved, args.Error(1)
}

func (that *mockScores) MyStats(ctx context.Context, userID int64) ([]entity.GameStats, error) {
	args := that.Called(ctx, userID)
	stats, _ := args.Get(0).([]entity.GameStats)

	return stats, args.Error(1)
}

func (that *mockScores) Leaderboard(ctx context.Context, game string, limit int) ([]entity.LeaderboardEntry, error) {
	args := that.Called(ctx, game, limit)
	entries, _ := args.Get(0).([]entity.LeaderboardEntry)

	return entries, args.Error(1)
}

type staticStats tictactoe.Stats

func (that staticStats) Stats() tictactoe.Stats {
	return tictactoe.Stats(that)
}
