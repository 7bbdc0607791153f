package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

type mockUserRepo struct {
	mock.Mock
}

func (that *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*entity.User, error) {
	args := that.Called(ctx, username, passwordHash)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

func (that *mockUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := that.Called(ctx, username)
	user, _ := args.Get(0).(*entity.User)

	return user, args.Error(1)
}

type mockSessionRepo struct {
	mock.Mock
}

func (that *mockSessionRepo) Save(ctx context.Context, token string, identity entity.Identity, ttl time.Duration) error {
	return that.Called(ctx, token, identity, ttl).Error(0)
}

func (that *mockSessionRepo) Get(ctx context.Context, token string) (*entity.Identity, error) {
	args := that.Called(ctx, token)
	identity, _ := args.Get(0).(*entity.Identity)

	return identity, args.Error(1)
}

func (that *mockSessionRepo) Delete(ctx context.Context, token string) error {
	return that.Called(ctx, token).Error(0)
}

type mockScoreRepo struct {
	mock.Mock
}

func (that *mockScoreRepo) Save(ctx context.Context, score *entity.Score) error {
	return that.Called(ctx, score).Error(0)
}

func (that *mockScoreRepo) SummaryByUser(ctx context.Context, userID int64) ([]entity.ScoreSummary, error) {
	args := that.Called(ctx, userID)
	summaries, _ := args.Get(0).([]entity.ScoreSummary)

	return summaries, args.Error(1)
}

func (that *mockScoreRepo) Top(ctx context.Context, game string, order entity.SortOrder, limit int) ([]entity.LeaderboardEntry, error) {
	args := that.Called(ctx, game, order, limit)
	entries, _ := args.Get(0).([]entity.LeaderboardEntry)

	return entries, args.Error(1)
}
