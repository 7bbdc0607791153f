package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

func TestScoreRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScoreRepository(db)

	playedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO scores (user_id, game, score) VALUES ($1, $2, $3) RETURNING id, played_at`)).
		WithArgs(int64(3), "snake", 42.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "played_at"}).AddRow(11, playedAt))

	// Given: a new record
	score := &entity.Score{UserID: 3, Game: "snake", Score: 42}

	// When: it is saved
	err := repo.Save(context.Background(), score)

	// Then: id and timestamp are filled in
	require.NoError(t, err)
	assert.Equal(t, int64(11), score.ID)
	assert.Equal(t, playedAt, score.PlayedAt)
}

func TestScoreRepository_SummaryByUser(t *testing.T) {
	query := `SELECT game, MIN\(score\), MAX\(score\), COUNT\(\*\)\s+FROM scores\s+WHERE user_id = \$1\s+GROUP BY game`

	t.Run("SummaryByUser_Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewScoreRepository(db)

		mock.ExpectQuery(query).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"game", "min", "max", "count"}).
				AddRow("minesweeper", 31.5, 90.0, 4).
				AddRow("snake", 5.0, 120.0, 2))

		summaries, err := repo.SummaryByUser(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, []entity.ScoreSummary{
			{Game: "minesweeper", MinScore: 31.5, MaxScore: 90, PlayCount: 4},
			{Game: "snake", MinScore: 5, MaxScore: 120, PlayCount: 2},
		}, summaries)
	})

	t.Run("SummaryByUser_Empty", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewScoreRepository(db)

		mock.ExpectQuery(query).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"game", "min", "max", "count"}))

		summaries, err := repo.SummaryByUser(context.Background(), 3)

		require.NoError(t, err)
		assert.NotNil(t, summaries)
		assert.Empty(t, summaries)
	})

	t.Run("SummaryByUser_Failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewScoreRepository(db)

		mock.ExpectQuery(query).WillReturnError(errors.New("boom"))

		_, err := repo.SummaryByUser(context.Background(), 3)

		require.Error(t, err)
	})
}

func TestScoreRepository_Top(t *testing.T) {
	playedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		order entity.SortOrder
		want  string
	}{
		{name: "Ascending", order: entity.OrderAsc, want: "ASC"},
		{name: "Descending", order: entity.OrderDesc, want: "DESC"},
		{name: "Unknown order falls back to descending", order: "; DROP TABLE scores", want: "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewScoreRepository(db)

			mock.ExpectQuery(`ORDER BY s.score ` + tt.want + `, s.played_at ASC\s+LIMIT \$2`).
				WithArgs("snake", 2).
				WillReturnRows(sqlmock.NewRows([]string{"username", "score", "played_at"}).
					AddRow("alice", 120.0, playedAt).
					AddRow("bob", 90.0, playedAt))

			entries, err := repo.Top(context.Background(), "snake", tt.order, 2)

			require.NoError(t, err)
			assert.Equal(t, []entity.LeaderboardEntry{
				{Rank: 1, Username: "alice", Score: 120, PlayedAt: playedAt},
				{Rank: 2, Username: "bob", Score: 90, PlayedAt: playedAt},
			}, entries)
		})
	}
}
