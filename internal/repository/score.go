package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rocketscienceinc/arcade-backend/internal/entity"
)

type ScoreRepository interface {
	Save(ctx context.Context, score *entity.Score) error
	SummaryByUser(ctx context.Context, userID int64) ([]entity.ScoreSummary, error)
	Top(ctx context.Context, game string, order entity.SortOrder, limit int) ([]entity.LeaderboardEntry, error)
}

type scoreRepository struct {
	conn *sql.DB
}

func NewScoreRepository(conn *sql.DB) ScoreRepository {
	return &scoreRepository{
		conn: conn,
	}
}

// Save inserts the record and fills its id and timestamp.
func (that *scoreRepository) Save(ctx context.Context, score *entity.Score) error {
	query := `INSERT INTO scores (user_id, game, score) VALUES ($1, $2, $3) RETURNING id, played_at`

	err := that.conn.QueryRowContext(ctx, query, score.UserID, score.Game, score.Score).Scan(&score.ID, &score.PlayedAt)
	if err != nil {
		return fmt.Errorf("can't save score: %w", err)
	}

	return nil
}

func (that *scoreRepository) SummaryByUser(ctx context.Context, userID int64) ([]entity.ScoreSummary, error) {
	query := `SELECT game, MIN(score), MAX(score), COUNT(*)
		FROM scores
		WHERE user_id = $1
		GROUP BY game
		ORDER BY game`

	rows, err := that.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("can't query score summary: %w", err)
	}
	defer rows.Close()

	summaries := make([]entity.ScoreSummary, 0)
	for rows.Next() {
		var summary entity.ScoreSummary
		if err = rows.Scan(&summary.Game, &summary.MinScore, &summary.MaxScore, &summary.PlayCount); err != nil {
			return nil, fmt.Errorf("can't scan score summary: %w", err)
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read score summary: %w", err)
	}

	return summaries, nil
}

// Top returns the best records for game in rank order. Ties go to the earlier record.
func (that *scoreRepository) Top(ctx context.Context, game string, order entity.SortOrder, limit int) ([]entity.LeaderboardEntry, error) {
	if order != entity.OrderAsc {
		order = entity.OrderDesc
	}

	query := fmt.Sprintf(`SELECT u.username, s.score, s.played_at
		FROM scores s
		JOIN users u ON u.id = s.user_id
		WHERE s.game = $1
		ORDER BY s.score %s, s.played_at ASC
		LIMIT $2`, order)

	rows, err := that.conn.QueryContext(ctx, query, game, limit)
	if err != nil {
		return nil, fmt.Errorf("can't query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := make([]entity.LeaderboardEntry, 0, limit)
	for rows.Next() {
		entry := entity.LeaderboardEntry{Rank: len(entries) + 1}
		if err = rows.Scan(&entry.Username, &entry.Score, &entry.PlayedAt); err != nil {
			return nil, fmt.Errorf("can't scan leaderboard entry: %w", err)
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read leaderboard: %w", err)
	}

	return entries, nil
}
