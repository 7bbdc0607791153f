package entity

import (
	"slices"
	"time"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// Score is an append-only submission record.
type Score struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	Game     string    `json:"game"`
	Score    float64   `json:"score"`
	PlayedAt time.Time `json:"playedAt"`
}

// GameStats aggregates one player's records for a game.
type GameStats struct {
	Game      string  `json:"game"`
	BestScore float64 `json:"bestScore"`
	PlayCount int64   `json:"playCount"`
}

type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	Username string    `json:"username"`
	Score    float64   `json:"score"`
	PlayedAt time.Time `json:"date"`
}

// RankingPolicy knows which games rank lower scores higher (timed games).
type RankingPolicy struct {
	lowScoreGames []string
}

func NewRankingPolicy(lowScoreGames []string) RankingPolicy {
	return RankingPolicy{lowScoreGames: slices.Clone(lowScoreGames)}
}

func (that RankingPolicy) LowerIsBetter(game string) bool {
	return slices.Contains(that.lowScoreGames, game)
}

func (that RankingPolicy) Order(game string) SortOrder {
	if that.LowerIsBetter(game) {
		return OrderAsc
	}
	return OrderDesc
}

// ScoreSummary is the raw per-game aggregate of one player's records.
type ScoreSummary struct {
	Game      string
	MinScore  float64
	MaxScore  float64
	PlayCount int64
}
