package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// register the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	maxOpenConns    = 25
	maxConnIdleTime = time.Minute
)

type Storage struct {
	Connection *sql.DB
}

func NewPostgresStorage(ctx context.Context, dsn string) (*Storage, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("can't open database: %w", err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetConnMaxIdleTime(maxConnIdleTime)

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("can't connect to database: %w", err)
	}

	return &Storage{Connection: conn}, nil
}

func (that *Storage) Close() error {
	return that.Connection.Close()
}
