package entity

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is what an authenticated request knows about its caller.
type Identity struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}
