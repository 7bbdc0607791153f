package apperror

import "errors"

// room errors, never sent to clients.
var (
	ErrRoomFull         = errors.New("room is full")
	ErrGameIsNotStarted = errors.New("game is not started")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrNotInRoom        = errors.New("player is not in the room")
)

// account and score errors.
var (
	ErrNotFound           = errors.New("not found")
	ErrUserExists         = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidScore       = errors.New("missing game or score")
)
