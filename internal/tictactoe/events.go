package tictactoe

import "github.com/rocketscienceinc/arcade-backend/internal/entity"

// inbound events.
const (
	EventJoinRoom  = "join-room"
	EventMove      = "move"
	EventRestart   = "restart"
	EventLeaveRoom = "leave-room"
)

// outbound events.
const (
	EventRoomFull         = "room-full"
	EventRoomPlayerCount  = "room-player-count"
	EventGameStart        = "game-start"
	EventBoardUpdate      = "board-update"
	EventRoundEnd         = "round-end"
	EventWaitingForPlayer = "waiting-for-player"
)

// Outbound is a notification addressed to one connection.
type Outbound struct {
	ConnID  string
	Event   string
	Payload any
}

type JoinRoomPayload struct {
	RoomKey string `json:"roomKey" validate:"required,max=128"`
}

type MovePayload struct {
	Index *int `json:"index" validate:"required,min=0,max=8"`
}

type RoomFullPayload struct {
	RoomKey string `json:"roomKey"`
}

type PlayerCountPayload struct {
	Count int `json:"count"`
}

type GameStartPayload struct {
	Board entity.Board `json:"board"`
	Turn  entity.Mark  `json:"turn"`
}

type BoardUpdatePayload struct {
	Board  entity.Board `json:"board"`
	Turn   entity.Mark  `json:"turn"`
	Winner entity.Mark  `json:"winner"`
	IsDraw bool         `json:"isDraw"`
}

type RoundEndPayload struct {
	Winner entity.Mark `json:"winner"`
	IsDraw bool        `json:"isDraw"`
}

type WaitingPayload struct{}
