package entity

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
)

const MaxPlayers = 2

// RoomState is derived from the roster size and the round flag.
type RoomState int

const (
	StateEmpty RoomState = iota
	StateWaiting
	StateActive
	StateRoundOver
)

func (that RoomState) String() string {
	switch that {
	case StateEmpty:
		return "empty"
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	case StateRoundOver:
		return "round_over"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

// Room is a single two-player game instance. It is not safe for concurrent use;
// callers serialize access per room key.
type Room struct {
	key     string
	players []string
	board   Board
	turn    Mark
	starter Mark
	state   RoomState
}

// JoinResult describes an accepted join.
type JoinResult struct {
	Rejoined     bool
	RoundStarted bool
}

// MoveResult is the board as it stood right after the move was applied.
type MoveResult struct {
	Board     Board
	Turn      Mark
	Winner    Mark
	IsDraw    bool
	RoundOver bool
}

func NewRoom(key string) *Room {
	return &Room{
		key:     key,
		players: make([]string, 0, MaxPlayers),
		turn:    MarkX,
		starter: MarkX,
		state:   StateEmpty,
	}
}

// Clone returns a copy that shares no state with the room.
func (that *Room) Clone() *Room {
	clone := *that
	clone.players = slices.Clone(that.players)

	return &clone
}

func (that *Room) Key() string {
	return that.key
}

func (that *Room) State() RoomState {
	return that.state
}

func (that *Room) Board() Board {
	return that.board
}

func (that *Room) Turn() Mark {
	return that.turn
}

func (that *Room) Starter() Mark {
	return that.starter
}

// Started is true only while a round is being played.
func (that *Room) Started() bool {
	return that.state == StateActive
}

func (that *Room) Players() []string {
	return slices.Clone(that.players)
}

func (that *Room) PlayerCount() int {
	return len(that.players)
}

func (that *Room) IsEmpty() bool {
	return len(that.players) == 0
}

func (that *Room) HasPlayer(connID string) bool {
	return slices.Contains(that.players, connID)
}

// MarkOf returns the mark of the seat held by connID, or MarkNone.
func (that *Room) MarkOf(connID string) Mark {
	return MarkForSeat(slices.Index(that.players, connID))
}

// Join seats connID. A full room rejects the join without changing state.
func (that *Room) Join(connID string) (JoinResult, error) {
	if that.HasPlayer(connID) {
		return JoinResult{Rejoined: true}, nil
	}

	if len(that.players) >= MaxPlayers {
		return JoinResult{}, apperror.ErrRoomFull
	}

	that.players = append(that.players, connID)

	if len(that.players) == MaxPlayers && that.state != StateActive {
		that.startRound()
		return JoinResult{RoundStarted: true}, nil
	}

	if that.state == StateEmpty {
		that.state = StateWaiting
	}

	return JoinResult{}, nil
}

// Move places the mark of connID's seat at index. Rejected moves leave the room untouched.
func (that *Room) Move(connID string, index int) (MoveResult, error) {
	if that.state != StateActive {
		return MoveResult{}, apperror.ErrGameIsNotStarted
	}

	if !that.board.IsValidCell(index) {
		return MoveResult{}, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	mark := that.MarkOf(connID)
	if mark.IsEmpty() {
		return MoveResult{}, apperror.ErrNotInRoom
	}

	if mark != that.turn {
		return MoveResult{}, apperror.ErrNotYourTurn
	}

	if !that.board[index].IsEmpty() {
		return MoveResult{}, apperror.ErrCellOccupied
	}

	that.board[index] = mark
	that.turn = mark.Opponent()

	result := MoveResult{
		Board:  that.board,
		Turn:   that.turn,
		Winner: that.board.Winner(),
		IsDraw: that.board.IsDraw(),
	}

	if !result.Winner.IsEmpty() || result.IsDraw {
		that.finishRound()
		result.RoundOver = true
	}

	return result, nil
}

// StartNextRound leaves ROUND_OVER when both seats are still taken.
func (that *Room) StartNextRound() bool {
	if that.state != StateRoundOver || len(that.players) != MaxPlayers {
		return false
	}

	that.state = StateActive

	return true
}

// Restart flips the starter and opens a fresh round. A finished round already
// flipped the starter, so restarting from ROUND_OVER keeps it.
// Without a full roster the room keeps waiting, so a lone player can never move.
func (that *Room) Restart() {
	if that.state != StateRoundOver {
		that.starter = that.starter.Opponent()
	}

	that.board = Board{}
	that.turn = that.starter

	if len(that.players) == MaxPlayers {
		that.state = StateActive
	}
}

// Leave removes connID from the roster. The remaining player, if any, waits on a cleared board.
func (that *Room) Leave(connID string) bool {
	idx := slices.Index(that.players, connID)
	if idx == -1 {
		return false
	}

	that.players = slices.Delete(that.players, idx, idx+1)
	that.board = Board{}

	if len(that.players) == 0 {
		that.state = StateEmpty
		return true
	}

	that.state = StateWaiting

	return true
}

func (that *Room) startRound() {
	that.board = Board{}
	that.turn = that.starter
	that.state = StateActive
}

func (that *Room) finishRound() {
	that.board = Board{}
	that.starter = that.starter.Opponent()
	that.turn = that.starter
	that.state = StateRoundOver
}
