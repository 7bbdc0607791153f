package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/arcade-backend/internal/apperror"
)

func newFullRoom(t *testing.T) *Room {
	t.Helper()

	room := NewRoom("r1")
	_, err := room.Join("a")
	require.NoError(t, err)
	_, err = room.Join("b")
	require.NoError(t, err)

	return room
}

func TestNewRoom(t *testing.T) {
	// When: a room is created
	room := NewRoom("r1")

	// Then: it has the default state
	assert.Equal(t, "r1", room.Key())
	assert.Equal(t, StateEmpty, room.State())
	assert.Equal(t, Board{}, room.Board())
	assert.Equal(t, MarkX, room.Turn())
	assert.Equal(t, MarkX, room.Starter())
	assert.False(t, room.Started())
	assert.True(t, room.IsEmpty())
}

func TestRoom_Join(t *testing.T) {
	t.Run("First join waits for a partner", func(t *testing.T) {
		room := NewRoom("r1")

		// When: one player joins
		res, err := room.Join("a")

		// Then: the room waits
		require.NoError(t, err)
		assert.False(t, res.RoundStarted)
		assert.Equal(t, StateWaiting, room.State())
		assert.Equal(t, []string{"a"}, room.Players())
	})

	t.Run("Second join starts the round with the starter's turn", func(t *testing.T) {
		room := NewRoom("r1")
		_, err := room.Join("a")
		require.NoError(t, err)

		// When: the second player joins
		res, err := room.Join("b")

		// Then: the round is active and X moves first
		require.NoError(t, err)
		assert.True(t, res.RoundStarted)
		assert.Equal(t, StateActive, room.State())
		assert.Equal(t, MarkX, room.Turn())
		assert.Equal(t, MarkX, room.MarkOf("a"))
		assert.Equal(t, MarkO, room.MarkOf("b"))
	})

	t.Run("Third join is rejected without changes", func(t *testing.T) {
		room := newFullRoom(t)

		// When: a third player joins
		_, err := room.Join("c")

		// Then: the room is full and the roster is unchanged
		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Equal(t, []string{"a", "b"}, room.Players())
		assert.Equal(t, StateActive, room.State())
	})

	t.Run("Rejoining is harmless", func(t *testing.T) {
		room := NewRoom("r1")
		_, err := room.Join("a")
		require.NoError(t, err)

		// When: the same connection joins again
		res, err := room.Join("a")

		// Then: the roster is unchanged
		require.NoError(t, err)
		assert.True(t, res.Rejoined)
		assert.Equal(t, 1, room.PlayerCount())
	})
}

func TestRoom_Move(t *testing.T) {
	t.Run("Accepted move flips the turn", func(t *testing.T) {
		room := newFullRoom(t)

		// When: X moves to the center
		res, err := room.Move("a", 4)

		// Then: the board and turn change
		require.NoError(t, err)
		assert.Equal(t, MarkX, res.Board[4])
		assert.Equal(t, MarkO, res.Turn)
		assert.Equal(t, MarkNone, res.Winner)
		assert.False(t, res.IsDraw)
		assert.False(t, res.RoundOver)
		assert.Equal(t, MarkO, room.Turn())
	})

	t.Run("Move in a waiting room is rejected", func(t *testing.T) {
		room := NewRoom("r2")
		_, err := room.Join("a")
		require.NoError(t, err)

		// When: the lone player moves
		_, err = room.Move("a", 0)

		// Then: nothing changes
		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.Equal(t, Board{}, room.Board())
	})

	t.Run("Out of turn move never mutates board or turn", func(t *testing.T) {
		room := newFullRoom(t)

		// When: O moves first
		_, err := room.Move("b", 0)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, room.Board())
		assert.Equal(t, MarkX, room.Turn())
	})

	t.Run("Occupied cell never mutates board", func(t *testing.T) {
		room := newFullRoom(t)
		_, err := room.Move("a", 0)
		require.NoError(t, err)
		before := room.Board()

		// When: O targets the same cell
		_, err = room.Move("b", 0)

		// Then: the move is rejected
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, room.Board())
		assert.Equal(t, MarkO, room.Turn())
	})

	t.Run("Index outside the board is rejected", func(t *testing.T) {
		room := newFullRoom(t)

		for _, idx := range []int{-1, 9, 20} {
			_, err := room.Move("a", idx)
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
		}

		assert.Equal(t, Board{}, room.Board())
	})

	t.Run("Stranger cannot move", func(t *testing.T) {
		room := newFullRoom(t)

		_, err := room.Move("zzz", 0)

		require.ErrorIs(t, err, apperror.ErrNotInRoom)
	})

	t.Run("Winning move ends the round and flips the starter", func(t *testing.T) {
		room := newFullRoom(t)

		// Given: X holds 4, 1, 2 and O holds 0, 3, 8
		for _, step := range []struct {
			conn string
			cell int
		}{{"a", 4}, {"b", 0}, {"a", 1}, {"b", 3}, {"a", 2}, {"b", 8}} {
			res, err := room.Move(step.conn, step.cell)
			require.NoError(t, err)
			require.False(t, res.RoundOver)
		}

		// When: X completes the middle column
		res, err := room.Move("a", 7)

		// Then: X wins, the reported board shows the final position
		require.NoError(t, err)
		assert.Equal(t, MarkX, res.Winner)
		assert.True(t, res.RoundOver)
		assert.Equal(t, Board{o, x, x, o, x, e, e, x, o}, res.Board)

		// And: the room is between rounds with O opening the next one
		assert.Equal(t, StateRoundOver, room.State())
		assert.Equal(t, MarkO, room.Starter())
		assert.Equal(t, MarkO, room.Turn())
		assert.Equal(t, Board{}, room.Board())
	})

	t.Run("Draw ends the round", func(t *testing.T) {
		room := newFullRoom(t)

		// Given: a sequence that fills the board without a line
		var res MoveResult
		var err error
		for i, cell := range []int{0, 1, 2, 4, 3, 5, 7, 6, 8} {
			conn := "a"
			if i%2 == 1 {
				conn = "b"
			}
			res, err = room.Move(conn, cell)
			require.NoError(t, err)
		}

		// Then: the last move reports a draw
		assert.True(t, res.IsDraw)
		assert.Equal(t, MarkNone, res.Winner)
		assert.True(t, res.RoundOver)
		assert.Equal(t, MarkO, room.Starter())
	})
}

func TestRoom_StartNextRound(t *testing.T) {
	t.Run("Resumes after a finished round", func(t *testing.T) {
		room := newFullRoom(t)
		for i, cell := range []int{0, 3, 1, 4, 2} {
			conn := "a"
			if i%2 == 1 {
				conn = "b"
			}
			_, err := room.Move(conn, cell)
			require.NoError(t, err)
		}

		// When: the next round starts
		ok := room.StartNextRound()

		// Then: O opens it
		assert.True(t, ok)
		assert.Equal(t, StateActive, room.State())
		assert.Equal(t, MarkO, room.Turn())

		_, err := room.Move("b", 4)
		require.NoError(t, err)
	})

	t.Run("Does nothing while a round is active", func(t *testing.T) {
		room := newFullRoom(t)

		assert.False(t, room.StartNextRound())
	})
}

func TestRoom_Restart(t *testing.T) {
	t.Run("Restart flips the starter on every call", func(t *testing.T) {
		room := newFullRoom(t)
		_, err := room.Move("a", 0)
		require.NoError(t, err)

		expected := []Mark{MarkO, MarkX, MarkO}
		for _, want := range expected {
			// When: the round is restarted
			room.Restart()

			// Then: the starter alternates and the board is fresh
			assert.Equal(t, want, room.Starter())
			assert.Equal(t, want, room.Turn())
			assert.Equal(t, Board{}, room.Board())
			assert.Equal(t, StateActive, room.State())
		}
	})

	t.Run("Restart after a finished round keeps the flipped starter", func(t *testing.T) {
		room := newFullRoom(t)
		for i, cell := range []int{0, 3, 1, 4, 2} {
			_, err := room.Move([]string{"a", "b"}[i%2], cell)
			require.NoError(t, err)
		}
		require.Equal(t, StateRoundOver, room.State())

		room.Restart()

		assert.Equal(t, MarkO, room.Starter())
		assert.Equal(t, MarkO, room.Turn())
		assert.Equal(t, StateActive, room.State())
	})

	t.Run("Restart with a lone player keeps waiting", func(t *testing.T) {
		room := NewRoom("r1")
		_, err := room.Join("a")
		require.NoError(t, err)

		room.Restart()

		assert.Equal(t, StateWaiting, room.State())
		assert.Equal(t, MarkO, room.Starter())
	})
}

func TestRoom_Leave(t *testing.T) {
	t.Run("Partner leaving clears the board", func(t *testing.T) {
		room := newFullRoom(t)
		_, err := room.Move("a", 4)
		require.NoError(t, err)

		// When: X leaves
		ok := room.Leave("a")

		// Then: O takes seat 0 and waits on an empty board
		assert.True(t, ok)
		assert.Equal(t, StateWaiting, room.State())
		assert.Equal(t, Board{}, room.Board())
		assert.Equal(t, []string{"b"}, room.Players())
		assert.Equal(t, MarkX, room.MarkOf("b"))
	})

	t.Run("Last player leaving empties the room", func(t *testing.T) {
		room := NewRoom("r1")
		_, err := room.Join("a")
		require.NoError(t, err)

		assert.True(t, room.Leave("a"))
		assert.Equal(t, StateEmpty, room.State())
		assert.True(t, room.IsEmpty())
	})

	t.Run("Unknown connection is ignored", func(t *testing.T) {
		room := newFullRoom(t)

		assert.False(t, room.Leave("zzz"))
		assert.Equal(t, 2, room.PlayerCount())
		assert.Equal(t, StateActive, room.State())
	})

	t.Run("New partner restarts with a clean board", func(t *testing.T) {
		room := newFullRoom(t)
		_, err := room.Move("a", 4)
		require.NoError(t, err)
		room.Leave("b")

		// When: a third connection joins
		res, err := room.Join("c")

		// Then: a fresh round starts
		require.NoError(t, err)
		assert.True(t, res.RoundStarted)
		assert.Equal(t, Board{}, room.Board())
		assert.Equal(t, StateActive, room.State())
	})
}

func TestRoomState_String(t *testing.T) {
	assert.Equal(t, "empty", StateEmpty.String())
	assert.Equal(t, "waiting", StateWaiting.String())
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "round_over", StateRoundOver.String())
	assert.Equal(t, "state(9)", RoomState(9).String())
}
