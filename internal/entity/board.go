package entity

import "encoding/json"

// Mark is the symbol a player places on the board. The zero value is an empty cell.
type Mark string

const (
	MarkNone Mark = ""
	MarkX    Mark = "X"
	MarkO    Mark = "O"
)

const BoardSize = 9

// WinCombos is enumerated rows, then columns, then diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Opponent returns the other mark.
func (that Mark) Opponent() Mark {
	if that == MarkX {
		return MarkO
	}
	return MarkX
}

func (that Mark) IsEmpty() bool {
	return that == MarkNone
}

// MarshalJSON encodes an empty mark as null.
func (that Mark) MarshalJSON() ([]byte, error) {
	if that.IsEmpty() {
		return []byte("null"), nil
	}

	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = MarkNone
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*that = Mark(s)

	return nil
}

// MarkForSeat derives the mark from the roster position: seat 0 plays X, seat 1 plays O.
func MarkForSeat(seat int) Mark {
	switch seat {
	case 0:
		return MarkX
	case 1:
		return MarkO
	default:
		return MarkNone
	}
}

type Board [BoardSize]Mark

// Winner returns the mark of the first completed triple, or MarkNone.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if !a.IsEmpty() && a == b && b == c {
			return a
		}
	}

	return MarkNone
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// IsDraw reports a full board without a winner.
func (that Board) IsDraw() bool {
	return that.Winner().IsEmpty() && that.IsFull()
}

func (that Board) IsValidCell(index int) bool {
	return index >= 0 && index < BoardSize
}
