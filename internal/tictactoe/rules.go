package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// WinCombos lists the 8 lines as row-major cell indexes: rows, columns, diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Player returns the mark due to move. X always moves first, so equal counts mean X.
func Player(board entity.Board) entity.Mark {
	var x, o int

	for _, row := range board {
		for _, cell := range row {
			switch cell {
			case entity.PlayerX:
				x++
			case entity.PlayerO:
				o++
			}
		}
	}

	if x-o == 1 {
		return entity.PlayerO
	}

	return entity.PlayerX
}

// Actions returns every empty cell in row-major order.
func Actions(board entity.Board) []entity.Action {
	actions := make([]entity.Action, 0, entity.BoardSize*entity.BoardSize)

	for i, row := range board {
		for j, cell := range row {
			if cell == entity.Empty {
				actions = append(actions, entity.Action{Row: i, Col: j})
			}
		}
	}

	return actions
}

// Result returns a copy of board with the current player's mark placed at action.
// The board passed in is never modified.
func Result(board entity.Board, action entity.Action) (entity.Board, error) {
	if !action.InBounds() {
		return board, fmt.Errorf("%w: cell (%d, %d) is out of range", apperror.ErrInvalidMove, action.Row, action.Col)
	}

	if board.Cell(action) != entity.Empty {
		return board, fmt.Errorf("%w: cell (%d, %d) is already occupied", apperror.ErrInvalidMove, action.Row, action.Col)
	}

	return apply(board, action), nil
}

// apply places the mark without validation; callers pass actions taken from Actions.
func apply(board entity.Board, action entity.Action) entity.Board {
	board[action.Row][action.Col] = Player(board)
	return board
}

// Winner returns the mark of the player who just moved if it completes a line, Empty otherwise.
// Only the last mover is checked: a line of the mark that is due to move is not reported.
func Winner(board entity.Board) entity.Mark {
	lastPlayer := Player(board).Opponent()

	for _, combo := range WinCombos {
		a, b, c := cellAt(board, combo[0]), cellAt(board, combo[1]), cellAt(board, combo[2])
		if a == lastPlayer && b == lastPlayer && c == lastPlayer {
			return lastPlayer
		}
	}

	return entity.Empty
}

// Terminal reports whether the game is over, either won or with no empty cell left.
func Terminal(board entity.Board) bool {
	if Winner(board) != entity.Empty {
		return true
	}

	for _, row := range board {
		for _, cell := range row {
			if cell == entity.Empty {
				return false
			}
		}
	}

	return true
}

// Utility scores a terminal board from X's side: 1 if X won, -1 if O won, 0 otherwise.
func Utility(board entity.Board) int {
	switch Winner(board) {
	case entity.PlayerX:
		return 1
	case entity.PlayerO:
		return -1
	default:
		return 0
	}
}

func cellAt(board entity.Board, index int) entity.Mark {
	return board[index/entity.BoardSize][index%entity.BoardSize]
}
