package tictactoe

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// Evaluation is the outcome of a full search: the propagated score and the move that achieves it.
type Evaluation struct {
	Score  int           `json:"score"`
	Action entity.Action `json:"action"`
}

// Minimax returns the optimal move for the player to move.
// It returns NoAction and false when the board is already terminal.
func Minimax(board entity.Board) (entity.Action, bool) {
	evaluation := Evaluate(board)
	if evaluation.Action.IsNone() {
		return entity.NoAction, false
	}

	return evaluation.Action, true
}

// Evaluate searches the whole game tree below board. X maximizes, O minimizes.
func Evaluate(board entity.Board) Evaluation {
	if Player(board) == entity.PlayerX {
		return maxValue(board)
	}

	return minValue(board)
}

// maxValue keeps the first action reaching the best score; later ties do not replace it.
func maxValue(board entity.Board) Evaluation {
	if Terminal(board) {
		return Evaluation{Score: Utility(board), Action: entity.NoAction}
	}

	best := Evaluation{Score: math.MinInt, Action: entity.NoAction}
	for _, action := range Actions(board) {
		score := minValue(apply(board, action)).Score
		if score > best.Score {
			best = Evaluation{Score: score, Action: action}
		}
	}

	return best
}

func minValue(board entity.Board) Evaluation {
	if Terminal(board) {
		return Evaluation{Score: Utility(board), Action: entity.NoAction}
	}

	best := Evaluation{Score: math.MaxInt, Action: entity.NoAction}
	for _, action := range Actions(board) {
		score := maxValue(apply(board, action)).Score
		if score < best.Score {
			best = Evaluation{Score: score, Action: action}
		}
	}

	return best
}
