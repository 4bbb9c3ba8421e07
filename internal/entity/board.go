package entity

import "strings"

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	Empty Mark = ""
)

const BoardSize = 3

// Board is a 3x3 grid. It is an array, so assignment and function arguments copy it.
type Board [BoardSize][BoardSize]Mark

// Action is a (row, column) coordinate of an empty cell.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoAction is returned by the search for boards that are already terminal.
var NoAction = Action{Row: -1, Col: -1}

func InitialState() Board {
	return Board{}
}

func (that Action) IsNone() bool {
	return that == NoAction
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Board) Cell(action Action) Mark {
	return that[action.Row][action.Col]
}

// Opponent returns the other player's mark. Empty stays empty.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

// String renders the board as three lines, '.' for an empty cell.
func (that Board) String() string {
	var sb strings.Builder

	for i, row := range that {
		for j, cell := range row {
			if j > 0 {
				sb.WriteByte(' ')
			}

			if cell == Empty {
				sb.WriteByte('.')
				continue
			}

			sb.WriteString(string(cell))
		}

		if i < BoardSize-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
