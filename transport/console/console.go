package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const (
	commandHint = "hint"
	commandQuit = "quit"

	prompt = "your move (row col), hint or quit> "
)

var ErrQuit = errors.New("player quit")

type matchUseCase interface {
	NewMatch(ctx context.Context, humanMark entity.Mark) (*entity.Match, error)
	HumanTurn(ctx context.Context, match *entity.Match, action entity.Action) error
	EngineTurn(ctx context.Context, match *entity.Match) error
	Hint(match *entity.Match) tictactoe.Evaluation
}

// Console is a line based front end: it prints the board and reads moves as "row col".
type Console struct {
	logger *slog.Logger

	in      io.Reader
	out     io.Writer
	matches matchUseCase

	startReader sync.Once
	lines       chan string
	readErr     error
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, matches matchUseCase) *Console {
	return &Console{
		logger:  logger.With("component", "console"),
		in:      in,
		out:     out,
		matches: matches,
		lines:   make(chan string),
	}
}

// readLine waits for the next input line or for ctx to be done, whichever comes first.
// Lines are scanned by a single goroutine that outlives the call, so a canceled read loses nothing.
func (that *Console) readLine(ctx context.Context) (string, error) {
	that.startReader.Do(func() {
		go that.scan()
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-that.lines:
		if !ok {
			if that.readErr != nil {
				return "", fmt.Errorf("failed to read input: %w", that.readErr)
			}
			return "", io.EOF
		}
		return line, nil
	}
}

// scan owns the input. readErr is written before lines is closed, so readers see it after the close.
func (that *Console) scan() {
	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- scanner.Text()
	}

	that.readErr = scanner.Err()
	close(that.lines)
}

// Play runs one match to the end. humanMark Empty lets the engine play both sides.
func (that *Console) Play(ctx context.Context, humanMark entity.Mark) (*entity.Match, error) {
	match, err := that.matches.NewMatch(ctx, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}

	log := that.logger.With("matchID", match.ID)

	if match.IsSelfPlay() {
		err = that.selfPlay(ctx, match)
	} else {
		err = that.humanPlay(ctx, match)
	}

	if err != nil {
		log.Info("match interrupted", "reason", err)
		return match, err
	}

	that.printf("%s\n", outcome(match))

	return match, nil
}

func (that *Console) selfPlay(ctx context.Context, match *entity.Match) error {
	that.printBoard(match.Board)

	for match.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := that.matches.EngineTurn(ctx, match); err != nil {
			return fmt.Errorf("engine failed to make turn: %w", err)
		}

		last := match.Moves[len(match.Moves)-1]
		that.printf("%s plays %d %d\n", match.Board.Cell(last), last.Row, last.Col)
		that.printBoard(match.Board)
	}

	return nil
}

func (that *Console) humanPlay(ctx context.Context, match *entity.Match) error {
	that.printf("you play %s\n", match.HumanMark)
	that.printBoard(match.Board)

	for match.IsOngoing() {
		if err := ctx.Err(); err != nil {
			return err
		}

		that.printf("%s", prompt)

		line, err := that.readLine(ctx)
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)

		switch strings.ToLower(line) {
		case "":
			continue
		case commandQuit:
			return ErrQuit
		case commandHint:
			that.printHint(match)
			continue
		}

		action, err := ParseAction(line)
		if err != nil {
			that.printf("%v\n", err)
			continue
		}

		err = that.matches.HumanTurn(ctx, match, action)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.printf("cell %d %d is not available\n", action.Row, action.Col)
			continue
		}

		if err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		that.printBoard(match.Board)
	}

	return nil
}

func (that *Console) printHint(match *entity.Match) {
	evaluation := that.matches.Hint(match)
	if evaluation.Action.IsNone() {
		that.printf("no moves left\n")
		return
	}

	that.printf("best move %d %d, expected %s\n", evaluation.Action.Row, evaluation.Action.Col, describeScore(evaluation.Score))
}

func (that *Console) printBoard(board entity.Board) {
	that.printf("%s\n\n", board)
}

func (that *Console) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

// ParseAction reads "row col" or "row,col" with 0-based coordinates.
func ParseAction(line string) (entity.Action, error) {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) != 2 {
		return entity.NoAction, fmt.Errorf("%w: expected \"row col\", got %q", apperror.ErrInvalidInput, line)
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.NoAction, fmt.Errorf("%w: row %q is not a number", apperror.ErrInvalidInput, fields[0])
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.NoAction, fmt.Errorf("%w: column %q is not a number", apperror.ErrInvalidInput, fields[1])
	}

	action := entity.Action{Row: row, Col: col}
	if !action.InBounds() {
		return entity.NoAction, fmt.Errorf("%w: row and column must be between 0 and %d", apperror.ErrInvalidInput, entity.BoardSize-1)
	}

	return action, nil
}

func outcome(match *entity.Match) string {
	if match.Winner == entity.PlayerTie {
		return "draw"
	}

	return match.Winner + " wins"
}

func describeScore(score int) string {
	switch score {
	case 1:
		return "X wins"
	case -1:
		return "O wins"
	default:
		return "draw"
	}
}

// PrintHistory prints a tally of recorded matches followed by one line per match.
func (that *Console) PrintHistory(matches []*entity.Match) {
	if len(matches) == 0 {
		return
	}

	tally := make(map[string]int)
	for _, match := range matches {
		tally[match.Winner]++
	}

	that.printf("last %d matches: X %d, O %d, draws %d\n",
		len(matches), tally[string(entity.PlayerX)], tally[string(entity.PlayerO)], tally[entity.PlayerTie])

	for _, match := range matches {
		that.printf("  %s  %s  %s in %d moves\n",
			match.FinishedAt.Format(time.DateTime), match.ID, outcome(match), len(match.Moves))
	}
}
