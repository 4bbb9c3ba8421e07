package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/console"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs one console match on stdin/stdout.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	humanMark, err := conf.GetHumanMark()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	matchRepo, closeRepo, err := newMatchRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	var matchManager *usecase.MatchManager
	if matchRepo != nil {
		matchManager = usecase.NewMatchManager(logger, matchRepo)
	} else {
		matchManager = usecase.NewMatchManager(logger, usecase.NopRecorder{})
	}

	cli := console.New(logger, os.Stdin, os.Stdout, matchManager)

	match, err := cli.Play(ctx, humanMark)
	switch {
	case errors.Is(err, console.ErrQuit), errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		log.Info("Match stopped before the end", "reason", err)
		return nil
	case err != nil:
		return fmt.Errorf("match failed: %w", err)
	}

	log.Info("Match completed", "matchID", match.ID, "winner", match.Winner)

	if matchRepo == nil {
		return nil
	}

	recent, err := matchRepo.ListRecent(ctx, conf.Redis.HistorySize)
	if err != nil {
		log.Error("could not list recent matches", "error", err)
		return nil
	}

	cli.PrintHistory(recent)

	return nil
}

// newMatchRepository connects to Redis when it is enabled. A nil repository means matches are not recorded.
func newMatchRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.MatchRepository, func(), error) {
	if !conf.Redis.Enabled {
		return nil, func() {}, nil
	}

	if conf.Redis.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	redisAddrString := conf.Redis.GetRedisAddr()

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewMatchRepository(redisStorage.Connection, conf.Redis.HistorySize), closeFn, nil
}
