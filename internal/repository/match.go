package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	matchKeyPrefix = "match:"
	recentKey      = "matches:recent"
)

type MatchRepository interface {
	Save(ctx context.Context, match *entity.Match) error
	GetByID(ctx context.Context, id string) (*entity.Match, error)
	ListRecent(ctx context.Context, limit int64) ([]*entity.Match, error)
}

type dbMatch struct {
	client      *redis.Client
	historySize int64
}

// NewMatchRepository stores finished matches and keeps the ids of the last historySize of them.
func NewMatchRepository(client *redis.Client, historySize int64) MatchRepository {
	return &dbMatch{
		client:      client,
		historySize: historySize,
	}
}

func (that *dbMatch) Save(ctx context.Context, match *entity.Match) error {
	matchJSON, err := json.Marshal(match)
	if err != nil {
		return fmt.Errorf("could not marshal match: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, matchKeyPrefix+match.ID, matchJSON, 0)
		pipe.LRem(ctx, recentKey, 0, match.ID)
		pipe.LPush(ctx, recentKey, match.ID)
		if that.historySize > 0 {
			pipe.LTrim(ctx, recentKey, 0, that.historySize-1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	return nil
}

func (that *dbMatch) GetByID(ctx context.Context, id string) (*entity.Match, error) {
	response, err := that.client.Get(ctx, matchKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrMatchNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get match by id: %w", err)
	}

	var existingMatch entity.Match
	if err = json.Unmarshal([]byte(response), &existingMatch); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match: %w", err)
	}

	return &existingMatch, nil
}

// ListRecent returns up to limit matches, newest first. Ids whose record has gone are skipped.
func (that *dbMatch) ListRecent(ctx context.Context, limit int64) ([]*entity.Match, error) {
	if limit <= 0 {
		return []*entity.Match{}, nil
	}

	ids, err := that.client.LRange(ctx, recentKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent matches: %w", err)
	}

	matches := make([]*entity.Match, 0, len(ids))
	for _, id := range ids {
		match, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrMatchNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		matches = append(matches, match)
	}

	return matches, nil
}
