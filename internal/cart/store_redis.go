package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const maxTxAttempts = 10

// RedisStore keeps each cart as one JSON value under cuattro:cart:<user>.
// Updates use WATCH/MULTI and are retried when another writer wins the race.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cuattro:cart:%s", userID)
}

func (s *RedisStore) Load(ctx context.Context, userID string) (State, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return Empty(), nil
		}
		return State{}, fmt.Errorf("getting cart: %w", err)
	}
	return decodeState(data)
}

func (s *RedisStore) Update(ctx context.Context, userID string, fn func(State) State) (State, error) {
	key := cartKey(userID)
	var next State

	txf := func(tx *redis.Tx) error {
		current := Empty()
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
		case err != nil:
			return fmt.Errorf("getting cart: %w", err)
		default:
			if current, err = decodeState(data); err != nil {
				return err
			}
		}

		next = fn(current)

		if len(next.Lines) == 0 {
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Del(ctx, key)
				return nil
			})
			return err
		}

		encoded, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshaling cart: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return Recompute(next), nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return State{}, err
		}
	}
	return State{}, fmt.Errorf("updating cart %s: too much contention", userID)
}

func decodeState(data []byte) (State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("unmarshaling cart: %w", err)
	}
	if s.Lines == nil {
		s.Lines = []Line{}
	}
	return Recompute(s), nil
}
