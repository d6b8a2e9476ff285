package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// evictionGrace keeps expired-but-unconsumed records around long enough for a
// late verification attempt to be answered with "expired" instead of
// "not requested".
const evictionGrace = time.Hour

// RedisStore keeps OTP records in Redis so the one-live-record-per-number
// invariant holds across server instances.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func key(phone string) string { return "otp:" + phone }

func (s *RedisStore) Put(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal otp record: %w", err)
	}

	ttl := time.Until(rec.ExpiresAt) + evictionGrace
	if err := s.client.Set(ctx, key(rec.Phone), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store otp record: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, phone string) (Record, bool, error) {
	payload, err := s.client.Get(ctx, key(phone)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("read otp record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode otp record: %w", err)
	}
	return rec, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, key(phone)).Err(); err != nil {
		return fmt.Errorf("delete otp record: %w", err)
	}
	return nil
}
