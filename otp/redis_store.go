package otp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Agent-cat/Midland/utils"
)

const otpKeyPrefix = "otp:"

// RedisStore keeps OTP records in Redis with a TTL matching the code
// lifetime, for deployments running more than one instance.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore() *RedisStore {
	return &RedisStore{client: utils.RedisClient}
}

func (s *RedisStore) Put(ctx context.Context, phone string, rec Record, ttl time.Duration) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, otpKeyPrefix+phone, data, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, phone string) (Record, bool, error) {
	data, err := s.client.Get(ctx, otpKeyPrefix+phone).Result()
	if err == redis.Nil {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, otpKeyPrefix+phone).Err()
}
