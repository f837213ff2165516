package otp

import (
	"context"
	"os"
	"sync"
	"time"
)

// Record is one live OTP challenge, keyed by phone number.
type Record struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issuedAt"`
	Attempts int       `json:"attempts"`
}

// Store holds at most one live Record per phone. Put overwrites any prior
// record for the same phone.
type Store interface {
	Put(ctx context.Context, phone string, rec Record, ttl time.Duration) error
	Get(ctx context.Context, phone string) (Record, bool, error)
	Delete(ctx context.Context, phone string) error
}

// MemoryStore is the single-instance default. Expiry is checked lazily by the
// gate at verify time, so the ttl argument is not tracked here.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]Record)}
}

func (s *MemoryStore) Put(_ context.Context, phone string, rec Record, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[phone] = rec
	return nil
}

func (s *MemoryStore) Get(_ context.Context, phone string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[phone]
	return rec, ok, nil
}

func (s *MemoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, phone)
	return nil
}

// StoreFromEnv picks the Redis store when OTP_STORE=redis, so a multi-instance
// deployment shares challenges; otherwise the in-process map is used.
func StoreFromEnv() Store {
	if os.Getenv("OTP_STORE") == "redis" {
		return NewRedisStore()
	}
	return NewMemoryStore()
}
