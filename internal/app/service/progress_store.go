package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ecoenergi/meu-contrato-solar/internal/app/model"
	"github.com/ecoenergi/meu-contrato-solar/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ProgressStore persists wizard session state between requests, keyed by the
// operator working the wizard. A missing session yields (nil, nil).
type ProgressStore interface {
	Load(ctx context.Context, operatorID uint) (*model.FormProgress, error)
	Save(ctx context.Context, operatorID uint, progress *model.FormProgress) error
	Clear(ctx context.Context, operatorID uint) error
}

type redisProgressStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProgressStore stores sessions in Redis as JSON with a TTL, so
// abandoned sessions expire on their own.
func NewRedisProgressStore(client *redis.Client, ttl time.Duration) ProgressStore {
	return &redisProgressStore{client: client, ttl: ttl}
}

func progressKey(operatorID uint) string {
	return fmt.Sprintf("wizard:progress:%d", operatorID)
}

func (s *redisProgressStore) Load(ctx context.Context, operatorID uint) (*model.FormProgress, error) {
	data, err := s.client.Get(ctx, progressKey(operatorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		logger.Error("Failed to load wizard progress from Redis", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		return nil, err
	}

	var progress model.FormProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		logger.Error("Failed to decode wizard progress", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		return nil, err
	}
	return &progress, nil
}

func (s *redisProgressStore) Save(ctx context.Context, operatorID uint, progress *model.FormProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, progressKey(operatorID), data, s.ttl).Err(); err != nil {
		logger.Error("Failed to save wizard progress to Redis", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		return err
	}
	return nil
}

func (s *redisProgressStore) Clear(ctx context.Context, operatorID uint) error {
	if err := s.client.Del(ctx, progressKey(operatorID)).Err(); err != nil {
		logger.Error("Failed to clear wizard progress in Redis", err, map[string]interface{}{
			"operator_id": operatorID,
		})
		return err
	}
	return nil
}

type memoryProgressStore struct {
	mu       sync.RWMutex
	sessions map[uint]*model.FormProgress
}

// NewMemoryProgressStore keeps sessions in process memory. Used in tests and
// when Redis is not configured.
func NewMemoryProgressStore() ProgressStore {
	return &memoryProgressStore{sessions: map[uint]*model.FormProgress{}}
}

func (s *memoryProgressStore) Load(_ context.Context, operatorID uint) (*model.FormProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	progress, ok := s.sessions[operatorID]
	if !ok {
		return nil, nil
	}

	// Round-trip through JSON so callers never share state with the store.
	data, err := json.Marshal(progress)
	if err != nil {
		return nil, err
	}
	var copy model.FormProgress
	if err := json.Unmarshal(data, &copy); err != nil {
		return nil, err
	}
	return &copy, nil
}

func (s *memoryProgressStore) Save(_ context.Context, operatorID uint, progress *model.FormProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	var copy model.FormProgress
	if err := json.Unmarshal(data, &copy); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[operatorID] = &copy
	return nil
}

func (s *memoryProgressStore) Clear(_ context.Context, operatorID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, operatorID)
	return nil
}
