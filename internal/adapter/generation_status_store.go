package adapter

import (
	"context"

	"quizforge/internal/cache"
	"quizforge/internal/domain"
)

// GenerationStatusStore implements domain.GenerationStatusStore on top of the
// cache port. The flag is a plain overwrite, written outside any transaction:
// it tells external observers that generation is running for a user, nothing
// more. Concurrent calls for the same user race on it and the last write
// wins; callers must not use it for mutual exclusion.
type GenerationStatusStore struct {
	cache domain.Cache
}

// NewGenerationStatusStore creates a new instance of GenerationStatusStore.
func NewGenerationStatusStore(c domain.Cache) domain.GenerationStatusStore {
	return &GenerationStatusStore{cache: c}
}

// SetGenerating overwrites the user's advisory flag.
func (s *GenerationStatusStore) SetGenerating(ctx context.Context, userID string, inProgress bool) error {
	value := "0"
	if inProgress {
		value = "1"
	}
	return s.cache.Set(ctx, cache.GenerationStatusKey(userID), value, 0)
}

// IsGenerating reports the user's advisory flag. A missing key reads as false.
func (s *GenerationStatusStore) IsGenerating(ctx context.Context, userID string) (bool, error) {
	val, err := s.cache.Get(ctx, cache.GenerationStatusKey(userID))
	if err != nil {
		if err == domain.ErrCacheMiss {
			return false, nil
		}
		return false, err
	}
	return val == "1", nil
}
