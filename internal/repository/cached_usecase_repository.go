package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/usecase-catalog/internal/domain"
)

const listCacheKey = "use_cases:list"

// cachedUseCaseRepository decorates a UseCaseRepository with a redis-backed
// cache of the full listing. The listing is the hot path: the frontend
// fetches the whole collection once per view and filters client-side. Any
// write invalidates. Cache failures are logged and fall through to the
// source; the cache never changes an operation's outcome.
type cachedUseCaseRepository struct {
	source UseCaseRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUseCaseRepository wraps source with the listing cache.
func NewCachedUseCaseRepository(source UseCaseRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UseCaseRepository {
	return &cachedUseCaseRepository{source: source, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUseCaseRepository) List(ctx context.Context) ([]domain.UseCase, error) {
	raw, err := r.client.Get(ctx, listCacheKey).Bytes()
	if err == nil {
		var cached []domain.UseCase
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		r.logger.Warn("discarding malformed listing cache entry")
	} else if err != redis.Nil {
		r.logger.Warn("listing cache read failed", zap.Error(err))
	}

	result, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := r.client.Set(ctx, listCacheKey, raw, r.ttl).Err(); err != nil {
			r.logger.Warn("listing cache write failed", zap.Error(err))
		}
	}
	return result, nil
}

func (r *cachedUseCaseRepository) GetByID(ctx context.Context, id string) (*domain.UseCase, error) {
	return r.source.GetByID(ctx, id)
}

func (r *cachedUseCaseRepository) Create(ctx context.Context, uc *domain.UseCase) error {
	if err := r.source.Create(ctx, uc); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedUseCaseRepository) Update(ctx context.Context, id string, update UseCaseUpdate) (*domain.UseCase, error) {
	uc, err := r.source.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return uc, nil
}

func (r *cachedUseCaseRepository) Delete(ctx context.Context, id string) error {
	if err := r.source.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedUseCaseRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, listCacheKey).Err(); err != nil {
		r.logger.Warn("listing cache invalidation failed", zap.Error(err))
	}
}
