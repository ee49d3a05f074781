package trackviews

import (
	"context"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/whoestate/backend/internal/logging"
)

const counterPrefix = "views:property:"

// Counter is the Redis surface the service needs; *redis.Client
// satisfies it.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Service records listing views and keeps a per-property view counter
// in Redis. The counter is an optimization: when Redis is unavailable
// the SQL store remains the source of truth and counting degrades to a
// COUNT query. Counter faults are logged, never surfaced.
type Service struct {
	repo    Repository
	counter Counter
	logger  logging.Logger
	timeout time.Duration
}

func NewService(repo Repository, counter Counter, logger logging.Logger) *Service {
	return &Service{
		repo:    repo,
		counter: counter,
		logger:  logger.With("module", "trackviews"),
		timeout: 250 * time.Millisecond,
	}
}

func (s *Service) Record(ctx context.Context, userID, propertyID string) (*TrackView, error) {
	tv, inserted, err := s.repo.Record(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}

	// only first-time views move the counter, so it tracks the same
	// quantity as the SQL fallback
	if inserted && s.counter != nil {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		if err := s.counter.Incr(cctx, counterPrefix+propertyID).Err(); err != nil {
			s.logger.Warn(ctx, "view counter bump failed", "property_id", propertyID, "error", err)
		}
	}
	return tv, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*TrackView, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByProperty(ctx context.Context, propertyID string) ([]*TrackView, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

// CountForProperty reads the Redis counter first and falls back to the
// store when the counter is missing or unreachable.
func (s *Service) CountForProperty(ctx context.Context, propertyID string) (int64, error) {
	if s.counter != nil {
		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		n, err := s.counter.Get(cctx, counterPrefix+propertyID).Int64()
		if err == nil {
			return n, nil
		}
		if err != redis.Nil {
			s.logger.Warn(ctx, "view counter read failed, falling back to store",
				"property_id", propertyID, "error", err)
		}
	}
	return s.repo.CountForProperty(ctx, propertyID)
}
