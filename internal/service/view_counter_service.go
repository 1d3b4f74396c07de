package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"mediquick-api/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	ViewCountKeyPrefix = "lab_test:views:"
	ViewDirtySetKey    = "lab_test:views:dirty"

	// Ids popped from the dirty set per flush round.
	viewFlushBatchSize = 500
)

// incrViewScript bumps the buffered count and marks the test dirty in one
// atomic step so a flush can never see a count without its marker.
var incrViewScript = redis.NewScript(`
	local n = redis.call('INCR', KEYS[1])
	redis.call('SADD', KEYS[2], ARGV[1])
	return n
`)

// ViewCounterService buffers lab test detail views in Redis and periodically
// folds them into the view_count column.
type ViewCounterService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	labTestRepo repository.LabTestRepository

	flushing atomic.Bool
}

func NewViewCounterService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, labTestRepo repository.LabTestRepository) *ViewCounterService {
	return &ViewCounterService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		labTestRepo: labTestRepo,
	}
}

func viewKey(id string) string {
	return ViewCountKeyPrefix + id
}

// Incr records one view and returns the number of views still buffered.
func (s *ViewCounterService) Incr(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := incrViewScript.Run(ctx, s.redisClient, []string{viewKey(id.String()), ViewDirtySetKey}, id.String()).Int64()
	if err != nil {
		return 0, fmt.Errorf("incr views for lab test %s: %w", id, err)
	}
	return n, nil
}

// Pending returns views recorded but not yet flushed.
func (s *ViewCounterService) Pending(ctx context.Context, id uuid.UUID) (int64, error) {
	n, err := s.redisClient.Get(ctx, viewKey(id.String())).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Flush moves every buffered count into the database and returns the number
// of lab tests updated. Concurrent calls are skipped.
func (s *ViewCounterService) Flush(ctx context.Context) (int, error) {
	if !s.flushing.CompareAndSwap(false, true) {
		s.log.Debug("View flush already running, skipping")
		return 0, nil
	}
	defer s.flushing.Store(false)

	startTime := time.Now()
	flushed := 0

	for {
		ids, err := s.redisClient.SPopN(ctx, ViewDirtySetKey, viewFlushBatchSize).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return flushed, fmt.Errorf("pop dirty lab tests: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		counts, err := s.drain(ctx, ids)
		if err != nil {
			return flushed, err
		}

		if err := s.labTestRepo.AddViewCounts(s.db.WithContext(ctx), counts); err != nil {
			s.log.Warnf("Failed to persist %d view counts, restoring buffer: %+v", len(counts), err)
			s.restore(ctx, counts)
			return flushed, fmt.Errorf("persist view counts: %w", err)
		}

		flushed += len(counts)

		if len(ids) < viewFlushBatchSize {
			break
		}

		select {
		case <-ctx.Done():
			return flushed, ctx.Err()
		default:
		}
	}

	if flushed > 0 {
		s.log.Infof("Flushed view counts for %d lab tests in %v", flushed, time.Since(startTime))
	}
	return flushed, nil
}

// drain atomically reads and deletes the buffered counts for ids.
func (s *ViewCounterService) drain(ctx context.Context, ids []string) (map[uuid.UUID]int64, error) {
	pipe := s.redisClient.TxPipeline()
	cmds := make(map[string]*redis.StringCmd, len(ids))
	for _, id := range ids {
		cmds[id] = pipe.GetDel(ctx, viewKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("drain view counts: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(ids))
	for id, cmd := range cmds {
		n, err := cmd.Int64()
		if err != nil {
			continue
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			s.log.Warnf("Dropping views for malformed lab test id %q", id)
			continue
		}
		counts[parsed] = n
	}
	return counts, nil
}

// restore puts counts back into the buffer after a failed database write.
func (s *ViewCounterService) restore(ctx context.Context, counts map[uuid.UUID]int64) {
	pipe := s.redisClient.TxPipeline()
	for id, n := range counts {
		pipe.IncrBy(ctx, viewKey(id.String()), n)
		pipe.SAdd(ctx, ViewDirtySetKey, id.String())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Errorf("Failed to restore view counts, %d lab tests lost views: %+v", len(counts), err)
	}
}
