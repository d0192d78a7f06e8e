package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"asklab/internal/cache"
	"asklab/internal/domain"
	"asklab/internal/dto"
	"asklab/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService builds and serves the flattened question catalog.
//
// A snapshot is immutable once built; callers keep the snapshot they were
// handed and thread it through later lookups, so an edit racing a participant
// session changes nothing mid-flight. The last built snapshot is reused
// opportunistically (in-process, then a Redis copy) and can go stale until the
// next forced rebuild.
type CatalogService interface {
	// Snapshot returns the advisory snapshot, building one only when neither
	// the in-process pointer nor the cache has one.
	Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error)

	// Rebuild scans all groups and replaces the advisory snapshot.
	Rebuild(ctx context.Context) (*domain.CatalogSnapshot, error)

	// ListQuestions rebuilds and returns the minimal participant projection.
	ListQuestions(ctx context.Context) ([]dto.FixedQuestionResponse, error)
}

type catalogService struct {
	repo     domain.GroupRepository
	cache    domain.Cache // nil disables the shared snapshot copy
	cacheTTL time.Duration
	rebuilds singleflight.Group
	latest   atomic.Pointer[domain.CatalogSnapshot]
}

// NewCatalogService creates a new instance of catalogService
func NewCatalogService(repo domain.GroupRepository, cacheClient domain.Cache, cacheTTL time.Duration) CatalogService {
	return &catalogService{
		repo:     repo,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

func catalogCacheKey() string {
	return cache.GenerateCacheKey("catalog", "snapshot", "latest")
}

// Snapshot implements CatalogService
func (s *catalogService) Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	if snapshot := s.latest.Load(); snapshot != nil {
		return snapshot, nil
	}

	if snapshot := s.snapshotFromCache(ctx); snapshot != nil {
		s.latest.Store(snapshot)
		return snapshot, nil
	}

	return s.Rebuild(ctx)
}

// Rebuild implements CatalogService. Concurrent rebuilds in one process
// collapse into a single scan.
func (s *catalogService) Rebuild(ctx context.Context) (*domain.CatalogSnapshot, error) {
	result, err, _ := s.rebuilds.Do("rebuild", func() (interface{}, error) {
		groups, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, domain.NewInternalError("Failed to scan groups for catalog rebuild", err)
		}

		snapshot := domain.FlattenGroups(groups)
		s.latest.Store(snapshot)
		s.storeSnapshotInCache(ctx, snapshot)

		logger.Get().Info("Catalog rebuilt",
			zap.Int("groups", len(groups)),
			zap.Int("questions", snapshot.Size()),
		)
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.CatalogSnapshot), nil
}

// ListQuestions implements CatalogService
func (s *catalogService) ListQuestions(ctx context.Context) ([]dto.FixedQuestionResponse, error) {
	snapshot, err := s.Rebuild(ctx)
	if err != nil {
		return nil, err
	}

	questions := make([]dto.FixedQuestionResponse, 0, snapshot.Size())
	for _, q := range snapshot.Questions {
		questions = append(questions, dto.FixedQuestionResponse{
			ID:       q.AssignedID,
			Question: q.Question,
		})
	}
	return questions, nil
}

// snapshotFromCache loads the shared snapshot copy; any failure is treated as
// a miss.
func (s *catalogService) snapshotFromCache(ctx context.Context) *domain.CatalogSnapshot {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, catalogCacheKey())
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("CatalogService: cache read failed", zap.Error(err))
		}
		return nil
	}

	var snapshot domain.CatalogSnapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		logger.Get().Warn("CatalogService: discarding malformed cached snapshot", zap.Error(err))
		return nil
	}
	return &snapshot
}

// storeSnapshotInCache writes the shared snapshot copy; failures are logged,
// never surfaced, because the cache is advisory.
func (s *catalogService) storeSnapshotInCache(ctx context.Context, snapshot *domain.CatalogSnapshot) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Get().Warn("CatalogService: failed to serialize snapshot for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, catalogCacheKey(), string(payload), s.cacheTTL); err != nil {
		logger.Get().Warn("CatalogService: cache write failed", zap.Error(err))
	}
}
