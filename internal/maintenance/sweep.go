package maintenance

import (
	"context"
	"log/slog"

	"github.com/archimate-engine/batchmut/internal/model"
)

// OrphanSweep is a Job that runs DetectOrphans on an interval and logs its
// findings. Grounded on the teacher's janitor run's logFindings: a summary
// line, then one line per finding only when something is actually wrong.
type OrphanSweep struct {
	model  *model.Model
	logger *slog.Logger

	// LastReport is the most recent sweep's result, for transport handlers
	// that want the cached report between scheduled runs.
	LastReport OrphanReport
}

// NewOrphanSweep creates a sweep job over m.
func NewOrphanSweep(m *model.Model, logger *slog.Logger) *OrphanSweep {
	return &OrphanSweep{model: m, logger: logger}
}

func (s *OrphanSweep) Name() string { return "orphan-sweep" }

func (s *OrphanSweep) Run(ctx context.Context) error {
	report := DetectOrphans(s.model)
	s.LastReport = report

	s.logger.Info("orphan sweep complete",
		"orphan_count", report.OrphanCount,
		"element_count", report.EntityCounts["element"],
		"relationship_count", report.EntityCounts["relationship"],
		"view_count", report.EntityCounts["view"],
		"folder_count", report.EntityCounts["folder"])

	if report.OrphanCount > 0 {
		for _, o := range report.Orphans {
			s.logger.Warn("orphan entity",
				"entity_type", o.EntityType,
				"kind", o.Kind,
				"id", o.ID)
		}
	}
	return nil
}

// Evictor is the subset of idempotency.Cache a maintenance Job needs; kept
// as an interface here so this package does not depend on idempotency (and,
// through it, on engine).
type Evictor interface {
	EvictExpired() int
}

// CacheEviction is a Job that sweeps expired idempotency-cache entries
// (spec.md §5) on the same schedule as orphan detection.
type CacheEviction struct {
	cache  Evictor
	logger *slog.Logger
}

// NewCacheEviction creates an eviction job over cache.
func NewCacheEviction(cache Evictor, logger *slog.Logger) *CacheEviction {
	return &CacheEviction{cache: cache, logger: logger}
}

func (c *CacheEviction) Name() string { return "idempotency-cache-eviction" }

func (c *CacheEviction) Run(ctx context.Context) error {
	evicted := c.cache.EvictExpired()
	if evicted > 0 {
		c.logger.Info("evicted expired idempotency entries", "count", evicted)
	}
	return nil
}
