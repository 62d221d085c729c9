// util/cache_service.go

package util

import (
	"context"
	"fmt"
	"time"

	"github.com/soxlite/api/db"
	soxlite_errors "github.com/soxlite/api/errors"
	"github.com/soxlite/api/model"
)

// ReportCache stores anomaly reports and metrics snapshots keyed by upload
// content. Every method is a no-op miss while Redis is disabled.
type ReportCache interface {
	GetReport(ctx context.Context, key string) (*model.Report, error)
	SetReport(ctx context.Context, key string, report *model.Report) error
	GetMetrics(ctx context.Context, key string) (*model.MetricsSnapshot, error)
	SetMetrics(ctx context.Context, key string, snapshot model.MetricsSnapshot) error
}

type CacheService struct {
	ttl time.Duration
}

// NewCacheService uses ttl for every entry; zero means redis.defaultCacheTTL
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{ttl: ttl}
}

// CacheKey scopes an entry by file hash, framework, kind and calendar day so
// date-relative rules are re-evaluated daily.
func CacheKey(fileSHA256 string, framework model.Framework, kind string, now time.Time) string {
	return fmt.Sprintf("scan:%s|%s|%s|%s", fileSHA256, framework, kind, now.Format("2006-01-02"))
}

func (c *CacheService) GetReport(ctx context.Context, key string) (*model.Report, error) {
	if !db.Enabled() {
		return nil, nil
	}
	var report model.Report
	found, err := db.GetCachedJSON(ctx, key, &report)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", soxlite_errors.ErrCacheOperation, err)
	}
	if !found {
		return nil, nil
	}
	return &report, nil
}

func (c *CacheService) SetReport(ctx context.Context, key string, report *model.Report) error {
	if !db.Enabled() {
		return nil
	}
	if err := db.CacheJSON(ctx, key, report, c.ttl); err != nil {
		return fmt.Errorf("%w: %v", soxlite_errors.ErrCacheOperation, err)
	}
	return nil
}

func (c *CacheService) GetMetrics(ctx context.Context, key string) (*model.MetricsSnapshot, error) {
	if !db.Enabled() {
		return nil, nil
	}
	var snapshot model.MetricsSnapshot
	found, err := db.GetCachedJSON(ctx, key, &snapshot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", soxlite_errors.ErrCacheOperation, err)
	}
	if !found {
		return nil, nil
	}
	return &snapshot, nil
}

func (c *CacheService) SetMetrics(ctx context.Context, key string, snapshot model.MetricsSnapshot) error {
	if !db.Enabled() {
		return nil
	}
	if err := db.CacheJSON(ctx, key, snapshot, c.ttl); err != nil {
		return fmt.Errorf("%w: %v", soxlite_errors.ErrCacheOperation, err)
	}
	return nil
}
