// audit/service.go
package audit

import (
	"context"

	soxlite_errors "github.com/soxlite/api/errors"
)

type Service interface {
	RecordScan(ctx context.Context, record ScanRecord) error
	QueryScans(ctx context.Context, query ScanQuery) ([]ScanRecord, error)
	Enabled() bool
}

type service struct {
	repo Repository
}

// NewService wraps repo. A nil repo yields a disabled service.
func NewService(repo Repository) Service {
	if repo == nil {
		return disabled{}
	}
	return &service{repo: repo}
}

func (s *service) RecordScan(ctx context.Context, record ScanRecord) error {
	return s.repo.RecordScan(ctx, record)
}

func (s *service) QueryScans(ctx context.Context, query ScanQuery) ([]ScanRecord, error) {
	return s.repo.QueryScans(ctx, query)
}

func (s *service) Enabled() bool { return true }

// disabled is used when elasticsearch.enabled is false
type disabled struct{}

func (disabled) RecordScan(context.Context, ScanRecord) error { return nil }

func (disabled) QueryScans(context.Context, ScanQuery) ([]ScanRecord, error) {
	return nil, soxlite_errors.ErrAuditUnavailable
}

func (disabled) Enabled() bool { return false }
