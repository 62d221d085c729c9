// service/scan_service.go
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/soxlite/api/audit"
	"github.com/soxlite/api/dataset"
	"github.com/soxlite/api/engine"
	soxlite_errors "github.com/soxlite/api/errors"
	logger "github.com/soxlite/api/logging"
	"github.com/soxlite/api/model"
	"github.com/soxlite/api/notifier"
	"github.com/soxlite/api/util"
)

const (
	kindAnomalies = "anomalies"
	kindMetrics   = "metrics"

	defaultSideEffectTimeout = 5 * time.Second
)

// Upload is one decoded request: the raw file and the selected framework
type Upload struct {
	FileName  string
	Data      []byte
	Framework model.Framework
	ClientIP  string
}

func (u Upload) checksum() string {
	sum := sha256.Sum256(u.Data)
	return hex.EncodeToString(sum[:])
}

// IScanService runs uploads through the engine and its side effects
type IScanService interface {
	DetectAnomalies(ctx context.Context, upload Upload) (*model.Report, error)
	DetectAlerts(ctx context.Context, upload Upload) (*model.Report, error)
	ComputeMetrics(ctx context.Context, upload Upload) (model.MetricsSnapshot, error)
	Trends(ctx context.Context, upload Upload) (model.Trends, error)
	OwnerPerformance(ctx context.Context, upload Upload) (map[string]model.OwnerStats, error)
	Heatmap(ctx context.Context, upload Upload) (model.Heatmap, error)
	SendAlerts(ctx context.Context, framework model.Framework, alerts []string) error
	ListScans(ctx context.Context, query audit.ScanQuery) ([]audit.ScanRecord, error)
	Catalog() map[model.Framework][]model.RuleDescriptor
}

type ScanService struct {
	engine       *engine.Engine
	cache        util.ReportCache
	auditService audit.Service
	dispatcher   notifier.Dispatcher
	newID        func() string

	// sideEffectTimeout bounds the audit and cache writes after a scan
	sideEffectTimeout time.Duration
}

func NewScanService(eng *engine.Engine, cache util.ReportCache, auditService audit.Service, dispatcher notifier.Dispatcher, sideEffectTimeout time.Duration) *ScanService {
	if sideEffectTimeout <= 0 {
		sideEffectTimeout = defaultSideEffectTimeout
	}
	return &ScanService{
		engine:            eng,
		cache:             cache,
		auditService:      auditService,
		dispatcher:        dispatcher,
		newID:             uuid.NewString,
		sideEffectTimeout: sideEffectTimeout,
	}
}

func (s *ScanService) decode(upload Upload) (*model.RecordSet, error) {
	if !engine.Supported(upload.Framework) {
		return nil, fmt.Errorf("%w: %q", soxlite_errors.ErrUnknownFramework, upload.Framework)
	}
	rs, err := dataset.Decode(upload.FileName, upload.Data)
	if err != nil {
		logger.Warn("Dataset decode failed",
			zap.String("fileName", upload.FileName),
			zap.String("framework", upload.Framework.String()),
			zap.Error(err))
		return nil, err
	}
	return rs, nil
}

// DetectAnomalies runs every catalog rule. Reports are cached per file and day.
func (s *ScanService) DetectAnomalies(ctx context.Context, upload Upload) (*model.Report, error) {
	if !engine.Supported(upload.Framework) {
		return nil, fmt.Errorf("%w: %q", soxlite_errors.ErrUnknownFramework, upload.Framework)
	}
	sum := upload.checksum()
	key := util.CacheKey(sum, upload.Framework, kindAnomalies, s.engine.Now())

	report, err := s.cache.GetReport(ctx, key)
	if err != nil {
		logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
	}
	cached := report != nil
	if !cached {
		rs, err := s.decode(upload)
		if err != nil {
			return nil, err
		}
		report = s.engine.Scan(rs, upload.Framework, model.TierAll)
	}
	report.ScanID = s.newID()

	s.afterScan(ctx, report, upload, sum, func(ctx context.Context) error {
		if cached {
			return nil
		}
		return s.cache.SetReport(ctx, key, report)
	})

	logger.Info("Anomaly scan completed",
		zap.String("scanID", report.ScanID),
		zap.String("framework", report.Framework.String()),
		zap.Int("rows", report.RowCount),
		zap.Int("findings", len(report.Findings)),
		zap.Bool("cached", cached))
	return report, nil
}

// DetectAlerts never reads the cache so dispatch reflects a fresh evaluation
func (s *ScanService) DetectAlerts(ctx context.Context, upload Upload) (*model.Report, error) {
	rs, err := s.decode(upload)
	if err != nil {
		return nil, err
	}
	report := s.engine.Scan(rs, upload.Framework, model.TierAlert)
	report.ScanID = s.newID()
	if report.HasIssues() {
		report.Dispatched = s.dispatcher.Dispatch(ctx, upload.Framework, report.Findings)
	}

	s.afterScan(ctx, report, upload, upload.checksum(), nil)

	logger.Info("Alert scan completed",
		zap.String("scanID", report.ScanID),
		zap.String("framework", report.Framework.String()),
		zap.Int("rows", report.RowCount),
		zap.Bool("dispatched", report.Dispatched))
	return report, nil
}

// afterScan writes the audit record and the optional cache entry
// concurrently, within sideEffectTimeout. Failures are logged only.
func (s *ScanService) afterScan(ctx context.Context, report *model.Report, upload Upload, sum string, cacheWrite func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sideEffectTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	log := logger.WithContext(
		zap.String("scanID", report.ScanID),
		zap.String("framework", report.Framework.String()),
		zap.String("tier", string(report.Tier)))

	g.Go(func() error {
		record := audit.NewScanRecord(report, upload.FileName, sum, upload.ClientIP)
		if err := s.auditService.RecordScan(gctx, record); err != nil {
			log.Warn("Scan audit write failed", zap.Error(err))
		}
		return nil
	})
	if cacheWrite != nil {
		g.Go(func() error {
			if err := cacheWrite(gctx); err != nil {
				log.Warn("Report cache write failed", zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (s *ScanService) ComputeMetrics(ctx context.Context, upload Upload) (model.MetricsSnapshot, error) {
	if !engine.Supported(upload.Framework) {
		return model.MetricsSnapshot{}, fmt.Errorf("%w: %q", soxlite_errors.ErrUnknownFramework, upload.Framework)
	}
	key := util.CacheKey(upload.checksum(), upload.Framework, kindMetrics, s.engine.Now())

	cached, err := s.cache.GetMetrics(ctx, key)
	if err != nil {
		logger.Warn("Metrics cache read failed", zap.String("key", key), zap.Error(err))
	}
	if cached != nil {
		return *cached, nil
	}

	rs, err := s.decode(upload)
	if err != nil {
		return model.MetricsSnapshot{}, err
	}
	snapshot := s.engine.Metrics(rs, upload.Framework)
	if err := s.cache.SetMetrics(ctx, key, snapshot); err != nil {
		logger.Warn("Metrics cache write failed", zap.String("key", key), zap.Error(err))
	}
	return snapshot, nil
}

func (s *ScanService) Trends(ctx context.Context, upload Upload) (model.Trends, error) {
	rs, err := s.decode(upload)
	if err != nil {
		return model.Trends{}, err
	}
	return s.engine.Trends(rs, upload.Framework), nil
}

func (s *ScanService) OwnerPerformance(ctx context.Context, upload Upload) (map[string]model.OwnerStats, error) {
	rs, err := s.decode(upload)
	if err != nil {
		return nil, err
	}
	return s.engine.OwnerPerformance(rs, upload.Framework), nil
}

func (s *ScanService) Heatmap(ctx context.Context, upload Upload) (model.Heatmap, error) {
	rs, err := s.decode(upload)
	if err != nil {
		return model.Heatmap{}, err
	}
	return s.engine.Heatmap(rs, upload.Framework), nil
}

// SendAlerts delivers caller supplied alert lines synchronously
func (s *ScanService) SendAlerts(ctx context.Context, framework model.Framework, alerts []string) error {
	lines := make([]string, 0, len(alerts))
	for _, a := range alerts {
		if a = strings.TrimSpace(a); a != "" {
			lines = append(lines, a)
		}
	}
	if len(lines) == 0 {
		return soxlite_errors.ErrNoAlerts
	}
	if err := s.dispatcher.Send(ctx, framework, lines); err != nil {
		logger.Warn("Manual alert notification failed",
			zap.String("framework", framework.String()),
			zap.Error(err))
		return err
	}
	return nil
}

func (s *ScanService) ListScans(ctx context.Context, query audit.ScanQuery) ([]audit.ScanRecord, error) {
	if !s.auditService.Enabled() {
		return nil, soxlite_errors.ErrAuditUnavailable
	}
	scans, err := s.auditService.QueryScans(ctx, query)
	if err != nil {
		logger.Error("Scan history query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", soxlite_errors.ErrAuditUnavailable, err)
	}
	return scans, nil
}

func (s *ScanService) Catalog() map[model.Framework][]model.RuleDescriptor {
	out := make(map[model.Framework][]model.RuleDescriptor, len(model.Frameworks))
	for _, fw := range model.Frameworks {
		out[fw] = engine.Describe(fw)
	}
	return out
}
