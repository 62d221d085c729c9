package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/soxlite/api/audit"
	"github.com/soxlite/api/engine"
	soxlite_errors "github.com/soxlite/api/errors"
	"github.com/soxlite/api/model"
	test_mock "github.com/soxlite/api/test/mock"
)

var fixedNow = time.Date(2030, 6, 15, 0, 0, 0, 0, time.UTC)

const soxCSV = "Risk Rating,Result,Owner,Due Date\nHigh,Failed,,2020-01-01\nLow,Pass,alice,2031-01-01\n"

type fixture struct {
	svc        *ScanService
	cache      *test_mock.MockReportCache
	audit      *test_mock.MockAuditService
	dispatcher *test_mock.MockDispatcher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cache:      &test_mock.MockReportCache{},
		audit:      &test_mock.MockAuditService{},
		dispatcher: &test_mock.MockDispatcher{},
	}
	eng := engine.New(engine.WithClock(func() time.Time { return fixedNow }))
	f.svc = NewScanService(eng, f.cache, f.audit, f.dispatcher, time.Second)
	f.svc.newID = func() string { return "scan-1" }
	t.Cleanup(func() {
		f.cache.AssertExpectations(t)
		f.audit.AssertExpectations(t)
		f.dispatcher.AssertExpectations(t)
	})
	return f
}

func soxUpload() Upload {
	return Upload{FileName: "controls.csv", Data: []byte(soxCSV), Framework: model.FrameworkSOX, ClientIP: "10.0.0.1"}
}

func TestDetectAnomaliesCachesAndAudits(t *testing.T) {
	f := newFixture(t)
	key := "scan:" + soxUpload().checksum() + "|sox|anomalies|2030-06-15"

	f.cache.On("GetReport", mock.Anything, key).Return(nil, nil)
	f.cache.On("SetReport", mock.Anything, key, mock.AnythingOfType("*model.Report")).Return(nil)
	f.audit.On("RecordScan", mock.Anything, mock.MatchedBy(func(r audit.ScanRecord) bool {
		return r.ScanID == "scan-1" && r.Tier == model.TierAll && r.RowCount == 2 && r.ClientIP == "10.0.0.1"
	})).Return(nil)

	report, err := f.svc.DetectAnomalies(context.Background(), soxUpload())

	require.NoError(t, err)
	assert.Equal(t, "scan-1", report.ScanID)
	assert.True(t, report.HasIssues())
	assert.Contains(t, report.Messages(), "1 control(s) have no assigned owner.")
	assert.Contains(t, report.Messages(), "1 control(s) are overdue.")
}

func TestDetectAnomaliesBoundsHungAuditWrite(t *testing.T) {
	f := newFixture(t)
	f.svc.sideEffectTimeout = 50 * time.Millisecond

	f.cache.On("GetReport", mock.Anything, mock.Anything).Return(nil, nil)
	f.cache.On("SetReport", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.audit.On("RecordScan", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			select {
			case <-ctx.Done():
			case <-time.After(3 * time.Second):
			}
		}).
		Return(context.DeadlineExceeded)

	start := time.Now()
	report, err := f.svc.DetectAnomalies(context.Background(), soxUpload())

	require.NoError(t, err)
	assert.True(t, report.HasIssues())
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewScanServiceDefaultsSideEffectTimeout(t *testing.T) {
	svc := NewScanService(engine.New(), nil, nil, nil, 0)
	assert.Equal(t, defaultSideEffectTimeout, svc.sideEffectTimeout)
}

func TestDetectAnomaliesCacheHitSkipsDecode(t *testing.T) {
	f := newFixture(t)
	cached := &model.Report{
		Framework: model.FrameworkSOX,
		Tier:      model.TierAll,
		Findings:  []model.Finding{{RuleID: "sox.overdue", Text: "cached", Severity: model.SeverityAnomaly}},
	}
	f.cache.On("GetReport", mock.Anything, mock.Anything).Return(cached, nil)
	f.audit.On("RecordScan", mock.Anything, mock.Anything).Return(nil)

	upload := soxUpload()
	upload.Data = []byte("not,really\n\"broken")
	report, err := f.svc.DetectAnomalies(context.Background(), upload)

	require.NoError(t, err)
	assert.Equal(t, []string{"cached"}, report.Messages())
	f.cache.AssertNotCalled(t, "SetReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestDetectAnomaliesSideEffectFailuresAreSwallowed(t *testing.T) {
	f := newFixture(t)
	f.cache.On("GetReport", mock.Anything, mock.Anything).Return(nil, soxlite_errors.ErrCacheOperation)
	f.cache.On("SetReport", mock.Anything, mock.Anything, mock.Anything).Return(soxlite_errors.ErrCacheOperation)
	f.audit.On("RecordScan", mock.Anything, mock.Anything).Return(errors.New("es down"))

	report, err := f.svc.DetectAnomalies(context.Background(), soxUpload())

	require.NoError(t, err)
	assert.True(t, report.HasIssues())
}

func TestDetectAnomaliesDecodeError(t *testing.T) {
	f := newFixture(t)
	f.cache.On("GetReport", mock.Anything, mock.Anything).Return(nil, nil)

	_, err := f.svc.DetectAnomalies(context.Background(), Upload{FileName: "x.pdf", Data: []byte("x"), Framework: model.FrameworkSOX})
	assert.ErrorIs(t, err, soxlite_errors.ErrUnsupportedFileFormat)
}

func TestUnknownFrameworkRejected(t *testing.T) {
	f := newFixture(t)
	upload := soxUpload()
	upload.Framework = "pci"

	_, err := f.svc.DetectAnomalies(context.Background(), upload)
	assert.ErrorIs(t, err, soxlite_errors.ErrUnknownFramework)
	_, err = f.svc.DetectAlerts(context.Background(), upload)
	assert.ErrorIs(t, err, soxlite_errors.ErrUnknownFramework)
	_, err = f.svc.ComputeMetrics(context.Background(), upload)
	assert.ErrorIs(t, err, soxlite_errors.ErrUnknownFramework)
}

func TestDetectAlertsDispatches(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.On("Dispatch", mock.Anything, model.FrameworkSOX, mock.MatchedBy(func(fs []model.Finding) bool {
		for _, finding := range fs {
			if finding.Severity != model.SeverityAlert {
				return false
			}
		}
		return len(fs) > 0
	})).Return(true)
	f.audit.On("RecordScan", mock.Anything, mock.MatchedBy(func(r audit.ScanRecord) bool {
		return r.Tier == model.TierAlert && r.Dispatched
	})).Return(nil)

	report, err := f.svc.DetectAlerts(context.Background(), soxUpload())

	require.NoError(t, err)
	assert.True(t, report.Dispatched)
	assert.Contains(t, report.Messages(), "High or critical risk controls have failed results.")
}

func TestDetectAlertsNothingToDispatch(t *testing.T) {
	f := newFixture(t)
	f.audit.On("RecordScan", mock.Anything, mock.Anything).Return(nil)

	upload := soxUpload()
	upload.Data = []byte("Risk Rating,Result,Owner\nLow,Pass,alice\n")
	report, err := f.svc.DetectAlerts(context.Background(), upload)

	require.NoError(t, err)
	assert.False(t, report.Dispatched)
	assert.Equal(t, []string{model.NoAlertsText}, report.Messages())
	f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeMetrics(t *testing.T) {
	f := newFixture(t)
	f.cache.On("GetMetrics", mock.Anything, mock.Anything).Return(nil, nil)
	f.cache.On("SetMetrics", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	snapshot, err := f.svc.ComputeMetrics(context.Background(), soxUpload())

	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.TotalRows)
	assert.Equal(t, 1, snapshot.FailedCount)
	assert.Equal(t, 1, snapshot.OverdueCount)
	assert.Equal(t, 1, snapshot.MissingOwnerCount)
}

func TestComputeMetricsCacheHit(t *testing.T) {
	f := newFixture(t)
	f.cache.On("GetMetrics", mock.Anything, mock.Anything).Return(&model.MetricsSnapshot{TotalRows: 42}, nil)

	snapshot, err := f.svc.ComputeMetrics(context.Background(), soxUpload())

	require.NoError(t, err)
	assert.Equal(t, 42, snapshot.TotalRows)
}

func TestAnalytics(t *testing.T) {
	f := newFixture(t)

	trends, err := f.svc.Trends(context.Background(), soxUpload())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2020-01": 1}, trends.OverdueByMonth)

	perf, err := f.svc.OwnerPerformance(context.Background(), soxUpload())
	require.NoError(t, err)
	assert.Equal(t, model.OwnerStats{Total: 1}, perf["alice"])

	heatmap, err := f.svc.Heatmap(context.Background(), soxUpload())
	require.NoError(t, err)
	assert.NotEmpty(t, heatmap.Cells)
}

func TestSendAlerts(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.On("Send", mock.Anything, model.FrameworkESG, []string{"a", "b"}).Return(nil).Once()

	require.NoError(t, f.svc.SendAlerts(context.Background(), model.FrameworkESG, []string{" a ", "", "b"}))
	assert.ErrorIs(t, f.svc.SendAlerts(context.Background(), model.FrameworkESG, []string{"  "}), soxlite_errors.ErrNoAlerts)
}

func TestListScans(t *testing.T) {
	f := newFixture(t)
	f.audit.On("Enabled").Return(true)
	f.audit.On("QueryScans", mock.Anything, mock.Anything).Return([]audit.ScanRecord{{ScanID: "a"}}, nil).Once()

	scans, err := f.svc.ListScans(context.Background(), audit.ScanQuery{})
	require.NoError(t, err)
	assert.Len(t, scans, 1)
}

func TestListScansDisabled(t *testing.T) {
	f := newFixture(t)
	f.audit.On("Enabled").Return(false)

	_, err := f.svc.ListScans(context.Background(), audit.ScanQuery{})
	assert.ErrorIs(t, err, soxlite_errors.ErrAuditUnavailable)
}

func TestCatalog(t *testing.T) {
	f := newFixture(t)
	catalog := f.svc.Catalog()
	assert.Len(t, catalog, len(model.Frameworks))
	assert.NotEmpty(t, catalog[model.FrameworkISO27001])
}
