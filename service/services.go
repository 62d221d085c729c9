// service/services.go
package service

import (
	"time"

	"github.com/soxlite/api/audit"
	"github.com/soxlite/api/engine"
	"github.com/soxlite/api/notifier"
	"github.com/soxlite/api/util"
)

type Services struct {
	Scan IScanService
}

func InitializeServices(
	eng *engine.Engine,
	auditService audit.Service,
	cacheService util.ReportCache,
	dispatcher notifier.Dispatcher,
	sideEffectTimeout time.Duration,
) (*Services, error) {
	return &Services{
		Scan: NewScanService(eng, cacheService, auditService, dispatcher, sideEffectTimeout),
	}, nil
}
