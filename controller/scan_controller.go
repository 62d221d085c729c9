// controller/scan_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/soxlite/api/audit"
	soxlite_errors "github.com/soxlite/api/errors"
	"github.com/soxlite/api/model"
	"github.com/soxlite/api/service"
	"github.com/soxlite/api/util"
)

type ScanController struct {
	scanService    service.IScanService
	validationUtil *util.ValidationUtil
	now            func() time.Time
}

func NewScanController(scanService service.IScanService, validationUtil *util.ValidationUtil) *ScanController {
	return &ScanController{
		scanService:    scanService,
		validationUtil: validationUtil,
		now:            time.Now,
	}
}

// RegisterRoutes registers the API routes
func (sc *ScanController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/healthz", sc.Health)
	r.GET("/frameworks", sc.ListFrameworks)
	r.GET("/scans", sc.ListScans)

	r.POST("/anomalies", sc.DetectAnomalies)
	r.POST("/alerts", sc.DetectAlerts)
	r.POST("/alerts/notify", sc.NotifyAlerts)
	r.POST("/metrics", sc.ComputeMetrics)

	analytics := r.Group("/analytics")
	{
		analytics.POST("/trends", sc.Trends)
		analytics.POST("/owner-performance", sc.OwnerPerformance)
		analytics.POST("/heatmap", sc.Heatmap)
	}
}

// bindUpload reads the multipart "file" and the "mode" selector
func (sc *ScanController) bindUpload(c *gin.Context) (service.Upload, bool) {
	mode := c.PostForm("mode")
	if mode == "" {
		mode = c.Query("mode")
	}
	framework, err := model.ParseFramework(mode)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown compliance framework", err)
		return service.Upload{}, false
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.Is(err, http.ErrMissingFile) {
			err = soxlite_errors.ErrEmptyUpload
		} else if errors.As(err, &tooLarge) {
			err = errors.Join(soxlite_errors.ErrUploadTooLarge, err)
		} else {
			err = errors.Join(soxlite_errors.ErrDatasetDecode, err)
		}
		util.RespondWithServiceError(c, "A file upload is required", err)
		return service.Upload{}, false
	}
	data, err := sc.validationUtil.ReadUpload(header)
	if err != nil {
		util.RespondWithServiceError(c, "Invalid upload", err)
		return service.Upload{}, false
	}

	return service.Upload{
		FileName:  header.Filename,
		Data:      data,
		Framework: framework,
		ClientIP:  c.ClientIP(),
	}, true
}

func (sc *ScanController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (sc *ScanController) ListFrameworks(c *gin.Context) {
	catalog := sc.scanService.Catalog()
	frameworks := make([]gin.H, 0, len(model.Frameworks))
	for _, fw := range model.Frameworks {
		frameworks = append(frameworks, gin.H{
			"id":    fw,
			"name":  fw.DisplayName(),
			"rules": catalog[fw],
		})
	}
	c.JSON(http.StatusOK, gin.H{"frameworks": frameworks})
}

func (sc *ScanController) DetectAnomalies(c *gin.Context) {
	upload, ok := sc.bindUpload(c)
	if !ok {
		return
	}
	report, err := sc.scanService.DetectAnomalies(c.Request.Context(), upload)
	if err != nil {
		util.RespondWithServiceError(c, "Anomaly detection failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scan_id":   report.ScanID,
		"framework": report.Framework,
		"anomalies": report.Messages(),
		"findings":  report.Findings,
	})
}

func (sc *ScanController) DetectAlerts(c *gin.Context) {
	upload, ok := sc.bindUpload(c)
	if !ok {
		return
	}
	report, err := sc.scanService.DetectAlerts(c.Request.Context(), upload)
	if err != nil {
		util.RespondWithServiceError(c, "Alert detection failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"scan_id":    report.ScanID,
		"framework":  report.Framework,
		"alerts":     report.Messages(),
		"findings":   report.Findings,
		"dispatched": report.Dispatched,
	})
}

type notifyRequest struct {
	Alerts []string `json:"alerts" binding:"max=500"`
	Mode   string   `json:"mode"`
}

func (sc *ScanController) NotifyAlerts(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification request", err)
		return
	}
	framework, err := model.ParseFramework(req.Mode)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown compliance framework", err)
		return
	}

	err = sc.scanService.SendAlerts(c.Request.Context(), framework, req.Alerts)
	switch {
	case errors.Is(err, soxlite_errors.ErrNoAlerts):
		c.JSON(http.StatusOK, gin.H{"status": "no alerts to send"})
	case err != nil:
		util.RespondWithServiceError(c, "Failed to send alerts", err)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "sent"})
	}
}

func (sc *ScanController) ComputeMetrics(c *gin.Context) {
	upload, ok := sc.bindUpload(c)
	if !ok {
		return
	}
	snapshot, err := sc.scanService.ComputeMetrics(c.Request.Context(), upload)
	if err != nil {
		util.RespondWithServiceError(c, "Metrics computation failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"framework": upload.Framework,
		"metrics":   snapshot.Flatten(),
	})
}

func (sc *ScanController) Trends(c *gin.Context) {
	upload, ok := sc.bindUpload(c)
	if !ok {
		return
	}
	trends, err := sc.scanService.Trends(c.Request.Context(), upload)
	if err != nil {
		util.RespondWithServiceError(c, "Trend analysis failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trends": trends})
}

func (sc *ScanController) OwnerPerformance(c *gin.Context) {
	upload, ok := sc.bindUpload(c)
	if !ok {
		return
	}
	perf, err := sc.scanService.OwnerPerformance(c.Request.Context(), upload)
	if err != nil {
		util.RespondWithServiceError(c, "Owner performance analysis failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner_performance": perf})
}

func (sc *ScanController) Heatmap(c *gin.Context) {
	upload, ok := sc.bindUpload(c)
	if !ok {
		return
	}
	heatmap, err := sc.scanService.Heatmap(c.Request.Context(), upload)
	if err != nil {
		util.RespondWithServiceError(c, "Heatmap generation failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"heatmap": heatmap})
}

type scanQuery struct {
	From      string `form:"from"`
	To        string `form:"to"`
	Framework string `form:"framework"`
	Size      int    `form:"size" binding:"omitempty,min=1,max=1000"`
}

func (sc *ScanController) ListScans(c *gin.Context) {
	var q scanQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid query parameters", errors.Join(soxlite_errors.ErrInvalidQuery, err))
		return
	}
	from, to, err := sc.validationUtil.ParseDateRange(q.From, q.To, sc.now().UTC())
	if err != nil {
		util.RespondWithServiceError(c, "Invalid date range", err)
		return
	}
	var framework model.Framework
	if q.Framework != "" {
		if framework, err = model.ParseFramework(q.Framework); err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Unknown compliance framework", err)
			return
		}
	}

	scans, err := sc.scanService.ListScans(c.Request.Context(), audit.ScanQuery{
		From:      from,
		To:        to,
		Framework: framework,
		Size:      q.Size,
	})
	if err != nil {
		util.RespondWithServiceError(c, "Scan history unavailable", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scans": scans, "count": len(scans)})
}
