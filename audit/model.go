// audit/model.go
package audit

import (
	"time"

	"github.com/soxlite/api/model"
)

// ScanRecord is one anomaly or alert scan as stored in the audit index
type ScanRecord struct {
	ScanID       string          `json:"scan_id"`
	Timestamp    time.Time       `json:"timestamp"`
	Framework    model.Framework `json:"framework"`
	Tier         model.Tier      `json:"tier"`
	FileName     string          `json:"file_name"`
	FileSHA256   string          `json:"file_sha256"`
	RowCount     int             `json:"row_count"`
	FindingCount int             `json:"finding_count"`
	Findings     []string        `json:"findings"`
	Dispatched   bool            `json:"dispatched"`
	ClientIP     string          `json:"client_ip,omitempty"`
}

// ScanQuery filters the scan history. A zero Framework matches all.
type ScanQuery struct {
	From      time.Time
	To        time.Time
	Framework model.Framework
	Size      int
}

// NewScanRecord summarises a report for the audit index. The sentinel
// "no issues" finding is not counted.
func NewScanRecord(report *model.Report, fileName, fileSHA256, clientIP string) ScanRecord {
	findings := report.Messages()
	count := len(report.Findings)
	if model.IsSentinel(report.Findings) {
		count = 0
	}
	return ScanRecord{
		ScanID:       report.ScanID,
		Timestamp:    report.GeneratedAt,
		Framework:    report.Framework,
		Tier:         report.Tier,
		FileName:     fileName,
		FileSHA256:   fileSHA256,
		RowCount:     report.RowCount,
		FindingCount: count,
		Findings:     findings,
		Dispatched:   report.Dispatched,
		ClientIP:     clientIP,
	}
}
