// util/validation_util.go

package util

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	soxlite_errors "github.com/soxlite/api/errors"
)

type ValidationUtil struct {
	maxUploadBytes int64
}

// NewValidationUtil limits uploads to maxUploadMB megabytes. Zero means no limit.
func NewValidationUtil(maxUploadMB int64) *ValidationUtil {
	return &ValidationUtil{maxUploadBytes: maxUploadMB << 20}
}

// ReadUpload validates and reads a multipart file
func (v *ValidationUtil) ReadUpload(header *multipart.FileHeader) ([]byte, error) {
	if header == nil {
		return nil, soxlite_errors.ErrEmptyUpload
	}
	if strings.TrimSpace(header.Filename) == "" {
		return nil, fmt.Errorf("%w: missing file name", soxlite_errors.ErrUnsupportedFileFormat)
	}
	if header.Size == 0 {
		return nil, soxlite_errors.ErrEmptyUpload
	}
	if v.maxUploadBytes > 0 && header.Size > v.maxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", soxlite_errors.ErrUploadTooLarge, header.Size, v.maxUploadBytes)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", soxlite_errors.ErrDatasetDecode, err)
	}
	defer f.Close()

	return v.readLimited(f)
}

func (v *ValidationUtil) readLimited(r io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	limit := v.maxUploadBytes
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %v", soxlite_errors.ErrDatasetDecode, err)
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, soxlite_errors.ErrUploadTooLarge
	}
	return buf.Bytes(), nil
}

// ParseDateRange parses the scan history bounds. Missing bounds default to
// the last 30 days ending at now.
func (v *ValidationUtil) ParseDateRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	end := now
	if strings.TrimSpace(to) != "" {
		t, err := dateparse.ParseIn(to, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to=%q", soxlite_errors.ErrInvalidQuery, to)
		}
		// a bare date includes the whole day
		if t.Equal(t.Truncate(24 * time.Hour)) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		end = t
	}
	start := end.AddDate(0, 0, -30)
	if strings.TrimSpace(from) != "" {
		t, err := dateparse.ParseIn(from, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from=%q", soxlite_errors.ErrInvalidQuery, from)
		}
		start = t
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from is after to", soxlite_errors.ErrInvalidQuery)
	}
	return start, end, nil
}
