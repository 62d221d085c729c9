// errors/storage_errors.go
package errors

import "errors"

var (
	ErrAuditUnavailable = errors.New("audit trail unavailable")
	ErrCacheOperation   = errors.New("cache operation failed")
)
