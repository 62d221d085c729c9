// errors/scan_errors.go
package errors

import "errors"

var (
	ErrUnknownFramework      = errors.New("unknown compliance framework")
	ErrUnsupportedFileFormat = errors.New("unsupported file format")
	ErrDatasetDecode         = errors.New("failed to decode dataset")
	ErrEmptyUpload           = errors.New("uploaded file is empty")
	ErrUploadTooLarge        = errors.New("uploaded file exceeds size limit")
	ErrInvalidQuery          = errors.New("invalid query parameters")
)
