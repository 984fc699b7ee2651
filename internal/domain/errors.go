package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUploadJobNotFound   = errors.New("upload job not found")
	ErrInvalidJobInput     = errors.New("invalid job input")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnknownBackend      = errors.New("unknown ocr backend")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrNoRecords           = errors.New("no player records could be recovered")
)
