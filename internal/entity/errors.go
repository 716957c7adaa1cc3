package entity

import "errors"

var (
	// Tool errors
	ErrToolNotImplemented = errors.New("tool not implemented")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrToolNotFound       = errors.New("tool not found")

	// Input errors
	ErrInvalidInput      = errors.New("invalid input file")
	ErrNoFiles           = errors.New("no files provided")
	ErrFileTooLarge      = errors.New("file is too large")
	ErrTooManyFiles      = errors.New("too many files in one request")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrPasswordRequired  = errors.New("password is required")
	ErrTextRequired      = errors.New("text is required")

	// Processing errors
	ErrProcessingFailed = errors.New("library operation failed")
	ErrEngineNotFound   = errors.New("conversion engine is not installed")

	// Conversion server errors
	ErrConversionServer  = errors.New("conversion server failed")
	ErrConversionTimeout = errors.New("conversion server timed out")

	// Result errors
	ErrResultNotFound = errors.New("result not found")
)
