package audit

import "errors"

// Sentinel errors for store operations.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrLoadFailed     = errors.New("load failed")
	ErrSaveFailed     = errors.New("save failed")
)
