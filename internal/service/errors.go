package service

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidInput     = errors.New("invalid input")
	// ErrNoItems marks a summary as unavailable rather than zero: an estimate
	// without items has no grand total to show.
	ErrNoItems        = errors.New("estimate has no items")
	ErrReportResolved = errors.New("report already resolved")
)
