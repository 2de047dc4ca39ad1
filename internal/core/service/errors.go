package service

import "github.com/yndnr/pak-go/pkg/pak"

// Request and system errors raised above the key library.
var (
	// ErrInvalidArgument indicates a request argument is out of range.
	ErrInvalidArgument = pak.NewError("PAK-ARG-4000", "invalid argument")

	// ErrRateLimited indicates the caller exceeded its request budget.
	ErrRateLimited = pak.NewError("PAK-SYS-4290", "too many requests")

	// ErrInternal indicates an unexpected server failure.
	ErrInternal = pak.NewError("PAK-SYS-5000", "internal server error")
)
