package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed = fmt.Errorf("authentication failed")

	// Network and markup errors
	ErrFetchFailed        = fmt.Errorf("fetch failed")
	ErrParseFailed        = fmt.Errorf("parse failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Output errors
	ErrWriteFailed = fmt.Errorf("write failed")

	// Input validation errors
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrMissingArgument = fmt.Errorf("missing required argument")
)
