package hcloud

import (
	"errors"
	"slices"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Result labels the outcome of an API call.
type Result string

const (
	ResultSuccess     Result = "success"
	ResultLocked      Result = "locked"
	ResultRateLimited Result = "rate_limited"
	ResultRejected    Result = "rejected"
	ResultError       Result = "error"
)

var (
	lockedCodes = []hcloud.ErrorCode{
		hcloud.ErrorCodeLocked,
		hcloud.ErrorCodeConflict,
		hcloud.ErrorCodeResourceUnavailable,
	}
	// Rejected requests fail the same way every time.
	rejectedCodes = []hcloud.ErrorCode{
		hcloud.ErrorCodeNotFound,
		hcloud.ErrorCodeInvalidInput,
		hcloud.ErrorCodeInvalidServerType,
		hcloud.ErrorCodeUniquenessError,
		hcloud.ErrorCodeResourceLimitExceeded,
	}
)

// Classify maps the error of an API call to a Result. Errors that are not
// API errors, such as transport failures, are ResultError.
func Classify(err error) Result {
	if err == nil {
		return ResultSuccess
	}

	var apiErr hcloud.Error
	if !errors.As(err, &apiErr) {
		return ResultError
	}
	switch {
	case slices.Contains(lockedCodes, apiErr.Code):
		return ResultLocked
	case apiErr.Code == hcloud.ErrorCodeRateLimitExceeded:
		return ResultRateLimited
	case slices.Contains(rejectedCodes, apiErr.Code):
		return ResultRejected
	default:
		return ResultError
	}
}

// Retryable reports whether the call may succeed if repeated unchanged.
func (r Result) Retryable() bool {
	return r == ResultLocked || r == ResultRateLimited
}
