package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrJobAPIRequestFailed is matched by every NetworkError.
	ErrJobAPIRequestFailed = zerr.New("job API request failed")

	// ErrJobAPIParseFailed is returned when a job API response body cannot be decoded.
	ErrJobAPIParseFailed = zerr.New("failed to parse job API response")

	// ErrInvalidBaseURL is returned when the configured API base URL is not absolute.
	ErrInvalidBaseURL = zerr.New("invalid job API base URL")

	// ErrInvalidJobID is returned when a job id is not a positive integer.
	ErrInvalidJobID = zerr.New("job id must be a positive integer")

	// ErrMissingSearchText is returned when a search is requested with blank text.
	ErrMissingSearchText = zerr.New("search text must not be empty")

	// ErrInvalidSortBy is returned when a sort name is neither "relevant" nor "recent".
	ErrInvalidSortBy = zerr.New("invalid sort, expected 'relevant' or 'recent'")

	// ErrQueryDisabled is returned when awaiting a key that cannot issue a request.
	ErrQueryDisabled = zerr.New("query key is disabled")

	// ErrFetcherPanicked is recorded on a cache entry whose fetcher panicked.
	ErrFetcherPanicked = zerr.New("query fetcher panicked")

	// ErrScopeMissing is returned when a state scope is constructed without a scope it depends on.
	ErrScopeMissing = zerr.New("state scope used outside of its established region")

	// ErrStorageReadFailed is returned when a stored value cannot be read.
	ErrStorageReadFailed = zerr.New("failed to read from storage")

	// ErrStorageWriteFailed is returned when a value cannot be written to storage.
	ErrStorageWriteFailed = zerr.New("failed to write to storage")

	// ErrStorageParseFailed is returned when a stored value cannot be deserialized.
	ErrStorageParseFailed = zerr.New("failed to parse stored value")

	// ErrStorageMarshalFailed is returned when a value cannot be serialized for storage.
	ErrStorageMarshalFailed = zerr.New("failed to marshal value for storage")

	// ErrStorageConnectFailed is returned when the storage backend cannot be reached.
	ErrStorageConnectFailed = zerr.New("failed to connect to storage backend")

	// ErrUnknownStorageBackend is returned when the configured storage backend is not supported.
	ErrUnknownStorageBackend = zerr.New("unknown storage backend, expected 'file', 'redis' or 'memory'")

	// ErrMissingRedisURL is returned when the redis backend is selected without a URL.
	ErrMissingRedisURL = zerr.New("storage.redis_url is required for the redis backend")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidDuration is returned when a configured duration cannot be parsed.
	ErrInvalidDuration = zerr.New("invalid duration")

	// ErrWatcherStartFailed is returned when the storage watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start storage watcher")
)

// NetworkError is a failed request to the job API: either a non-success
// response or a transport failure. Its message is safe to show to the user.
type NetworkError struct {
	StatusCode  int
	Description string
	Cause       error
}

func (e *NetworkError) Error() string {
	if e.Description != "" {
		return e.Description
	}
	if e.Cause != nil {
		return ErrJobAPIRequestFailed.Error() + ": " + e.Cause.Error()
	}
	return ErrJobAPIRequestFailed.Error()
}

// Unwrap returns the transport error, if any.
func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// Is makes every NetworkError match ErrJobAPIRequestFailed.
func (e *NetworkError) Is(target error) bool {
	return target == ErrJobAPIRequestFailed
}

// UserMessage returns the message to show for err: the API description for
// network errors, the full error text otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr.Error()
	}
	return err.Error()
}
