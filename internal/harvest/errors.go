package harvest

import (
	"errors"
	"fmt"
)

// ErrRateLimited marks a fetch attempt rejected with HTTP 429. The fetcher
// retries these internally with exponential backoff; callers only see the
// sentinel when the final unconditional attempt is still rate limited.
var ErrRateLimited = errors.New("rate limited")

// FetchError is a non-retryable per-URL failure: a transport error or a
// non-success status other than 429. It isolates to the one task that hit
// it and never aborts sibling tasks.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
