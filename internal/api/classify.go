package api

import "net/http"

// action is the outcome of classifying a response.
type action int

const (
	// passthrough: success, hand the body to the caller unchanged.
	passthrough action = iota
	// refreshAndRetry: attempt one token refresh and re-issue the request once.
	refreshAndRetry
	// fail: propagate the failure, no further retries.
	fail
)

// classify is the response decision table. The retried flag belongs to the
// individual request, so concurrent failures cannot starve each other and the
// refresh/retry loop stays bounded at one iteration.
func classify(status int, retried bool) action {
	if status >= 200 && status < 300 {
		return passthrough
	}
	if status == http.StatusUnauthorized && !retried {
		return refreshAndRetry
	}
	return fail
}
