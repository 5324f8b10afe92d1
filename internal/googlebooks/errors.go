package googlebooks

import (
	"errors"
	"fmt"
	"net/url"
)

// StatusError reports a non-2xx response from the volumes API.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api returned status %d", e.Code)
}

// Op identifies the call site for the client-error messages, which differ
// between search and single-volume lookup.
type Op int

const (
	OpSearch Op = iota
	OpLookup
)

// The full set of user-facing failure messages. Screens show exactly these
// strings; raw errors stay in the log.
const (
	msgConnectivity = "Unable to connect. Check your internet connection and try again."
	msgRateLimited  = "Too many requests. Please try again in a moment."
	msgServerError  = "Something went wrong on our end. Please try again later."
	msgSearchError  = "Request failed. Please try again."
	msgLookupError  = "Book could not be loaded. Please try again."
	msgFallback     = "Something went wrong. Please try again."
)

// Classify maps a client failure onto one display message. Transport-level
// failures win over status classification; everything unrecognized falls
// through to the generic message.
func Classify(err error, op Op) string {
	if err == nil {
		return ""
	}

	// net/http wraps every transport failure in *url.Error.
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return msgConnectivity
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		code := statusErr.Code
		switch {
		case code == 429:
			return msgRateLimited
		case code >= 500 && code < 600:
			return msgServerError
		case code >= 400 && code < 500:
			if op == OpLookup {
				return msgLookupError
			}
			return msgSearchError
		}
	}

	return msgFallback
}
