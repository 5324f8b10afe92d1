// Package googlebooks provides a read-only client for the Google Books
// volumes API.
//
// # Overview
//
// The package covers the three lookups the application needs: free-text
// search, a curated popular shelf, and a single-volume fetch by identifier.
// Each request is a plain HTTPS GET against the configured base URL; there
// is no authentication beyond an optional API key appended as a query
// parameter.
//
// # Core Types
//
// Client:
//   - Holds the parsed base URL, API key, popular subject, and HTTP client
//   - Search and Popular share one request builder and differ only in
//     query, result cap, and ordering
//   - Lookup fetches a single volume and passes HTTP 404 through the
//     normal error path rather than treating it as a domain value
//
// Finder:
//   - Interface over the client's three operations
//   - Lets the UI be tested against a fake without a running server
//
// Volume / VolumeInfo:
//   - Decoded subset of the API's volume resource
//   - Display helpers (AuthorLine, CoverURL, HasRating) keep formatting
//     rules next to the data they interpret
//
// # Error Handling
//
// Transport failures surface as *url.Error from the HTTP client. Non-2xx
// responses become *StatusError carrying the status code. Classify turns
// either kind into one of a small set of fixed user-facing messages,
// chosen by failure class and by which operation (search or lookup) was
// running. Callers never show raw error text to the user.
package googlebooks
