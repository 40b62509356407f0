package archives

import (
	"fmt"
)

// This error type is returned when an archive is sought but not found.
type NotFoundError struct {
	Archive string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("The archive '%s' was not found", e.Archive)
}

// indicates that an archive is already registered and an attempt has been
// made to register it again
type AlreadyRegisteredError struct {
	Archive string
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("Cannot register archive '%s': already registered", e.Archive)
}

// indicates that an accession code doesn't carry an archive's collection
// marker; no fetch is attempted for such a code
type InvalidCodeError struct {
	Archive, Code string
}

func (e InvalidCodeError) Error() string {
	return fmt.Sprintf("Invalid accession code for archive '%s': %s", e.Archive, e.Code)
}

// indicates that an archive responded to a record fetch with a non-success
// status, which is passed through unchanged
type UpstreamError struct {
	Archive, Message string
	StatusCode       int
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("The archive '%s' returned status %d: %s", e.Archive,
		e.StatusCode, e.Message)
}

// indicates that a record fetch failed for some other reason (network
// failure, malformed response), wrapping the underlying cause as text
type InternalError struct {
	Archive, Message string
}

func (e InternalError) Error() string {
	return fmt.Sprintf("Record fetch from archive '%s' failed: %s", e.Archive, e.Message)
}

// this error type is emitted if an endpoint redirects an HTTPS request to an
// HTTP endpoint (it's NUTS that this can happen!)
type DowngradedRedirectError struct {
	Endpoint string
}

func (e DowngradedRedirectError) Error() string {
	return fmt.Sprintf("The endpoint %s is attempting to downgrade an HTTPS request to HTTP",
		e.Endpoint)
}
