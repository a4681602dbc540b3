package domain

import "fmt"

// CredentialError reports that the authentication endpoint was unreachable or
// rejected the cookie request. Fatal at startup, fatal mid-run when a
// refresh-after-retry also fails.
type CredentialError struct {
	Endpoint string
	Err      error
}

func (e *CredentialError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("credential request to %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("credential request to %s failed", e.Endpoint)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// FetchError reports that a listing endpoint call failed after the single
// permitted credential refresh and retry.
type FetchError struct {
	Endpoint string
	Country  string
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	target := e.Endpoint
	if e.Country != "" {
		target = fmt.Sprintf("%s (country %q)", e.Endpoint, e.Country)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch from %s failed: %v", target, e.Err)
	}
	return fmt.Sprintf("fetch from %s failed with status %d", target, e.Status)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SerializationError reports that the output file could not be written.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("write output %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }
