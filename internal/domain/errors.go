package domain

import "fmt"

// HTTPError is returned for any non-2xx/204 response from the API.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http status %d", e.Status)
}

// DecodeError wraps a payload that does not match the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when a malformed identifier is supplied where a
// canonical uuid is required, before any network call happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ProtocolError is returned when a pagination walk exceeds the safety bound
// without the server-reported total terminating it.
type ProtocolError struct {
	Msg string
}

func (e *ProtocolError) Error() string {
	return e.Msg
}

// UpstreamError is returned when a host-resolution response is missing
// required fields.
type UpstreamError struct {
	Msg string
}

func (e *UpstreamError) Error() string {
	return e.Msg
}

// LegacyAddressingError marks an entry reference that still uses the
// deprecated numeric addressing scheme. The caller has to migrate the entry
// before operations on it can succeed.
type LegacyAddressingError struct {
	Ref string
}

func (e *LegacyAddressingError) Error() string {
	return fmt.Sprintf("entry %q uses the legacy addressing scheme and must be migrated", e.Ref)
}
