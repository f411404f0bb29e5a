package cgrates

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrNotImplemented   = errors.New("operation is not implemented")
)

// ConfigurationError возвращается из NewConfig.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError the first missing field or field combination of a call.
// Message is exactly what the backend user sees, e.g. "Tenant is required".
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError network, DNS or timeout failure, the cause is kept in Err.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to send request: %s", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError a response with a status other than 200, or a body that is
// not a JSON object. Body is kept verbatim.
type ProtocolError struct {
	StatusCode int
	Body       []byte
}

func (e *ProtocolError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected response: status code %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected response: status code %d: %s", e.StatusCode, e.Body)
}

// RPCError the backend answered 200 with a truthy "error" field.
type RPCError struct {
	Message string
	Value   []byte // raw JSON of the error field
}

func (e *RPCError) Error() string {
	return e.Message
}
