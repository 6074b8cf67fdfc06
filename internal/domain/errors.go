package domain

import "fmt"

// TransportError reports a failed call to the GraphQL endpoint.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// SchemaError reports a response that lacks a field the query asked for.
type SchemaError struct {
	Op    string
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error during %s: missing field %q", e.Op, e.Field)
}

// MarkerNotFoundError reports that the document lacks a section delimiter.
type MarkerNotFoundError struct {
	Marker string
	// Which is "start" or "end".
	Which string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("%s marker %q not found in document", e.Which, e.Marker)
}

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Key    string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config error: %s: %v", e.Reason, e.Err)
	}
	if e.Key == "" {
		return "config error: " + e.Reason
	}
	return fmt.Sprintf("config error: %s: %s", e.Key, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }
