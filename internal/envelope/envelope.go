// Package envelope normalizes backend response bodies into canonical
// payloads.
//
// The backend services were migrated from raw response bodies to a wrapped
// {success, data} envelope at different times and are deployed independently,
// so every consumer must tolerate both formats indefinitely. This package is
// the single place where that union is decoded; raw response shapes never
// leak past it.
//
// Three shapes are recognized:
//
//	{"success": true, "data": ...}        wrapped envelope
//	{"campaigns": [...], "total": 3}      raw object with a sentinel list key
//	[...]                                 raw array
//
// A wrapped "data" that is itself an object holding the list under a known
// key (campaigns, items, data) is unwrapped one more level.
package envelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// RemoteError is a backend-reported domain error carrying the backend's
// message for verbatim display, per the error propagation policy. Status is
// the backend HTTP status when the error came from a non-2xx response; it is
// zero for failures reported inside a 200 envelope.
type RemoteError struct {
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// ErrUnrecognized reports a response body in none of the known shapes.
// Callers treat it as retryable: the canonical zero payload is still
// returned so the caller never sees a nil list.
var ErrUnrecognized = errors.New("unrecognized response shape")

// probe matches the wrapped envelope without committing to a payload type.
type probe struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// nested list-wrapper keys tried, in order, when a payload object stands in
// for a list. Callers add entity-specific sentinels (e.g. "campaigns").
var genericListKeys = []string{"data", "items", "results"}

// List extracts the canonical list payload from body. sentinelKeys are the
// entity-specific object keys that identify (and hold) the list in the raw
// object shape, e.g. "campaigns" for the campaign list endpoint.
//
// The returned slice is never nil. On failure it is empty and the error
// explains why: a *RemoteError for a backend-reported failure, or
// ErrUnrecognized for an undecodable shape.
func List[T any](body []byte, sentinelKeys ...string) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return []T{}, ErrUnrecognized
	}

	// Raw array: the payload directly.
	if trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return []T{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	}

	var p probe
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return []T{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}

	// Wrapped envelope: the presence of "success" is the discriminant.
	if p.Success != nil {
		if !*p.Success {
			return []T{}, &RemoteError{Message: failureMessage(p)}
		}
		if len(p.Data) == 0 || bytes.Equal(p.Data, []byte("null")) {
			return []T{}, nil
		}
		return listFromPayload[T](p.Data, sentinelKeys)
	}

	// Raw object: only meaningful if one of the sentinel keys holds the list.
	return listFromKeys[T](trimmed, sentinelKeys)
}

// listFromPayload normalizes the unwrapped "data" value, which may be the
// list itself or an object wrapping it one level down.
func listFromPayload[T any](data json.RawMessage, sentinelKeys []string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return []T{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	}
	return listFromKeys[T](trimmed, sentinelKeys)
}

func listFromKeys[T any](obj []byte, sentinelKeys []string) ([]T, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return []T{}, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}

	for _, key := range append(sentinelKeys, genericListKeys...) {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || trimmed[0] != '[' {
			continue
		}
		var out []T
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return []T{}, fmt.Errorf("%w: key %q: %v", ErrUnrecognized, key, err)
		}
		if out == nil {
			out = []T{}
		}
		return out, nil
	}
	return []T{}, ErrUnrecognized
}

// Object extracts a single canonical object from body: either the wrapped
// envelope's data or the raw object itself (recognized by any field, the
// "id" sentinel being the common case).
func Object[T any](body []byte) (T, error) {
	var zero T
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return zero, ErrUnrecognized
	}

	var p probe
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}

	if p.Success != nil {
		if !*p.Success {
			return zero, &RemoteError{Message: failureMessage(p)}
		}
		if len(p.Data) == 0 || bytes.Equal(p.Data, []byte("null")) {
			return zero, ErrUnrecognized
		}
		trimmed = p.Data
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnrecognized, err)
	}
	return out, nil
}

func failureMessage(p probe) string {
	if p.Error != nil && p.Error.Message != "" {
		return p.Error.Message
	}
	if p.Message != "" {
		return p.Message
	}
	return "request failed"
}
