// Package apperrors defines the error classes surfaced by the cost service. Each class maps to
// a distinct client-visible status so "zero cost" is never confused with "something failed".
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceNotFound is returned by DeviceLookup implementations for unknown devices.
	ErrDeviceNotFound = errors.New("device not found")
	// ErrRecordNotFound is returned by cost record repositories for unknown ids.
	ErrRecordNotFound = errors.New("cost record not found")
)

// Entities reported by NotFoundError.
const (
	EntityDevice = "device"
	EntityRecord = "record"
)

// ValidationError reports a malformed input shape.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Validation builds a ValidationError.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// UpstreamError wraps an infrastructure failure of the repository or the device registry.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Upstream wraps err, or returns nil when err is nil.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}

// ComputationError reports a non-finite calculator result. It is a server-side defect and is
// never coerced to zero.
type ComputationError struct {
	Reason string
}

func (e *ComputationError) Error() string {
	return "computation: " + e.Reason
}

// Classification names used on the wire.
const (
	CodeValidation  = "validation"
	CodeNotFound    = "not_found"
	CodeUpstream    = "upstream"
	CodeComputation = "computation"
	CodeInternal    = "internal"
)

// Code classifies err for clients.
func Code(err error) string {
	var (
		validation  *ValidationError
		notFound    *NotFoundError
		upstream    *UpstreamError
		computation *ComputationError
	)
	switch {
	case errors.As(err, &validation):
		return CodeValidation
	case errors.As(err, &notFound):
		return CodeNotFound
	case errors.As(err, &computation):
		return CodeComputation
	case errors.As(err, &upstream):
		return CodeUpstream
	default:
		return CodeInternal
	}
}
