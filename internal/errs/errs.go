// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errs defines the error taxonomy shared by the fetch pipeline.
// Per-item errors (an unmapped publication type) are recoverable and are
// counted by the calling stage; upstream errors abort the run.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	// ErrUnmappedType indicates a publication type label outside the fixed vocabulary.
	ErrUnmappedType = errors.New("unmapped publication type")

	// ErrNotFound indicates that a requested record was not found.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream indicates a failed request against an upstream API.
	ErrUpstream = errors.New("upstream request failed")
)

// UnmappedTypeError names the publication whose type label could not be mapped.
type UnmappedTypeError struct {
	PubID string
	Label string
}

func (e *UnmappedTypeError) Error() string {
	return fmt.Sprintf("publication %q has unknown type %q", e.PubID, e.Label)
}

// Is implements errors.Is support.
func (e *UnmappedTypeError) Is(target error) bool {
	return target == ErrUnmappedType
}

// UpstreamError records a non-success response from an upstream API.
type UpstreamError struct {
	Source     string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned HTTP %d for %s", e.Source, e.StatusCode, e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s request to %s: %v", e.Source, e.URL, e.Err)
	}
	return fmt.Sprintf("%s request to %s failed", e.Source, e.URL)
}

// Unwrap implements errors.Unwrap.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NotFoundError names a missing resource.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
