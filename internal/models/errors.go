package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModelNotLoaded indicates prediction was attempted before a model
	// artifact was loaded
	ErrModelNotLoaded = errors.New("regression model not loaded")

	// ErrSchemaMismatch indicates a loaded artifact disagrees with the
	// builder's feature schema
	ErrSchemaMismatch = errors.New("model schema mismatch")

	// ErrInvalidMatrix indicates a malformed feature matrix was passed to
	// the model
	ErrInvalidMatrix = errors.New("invalid feature matrix")

	// ErrWeatherUnavailable indicates the weather gateway could not produce
	// a snapshot (recovered internally via the fallback chain)
	ErrWeatherUnavailable = errors.New("weather data unavailable")

	// ErrGeocodeFailed indicates the location could not be resolved to
	// coordinates
	ErrGeocodeFailed = errors.New("geocoding failed")

	// ErrNotFound indicates a repository lookup matched nothing
	ErrNotFound = errors.New("not found")
)

// InputError is a client error: the request is missing or malforms required
// fields. It is rejected before any defaulting happens.
type InputError struct {
	Fields []string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid prediction request: %s", strings.Join(e.Fields, ", "))
}

// NewInputError builds an InputError for the given field names.
func NewInputError(fields ...string) *InputError {
	return &InputError{Fields: fields}
}

// ViabilityError carries a failed viability verdict. It is distinct from a
// system failure: the pipeline worked, the crop/region combination did not.
type ViabilityError struct {
	Verdict ViabilityVerdict
}

func (e *ViabilityError) Error() string {
	return fmt.Sprintf("crop not viable: %s", e.Verdict.Reason)
}
