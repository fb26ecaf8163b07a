package model

import "errors"

var (
	// ErrMeasurementNotFound indicates that the requested measurement does not exist.
	ErrMeasurementNotFound = errors.New("measurement not found")
	// ErrInvalidMetric indicates a missing metric name.
	ErrInvalidMetric = errors.New("metric is required")
	// ErrInvalidDate indicates a missing or zero measurement date.
	ErrInvalidDate = errors.New("measurement date is required")
	// ErrAlreadyVerified indicates a verification of an already verified measurement.
	ErrAlreadyVerified = errors.New("measurement already verified")
)
