package model

import "errors"

// Parse errors. Every one of them is fatal for a scan run; callers wrap them
// with the file or object they came from.
var (
	// ErrInvalidScanParameter is returned when a file name does not carry a
	// numeric scan parameter (for example "phi.root", "NaN.root" or "inf.root").
	ErrInvalidScanParameter = errors.New("invalid scan parameter in file name")

	// ErrNoMassRange is returned when an object name does not contain a
	// hj_mass[low,high) range with exactly two numbers.
	ErrNoMassRange = errors.New("no hj_mass range in object name")

	// ErrNoLogLikelihood is returned when none of an object's auxiliary items
	// carries the -logl marker.
	ErrNoLogLikelihood = errors.New("no log-likelihood item attached to object")

	// ErrMalformedLogLikelihood is returned when the log-likelihood item title
	// is not of the form <label>=<number> with a finite number.
	ErrMalformedLogLikelihood = errors.New("malformed log-likelihood title")

	// ErrInvalidExpression is returned by ParseExpression.
	ErrInvalidExpression = errors.New("invalid expression")
)
