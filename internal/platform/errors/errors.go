package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidMetric       = errors.New("invalid metric")
	ErrInvalidCoordinates  = errors.New("invalid coordinates")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrInvalidTransition   = errors.New("invalid session transition")
)
