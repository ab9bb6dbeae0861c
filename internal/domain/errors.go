package domain

import "errors"

// Sentinel errors shared by services, repositories and HTTP controllers.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned when a status change is not one of the allowed edges.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrConstraintViolation = errors.New("constraint violation")
	// ErrTokenCollision is a ConstraintViolation on the unique token index.
	ErrTokenCollision = &constraintError{msg: "registration token collision"}

	ErrEntropyUnavailable = errors.New("entropy source unavailable")
	ErrDelivery           = errors.New("notification delivery failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

type constraintError struct {
	msg string
}

func (e *constraintError) Error() string { return e.msg }

// Is lets errors.Is(err, ErrConstraintViolation) match the specific constraint errors.
func (e *constraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}
