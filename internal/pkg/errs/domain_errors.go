package errs

import "errors"

// Error classes shared by the use case layer and the HTTP layer.
// Use cases mark specific failures with one of these so handlers can map
// whole families of errors to a status code.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// Classify returns the first error class err was marked with, or ErrInternal.
func Classify(err error) error {
	for _, class := range []error{ErrValidation, ErrNotFound, ErrForbidden, ErrConflict} {
		if Is(err, class) {
			return class
		}
	}
	return ErrInternal
}
