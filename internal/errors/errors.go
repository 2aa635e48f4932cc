package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Error kinds used to classify failures across layers
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation error")
	ErrDatabase   = errors.New("database error")
	ErrSystem     = errors.New("system error")

	// maps error kinds to http status codes
	statusCodeMap = []struct {
		kind   error
		status int
	}{
		{ErrValidation, http.StatusUnprocessableEntity},
		{ErrNotFound, http.StatusNotFound},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

func HTTPStatusFromErr(err error) int {
	for _, m := range statusCodeMap {
		if errors.Is(err, m.kind) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
