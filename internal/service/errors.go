package service

import (
	"errors"
	"fmt"
	"strings"

	"renove/internal/dto"
)

// ErrNotFound marks lookup misses; messages read "Tratamiento no encontrado".
var ErrNotFound = errors.New("no encontrado")

// ValidationError carries every violated rule at once.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// PersistenceError is an operational failure with a single cause: the store
// was unavailable or rejected the write. It is never retried by the services.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistenceError(op string, err error) error {
	return &PersistenceError{Op: op, Err: err}
}

func validationErr(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

func resultado(errs []string) dto.ValidacionResponse {
	if errs == nil {
		errs = []string{}
	}
	return dto.ValidacionResponse{Valido: len(errs) == 0, Errores: errs}
}
