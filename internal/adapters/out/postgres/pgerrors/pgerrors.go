// Package pgerrors translates low-level postgres driver errors into the
// domain error vocabulary.
package pgerrors

import (
	"errors"

	"distribution/internal/pkg/errs"

	"github.com/lib/pq"
)

// Postgres error codes that signal transient serialization or locking
// conflicts. Operations failing with one of these are safe to retry.
const (
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

// Translate maps retryable postgres conflicts to errs.LockContentionError
// and returns every other error unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return errs.NewLockContentionError(err)
	default:
		return err
	}
}
