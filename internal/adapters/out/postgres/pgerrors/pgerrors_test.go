package pgerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"distribution/internal/adapters/out/postgres/pgerrors"
	"distribution/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate_Nil(t *testing.T) {
	require.NoError(t, pgerrors.Translate(nil))
}

func TestTranslate_LockCodes(t *testing.T) {
	for _, code := range []string{"40001", "40P01", "55P03"} {
		t.Run(code, func(t *testing.T) {
			pqErr := &pq.Error{Code: pq.ErrorCode(code)}
			translated := pgerrors.Translate(fmt.Errorf("update failed: %w", pqErr))
			assert.ErrorIs(t, translated, errs.ErrLockContention)
		})
	}
}

func TestTranslate_OtherPqError(t *testing.T) {
	pqErr := &pq.Error{Code: "23505"} // unique_violation
	translated := pgerrors.Translate(pqErr)
	assert.NotErrorIs(t, translated, errs.ErrLockContention)
	assert.Equal(t, pqErr, translated)
}

func TestTranslate_PlainError(t *testing.T) {
	plain := errors.New("connection refused")
	assert.Equal(t, plain, pgerrors.Translate(plain))
}
