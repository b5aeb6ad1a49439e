package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestValidation_CarriesAllViolations(t *testing.T) {
	err := Validation(
		Violation{Field: "first_name", Message: "first_name is required"},
		Violation{Field: "end_date", Message: "end_date must not be before start_date"},
	)

	assert.True(t, Is(err, KindValidation))
	assert.Len(t, ViolationsOf(err), 2)
	assert.Contains(t, err.Error(), "first_name is required")
	assert.Contains(t, err.Error(), "end_date must not be before start_date")
}

func TestStorage_WrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Storage("insert member", cause)

	assert.True(t, Is(err, KindStorage))
	assert.ErrorIs(t, err, cause)
}

func TestStorage_PassesThroughTypedErrors(t *testing.T) {
	nf := NotFound("member")
	err := Storage("load member", fmt.Errorf("lookup: %w", nf))

	assert.True(t, Is(err, KindNotFound))
}

func TestStorage_UniqueViolationBecomesConflict(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value"}
	assert.True(t, Is(Storage("insert member", pgErr), KindConflict))
	assert.True(t, Is(Storage("insert member", gorm.ErrDuplicatedKey), KindConflict))
}

func TestStorage_NilIsNil(t *testing.T) {
	assert.NoError(t, Storage("noop", nil))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, Is(nil, KindNotFound))
}
