package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/shopledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"unique violation", "23505", apperrors.ErrDuplicate},
		{"foreign key violation", "23503", apperrors.ErrValidation},
		{"check violation", "23514", apperrors.ErrIntegrity},
		{"serialization failure", "40001", apperrors.ErrConflict},
		{"deadlock", "40P01", apperrors.ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fmt.Errorf("exec: %w", &pgconn.PgError{Code: tt.code, ConstraintName: "c"})
			assert.ErrorIs(t, mapPgError(err), tt.want)
		})
	}

	other := errors.New("connection reset")
	assert.Equal(t, other, mapPgError(other))
}

func TestNotFoundOr(t *testing.T) {
	assert.ErrorIs(t, notFoundOr(pgx.ErrNoRows, "ledger l-1"), apperrors.ErrNotFound)

	err := notFoundOr(&pgconn.PgError{Code: "23505"}, "ledger l-1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}
