package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	txDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 15, 10, 30, 0, 123456789, time.UTC)

	token := EncodeToken(txDate, createdAt, "0191c5a2-1111-7000-8000-000000000001")
	gotDate, gotCreated, gotID, err := DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, txDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
	assert.Equal(t, "0191c5a2-1111-7000-8000-000000000001", gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"too few parts", base64.RawURLEncoding.EncodeToString([]byte("2026-01-01T00:00:00Z|x"))},
		{"bad date", base64.RawURLEncoding.EncodeToString([]byte("yesterday|2026-01-01T00:00:00Z|id"))},
		{"bad created_at", base64.RawURLEncoding.EncodeToString([]byte("2026-01-01T00:00:00Z|later|id"))},
		{"empty id", base64.RawURLEncoding.EncodeToString([]byte("2026-01-01T00:00:00Z|2026-01-01T00:00:00Z|"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := DecodeToken(tt.token)
			assert.Error(t, err)
		})
	}
}
