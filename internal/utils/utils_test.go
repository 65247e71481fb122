package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souqsyria/backend/internal/config"
)

func TestGenerateReference(t *testing.T) {
	ref := GenerateReference("RFD")
	parts := strings.Split(ref, "_")
	require.Len(t, parts, 3)
	assert.Equal(t, "RFD", parts[0])
	assert.Equal(t, time.Now().Format("20060102"), parts[1])
	assert.Len(t, parts[2], 8)

	assert.NotEqual(t, GenerateReference("RFD"), GenerateReference("RFD"))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecretPass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("Sup3rSecretPass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "Sup3rSecretPass", false},
		{"too short", "Abc123", true},
		{"no uppercase", "lowercase12345", true},
		{"no lowercase", "UPPERCASE12345", true},
		{"no digit", "NoDigitsHereAtAll", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := config.JWTConfig{Secret: "test_secret", Expiration: 1}
	userID := uuid.New()

	token, err := GenerateToken(cfg, userID, "staff@souqsyria.com", true, true)
	require.NoError(t, err)

	claims, err := ValidateToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "staff@souqsyria.com", claims.Email)
	assert.True(t, claims.IsStaff)
	assert.True(t, claims.IsAdmin)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateToken(config.JWTConfig{Secret: "one", Expiration: 1}, uuid.New(), "a@b.sy", false, false)
	require.NoError(t, err)

	_, err = ValidateToken(config.JWTConfig{Secret: "two", Expiration: 1}, token)
	assert.Error(t, err)
}
