package utils

import (
	"strings"
	"testing"
	"time"

	"hospital-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessJWT(t *testing.T) {
	t.Run("Round trip keeps subject and role", func(t *testing.T) {
		token, err := GenerateAccessJWT("665f1c2b9d1e4a0012345678", "doctor", "secret", time.Hour)
		require.NoError(t, err)

		claims, err := ParseAccessJWT(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, "665f1c2b9d1e4a0012345678", claims.Subject)
		assert.Equal(t, "doctor", claims.Role)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := GenerateAccessJWT("user", "patient", "secret", time.Hour)
		require.NoError(t, err)

		_, err = ParseAccessJWT(token, "other")
		assert.Equal(t, exceptions.KindNotAuthenticated, exceptions.KindOf(err))
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		token, err := GenerateAccessJWT("user", "patient", "secret", -time.Minute)
		require.NoError(t, err)

		_, err = ParseAccessJWT(token, "secret")
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("Str0ng!Pass")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("Str0ng!Pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateInvoiceNumber(t *testing.T) {
	first := GenerateInvoiceNumber()
	second := GenerateInvoiceNumber()

	assert.True(t, strings.HasPrefix(first, "INV-"))
	assert.Len(t, first, len("INV-")+26)
	assert.NotEqual(t, first, second)
	assert.Less(t, first, second, "invoice numbers sort by creation")
}
