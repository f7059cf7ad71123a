package jwt

import (
	"testing"

	"go-coffee-warehouse/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "mara@example.com", "Mara Chen", model.RoleImporter, "v1")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "mara@example.com", claims.Email)
	assert.Equal(t, model.RoleImporter, claims.Role)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Tampered(t *testing.T) {
	token, err := GenerateToken(uuid.New(), "mara@example.com", "Mara Chen", model.RoleImporter, "v1")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
