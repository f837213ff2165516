package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	userID := primitive.NewObjectID()
	token, err := GenerateJWT(userID, "ravi@example.com", "client")
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "ravi@example.com", claims.Email)
	require.Equal(t, "client", claims.Role)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateJWT("not.a.token")
	require.Error(t, err)
}
