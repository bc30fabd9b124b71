package jwttoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "truedial/pkg/domain"
	dErrors "truedial/pkg/domain-errors"
)

var jwtService = NewJWTService("test-signing-key", "test-issuer", time.Hour)

func TestGenerateAndValidate(t *testing.T) {
	userID := id.NewUserID()

	token, err := jwtService.GenerateAccessToken(userID, "+919876543210")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "+919876543210", claims.PhoneNumber)
	assert.Equal(t, "test-issuer", claims.Issuer)

	extracted, err := jwtService.ExtractUserID(token)
	require.NoError(t, err)
	assert.Equal(t, userID, extracted)
}

func TestValidateRejectsExpired(t *testing.T) {
	expired := NewJWTService("test-signing-key", "test-issuer", -time.Minute)
	token, err := expired.GenerateAccessToken(id.NewUserID(), "+919876543210")
	require.NoError(t, err)

	_, err = expired.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.Contains(t, err.Error(), "expired")
}

func TestValidateRejectsWrongKey(t *testing.T) {
	other := NewJWTService("other-key", "test-issuer", time.Hour)
	token, err := jwtService.GenerateAccessToken(id.NewUserID(), "+919876543210")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := jwtService.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
