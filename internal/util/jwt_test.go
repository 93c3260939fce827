package util

import (
	"testing"
	"time"

	"healthlearn_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-unit-test-secret"

func testUser() *model.User {
	u := &model.User{
		Email: "ana@example.com",
		Role:  model.Seller,
	}
	u.ID = "b6f9f3f0-0000-4000-8000-000000000001"
	return u
}

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "b6f9f3f0-0000-4000-8000-000000000001", claims.UserID)
	assert.Equal(t, model.Seller, claims.Role)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret-another-secret-xx")
	assert.Error(t, err)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT(testUser(), testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, testSecret)
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "", FormatDuration(0))
	assert.Equal(t, "1 min", FormatDuration(30))
	assert.Equal(t, "12 min", FormatDuration(695))
	assert.Equal(t, "1 h 05 min", FormatDuration(3900))
	assert.Equal(t, "2 h 00 min", FormatDuration(7200))
}

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension("leccion.MP4", AllowedVideoExtensions))
	assert.True(t, HasAllowedExtension("temario.pdf", AllowedPresentationExtensions))
	assert.False(t, HasAllowedExtension("script.sh", AllowedVideoExtensions))
	assert.False(t, HasAllowedExtension("sin-extension", AllowedPresentationExtensions))
}
