package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareTokenRoundTrip(t *testing.T) {
	svc := NewShareService("test-secret", time.Hour)

	token, err := svc.IssueToken(ShareKindRecipe, "recipe-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, ShareKindRecipe, claims.Kind)
	assert.Equal(t, "recipe-123", claims.RefID)
}

func TestShareTokenExpired(t *testing.T) {
	svc := NewShareService("test-secret", -time.Minute)

	token, err := svc.IssueToken(ShareKindList, "session-1")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}

func TestShareTokenWrongSecret(t *testing.T) {
	issuer := NewShareService("secret-a", time.Hour)
	verifier := NewShareService("secret-b", time.Hour)

	token, err := issuer.IssueToken(ShareKindRecipe, "recipe-123")
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}

func TestShareTokenGarbage(t *testing.T) {
	svc := NewShareService("test-secret", time.Hour)

	_, err := svc.VerifyToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidShareToken)
}
