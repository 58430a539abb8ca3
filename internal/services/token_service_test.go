package services

import (
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipe-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndResolve(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, newTestConfig())
	user := createTestUser(t, db, "test@example.com")

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)
	assert.Equal(t, user.Email, resolved.Email)
}

func TestReissueInvalidatesPriorToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, newTestConfig())
	user := createTestUser(t, db, "test@example.com")

	first, err := svc.Issue(user)
	require.NoError(t, err)

	// Signing twice in the same second yields identical claims, so
	// nudge iat to get a distinct second token.
	time.Sleep(1100 * time.Millisecond)

	second, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = svc.Resolve(second)
	assert.NoError(t, err)

	_, err = svc.Resolve(first)
	assert.ErrorIs(t, err, ErrInvalidToken)

	var count int64
	require.NoError(t, db.Model(&models.AuthToken{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count, "only one live token per user")
}

func TestResolveRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewTokenService(db, newTestConfig())

	_, err := svc.Resolve("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsExpiredToken(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	cfg.TokenExpiry = -time.Minute
	svc := NewTokenService(db, cfg)
	user := createTestUser(t, db, "test@example.com")

	token, err := svc.Issue(user)
	require.NoError(t, err)

	_, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The stale row is also purged on the liveness path.
	_, err = svc.ResolveVerified(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveRejectsTokenSignedWithOtherSecret(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "test@example.com")

	otherCfg := newTestConfig()
	otherCfg.JWTSecret = "other-secret"
	token, err := NewTokenService(db, otherCfg).Issue(user)
	require.NoError(t, err)

	_, err = NewTokenService(db, newTestConfig()).Resolve(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
