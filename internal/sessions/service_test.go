package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCreateAndValidate(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	tok, err := svc.CreateSession(context.Background(), 42, time.Hour)
	require.NoError(t, err)
	require.Len(t, tok, 64, "refresh token is 32 random bytes hex-encoded")

	sess, err := svc.ValidateRefresh(context.Background(), tok)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.EqualValues(t, 42, sess.UserID)
}

func TestValidateUnknownTokenIsNil(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	sess, err := svc.ValidateRefresh(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestValidateExpiredSessionCleansUp(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)

	require.NoError(t, repo.Create(context.Background(), &Session{
		RefreshToken: "old",
		UserID:       1,
		ExpiresAt:    time.Now().UTC().Add(-time.Minute),
	}))

	sess, err := svc.ValidateRefresh(context.Background(), "old")
	require.NoError(t, err)
	require.Nil(t, sess)

	got, err := repo.GetByRefresh(context.Background(), "old")
	require.NoError(t, err)
	require.Nil(t, got, "expired session is deleted on validation")
}

func TestRotateInvalidatesOldToken(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	old, err := svc.CreateSession(context.Background(), 7, time.Hour)
	require.NoError(t, err)
	sess, err := svc.ValidateRefresh(context.Background(), old)
	require.NoError(t, err)

	fresh, err := svc.Rotate(context.Background(), sess, time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, old, fresh)

	gone, err := svc.ValidateRefresh(context.Background(), old)
	require.NoError(t, err)
	require.Nil(t, gone)

	kept, err := svc.ValidateRefresh(context.Background(), fresh)
	require.NoError(t, err)
	require.EqualValues(t, 7, kept.UserID)
}

func TestDeleteAllForUser(t *testing.T) {
	svc := NewService(NewMemoryRepository())

	t1, err := svc.CreateSession(context.Background(), 5, time.Hour)
	require.NoError(t, err)
	t2, err := svc.CreateSession(context.Background(), 5, time.Hour)
	require.NoError(t, err)
	other, err := svc.CreateSession(context.Background(), 6, time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAllForUser(context.Background(), 5))

	for _, tok := range []string{t1, t2} {
		sess, err := svc.ValidateRefresh(context.Background(), tok)
		require.NoError(t, err)
		require.Nil(t, sess)
	}
	sess, err := svc.ValidateRefresh(context.Background(), other)
	require.NoError(t, err)
	require.NotNil(t, sess, "other users' sessions survive")
}
