package services

import (
	"context"
	"testing"

	"github.com/AhmedSarhanDL/tutor-stack-cli/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSessionStore(setupDB(t))

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, s.SaveToken(ctx, "tok"))
	require.NoError(t, s.SaveIdentity(ctx, []byte(`{"email":"a@b.c"}`)))

	tok, raw, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
	assert.JSONEq(t, `{"email":"a@b.c"}`, string(raw))

	require.NoError(t, s.SaveToken(ctx, "tok2"))
	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok2", tok)
}

func TestSessionStore_ClearRemovesOnlySessionKeys(t *testing.T) {
	ctx := context.Background()
	db := setupDB(t)
	s := NewSessionStore(db)
	seed(t, db, common.TokenStorageKey, "tok")
	seed(t, db, common.IdentityStorageKey, "{}")
	seed(t, db, "other", "x")

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))

	tok, raw, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
	assert.Nil(t, raw)

	v, ok := stored(t, db, "other")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestSessionStore_ClosedDB(t *testing.T) {
	db := setupDB(t)
	s := NewSessionStore(db)
	require.NoError(t, db.Close())

	_, err := s.Token(context.Background())
	assert.Error(t, err)
	_, _, err = s.Load(context.Background())
	assert.ErrorContains(t, err, "load session")
	assert.ErrorContains(t, s.Clear(context.Background()), "clear session")
}
