package store_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/agrihub/storefront/internal/models"
	"github.com/agrihub/storefront/internal/storage"
	"github.com/agrihub/storefront/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aliceSession(token string) models.Session {
	return models.Session{
		ID:       "u1",
		Username: "alice",
		Email:    "alice@farm.test",
		Role:     models.RoleCustomer,
		Token:    token,
	}
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		UserID: "u1",
		Email:  "alice@farm.test",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func TestSessionStoreLoginLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Login Persists The Session", func(t *testing.T) {
		records := newMemStore()
		sessions := store.NewSessionStore(records, testLogger())

		sessions.Login(ctx, aliceSession("tok"))

		require.True(t, sessions.LoggedIn())
		assert.Equal(t, "tok", sessions.Token())

		var persisted models.Session
		require.NoError(t, json.Unmarshal(records.records[storage.SessionKey], &persisted))
		assert.Equal(t, "alice", persisted.Username)
	})

	t.Run("Success - Login Replaces The Previous Session", func(t *testing.T) {
		records := newMemStore()
		sessions := store.NewSessionStore(records, testLogger())

		sessions.Login(ctx, aliceSession("tok"))

		bob := models.Session{ID: "u2", Username: "bob", Email: "bob@farm.test", Role: models.RoleFarmer, Token: "tok2"}
		sessions.Login(ctx, bob)

		require.NotNil(t, sessions.Current())
		assert.Equal(t, "bob", sessions.Current().Username)
	})

	t.Run("Success - Logout Clears State And Record", func(t *testing.T) {
		records := newMemStore()
		sessions := store.NewSessionStore(records, testLogger())
		sessions.Login(ctx, aliceSession("tok"))

		sessions.Logout(ctx)

		assert.False(t, sessions.LoggedIn())
		assert.Nil(t, sessions.Current())
		assert.Empty(t, sessions.Token())
		assert.NotContains(t, records.records, storage.SessionKey)
	})

	t.Run("Success - Logout While Logged Out Is A No-Op", func(t *testing.T) {
		sessions := store.NewSessionStore(newMemStore(), testLogger())

		sessions.Logout(ctx)

		assert.False(t, sessions.LoggedIn())
	})
}

func TestSessionStoreRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Round Trip", func(t *testing.T) {
		records := newMemStore()

		first := store.NewSessionStore(records, testLogger())
		first.Login(ctx, aliceSession(signedToken(t, time.Now().Add(time.Hour))))

		second := store.NewSessionStore(records, testLogger())
		second.Restore(ctx)

		require.True(t, second.LoggedIn())
		assert.Equal(t, first.Current(), second.Current())
	})

	t.Run("Success - Missing Record Stays Logged Out", func(t *testing.T) {
		sessions := store.NewSessionStore(newMemStore(), testLogger())

		sessions.Restore(ctx)

		assert.False(t, sessions.LoggedIn())
	})

	t.Run("Success - Malformed Record Is Discarded", func(t *testing.T) {
		records := newMemStore()
		records.records[storage.SessionKey] = []byte(`{"id": 42}`)

		sessions := store.NewSessionStore(records, testLogger())
		sessions.Restore(ctx)

		assert.False(t, sessions.LoggedIn())
		assert.Contains(t, records.deleted, storage.SessionKey)
	})

	t.Run("Success - Incomplete Record Is Discarded", func(t *testing.T) {
		records := newMemStore()

		partial := aliceSession("tok")
		partial.Email = ""

		raw, err := json.Marshal(partial)
		require.NoError(t, err)

		records.records[storage.SessionKey] = raw

		sessions := store.NewSessionStore(records, testLogger())
		sessions.Restore(ctx)

		assert.False(t, sessions.LoggedIn())
		assert.Contains(t, records.deleted, storage.SessionKey)
	})

	t.Run("Success - Expired Token Is Still Adopted", func(t *testing.T) {
		records := newMemStore()

		expired := aliceSession(signedToken(t, time.Now().Add(-time.Hour)))

		raw, err := json.Marshal(expired)
		require.NoError(t, err)

		records.records[storage.SessionKey] = raw

		sessions := store.NewSessionStore(records, testLogger())
		sessions.Restore(ctx)

		assert.True(t, sessions.LoggedIn(), "expiry is the backend's call, the client only warns")
	})

	t.Run("Success - Opaque Token Is Adopted Without Expiry Check", func(t *testing.T) {
		records := newMemStore()

		raw, err := json.Marshal(aliceSession("not-a-jwt"))
		require.NoError(t, err)

		records.records[storage.SessionKey] = raw

		sessions := store.NewSessionStore(records, testLogger())
		sessions.Restore(ctx)

		assert.True(t, sessions.LoggedIn())
	})
}
