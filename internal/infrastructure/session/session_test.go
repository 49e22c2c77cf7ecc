package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdeck/crewdeck/internal/domain/entities"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func signedToken(t *testing.T, userID int64, role entities.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: userID,
		Role:   role,
	})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestOpenMissingFileYieldsGuestSession(t *testing.T) {
	store, err := Open(sessionPath(t))
	require.NoError(t, err)

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.UserID()
	assert.False(t, ok)
	assert.Equal(t, entities.RoleGuest, store.Role())
}

func TestSetSessionRoundtrip(t *testing.T) {
	path := sessionPath(t)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetSession("tok-123", 42, entities.RoleProjectManager))

	reopened, err := Open(path)
	require.NoError(t, err)

	token, ok := reopened.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)

	userID, ok := reopened.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, entities.RoleProjectManager, reopened.Role())
}

func TestSetRolePersists(t *testing.T) {
	path := sessionPath(t)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetSession("tok", 1, entities.RoleDeveloper))
	require.NoError(t, store.SetRole(entities.RoleProjectManager))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleProjectManager, reopened.Role())
}

func TestClearDetachesSession(t *testing.T) {
	path := sessionPath(t)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetSession("tok", 1, entities.RoleDeveloper))
	require.NoError(t, store.Clear())

	_, ok := store.Token()
	assert.False(t, ok)
	_, ok = store.UserID()
	assert.False(t, ok)
	assert.Equal(t, entities.RoleGuest, store.Role())

	reopened, err := Open(path)
	require.NoError(t, err)
	_, ok = reopened.Token()
	assert.False(t, ok)
}

func TestUnknownStoredRoleDefaultsToGuest(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"auth_token":"","user_role":"SUPERUSER"}`), 0o600))

	store, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, entities.RoleGuest, store.Role())
}

func TestCorruptFileIsDiscarded(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := Open(path)
	require.NoError(t, err)
	_, ok := store.Token()
	assert.False(t, ok)
	assert.Equal(t, entities.RoleGuest, store.Role())
}

func TestRecoverFromClaimsFillsMissingFields(t *testing.T) {
	// A session file holding just the token recovers id and role from
	// the JWT payload.
	path := sessionPath(t)
	token := signedToken(t, 7, entities.RoleDeveloper)
	require.NoError(t, os.WriteFile(path, []byte(`{"auth_token":"`+token+`"}`), 0o600))

	store, err := Open(path)
	require.NoError(t, err)

	userID, ok := store.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, entities.RoleDeveloper, store.Role())
}

func TestRecoverFromClaimsKeepsExplicitFields(t *testing.T) {
	path := sessionPath(t)
	token := signedToken(t, 7, entities.RoleDeveloper)
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"auth_token":"`+token+`","user_id":9,"user_role":"PROJECT_MANAGER"}`), 0o600))

	store, err := Open(path)
	require.NoError(t, err)

	userID, ok := store.UserID()
	require.True(t, ok)
	assert.Equal(t, int64(9), userID)
	assert.Equal(t, entities.RoleProjectManager, store.Role())
}

func TestMalformedTokenLeavesSessionUsable(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"auth_token":"not-a-jwt"}`), 0o600))

	store, err := Open(path)
	require.NoError(t, err)

	token, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "not-a-jwt", token)
	assert.Equal(t, entities.RoleGuest, store.Role())
}
