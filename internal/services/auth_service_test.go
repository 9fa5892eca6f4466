package services

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/momentpick-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp := env.registerUser(t, "Alice", "alice@example.com")
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	login, err := env.auth.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter2pass",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Alice", "Alice@Example.com")

	_, err := env.auth.Register(&dto.RegisterRequest{
		Name:     "Imposter",
		Email:    "alice@example.COM",
		Password: "hunter2pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterSurfacesEmailLookupFailure(t *testing.T) {
	env := newTestEnv(t)

	// A broken connection must fail the lookup, not read as "email free"
	// and fall through to the insert.
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = env.auth.Register(&dto.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter2pass",
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailTaken)
	assert.Contains(t, err.Error(), "failed to check email")
}

func TestLoginFailureDoesNotDiscloseField(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Alice", "alice@example.com")

	_, unknownErr := env.auth.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2pass",
	})
	_, wrongPassErr := env.auth.Login(&dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestLoginMatchesEmailCaseInsensitively(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "Alice", "ALICE@example.com")

	login, err := env.auth.Login(&dto.LoginRequest{
		Email:    "alice@EXAMPLE.com",
		Password: "hunter2pass",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", login.User.Email)
}

func TestTokenCarriesIdentityClaims(t *testing.T) {
	env := newTestEnv(t)
	resp := env.registerUser(t, "Alice", "alice@example.com")

	claims, err := env.auth.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "Alice", claims["name"])
	assert.NotNil(t, claims["exp"])
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.auth.ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	resp := env.registerUser(t, "Alice", "alice@example.com")

	user, err := env.auth.Me(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	_, err = env.auth.Me(uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
