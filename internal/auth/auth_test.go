package auth

import (
	"strings"
	"testing"
	"time"

	"storefront-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore holds users in memory keyed by email
type fakeUserStore struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User

	createErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byEmail: map[string]*models.User{},
		byID:    map[string]*models.User{},
	}
}

func (f *fakeUserStore) GetUserByEmail(email string) (*models.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserStore) GetUserByID(id string) (*models.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserStore) CreateUser(user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserStore) addUser(t *testing.T, email, password string, active bool) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		ID:       "user-" + email,
		Email:    email,
		Password: string(hashed),
		IsActive: active,
	}
	require.NoError(t, f.CreateUser(user))
	return user
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserStore, *fakeRevocationStore) {
	t.Helper()
	users := newFakeUserStore()
	store := newFakeRevocationStore()
	tokens := newTestTokenService(t)
	svc := NewAuthService(users, tokens, NewBlacklistService(store))
	return svc, users, store
}

func TestRegister(t *testing.T) {
	svc, users, _ := newTestAuthService(t)

	user, err := svc.Register("  A@X.Com ", "pw1", "pw1", " Ada ", " Lovelace ")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "Lovelace", user.LastName)
	assert.True(t, user.IsActive)
	assert.NotEmpty(t, user.ID)

	// Stored hash verifies against the original password
	stored := users.byEmail["a@x.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw1")))
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register("a@x.com", "pw1", "pw2", "A", "B")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Register("a@x.com", "pw1", "pw1", "A", "B")
	require.NoError(t, err)

	_, err = svc.Register("A@x.com", "pw1", "pw1", "A", "B")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("A@X.com", "secret")
	require.NoError(t, err)
	require.NotNil(t, pair)

	accessClaims, err := svc.tokens.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	refreshClaims, err := svc.tokens.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)

	assert.Equal(t, TokenTypeAccess, accessClaims.TokenType)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)
	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)
}

func TestLogin_Unauthorized(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)
	users.addUser(t, "off@x.com", "secret", false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@x.com", "secret"},
		{"wrong password", "a@x.com", "wrong"},
		{"deactivated account", "off@x.com", "secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.email, tt.password)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestAuthenticate(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	user := users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("a@x.com", "secret")
	require.NoError(t, err)

	claims, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestAuthenticate_RejectsRefreshToken(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("a@x.com", "secret")
	require.NoError(t, err)

	_, err = svc.Authenticate(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticate_MissingOrGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Authenticate("")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_Rotation(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("a@x.com", "secret")
	require.NoError(t, err)

	newPair, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotNil(t, newPair)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	// A refresh token is single-use: replaying it must fail
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The rotated-in token is still good
	_, err = svc.Refresh(newPair.RefreshToken)
	assert.NoError(t, err)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("a@x.com", "secret")
	require.NoError(t, err)

	_, err = svc.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	svc, _, store := newTestAuthService(t)

	expiredTokens, err := NewTokenService("test-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)
	expired, err := expiredTokens.GenerateRefreshToken("user-1", "a@x.com")
	require.NoError(t, err)

	_, err = svc.Refresh(expired)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// Expiry is rejected by the codec, before any revocation write
	assert.Equal(t, 0, store.upserts)
}

func TestRefresh_Missing(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Refresh("")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("a@x.com", "secret")
	require.NoError(t, err)

	claims, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(claims, pair.RefreshToken))

	// Both identifiers are revoked afterwards
	_, err = svc.Authenticate(pair.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout_SwallowsBadRefreshToken(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	users.addUser(t, "a@x.com", "secret", true)

	pair, err := svc.Login("a@x.com", "secret")
	require.NoError(t, err)

	claims, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)

	// A stale or mangled refresh cookie must not fail logout
	assert.NoError(t, svc.Logout(claims, "garbage"))
	assert.NoError(t, svc.Logout(claims, strings.Repeat("x", 512)))
}

func TestLogout_RequiresAccessClaims(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	err := svc.Logout(nil, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	refreshClaims := &Claims{
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	err = svc.Logout(refreshClaims, "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	noID := &Claims{
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	err = svc.Logout(noID, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestMe(t *testing.T) {
	svc, users, _ := newTestAuthService(t)
	user := users.addUser(t, "a@x.com", "secret", true)

	got, err := svc.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = svc.Me("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
