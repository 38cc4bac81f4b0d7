package auth

import (
	"strings"
	"time"

	"storefront-backend/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the slice of the user repository the auth service consumes
type UserStore interface {
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	CreateUser(user *models.User) error
}

// TokenPair represents the access and refresh tokens
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthService drives the token lifecycle: issuing pairs on login, validating
// access tokens against signature and blacklist, rotating refresh tokens,
// and revoking identifiers on logout.
type AuthService struct {
	users     UserStore
	tokens    *TokenService
	blacklist *BlacklistService
}

func NewAuthService(users UserStore, tokens *TokenService, blacklist *BlacklistService) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
	}
}

// Register creates a new local account. The email is normalized to lower
// case so lookups are case-insensitive.
func (s *AuthService) Register(email, password, confirmPassword, firstName, lastName string) (*models.User, error) {
	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	email = strings.ToLower(strings.TrimSpace(email))
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	existingUser, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and mints a fresh token pair. Unknown email,
// wrong password and deactivated account all collapse into ErrUnauthorized.
func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}

	if !user.IsActive {
		return nil, ErrUnauthorized
	}

	accessToken, refreshToken, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token pair")
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Authenticate validates an access token for a protected request: signature,
// expiry, token kind, then the blacklist.
func (s *AuthService) Authenticate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims.TokenType != TokenTypeAccess {
		return nil, ErrUnauthorized
	}

	revoked, err := s.blacklist.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	return claims, nil
}

// Refresh exchanges a refresh token for a brand-new pair. The presented
// token is revoked for the rest of its lifetime before the new pair is
// issued, so it can never be exchanged twice.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrUnauthorized
	}

	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, ErrUnauthorized
	}

	if claims.TokenType != TokenTypeRefresh || claims.UserID == "" {
		return nil, ErrUnauthorized
	}

	revoked, err := s.blacklist.IsRevoked(claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrUnauthorized
	}

	if err := s.revokeClaims(claims); err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, err := s.tokens.GenerateTokenPair(claims.UserID, claims.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate token pair")
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout revokes the caller's access token and, when a refresh token is
// supplied, that one too. A refresh token that no longer verifies is ignored:
// logout must succeed even with a stale cookie.
func (s *AuthService) Logout(accessClaims *Claims, refreshToken string) error {
	if accessClaims == nil || accessClaims.ID == "" || accessClaims.TokenType != TokenTypeAccess {
		return ErrUnauthorized
	}

	if err := s.revokeClaims(accessClaims); err != nil {
		return err
	}

	if refreshToken != "" {
		refreshClaims, err := s.tokens.ValidateToken(refreshToken)
		if err == nil && refreshClaims.TokenType == TokenTypeRefresh {
			if err := s.revokeClaims(refreshClaims); err != nil {
				log.Warn().Err(err).Msg("Failed to revoke refresh token during logout")
			}
		}
	}

	return nil
}

// Me returns the profile projection for a subject id
func (s *AuthService) Me(userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// revokeClaims blacklists a token's identifier for whatever lifetime it has
// left. Remaining time is clamped at zero; the blacklist no-ops on that.
func (s *AuthService) revokeClaims(claims *Claims) error {
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	ttl := int64(remaining.Seconds())
	if ttl < 0 {
		ttl = 0
	}
	return s.blacklist.Revoke(claims.ID, ttl)
}
