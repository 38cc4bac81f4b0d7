package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"storefront-backend/internal/models"
)

// RevocationStore is the persistence the blacklist needs. Implemented by
// repository.RevocationRepository.
type RevocationStore interface {
	Upsert(tokenHash string, expiresAt time.Time) error
	FindByHash(tokenHash string) (*models.RevokedToken, error)
	DeleteByHash(tokenHash string) error
}

// BlacklistService tracks revoked token identifiers until their natural
// expiry. Identifiers are hashed before they touch storage, so a leak of the
// table yields nothing an attacker can replay or forge against.
type BlacklistService struct {
	store RevocationStore
}

func NewBlacklistService(store RevocationStore) *BlacklistService {
	return &BlacklistService{store: store}
}

func hashTokenID(jti string) string {
	sum := sha256.Sum256([]byte(jti))
	return hex.EncodeToString(sum[:])
}

// Revoke blacklists a token identifier for ttlSeconds. An empty identifier
// or non-positive TTL is a no-op: an already-expired token fails the codec's
// expiry check on its own and needs no row here.
func (s *BlacklistService) Revoke(jti string, ttlSeconds int64) error {
	if jti == "" || ttlSeconds <= 0 {
		return nil
	}

	expiresAt := time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return s.store.Upsert(hashTokenID(jti), expiresAt)
}

// IsRevoked reports whether a token identifier is blacklisted. A missing
// identifier is treated as revoked. Rows whose window has passed are deleted
// on the spot and reported as not revoked.
func (s *BlacklistService) IsRevoked(jti string) (bool, error) {
	if jti == "" {
		return true, nil
	}

	tokenHash := hashTokenID(jti)
	record, err := s.store.FindByHash(tokenHash)
	if err != nil {
		return false, err
	}
	if record == nil {
		return false, nil
	}

	if !record.ExpiresAt.After(time.Now()) {
		// Stale row, reclaim it on the way out
		if err := s.store.DeleteByHash(tokenHash); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}
