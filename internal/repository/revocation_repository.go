package repository

import (
	"time"

	"storefront-backend/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationRepository persists blacklist rows keyed by the hashed token
// identifier. The unique key on token_hash makes re-revocation an idempotent
// upsert rather than a racing double insert.
type RevocationRepository struct {
	db *gorm.DB
}

func NewRevocationRepository(db *gorm.DB) *RevocationRepository {
	return &RevocationRepository{db: db}
}

// Upsert inserts a revocation row, replacing the expiry if one already
// exists for this hash
func (r *RevocationRepository) Upsert(tokenHash string, expiresAt time.Time) error {
	revoked := &models.RevokedToken{
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"expires_at"}),
	}).Create(revoked)

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to upsert revoked token")
		return result.Error
	}
	return nil
}

// FindByHash returns the row for a hashed identifier, or nil when absent
func (r *RevocationRepository) FindByHash(tokenHash string) (*models.RevokedToken, error) {
	var revoked models.RevokedToken
	result := r.db.Where("token_hash = ?", tokenHash).First(&revoked)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, nil
	}

	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to look up revoked token")
		return nil, result.Error
	}

	return &revoked, nil
}

func (r *RevocationRepository) DeleteByHash(tokenHash string) error {
	result := r.db.Delete(&models.RevokedToken{}, "token_hash = ?", tokenHash)
	if result.Error != nil {
		log.Error().Err(result.Error).Msg("Failed to delete revoked token")
	}
	return result.Error
}

// DeleteExpired reclaims rows whose revocation window has passed. The read
// path already treats them as absent; this only frees storage.
func (r *RevocationRepository) DeleteExpired() (int64, error) {
	result := r.db.Where("expires_at < ?", time.Now()).
		Delete(&models.RevokedToken{})
	return result.RowsAffected, result.Error
}
