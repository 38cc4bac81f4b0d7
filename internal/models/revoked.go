package models

import "time"

// RevokedToken is one blacklist row per revoked token identifier. Only a
// one-way hash of the JTI is stored; the raw identifier never reaches the
// database. ExpiresAt carries the original token's expiry, after which the
// row is dead weight and may be removed.
type RevokedToken struct {
	TokenHash string    `json:"tokenHash" gorm:"primaryKey;type:varchar(64)"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime;not null"`
}

// TableName specifies the table name for GORM
func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
