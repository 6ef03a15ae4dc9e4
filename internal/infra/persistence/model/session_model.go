package model

import (
	"time"
)

// The store holds at most one session and one credentials row, keyed by a
// fixed id. This mirrors the single-slot browser local storage the web client
// used.
const SingletonID = 1

// SessionModel is the GORM-specific struct for the 'sessions' table. The user
// snapshot is stored as a JSON blob so profile fields never require a schema
// migration.
type SessionModel struct {
	ID             int64  `gorm:"primaryKey"`
	Token          string `gorm:"type:varchar(64);not null"`
	UserJSON       []byte `gorm:"type:blob;not null"`
	LoginMethod    string `gorm:"type:varchar(20);not null"`
	SocialProvider string `gorm:"type:varchar(40)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}

// CredentialModel is the GORM-specific struct for the 'credentials' table.
// The payload is sealed before it reaches this layer; the store never sees
// plaintext secrets.
type CredentialModel struct {
	ID        int64  `gorm:"primaryKey"`
	Sealed    []byte `gorm:"type:blob;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CredentialModel) TableName() string {
	return "credentials"
}
