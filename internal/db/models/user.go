package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is a portal user. Every user belongs to exactly one group.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `gorm:"primaryKey"`
	// Active indicates whether the user account can log in.
	Active bool
	// Name is the display name.
	Name string `gorm:"size:150;not null"`
	// Email is the login of the user.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	// Password is the Argon2id hashed password.
	Password string `gorm:"size:255"`
	// GroupID is the ID of the user's group.
	GroupID int64 `gorm:"column:grupo_id;not null"`
	// Group is the associated group.
	Group Group `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time
}

// TableName overrides GORM's default table name.
func (User) TableName() string {
	return "usuarios"
}

// HashPassword hashes a plaintext password using Argon2id with the default parameters.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the stored hash in constant time.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
