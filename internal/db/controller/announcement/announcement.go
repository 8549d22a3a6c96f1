// Package announcement provides database operations on the announcement feed.
package announcement

import (
	"errors"

	"gorm.io/gorm"

	"github.com/portal-prestadores/portal/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

// Feed returns the announcements, newest first. limit <= 0 returns all.
func Feed(db *gorm.DB, limit int) ([]models.Announcement, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	q := db.Order("publicado_em desc")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Announcement
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}
