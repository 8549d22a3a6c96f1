package models

import "time"

// Announcement is an entry of the announcement feed.
type Announcement struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"column:titulo;size:255;not null"`
	Body        string    `gorm:"column:conteudo;type:text"`
	Author      string    `gorm:"column:autor;size:150"`
	PublishedAt time.Time `gorm:"column:publicado_em;index"`
}

// TableName overrides GORM's default table name.
func (Announcement) TableName() string {
	return "avisos"
}

// All returns every model of the backend in migration order.
func All() []any {
	return []any{&Permission{}, &Group{}, &User{}, &Contract{}, &Announcement{}}
}
