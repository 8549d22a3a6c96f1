package models

// Permission is one code of the closed permission enumeration.
type Permission struct {
	ID   int64  `gorm:"primaryKey"`
	Code string `gorm:"column:codigo;uniqueIndex;size:100;not null"`
	Name string `gorm:"column:nome;size:255"`
}

// TableName overrides GORM's default table name.
func (Permission) TableName() string {
	return "permissoes"
}
