package models

import "time"

// Contract is a service-provider contract.
type Contract struct {
	ID        int64     `gorm:"primaryKey"`
	Number    string    `gorm:"column:numero;uniqueIndex;size:50;not null"`
	Provider  string    `gorm:"column:prestador;size:255;not null"`
	Value     float64   `gorm:"column:valor"`
	StartDate time.Time `gorm:"column:inicio"`
	EndDate   time.Time `gorm:"column:fim"`
	Status    string    `gorm:"size:30;not null;default:'ativo'"`
}

// TableName overrides GORM's default table name.
func (Contract) TableName() string {
	return "contratos"
}
