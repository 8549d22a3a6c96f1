// Package contract provides database operations on contracts.
package contract

import (
	"errors"

	"gorm.io/gorm"

	"github.com/portal-prestadores/portal/internal/db/models"
)

var (
	// ErrContractNotFound is returned when a contract is not found.
	ErrContractNotFound = errors.New("contract not found")
	// ErrNumberEmpty is returned when creating a contract without number.
	ErrNumberEmpty = errors.New("contract number cannot be empty")
	// ErrContractAlreadyExists is returned when the contract number is taken.
	ErrContractAlreadyExists = errors.New("contract already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves a contract by its ID.
func GetByID(db *gorm.DB, id int64) (*models.Contract, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Contract

	result := db.First(&c, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}

		return nil, result.Error
	}

	return &c, nil
}

// GetAll retrieves all contracts ordered by number.
func GetAll(db *gorm.DB) ([]models.Contract, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var contracts []models.Contract

	result := db.Order("numero").Find(&contracts)
	if result.Error != nil {
		return nil, result.Error
	}

	return contracts, nil
}

// Create stores c. The number must be unique.
func Create(db *gorm.DB, c *models.Contract) error {
	if db == nil {
		return ErrDBNil
	}

	if c.Number == "" {
		return ErrNumberEmpty
	}

	var existing models.Contract

	result := db.Where("numero = ?", c.Number).First(&existing)
	if result.Error == nil {
		return ErrContractAlreadyExists
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	return db.Create(c).Error
}

// Delete deletes a contract by ID.
func Delete(db *gorm.DB, id int64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Contract{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrContractNotFound
	}

	return nil
}
