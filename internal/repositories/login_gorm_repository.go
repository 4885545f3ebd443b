package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gameacct/internal/models"
)

// GORMLoginRepository is a GORM implementation of LoginRepository.
type GORMLoginRepository struct {
	db *gorm.DB
}

// NewGORMLoginRepository creates a new instance of GORMLoginRepository.
// The *gorm.DB must be opened with TranslateError enabled so that
// uniqueness violations surface as gorm.ErrDuplicatedKey.
func NewGORMLoginRepository(db *gorm.DB) *GORMLoginRepository {
	return &GORMLoginRepository{
		db: db,
	}
}

// GetByUsername retrieves an account by username.
func (r *GORMLoginRepository) GetByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreError(fmt.Errorf("failed to get account %s: %w", username, err))
	}
	return &account, nil
}

// Create inserts a new account row. A duplicate username comes back as
// a StoreError with cause conflict.
func (r *GORMLoginRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		return wrapStoreError(fmt.Errorf("failed to create account %s: %w", account.Username, err))
	}
	return nil
}

// UpdatePassword replaces the stored password for username.
func (r *GORMLoginRepository) UpdatePassword(username, password string) error {
	res := r.db.Model(&models.Account{}).Where("username = ?", username).Update("password", password)
	if res.Error != nil {
		return wrapStoreError(fmt.Errorf("failed to update password for account %s: %w", username, res.Error))
	}
	if res.RowsAffected == 0 {
		return wrapStoreError(fmt.Errorf("account %s not found for password update: %w", username, gorm.ErrRecordNotFound))
	}
	return nil
}

// wrapStoreError maps a GORM error onto the StoreError contract.
func wrapStoreError(err error) error {
	cause := CauseConnectivity
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		cause = CauseConflict
	}
	return &StoreError{Cause: cause, Err: err}
}
