package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gameacct/internal/models"
)

// GORMGameRepository is a GORM implementation of GameRepository.
type GORMGameRepository struct {
	db *gorm.DB
}

// NewGORMGameRepository creates a new instance of GORMGameRepository.
// The *gorm.DB must be opened with TranslateError enabled so that
// uniqueness violations surface as gorm.ErrDuplicatedKey.
func NewGORMGameRepository(db *gorm.DB) *GORMGameRepository {
	return &GORMGameRepository{
		db: db,
	}
}

// GetByAccountID retrieves a game user by account id.
func (r *GORMGameRepository) GetByAccountID(accountID string) (*models.GameUser, error) {
	var user models.GameUser
	if err := r.db.First(&user, "mid = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreError(fmt.Errorf("failed to get game user %s: %w", accountID, err))
	}
	return &user, nil
}

// GetByAccountIDAndOwner retrieves a game user only if it is owned by
// ownerID. A row owned by someone else is a miss, same as no row.
func (r *GORMGameRepository) GetByAccountIDAndOwner(accountID, ownerID string) (*models.GameUser, error) {
	var user models.GameUser
	if err := r.db.First(&user, "mid = ? AND discord_user_id = ?", accountID, ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, wrapStoreError(fmt.Errorf("failed to get game user %s for owner: %w", accountID, err))
	}
	return &user, nil
}

// Create inserts a new game user row. A duplicate account id comes back
// as a StoreError with cause conflict.
func (r *GORMGameRepository) Create(user *models.GameUser) error {
	if err := r.db.Create(user).Error; err != nil {
		return wrapStoreError(fmt.Errorf("failed to create game user %s: %w", user.AccountID, err))
	}
	return nil
}

// UpdatePasswordDigest writes the new digest into both legacy password
// columns in one statement, keeping them identical.
func (r *GORMGameRepository) UpdatePasswordDigest(accountID, digest string) error {
	res := r.db.Model(&models.GameUser{}).Where("mid = ?", accountID).Updates(map[string]interface{}{
		"password": digest,
		"pwd":      digest,
	})
	if res.Error != nil {
		return wrapStoreError(fmt.Errorf("failed to update digest for game user %s: %w", accountID, res.Error))
	}
	if res.RowsAffected == 0 {
		return wrapStoreError(fmt.Errorf("game user %s not found for digest update: %w", accountID, gorm.ErrRecordNotFound))
	}
	return nil
}

// CountByOwner returns how many game users ownerID has registered.
func (r *GORMGameRepository) CountByOwner(ownerID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.GameUser{}).Where("discord_user_id = ?", ownerID).Count(&count).Error; err != nil {
		return 0, wrapStoreError(fmt.Errorf("failed to count game users for owner: %w", err))
	}
	return count, nil
}
