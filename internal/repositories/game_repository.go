package repositories

import "gameacct/internal/models"

// GameRepository defines the interface for the map server's tb_user
// table. Lookups return (nil, nil) on a clean miss; every failure is a
// *StoreError.
type GameRepository interface {
	GetByAccountID(accountID string) (*models.GameUser, error)
	GetByAccountIDAndOwner(accountID, ownerID string) (*models.GameUser, error)
	Create(user *models.GameUser) error
	UpdatePasswordDigest(accountID, digest string) error
	CountByOwner(ownerID string) (int64, error)
}
