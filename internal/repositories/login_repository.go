package repositories

import "gameacct/internal/models"

// LoginRepository defines the interface for the login server's accounts
// table. Lookups return (nil, nil) on a clean miss; every failure is a
// *StoreError.
type LoginRepository interface {
	GetByUsername(username string) (*models.Account, error)
	Create(account *models.Account) error
	UpdatePassword(username, password string) error
}
