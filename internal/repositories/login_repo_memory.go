package repositories

import (
	"fmt"
	"sync"

	"gameacct/internal/models"
)

// MemoryLoginRepository is an in-memory implementation of
// LoginRepository. It enforces the same username uniqueness the real
// login store does, so tests can exercise the duplicate-insert race.
type MemoryLoginRepository struct {
	accounts map[string]models.Account
	mu       sync.RWMutex
}

// NewMemoryLoginRepository creates a new instance of MemoryLoginRepository.
func NewMemoryLoginRepository() *MemoryLoginRepository {
	return &MemoryLoginRepository{
		accounts: make(map[string]models.Account),
	}
}

// GetByUsername retrieves an account by username.
func (r *MemoryLoginRepository) GetByUsername(username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[username]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

// Create inserts a new account, rejecting duplicates the way the real
// store's primary key would.
func (r *MemoryLoginRepository) Create(account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Username]; ok {
		return &StoreError{Cause: CauseConflict, Err: fmt.Errorf("account %s already exists", account.Username)}
	}
	r.accounts[account.Username] = *account
	return nil
}

// UpdatePassword replaces the stored password for username.
func (r *MemoryLoginRepository) UpdatePassword(username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[username]
	if !ok {
		return &StoreError{Cause: CauseConnectivity, Err: fmt.Errorf("account %s not found for password update", username)}
	}
	account.Password = password
	r.accounts[username] = account
	return nil
}
