package repositories

import (
	"fmt"
	"sync"

	"gameacct/internal/models"
)

// MemoryGameRepository is an in-memory implementation of
// GameRepository with the same account-id uniqueness guarantee as the
// real map store.
type MemoryGameRepository struct {
	users map[string]models.GameUser
	mu    sync.RWMutex
}

// NewMemoryGameRepository creates a new instance of MemoryGameRepository.
func NewMemoryGameRepository() *MemoryGameRepository {
	return &MemoryGameRepository{
		users: make(map[string]models.GameUser),
	}
}

// GetByAccountID retrieves a game user by account id.
func (r *MemoryGameRepository) GetByAccountID(accountID string) (*models.GameUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[accountID]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetByAccountIDAndOwner retrieves a game user only if ownerID owns it.
func (r *MemoryGameRepository) GetByAccountIDAndOwner(accountID, ownerID string) (*models.GameUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[accountID]
	if !ok || user.OwnerID != ownerID {
		return nil, nil
	}
	return &user, nil
}

// Create inserts a new game user, rejecting duplicates the way the real
// store's primary key would.
func (r *MemoryGameRepository) Create(user *models.GameUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.AccountID]; ok {
		return &StoreError{Cause: CauseConflict, Err: fmt.Errorf("game user %s already exists", user.AccountID)}
	}
	r.users[user.AccountID] = *user
	return nil
}

// UpdatePasswordDigest writes the new digest into both legacy columns.
func (r *MemoryGameRepository) UpdatePasswordDigest(accountID, digest string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[accountID]
	if !ok {
		return &StoreError{Cause: CauseConnectivity, Err: fmt.Errorf("game user %s not found for digest update", accountID)}
	}
	user.Password = digest
	user.Pwd = digest
	r.users[accountID] = user
	return nil
}

// CountByOwner returns how many game users ownerID has registered.
func (r *MemoryGameRepository) CountByOwner(ownerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, user := range r.users {
		if user.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}
