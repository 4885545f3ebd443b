package services

import (
	"encoding/json"
	"fmt"
	"log"

	"gameacct/internal/credentials"
	"gameacct/internal/models"
	"gameacct/internal/repositories"
)

// Reconciler replays repair messages left behind by partial failures,
// completing map-store writes whose login-store half already succeeded.
type Reconciler struct {
	loginRepo repositories.LoginRepository
	gameRepo  repositories.GameRepository
}

// NewReconciler creates a new Reconciler.
func NewReconciler(loginRepo repositories.LoginRepository, gameRepo repositories.GameRepository) *Reconciler {
	return &Reconciler{
		loginRepo: loginRepo,
		gameRepo:  gameRepo,
	}
}

// HandleRepair processes one message body from the repair queue. The
// queue delivers at least once and in no particular order, so the
// message itself is only a trigger: the digest written to the map store
// is always derived from the login store's current password, which the
// fixed write order makes the authority. Replays, redeliveries, and
// messages overtaken by a later password change all converge on the
// same row. A non-nil return requeues the message.
func (r *Reconciler) HandleRepair(body []byte) error {
	var msg models.RepairMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		// An unparseable message would requeue forever; drop it.
		log.Printf("Dropping malformed repair message: %v", err)
		return nil
	}

	account, err := r.loginRepo.GetByUsername(msg.AccountID)
	if err != nil {
		return fmt.Errorf("repair login lookup for %s: %w", msg.AccountID, err)
	}
	if account == nil {
		// No login row means there is nothing this repair belongs to.
		log.Printf("No login row for %s; dropping repair", msg.AccountID)
		return nil
	}
	expected := credentials.Derive(account.Password).GameForm
	if expected != msg.PasswordDigest {
		log.Printf("Repair message for %s is stale; using current login password", msg.AccountID)
	}

	existing, err := r.gameRepo.GetByAccountID(msg.AccountID)
	if err != nil {
		return fmt.Errorf("repair lookup for %s: %w", msg.AccountID, err)
	}
	if existing != nil {
		if existing.Password == expected && existing.Pwd == expected {
			// Already repaired.
			return nil
		}
		if err := r.gameRepo.UpdatePasswordDigest(msg.AccountID, expected); err != nil {
			return fmt.Errorf("repair digest update for %s: %w", msg.AccountID, err)
		}
		log.Printf("Repaired stale digest for %s", msg.AccountID)
		return nil
	}

	if !msg.NewAccount {
		// The map row is gone and this message only carries a password
		// change; there is nothing safe to recreate from it.
		log.Printf("No game row for %s; dropping password repair", msg.AccountID)
		return nil
	}

	user := &models.GameUser{
		AccountID: msg.AccountID,
		Password:  expected,
		Pwd:       expected,
		Bonus:     msg.Bonus,
		OwnerID:   msg.OwnerID,
	}
	if err := r.gameRepo.Create(user); err != nil {
		if storeCause(err) == repositories.CauseConflict {
			// A concurrent repair or retried registration won.
			return nil
		}
		return fmt.Errorf("repair insert for %s: %w", msg.AccountID, err)
	}
	log.Printf("Repaired missing game row for %s", msg.AccountID)
	return nil
}
