package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"gameacct/internal/credentials"
	"gameacct/internal/models"
	"gameacct/internal/repositories"
)

// Status classifies the outcome of a provisioning operation.
type Status int

const (
	StatusSuccess Status = iota
	StatusValidationError
	StatusConflict
	StatusQuotaExceeded
	StatusNotFoundOrForbidden
	StatusPartialFailure
	StatusTransientError
)

// Result is what the front end renders. Message is always safe to show
// the caller; internal error detail only ever reaches the log.
type Result struct {
	Status  Status
	Message string
}

// MaxAccountsPerOwner caps how many game accounts one principal may
// register. Enforced at registration time only, never retroactively.
const MaxAccountsPerOwner = 3

// EventPublisher publishes account lifecycle and repair messages.
// Implemented by rabbitmq.Client.
type EventPublisher interface {
	PublishAccountEvent(body []byte) error
	PublishRepair(body []byte) error
}

// ProvisioningService coordinates account writes across the login and
// map stores. The two stores share no transaction context: writes go
// login store first, map store second, and a map-store failure after a
// successful login-store write is reported as a partial failure and
// queued for repair instead of being rolled back. The fixed order means
// the only reachable partial state is "login row present, map row
// missing or stale", never the reverse.
type ProvisioningService struct {
	loginRepo repositories.LoginRepository
	gameRepo  repositories.GameRepository
	publisher EventPublisher
}

// NewProvisioningService creates a new ProvisioningService. publisher
// may be nil, in which case events are skipped.
func NewProvisioningService(loginRepo repositories.LoginRepository, gameRepo repositories.GameRepository, publisher EventPublisher) *ProvisioningService {
	return &ProvisioningService{
		loginRepo: loginRepo,
		gameRepo:  gameRepo,
		publisher: publisher,
	}
}

// NormalizeUsername lowercases the username and strips everything that
// is not a letter or digit. Idempotent, and applied exactly once per
// request before any comparison or write.
func NormalizeUsername(username string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(username) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Register creates a game account in both stores.
func (s *ProvisioningService) Register(username, password, confirmPassword, principalID string) Result {
	normalized := NormalizeUsername(username)
	if n := utf8.RuneCountInString(normalized); n < 3 || n > 16 {
		return Result{StatusValidationError, "Username must be between 3 and 16 characters."}
	}
	// The signup form advertises an 8 character minimum, but the
	// enforced bound has always been 5 and existing accounts depend on
	// it staying there.
	if n := utf8.RuneCountInString(password); n < 5 || n > 16 {
		return Result{StatusValidationError, "Password must be between 5 and 16 characters."}
	}
	if password != confirmPassword {
		return Result{StatusValidationError, "Passwords do not match."}
	}

	// Pre-check both stores for a friendlier error. Not linearizable
	// with the insert below; the store constraint is the final arbiter.
	existingAccount, err := s.loginRepo.GetByUsername(normalized)
	if err != nil {
		return s.transient("register login store lookup", err)
	}
	existingUser, err := s.gameRepo.GetByAccountID(normalized)
	if err != nil {
		return s.transient("register game store lookup", err)
	}
	if existingAccount != nil || existingUser != nil {
		return Result{StatusConflict, "Username already exists."}
	}

	owned, err := s.gameRepo.CountByOwner(principalID)
	if err != nil {
		return s.transient("register quota check", err)
	}
	if owned >= MaxAccountsPerOwner {
		return Result{StatusQuotaExceeded, "You can only register up to 3 accounts."}
	}

	creds := credentials.Derive(password)

	account := &models.Account{Username: normalized, Password: creds.LoginForm, RealName: normalized}
	if err := s.loginRepo.Create(account); err != nil {
		if storeCause(err) == repositories.CauseConflict {
			// Lost the existence-check race to a concurrent registration.
			return Result{StatusConflict, "Username already exists."}
		}
		return s.transient("register login store write", err)
	}

	user := &models.GameUser{
		AccountID: normalized,
		Password:  creds.GameForm,
		Pwd:       creds.GameForm,
		Bonus:     models.DefaultBonus,
		OwnerID:   principalID,
	}
	if err := s.gameRepo.Create(user); err != nil {
		// No rollback: the login row stays, and the repair queue gets
		// everything needed to complete the map-store write later.
		log.Printf("Partial failure: account %s created in login store but game store write failed: %v", normalized, err)
		s.publishRepair(models.RepairMessage{
			EventID:        uuid.New().String(),
			AccountID:      normalized,
			PasswordDigest: creds.GameForm,
			Bonus:          models.DefaultBonus,
			OwnerID:        principalID,
			NewAccount:     true,
		})
		return Result{StatusPartialFailure, "Something went wrong during registration. Please try again later."}
	}

	s.publishEvent(models.EventAccountRegistered, normalized, principalID)
	return Result{StatusSuccess, "Registration successful!"}
}

// ChangePassword rotates the password of an account owned by principalID.
func (s *ProvisioningService) ChangePassword(username, newPassword, confirmPassword, principalID string) Result {
	normalized := NormalizeUsername(username)
	if n := utf8.RuneCountInString(normalized); n < 3 || n > 16 {
		return Result{StatusValidationError, "Username must be between 3 and 16 characters."}
	}
	if n := utf8.RuneCountInString(newPassword); n < 5 || n > 16 {
		return Result{StatusValidationError, "New password must be between 5 and 16 characters."}
	}
	if newPassword != confirmPassword {
		return Result{StatusValidationError, "New passwords do not match."}
	}

	// An absent account and someone else's account share one result, so
	// the response never reveals whether the username exists.
	user, err := s.gameRepo.GetByAccountIDAndOwner(normalized, principalID)
	if err != nil {
		return s.transient("change password ownership check", err)
	}
	account, err := s.loginRepo.GetByUsername(normalized)
	if err != nil {
		return s.transient("change password login store lookup", err)
	}
	if user == nil || account == nil {
		return Result{StatusNotFoundOrForbidden, "User not found or you do not have permission to change this password."}
	}

	creds := credentials.Derive(newPassword)

	if err := s.loginRepo.UpdatePassword(normalized, creds.LoginForm); err != nil {
		return s.transient("change password login store update", err)
	}
	if err := s.gameRepo.UpdatePasswordDigest(normalized, creds.GameForm); err != nil {
		log.Printf("Partial failure: password for %s updated in login store but game store update failed: %v", normalized, err)
		s.publishRepair(models.RepairMessage{
			EventID:        uuid.New().String(),
			AccountID:      normalized,
			PasswordDigest: creds.GameForm,
			Bonus:          user.Bonus,
			OwnerID:        principalID,
		})
		return Result{StatusPartialFailure, "Something went wrong during the password change. Please try again later."}
	}

	s.publishEvent(models.EventAccountPasswordChanged, normalized, principalID)
	return Result{StatusSuccess, "Password changed successfully!"}
}

// transient logs the store failure and returns the generic caller-safe
// result for errors that left no partial state behind.
func (s *ProvisioningService) transient(op string, err error) Result {
	log.Printf("Transient store failure during %s: %v", op, err)
	return Result{StatusTransientError, "Something went wrong. Please try again later."}
}

func (s *ProvisioningService) publishEvent(eventType, accountID, ownerID string) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(models.AccountEvent{
		EventID:   uuid.New().String(),
		Type:      eventType,
		AccountID: accountID,
		OwnerID:   ownerID,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for %s: %v", eventType, accountID, err)
		return
	}
	// Events are best effort; a publish failure never fails the request.
	if err := s.publisher.PublishAccountEvent(body); err != nil {
		log.Printf("Warning: failed to publish %s event for %s: %v", eventType, accountID, err)
	}
}

func (s *ProvisioningService) publishRepair(msg models.RepairMessage) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal repair message for %s: %v", msg.AccountID, err)
		return
	}
	if err := s.publisher.PublishRepair(body); err != nil {
		log.Printf("Warning: failed to publish repair message for %s: %v", msg.AccountID, err)
	}
}

// storeCause extracts the StoreError cause, defaulting to connectivity
// for anything that is not a StoreError.
func storeCause(err error) repositories.Cause {
	var se *repositories.StoreError
	if errors.As(err, &se) {
		return se.Cause
	}
	return repositories.CauseConnectivity
}
