package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Gab661-coder/Gabinvest/internal/domain"
)

// welcomeBonus is credited to every new account on signup.
const welcomeBonus = 1000

// AccountRegistry keeps the ordered user list in memory and mirrors it
// wholesale to the Store on every mutation. Construct once at startup and
// call Load before use.
type AccountRegistry struct {
	store    Store
	usersKey string

	mu    sync.RWMutex
	users []domain.User
}

func NewAccountRegistry(store Store, usersKey string) *AccountRegistry {
	return &AccountRegistry{store: store, usersKey: usersKey}
}

// Load reads the user list from the store. An absent record yields an empty
// registry; an unparsable one resets to empty and reports ErrCorruptRecord
// so the caller can log and keep running.
func (r *AccountRegistry) Load(ctx context.Context) error {
	raw, err := r.store.Get(ctx, r.usersKey)
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = nil
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &r.users); err != nil {
		r.users = nil
		return fmt.Errorf("%w: users record: %v", ErrCorruptRecord, err)
	}
	return nil
}

// FindByCredentials scans for an exact match on both email and password.
// A miss does not distinguish an unknown email from a wrong password.
func (r *AccountRegistry) FindByCredentials(email, password string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email && r.users[i].Password == password {
			return r.users[i].Clone(), true
		}
	}
	return domain.User{}, false
}

// Exists reports whether an account is already registered under email.
func (r *AccountRegistry) Exists(email string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email {
			return true
		}
	}
	return false
}

// Create registers a new account with the welcome bonus and persists the
// full list. Fails with ErrDuplicateEmail without mutating anything.
func (r *AccountRegistry) Create(ctx context.Context, name, email, phone, password string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == email {
			return domain.User{}, ErrDuplicateEmail
		}
	}

	user := domain.User{
		ID:          domain.NewID(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		Password:    password,
		Balance:     welcomeBonus,
		Investments: make([]domain.Investment, 0),
		JoinDate:    time.Now().UTC(),
	}

	r.users = append(r.users, user)
	if err := r.persistLocked(ctx); err != nil {
		r.users = r.users[:len(r.users)-1]
		return domain.User{}, err
	}
	return user.Clone(), nil
}

// Save replaces the record matching user.ID and persists the full list.
// An unknown id is a reported error, not a silent no-op.
func (r *AccountRegistry) Save(ctx context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == user.ID {
			prev := r.users[i]
			r.users[i] = user.Clone()
			if err := r.persistLocked(ctx); err != nil {
				r.users[i] = prev
				return err
			}
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", ErrUserNotFound, user.ID)
}

// Users returns a snapshot of the registry in insertion order.
func (r *AccountRegistry) Users() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	for i := range r.users {
		out[i] = r.users[i].Clone()
	}
	return out
}

func (r *AccountRegistry) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(r.users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}
	if err := r.store.Set(ctx, r.usersKey, raw); err != nil {
		return fmt.Errorf("persist users: %w", err)
	}
	return nil
}
