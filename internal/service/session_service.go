package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Gab661-coder/Gabinvest/internal/domain"
	"github.com/Gab661-coder/Gabinvest/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotAuthenticated indicates an operation that requires a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// SessionService tracks the single active user and mirrors the snapshot to
// the store, replacing the global currentUser of the original demo.
type SessionService interface {
	Signup(ctx context.Context, name, email, phone, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	Logout(ctx context.Context) error
	// Restore loads a persisted session snapshot at startup. The snapshot is
	// trusted as-is and not re-validated against the registry, so it can
	// drift from the registry's copy until the next mutation rewrites both.
	Restore(ctx context.Context) error
	// Update replaces the active snapshot after a registry mutation.
	Update(ctx context.Context, user domain.User) error
	Current() (domain.User, bool)
}

type sessionService struct {
	registry   *repository.AccountRegistry
	store      repository.Store
	sessionKey string

	mu      sync.Mutex
	current *domain.User
}

func NewSessionService(registry *repository.AccountRegistry, store repository.Store, sessionKey string) SessionService {
	return &sessionService{
		registry:   registry,
		store:      store,
		sessionKey: sessionKey,
	}
}

func (s *sessionService) Signup(ctx context.Context, name, email, phone, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return domain.User{}, errors.New("name is required")
	}
	if email == "" {
		return domain.User{}, errors.New("email is required")
	}
	if password == "" {
		return domain.User{}, errors.New("password is required")
	}

	user, err := s.registry.Create(ctx, name, email, phone, password)
	if err != nil {
		return domain.User{}, err
	}

	// auto-login after registration
	if err := s.setCurrent(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *sessionService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	user, ok := s.registry.FindByCredentials(email, password)
	if !ok {
		return domain.User{}, ErrInvalidCredentials
	}

	if err := s.setCurrent(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	if err := s.store.Delete(ctx, s.sessionKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *sessionService) Restore(ctx context.Context) error {
	raw, err := s.store.Get(ctx, s.sessionKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return fmt.Errorf("%w: session record: %v", repository.ErrCorruptRecord, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &user
	return nil
}

func (s *sessionService) Update(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != user.ID {
		return ErrNotAuthenticated
	}
	return s.setCurrentLocked(ctx, user)
}

func (s *sessionService) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return domain.User{}, false
	}
	return s.current.Clone(), true
}

func (s *sessionService) setCurrent(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setCurrentLocked(ctx, user)
}

func (s *sessionService) setCurrentLocked(ctx context.Context, user domain.User) error {
	snapshot := user.Clone()
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.store.Set(ctx, s.sessionKey, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.current = &snapshot
	return nil
}
