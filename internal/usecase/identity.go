package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	domain "github.com/minh2003vt/OkiMart/internal/entity"
)

const authStateKey = "okimart:auth"

var (
	anyDigit    = regexp.MustCompile(`\d`)
	anyNonDigit = regexp.MustCompile(`\D`)
)

// RegisterExtras are the optional profile fields collected at sign-up.
type RegisterExtras struct {
	DOB     string
	Address string
	Phone   string
}

// IdentityStore holds every registered user plus the single active
// identity. All mutations snapshot the full collection into the state
// store; the in-memory copy stays authoritative for the session.
type IdentityStore struct {
	mu      sync.Mutex
	state   StateStore
	log     *slog.Logger
	users   map[string]*domain.User
	current string
}

type authState struct {
	CurrentUserID string                 `json:"currentUserId"`
	Users         map[string]domain.User `json:"users"`
}

// NewIdentityStore rehydrates from the state store. A missing or
// malformed snapshot starts empty; startup never fails on bad state.
func NewIdentityStore(ctx context.Context, state StateStore, log *slog.Logger) *IdentityStore {
	s := &IdentityStore{
		state: state,
		log:   log,
		users: make(map[string]*domain.User),
	}
	raw, ok, err := state.Read(ctx, authStateKey)
	if err != nil {
		log.Warn("auth state read failed, starting empty", "err", err)
		return s
	}
	if !ok {
		return s
	}
	var snap authState
	if err := json.Unmarshal(raw, &snap); err != nil {
		log.Warn("auth state malformed, starting empty", "err", err)
		return s
	}
	for id, u := range snap.Users {
		user := u
		s.users[id] = &user
	}
	if _, ok := s.users[snap.CurrentUserID]; ok {
		s.current = snap.CurrentUserID
	}
	return s
}

func validateName(name string) error {
	if anyDigit.MatchString(name) {
		return &domain.ValidationError{Field: "name", Reason: "must not contain numbers"}
	}
	return nil
}

func validatePhone(phone string) error {
	if phone != "" && anyNonDigit.MatchString(phone) {
		return &domain.ValidationError{Field: "phone", Reason: "must contain digits only"}
	}
	return nil
}

func (s *IdentityStore) Register(ctx context.Context, name, email, password string, extras RegisterExtras) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateName(name); err != nil {
		return domain.User{}, err
	}
	if err := validatePhone(extras.Phone); err != nil {
		return domain.User{}, err
	}
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return domain.User{}, &domain.ValidationError{Field: "email", Reason: "already registered"}
		}
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: password,
		DOB:      extras.DOB,
		Address:  extras.Address,
		Phone:    extras.Phone,
	}
	s.users[user.ID] = user
	s.current = user.ID
	s.persist(ctx)
	return *user, nil
}

func (s *IdentityStore) Login(ctx context.Context, email, password string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) && u.Password == password {
			s.current = u.ID
			s.persist(ctx)
			return *u, nil
		}
	}
	return domain.User{}, &domain.AuthError{Reason: "invalid credentials"}
}

// Logout clears the active identity. Calling it while logged out is fine.
func (s *IdentityStore) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ""
	s.persist(ctx)
}

func (s *IdentityStore) UpdateProfile(ctx context.Context, updates domain.ProfileUpdate) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[s.current]
	if !ok {
		return domain.User{}, &domain.AuthError{Reason: "not authenticated"}
	}
	if updates.Name != nil {
		if err := validateName(*updates.Name); err != nil {
			return domain.User{}, err
		}
	}
	if updates.Phone != nil {
		if err := validatePhone(*updates.Phone); err != nil {
			return domain.User{}, err
		}
	}
	if updates.Name != nil {
		u.Name = *updates.Name
	}
	if updates.DOB != nil {
		u.DOB = *updates.DOB
	}
	if updates.Address != nil {
		u.Address = *updates.Address
	}
	if updates.Phone != nil {
		u.Phone = *updates.Phone
	}
	s.persist(ctx)
	return *u, nil
}

// Current returns a copy of the active user, or ok=false when browsing
// as guest.
func (s *IdentityStore) Current() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[s.current]
	if !ok {
		return domain.User{}, false
	}
	return *u, true
}

// OwnerKey is the cart-partition key for the active identity.
func (s *IdentityStore) OwnerKey() domain.OwnerKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == "" {
		return domain.OwnerGuest
	}
	return domain.OwnerForUser(s.current)
}

// persist snapshots users + active id. Callers hold s.mu.
func (s *IdentityStore) persist(ctx context.Context) {
	snap := authState{
		CurrentUserID: s.current,
		Users:         make(map[string]domain.User, len(s.users)),
	}
	for id, u := range s.users {
		snap.Users[id] = *u
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		s.log.Warn("auth state marshal failed", "err", err)
		return
	}
	if err := s.state.Write(ctx, authStateKey, raw); err != nil {
		s.log.Warn("auth state write failed", "err", err)
	}
}
