package inventory

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// UserPersister flushes the full user set to durable storage.
type UserPersister interface {
	Save(users []*model.User) error
}

// Users is the registry of accounts.  It shares the store's patterns:
// insertion-order collection, a counter seeded from the max numeric
// suffix of loaded ids, and best-effort persistence after each
// mutation.
type Users struct {
	mu      sync.RWMutex
	users   []*model.User
	counter int
	persist UserPersister
}

// NewUsers constructs an empty registry flushing through the given
// persister.
func NewUsers(persist UserPersister) *Users {
	if persist == nil {
		panic("nil persister passed to NewUsers")
	}
	return &Users{persist: persist}
}

// Hydrate replaces the registry's contents with users loaded from
// disk and re-derives the id counter.
func (u *Users) Hydrate(users []*model.User) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.users = users
	u.counter = 0
	for _, usr := range users {
		u.counter = maxSuffix(u.counter, usr.ID, "U")
	}
}

// Register adds a user with a fresh id and persists the users store.
// Names are unique; registering a taken name fails with
// ErrUserExists.
func (u *Users) Register(name, passwordHash, role string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: user name must not be empty", ErrValidation)
	}
	if strings.ContainsRune(name, '|') {
		return nil, fmt.Errorf("%w: user name must not contain the | delimiter", ErrValidation)
	}
	if role != model.RoleAdmin && role != model.RoleCustomer {
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, usr := range u.users {
		if usr.Name == name {
			return nil, ErrUserExists
		}
	}
	u.counter++
	user := &model.User{
		ID:           "U" + strconv.Itoa(u.counter),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
	}
	u.users = append(u.users, user)
	if err := u.persist.Save(u.users); err != nil {
		log.Printf("inventory: flushing users store: %v", err)
		return user, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return user, nil
}

// FindByName returns the user with the given login name.
func (u *Users) FindByName(name string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, usr := range u.users {
		if usr.Name == name {
			return usr, nil
		}
	}
	return nil, ErrUserNotFound
}

// FindByID returns the user with the given id.
func (u *Users) FindByID(id string) (*model.User, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	for _, usr := range u.users {
		if usr.ID == id {
			return usr, nil
		}
	}
	return nil, ErrUserNotFound
}
