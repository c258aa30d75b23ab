package storage

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/iliyamo/cinema-ticket-booking/internal/model"
)

// UserStore reads and writes the users file, one record per line:
//
//	U2|alice|$2a$10$...|CUSTOMER
//
// It shares the recovery policy of the other stores: missing file is
// empty, short lines are skipped.
type UserStore struct {
	path string
	mu   sync.Mutex // serializes writers
}

// NewUserStore returns a store backed by the given file path.
func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Load reads every recoverable user from the file.
func (s *UserStore) Load() ([]*model.User, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open users store: %w", err)
	}
	defer f.Close()

	var users []*model.User
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 4 {
			log.Printf("users store: skipping malformed record: %q", line)
			continue
		}
		users = append(users, &model.User{
			ID:           parts[0],
			Name:         parts[1],
			PasswordHash: parts[2],
			Role:         parts[3],
		})
	}
	if err := scanner.Err(); err != nil {
		return users, fmt.Errorf("read users store: %w", err)
	}
	return users, nil
}

// Save rewrites the whole users file from the given records.
func (s *UserStore) Save(users []*model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	for _, u := range users {
		fmt.Fprintf(&b, "%s|%s|%s|%s\n", u.ID, u.Name, u.PasswordHash, u.Role)
	}
	if err := writeAtomic(s.path, []byte(b.String())); err != nil {
		return fmt.Errorf("save users store: %w", err)
	}
	return nil
}
