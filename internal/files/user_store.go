package files

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/models"
)

// ErrUserExists is returned when registering a username that is taken.
var ErrUserExists = errors.New("user already exists")

// UserStore persists users in users.json under the data directory.
type UserStore struct {
	mu    sync.Mutex
	path  string
	users map[string]models.User // keyed by user id
}

// OpenUserStore loads users.json from dir, creating the directory if needed.
func OpenUserStore(dir string) (*UserStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	s := &UserStore{
		path:  filepath.Join(dir, "users.json"),
		users: make(map[string]models.User),
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	var list []models.User
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	for _, u := range list {
		s.users[u.UserID] = u
	}
	return s, nil
}

// Create registers a new user. The user id is generated here.
func (s *UserStore) Create(username, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return models.User{}, ErrUserExists
		}
	}
	u := models.User{
		UserID:       "u--" + uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users[u.UserID] = u
	if err := s.persist(); err != nil {
		delete(s.users, u.UserID)
		return models.User{}, err
	}
	return u, nil
}

// Get returns the user with the given id.
func (s *UserStore) Get(userID string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

// GetByUsername returns the user with the given username.
func (s *UserStore) GetByUsername(username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (s *UserStore) persist() error {
	list := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0600)
}
