package files

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"taskdeck/internal/models"
)

// ErrNotFound is returned by all stores when a row does not exist.
var ErrNotFound = errors.New("not found")

// TaskStore persists tasks in a single JSON file under the data directory.
type TaskStore struct {
	mu     sync.Mutex
	path   string
	nextID int
	tasks  map[int]models.Task
}

// OpenTaskStore loads tasks.json from dir, creating the directory if needed.
func OpenTaskStore(dir string) (*TaskStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	s := &TaskStore{
		path:   filepath.Join(dir, "tasks.json"),
		nextID: 1,
		tasks:  make(map[int]models.Task),
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	var list []models.Task
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	for _, t := range list {
		s.tasks[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s, nil
}

// Create assigns an id to t and persists it.
func (s *TaskStore) Create(t models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.tasks[t.ID] = t
	if err := s.persist(); err != nil {
		delete(s.tasks, t.ID)
		return models.Task{}, err
	}
	s.nextID++
	return t, nil
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id int) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return t, nil
}

// ByUser returns all tasks owned by userID, ordered by id.
func (s *TaskStore) ByUser(userID string) []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Update replaces an existing task and persists the change.
func (s *TaskStore) Update(t models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tasks[t.ID]
	if !ok {
		return ErrNotFound
	}
	s.tasks[t.ID] = t
	if err := s.persist(); err != nil {
		s.tasks[t.ID] = old
		return err
	}
	return nil
}

// Delete removes a task and persists the change.
func (s *TaskStore) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.tasks[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	if err := s.persist(); err != nil {
		s.tasks[id] = old
		return err
	}
	return nil
}

// persist writes the full task list. Caller must hold s.mu.
func (s *TaskStore) persist() error {
	list := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0600)
}
