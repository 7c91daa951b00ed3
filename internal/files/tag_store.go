package files

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"taskdeck/internal/models"
)

// TagStore persists tags in tags.json under the data directory.
type TagStore struct {
	mu     sync.Mutex
	path   string
	nextID int
	tags   map[int]models.Tag
}

// OpenTagStore loads tags.json from dir, creating the directory if needed.
func OpenTagStore(dir string) (*TagStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	s := &TagStore{
		path:   filepath.Join(dir, "tags.json"),
		nextID: 1,
		tags:   make(map[int]models.Tag),
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	var list []models.Tag
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	for _, t := range list {
		s.tags[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s, nil
}

// Create adds a tag with the given name and persists it.
func (s *TagStore) Create(name string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Tag{ID: s.nextID, Name: name}
	s.tags[t.ID] = t
	if err := s.persist(); err != nil {
		delete(s.tags, t.ID)
		return models.Tag{}, err
	}
	s.nextID++
	return t, nil
}

// Get returns the tag with the given id.
func (s *TagStore) Get(id int) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tags[id]
	if !ok {
		return models.Tag{}, ErrNotFound
	}
	return t, nil
}

// All returns every tag ordered by id.
func (s *TagStore) All() []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *TagStore) persist() error {
	list := make([]models.Tag, 0, len(s.tags))
	for _, t := range s.tags {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0600)
}
