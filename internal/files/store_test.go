package files

import (
	"errors"
	"testing"
	"time"

	"taskdeck/internal/models"
)

func newTask(userID string, tagID int) models.Task {
	return models.Task{
		Title:     "Test Task",
		Content:   "Test content",
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
		TagID:     tagID,
	}
}

func TestTaskStoreCreateAssignsSequentialIDs(t *testing.T) {
	s, err := OpenTaskStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first, err := s.Create(newTask("u1", 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := s.Create(newTask("u1", 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
}

func TestTaskStoreGetMissing(t *testing.T) {
	s, err := OpenTaskStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Get(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTaskStoreByUser(t *testing.T) {
	s, err := OpenTaskStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Create(newTask("alice", 1))
	s.Create(newTask("bob", 1))
	s.Create(newTask("alice", 2))

	got := s.ByUser("alice")
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}
	if got[0].ID > got[1].ID {
		t.Errorf("tasks not ordered by id: %d, %d", got[0].ID, got[1].ID)
	}
	for _, task := range got {
		if task.UserID != "alice" {
			t.Errorf("leaked task owned by %q", task.UserID)
		}
	}
}

func TestTaskStoreUpdateAndDelete(t *testing.T) {
	s, err := OpenTaskStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	task, _ := s.Create(newTask("u1", 1))

	task.Status = models.StatusCompleted
	if err := s.Update(task); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.Get(task.ID)
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q after update", got.Status)
	}

	if err := s.Delete(task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v after delete, want ErrNotFound", err)
	}
	if err := s.Delete(task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
	if err := s.Update(task); !errors.Is(err, ErrNotFound) {
		t.Errorf("update after delete err = %v, want ErrNotFound", err)
	}
}

func TestTaskStoreSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenTaskStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	created, err := s.Create(newTask("u1", 1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	reloaded, err := OpenTaskStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reloaded.Get(created.ID)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if got.Title != created.Title || got.UserID != created.UserID {
		t.Errorf("reloaded task = %+v, want %+v", got, created)
	}
	next, err := reloaded.Create(newTask("u1", 1))
	if err != nil {
		t.Fatalf("create after reload: %v", err)
	}
	if next.ID != created.ID+1 {
		t.Errorf("id after reload = %d, want %d", next.ID, created.ID+1)
	}
}

func TestTagStoreCreateAndList(t *testing.T) {
	s, err := OpenTagStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	work, err := s.Create("Work")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Create("Personal")

	got, err := s.Get(work.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Work" {
		t.Errorf("name = %q", got.Name)
	}
	all := s.All()
	if len(all) != 2 || all[0].ID != 1 || all[1].ID != 2 {
		t.Errorf("All() = %+v", all)
	}
	if _, err := s.Get(99); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTagStoreSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenTagStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Create("Work")

	reloaded, err := OpenTagStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	all := reloaded.All()
	if len(all) != 1 || all[0].Name != "Work" {
		t.Errorf("All() after reload = %+v", all)
	}
}

func TestUserStoreCreateAndLookup(t *testing.T) {
	s, err := OpenUserStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	u, err := s.Create("alice", "alice@example.com", "hash")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.UserID == "" {
		t.Fatal("user id not generated")
	}

	byID, err := s.Get(u.UserID)
	if err != nil || byID.Username != "alice" {
		t.Errorf("Get = %+v, %v", byID, err)
	}
	byName, err := s.GetByUsername("alice")
	if err != nil || byName.UserID != u.UserID {
		t.Errorf("GetByUsername = %+v, %v", byName, err)
	}
	if _, err := s.GetByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUserStoreRejectsDuplicateUsername(t *testing.T) {
	s, err := OpenUserStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := s.Create("alice", "a@example.com", "hash"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create("alice", "b@example.com", "hash"); !errors.Is(err, ErrUserExists) {
		t.Errorf("err = %v, want ErrUserExists", err)
	}
}

func TestUserStoreSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenUserStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	u, _ := s.Create("alice", "alice@example.com", "hash")

	reloaded, err := OpenUserStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := reloaded.Get(u.UserID)
	if err != nil || got.Email != "alice@example.com" {
		t.Errorf("Get after reload = %+v, %v", got, err)
	}
}
