package form

import (
	"strings"
	"testing"

	"taskdeck/internal/models"
)

var testTags = []models.Tag{
	{ID: 1, Name: "Work"},
	{ID: 2, Name: "Personal"},
}

func TestValidateEmptyFormReportsEveryField(t *testing.T) {
	errs := Validate(Fields{}, testTags)

	want := map[string]string{
		"title":   "title is required",
		"content": "content is required",
		"tag":     "tag is required",
		"status":  "status is required",
	}
	if len(errs) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(errs), len(want), errs)
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("errs[%q] = %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateTitleLength(t *testing.T) {
	base := Fields{
		Content: "Test content",
		TagID:   "1",
		Status:  models.StatusPending,
	}

	f := base
	f.Title = strings.Repeat("a", 41)
	errs := Validate(f, testTags)
	if errs["title"] != "max length is 40 characters" {
		t.Errorf("41 chars: errs[title] = %q, want length error", errs["title"])
	}

	f.Title = strings.Repeat("a", 40)
	errs = Validate(f, testTags)
	if _, ok := errs["title"]; ok {
		t.Errorf("40 chars: unexpected title error %q", errs["title"])
	}
}

func TestValidateTitleCountsRunes(t *testing.T) {
	f := Fields{
		Title:   strings.Repeat("ä", 40),
		Content: "Test content",
		TagID:   "1",
		Status:  models.StatusPending,
	}
	if errs := Validate(f, testTags); len(errs) != 0 {
		t.Errorf("40 multibyte runes should be valid, got %v", errs)
	}
}

func TestValidateContentLength(t *testing.T) {
	base := Fields{
		Title:  "Test Task",
		TagID:  "1",
		Status: models.StatusPending,
	}

	f := base
	f.Content = strings.Repeat("b", 601)
	errs := Validate(f, testTags)
	if errs["content"] != "max length is 600 characters" {
		t.Errorf("601 chars: errs[content] = %q, want length error", errs["content"])
	}

	f.Content = strings.Repeat("b", 600)
	errs = Validate(f, testTags)
	if _, ok := errs["content"]; ok {
		t.Errorf("600 chars: unexpected content error %q", errs["content"])
	}
}

func TestValidateRejectsUnknownTag(t *testing.T) {
	f := Fields{
		Title:   "Test Task",
		Content: "Test content",
		TagID:   "99",
		Status:  models.StatusPending,
	}
	errs := Validate(f, testTags)
	if errs["tag"] != "tag is required" {
		t.Errorf("errs[tag] = %q, want %q", errs["tag"], "tag is required")
	}
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	f := Fields{
		Title:   "Test Task",
		Content: "Test content",
		TagID:   "1",
		Status:  models.TaskStatus("DONE"),
	}
	errs := Validate(f, testTags)
	if errs["status"] != "status is required" {
		t.Errorf("errs[status] = %q, want %q", errs["status"], "status is required")
	}
}

func TestValidateAcceptsValidForm(t *testing.T) {
	f := Fields{
		Title:   "Test Task",
		Content: "Test content",
		TagID:   "2",
		Status:  models.StatusCompleted,
	}
	if errs := Validate(f, testTags); len(errs) != 0 {
		t.Errorf("valid form produced errors: %v", errs)
	}
}

func TestValidateIsIdempotent(t *testing.T) {
	f := Fields{Title: strings.Repeat("a", 50)}
	first := Validate(f, testTags)
	second := Validate(f, testTags)
	if len(first) != len(second) {
		t.Fatalf("repeated validation differs: %v vs %v", first, second)
	}
	for field, msg := range first {
		if second[field] != msg {
			t.Errorf("field %q: %q then %q", field, msg, second[field])
		}
	}
}
