package form

import (
	"strconv"
	"unicode/utf8"

	"taskdeck/internal/models"
)

// Field length limits for the create-task form.
const (
	MaxTitleLen   = 40
	MaxContentLen = 600
)

// Fields holds the user-entered values of the create-task form. TagID is the
// string form of a tag id; an empty TagID or Status means unset.
type Fields struct {
	Title   string
	Content string
	TagID   string
	Status  models.TaskStatus
}

// Validate checks every field against its rules and returns one message per
// invalid field, keyed by field name. Every rule is evaluated; violations are
// never masked by earlier ones. An empty map means the form is valid.
// Validate has no side effects and is deterministic.
func Validate(f Fields, tags []models.Tag) map[string]string {
	errs := make(map[string]string)

	switch {
	case f.Title == "":
		errs["title"] = "title is required"
	case utf8.RuneCountInString(f.Title) > MaxTitleLen:
		errs["title"] = "max length is 40 characters"
	}

	switch {
	case f.Content == "":
		errs["content"] = "content is required"
	case utf8.RuneCountInString(f.Content) > MaxContentLen:
		errs["content"] = "max length is 600 characters"
	}

	if !tagKnown(f.TagID, tags) {
		errs["tag"] = "tag is required"
	}

	if !f.Status.Valid() {
		errs["status"] = "status is required"
	}

	return errs
}

// tagKnown reports whether id matches one of the supplied tags. Tag ids are
// compared in their string form, which is how the form carries them.
func tagKnown(id string, tags []models.Tag) bool {
	if id == "" {
		return false
	}
	for _, t := range tags {
		if strconv.Itoa(t.ID) == id {
			return true
		}
	}
	return false
}
