package form

import (
	"context"
	"sync"

	"taskdeck/internal/models"
)

// SuccessMessage is emitted through the notifier after a created task.
const SuccessMessage = "Task successfully created"

// CreateTaskRequest is the payload handed to the task-creation collaborator.
// TagID travels in its string form and Status as its upper-case tag.
type CreateTaskRequest struct {
	Token   string
	Title   string
	Content string
	TagID   string
	Status  models.TaskStatus
}

// TagLister supplies the finite set of tags the form may select from.
type TagLister interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
}

// TaskCreator performs the create-task mutation.
type TaskCreator interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) error
}

// AuthState exposes the current authentication token.
type AuthState interface {
	Token() string
	IsLoggedIn() bool
}

// Notifier receives fire-and-forget user notifications.
type Notifier interface {
	Success(msg string)
	Error(err error)
}

// Outcome is the result of one Submit call.
type Outcome int

const (
	// OutcomeIgnored means the submit was dropped: either a submission was
	// already in flight or the controller was closed.
	OutcomeIgnored Outcome = iota
	// OutcomeInvalid means validation failed and the mutation was not invoked.
	OutcomeInvalid
	// OutcomeSuccess means the task was created and the form was reset.
	OutcomeSuccess
	// OutcomeFailure means the mutation failed; field values are preserved.
	OutcomeFailure
)

// Controller owns the create-task form: field values, validation errors, the
// loaded tag set and the submission lifecycle. One Controller corresponds to
// one mounted form; Close discards it.
//
// State machine: Idle -> Validating -> (Invalid -> Idle | Valid -> Submitting)
// -> (Success -> Idle | Failure -> Idle). There is no persistent submitted
// state; every submission is independent.
type Controller struct {
	mu         sync.Mutex
	fields     Fields
	errors     map[string]string
	submitting bool
	closed     bool
	tags       []models.Tag
	tagsErr    error

	lister  TagLister
	creator TaskCreator
	auth    AuthState
	notify  Notifier
}

// NewController builds a controller around the injected collaborators.
func NewController(lister TagLister, creator TaskCreator, auth AuthState, notify Notifier) *Controller {
	return &Controller{
		errors:  make(map[string]string),
		lister:  lister,
		creator: creator,
		auth:    auth,
		notify:  notify,
	}
}

// LoadTags fetches the selectable tags. A failure is recorded and returned;
// the form still renders, with no selectable tags.
func (c *Controller) LoadTags(ctx context.Context) error {
	tags, err := c.lister.ListTags(ctx)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return err
	}
	c.tags, c.tagsErr = tags, err
	return err
}

// Tags returns the loaded tag set and any load error.
func (c *Controller) Tags() ([]models.Tag, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Tag(nil), c.tags...), c.tagsErr
}

// SetTitle updates the title field. Ignored while a submission is in flight.
func (c *Controller) SetTitle(v string) { c.setField(func(f *Fields) { f.Title = v }) }

// SetContent updates the content field. Ignored while a submission is in flight.
func (c *Controller) SetContent(v string) { c.setField(func(f *Fields) { f.Content = v }) }

// SetTag updates the selected tag id. Ignored while a submission is in flight.
func (c *Controller) SetTag(id string) { c.setField(func(f *Fields) { f.TagID = id }) }

// SetStatus updates the selected status. Ignored while a submission is in flight.
func (c *Controller) SetStatus(s models.TaskStatus) { c.setField(func(f *Fields) { f.Status = s }) }

func (c *Controller) setField(apply func(*Fields)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting || c.closed {
		return
	}
	apply(&c.fields)
}

// Fields returns a snapshot of the current field values.
func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// FieldErrors returns a copy of the validation errors from the last pass.
func (c *Controller) FieldErrors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Submitting reports whether a submission is in flight. This flag is the
// single authoritative signal for disabling inputs and showing the loading
// indicator.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit runs one full submission: synchronous validation, then the awaited
// mutation. It blocks until the mutation resolves and returns the outcome.
// A call while another submission is in flight is ignored.
func (c *Controller) Submit(ctx context.Context) Outcome {
	c.mu.Lock()
	if c.closed || c.submitting {
		c.mu.Unlock()
		return OutcomeIgnored
	}
	c.errors = Validate(c.fields, c.tags)
	if len(c.errors) > 0 {
		c.mu.Unlock()
		return OutcomeInvalid
	}
	c.submitting = true
	req := CreateTaskRequest{
		Token:   c.auth.Token(),
		Title:   c.fields.Title,
		Content: c.fields.Content,
		TagID:   c.fields.TagID,
		Status:  c.fields.Status,
	}
	c.mu.Unlock()

	err := c.creator.CreateTask(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		// The form was discarded mid-flight; resolution is a no-op.
		return OutcomeIgnored
	}
	c.submitting = false
	if err != nil {
		c.notify.Error(err)
		return OutcomeFailure
	}
	c.fields = Fields{}
	c.errors = make(map[string]string)
	c.notify.Success(SuccessMessage)
	return OutcomeSuccess
}

// Close discards the controller. Any in-flight submission resolves without
// mutating state or emitting notifications.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
