package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/devlog/internal/client/client"
	"github.com/dmitrijs2005/devlog/internal/client/export"
	"github.com/dmitrijs2005/devlog/internal/client/models"
	"github.com/dmitrijs2005/devlog/internal/common"
	"github.com/dmitrijs2005/devlog/internal/logging"
)

const (
	MsgRequired         = "Title and content are required"
	MsgFilterValue      = "Please enter a filter value"
	MsgSelectEntry      = "Select an entry to edit first"
	MsgContentFirst     = "Please enter content first before generating "
	MsgCreated          = "Entry created successfully!"
	MsgUpdated          = "Entry updated successfully!"
	MsgDeleted          = "Entry deleted successfully!"
	MsgTitleGenerated   = "Title generated successfully!"
	MsgTagsGenerated    = "Tags generated successfully!"
	ConfirmDeletePrompt = "Are you sure you want to delete this entry?"
)

// EntriesAPI is the part of the API client the controller drives.
// *client.HTTPClient satisfies it.
type EntriesAPI interface {
	ListEntries(ctx context.Context) ([]models.Entry, error)
	SearchEntries(ctx context.Context, query string) ([]models.Entry, error)
	FilterEntries(ctx context.Context, kind models.FilterKind, value string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, in models.EntryInput) error
	UpdateEntry(ctx context.Context, id models.ID, in models.EntryInput) error
	DeleteEntry(ctx context.Context, id models.ID) error
	GenerateTitle(ctx context.Context, content string) (string, error)
	GenerateTags(ctx context.Context, content string) (string, error)
}

type Session interface {
	IsAuthenticated() bool
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// Exporter saves an export file and returns its path. *export.Saver
// satisfies it.
type Exporter interface {
	Export(ctx context.Context, kind models.ResourceKind, id models.ID, format models.ExportFormat) (string, error)
}

type Controller struct {
	api      EntriesAPI
	session  Session
	confirm  Confirmer
	exporter Exporter
	log      logging.Logger

	mu         sync.Mutex
	state      State
	listSeq    uint64
	cancelList context.CancelFunc
}

type Option func(*Controller)

func WithConfirmer(c Confirmer) Option {
	return func(ctl *Controller) { ctl.confirm = c }
}

func WithExporter(e Exporter) Option {
	return func(ctl *Controller) { ctl.exporter = e }
}

func WithLogger(l logging.Logger) Option {
	return func(ctl *Controller) { ctl.log = l }
}

// New returns a controller in the Unauthenticated phase. Without a
// Confirmer every delete is declined.
func New(api EntriesAPI, session Session, opts ...Option) *Controller {
	c := &Controller{
		api:     api,
		session: session,
		confirm: ConfirmFunc(func(context.Context, string) (bool, error) { return false, nil }),
		log:     logging.Discard(),
		state:   initialState(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Reset cancels any list request in flight and returns to the initial
// Unauthenticated state. Used on logout.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelList != nil {
		c.cancelList()
		c.cancelList = nil
	}
	c.listSeq++
	c.state = initialState()
}

// Mount enters the screen: it fetches the list when a session exists and
// otherwise stays Unauthenticated without issuing a request.
func (c *Controller) Mount(ctx context.Context) error {
	return c.FetchAll(ctx)
}

func (c *Controller) FetchAll(ctx context.Context) error {
	return c.runList(ctx, "Failed to fetch entries", false, c.api.ListEntries)
}

// Search uses the current query. An empty query fetches everything.
func (c *Controller) Search(ctx context.Context) error {
	query := c.Snapshot().Query
	if query == "" {
		return c.FetchAll(ctx)
	}
	return c.runList(ctx, "Search failed", false, func(ctx context.Context) ([]models.Entry, error) {
		return c.api.SearchEntries(ctx, query)
	})
}

// Filter uses the current query and filter kind. FilterAll delegates to
// Search; a specific kind needs a non-empty query.
func (c *Controller) Filter(ctx context.Context) error {
	s := c.Snapshot()

	switch s.FilterKind {
	case models.FilterAll, "":
		return c.Search(ctx)
	case models.FilterTag, models.FilterTitle:
	default:
		return c.invalid(fmt.Sprintf("Unsupported filter kind %q", s.FilterKind))
	}

	if s.Query == "" {
		return c.invalid(MsgFilterValue)
	}

	kind, query := s.FilterKind, s.Query
	return c.runList(ctx, "Filter failed", false, func(ctx context.Context) ([]models.Entry, error) {
		return c.api.FilterEntries(ctx, kind, query)
	})
}

// ClearSearch resets the query and filter kind and fetches everything.
func (c *Controller) ClearSearch(ctx context.Context) error {
	c.mu.Lock()
	c.state.Query = ""
	c.state.FilterKind = models.FilterAll
	c.mu.Unlock()
	return c.FetchAll(ctx)
}

// runList issues one list request and applies its result only if no newer
// list request was started meanwhile. keepMessage preserves the current
// message, so a refresh after a mutation does not hide its outcome.
func (c *Controller) runList(ctx context.Context, fallback string, keepMessage bool, fetch func(context.Context) ([]models.Entry, error)) error {
	c.mu.Lock()
	if !c.session.IsAuthenticated() {
		c.state.Phase = Unauthenticated
		c.mu.Unlock()
		return ErrUnauthenticated
	}

	if c.cancelList != nil {
		c.cancelList()
	}
	c.listSeq++
	seq := c.listSeq
	lctx, cancel := context.WithCancel(ctx)
	c.cancelList = cancel

	c.state.Phase = Loading
	if !keepMessage {
		c.state.Message = Message{}
	}
	c.mu.Unlock()

	entries, err := fetch(lctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if seq != c.listSeq {
		return ErrSuperseded
	}
	c.cancelList = nil
	c.state.Phase = Idle

	if err != nil {
		c.state.Message = failure(failureText(err, fallback, "Error: "))
		c.log.Warn(ctx, "list request failed", "error", err)
		return err
	}

	if entries == nil {
		entries = []models.Entry{}
	}
	c.state.Entries = entries
	return nil
}

// refresh re-fetches the list after a successful mutation. A refresh
// overtaken by another list request is not an error for the mutation.
func (c *Controller) refresh(ctx context.Context) error {
	err := c.runList(ctx, "Failed to fetch entries", true, c.api.ListEntries)
	if errors.Is(err, ErrSuperseded) {
		return nil
	}
	return err
}

// Submit creates or updates depending on the current mode.
func (c *Controller) Submit(ctx context.Context) error {
	if c.Snapshot().Mode.IsEditing() {
		return c.Update(ctx)
	}
	return c.Create(ctx)
}

func (c *Controller) Create(ctx context.Context) error {
	c.mu.Lock()
	fields := c.state.Fields
	c.state.Message = Message{}
	c.mu.Unlock()

	if fields.Title == "" || fields.Content == "" {
		return c.invalid(MsgRequired)
	}

	if err := c.api.CreateEntry(ctx, fields.input()); err != nil {
		c.fail(ctx, "create entry", err, "Failed to create entry", "Error: ")
		return err
	}

	c.mu.Lock()
	c.state.Message = success(MsgCreated)
	if !c.state.Mode.IsEditing() {
		c.state.Fields = Fields{}
	}
	c.mu.Unlock()

	return c.refresh(ctx)
}

// Update sends the full field set for the entry being edited.
func (c *Controller) Update(ctx context.Context) error {
	c.mu.Lock()
	fields, mode := c.state.Fields, c.state.Mode
	c.state.Message = Message{}
	c.mu.Unlock()

	if !mode.IsEditing() {
		return fmt.Errorf("%w: %w", ErrNotEditing, c.invalid(MsgSelectEntry))
	}
	if fields.Title == "" || fields.Content == "" {
		return c.invalid(MsgRequired)
	}

	if err := c.api.UpdateEntry(ctx, mode.EditID(), fields.input()); err != nil {
		c.fail(ctx, "update entry", err, "Failed to update entry", "Error: ")
		return err
	}

	c.mu.Lock()
	c.state.Message = success(MsgUpdated)
	if c.state.Mode == mode {
		c.state.Mode = Creating()
		c.state.Fields = Fields{}
	}
	c.mu.Unlock()

	return c.refresh(ctx)
}

// Delete asks for confirmation and then deletes. A declined confirmation
// returns ErrDeclined and changes nothing.
func (c *Controller) Delete(ctx context.Context, id models.ID) error {
	ok, err := c.confirm.Confirm(ctx, ConfirmDeletePrompt)
	if err != nil {
		c.fail(ctx, "confirm delete", err, "", "Error: ")
		return fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		return ErrDeclined
	}

	c.mu.Lock()
	c.state.Message = Message{}
	c.mu.Unlock()

	if err := c.api.DeleteEntry(ctx, id); err != nil {
		c.fail(ctx, "delete entry", err, "Failed to delete entry", "Error: ")
		return err
	}

	c.setMessage(success(MsgDeleted))
	return c.refresh(ctx)
}

// StartEdit copies a displayed entry into the form and switches to Editing.
func (c *Controller) StartEdit(id models.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.state.Entry(id)
	if !ok {
		c.state.Message = failure(fmt.Sprintf("Entry %s is not in the current list", id))
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	c.state.Mode = Editing(e.ID)
	c.state.Fields = Fields{Title: e.Title, Content: e.Content, Tags: e.Tags}
	return nil
}

// CancelEdit clears the form and returns to Creating. No request is made.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Mode = Creating()
	c.state.Fields = Fields{}
}

// ToggleExpand shows id in full, or collapses it if it already is.
func (c *Controller) ToggleExpand(id models.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Expanded == id {
		c.state.Expanded = ""
		return
	}
	c.state.Expanded = id
}

func (c *Controller) GenerateTitle(ctx context.Context) error {
	return c.generate(ctx, "title", &c.state.GeneratingTitle, c.api.GenerateTitle, func(f *Fields, v string) { f.Title = v })
}

func (c *Controller) GenerateTags(ctx context.Context) error {
	return c.generate(ctx, "tags", &c.state.GeneratingTags, c.api.GenerateTags, func(f *Fields, v string) { f.Tags = v })
}

// generate runs one auto-generation. busy points into c.state and is only
// touched under c.mu; it is cleared whatever the outcome.
func (c *Controller) generate(
	ctx context.Context,
	what string,
	busy *bool,
	call func(context.Context, string) (string, error),
	apply func(*Fields, string),
) error {
	c.mu.Lock()
	content := c.state.Fields.Content
	if content == "" {
		c.state.Message = failure(MsgContentFirst + what)
		c.mu.Unlock()
		return common.Invalid(MsgContentFirst + what)
	}
	if *busy {
		c.mu.Unlock()
		return ErrBusy
	}
	*busy = true
	c.state.Message = Message{}
	c.mu.Unlock()

	value, err := call(ctx, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	*busy = false

	if err != nil {
		c.state.Message = failure(failureText(err, "Failed to generate "+what, "Error generating "+what+": "))
		c.log.Warn(ctx, "generate failed", "field", what, "error", err)
		return err
	}

	apply(&c.state.Fields, value)
	if what == "title" {
		c.state.Message = success(MsgTitleGenerated)
	} else {
		c.state.Message = success(MsgTagsGenerated)
	}
	return nil
}

// Export saves the entry export file through the configured Exporter.
func (c *Controller) Export(ctx context.Context, id models.ID, format models.ExportFormat) (string, error) {
	if c.exporter == nil {
		return "", ErrNoExporter
	}

	c.setMessage(Message{})

	path, err := c.exporter.Export(ctx, models.KindEntry, id, format)
	if err != nil {
		c.setMessage(failure(export.FailureMessage(err)))
		c.log.Warn(ctx, "export failed", "id", id, "error", err)
		return "", err
	}

	c.setMessage(success(export.SuccessMessage(path)))
	return path, nil
}

func (c *Controller) SetFields(f Fields) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Fields = f
}

func (c *Controller) SetTitle(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Fields.Title = v
}

func (c *Controller) SetContent(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Fields.Content = v
}

func (c *Controller) SetTags(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Fields.Tags = v
}

func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Query = q
}

func (c *Controller) SetFilterKind(k models.FilterKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.FilterKind = k
}

func (c *Controller) setMessage(m Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Message = m
}

func (c *Controller) invalid(text string) error {
	c.setMessage(failure(text))
	return common.Invalid(text)
}

func (c *Controller) fail(ctx context.Context, op string, err error, fallback, prefix string) {
	c.setMessage(failure(failureText(err, fallback, prefix)))
	c.log.Warn(ctx, op+" failed", "error", err)
}

// failureText is the server's own text for a rejected request, fallback if
// it sent none, and prefix plus the cause for anything else.
func failureText(err error, fallback, prefix string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.MessageOr(fallback)
	}
	return prefix + err.Error()
}
