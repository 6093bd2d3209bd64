package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/erauner12/bookcatalog/internal/client"
	"github.com/rs/zerolog/log"
)

// FetchFailedMessage is the banner shown when the collection cannot be loaded
const FetchFailedMessage = "failed to fetch; verify backend availability"

const (
	saveFailedMessage   = "failed to save book"
	deleteFailedMessage = "failed to delete book"
)

var (
	// ErrBusy is returned when an operation of the same class is already in flight
	ErrBusy = errors.New("operation already in progress")

	// ErrDeclined is returned by Delete when the user did not confirm
	ErrDeclined = errors.New("delete not confirmed")
)

// API is the backend the coordinator synchronizes with. *client.BookClient implements it.
type API interface {
	ListBooks(ctx context.Context) ([]books.Book, error)
	CreateBook(ctx context.Context, d books.Draft) (books.Book, error)
	UpdateBook(ctx context.Context, id int64, d books.Draft) (books.Book, error)
	DeleteBook(ctx context.Context, id int64) (client.Acknowledgement, error)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Status is the coordinator's loading/error status
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a snapshot of the coordinator. Books is a copy.
type State struct {
	Status   Status
	Message  string
	Books    []books.Book
	Fetching bool
	Mutating bool
}

// Option customizes a Coordinator
type Option func(*Coordinator)

// WithConfirmer sets the delete confirmation prompt. Without one every delete is declined.
func WithConfirmer(c Confirmer) Option {
	return func(co *Coordinator) { co.confirm = c }
}

// WithScrollToTop sets the side effect fired on every edit intent
func WithScrollToTop(fn func()) Option {
	return func(co *Coordinator) { co.scrollToTop = fn }
}

// WithOnChange registers a callback invoked after every state change
func WithOnChange(fn func(State)) Option {
	return func(co *Coordinator) { co.onChange = fn }
}

// WithClock sets the clock used for the form's default year
func WithClock(now func() time.Time) Option {
	return func(co *Coordinator) { co.now = now }
}

// Coordinator owns the collection and the banner status, and routes intents between
// the form, the list and the API. It is safe for concurrent use; its lock is never held
// across a network call.
type Coordinator struct {
	api         API
	form        *Form
	presenter   *Presenter
	confirm     Confirmer
	scrollToTop func()
	onChange    func(State)
	now         func() time.Time

	mu         sync.Mutex
	status     Status
	message    string
	collection []books.Book
	fetching   bool
	mutating   bool
	fetchSeq   uint64

	// bumped by every failure shown in the banner
	bannerSeq uint64
}

// NewCoordinator creates a coordinator in the loading state with an empty collection.
// Call Start to perform the initial fetch.
func NewCoordinator(api API, opts ...Option) *Coordinator {
	c := &Coordinator{
		api:        api,
		status:     StatusLoading,
		collection: []books.Book{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.form = NewForm(c.now)
	c.presenter = NewPresenter(c.Edit, c.Delete)
	return c
}

// Form returns the form controller
func (c *Coordinator) Form() *Form {
	return c.form
}

// Presenter returns the list presenter wired to this coordinator's intents
func (c *Coordinator) Presenter() *Presenter {
	return c.presenter
}

// State returns a snapshot of the current state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Coordinator) stateLocked() State {
	list := make([]books.Book, len(c.collection))
	copy(list, c.collection)
	return State{
		Status:   c.status,
		Message:  c.message,
		Books:    list,
		Fetching: c.fetching,
		Mutating: c.mutating,
	}
}

// View projects the current collection through the presenter
func (c *Coordinator) View() ListView {
	return c.presenter.Present(c.State().Books)
}

func (c *Coordinator) notify() {
	if c.onChange != nil {
		c.onChange(c.State())
	}
}

// Start performs the initial fetch
func (c *Coordinator) Start(ctx context.Context) error {
	return c.refresh(ctx, true)
}

// Refresh re-fetches the collection. It returns ErrBusy if a fetch is already in flight.
// A failed fetch is reported through State, not the returned error.
func (c *Coordinator) Refresh(ctx context.Context) error {
	return c.refresh(ctx, true)
}

// refresh replaces the collection with the server's. Only the newest fetch is applied;
// guard rejects the call when another fetch is in flight.
func (c *Coordinator) refresh(ctx context.Context, guard bool) error {
	c.mu.Lock()
	if guard && c.fetching {
		c.mu.Unlock()
		return ErrBusy
	}
	c.fetchSeq++
	seq := c.fetchSeq
	banner := c.bannerSeq
	c.fetching = true
	c.status = StatusLoading
	c.message = ""
	c.mu.Unlock()
	c.notify()

	list, err := c.api.ListBooks(ctx)

	c.mu.Lock()
	if seq != c.fetchSeq {
		c.mu.Unlock()
		log.Debug().Uint64("seq", seq).Msg("discarding superseded fetch result")
		return nil
	}
	c.fetching = false
	if err != nil {
		log.Error().Err(err).Msg("failed to fetch books")
		c.status = StatusError
		c.message = FetchFailedMessage
		c.collection = []books.Book{}
	} else {
		c.collection = list
		// a failure reported while this fetch was in flight keeps its banner
		if c.bannerSeq == banner {
			c.status = StatusReady
			c.message = ""
		}
	}
	c.mu.Unlock()
	c.notify()
	return nil
}

// beginMutation claims the mutation slot
func (c *Coordinator) beginMutation() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mutating {
		return ErrBusy
	}
	c.mutating = true
	return nil
}

// clearBanner drops the banner once an operation is actually sent
func (c *Coordinator) clearBanner() {
	c.mu.Lock()
	if c.status == StatusError {
		c.status = StatusReady
	}
	c.message = ""
	c.mu.Unlock()
	c.notify()
}

func (c *Coordinator) endMutation() {
	c.mu.Lock()
	c.mutating = false
	c.mu.Unlock()
	c.notify()
}

// fail shows msg in the banner; the collection is left as is
func (c *Coordinator) fail(msg string) {
	c.mu.Lock()
	c.status = StatusError
	c.message = msg
	c.bannerSeq++
	c.mu.Unlock()
	c.notify()
}

// Submit validates the form and sends it as a create or update.
// Validation failures are returned as books.ValidationErrors; nothing is sent and the
// banner is left as is.
// ErrBusy is returned while another mutation is in flight. API failures are shown in
// the banner and leave the draft and mode untouched; they are not returned.
func (c *Coordinator) Submit(ctx context.Context) error {
	if err := c.beginMutation(); err != nil {
		return err
	}
	defer c.endMutation()
	c.notify()

	err := c.form.Submit(ctx, c.applySubmit)

	var verrs books.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return nil
}

func (c *Coordinator) applySubmit(ctx context.Context, intent SubmitIntent) error {
	h := newHandle(c.form, intent.epoch)
	c.clearBanner()

	var err error
	switch intent.Kind {
	case IntentCreate:
		_, err = c.api.CreateBook(ctx, intent.Draft)
	case IntentUpdate:
		_, err = c.api.UpdateBook(ctx, intent.ID, intent.Draft)
	}

	if err != nil {
		log.Error().Err(err).Int64("id", intent.ID).Msg("failed to save book")
		if h.Stale() {
			log.Debug().Msg("ignoring failure of stale submit")
			return err
		}
		c.fail(client.Message(err, saveFailedMessage))
		return err
	}

	if intent.Kind == IntentUpdate && !h.Stale() {
		c.form.SetRecord(nil)
	}

	return c.refresh(ctx, false)
}

// Edit loads b into the form and fires the scroll-to-top side effect
func (c *Coordinator) Edit(b books.Book) {
	c.form.SetRecord(&b)
	if c.scrollToTop != nil {
		c.scrollToTop()
	}
	c.notify()
}

// Cancel leaves edit mode. It reports false when the form was not editing.
func (c *Coordinator) Cancel() bool {
	ok := c.form.Cancel()
	if ok {
		c.notify()
	}
	return ok
}

// Delete asks for confirmation naming the book and, if confirmed, deletes it and
// refreshes the collection. It returns ErrDeclined without calling the API when the
// user declines, and ErrBusy while another mutation is in flight. API failures are
// shown in the banner.
func (c *Coordinator) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.mutating {
		c.mu.Unlock()
		return ErrBusy
	}
	prompt := fmt.Sprintf("Are you sure you want to delete book #%d?", id)
	for _, b := range c.collection {
		if b.ID == id {
			prompt = fmt.Sprintf("Are you sure you want to delete %q?", b.Title)
			break
		}
	}
	c.mu.Unlock()

	if c.confirm == nil || !c.confirm.Confirm(ctx, prompt) {
		log.Debug().Int64("id", id).Msg("delete declined")
		return ErrDeclined
	}

	if err := c.beginMutation(); err != nil {
		return err
	}
	defer c.endMutation()
	c.clearBanner()

	if _, err := c.api.DeleteBook(ctx, id); err != nil {
		log.Error().Err(err).Int64("id", id).Msg("failed to delete book")
		c.fail(client.Message(err, deleteFailedMessage))
		return nil
	}

	return c.refresh(ctx, false)
}

// Dismiss clears the banner without re-fetching
func (c *Coordinator) Dismiss() {
	c.mu.Lock()
	c.status = StatusReady
	c.message = ""
	c.mu.Unlock()
	c.notify()
}
