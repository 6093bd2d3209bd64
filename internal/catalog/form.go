package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/erauner12/bookcatalog/internal/books"
)

// Mode is the form's editing mode
type Mode int

const (
	// ModeCreate edits a new, unsaved book
	ModeCreate Mode = iota
	// ModeEdit edits an existing book supplied by the caller
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// IntentKind says which API call a submit intent asks for
type IntentKind int

const (
	IntentCreate IntentKind = iota
	IntentUpdate
)

// SubmitIntent is a validated draft tagged with the mode it was submitted from.
// ID is set only for IntentUpdate.
type SubmitIntent struct {
	Kind  IntentKind
	ID    int64
	Draft books.Draft

	epoch uint64
}

// EmitFunc receives a submit intent. A nil return means the intent was accepted.
type EmitFunc func(ctx context.Context, intent SubmitIntent) error

// ErrUnknownField is returned by SetField for a field the form does not have
var ErrUnknownField = errors.New("unknown field")

// Form owns one editable draft and its per-field validation errors.
// It is safe for concurrent use.
type Form struct {
	mu     sync.Mutex
	now    func() time.Time
	mode   Mode
	active books.Book
	draft  books.Draft
	errs   map[books.Field]books.ValidationError

	// bumped on every mode transition; intents from an older epoch are stale
	epoch uint64
}

// NewForm returns a form in create mode with the default draft.
// now supplies the current year for the default draft; nil means time.Now.
func NewForm(now func() time.Time) *Form {
	if now == nil {
		now = time.Now
	}
	f := &Form{
		now:  now,
		errs: make(map[books.Field]books.ValidationError),
	}
	f.draft = f.defaultDraft()
	return f
}

func (f *Form) defaultDraft() books.Draft {
	return books.Draft{PublishedYear: f.now().Year()}
}

// Mode returns the current mode
func (f *Form) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mode
}

// Draft returns a copy of the current draft
func (f *Form) Draft() books.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Active returns the record being edited, if any
func (f *Form) Active() (books.Book, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active, f.mode == ModeEdit
}

// Epoch identifies the current mode session
func (f *Form) Epoch() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.epoch
}

// Errors returns the current per-field errors
func (f *Form) Errors() books.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out books.ValidationErrors
	for _, field := range books.Fields {
		if e, ok := f.errs[field]; ok {
			out = append(out, e)
		}
	}
	return out
}

// FieldError returns the error currently shown for field
func (f *Form) FieldError(field books.Field) (books.ValidationError, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.errs[field]
	return e, ok
}

// SetRecord switches to edit mode with b's fields, or back to create mode with a
// cleared draft when b is nil.
func (f *Form) SetRecord(b *books.Book) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.epoch++
	f.errs = make(map[books.Field]books.ValidationError)
	if b == nil {
		f.mode = ModeCreate
		f.active = books.Book{}
		f.draft = f.defaultDraft()
		return
	}
	f.mode = ModeEdit
	f.active = *b
	f.draft = b.Draft()
}

// Cancel leaves edit mode and clears the draft. It reports false in create mode,
// where there is nothing to cancel.
func (f *Form) Cancel() bool {
	if f.Mode() != ModeEdit {
		return false
	}
	f.SetRecord(nil)
	return true
}

// SetField updates one field from raw text input and clears that field's error.
// The published year is parsed as an integer; unparsable text leaves it absent.
func (f *Form) SetField(field books.Field, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch field {
	case books.FieldTitle:
		f.draft.Title = raw
	case books.FieldAuthor:
		f.draft.Author = raw
	case books.FieldPublishedYear:
		year, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			year = 0
		}
		f.draft.PublishedYear = year
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	delete(f.errs, field)
	return nil
}

// Submit validates the draft. On failure the per-field errors are stored, emit is not
// called, and books.ValidationErrors is returned. Otherwise emit is called once with a
// snapshot of the draft. In create mode the draft is reset to the default after emit
// accepts the intent, unless the mode changed while emit was running.
func (f *Form) Submit(ctx context.Context, emit EmitFunc) error {
	f.mu.Lock()
	if err := f.draft.Validate(); err != nil {
		f.errs = make(map[books.Field]books.ValidationError)
		var verrs books.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				f.errs[e.Field] = e
			}
		}
		f.mu.Unlock()
		return err
	}

	f.errs = make(map[books.Field]books.ValidationError)
	intent := SubmitIntent{
		Kind:  IntentCreate,
		Draft: f.draft,
		epoch: f.epoch,
	}
	if f.mode == ModeEdit {
		intent.Kind = IntentUpdate
		intent.ID = f.active.ID
	}
	f.mu.Unlock()

	if err := emit(ctx, intent); err != nil {
		return err
	}

	if intent.Kind == IntentCreate {
		f.mu.Lock()
		if f.epoch == intent.epoch && f.mode == ModeCreate {
			f.draft = f.defaultDraft()
		}
		f.mu.Unlock()
	}
	return nil
}
