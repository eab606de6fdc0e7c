package autofill

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// contentWindow is how many characters are read on each side of the cursor.
const contentWindow = 1000

// TextReader reads the focused field around the cursor.
type TextReader interface {
	TextBeforeCursor(n int) string
	TextAfterCursor(n int) string
}

// FieldEditor replaces the whole content of the focused field.
type FieldEditor interface {
	ReplaceField(text string) error
}

// Presenter is a suggestion surface the tracker can fill or hide.
type Presenter interface {
	ShowList(items []string)
	Hide()
}

// Tracker follows focus changes across form fields, commits what the user
// typed when they leave a field, and offers history for the newly focused one.
type Tracker struct {
	store     *Store
	reader    TextReader
	editor    FieldEditor
	presenter Presenter
	log       *log.Logger

	key      string
	category Category
	content  string
	session  ulid.ULID
	entropy  *ulid.MonotonicEntropy
}

func NewTracker(store *Store, reader TextReader, editor FieldEditor, presenter Presenter, logger *log.Logger) *Tracker {
	if logger == nil {
		logger = log.Default()
	}
	return &Tracker{
		store:     store,
		reader:    reader,
		editor:    editor,
		presenter: presenter,
		log:       logger,
		category:  Unknown,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// OnFieldFocused handles a focus notification. Repeated notifications for
// the same field are ignored.
func (t *Tracker) OnFieldFocused(d *Descriptor) {
	if d == nil {
		t.log.Debug("no field descriptor, hiding suggestions")
		t.presenter.Hide()
		return
	}

	key := d.Key()
	if key == t.key {
		t.log.Debug("same field focused again, skipping", "key", key)
		return
	}

	if t.key != "" {
		t.commit(t.category, t.content)
	}

	t.key = key
	t.category = Classify(d)
	t.session = ulid.MustNew(ulid.Timestamp(time.Now()), t.entropy)
	t.content = t.readContent()

	t.log.Debug("field focused", "session", t.session, "key", key, "category", t.category, "content", t.content)
	t.present()
}

// OnFieldContentChanged refreshes the content snapshot of the current field.
func (t *Tracker) OnFieldContentChanged() {
	t.content = t.readContent()
}

// OnKeyboardHidden flushes the current field and ends the session.
func (t *Tracker) OnKeyboardHidden() {
	t.content = t.readContent()
	t.commit(t.category, t.content)

	t.log.Debug("session ended", "session", t.session, "category", t.category)
	t.key = ""
	t.category = Unknown
	t.content = ""
}

// OnSuggestionSelected fills the field with value and hides the bar.
func (t *Tracker) OnSuggestionSelected(value string) {
	if err := t.editor.ReplaceField(value); err != nil {
		t.log.Warnf("Replacing field content: %v", err)
		return
	}
	t.content = value
	t.presenter.Hide()
}

// Category is the classification of the focused field.
func (t *Tracker) Category() Category {
	return t.category
}

// Session identifies the current focus session; zero before the first focus.
func (t *Tracker) Session() ulid.ULID {
	return t.session
}

// Content is the last observed content of the focused field.
func (t *Tracker) Content() string {
	return t.content
}

func (t *Tracker) commit(category Category, content string) {
	value := strings.TrimSpace(content)
	if category == Unknown || utils.RuneLen(value) < MinValueLength {
		t.log.Debug("nothing to commit", "category", category, "content", value)
		return
	}
	if !t.store.Insert(category, value) {
		t.log.Warn("commit not persisted", "category", category)
	}
}

func (t *Tracker) present() {
	if t.category == Unknown {
		t.presenter.Hide()
		return
	}
	items := t.store.Get(t.category)
	if len(items) == 0 {
		t.presenter.Hide()
		return
	}
	t.presenter.ShowList(items)
}

func (t *Tracker) readContent() string {
	if t.reader == nil {
		return ""
	}
	return t.reader.TextBeforeCursor(contentWindow) + t.reader.TextAfterCursor(contentWindow)
}
