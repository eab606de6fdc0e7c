// Package engine wires field autofill and emoji suggestions to one stream of host events.
package engine

import (
	"github.com/bastiangx/kbserve/internal/logger"
	"github.com/bastiangx/kbserve/pkg/autofill"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

// Host is everything the engine needs from the keyboard host.
type Host interface {
	autofill.TextReader
	autofill.FieldEditor
	emoji.TextEditor
	emoji.ChatProbe
	emoji.Sharer
	emoji.Notifier
}

// Presenter is a suggestion surface: the autofill bar or the emoji row.
type Presenter interface {
	ShowList(items []string)
	Hide()
}

type settings struct {
	defaultLimit int
	trackerLog   *log.Logger
	machineLog   *log.Logger
}

// Option configures a Coordinator.
type Option func(*settings)

// WithDefaultLimit caps the emoji row in default mode.
func WithDefaultLimit(n int) Option {
	return func(s *settings) { s.defaultLimit = n }
}

// WithLogger sends both subsystems' logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		s.trackerLog = l
		s.machineLog = l
	}
}

// Coordinator forwards host events to the tracker and the emoji machine.
// It owns no state of its own and must be driven from a single goroutine.
type Coordinator struct {
	tracker *autofill.Tracker
	machine *emoji.Machine
}

func New(store *autofill.Store, keywords emoji.Matcher, host Host, bar, row Presenter, opts ...Option) *Coordinator {
	s := &settings{
		trackerLog: logger.New("autofill"),
		machineLog: logger.New("emoji"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return &Coordinator{
		tracker: autofill.NewTracker(store, host, host, bar, s.trackerLog),
		machine: emoji.NewMachine(keywords, host, host, host, host, row,
			emoji.WithDefaultLimit(s.defaultLimit),
			emoji.WithLogger(s.machineLog),
		),
	}
}

func (c *Coordinator) FieldFocused(d *autofill.Descriptor) { c.tracker.OnFieldFocused(d) }

func (c *Coordinator) ContentChanged() { c.tracker.OnFieldContentChanged() }

func (c *Coordinator) ComposingChanged(text string) { c.machine.OnComposingTextChanged(text) }

func (c *Coordinator) WordCompleted(word string) { c.machine.OnWordCompleted(word) }

func (c *Coordinator) KeyboardHidden() { c.tracker.OnKeyboardHidden() }

func (c *Coordinator) EmojiSelected(e emoji.Emoji) { c.machine.OnEmojiSelected(e) }

func (c *Coordinator) EmojiLongPressed(e emoji.Emoji) { c.machine.OnEmojiLongPressed(e) }

func (c *Coordinator) SuggestionSelected(value string) { c.tracker.OnSuggestionSelected(value) }

// TextCommitted returns the emoji row to its defaults.
func (c *Coordinator) TextCommitted() { c.machine.Reset() }

// StartSession begins a fresh input session on d.
func (c *Coordinator) StartSession(d *autofill.Descriptor) {
	c.machine.Reset()
	c.tracker.OnFieldFocused(d)
}

// SetKeywords swaps the emoji keyword table.
func (c *Coordinator) SetKeywords(m emoji.Matcher) { c.machine.SetMatcher(m) }

// ShowEmoji redraws the emoji row with the current candidates.
func (c *Coordinator) ShowEmoji() { c.machine.Show() }

func (c *Coordinator) Mode() emoji.Mode { return c.machine.Mode() }

func (c *Coordinator) EmojiContext() emoji.Context { return c.machine.Context() }

func (c *Coordinator) Category() autofill.Category { return c.tracker.Category() }

func (c *Coordinator) Session() ulid.ULID { return c.tracker.Session() }
