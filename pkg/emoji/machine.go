package emoji

import (
	"fmt"
	"strings"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Mode is the state of the emoji suggestion row.
type Mode int

const (
	// Default shows the top-used emoji.
	Default Mode = iota
	// ComposingMatch shows candidates for the word being composed; a pick replaces it.
	ComposingMatch
	// SpaceMatch shows candidates for the word just completed; a pick is inserted after it.
	SpaceMatch
)

func (m Mode) String() string {
	switch m {
	case ComposingMatch:
		return "composing"
	case SpaceMatch:
		return "space"
	default:
		return "default"
	}
}

// Context is the ephemeral suggestion state of the row.
type Context struct {
	Mode       Mode
	Keyword    string
	Candidates []Emoji
}

// Matcher maps a trigger word to its candidates. *keyword.Table implements it.
type Matcher interface {
	Lookup(word string) []Emoji
}

// TextEditor writes into the host text field.
type TextEditor interface {
	InsertText(text string) error
	ReplaceComposingWord(text string) error
}

// ChatProbe reports whether the focused field looks like a chat input.
type ChatProbe interface {
	IsChatTextBox() bool
}

// Sharer delivers a long-pressed emoji outside of plain text insertion.
type Sharer interface {
	SendDirectly(payload string) (bool, error)
	ShareAsImage(payload string) error
}

// Notifier surfaces a short message to the user.
type Notifier interface {
	Notice(msg string)
}

// Presenter is the emoji row.
type Presenter interface {
	ShowList(items []string)
	Hide()
}

// Machine switches the emoji row between default picks and keyword matches.
// It is driven from a single event stream and is not safe for concurrent use.
type Machine struct {
	matcher   Matcher
	editor    TextEditor
	probe     ChatProbe
	sharer    Sharer
	notifier  Notifier
	presenter Presenter
	log       *log.Logger

	defaults []Emoji
	ctx      Context
}

// Option configures a Machine.
type Option func(*Machine)

// WithDefaultLimit caps the top-used list shown in Default mode.
func WithDefaultLimit(limit int) Option {
	return func(m *Machine) {
		m.defaults = TopUsed(limit)
	}
}

// WithLogger sets the machine's logger.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.log = logger
		}
	}
}

func NewMachine(matcher Matcher, editor TextEditor, probe ChatProbe, sharer Sharer, notifier Notifier, presenter Presenter, opts ...Option) *Machine {
	m := &Machine{
		matcher:   matcher,
		editor:    editor,
		probe:     probe,
		sharer:    sharer,
		notifier:  notifier,
		presenter: presenter,
		log:       log.Default(),
		defaults:  TopUsed(0),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx = Context{Mode: Default, Candidates: m.defaults}
	return m
}

// SetMatcher swaps the keyword table, e.g. after a config reload.
func (m *Machine) SetMatcher(matcher Matcher) {
	m.matcher = matcher
}

// Mode is the current mode.
func (m *Machine) Mode() Mode {
	return m.ctx.Mode
}

// Context returns a copy of the current state.
func (m *Machine) Context() Context {
	ctx := m.ctx
	ctx.Candidates = append([]Emoji(nil), m.ctx.Candidates...)
	return ctx
}

// Show pushes the current candidates to the row without changing state.
func (m *Machine) Show() {
	m.presenter.ShowList(Glyphs(m.ctx.Candidates))
}

// OnComposingTextChanged reacts to the in-progress word. A pending space match
// is superseded: it keeps its candidates but a pick now replaces the composing word.
func (m *Machine) OnComposingTextChanged(text string) {
	if m.ctx.Mode == SpaceMatch {
		m.ctx.Mode = ComposingMatch
	}
	m.match(text, ComposingMatch)
}

// OnWordCompleted reacts to a word boundary such as a space press.
func (m *Machine) OnWordCompleted(word string) {
	m.match(word, SpaceMatch)
}

func (m *Machine) match(word string, target Mode) {
	if utils.IsBlank(word) {
		m.fallback()
		return
	}
	word = strings.TrimSpace(word)

	var candidates []Emoji
	if m.matcher != nil {
		candidates = m.matcher.Lookup(word)
	}
	if len(candidates) == 0 {
		m.fallback()
		return
	}

	m.ctx = Context{Mode: target, Keyword: word, Candidates: candidates}
	m.log.Debug("keyword matched", "keyword", word, "mode", target, "count", len(candidates))
	m.Show()
}

// fallback returns to Default, redrawing only when leaving a match.
func (m *Machine) fallback() {
	if m.ctx.Mode == Default {
		return
	}
	m.toDefault()
}

func (m *Machine) toDefault() {
	m.ctx = Context{Mode: Default, Candidates: m.defaults}
	m.Show()
}

// OnEmojiSelected writes the picked emoji according to the mode at the time of the pick.
func (m *Machine) OnEmojiSelected(e Emoji) {
	switch m.ctx.Mode {
	case ComposingMatch:
		if err := m.editor.ReplaceComposingWord(e.Unicode); err != nil {
			m.log.Warnf("Replacing composing word %q: %v", m.ctx.Keyword, err)
		}
		m.toDefault()
	case SpaceMatch:
		if err := m.editor.InsertText(e.Unicode); err != nil {
			m.log.Warnf("Inserting emoji after %q: %v", m.ctx.Keyword, err)
		}
		m.toDefault()
	default:
		if err := m.editor.InsertText(e.Unicode); err != nil {
			m.log.Warnf("Inserting emoji: %v", err)
		}
	}
}

// OnEmojiLongPressed sends the emoji straight into a chat, or shares it as an image.
// Failures never propagate; they end up as a notice.
func (m *Machine) OnEmojiLongPressed(e Emoji) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Errorf("Sharing %s panicked: %v", e.Unicode, r)
			m.notifier.Notice(fmt.Sprintf("Could not share %s", e.Unicode))
		}
	}()

	if m.probe != nil && m.probe.IsChatTextBox() {
		sent, err := m.sharer.SendDirectly(e.Unicode)
		if err == nil && sent {
			m.log.Debug("emoji sent directly", "emoji", e.Unicode)
			return
		}
		if err != nil {
			m.log.Warnf("Direct send of %s failed: %v", e.Unicode, err)
		}
	}

	if err := m.sharer.ShareAsImage(e.Unicode); err != nil {
		m.log.Warnf("Sharing %s as image failed: %v", e.Unicode, err)
		m.notifier.Notice(fmt.Sprintf("Could not share %s", e.Unicode))
	}
}

// Reset forces Default, e.g. when the host commits text or a new session starts.
func (m *Machine) Reset() {
	if m.ctx.Mode == Default {
		m.ctx = Context{Mode: Default, Candidates: m.defaults}
		return
	}
	m.toDefault()
}
