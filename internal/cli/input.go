// Package cli handles cmd line input for driving the engine by hand, for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/autofill"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/bastiangx/kbserve/pkg/engine"
	"github.com/bastiangx/kbserve/pkg/keyword"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	emojiStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	editStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
)

const help = `commands:
  focus <hint>    focus a form field with the given hint (e.g. "focus Email")
  chat            focus a chat message box
  type <text>     append text to the field
  space           type a space, completing the last word
  emoji <n|e>     pick an emoji from the row by position or glyph
  long <n|e>      long-press an emoji
  select <n|v>    pick an autofill suggestion by position or value
  commit          commit the composing text
  hide            hide the keyboard
  state           print the engine state
  keywords [p]    list emoji keywords starting with p
  quit            exit`

// InputHandler reads commands from the terminal and plays the keyboard host
// for the engine, printing everything the engine asks the host to do.
type InputHandler struct {
	engine   *engine.Coordinator
	term     *terminal
	reader   io.Reader
	keywords *keyword.Table
	fieldID  int
	commands int
}

// NewInputHandler wires an engine to a terminal host reading from in.
func NewInputHandler(store *autofill.Store, keywords *keyword.Table, in io.Reader, defaultLimit int) *InputHandler {
	term := &terminal{}
	return &InputHandler{
		engine: engine.New(store, keywords, term,
			view{name: "bar", style: barStyle, items: &term.bar},
			view{name: "emoji", style: emojiStyle, items: &term.row},
			engine.WithDefaultLimit(defaultLimit),
		),
		term:     term,
		reader:   in,
		keywords: keywords,
	}
}

// Start begins the interface loop. It returns nil on EOF or quit.
func (h *InputHandler) Start() error {
	log.Print("kbserve CLI [BETA]")
	log.Print("type 'help' for commands (Ctrl+C to exit):")

	h.engine.ShowEmoji()
	scanner := bufio.NewScanner(h.reader)
	for {
		log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !h.handleInput(line) {
			return nil
		}
	}
}

// handleInput runs one command line; it returns false when the user quits.
func (h *InputHandler) handleInput(line string) bool {
	h.commands++
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "quit", "exit", "q":
		h.engine.KeyboardHidden()
		return false
	case "help", "?":
		log.Print(help)
	case "focus":
		h.focus(&autofill.Descriptor{App: "repl", Hint: arg, InputType: autofill.TypeClassText})
	case "chat":
		h.focus(&autofill.Descriptor{
			App:       "repl",
			Hint:      "Message",
			InputType: autofill.TypeClassText | autofill.TypeVariationShortMessage,
		})
	case "type":
		h.typeText(strings.TrimPrefix(line, cmd+" "))
	case "space":
		h.typeText(" ")
	case "emoji", "long":
		e, ok := h.pickEmoji(arg)
		if !ok {
			log.Errorf("No emoji %q in the row", arg)
			return true
		}
		if cmd == "long" {
			h.engine.EmojiLongPressed(e)
		} else {
			h.engine.EmojiSelected(e)
		}
	case "select":
		value := arg
		if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(h.term.bar) {
			value = h.term.bar[n-1]
		}
		if value == "" {
			log.Error("Nothing to select")
			return true
		}
		h.engine.SuggestionSelected(value)
	case "commit":
		h.term.composing = 0
		h.engine.TextCommitted()
	case "hide":
		h.engine.KeyboardHidden()
		h.term.focused = nil
	case "state":
		h.printState()
	case "keywords":
		log.Printf("keywords: %s", strings.Join(h.keywords.WithPrefix(arg), ", "))
	default:
		log.Errorf("Unknown command: %s (try 'help')", cmd)
	}
	return true
}

func (h *InputHandler) focus(d *autofill.Descriptor) {
	h.fieldID++
	d.FieldID = h.fieldID
	h.term.focused = d
	h.term.text = ""
	h.term.composing = 0
	h.engine.FieldFocused(d)
}

// typeText appends text rune by rune the way a keyboard would, reporting the
// composing word and completing it at each separator.
func (h *InputHandler) typeText(text string) {
	for _, r := range text {
		h.term.text += string(r)
		if utils.IsSeparator(r) {
			h.term.composing = 0
			h.engine.ContentChanged()
			h.engine.WordCompleted(utils.LastWord(h.term.text))
			continue
		}
		h.term.composing++
	}
	h.engine.ContentChanged()
	if h.term.composing > 0 {
		h.engine.ComposingChanged(utils.CurrentWord(h.term.text, ""))
	}
}

func (h *InputHandler) pickEmoji(arg string) (emoji.Emoji, bool) {
	if arg == "" {
		return emoji.Emoji{}, false
	}
	candidates := h.engine.EmojiContext().Candidates
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(candidates) {
			return emoji.Emoji{}, false
		}
		return candidates[n-1], true
	}
	return emoji.Emoji{Unicode: arg}, true
}

func (h *InputHandler) printState() {
	ctx := h.engine.EmojiContext()
	log.Print("state",
		"field", h.term.text,
		"category", h.engine.Category(),
		"session", h.engine.Session(),
		"mode", ctx.Mode,
		"keyword", ctx.Keyword,
		"commands", h.commands)
}

// terminal is the REPL's keyboard host. It keeps the field text locally.
type terminal struct {
	text      string
	composing int
	focused   *autofill.Descriptor
	bar, row  []string
}

func (t *terminal) TextBeforeCursor(n int) string { return utils.LastRunes(t.text, n) }
func (t *terminal) TextAfterCursor(n int) string  { return "" }

func (t *terminal) ReplaceField(text string) error {
	t.text = text
	t.composing = 0
	log.Print(editStyle.Render(fmt.Sprintf("field <- %q", text)))
	return nil
}

func (t *terminal) InsertText(text string) error {
	t.text += text
	t.composing = 0
	log.Print(editStyle.Render(fmt.Sprintf("field: %q", t.text)))
	return nil
}

func (t *terminal) ReplaceComposingWord(text string) error {
	runes := []rune(t.text)
	t.text = string(runes[:len(runes)-t.composing]) + text
	t.composing = 0
	log.Print(editStyle.Render(fmt.Sprintf("field: %q", t.text)))
	return nil
}

func (t *terminal) IsChatTextBox() bool { return autofill.IsChatTextBox(t.focused) }

func (t *terminal) SendDirectly(payload string) (bool, error) {
	log.Print(editStyle.Render("sent " + payload))
	return true, nil
}

func (t *terminal) ShareAsImage(payload string) error {
	log.Print(editStyle.Render("shared " + payload + " as image"))
	return nil
}

func (t *terminal) Notice(msg string) { log.Warn(msg) }

// view prints one suggestion surface and remembers what it shows.
type view struct {
	name  string
	style lipgloss.Style
	items *[]string
}

func (v view) ShowList(items []string) {
	*v.items = items
	numbered := make([]string, len(items))
	for i, item := range items {
		numbered[i] = fmt.Sprintf("%d.%s", i+1, item)
	}
	log.Printf("%-5s %s", v.name, v.style.Render(strings.Join(numbered, "  ")))
}

func (v view) Hide() {
	*v.items = nil
	log.Printf("%-5s (hidden)", v.name)
}
