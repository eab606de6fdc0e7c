package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/bastiangx/kbserve/internal/logger"
	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/autofill"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/bastiangx/kbserve/pkg/engine"
	"github.com/bastiangx/kbserve/pkg/keyword"
	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultMaxText caps the text snapshot kept from each side of the cursor.
const DefaultMaxText = 1000

// Server handles the IPC between a keyboard host and the engine
type Server struct {
	engine *engine.Coordinator
	bridge *hostBridge

	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	maxText int
	log     *log.Logger

	// pending holds a keyword table swapped in by a config reload;
	// the loop applies it between requests.
	pending  atomic.Pointer[keyword.Table]
	requests int
}

// Option configures a Server.
type Option func(*options)

type options struct {
	reader       io.Reader
	writer       io.Writer
	maxText      int
	defaultLimit int
	log          *log.Logger
}

// WithIO replaces stdin/stdout.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(o *options) { o.reader, o.writer = r, w }
}

// WithMaxText caps the cursor text snapshot per side.
func WithMaxText(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxText = n
		}
	}
}

// WithDefaultLimit caps the default emoji row.
func WithDefaultLimit(n int) Option {
	return func(o *options) { o.defaultLimit = n }
}

// WithLogger sets the logger used by the server and the engine.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.log = l }
}

// NewServer creates a server over stdin/stdout unless WithIO says otherwise.
func NewServer(store *autofill.Store, keywords *keyword.Table, opts ...Option) *Server {
	o := &options{
		reader:  os.Stdin,
		writer:  os.Stdout,
		maxText: DefaultMaxText,
	}
	for _, opt := range opts {
		opt(o)
	}
	bridge := &hostBridge{}
	engineOpts := []engine.Option{engine.WithDefaultLimit(o.defaultLimit)}
	if o.log != nil {
		engineOpts = append(engineOpts, engine.WithLogger(o.log))
	} else {
		o.log = logger.New("ipc")
	}

	return &Server{
		engine: engine.New(store, keywords, bridge,
			surface{name: SurfaceBar, bridge: bridge},
			surface{name: SurfaceEmoji, bridge: bridge},
			engineOpts...,
		),
		bridge:  bridge,
		dec:     msgpack.NewDecoder(bufio.NewReader(o.reader)),
		enc:     msgpack.NewEncoder(o.writer),
		maxText: o.maxText,
		log:     o.log,
	}
}

// ReloadKeywords schedules a new keyword table. Safe to call from any goroutine.
func (s *Server) ReloadKeywords(t *keyword.Table) {
	if t == nil {
		return
	}
	s.pending.Store(t)
}

// Start begins listening for IPC requests and returns when the input ends.
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	// Signal that the server is ready
	s.sendResponse(StatusResponse{Status: "ready"})

	for {
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.log.Debugf("Input closed after %d requests", s.requests)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		s.requests++
		s.applyPending()

		var req EventRequest
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Errorf("Unmarshaling request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			continue
		}
		s.handleRequest(&req)
	}
}

func (s *Server) applyPending() {
	if t := s.pending.Swap(nil); t != nil {
		s.engine.SetKeywords(t)
		s.log.Infof("Keyword table reloaded (%d keywords)", t.Len())
	}
}

// handleRequest dispatches one event to the engine and answers with the recorded actions.
func (s *Server) handleRequest(req *EventRequest) {
	start := time.Now()
	s.bridge.begin(req, s.maxText)

	switch req.Event {
	case EventHealth:
		s.sendResponse(StatusResponse{ID: req.ID, Status: "ok"})
		return
	case EventStart:
		s.bridge.focused = descriptor(req.Field)
		s.engine.StartSession(s.bridge.focused)
	case EventFocus:
		s.bridge.focused = descriptor(req.Field)
		s.engine.FieldFocused(s.bridge.focused)
	case EventContent:
		s.engine.ContentChanged()
	case EventCompose:
		s.engine.ComposingChanged(req.Text)
	case EventWord:
		word := req.Text
		if word == "" {
			word = utils.LastWord(s.bridge.before)
		}
		s.engine.WordCompleted(word)
	case EventHide:
		s.engine.KeyboardHidden()
		s.bridge.focused = nil
	case EventPick:
		if req.Text == "" {
			s.sendError(req.ID, "Missing 't' for pick", 400)
			return
		}
		s.engine.SuggestionSelected(req.Text)
	case EventEmoji, EventEmojiLong:
		if req.Text == "" {
			s.sendError(req.ID, fmt.Sprintf("Missing 't' for %s", req.Event), 400)
			return
		}
		e := emoji.Emoji{Unicode: req.Text}
		if req.Event == EventEmoji {
			s.engine.EmojiSelected(e)
		} else {
			s.engine.EmojiLongPressed(e)
		}
	case EventCommit:
		s.engine.TextCommitted()
	case "":
		s.sendError(req.ID, "Missing 'ev' parameter", 400)
		return
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown event: %s", req.Event), 400)
		return
	}

	resp := EventResponse{
		ID:        req.ID,
		Actions:   s.bridge.actions,
		Mode:      s.engine.Mode().String(),
		Category:  s.engine.Category().String(),
		TimeTaken: time.Since(start).Microseconds(),
	}
	if resp.Actions == nil {
		resp.Actions = []Action{}
	}
	if sid := s.engine.Session(); sid != (ulid.ULID{}) {
		resp.Session = sid.String()
	}
	s.sendResponse(resp)
}

func descriptor(f *FieldInfo) *autofill.Descriptor {
	if f == nil {
		return nil
	}
	return &autofill.Descriptor{
		App:        f.App,
		FieldID:    f.ID,
		InputType:  f.InputType,
		IMEOptions: f.IMEOptions,
		Hint:       f.Hint,
	}
}

// sendResponse encodes the response as msgpack onto the server's writer.
func (s *Server) sendResponse(response any) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.log.Debugf("Request %q failed: %s", id, message)
	s.sendResponse(CompletionError{ID: id, Error: message, Code: code})
}
