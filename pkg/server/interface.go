/*
Package server implements msgpack IPC between a keyboard host and the suggestion engine.

The server reads a stream of msgpack encoded events from stdin and answers every event with exactly one msgpack message on stdout.
The first message the server writes is a readiness signal:

	{"status": "ready"}

# Events

Every request carries an ID, an event name and whatever the event needs.
The host also sends the text around the cursor ("b" and "a") so the engine can read the field without calling back:

	{"id": "r1", "ev": "focus", "f": {"app": "com.shop", "id": 7, "it": 33, "hint": "Email"}, "b": "", "a": ""}
	{"id": "r2", "ev": "compose", "t": "love"}
	{"id": "r3", "ev": "emoji", "t": "💕"}

Supported events: start, focus, content, compose, word, hide, pick, emoji, emoji_long, commit and health.

# Responses

The response lists the actions the host should perform, in order, plus the resulting engine state:

	{"id": "r2", "x": [{"op": "show", "s": "emoji", "i": ["❤️", "💕", "😍", "🥰"]}], "m": "composing", "cat": "UNKNOWN", "sid": "01J...", "t": 41}
	{"id": "r3", "x": [{"op": "replace_word", "t": "💕"}, {"op": "show", "s": "emoji", "i": [...]}], "m": "default", ...}

Actions: show and hide target a surface ("bar" for autofill, "emoji" for the emoji row);
insert, replace_word and replace_field edit the field; send and share deliver a long-pressed emoji; notice is a user-visible message.

Malformed requests get a CompletionError with code 400. Time taken is reported in microseconds.
*/
package server

// Event names understood by the server.
const (
	EventStart     = "start"
	EventFocus     = "focus"
	EventContent   = "content"
	EventCompose   = "compose"
	EventWord      = "word"
	EventHide      = "hide"
	EventPick      = "pick"
	EventEmoji     = "emoji"
	EventEmojiLong = "emoji_long"
	EventCommit    = "commit"
	EventHealth    = "health"
)

// Action ops sent back to the host.
const (
	OpShow         = "show"
	OpHide         = "hide"
	OpInsert       = "insert"
	OpReplaceWord  = "replace_word"
	OpReplaceField = "replace_field"
	OpSend         = "send"
	OpShare        = "share"
	OpNotice       = "notice"
)

// Surfaces a show or hide action targets.
const (
	SurfaceBar   = "bar"
	SurfaceEmoji = "emoji"
)

// FieldInfo describes the focused field.
type FieldInfo struct {
	App        string `msgpack:"app"`
	ID         int    `msgpack:"id"`
	InputType  int    `msgpack:"it,omitempty"`
	IMEOptions int    `msgpack:"ime,omitempty"`
	Hint       string `msgpack:"hint,omitempty"`
}

// EventRequest is one host event
type EventRequest struct {
	ID      string     `msgpack:"id"`
	Event   string     `msgpack:"ev"`
	Field   *FieldInfo `msgpack:"f,omitempty"`
	Text    string     `msgpack:"t,omitempty"`
	Before  string     `msgpack:"b,omitempty"`
	After   string     `msgpack:"a,omitempty"`
	CanSend bool       `msgpack:"cs,omitempty"`
}

// Action is one instruction for the host
type Action struct {
	Op      string   `msgpack:"op"`
	Surface string   `msgpack:"s,omitempty"`
	Items   []string `msgpack:"i,omitempty"`
	Text    string   `msgpack:"t,omitempty"`
}

// EventResponse answers an EventRequest
type EventResponse struct {
	ID        string   `msgpack:"id"`
	Actions   []Action `msgpack:"x"`
	Mode      string   `msgpack:"m"`
	Category  string   `msgpack:"cat"`
	Session   string   `msgpack:"sid,omitempty"`
	TimeTaken int64    `msgpack:"t"`
}

// StatusResponse is sent on startup and for health checks
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// CompletionError holds basic error information for failed requests
type CompletionError struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
