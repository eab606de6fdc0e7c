package server

import (
	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/autofill"
)

// hostBridge plays the host for the engine during one request. Reads are
// served from the request's text snapshot; every write or present call is
// recorded as an action for the response.
type hostBridge struct {
	before, after string
	canSend       bool
	focused       *autofill.Descriptor
	actions       []Action
}

func (h *hostBridge) begin(req *EventRequest, maxText int) {
	h.before, h.after = req.Before, req.After
	if maxText > 0 {
		h.before = utils.LastRunes(h.before, maxText)
		h.after = utils.FirstRunes(h.after, maxText)
	}
	h.canSend = req.CanSend
	h.actions = nil
}

func (h *hostBridge) record(a Action) {
	h.actions = append(h.actions, a)
}

func (h *hostBridge) TextBeforeCursor(n int) string { return utils.LastRunes(h.before, n) }

func (h *hostBridge) TextAfterCursor(n int) string { return utils.FirstRunes(h.after, n) }

func (h *hostBridge) ReplaceField(text string) error {
	h.record(Action{Op: OpReplaceField, Text: text})
	h.before, h.after = text, ""
	return nil
}

func (h *hostBridge) InsertText(text string) error {
	h.record(Action{Op: OpInsert, Text: text})
	h.before += text
	return nil
}

func (h *hostBridge) ReplaceComposingWord(text string) error {
	h.record(Action{Op: OpReplaceWord, Text: text})
	return nil
}

func (h *hostBridge) IsChatTextBox() bool {
	return autofill.IsChatTextBox(h.focused)
}

// SendDirectly succeeds only when the host said it can commit content into the field.
func (h *hostBridge) SendDirectly(payload string) (bool, error) {
	if !h.canSend {
		return false, nil
	}
	h.record(Action{Op: OpSend, Text: payload})
	return true, nil
}

func (h *hostBridge) ShareAsImage(payload string) error {
	h.record(Action{Op: OpShare, Text: payload})
	return nil
}

func (h *hostBridge) Notice(msg string) {
	h.record(Action{Op: OpNotice, Text: msg})
}

// surface presents on one named surface through the bridge.
type surface struct {
	name   string
	bridge *hostBridge
}

func (s surface) ShowList(items []string) {
	s.bridge.record(Action{Op: OpShow, Surface: s.name, Items: items})
}

func (s surface) Hide() {
	s.bridge.record(Action{Op: OpHide, Surface: s.name})
}
