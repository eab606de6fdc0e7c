package cli

import (
	"strings"
	"testing"

	"github.com/bastiangx/kbserve/internal/logger"
	"github.com/bastiangx/kbserve/pkg/autofill"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/bastiangx/kbserve/pkg/keyword"
	"github.com/bastiangx/kbserve/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, script ...string) (*InputHandler, *autofill.Store) {
	t.Helper()
	store := autofill.NewStore(kv.NewMemory(), autofill.WithLogger(logger.Discard()))
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	return NewInputHandler(store, keyword.Builtin(), in, 6), store
}

func TestReplAutofill(t *testing.T) {
	h, store := newHandler(t,
		"focus Email",
		"type me@example.com",
		"hide",
		"focus Email",
	)
	require.NoError(t, h.Start())

	assert.Equal(t, []string{"me@example.com"}, store.Get(autofill.Email))
	assert.Equal(t, []string{"me@example.com"}, h.term.bar)

	require.True(t, h.handleInput("select 1"))
	assert.Equal(t, "me@example.com", h.term.text)
	assert.Nil(t, h.term.bar)
}

func TestReplComposingEmoji(t *testing.T) {
	h, _ := newHandler(t, "focus Message", "type I love")
	require.NoError(t, h.Start())

	assert.Equal(t, emoji.ComposingMatch, h.engine.Mode())
	assert.Equal(t, []string{"❤️", "💕", "😍", "🥰"}, h.term.row)

	h.handleInput("emoji 2")
	assert.Equal(t, "I 💕", h.term.text)
	assert.Equal(t, emoji.Default, h.engine.Mode())
	assert.Len(t, h.term.row, 6)
}

func TestReplSpaceEmoji(t *testing.T) {
	h, _ := newHandler(t, "focus Message", "type pizza", "space", "emoji 1")
	require.NoError(t, h.Start())

	assert.Equal(t, "pizza 🍕", h.term.text)
	assert.Equal(t, emoji.Default, h.engine.Mode())
}

func TestReplCommitResets(t *testing.T) {
	h, _ := newHandler(t, "chat", "type party", "commit")
	require.NoError(t, h.Start())
	assert.Equal(t, emoji.Default, h.engine.Mode())
}

func TestReplQuitAndErrors(t *testing.T) {
	h, _ := newHandler(t)

	assert.True(t, h.handleInput("frobnicate"))
	assert.True(t, h.handleInput("emoji 99"))
	assert.True(t, h.handleInput("select"))
	assert.True(t, h.handleInput("keywords s"))
	assert.False(t, h.handleInput("quit"))
}

func TestReplChatLongPress(t *testing.T) {
	h, _ := newHandler(t, "chat")
	require.NoError(t, h.Start())

	assert.True(t, h.term.IsChatTextBox())
	h.handleInput("long 1")
	h.handleInput("focus City")
	assert.False(t, h.term.IsChatTextBox())
}
