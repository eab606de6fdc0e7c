package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"A@B.com", "a@b.com"},
		{"a@b.com ", "a@b.com"},
		{"  John   Smith ", "john smith"},
		{"Main\tStreet\n 5", "main street 5"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeKey(c.in), "NormalizeKey(%q)", c.in)
	}
}

func TestCurrentWord(t *testing.T) {
	cases := []struct {
		before, after, want string
	}{
		{"i love", "", "love"},
		{"i lo", "ve you", "love"},
		{"hello, wor", "ld!", "world"},
		{"", "", ""},
		{"trailing ", "", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, CurrentWord(c.before, c.after), "CurrentWord(%q, %q)", c.before, c.after)
	}
}

func TestLastWord(t *testing.T) {
	assert.Equal(t, "love", LastWord("i love "))
	assert.Equal(t, "love", LastWord("so much love!"))
	assert.Equal(t, "", LastWord("   "))
	assert.Equal(t, "pizza", LastWord("pizza"))
}

func TestStringPredicates(t *testing.T) {
	assert.True(t, IsDigitsOrHyphen("12345-6789"))
	assert.False(t, IsDigitsOrHyphen("12a45"))
	assert.True(t, ContainsNumbers("abc1"))
	assert.False(t, ContainsNumbers("abc"))
	assert.True(t, ContainsAll("first name", "first", "name"))
	assert.False(t, ContainsAll("first", "first", "name"))
	assert.Equal(t, 2, RuneLen("💕!"))
	assert.Equal(t, "lo", LastRunes("hello", 2))
	assert.Equal(t, "he", FirstRunes("hello", 2))
	assert.Equal(t, "hello", LastRunes("hello", 10))
	assert.True(t, IsBlank(" \t\n"))
	assert.False(t, IsBlank(" x "))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.bin")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0600))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should be renamed away")
}

func TestPathResolverAt(t *testing.T) {
	root := t.TempDir()
	pr := NewPathResolverAt(root)

	cfg, err := pr.GetConfigPath("kbserve.toml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, AppDir, "kbserve.toml"), cfg)

	data, err := pr.GetDataDir("")
	require.NoError(t, err)
	assert.DirExists(t, data)
	assert.Equal(t, filepath.Join(root, AppDir, "data"), data)
}
