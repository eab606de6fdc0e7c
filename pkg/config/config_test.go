package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/bastiangx/kbserve/pkg/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFile)

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.True(t, utils.FileExists(path))

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	writeFile(t, path, `
[store]
backend = "sqlite"
max_entries = 12

[emoji]
keywords_file = "kw.yaml"
default_limit = 20
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, kv.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 12, cfg.Store.MaxEntries)
	assert.Equal(t, "kw.yaml", cfg.Emoji.KeywordsFile)
	assert.Equal(t, 20, cfg.Emoji.DefaultLimit)
	assert.True(t, cfg.Emoji.Builtin, "unset keys keep defaults")
	assert.Equal(t, 1000, cfg.Server.MaxText)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	writeFile(t, path, `
[store]
backend = "memory"
max_entries = "lots"

[server]
max_text = 200
reload = "yes"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, kv.BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 8, cfg.Store.MaxEntries)
	assert.Equal(t, 200, cfg.Server.MaxText)
	assert.True(t, cfg.Server.Reload)
}

func TestLoadConfigGarbageUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	writeFile(t, path, "this is [not toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Store:  StoreConfig{Backend: " SQLite ", MaxEntries: 0},
		Emoji:  EmojiConfig{DefaultLimit: -3},
		Server: ServerConfig{MaxText: -1},
	}
	cfg.Validate()
	assert.Equal(t, kv.BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, 8, cfg.Store.MaxEntries)
	assert.Equal(t, 0, cfg.Emoji.DefaultLimit)
	assert.Equal(t, 1000, cfg.Server.MaxText)

	cfg.Store.Backend = "redis"
	cfg.Validate()
	assert.Equal(t, kv.BackendFile, cfg.Store.Backend)
}

func TestLoadConfigWithPriority(t *testing.T) {
	root := t.TempDir()
	pr := utils.NewPathResolverAt(root)

	cfg, path, err := LoadConfigWithPriority("", pr)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, utils.AppDir, ConfigFile), path)
	assert.Equal(t, DefaultConfig(), cfg)

	custom := filepath.Join(root, "custom.toml")
	writeFile(t, custom, "[server]\nmax_text = 50\n")
	cfg, path, err = LoadConfigWithPriority(custom, pr)
	require.NoError(t, err)
	assert.Equal(t, custom, path)
	assert.Equal(t, 50, cfg.Server.MaxText)

	_, path, err = LoadConfigWithPriority(filepath.Join(root, "missing.toml"), pr)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, utils.AppDir, ConfigFile), path)
}

func TestLoadKeywords(t *testing.T) {
	root := t.TempDir()
	pr := utils.NewPathResolverAt(root)
	require.NoError(t, utils.EnsureDir(pr.GetConfigDir()))
	writeFile(t, filepath.Join(pr.GetConfigDir(), "kw.toml"), "[keywords]\ncat = [\"🐱\"]\nlove = [\"💘\"]\n")

	cfg := DefaultConfig()
	table, err := cfg.LoadKeywords(pr)
	require.NoError(t, err)
	assert.NotEmpty(t, table.Lookup("pizza"))

	cfg.Emoji.KeywordsFile = "kw.toml"
	table, err = cfg.LoadKeywords(pr)
	require.NoError(t, err)
	assert.Equal(t, []string{"💘"}, emoji.Glyphs(table.Lookup("love")))
	assert.NotEmpty(t, table.Lookup("pizza"))

	cfg.Emoji.Builtin = false
	table, err = cfg.LoadKeywords(pr)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	cfg.Emoji.KeywordsFile = "missing.json"
	table, err = cfg.LoadKeywords(pr)
	assert.Error(t, err)
	assert.NotEmpty(t, table.Lookup("pizza"))
}

func TestOpenStore(t *testing.T) {
	root := t.TempDir()
	pr := utils.NewPathResolverAt(root)

	for _, backend := range []string{kv.BackendMemory, kv.BackendFile, kv.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Store.Backend = backend
			cfg.Store.Path = "data-" + backend

			store, err := cfg.OpenStore(pr)
			require.NoError(t, err)
			defer store.Close()

			require.NoError(t, store.PutSet("EMAIL", []string{"a@b.co"}))
			got, err := store.GetSet("EMAIL")
			require.NoError(t, err)
			assert.Equal(t, []string{"a@b.co"}, got)
		})
	}

	assert.True(t, utils.FileExists(filepath.Join(pr.GetConfigDir(), "data-file", HistoryFile)))
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFile)
	keywords := filepath.Join(dir, "kw.toml")
	writeFile(t, path, "[server]\nmax_text = 10\n")
	writeFile(t, keywords, "[keywords]\ncat = [\"🐱\"]\n")

	w := NewWatcher(path, keywords, "")
	var last atomic.Int64
	var calls atomic.Int32
	w.OnChange(func(c *Config) {
		last.Store(int64(c.Server.MaxText))
		calls.Add(1)
	})
	require.NoError(t, w.Start())
	defer w.Stop()

	writeFile(t, path, "[server]\nmax_text = 20\n")
	require.Eventually(t, func() bool { return last.Load() == 20 }, 3*time.Second, 20*time.Millisecond)

	before := calls.Load()
	writeFile(t, keywords, "[keywords]\ndog = [\"🐶\"]\n")
	require.Eventually(t, func() bool { return calls.Load() > before }, 3*time.Second, 20*time.Millisecond)

	time.Sleep(3 * DefaultDebounce)
	settled := calls.Load()
	writeFile(t, filepath.Join(dir, "unrelated.txt"), "x")
	time.Sleep(3 * DefaultDebounce)
	assert.Equal(t, settled, calls.Load())
}
