package config

import (
	"fmt"
	"path/filepath"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/keyword"
	"github.com/bastiangx/kbserve/pkg/kv"
	"github.com/charmbracelet/log"
)

// HistoryFile is the file backend's file name inside the data dir.
const HistoryFile = "history.msgpack"

// OpenStore opens the history backend named in [store]. The data dir is
// store.path, relative to the config dir, or <config dir>/data.
func (c *Config) OpenStore(pr *utils.PathResolver) (kv.Store, error) {
	if c.Store.Backend == kv.BackendMemory {
		return kv.NewMemory(), nil
	}
	if pr == nil {
		return nil, fmt.Errorf("no path resolver for %s store", c.Store.Backend)
	}

	dir, err := pr.GetDataDir(c.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare data dir: %w", err)
	}

	path := dir
	if c.Store.Backend == kv.BackendFile {
		path = filepath.Join(dir, HistoryFile)
	}
	log.Debugf("Opening %s store at %s", c.Store.Backend, path)
	return kv.Open(c.Store.Backend, path)
}

// KeywordsPath resolves keywords_file against the config dir. Empty when unset.
func (c *Config) KeywordsPath(pr *utils.PathResolver) string {
	if c.Emoji.KeywordsFile == "" {
		return ""
	}
	if pr == nil {
		return c.Emoji.KeywordsFile
	}
	return pr.ResolveRelativePath(c.Emoji.KeywordsFile)
}

// LoadKeywords builds the keyword table described by [emoji]: the builtin
// table, the keywords file, or the file layered over the builtin table.
// A file that fails to load falls back to the builtin table and the error is returned.
func (c *Config) LoadKeywords(pr *utils.PathResolver) (*keyword.Table, error) {
	path := c.KeywordsPath(pr)
	if path == "" {
		return keyword.Builtin(), nil
	}

	table, err := keyword.LoadFile(path)
	if err != nil {
		log.Warnf("Keyword file unusable, using builtin table: %v", err)
		return keyword.Builtin(), err
	}
	if c.Emoji.Builtin {
		return keyword.Merge(keyword.Builtin(), table), nil
	}
	return table, nil
}
