// Package keyword maps trigger words to ordered emoji candidates.
//
// A Table is immutable once built and safe to share between goroutines.
// Keywords are stored normalized (trimmed, lowercase) in a patricia trie so
// exact lookups and prefix listings share one structure.
package keyword

import (
	"sort"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

type Table struct {
	trie *patricia.Trie
	size int
}

// New builds a table. Blank keywords and empty candidate lists are skipped,
// duplicate glyphs within one list keep their first position.
func New(entries map[string][]emoji.Emoji) *Table {
	t := &Table{trie: patricia.NewTrie()}
	for word, candidates := range entries {
		key := utils.NormalizeKeyword(word)
		if key == "" {
			continue
		}
		list := dedupe(candidates)
		if len(list) == 0 {
			continue
		}
		if t.trie.Insert(patricia.Prefix(key), list) {
			t.size++
		} else {
			// two spellings normalized to the same key; the later one wins
			t.trie.Set(patricia.Prefix(key), list)
		}
	}
	return t
}

// Lookup returns the candidates for word (case-insensitive, trimmed), or nil.
func (t *Table) Lookup(word string) []emoji.Emoji {
	if t == nil {
		return nil
	}
	key := utils.NormalizeKeyword(word)
	if key == "" {
		return nil
	}
	item := t.trie.Get(patricia.Prefix(key))
	if item == nil {
		return nil
	}
	list := item.([]emoji.Emoji)
	out := make([]emoji.Emoji, len(list))
	copy(out, list)
	return out
}

// Len is the number of keywords.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.size
}

// Keywords lists every keyword in lexical order.
func (t *Table) Keywords() []string {
	return t.WithPrefix("")
}

// WithPrefix lists keywords starting with prefix in lexical order.
func (t *Table) WithPrefix(prefix string) []string {
	if t == nil {
		return nil
	}
	var words []string
	collect := func(p patricia.Prefix, item patricia.Item) error {
		words = append(words, string(p))
		return nil
	}

	var err error
	if key := utils.NormalizeKeyword(prefix); key == "" {
		err = t.trie.Visit(collect)
	} else {
		err = t.trie.VisitSubtree(patricia.Prefix(key), collect)
	}
	if err != nil {
		log.Errorf("Error visiting keyword subtree: %v", err)
		return nil
	}
	sort.Strings(words)
	return words
}

// Entries copies the table back into a map.
func (t *Table) Entries() map[string][]emoji.Emoji {
	out := make(map[string][]emoji.Emoji, t.Len())
	if t == nil {
		return out
	}
	_ = t.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		list := item.([]emoji.Emoji)
		cp := make([]emoji.Emoji, len(list))
		copy(cp, list)
		out[string(p)] = cp
		return nil
	})
	return out
}

// Merge returns a new table with overlay's keywords replacing base's.
func Merge(base, overlay *Table) *Table {
	entries := base.Entries()
	for k, v := range overlay.Entries() {
		entries[k] = v
	}
	return New(entries)
}

func dedupe(candidates []emoji.Emoji) []emoji.Emoji {
	f := utils.NewSuggestionFilter(nil)
	out := make([]emoji.Emoji, 0, len(candidates))
	for _, c := range candidates {
		if c.Unicode == "" || !f.ShouldInclude(c.Unicode) {
			continue
		}
		out = append(out, c)
	}
	return out
}
