package keyword

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// FileFormat represents the keyword file formats LoadFile understands
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatTOML
	FormatJSON
	FormatYAML
)

func (f FileFormat) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatUnknown
}

// fileTable is the shape shared by the TOML and YAML files:
//
//	[keywords]
//	love = ["❤️", "💕"]
//
//	[[emoji.coffee]]
//	unicode = "☕"
//	description = "Hot Beverage"
//
// keywords holds bare glyphs, emoji holds full records. Both may be present.
type fileTable struct {
	Keywords map[string][]string      `toml:"keywords" yaml:"keywords"`
	Emoji    map[string][]emoji.Emoji `toml:"emoji" yaml:"emoji"`
}

func (ft fileTable) entries() map[string][]emoji.Emoji {
	out := make(map[string][]emoji.Emoji, len(ft.Keywords)+len(ft.Emoji))
	for word, glyphs := range ft.Keywords {
		for _, g := range glyphs {
			out[word] = append(out[word], emoji.Emoji{Unicode: g})
		}
	}
	for word, list := range ft.Emoji {
		out[word] = append(out[word], list...)
	}
	return out
}

// LoadFile reads a keyword table from a TOML, JSON or YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword file %s: %w", path, err)
	}

	format := DetectFormat(path)
	entries, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse keyword file %s: %w", path, err)
	}

	table := New(entries)
	log.Debugf("Loaded %d keywords from %s (%s)", table.Len(), path, format)
	return table, nil
}

// Parse decodes keyword entries from data in the given format.
func Parse(data []byte, format FileFormat) (map[string][]emoji.Emoji, error) {
	switch format {
	case FormatTOML:
		var ft fileTable
		if _, err := toml.Decode(string(data), &ft); err != nil {
			return nil, err
		}
		return ft.entries(), nil
	case FormatYAML:
		var ft fileTable
		if err := yaml.Unmarshal(data, &ft); err != nil {
			return nil, err
		}
		return ft.entries(), nil
	case FormatJSON:
		return parseJSON(data)
	default:
		return nil, fmt.Errorf("unsupported keyword file format %s", format)
	}
}

// parseJSON accepts either {"keywords": {...}} or the keyword object at the root.
// Each list element is a glyph string or an object with a "unicode" field.
func parseJSON(data []byte) (map[string][]emoji.Emoji, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}

	root := gjson.ParseBytes(data)
	if kw := root.Get("keywords"); kw.Exists() {
		root = kw
	}
	if !root.IsObject() {
		return nil, fmt.Errorf("expected a JSON object of keyword lists")
	}

	out := make(map[string][]emoji.Emoji)
	root.ForEach(func(word, list gjson.Result) bool {
		for _, item := range list.Array() {
			var e emoji.Emoji
			switch {
			case item.Type == gjson.String:
				e.Unicode = item.String()
			case item.IsObject():
				e.Unicode = item.Get("unicode").String()
				e.Description = item.Get("description").String()
				e.Category = item.Get("category").String()
			default:
				log.Warnf("Skipping keyword %q entry of type %s", word.String(), item.Type)
				continue
			}
			out[word.String()] = append(out[word.String()], e)
		}
		return true
	})
	return out, nil
}
