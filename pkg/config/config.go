/*
Package config manages TOML config for kbserve.
*/
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/kv"
	"github.com/charmbracelet/log"
)

// ConfigFile is the config file name inside the config dir.
const ConfigFile = "kbserve.toml"

// Config holds the entire config structure
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Emoji  EmojiConfig  `toml:"emoji"`
	Server ServerConfig `toml:"server"`
}

// StoreConfig selects where field history is persisted.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	Path       string `toml:"path"`
	MaxEntries int    `toml:"max_entries"`
}

// EmojiConfig holds keyword table and emoji row options.
type EmojiConfig struct {
	KeywordsFile string `toml:"keywords_file"`
	Builtin      bool   `toml:"builtin"`
	DefaultLimit int    `toml:"default_limit"`
}

// ServerConfig has IPC related options.
type ServerConfig struct {
	MaxText int  `toml:"max_text"`
	Reload  bool `toml:"reload"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:    kv.BackendFile,
			Path:       "",
			MaxEntries: 8,
		},
		Emoji: EmojiConfig{
			KeywordsFile: "",
			Builtin:      true,
			DefaultLimit: 0,
		},
		Server: ServerConfig{
			MaxText: 1000,
			Reload:  true,
		},
	}
}

// Validate fixes values that cannot work, logging each fix.
func (c *Config) Validate() {
	d := DefaultConfig()

	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case kv.BackendMemory, kv.BackendFile, kv.BackendSQLite:
	default:
		log.Warnf("Unknown store backend %q, using %q", c.Store.Backend, d.Store.Backend)
		c.Store.Backend = d.Store.Backend
	}
	if c.Store.MaxEntries < 1 {
		log.Warnf("store.max_entries must be positive, using %d", d.Store.MaxEntries)
		c.Store.MaxEntries = d.Store.MaxEntries
	}
	if c.Emoji.DefaultLimit < 0 {
		c.Emoji.DefaultLimit = d.Emoji.DefaultLimit
	}
	if c.Server.MaxText < 1 {
		log.Warnf("server.max_text must be positive, using %d", d.Server.MaxText)
		c.Server.MaxText = d.Server.MaxText
	}
}

// GetDefaultConfigPath returns the default path for kbserve.toml
func GetDefaultConfigPath(pr *utils.PathResolver) (string, error) {
	if pr == nil {
		return "", fmt.Errorf("no path resolver")
	}
	return pr.GetConfigPath(ConfigFile)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [config dir]/kbserve/kbserve.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, pr *utils.PathResolver) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath(pr)
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file, falling back to partial recovery
// and then to defaults for anything that cannot be read.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Validate()
	return config, nil
}

// tryPartialParse keeps every well-typed value of a config the struct decoder rejected
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "store"); ok {
		extractStoreConfig(section, &config.Store)
	}
	if section, ok := utils.ExtractSection(tempConfig, "emoji"); ok {
		extractEmojiConfig(section, &config.Emoji)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	config.Validate()
	return config, nil
}

func extractStoreConfig(data map[string]any, store *StoreConfig) {
	if val, ok := utils.ExtractString(data, "backend"); ok {
		store.Backend = val
	}
	if val, ok := utils.ExtractString(data, "path"); ok {
		store.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "max_entries"); ok {
		store.MaxEntries = val
	}
}

func extractEmojiConfig(data map[string]any, emoji *EmojiConfig) {
	if val, ok := utils.ExtractString(data, "keywords_file"); ok {
		emoji.KeywordsFile = val
	}
	if val, ok := utils.ExtractBool(data, "builtin"); ok {
		emoji.Builtin = val
	}
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		emoji.DefaultLimit = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text"); ok {
		server.MaxText = val
	}
	if val, ok := utils.ExtractBool(data, "reload"); ok {
		server.Reload = val
	}
}

// RebuildConfigFile force creates a new kbserve.toml at the default path
func RebuildConfigFile(pr *utils.PathResolver) (string, error) {
	defaultPath, err := GetDefaultConfigPath(pr)
	if err != nil {
		return "", err
	}
	return defaultPath, SaveConfig(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "defaults"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
