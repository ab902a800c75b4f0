package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"cmspublish/internal/domain"
	"cmspublish/internal/eventbus"
)

// EnvPrefix is the prefix of environment overrides, e.g. CMSPUBLISH_DATABASE_PATH
const EnvPrefix = "CMSPUBLISH"

// Config represents the application configuration
type Config struct {
	Version    int             `toml:"version" mapstructure:"version"`
	LogFile    string          `toml:"log_file" mapstructure:"log_file"`
	Manifest   string          `toml:"manifest" mapstructure:"manifest"` // serve the publish list from this manifest instead of the database
	Database   DatabaseConfig  `toml:"database" mapstructure:"database"`
	Publish    PublishSettings `toml:"publish" mapstructure:"publish"`
	UISettings UISettings      `toml:"ui" mapstructure:"ui"`
}

// DatabaseConfig holds sqlite settings
type DatabaseConfig struct {
	Path string `toml:"path" mapstructure:"path"`
}

// PublishSettings holds the publish options and list behaviour
type PublishSettings struct {
	IncludeRelated       bool `toml:"include_related" mapstructure:"include_related"`
	IncludeSiblings      bool `toml:"include_siblings" mapstructure:"include_siblings"`
	AutoSelectFirstGroup bool `toml:"auto_select_first_group" mapstructure:"auto_select_first_group"`
	HideAlreadyPublished bool `toml:"hide_already_published" mapstructure:"hide_already_published"`
}

// Options returns the publish options used when fetching a list
func (p PublishSettings) Options() domain.PublishOptions {
	return domain.PublishOptions{
		IncludeRelated:  p.IncludeRelated,
		IncludeSiblings: p.IncludeSiblings,
	}
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowRelated bool `toml:"show_related" mapstructure:"show_related"`
	ShowDates   bool `toml:"show_dates" mapstructure:"show_dates"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "cmspublish", "config.toml")
}

// NewConfigService creates a config service reading and writing filePath.
// An empty filePath selects DefaultPath.
func NewConfigService(filePath string) ConfigService {
	if filePath == "" {
		filePath = DefaultPath()
	}
	return &configService{filePath: filePath}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(filePath string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(filePath).(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration file; a missing file yields the defaults.
// Environment overrides apply in both cases.
func (cs *configService) Load() (*Config, error) {
	cfg, err := read(cs.filePath, false)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return read(path, true)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func read(path string, required bool) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if required {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("manifest", d.Manifest)
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("publish.include_related", d.Publish.IncludeRelated)
	v.SetDefault("publish.include_siblings", d.Publish.IncludeSiblings)
	v.SetDefault("publish.auto_select_first_group", d.Publish.AutoSelectFirstGroup)
	v.SetDefault("publish.hide_already_published", d.Publish.HideAlreadyPublished)
	v.SetDefault("ui.show_related", d.UISettings.ShowRelated)
	v.SetDefault("ui.show_dates", d.UISettings.ShowDates)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		LogFile: "cmspublish.log",
		Database: DatabaseConfig{
			Path: "cmspublish.db",
		},
		Publish: PublishSettings{
			IncludeRelated:       true,
			IncludeSiblings:      false,
			AutoSelectFirstGroup: true,
		},
		UISettings: UISettings{
			ShowRelated: true,
			ShowDates:   true,
		},
	}
}
