package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fenilsonani/folder-organizer/internal/classifier"
	"github.com/fenilsonani/folder-organizer/internal/security"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	TargetDir      string            `yaml:"target_dir"`
	DaysToArchive  int               `yaml:"days_to_archive"`
	ArchiveFolder  string            `yaml:"archive_folder"`
	FallbackFolder string            `yaml:"fallback_folder"`
	Categories     []CategoryConfig  `yaml:"categories"`
	BroadTypes     []BroadTypeConfig `yaml:"broad_types"`
	ContentTypes   map[string]string `yaml:"content_types,omitempty"`
	ExcludePattern []string          `yaml:"exclude_patterns"`
	Overwrite      bool              `yaml:"overwrite"`
	DryRun         bool              `yaml:"dry_run"`
	Log            LogConfig         `yaml:"log"`
}

// CategoryConfig is one extension-based rule. Order in the file is evaluation order.
type CategoryConfig struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
}

// BroadTypeConfig maps a content-type prefix to a folder
type BroadTypeConfig struct {
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Load loads configuration from a file. Keys missing from the file keep
// their default values.
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Rules converts the configuration into a normalized classifier rule table
func (c *Config) Rules() classifier.Rules {
	rules := classifier.Rules{
		Categories:     make([]classifier.CategoryRule, 0, len(c.Categories)),
		BroadTypes:     make([]classifier.BroadTypeRule, 0, len(c.BroadTypes)),
		ArchiveFolder:  c.ArchiveFolder,
		FallbackFolder: c.FallbackFolder,
		DaysToArchive:  c.DaysToArchive,
	}
	for _, cat := range c.Categories {
		rules.Categories = append(rules.Categories, classifier.CategoryRule{
			Name:       cat.Name,
			Extensions: append([]string(nil), cat.Extensions...),
		})
	}
	for _, bt := range c.BroadTypes {
		rules.BroadTypes = append(rules.BroadTypes, classifier.BroadTypeRule{
			Name:   bt.Name,
			Prefix: bt.Prefix,
		})
	}
	return rules.Normalize()
}

// Resolver builds the content-type resolver, including configured overrides
func (c *Config) Resolver() classifier.TypeResolver {
	return classifier.NewExtensionResolver(c.ContentTypes)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	rules := c.Rules()
	if err := rules.Validate(); err != nil {
		return err
	}

	// Every destination becomes a folder under the target directory
	for _, folder := range rules.Destinations() {
		if err := security.ValidateFolderName(folder); err != nil {
			return fmt.Errorf("invalid folder name: %w", err)
		}
	}

	// Validate exclude patterns (glob syntax)
	for _, pattern := range c.ExcludePattern {
		if err := security.ValidateGlobPattern(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}

	for ext := range c.ContentTypes {
		if classifier.NormalizeExtension(ext) == "" {
			return fmt.Errorf("content type override has an empty extension")
		}
	}

	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "folder-organizer")
	return filepath.Join(configDir, "config.yaml"), nil
}

// WriteExample writes the commented example configuration if no file exists yet
func WriteExample(configPath string) (bool, error) {
	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(GetExampleConfig()), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}
