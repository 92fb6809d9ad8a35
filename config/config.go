// Package config holds the settings that shape where and how saves are
// written: codec choice, file naming, saves directory and encryption policy.
//
// Settings live in a YAML file inside the platform root. A missing file is not
// an error; the defaults below apply.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yoanbernabeu/slotsave/codec"
)

const (
	AppDirName     = "slotsave"
	ConfigFileName = "slotsave.yaml"
	SaveExt        = ".json"
	TextureExt     = ".png"

	// EnvRoot overrides the platform root directory.
	EnvRoot = "SLOTSAVE_ROOT"
)

// ErrInvalidConfig is returned when settings fail validation.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

type Config struct {
	Version int `yaml:"version"`

	// Codec selects the text encoder: minimal | full
	Codec codec.Kind `yaml:"codec" validate:"oneof=minimal full"`

	// SaveName is the save file name without ".json".
	SaveName string `yaml:"save_name" validate:"required,excludesall=/\\"`

	// ProfilePrefix is prepended to every profile name to build its file name.
	ProfilePrefix string `yaml:"profile_prefix" validate:"excludesall=/\\"`

	// DefaultProfileName is used when no profile name was chosen by the caller.
	DefaultProfileName string `yaml:"default_profile_name" validate:"required,excludesall=/\\"`

	// SavesDirectory is relative to the platform root.
	SavesDirectory string `yaml:"saves_directory" validate:"required"`

	Encryption Encryption `yaml:"encryption"`
}

// Encryption toggles the XOR obfuscation per build type.
type Encryption struct {
	InDevBuilds bool  `yaml:"in_dev_builds"` // also covers interactive sessions
	InRelease   bool  `yaml:"in_release"`
	Key         int32 `yaml:"key"` // 0 disables obfuscation completely
}

func DefaultConfig() *Config {
	return &Config{
		Version:            1,
		Codec:              codec.KindMinimal,
		SaveName:           "SData",
		ProfilePrefix:      "Profile_",
		DefaultProfileName: "Default",
		SavesDirectory:     "Prog",
		Encryption: Encryption{
			InDevBuilds: false,
			InRelease:   true,
			Key:         -963,
		},
	}
}

// DefaultRoot returns the platform-writable root directory: $SLOTSAVE_ROOT when
// set, otherwise <user config dir>/slotsave.
func DefaultRoot() (string, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return root, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config directory: %w", err)
	}
	return filepath.Join(base, AppDirName), nil
}

func GetConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// SavesFullDirectory is the directory holding every save, profile and texture.
func (c *Config) SavesFullDirectory(root string) string {
	return filepath.Join(root, c.SavesDirectory)
}

// SaveFileName returns the save file name including its extension.
func (c *Config) SaveFileName() string {
	return c.SaveName + SaveExt
}

// ProfileFileName returns the file name for the named profile.
func (c *Config) ProfileFileName(profile string) string {
	return c.ProfilePrefix + profile + SaveExt
}

// TextureFileName returns the file name for a named binary asset.
func TextureFileName(name string) string {
	return name + TextureExt
}

// Load reads the settings file under root. A missing file yields DefaultConfig.
// Fields absent from the file keep their default values.
func Load(root string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(GetConfigPath(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults fills in values a settings file explicitly left empty.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Codec == "" {
		c.Codec = defaults.Codec
	}
	if c.SaveName == "" {
		c.SaveName = defaults.SaveName
	}
	if c.DefaultProfileName == "" {
		c.DefaultProfileName = defaults.DefaultProfileName
	}
	if c.SavesDirectory == "" {
		c.SavesDirectory = defaults.SavesDirectory
	}
	if c.Version == 0 {
		c.Version = defaults.Version
	}
}

// Validate checks the settings for values the saver cannot work with.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if filepath.IsAbs(c.SavesDirectory) {
		return fmt.Errorf("%w: saves_directory must be relative to the root, got %q", ErrInvalidConfig, c.SavesDirectory)
	}
	return nil
}

func (c *Config) Save(root string) error {
	if err := os.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(GetConfigPath(root), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func Exists(root string) bool {
	_, err := os.Stat(GetConfigPath(root))
	return err == nil
}
