// Package config loads and saves the sshp configuration file. The file holds
// persistent defaults for the flags the CLI accepts; explicit flags always
// win over file values.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sshp/internal/errors"
)

const (
	// ConfigDir is the directory under the user's home for sshp config.
	ConfigDir = ".config/sshp"
	// ConfigFile is the config file name inside ConfigDir.
	ConfigFile = "config.yaml"

	// DefaultTemplate is the command run against the selected host.
	DefaultTemplate = `ssh "{{.Name}}"`
)

// Config represents the complete sshp configuration file.
type Config struct {
	// ConfigPaths are the SSH config files to resolve, in order.
	ConfigPaths []string `yaml:"config_paths" mapstructure:"config_paths"`

	// Template is the command template run when a host is selected.
	Template string `yaml:"template" mapstructure:"template"`

	// OnSessionStart and OnSessionEnd are optional hook templates run
	// around the main command.
	OnSessionStart string `yaml:"on_session_start" mapstructure:"on_session_start"`
	OnSessionEnd   string `yaml:"on_session_end" mapstructure:"on_session_end"`

	// Sort orders hosts by name instead of declaration order.
	Sort bool `yaml:"sort" mapstructure:"sort"`

	// ShowProxyCommand adds the ProxyCommand column to the picker.
	ShowProxyCommand bool `yaml:"show_proxy_command" mapstructure:"show_proxy_command"`

	// ExitAfterSession quits the picker after the session ends instead of
	// returning to the host list.
	ExitAfterSession bool `yaml:"exit_after_session" mapstructure:"exit_after_session"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ConfigPaths: []string{"/etc/ssh/ssh_config", "~/.ssh/config"},
		Template:    DefaultTemplate,
	}
}

// Path returns the location of the config file (~/.config/sshp/config.yaml).
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Can't determine your home directory",
			"Set the HOME environment variable")
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

// Load reads the config file at path, layering it over the defaults.
// A missing file is not an error; the defaults come back as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file: "+path,
			"Check the file is valid YAML")
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config file: "+path,
			"Check field names against 'sshp init' output")
	}

	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize configuration",
			"")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't create config directory: "+filepath.Dir(path),
			"Check directory permissions")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Can't write config file: "+path,
			"Check file permissions")
	}

	return nil
}

// ExpandTilde replaces ~ or ~/path with the user's home directory.
// Does not support ~username syntax - just ~ for the current user.
func ExpandTilde(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}

// ExpandPaths applies tilde expansion to every path in the slice.
func ExpandPaths(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = ExpandTilde(p)
	}
	return out
}
