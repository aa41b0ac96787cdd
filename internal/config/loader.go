package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the YAML config file structure.
// Every field is optional; set fields override the built-in defaults and
// are in turn overridden by explicit CLI flags.
type File struct {
	// Concurrency overrides DefaultConcurrency when positive.
	Concurrency int `yaml:"concurrency,omitempty"`

	// TimeoutSeconds overrides DefaultTimeout when positive.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// UserAgent overrides the fixed identity header when non-empty.
	UserAgent string `yaml:"user_agent,omitempty"`

	// Target is the default target domain for this project's audits.
	Target string `yaml:"target,omitempty"`

	// Path is the default expected path substring.
	Path string `yaml:"path,omitempty"`

	// Anchor is the default expected anchor text.
	Anchor string `yaml:"anchor,omitempty"`
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &f, nil
}

// FindFile locates the config file to use.
// An explicit path wins; otherwise the current directory, the XDG config
// directory, and the home directory are searched in order. Returns ""
// when no file exists.
func FindFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := []string{ConfigFileName}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), ConfigFileName))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ConfigFileName))
	}

	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ApplyTo overlays the file's set fields onto cfg.
// Call before flag values are applied so flags keep the last word.
func (f *File) ApplyTo(cfg *Config) {
	if f == nil {
		return
	}
	if f.Concurrency > 0 {
		cfg.Concurrency = f.Concurrency
	}
	if f.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(f.TimeoutSeconds) * time.Second
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.Target != "" {
		cfg.TargetDomain = f.Target
	}
	if f.Path != "" {
		cfg.ExpectedPath = f.Path
	}
	if f.Anchor != "" {
		cfg.ExpectedAnchor = f.Anchor
	}
}
