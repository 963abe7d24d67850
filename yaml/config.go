// Package yaml loads tagfind configuration from YAML files.
package yaml

import (
	"os"
	"path/filepath"

	"github.com/jpdelima/tagfinder"
	"gopkg.in/yaml.v3"
)

// Config holds the tagfind settings that can be supplied from a file.
// Zero values mean "not set"; the CLI applies its own defaults on top and
// explicit flags always win.
type Config struct {
	LoadTimeoutMs int     `yaml:"loadTimeoutMs"`
	MaxOpen       int     `yaml:"maxOpen"`
	ReadLimitRps  float64 `yaml:"readLimitRps"`
	TagsFile      string  `yaml:"tagsFile"`
	Verbose       bool    `yaml:"verbose"`
}

// Load reads and decodes the config file at path.
// Returns ENOTFOUND if the file cannot be read and EINVALID if it cannot
// be parsed.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, tagfinder.Errorf(tagfinder.ENOTFOUND, "cannot read config file %q: %v", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "cannot parse config file %q: %v", path, err)
	}
	if cfg.LoadTimeoutMs < 0 {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "loadTimeoutMs must not be negative in %q", path)
	}
	if cfg.MaxOpen < 0 {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "maxOpen must not be negative in %q", path)
	}
	if cfg.ReadLimitRps < 0 {
		return nil, tagfinder.Errorf(tagfinder.EINVALID, "readLimitRps must not be negative in %q", path)
	}
	return &cfg, nil
}

// DefaultPath returns the conventional config file location, or an empty
// string when the user's config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tagfind", "config.yml")
}
