// Package config loads the layered file configuration: built-in
// defaults, then the user config file, then a per-tree override file
// at the search root. Later layers win; exclusion lists accumulate
// across layers instead of replacing each other.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/X-Seti/Deepsearch/pkg/logging"
)

var log = logging.GetLogger("config")

// rootConfigNames are probed in order at the search root; the first
// one that exists wins.
var rootConfigNames = []string{".deepsearch.toml", "deepsearch.toml"}

// Config is the merged file-based configuration for one invocation.
type Config struct {
	Search  Search  `koanf:"search"`
	Scan    Scan    `koanf:"scan"`
	Replace Replace `koanf:"replace"`
	Output  Output  `koanf:"output"`
}

// Search holds search behavior defaults.
type Search struct {
	Context    int      `koanf:"context"`
	IncludeOld bool     `koanf:"include-old"`
	Exclude    []string `koanf:"exclude"`
}

// Scan controls which files content scanning may touch.
type Scan struct {
	Binary bool `koanf:"binary"`
}

// Replace holds replacement defaults.
type Replace struct {
	BackupSuffix string `koanf:"backup-suffix"`
}

// Output controls report rendering and editor integration.
type Output struct {
	Color  string `koanf:"color"`
	Editor string `koanf:"editor"`
}

// rootConfig mirrors Config for the per-tree override file. Fields are
// pointers so only keys actually present in the file override the
// merged settings.
type rootConfig struct {
	Search struct {
		Context    *int     `toml:"context"`
		IncludeOld *bool    `toml:"include-old"`
		Exclude    []string `toml:"exclude"`
	} `toml:"search"`
	Scan struct {
		Binary *bool `toml:"binary"`
	} `toml:"scan"`
	Replace struct {
		BackupSuffix *string `toml:"backup-suffix"`
	} `toml:"replace"`
	Output struct {
		Color  *string `toml:"color"`
		Editor *string `toml:"editor"`
	} `toml:"output"`
}

// UserConfigPath returns the location of the user configuration file.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "deepsearch", "config.toml")
}

// Load merges all configuration layers for a run rooted at root.
func Load(root string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load built-in defaults")
	}

	// 2. User config, when present
	userPath := UserConfigPath()
	if _, err := os.Stat(userPath); err == nil {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load user config from %s", userPath)
		}
		log.Debug().Str("path", userPath).Msg("user config loaded")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	// 3. Per-tree overrides at the search root
	if err := applyRootConfig(&cfg, root); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyRootConfig reads the first root config file that exists under
// root and folds its values into cfg. Absent file, absent keys, both
// are fine.
func applyRootConfig(cfg *Config, root string) error {
	var path string
	for _, name := range rootConfigNames {
		p := filepath.Join(root, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			path = p
			break
		}
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config file %s", path)
	}

	var rc rootConfig
	if err := gotoml.Unmarshal(data, &rc); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to parse TOML in %s", path)
	}

	if rc.Search.Context != nil {
		cfg.Search.Context = *rc.Search.Context
	}
	if rc.Search.IncludeOld != nil {
		cfg.Search.IncludeOld = *rc.Search.IncludeOld
	}
	// Exclusions are additive, never replaced
	cfg.Search.Exclude = append(cfg.Search.Exclude, rc.Search.Exclude...)
	if rc.Scan.Binary != nil {
		cfg.Scan.Binary = *rc.Scan.Binary
	}
	if rc.Replace.BackupSuffix != nil {
		cfg.Replace.BackupSuffix = *rc.Replace.BackupSuffix
	}
	if rc.Output.Color != nil {
		cfg.Output.Color = *rc.Output.Color
	}
	if rc.Output.Editor != nil {
		cfg.Output.Editor = *rc.Output.Editor
	}

	log.Debug().Str("path", path).Msg("root config applied")
	return nil
}
