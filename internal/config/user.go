package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fgrehm/surf/internal/editor"
)

// UserConfigFileName is the name of the surf config file.
const UserConfigFileName = "config.toml"

// DefaultIcon is the icon path reported with every result.
const DefaultIcon = "icon.png"

// UserConfig holds values loaded from surf's config.toml.
//
//	debug = true
//	icon = "Images/windsurf.png"
//
//	[editor]
//	name = "Windsurf"
//	executable = "Windsurf.exe"
//	data_dir = "Windsurf"
//	install_paths = ['D:\Apps\Windsurf']
type UserConfig struct {
	Debug  bool           `toml:"debug"`
	Icon   string         `toml:"icon"`
	Editor editor.Product `toml:"editor"`
}

// UserConfigPath returns the config file location: $SURF_CONFIG if set,
// otherwise <user config dir>/surf/config.toml.
func UserConfigPath() (string, error) {
	if p := os.Getenv("SURF_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("getting user config directory: %w", err)
	}
	return filepath.Join(dir, "surf", UserConfigFileName), nil
}

// LoadUserConfig reads the config at path. A missing file yields the
// defaults and no error.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		cfg = &UserConfig{}
		cfg.applyDefaults()
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *UserConfig) applyDefaults() {
	if c.Icon == "" {
		c.Icon = DefaultIcon
	}
}
