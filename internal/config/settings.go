package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

// Settings holds the editor settings.json keys surf cares about.
type Settings struct {
	// SSHConfigFile is the SSH config the remote-SSH extension reads hosts
	// from. Empty when unset.
	SSHConfigFile string `json:"remote.SSH.configFile"`
}

// StripComments converts JSON with comments to plain JSON. Line and block
// comments outside string literals are blanked and trailing commas dropped;
// string contents are never touched.
func StripComments(data []byte) []byte {
	return jsonc.ToJSON(data)
}

// ReadSettings reads and parses the settings file at path.
func ReadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return settings, nil
}

// ParseSettings parses settings.json content.
// Supports JSONC (comments and trailing commas).
func ParseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := json.Unmarshal(StripComments(data), &settings); err != nil {
		return nil, fmt.Errorf("unmarshaling settings: %w", err)
	}
	settings.SSHConfigFile = expandHome(settings.SSHConfigFile)
	return &settings, nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
