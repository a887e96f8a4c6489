package editor

import (
	"path/filepath"
	"runtime"
)

// Instance is one installation of the editor: the executable that launches
// it and the per-user application data directory it writes to.
type Instance struct {
	// ExecutablePath is the absolute path to the editor binary. It is the
	// identity of an instance.
	ExecutablePath string `json:"executablePath"`

	// DataPath is the application data directory, e.g. %APPDATA%\Windsurf.
	DataPath string `json:"dataPath"`
}

// HistoryPath returns the path of the key-value store holding the
// "recently opened" list.
func (i Instance) HistoryPath() string {
	return filepath.Join(i.DataPath, "User", "globalStorage", "state.vscdb")
}

// SettingsPath returns the path of the user settings.json.
func (i Instance) SettingsPath() string {
	return filepath.Join(i.DataPath, "User", "settings.json")
}

// Product describes how to find one VS Code based editor on disk.
type Product struct {
	// Name is the user-facing product name. It is also the case-insensitive
	// marker looked for in PATH entries.
	Name string `toml:"name"`

	// Executable is the bare file name of the editor binary.
	Executable string `toml:"executable"`

	// DataDir is the directory name under the user config root.
	DataDir string `toml:"data_dir"`

	// InstallPaths are extra directories probed for Executable before the
	// built-in conventional locations.
	InstallPaths []string `toml:"install_paths"`
}

// DefaultProduct returns the Windsurf defaults for the running OS.
func DefaultProduct() Product {
	return productFor(runtime.GOOS)
}

func productFor(goos string) Product {
	p := Product{
		Name:       "Windsurf",
		Executable: "windsurf",
		DataDir:    "Windsurf",
	}
	if goos == "windows" {
		p.Executable = "Windsurf.exe"
	}
	return p
}

// WithDefaults fills empty fields of p from the defaults for goos.
func (p Product) WithDefaults(goos string) Product {
	d := productFor(goos)
	if p.Name == "" {
		p.Name = d.Name
	}
	if p.Executable == "" {
		p.Executable = d.Executable
	}
	if p.DataDir == "" {
		p.DataDir = d.DataDir
	}
	return p
}
