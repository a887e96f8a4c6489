package editor

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Env is the slice of the process environment the Locator reads.
// Tests replace it to run discovery against a temp directory.
type Env struct {
	GOOS          string
	Getenv        func(string) string
	UserConfigDir func() (string, error)
	UserHomeDir   func() (string, error)
}

// OSEnv returns the Env of the running process.
func OSEnv() Env {
	return Env{
		GOOS:          runtime.GOOS,
		Getenv:        os.Getenv,
		UserConfigDir: os.UserConfigDir,
		UserHomeDir:   os.UserHomeDir,
	}
}

// Locator discovers installed editor instances.
type Locator struct {
	product Product
	env     Env
	logger  *slog.Logger
}

// NewLocator creates a Locator for product using env.
func NewLocator(product Product, env Env, logger *slog.Logger) *Locator {
	return &Locator{
		product: product.WithDefaults(env.GOOS),
		env:     env,
		logger:  logger,
	}
}

// Product returns the product this Locator searches for.
func (l *Locator) Product() Product {
	return l.product
}

// Locate returns the discovered instances, deduplicated by executable path.
// Strategies are tried in order until one yields results:
//  1. PATH entries mentioning the product name
//  2. configured and conventional install directories
//  3. one fallback install directory
//  4. every PATH entry
//
// Discovery is best-effort: unreadable candidates are skipped and an
// undetermined user config root yields no instances.
func (l *Locator) Locate() []Instance {
	root, err := l.env.UserConfigDir()
	if err != nil || root == "" {
		l.logger.Debug("user config dir not available", "error", err)
		return nil
	}
	dataPath := filepath.Join(root, l.product.DataDir)
	pathDirs := filepath.SplitList(l.env.Getenv("PATH"))

	strategies := []struct {
		name string
		run  func() []Instance
	}{
		{"path-match", func() []Instance { return l.fromNamedPathDirs(pathDirs, dataPath) }},
		{"install-dirs", func() []Instance { return l.firstOf(l.installDirs(), dataPath) }},
		{"fallback-dir", func() []Instance { return l.firstOf(l.fallbackDirs(), dataPath) }},
		{"path-scan", func() []Instance { return l.firstOf(pathDirs, dataPath) }},
	}
	for _, s := range strategies {
		if found := s.run(); len(found) > 0 {
			l.logger.Debug("located editor instances", "strategy", s.name, "count", len(found))
			return found
		}
	}
	l.logger.Debug("no editor instances found", "product", l.product.Name)
	return nil
}

// fromNamedPathDirs accepts every PATH entry whose text contains the product
// name and which holds the executable.
func (l *Locator) fromNamedPathDirs(dirs []string, dataPath string) []Instance {
	marker := strings.ToLower(l.product.Name)
	var found []Instance
	seen := make(map[string]bool)
	for _, dir := range dirs {
		if !strings.Contains(strings.ToLower(dir), marker) {
			continue
		}
		inst, ok := l.candidate(dir, dataPath)
		if !ok || seen[inst.ExecutablePath] {
			continue
		}
		seen[inst.ExecutablePath] = true
		found = append(found, inst)
	}
	return found
}

// firstOf returns the first directory in dirs that holds a valid instance.
func (l *Locator) firstOf(dirs []string, dataPath string) []Instance {
	for _, dir := range dirs {
		if inst, ok := l.candidate(dir, dataPath); ok {
			return []Instance{inst}
		}
	}
	return nil
}

func (l *Locator) candidate(dir, dataPath string) (Instance, bool) {
	if dir == "" {
		return Instance{}, false
	}
	exe := filepath.Join(dir, l.product.Executable)
	if !fileExists(exe) || !dirExists(dataPath) {
		return Instance{}, false
	}
	return Instance{ExecutablePath: exe, DataPath: dataPath}, true
}

// installDirs returns the configured install paths followed by the
// conventional locations for the OS.
func (l *Locator) installDirs() []string {
	dirs := append([]string(nil), l.product.InstallPaths...)
	name := l.product.Name
	lower := strings.ToLower(name)

	switch l.env.GOOS {
	case "windows":
		for _, key := range []string{"LOCALAPPDATA", "PROGRAMFILES", "PROGRAMFILES(X86)"} {
			base := l.env.Getenv(key)
			if base == "" {
				continue
			}
			if key == "LOCALAPPDATA" {
				base = filepath.Join(base, "Programs")
			}
			dirs = append(dirs, filepath.Join(base, name))
		}
	case "darwin":
		dirs = append(dirs, filepath.Join("/Applications", name+".app", "Contents", "Resources", "app", "bin"))
		if home := l.home(); home != "" {
			dirs = append(dirs, filepath.Join(home, "Applications", name+".app", "Contents", "Resources", "app", "bin"))
		}
	default:
		dirs = append(dirs,
			filepath.Join("/usr/share", lower, "bin"),
			filepath.Join("/opt", name, "bin"),
		)
		if home := l.home(); home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", lower, "bin"))
		}
	}
	return dirs
}

func (l *Locator) fallbackDirs() []string {
	if l.env.GOOS == "windows" {
		if base := l.env.Getenv("LOCALAPPDATA"); base != "" {
			return []string{filepath.Join(base, "Programs", l.product.Name)}
		}
		return nil
	}
	if home := l.home(); home != "" {
		return []string{filepath.Join(home, ".local", "bin")}
	}
	return nil
}

func (l *Locator) home() string {
	if l.env.UserHomeDir == nil {
		return ""
	}
	home, err := l.env.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
