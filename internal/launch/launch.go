package launch

import (
	"fmt"
	"log/slog"
	"os/exec"
)

// Launcher starts the editor on a chosen target without waiting for it.
type Launcher struct {
	logger *slog.Logger
	start  func(name string, args ...string) error
}

// New creates a Launcher that spawns detached processes.
func New(logger *slog.Logger) *Launcher {
	return &Launcher{logger: logger, start: startDetached}
}

// WorkspaceArgs returns the editor arguments that open rawPath.
func WorkspaceArgs(rawPath string) []string {
	return []string{"--folder-uri", rawPath}
}

// RemoteArgs returns the editor arguments that connect a new window to host.
func RemoteArgs(host string) []string {
	return []string{"--new-window", "--remote", "ssh-remote+" + host}
}

// OpenWorkspace launches exe on the workspace URI rawPath.
func (l *Launcher) OpenWorkspace(exe, rawPath string) {
	l.spawn("workspace", exe, WorkspaceArgs(rawPath))
}

// OpenRemote launches exe connected to the SSH host alias.
func (l *Launcher) OpenRemote(exe, host string) {
	l.spawn("remote", exe, RemoteArgs(host))
}

// spawn starts exe and logs, rather than returns, any failure.
func (l *Launcher) spawn(kind, exe string, args []string) {
	l.logger.Debug("launching editor", "kind", kind, "exe", exe, "args", args)
	if err := l.start(exe, args...); err != nil {
		l.logger.Error("failed to open "+kind, "exe", exe, "error", err)
	}
}

// startDetached starts name in its own session with stdio on the null device
// and releases it so the caller can exit immediately.
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = detachedAttr()
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("releasing %s: %w", name, err)
	}
	return nil
}
