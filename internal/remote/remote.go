package remote

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fgrehm/surf/internal/config"
	"github.com/fgrehm/surf/internal/editor"
	"github.com/kevinburke/ssh_config"
)

// Host is one named SSH target from a Host block.
type Host struct {
	// Host is the alias from the Host line. It identifies the host.
	Host string

	// HostName is the resolved address, if any block sets one.
	HostName string

	// User is the resolved login user, if any block sets one.
	User string
}

// Subtitle returns "user@hostname" when both are known.
func (h Host) Subtitle() string {
	if h.User != "" && h.HostName != "" {
		return h.User + "@" + h.HostName
	}
	return "SSH Remote Machine"
}

// Reader reads the SSH hosts an editor instance is configured with.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read returns the hosts from the SSH config file referenced by inst's
// settings. Missing or malformed files yield no hosts; failures are logged,
// never returned.
func (r *Reader) Read(_ context.Context, inst editor.Instance) []Host {
	settingsPath := inst.SettingsPath()
	if _, err := os.Stat(settingsPath); err != nil {
		r.logger.Debug("no settings file", "path", settingsPath, "error", err)
		return nil
	}

	settings, err := config.ReadSettings(settingsPath)
	if err != nil {
		r.logger.Warn("could not read editor settings", "error", err)
		return nil
	}
	if settings.SSHConfigFile == "" {
		return nil
	}
	if _, err := os.Stat(settings.SSHConfigFile); err != nil {
		r.logger.Debug("ssh config file not found", "path", settings.SSHConfigFile, "error", err)
		return nil
	}

	hosts, err := ReadSSHConfig(settings.SSHConfigFile)
	if err != nil {
		r.logger.Warn("could not read ssh config", "error", err)
		return nil
	}
	return hosts
}

// ReadSSHConfig parses the SSH config at path. Match sections are skipped,
// since the parser rejects them and they never name a host alias.
func ReadSSHConfig(path string) ([]Host, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(withoutMatchBlocks(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return hostsFrom(cfg)
}

// hostsFrom returns one Host per Host block, keyed by the block's first
// pattern. Catch-all blocks are skipped; HostName and User are resolved the
// way ssh would, so values inherited from wildcard blocks are included.
func hostsFrom(cfg *ssh_config.Config) ([]Host, error) {
	var hosts []Host
	seen := make(map[string]bool)
	for _, block := range cfg.Hosts {
		if len(block.Patterns) == 0 {
			continue
		}
		alias := block.Patterns[0].String()
		if alias == "*" || seen[alias] {
			continue
		}
		seen[alias] = true

		hostName, err := cfg.Get(alias, "HostName")
		if err != nil {
			return nil, fmt.Errorf("resolving HostName for %s: %w", alias, err)
		}
		user, err := cfg.Get(alias, "User")
		if err != nil {
			return nil, fmt.Errorf("resolving User for %s: %w", alias, err)
		}
		hosts = append(hosts, Host{Host: alias, HostName: hostName, User: user})
	}
	return hosts, nil
}

// withoutMatchBlocks drops every Match line and the directives under it, up
// to the next Host line.
func withoutMatchBlocks(data []byte) []byte {
	var out bytes.Buffer
	inMatch := false
	for _, line := range bytes.SplitAfter(data, []byte("\n")) {
		switch strings.ToLower(keyword(line)) {
		case "match":
			inMatch = true
			continue
		case "host":
			inMatch = false
		}
		if !inMatch {
			out.Write(line)
		}
	}
	return out.Bytes()
}

// keyword returns the directive name of an ssh_config line. Keywords end at
// whitespace or "=".
func keyword(line []byte) string {
	trimmed := strings.TrimLeft(string(line), " \t")
	if end := strings.IndexAny(trimmed, " \t=\r\n"); end >= 0 {
		return trimmed[:end]
	}
	return trimmed
}
