package workspace

import (
	"net/url"
	"regexp"
	"runtime"
	"strings"
	"unicode/utf8"
)

// Style selects the separator used for displayed paths.
type Style int

const (
	// WindowsStyle displays paths with backslashes ("C:\src\app").
	WindowsStyle Style = iota
	// POSIXStyle keeps forward slashes and the leading root ("/src/app").
	POSIXStyle
)

// DefaultStyle returns the path style of the running OS.
func DefaultStyle() Style {
	if runtime.GOOS == "windows" {
		return WindowsStyle
	}
	return POSIXStyle
}

var (
	remoteSSHPattern    = regexp.MustCompile(`^vscode-remote://ssh-remote\+([^/]+)(/.*)$`)
	remoteWSLPattern    = regexp.MustCompile(`^vscode-remote://wsl\+([^/]+)(/.*)$`)
	devContainerPattern = regexp.MustCompile(`^vscode-remote://dev-container\+[^/]+/(.+)$`)
	localFilePattern    = regexp.MustCompile(`^file:///(.+)$`)
)

// Normalizer turns history URIs into displayable workspaces.
type Normalizer struct {
	Style Style
}

// ParseURI classifies raw and extracts its display fields. It reports false
// for URIs that are not valid percent-encoding, decode to invalid UTF-8, or
// match none of the known forms. The Instance and Label fields of the result are left empty.
func (n Normalizer) ParseURI(raw string) (Workspace, bool) {
	decoded, err := url.PathUnescape(raw)
	if err != nil || !utf8.ValidString(decoded) {
		return Workspace{}, false
	}

	if m := remoteSSHPattern.FindStringSubmatch(decoded); m != nil {
		return Workspace{
			RawPath:     raw,
			DisplayPath: m[2],
			FolderName:  baseName(m[2]),
			MachineName: m[1],
			Location:    RemoteSSH,
		}, true
	}

	if m := remoteWSLPattern.FindStringSubmatch(decoded); m != nil {
		display := n.nativeSeparators(m[2])
		return Workspace{
			RawPath:     raw,
			DisplayPath: display,
			FolderName:  baseName(display),
			MachineName: "WSL: " + m[1],
			Location:    RemoteWSL,
		}, true
	}

	if m := devContainerPattern.FindStringSubmatch(decoded); m != nil {
		return Workspace{
			RawPath:     raw,
			DisplayPath: m[1],
			FolderName:  baseName(m[1]),
			MachineName: "Dev Container",
			Location:    DevContainer,
		}, true
	}

	if m := localFilePattern.FindStringSubmatch(decoded); m != nil {
		display := n.localPath(m[1])
		folder := baseName(display)
		if folder == "" {
			folder = display
		}
		return Workspace{
			RawPath:     raw,
			DisplayPath: display,
			FolderName:  folder,
			Location:    Local,
		}, true
	}

	return Workspace{}, false
}

func (n Normalizer) nativeSeparators(p string) string {
	if n.Style == WindowsStyle {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return p
}

// localPath maps the part after "file:///" to a local path. Under POSIX the
// stripped root is restored.
func (n Normalizer) localPath(p string) string {
	if n.Style == WindowsStyle {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return "/" + p
}

// baseName returns the last element of p, splitting on either separator and
// ignoring trailing ones. It returns "" for roots such as "/" or "C:\".
func baseName(p string) string {
	p = strings.TrimRight(p, `/\`)
	if len(p) == 2 && p[1] == ':' {
		return ""
	}
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		p = p[i+1:]
	}
	return p
}
