package workspace

import "github.com/fgrehm/surf/internal/editor"

// Location is where a workspace lives relative to the editor.
type Location int

const (
	Local Location = iota
	RemoteSSH
	RemoteWSL
	DevContainer
	// Codespaces is recognised by the editor but no URI form maps to it yet.
	Codespaces
	Unknown
)

func (l Location) String() string {
	switch l {
	case Local:
		return "local"
	case RemoteSSH:
		return "ssh"
	case RemoteWSL:
		return "wsl"
	case DevContainer:
		return "dev-container"
	case Codespaces:
		return "codespaces"
	default:
		return "unknown"
	}
}

// Workspace is one entry of an editor's "recently opened" history.
type Workspace struct {
	// RawPath is the URI exactly as stored by the editor. It is passed back
	// to the editor on launch and identifies the workspace across instances.
	RawPath string

	// DisplayPath is the human-readable path, derived from RawPath.
	DisplayPath string

	// FolderName is the last element of DisplayPath.
	FolderName string

	// MachineName labels non-local workspaces, e.g. "WSL: Ubuntu".
	MachineName string

	Location Location

	// Instance is the editor installation whose history listed this entry.
	Instance editor.Instance

	// Label is a user-assigned name that overrides FolderName for display.
	Label string
}

// Title returns the label if set, otherwise the folder name.
func (w Workspace) Title() string {
	if w.Label != "" {
		return w.Label
	}
	return w.FolderName
}

// Subtitle returns "machine - path" for remote workspaces and the bare path
// for local ones.
func (w Workspace) Subtitle() string {
	if w.MachineName != "" {
		return w.MachineName + " - " + w.DisplayPath
	}
	return w.DisplayPath
}
