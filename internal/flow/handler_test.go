package flow

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/fgrehm/surf/internal/catalog"
	"github.com/fgrehm/surf/internal/editor"
	"github.com/fgrehm/surf/internal/remote"
	"github.com/fgrehm/surf/internal/workspace"
)

type staticLocator []editor.Instance

func (s staticLocator) Locate() []editor.Instance { return s }

type staticWorkspaces []workspace.Workspace

func (s staticWorkspaces) Read(context.Context, editor.Instance) []workspace.Workspace { return s }

type staticHosts []remote.Host

func (s staticHosts) Read(context.Context, editor.Instance) []remote.Host { return s }

var inst = editor.Instance{ExecutablePath: `C:\Windsurf\Windsurf.exe`, DataPath: `C:\Users\a\AppData\Roaming\Windsurf`}

func newHandler(instances []editor.Instance, ws []workspace.Workspace, hosts []remote.Host) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := catalog.New(staticLocator(instances), staticWorkspaces(ws), staticHosts(hosts), logger)
	return NewHandler(c, "Windsurf", "icon.png")
}

func fixture() *Handler {
	return newHandler(
		[]editor.Instance{inst},
		[]workspace.Workspace{
			{RawPath: "file:///C:/src/myproj", DisplayPath: `C:\src\myproj`, FolderName: "myproj", Instance: inst},
			{RawPath: "vscode-remote://ssh-remote+box/srv/api", DisplayPath: "/srv/api", FolderName: "api", MachineName: "box", Location: workspace.RemoteSSH, Instance: inst},
			{RawPath: "file:///C:/src/x", DisplayPath: `C:\src\x`, FolderName: "x", Label: "Billing Service", Instance: inst},
		},
		[]remote.Host{
			{Host: "web", HostName: "10.0.0.1", User: "deploy"},
			{Host: "Staging-DB"},
		},
	)
}

func titles(results []Result) []string {
	var out []string
	for _, r := range results {
		out = append(out, r.Title)
	}
	return out
}

func TestQuery_EmptyReturnsEverything(t *testing.T) {
	got := fixture().Query(context.Background(), "")

	want := []string{"myproj", "api", "Billing Service", "web", "Staging-DB"}
	if strings.Join(titles(got), ",") != strings.Join(want, ",") {
		t.Errorf("titles = %v, want %v", titles(got), want)
	}
}

func TestQuery_CaseInsensitiveSubstring(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"folder name", "PROJ", []string{"myproj"}},
		{"display path", `c:\src`, []string{"myproj", "Billing Service"}},
		{"label", "billing", []string{"Billing Service"}},
		{"host", "staging", []string{"Staging-DB"}},
		{"remote path", "/srv", []string{"api"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fixture().Query(context.Background(), tt.query)
			if strings.Join(titles(got), ",") != strings.Join(tt.want, ",") {
				t.Errorf("Query(%q) titles = %v, want %v", tt.query, titles(got), tt.want)
			}
		})
	}
}

func TestQuery_WorkspaceResult(t *testing.T) {
	got := fixture().Query(context.Background(), "api")
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}

	r := got[0]
	if r.Subtitle != "box - /srv/api" {
		t.Errorf("Subtitle = %q, want %q", r.Subtitle, "box - /srv/api")
	}
	if r.IcoPath != "icon.png" {
		t.Errorf("IcoPath = %q, want %q", r.IcoPath, "icon.png")
	}
	if r.JsonRPCAction == nil {
		t.Fatal("expected an action")
	}
	if r.JsonRPCAction.Method != MethodOpenWorkspace {
		t.Errorf("Method = %q, want %q", r.JsonRPCAction.Method, MethodOpenWorkspace)
	}
	wantParams := []string{inst.ExecutablePath, "vscode-remote://ssh-remote+box/srv/api"}
	if strings.Join(r.JsonRPCAction.Parameters, "|") != strings.Join(wantParams, "|") {
		t.Errorf("Parameters = %v, want %v", r.JsonRPCAction.Parameters, wantParams)
	}
}

func TestQuery_HostResult(t *testing.T) {
	got := fixture().Query(context.Background(), "web")
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}

	r := got[0]
	if r.Subtitle != "deploy@10.0.0.1" {
		t.Errorf("Subtitle = %q, want %q", r.Subtitle, "deploy@10.0.0.1")
	}
	if r.JsonRPCAction == nil || r.JsonRPCAction.Method != MethodOpenRemote {
		t.Fatalf("action = %+v, want %s", r.JsonRPCAction, MethodOpenRemote)
	}
	wantParams := []string{inst.ExecutablePath, "web"}
	if strings.Join(r.JsonRPCAction.Parameters, "|") != strings.Join(wantParams, "|") {
		t.Errorf("Parameters = %v, want %v", r.JsonRPCAction.Parameters, wantParams)
	}
}

func TestQuery_NoInstances(t *testing.T) {
	h := newHandler(nil, nil, nil)

	for _, q := range []string{"", "anything"} {
		got := h.Query(context.Background(), q)
		if len(got) != 1 {
			t.Fatalf("Query(%q): expected 1 placeholder, got %d", q, len(got))
		}
		if got[0].Title != "No workspaces found" {
			t.Errorf("Title = %q, want %q", got[0].Title, "No workspaces found")
		}
		if got[0].Subtitle != "No recent Windsurf workspaces detected" {
			t.Errorf("Subtitle = %q, want no-workspaces message", got[0].Subtitle)
		}
		if got[0].JsonRPCAction != nil {
			t.Error("placeholder should carry no action")
		}
	}
}

func TestQuery_NoMatch(t *testing.T) {
	got := fixture().Query(context.Background(), "zzz-nothing")
	if len(got) != 1 {
		t.Fatalf("expected 1 placeholder, got %d", len(got))
	}
	if got[0].Subtitle != "Try a different search query" {
		t.Errorf("Subtitle = %q, want %q", got[0].Subtitle, "Try a different search query")
	}
}

func TestQuery_HostsNeedAnInstance(t *testing.T) {
	// Hosts cannot surface without an instance, since the catalog skips
	// fetching entirely when discovery finds nothing.
	h := newHandler(nil, nil, []remote.Host{{Host: "web"}})

	got := h.Query(context.Background(), "web")
	if len(got) != 1 || got[0].JsonRPCAction != nil {
		t.Errorf("expected only the placeholder, got %+v", got)
	}
}

func TestResponseJSON(t *testing.T) {
	resp := Response{Result: []Result{
		{Title: "proj", Subtitle: `C:\proj`, IcoPath: "icon.png", JsonRPCAction: &Action{
			Method:     MethodOpenWorkspace,
			Parameters: []string{"exe", "file:///C:/proj"},
		}},
		{Title: "No workspaces found", Subtitle: "Try a different search query", IcoPath: "icon.png"},
	}}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	for _, want := range []string{
		`"result":[`,
		`"Title":"proj"`,
		`"JsonRPCAction":{"method":"open_workspace","parameters":["exe","file:///C:/proj"],"dontHideAfterAction":false}`,
		`"IcoPath":"icon.png"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON %s\nmissing %s", got, want)
		}
	}
	if strings.Count(got, "JsonRPCAction") != 1 {
		t.Errorf("placeholder should omit JsonRPCAction: %s", got)
	}
}
