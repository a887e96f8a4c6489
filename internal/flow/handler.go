package flow

import (
	"context"
	"strings"

	"github.com/fgrehm/surf/internal/catalog"
	"github.com/fgrehm/surf/internal/remote"
	"github.com/fgrehm/surf/internal/workspace"
)

const (
	noResultsTitle   = "No workspaces found"
	tryAgainSubtitle = "Try a different search query"
)

// Handler answers launcher queries from a Catalog.
type Handler struct {
	catalog *catalog.Catalog
	product string
	icon    string
}

// NewHandler creates a Handler. product is the editor name used in
// messages and icon the IcoPath attached to every result.
func NewHandler(c *catalog.Catalog, product, icon string) *Handler {
	return &Handler{catalog: c, product: product, icon: icon}
}

// Query returns the workspaces and hosts matching q, a case-insensitive
// substring. An empty q matches everything. When nothing matches, a single
// placeholder result explains why.
func (h *Handler) Query(ctx context.Context, q string) []Result {
	h.catalog.EnsureLoaded(ctx)
	needle := strings.ToLower(q)

	var results []Result
	for _, ws := range h.catalog.Workspaces() {
		if !matchesWorkspace(ws, needle) {
			continue
		}
		results = append(results, Result{
			Title:    ws.Title(),
			Subtitle: ws.Subtitle(),
			JsonRPCAction: &Action{
				Method:     MethodOpenWorkspace,
				Parameters: []string{ws.Instance.ExecutablePath, ws.RawPath},
			},
			IcoPath: h.icon,
		})
	}

	// Hosts open in the first instance; without one they cannot be used.
	if instances := h.catalog.Instances(); len(instances) > 0 {
		exe := instances[0].ExecutablePath
		for _, host := range h.catalog.Hosts() {
			if !matchesHost(host, needle) {
				continue
			}
			results = append(results, Result{
				Title:    host.Host,
				Subtitle: host.Subtitle(),
				JsonRPCAction: &Action{
					Method:     MethodOpenRemote,
					Parameters: []string{exe, host.Host},
				},
				IcoPath: h.icon,
			})
		}
	}

	if len(results) == 0 {
		results = append(results, h.placeholder())
	}
	return results
}

func (h *Handler) placeholder() Result {
	subtitle := tryAgainSubtitle
	if len(h.catalog.Workspaces()) == 0 {
		subtitle = "No recent " + h.product + " workspaces detected"
	}
	return Result{
		Title:    noResultsTitle,
		Subtitle: subtitle,
		IcoPath:  h.icon,
	}
}

func matchesWorkspace(ws workspace.Workspace, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ws.FolderName), needle) ||
		strings.Contains(strings.ToLower(ws.DisplayPath), needle) ||
		strings.Contains(strings.ToLower(ws.Label), needle)
}

func matchesHost(host remote.Host, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(host.Host), needle)
}
