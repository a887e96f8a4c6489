package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fgrehm/surf/internal/editor"
	"github.com/fgrehm/surf/internal/remote"
	"github.com/fgrehm/surf/internal/workspace"
	"golang.org/x/sync/errgroup"
)

// Locator discovers editor instances.
type Locator interface {
	Locate() []editor.Instance
}

// WorkspaceSource reads the recent workspaces of one instance.
type WorkspaceSource interface {
	Read(ctx context.Context, inst editor.Instance) []workspace.Workspace
}

// HostSource reads the SSH hosts of one instance.
type HostSource interface {
	Read(ctx context.Context, inst editor.Instance) []remote.Host
}

// State describes what a load gathered.
type State int

const (
	// StateUnloaded means EnsureLoaded has not run yet.
	StateUnloaded State = iota
	// StateEmpty means loading finished and found nothing.
	StateEmpty
	// StatePartial means a fetch failed and results may be incomplete.
	StatePartial
	// StateFull means every fetch completed.
	StateFull
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePartial:
		return "partial"
	case StateFull:
		return "full"
	default:
		return "unloaded"
	}
}

// Catalog aggregates workspaces and hosts from every discovered instance.
// It loads once and is never refreshed.
type Catalog struct {
	locator    Locator
	workspaces WorkspaceSource
	hosts      HostSource
	logger     *slog.Logger

	mu            sync.Mutex
	state         State
	instances     []editor.Instance
	workspaceList []workspace.Workspace
	hostList      []remote.Host
}

// New creates an unloaded Catalog.
func New(locator Locator, workspaces WorkspaceSource, hosts HostSource, logger *slog.Logger) *Catalog {
	return &Catalog{
		locator:    locator,
		workspaces: workspaces,
		hosts:      hosts,
		logger:     logger,
	}
}

// EnsureLoaded populates the catalog on first use and returns its state.
// Later calls return immediately. Failures degrade to partial results and
// are never retried.
func (c *Catalog) EnsureLoaded(ctx context.Context) State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUnloaded {
		return c.state
	}
	c.state = c.load(ctx)
	c.logger.Debug("catalog loaded",
		"state", c.state,
		"instances", len(c.instances),
		"workspaces", len(c.workspaceList),
		"hosts", len(c.hostList),
	)
	return c.state
}

func (c *Catalog) load(ctx context.Context) (state State) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("loading catalog failed", "error", r)
			state = StatePartial
		}
	}()

	c.instances = c.locator.Locate()
	if len(c.instances) == 0 {
		return StateEmpty
	}

	// One slot per instance keeps results in discovery order.
	wsSlots := make([][]workspace.Workspace, len(c.instances))
	hostSlots := make([][]remote.Host, len(c.instances))

	// A plain Group: one failed fetch must not cancel the others.
	var g errgroup.Group
	for i, inst := range c.instances {
		g.Go(guard("workspace history", inst, func() {
			wsSlots[i] = c.workspaces.Read(ctx, inst)
		}))
		g.Go(guard("ssh hosts", inst, func() {
			hostSlots[i] = c.hosts.Read(ctx, inst)
		}))
	}
	err := g.Wait()

	c.workspaceList = dedupe(wsSlots, func(w workspace.Workspace) string { return w.RawPath })
	c.hostList = dedupe(hostSlots, func(h remote.Host) string { return h.Host })

	switch {
	case err != nil:
		c.logger.Warn("loading catalog failed", "error", err)
		return StatePartial
	case len(c.workspaceList) == 0 && len(c.hostList) == 0:
		return StateEmpty
	default:
		return StateFull
	}
}

// guard turns a panic in fn into an error for the errgroup.
func guard(what string, inst editor.Instance, fn func()) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("reading %s for %s: %v", what, inst.ExecutablePath, r)
			}
		}()
		fn()
		return nil
	}
}

// dedupe flattens slots, keeping the first item for each key.
func dedupe[T any](slots [][]T, key func(T) string) []T {
	var out []T
	seen := make(map[string]bool)
	for _, slot := range slots {
		for _, item := range slot {
			k := key(item)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, item)
		}
	}
	return out
}

// Instances returns the discovered instances in discovery order.
func (c *Catalog) Instances() []editor.Instance {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.instances
}

// Workspaces returns the deduplicated workspaces.
func (c *Catalog) Workspaces() []workspace.Workspace {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.workspaceList
}

// Hosts returns the deduplicated SSH hosts.
func (c *Catalog) Hosts() []remote.Host {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hostList
}

// State returns the current load state.
func (c *Catalog) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
