package ui

import (
	"runtime"
	"strconv"

	"github.com/fgrehm/surf/internal/catalog"
	"github.com/fgrehm/surf/internal/flow"
)

// Results prints query results as a TITLE/SUBTITLE/ACTION table. The
// "nothing found" placeholder, a lone result without an action, is printed
// faint on one line instead.
func (u *UI) Results(results []flow.Result) {
	if len(results) == 1 && results[0].JsonRPCAction == nil {
		u.Dim(results[0].Title + ": " + results[0].Subtitle)
		return
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		action := ""
		if r.JsonRPCAction != nil {
			action = u.paint(u.styles.method, r.JsonRPCAction.Method)
		}
		rows = append(rows, []string{r.Title, r.Subtitle, action})
	}
	u.Table([]string{"TITLE", "SUBTITLE", "ACTION"}, rows)
}

// Instances prints the installations c discovered for product, how many
// workspaces each contributed, and the catalog totals. c should already be
// loaded.
func (u *UI) Instances(product string, c *catalog.Catalog) {
	instances := c.Instances()
	if len(instances) == 0 {
		u.Dim("No " + product + " instances found")
		return
	}

	perInstance := make(map[string]int)
	for _, ws := range c.Workspaces() {
		perInstance[ws.Instance.ExecutablePath]++
	}

	u.Header(product + " instances")
	rows := make([][]string, 0, len(instances))
	for _, inst := range instances {
		rows = append(rows, []string{
			inst.ExecutablePath,
			inst.DataPath,
			strconv.Itoa(perInstance[inst.ExecutablePath]),
		})
	}
	u.Table([]string{"EXECUTABLE", "DATA", "WORKSPACES"}, rows)

	u.Keyval("workspaces", strconv.Itoa(len(c.Workspaces())))
	u.Keyval("hosts", strconv.Itoa(len(c.Hosts())))
	u.Keyval("state", u.StateColor(c.State()))
}

// Version prints the version line followed by build details.
func (u *UI) Version(line, commit, built string) {
	u.println(line)
	u.Keyval("commit", commit)
	u.Keyval("built", built)
	u.Keyval("go", runtime.Version())
}
