package workspace

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fgrehm/surf/internal/editor"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// RecentlyOpenedKey is the ItemTable key holding the editor's history.
const RecentlyOpenedKey = "history.recentlyOpenedPathsList"

const recentlyOpenedQuery = `SELECT value FROM ItemTable WHERE key = ?`

// history mirrors the JSON document stored under RecentlyOpenedKey.
type history struct {
	Entries []historyEntry `json:"entries"`
}

type historyEntry struct {
	FolderURI string `json:"folderUri"`
	Label     string `json:"label"`
	Workspace *struct {
		ConfigPath string `json:"configPath"`
	} `json:"workspace"`
}

func (e historyEntry) uri() string {
	if e.FolderURI != "" {
		return e.FolderURI
	}
	if e.Workspace != nil {
		return e.Workspace.ConfigPath
	}
	return ""
}

// HistoryReader reads recent workspaces from an instance's state database.
type HistoryReader struct {
	normalizer Normalizer
	logger     *slog.Logger
}

// NewHistoryReader creates a HistoryReader that displays paths in style.
func NewHistoryReader(style Style, logger *slog.Logger) *HistoryReader {
	return &HistoryReader{
		normalizer: Normalizer{Style: style},
		logger:     logger,
	}
}

// Read returns the recent workspaces of inst. A missing or unreadable store
// yields no workspaces; failures are logged, never returned.
func (r *HistoryReader) Read(ctx context.Context, inst editor.Instance) []Workspace {
	dbPath := inst.HistoryPath()
	if _, err := os.Stat(dbPath); err != nil {
		r.logger.Debug("no history store", "path", dbPath, "error", err)
		return nil
	}

	raw, err := loadRecentlyOpened(ctx, dbPath)
	if err != nil {
		r.logger.Warn("could not read workspace history", "path", dbPath, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}

	workspaces, err := r.parse(raw, inst)
	if err != nil {
		r.logger.Warn("could not parse workspace history", "path", dbPath, "error", err)
		return nil
	}
	return workspaces
}

func (r *HistoryReader) parse(raw []byte, inst editor.Instance) ([]Workspace, error) {
	var h history
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("unmarshaling history: %w", err)
	}

	var workspaces []Workspace
	for _, entry := range h.Entries {
		uri := entry.uri()
		if uri == "" {
			continue
		}
		ws, ok := r.normalizer.ParseURI(uri)
		if !ok {
			r.logger.Debug("skipping unrecognised history entry", "uri", uri)
			continue
		}
		ws.Label = entry.Label
		ws.Instance = inst
		workspaces = append(workspaces, ws)
	}
	return workspaces, nil
}

// loadRecentlyOpened fetches the raw history value, or nil if the key is
// absent. The database is opened read-only and closed before returning.
func loadRecentlyOpened(ctx context.Context, dbPath string) (value []byte, err error) {
	db, err := sqlx.Open("sqlite", readOnlyDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dbPath, cerr)
		}
	}()

	if err := db.GetContext(ctx, &value, recentlyOpenedQuery, RecentlyOpenedKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying %s: %w", RecentlyOpenedKey, err)
	}
	return value, nil
}

// readOnlyDSN builds a SQLite URI filename that opens path read-only.
func readOnlyDSN(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths become file:///C:/...
		p = "/" + p
	}
	u := url.URL{Path: p}
	return "file://" + u.EscapedPath() + "?mode=ro"
}
