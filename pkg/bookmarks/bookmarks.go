// Package bookmarks maintains keyword search bookmarks in the
// profile's places.sqlite database. Each configured search engine
// becomes a bookmark in the Other Bookmarks folder with an attached
// keyword, the same structure the browser builds for "add a keyword
// for this search".
package bookmarks

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/zen-tools/zenctl/pkg/config"
	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

// otherBookmarksFolderID is the fixed row id of the Other Bookmarks
// folder in the places schema.
const otherBookmarksFolderID = 4

// placesFile is the bookmark database inside a profile directory.
const placesFile = "places.sqlite"

// Apply upserts one keyword bookmark per configured search engine.
// A missing database is not an error: the browser creates it on first
// launch, and the caller reruns then. Engines without a keyword or URL
// are skipped.
func Apply(ctx context.Context, profileDir string, engines []config.SearchEngine, dryRun bool) error {
	if len(engines) == 0 {
		return nil
	}

	dbPath := filepath.Join(profileDir, placesFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		slog.Warn("places.sqlite does not exist yet; search keywords will be added after the first browser launch")
		return nil
	}

	if dryRun {
		for _, e := range engines {
			if e.Keyword == "" || e.URL == "" {
				continue
			}
			slog.Info("dry-run: would upsert search keyword", "keyword", e.Keyword, "url", e.URL)
		}
		return nil
	}

	conn, err := sqlite.OpenConn(dbPath, sqlite.OpenReadWrite)
	if err != nil {
		return zenerrors.Wrap(zenerrors.ErrCodeUnavailable, "opening places.sqlite", err)
	}
	defer conn.Close()
	conn.SetInterrupt(ctx.Done())

	if err := sqlitex.ExecuteTransient(conn, "PRAGMA busy_timeout=5000", nil); err != nil {
		return zenerrors.Wrap(zenerrors.ErrCodeUnavailable, "configuring places.sqlite", err)
	}

	count := 0
	for _, engine := range engines {
		if engine.Keyword == "" || engine.URL == "" {
			continue
		}
		if err := upsert(conn, engine); err != nil {
			return zenerrors.Wrap(zenerrors.ErrCodeUnavailable,
				fmt.Sprintf("search keyword %q", engine.Keyword), err)
		}
		count++
	}

	slog.Info("search keywords applied", "count", count)
	return nil
}

func upsert(conn *sqlite.Conn, engine config.SearchEngine) (err error) {
	defer sqlitex.Save(conn)(&err)

	name := engine.Name
	if name == "" {
		name = engine.Keyword
	}

	var placeID int64
	found := false
	err = sqlitex.Execute(conn, "SELECT place_id FROM moz_keywords WHERE keyword = ?", &sqlitex.ExecOptions{
		Args: []any{engine.Keyword},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			placeID = stmt.ColumnInt64(0)
			found = true
			return nil
		},
	})
	if err != nil {
		return err
	}

	if found {
		slog.Debug("updating search keyword", "keyword", engine.Keyword)
		return sqlitex.Execute(conn, "UPDATE moz_places SET url = ?, title = ? WHERE id = ?", &sqlitex.ExecOptions{
			Args: []any{engine.URL, name, placeID},
		})
	}

	slog.Debug("creating search keyword", "keyword", engine.Keyword)

	err = sqlitex.Execute(conn,
		`INSERT INTO moz_places (url, title, rev_host, visit_count, hidden, typed, frecency, guid)
		 VALUES (?, ?, '', 0, 0, 0, -1, ?)`, &sqlitex.ExecOptions{
			Args: []any{engine.URL, name, newGUID()},
		})
	if err != nil {
		return err
	}
	placeID = conn.LastInsertRowID()

	now := time.Now().UnixMicro()
	err = sqlitex.Execute(conn,
		`INSERT INTO moz_bookmarks (type, fk, parent, position, title, dateAdded, lastModified, guid)
		 VALUES (1, ?, ?,
		         (SELECT IFNULL(MAX(position), 0) + 1 FROM moz_bookmarks WHERE parent = ?),
		         ?, ?, ?, ?)`, &sqlitex.ExecOptions{
			Args: []any{placeID, otherBookmarksFolderID, otherBookmarksFolderID, name, now, now, newGUID()},
		})
	if err != nil {
		return err
	}

	return sqlitex.Execute(conn,
		"INSERT INTO moz_keywords (keyword, place_id, post_data) VALUES (?, ?, NULL)", &sqlitex.ExecOptions{
			Args: []any{engine.Keyword, placeID},
		})
}

// newGUID returns a places-style GUID: 12 base64url characters from
// 9 random bytes.
func newGUID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:9])
}
