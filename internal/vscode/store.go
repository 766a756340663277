package vscode

import (
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"gni.dev/bpmagick/internal/dbg"
)

// BreakpointKey is the ItemTable key under which VS Code keeps the
// workspace breakpoints as a JSON list.
const BreakpointKey = "debug.breakpoint"

const breakpointQuery = "SELECT value FROM ItemTable WHERE key = ?"

// Load reads the breakpoints of every store, in order.
func Load(stores []string) ([]dbg.Breakpoint, error) {
	var bps []dbg.Breakpoint
	for _, store := range stores {
		records, err := readStore(store)
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			b, err := Decode(store, rec)
			if err != nil {
				return nil, err
			}
			bps = append(bps, b...)
		}
	}
	return bps, nil
}

func readStore(path string) ([][]byte, error) {
	db, err := sql.Open("sqlite", storeDSN(path))
	if err != nil {
		return nil, &ErrStoreUnavailable{Path: path, Err: err}
	}
	defer db.Close()

	rows, err := db.Query(breakpointQuery, BreakpointKey)
	if err != nil {
		return nil, &ErrStoreUnavailable{Path: path, Err: err}
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		var value []byte
		if err := rows.Scan(&value); err != nil {
			return nil, &ErrStoreUnavailable{Path: path, Err: err}
		}
		records = append(records, value)
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrStoreUnavailable{Path: path, Err: err}
	}
	return records, nil
}

// storeDSN returns a read-only SQLite URI for path. The path is escaped so
// that '#', '%' and '?' in directory names reach the file system unchanged.
func storeDSN(path string) string {
	p := filepath.ToSlash(path)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // drive letter
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String()
}

// FindStores expands the glob patterns in order. A pattern without matches
// contributes nothing.
func FindStores(globs []string) ([]string, error) {
	var stores []string
	for _, g := range globs {
		m, err := filepath.Glob(g)
		if err != nil {
			return nil, fmt.Errorf("bad store pattern %q: %v", g, err)
		}
		stores = append(stores, m...)
	}
	return stores, nil
}

// StoreGlobs returns the default location of the workspace state stores.
func StoreGlobs(goos string, getenv func(string) string) ([]string, error) {
	var root, rel string
	switch goos {
	case "windows":
		root, rel = getenv("APPDATA"), `Code\User\workspaceStorage\*\state.vscdb`
		if root == "" {
			return nil, fmt.Errorf("APPDATA is not set")
		}
		return []string{root + `\` + rel}, nil
	case "darwin":
		root, rel = getenv("HOME"), "Library/Application Support/Code/User/workspaceStorage/*/state.vscdb"
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly", "solaris", "illumos", "aix":
		root, rel = getenv("HOME"), ".config/Code/User/workspaceStorage/*/state.vscdb"
	default:
		return nil, &ErrUnsupportedPlatform{GOOS: goos}
	}
	if root == "" {
		return nil, fmt.Errorf("HOME is not set")
	}
	return []string{root + "/" + rel}, nil
}
