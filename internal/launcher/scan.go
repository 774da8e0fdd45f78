// Package launcher indexes the files under the launcher folder.
//
// The folder is walked recursively; every file whose extension is in the
// search patterns becomes an Entry keyed by its cleaned display name.
// Indexes are cached on disk so the launcher tab fills instantly at
// startup while a fresh scan runs in the background.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/henri123lemoine/geokit/internal/debug"
)

// DefaultFolderName is the launcher folder looked up under the base dir.
const DefaultFolderName = "Program Launcher"

// ErrFolderNotFound is returned when the launcher folder does not exist.
var ErrFolderNotFound = errors.New("launcher folder not found")

// SearchExtensions lists the indexed extensions in priority order. When two
// files clean to the same name, the one with the earlier extension wins.
var SearchExtensions = []string{
	".exe", ".lnk", ".bat", ".com", ".cmd",
	".txt", ".py", ".ini",
	".url", ".website",
}

// DisplayExtensions are kept in the cleaned name; all others are stripped.
var DisplayExtensions = []string{".txt", ".bat", ".ini", ".py", ".url", ".website"}

// Entry is a launchable file.
type Entry struct {
	// Name is the cleaned display name.
	Name string `json:"name"`

	// Path is the absolute file path.
	Path string `json:"path"`

	// Folder is the containing directory with a trailing separator.
	Folder string `json:"folder"`
}

// DisplayPath is the text shown as "Selected App Path" and copied by Copy.
func (e Entry) DisplayPath() string {
	return e.Folder + e.Name
}

// Ext returns the lower-case extension of the underlying file.
func (e Entry) Ext() string {
	return strings.ToLower(filepath.Ext(e.Path))
}

// Root returns the launcher folder path for a base directory.
func Root(baseDir, folderName string) string {
	if folderName == "" {
		folderName = DefaultFolderName
	}
	return filepath.Join(baseDir, folderName)
}

// CleanName derives the display name from a path relative to the root.
// It keeps the last non-blank segment, drops a ".lnk" suffix and then
// drops the extension unless it is a display extension.
func CleanName(rel string) string {
	var name string
	for _, seg := range strings.FieldsFunc(rel, isSeparator) {
		if s := strings.TrimSpace(seg); s != "" {
			name = s
		}
	}
	if name == "" {
		return ""
	}

	if strings.HasSuffix(strings.ToLower(name), ".lnk") {
		name = name[:len(name)-len(".lnk")]
	}

	if i := strings.LastIndex(name, "."); i >= 0 {
		ext := strings.ToLower(name[i:])
		if !contains(DisplayExtensions, ext) {
			name = name[:i]
		}
	}
	return name
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\' || r == filepath.Separator
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// priority returns the index of name's extension in SearchExtensions, or -1.
func priority(name string) int {
	ext := strings.ToLower(filepath.Ext(name))
	for i, e := range SearchExtensions {
		if e == ext {
			return i
		}
	}
	return -1
}

// Scan walks root and builds an index of launchable files. Hidden files
// and directories are skipped.
func Scan(ctx context.Context, root string) (*Index, error) {
	defer debug.Timed("launcher.Scan")()

	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w at %s", ErrFolderNotFound, root)
	}

	buckets := make([][]string, len(SearchExtensions))
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			debug.Log("launcher: skip %s: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if p := priority(d.Name()); p >= 0 {
			buckets[p] = append(buckets[p], path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	idx := &Index{Root: root, ScannedAt: time.Now()}
	seen := make(map[string]bool)
	for _, paths := range buckets {
		for _, path := range paths {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				continue
			}
			name := CleanName(rel)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			idx.Entries = append(idx.Entries, Entry{
				Name:   name,
				Path:   abs,
				Folder: filepath.Dir(abs) + string(filepath.Separator),
			})
		}
	}

	sort.Slice(idx.Entries, func(i, j int) bool {
		return strings.ToLower(idx.Entries[i].Name) < strings.ToLower(idx.Entries[j].Name)
	})

	debug.Log("launcher: indexed %d entries under %s", len(idx.Entries), root)
	return idx, nil
}
