package launcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/henri123lemoine/geokit/internal/debug"
)

// cacheDir is overridden in tests.
var cacheDir = func() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "geokit")
}

// getCachePath returns the cache file path for a launcher root.
func getCachePath(root string) string {
	// Hash the root so different base dirs never share a file.
	sum := sha256.Sum256([]byte(root))
	return filepath.Join(cacheDir(), "launcher-"+hex.EncodeToString(sum[:8])+".json")
}

// LoadCache attempts to load a cached index for root.
// Returns nil if the cache doesn't exist or is for a different root.
func LoadCache(root string) *Index {
	path := getCachePath(root)

	// Acquire shared (read) lock - blocks if exclusive lock is held
	fileLock := flock.New(path + ".lock")
	if err := fileLock.RLock(); err != nil {
		return nil
	}
	defer fileLock.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil
	}

	if idx.Root != root {
		return nil
	}

	return &idx
}

// SaveCache saves an index to the cache.
func SaveCache(idx *Index) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}

	path := getCachePath(idx.Root)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	// Acquire exclusive lock - blocks until lock is available
	fileLock := flock.New(path + ".lock")
	if err := fileLock.Lock(); err != nil {
		return err
	}
	defer fileLock.Unlock()

	// Write atomically: write to temp file then rename
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}

// ScanAndCache scans root and saves the fresh index to the cache.
// Cache write failures are logged, not returned.
func ScanAndCache(ctx context.Context, root string) (*Index, error) {
	idx, err := Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	if err := SaveCache(idx); err != nil {
		debug.Log("launcher: save cache: %v", err)
	}
	return idx, nil
}
