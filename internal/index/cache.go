package index

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/skillset-labs/skillset/internal/findings"
	"github.com/skillset-labs/skillset/internal/manifest"
)

// cachedIndex holds a cached catalog along with source modification times
// used for invalidation.
type cachedIndex struct {
	Packages   []*Package       `json:"packages"`
	SourceMods map[string]int64 `json:"source_mods"` // source name -> mtime unix
	CachedAt   time.Time        `json:"cached_at"`
}

// BuildCached returns the catalog, using a cache file when available and
// still valid. If the cache is stale or missing, it rebuilds from sources
// and writes a new cache file. Cached catalogs carry no findings; a tree
// that produced findings is never cached.
func BuildCached(sources []Source, opts BuildOptions, cachePath string) (*Index, []*findings.Finding) {
	cached, err := loadCache(cachePath)
	if err == nil && isCacheValid(cached, sources) {
		return fromPackages(cached.Packages), nil
	}

	idx, collected := Build(sources, opts)

	// Write cache (best effort — discovery still works without caching).
	if len(collected) == 0 {
		writeCache(cachePath, idx.All(), sources)
	}

	return idx, collected
}

// loadCache reads and parses the cache file.
func loadCache(path string) (*cachedIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cached cachedIndex
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

// isCacheValid checks whether the cached source mtimes still match the
// current directory mtimes. Any change (or missing source) invalidates.
func isCacheValid(cached *cachedIndex, sources []Source) bool {
	if cached == nil || len(cached.SourceMods) == 0 {
		return false
	}
	if len(cached.SourceMods) != len(sources) {
		return false
	}
	for _, src := range sources {
		cachedMtime, ok := cached.SourceMods[src.Name]
		if !ok {
			return false
		}
		if latestMtime(src.Path) != cachedMtime {
			return false
		}
	}
	return true
}

// latestMtime returns the latest modification time (unix seconds) across
// the source tree's directories and manifest files. Directory mtimes catch
// added or removed entries; manifest mtimes catch in-place edits, which
// are the only file contents the cache carries. Stat-only, no parsing.
func latestMtime(root string) int64 {
	var latest int64
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() != manifest.FileName {
			return nil
		}
		if info, err := d.Info(); err == nil {
			if t := info.ModTime().Unix(); t > latest {
				latest = t
			}
		}
		return nil
	})
	return latest
}

// writeCache serializes the catalog and source mtimes to disk.
func writeCache(path string, packages []*Package, sources []Source) {
	mods := make(map[string]int64, len(sources))
	for _, src := range sources {
		mods[src.Name] = latestMtime(src.Path)
	}

	cached := cachedIndex{
		Packages:   packages,
		SourceMods: mods,
		CachedAt:   time.Now(),
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return
	}

	dir := filepath.Dir(path)
	os.MkdirAll(dir, 0755)

	os.WriteFile(path, data, 0644)
}
