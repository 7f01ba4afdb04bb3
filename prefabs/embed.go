package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// DiskRoot is checked before the embedded copies, so prefabs can be edited
// and hot-reloaded without a rebuild.
var DiskRoot = "prefabs"

// WatchDirs are the on-disk directories a Watcher should follow to see every
// prefab and script the loaders read.
func WatchDirs() []string {
	return []string{DiskRoot, filepath.Join(DiskRoot, "scripts")}
}

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// LoadScript reads a collect script by name, e.g. "on_collect.tengo".
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

// Load reads a yaml prefab by name, e.g. "witch.yaml".
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, cleanPrefabPath(name))
}

func read(embedded fs.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, clean)
}

// ModTime reports when the on-disk copy of a prefab last changed. It is
// false when only the embedded copy exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Names lists the yaml prefabs available from disk and the embedded set.
func Names() []string {
	seen := make(map[string]struct{})
	if embedded, err := fs.Glob(PrefabsFS, "*.yaml"); err == nil {
		for _, n := range embedded {
			seen[n] = struct{}{}
		}
	}
	if disk, err := filepath.Glob(filepath.Join(DiskRoot, "*.yaml")); err == nil {
		for _, n := range disk {
			seen[filepath.Base(n)] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, "prefabs/")
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return path.Join("scripts", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join(DiskRoot, filepath.FromSlash(clean))
}
