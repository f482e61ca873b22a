// Package levels embeds the bundled level specs and trigger scripts.
// Files present on disk under levels/ take precedence over the embedded
// copies so they can be edited while a viewer is running.
package levels

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed *.yaml scripts/*.tengo
var LevelsFS embed.FS

// Dir is the on-disk directory checked before the embedded files.
var Dir = "levels"

func Load(name string) ([]byte, error) {
	clean := cleanPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return LevelsFS.ReadFile(clean)
}

func LoadScript(name string) ([]byte, error) {
	return Load(scriptPath(name))
}

// ModTime reports the modification time of the on-disk copy of name.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// List returns the names of the embedded level specs.
func List() ([]string, error) {
	return fs.Glob(LevelsFS, "*.yaml")
}

func cleanPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	return s
}

func scriptPath(path string) string {
	s := cleanPath(path)
	if strings.HasPrefix(s, "scripts/") {
		return s
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
