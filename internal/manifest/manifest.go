package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"go.uber.org/zap"
)

// requiredVersionRE extracts the raw constraint string from a terraform
// block, e.g. `required_version = ">= 1.2.0, < 2.0.0"`. The manifest is
// treated as an opaque text source; full HCL parsing is out of scope here.
var requiredVersionRE = regexp.MustCompile(`required_version\s*=\s*"([^"]+)"`)

// Locator scans a working directory and its ancestors for a project-level
// version constraint declared in *.tf files.
type Locator struct {
	dir    string
	logger *zap.Logger
}

// NewLocator creates a locator rooted at dir.
func NewLocator(dir string, logger *zap.Logger) *Locator {
	return &Locator{dir: dir, logger: logger}
}

// Find returns the first required_version constraint found in dir or any
// ancestor directory, nearest directory first. The second return is false
// when no declaration exists; that is not an error condition.
func (l *Locator) Find() (string, bool) {
	dir := l.dir
	for {
		if constraint, ok := l.scanDir(dir); ok {
			if l.logger != nil {
				l.logger.Debug("Found version constraint",
					zap.String("dir", dir),
					zap.String("constraint", constraint))
			}
			return constraint, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// scanDir checks every *.tf file directly inside dir, in lexical order so
// results are stable across filesystems.
func (l *Locator) scanDir(dir string) (string, bool) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.tf"))
	if err != nil {
		return "", false
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			// Unreadable manifests are skipped, not fatal.
			continue
		}
		if m := requiredVersionRE.FindSubmatch(data); m != nil {
			return string(m[1]), true
		}
	}
	return "", false
}
