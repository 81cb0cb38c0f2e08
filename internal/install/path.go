package install

import (
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

// defaultDir is the user-local fallback when the tool is not already on
// PATH; relative to the home directory.
const defaultDir = ".local/bin"

// TargetResolver turns the process environment (PATH value, home
// directory) into the absolute install path. Both inputs are passed in
// explicitly so resolution is a function of its arguments; the exists
// probe is injectable for tests.
type TargetResolver struct {
	pathVar string
	home    string
	tool    string
	exists  func(string) bool
}

// NewTargetResolver creates a resolver for tool given the raw PATH value
// and the user home directory (empty when unknown).
func NewTargetResolver(pathVar, home, tool string) *TargetResolver {
	return &TargetResolver{
		pathVar: pathVar,
		home:    home,
		tool:    tool,
		exists: func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && !info.IsDir()
		},
	}
}

// Resolve returns the install path and whether the user-local fallback
// was chosen (the caller should then remind the user to extend PATH).
// An existing PATH entry holding the tool wins; otherwise the fallback
// requires a home directory, absence of which is a fatal precondition.
func (r *TargetResolver) Resolve() (string, bool, error) {
	for _, dir := range filepath.SplitList(r.pathVar) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, r.tool)
		if r.exists(candidate) {
			return candidate, false, nil
		}
	}

	if r.home == "" {
		return "", false, apperrors.New(apperrors.ErrTypePrecondition,
			fmt.Sprintf("could not determine a path to install %s: not on PATH and no home directory", r.tool))
	}
	return filepath.Join(r.home, defaultDir, r.tool), true, nil
}
