package platform

import "runtime"

// Target is the normalized (operating system, architecture) pair used to
// select the archive variant for the current host.
type Target struct {
	OS   string
	Arch string
}

// archSynonyms maps alternative architecture spellings to the names used
// by release archive filenames.
var archSynonyms = map[string]string{
	"x86_64": "amd64",
	"x86":    "386",
	"i386":   "386",
}

// Detector resolves the host target. The goos/goarch funcs are injectable
// so tests can exercise normalization without running on every platform.
type Detector struct {
	goos   func() string
	goarch func() string
}

// NewDetector creates a detector backed by the runtime constants.
func NewDetector() *Detector {
	return &Detector{
		goos:   func() string { return runtime.GOOS },
		goarch: func() string { return runtime.GOARCH },
	}
}

// Detect returns the normalized target for the current host.
func (d *Detector) Detect() Target {
	return Target{
		OS:   d.goos(),
		Arch: NormalizeArch(d.goarch()),
	}
}

// NormalizeArch maps architecture synonyms onto archive naming
// conventions; unknown values pass through unchanged.
func NormalizeArch(arch string) string {
	if normalized, ok := archSynonyms[arch]; ok {
		return normalized
	}
	return arch
}
