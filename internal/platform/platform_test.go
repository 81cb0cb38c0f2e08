package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		name     string
		arch     string
		expected string
	}{
		{"x86_64_to_amd64", "x86_64", "amd64"},
		{"x86_to_386", "x86", "386"},
		{"i386_to_386", "i386", "386"},
		{"amd64_passthrough", "amd64", "amd64"},
		{"arm64_passthrough", "arm64", "arm64"},
		{"unknown_passthrough", "riscv64", "riscv64"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, NormalizeArch(tc.arch))
		})
	}
}

func TestDetector_Detect(t *testing.T) {
	d := NewDetector()
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "x86_64" }

	target := d.Detect()
	require.Equal(t, Target{OS: "linux", Arch: "amd64"}, target)
}

func TestDetector_Detect_Host(t *testing.T) {
	target := NewDetector().Detect()
	require.Equal(t, runtime.GOOS, target.OS)
	require.NotEmpty(t, target.Arch)
}
