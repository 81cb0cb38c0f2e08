package install

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/penwyp/tfget/internal/cache"
	apperrors "github.com/penwyp/tfget/internal/errors"
)

// executableMode grants read+execute to everyone and write to the owner.
const executableMode = 0o755

// Installer writes the binary carried by a release archive to its final
// location.
type Installer struct {
	logger *zap.Logger
}

// NewInstaller creates an installer.
func NewInstaller(logger *zap.Logger) *Installer {
	return &Installer{logger: logger}
}

// Install extracts the first entry of archive into targetPath and marks
// it executable. The archive layout is assumed to hold the binary as its
// single entry; entry names are not inspected. Any failure aborts the
// install; a partially written target is left in place.
func (i *Installer) Install(archive *cache.Archive, targetPath string) error {
	entries := archive.Reader().File
	if len(entries) == 0 {
		return apperrors.New(apperrors.ErrTypeFilesystem, "archive contains no entries")
	}
	entry := entries[0]

	if i.logger != nil {
		i.logger.Info("Extracting binary",
			zap.String("entry", entry.Name),
			zap.String("target", targetPath))
	}

	src, err := entry.Open()
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTypeFilesystem, "opening archive entry", err)
	}
	defer func() { _ = src.Close() }()

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return apperrors.Wrap(apperrors.ErrTypeFilesystem, "creating install directory", err)
	}

	dst, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, executableMode)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrTypeFilesystem, "creating target file", err)
	}
	defer func() { _ = dst.Close() }()

	// OpenFile's mode is subject to the umask; chmod pins the final bits.
	if err := dst.Chmod(executableMode); err != nil {
		return apperrors.Wrap(apperrors.ErrTypeFilesystem, "setting executable permissions", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		return apperrors.Wrap(apperrors.ErrTypeFilesystem, "writing binary", err)
	}
	return nil
}
