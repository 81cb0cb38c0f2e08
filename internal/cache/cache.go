package cache

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	apperrors "github.com/penwyp/tfget/internal/errors"
	"github.com/penwyp/tfget/internal/platform"
)

// Key returns the deterministic archive filename for a (tool, version,
// os, arch) tuple. Identical inputs always address the same cache entry.
func Key(tool, version, osName, arch string) string {
	return fmt.Sprintf("%s_%s_%s_%s.zip", tool, version, osName, arch)
}

// Archive is a downloaded ZIP held in memory, already validated as a
// readable container.
type Archive struct {
	reader *zip.Reader
	data   []byte
}

// NewArchive validates data as a ZIP container.
func NewArchive(data []byte) (*Archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTypeFilesystem, "decoding zip archive", err)
	}
	return &Archive{reader: zr, data: data}, nil
}

// Reader exposes the decoded ZIP container.
func (a *Archive) Reader() *zip.Reader {
	return a.reader
}

// Bytes returns the raw archive contents.
func (a *Archive) Bytes() []byte {
	return a.data
}

// Downloader fetches an archive over the network.
type Downloader interface {
	DownloadArchive(ctx context.Context, version, filename string) ([]byte, error)
}

// Fetcher locates or downloads the archive for a resolved version.
//
// A file already present under the cache key is trusted as-is: no
// integrity check and no comparison against remote state. A corrupted
// entry surfaces as a zip decode error rather than a re-download.
type Fetcher struct {
	dir        string
	tool       string
	target     platform.Target
	downloader Downloader
	logger     *zap.Logger
}

// NewFetcher creates a fetcher caching archives under dir.
func NewFetcher(dir, tool string, target platform.Target, downloader Downloader, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		dir:        dir,
		tool:       tool,
		target:     target,
		downloader: downloader,
		logger:     logger,
	}
}

// Path returns the on-disk cache location for version.
func (f *Fetcher) Path(version string) string {
	return filepath.Join(f.dir, Key(f.tool, version, f.target.OS, f.target.Arch))
}

// Fetch returns the archive for version, reading the local cache first
// and downloading on a miss. Persisting a fresh download is best-effort:
// a write failure is logged and the in-memory copy is used.
func (f *Fetcher) Fetch(ctx context.Context, version string) (*Archive, error) {
	filename := Key(f.tool, version, f.target.OS, f.target.Arch)

	if f.dir != "" {
		path := filepath.Join(f.dir, filename)
		if data, err := os.ReadFile(path); err == nil {
			if f.logger != nil {
				f.logger.Info("Using cached archive", zap.String("path", path))
			}
			return NewArchive(data)
		}
	}

	data, err := f.downloader.DownloadArchive(ctx, version, filename)
	if err != nil {
		return nil, err
	}

	if f.dir == "" {
		if f.logger != nil {
			f.logger.Warn("No cache directory available, archive will not be cached")
		}
	} else if err := f.persist(filepath.Join(f.dir, filename), data); err != nil && f.logger != nil {
		f.logger.Warn("Unable to cache archive, continuing with in-memory copy",
			zap.String("dir", f.dir),
			zap.Error(err))
	}

	return NewArchive(data)
}

func (f *Fetcher) persist(path string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
