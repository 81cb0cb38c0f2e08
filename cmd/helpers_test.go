package cmd

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// downloadFunc adapts a func to the cache.Downloader interface.
type downloadFunc func(ctx context.Context, version, filename string) ([]byte, error)

func (f downloadFunc) DownloadArchive(ctx context.Context, version, filename string) ([]byte, error) {
	return f(ctx, version, filename)
}

func buildTestZip(t *testing.T, entryName string, contents []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	fw, err := w.Create(entryName)
	require.NoError(t, err)
	_, err = fw.Write(contents)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}
