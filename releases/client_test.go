package releases

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

func TestClient_ListVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                 string
		handler              http.HandlerFunc
		includePrerelease    bool
		expectedVersions     []string
		expectedErrSubstring string
	}{
		{
			name: "strict_listing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				_, _ = w.Write([]byte(sampleIndex))
			},
			includePrerelease: false,
			expectedVersions:  []string{"1.3.0", "1.2.0", "1.1.0", "1.0.0", "0.15.0"},
		},
		{
			name: "server_error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedErrSubstring: "unexpected status 500",
		},
		{
			name: "not_found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			expectedErrSubstring: "unexpected status 404",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tc.handler)
			defer server.Close()

			c := NewClient(server.URL, nil, WithHTTPClient(server.Client()))
			versions, err := c.ListVersions(context.Background(), tc.includePrerelease)

			if tc.expectedErrSubstring == "" {
				require.NoError(t, err)
				require.Equal(t, tc.expectedVersions, versions)
			} else {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.expectedErrSubstring)
				require.Equal(t, apperrors.ErrTypeNetwork, apperrors.TypeOf(err))
			}
		})
	}
}

func TestClient_DownloadArchive(t *testing.T) {
	t.Parallel()

	payload := []byte("zip-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/1.3.0/terraform_1.3.0_linux_amd64.zip", r.URL.Path)
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, WithHTTPClient(server.Client()))
	body, err := c.DownloadArchive(context.Background(), "1.3.0", "terraform_1.3.0_linux_amd64.zip")

	require.NoError(t, err)
	require.Equal(t, payload, body)
}

func TestClient_DownloadArchive_Missing(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := NewClient(server.URL, nil, WithHTTPClient(server.Client()))
	_, err := c.DownloadArchive(context.Background(), "9.9.9", "terraform_9.9.9_linux_amd64.zip")

	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 404")
	require.Contains(t, err.Error(), "/9.9.9/terraform_9.9.9_linux_amd64.zip")
}
