package releases

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/penwyp/tfget/internal/errors"
)

// Client talks to the release index and archive endpoints. The injected
// http.Client keeps tests on httptest servers; all methods take a
// context.Context so the caller controls cancellation.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// NewClient creates a release client for the given index base URL.
func NewClient(baseURL string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListVersions fetches the index document and captures the advertised
// versions in document order.
func (c *Client) ListVersions(ctx context.Context, includePrerelease bool) ([]string, error) {
	body, err := c.get(ctx, c.baseURL)
	if err != nil {
		return nil, err
	}

	versions := CaptureVersions(string(body), includePrerelease)
	if c.logger != nil {
		c.logger.Debug("Fetched release index",
			zap.String("url", c.baseURL),
			zap.Bool("include_prerelease", includePrerelease),
			zap.Int("versions", len(versions)))
	}
	return versions, nil
}

// DownloadArchive fetches the archive named filename for the given version
// and returns the raw response body.
func (c *Client) DownloadArchive(ctx context.Context, version, filename string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, version, filename)
	if c.logger != nil {
		c.logger.Debug("Downloading archive", zap.String("url", url))
	}
	return c.get(ctx, url)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTypeNetwork, fmt.Sprintf("building request for %s", url), err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTypeNetwork, fmt.Sprintf("GET %s", url), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.New(apperrors.ErrTypeNetwork,
			fmt.Sprintf("GET %s: unexpected status %d", url, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrTypeNetwork, fmt.Sprintf("reading response from %s", url), err)
	}
	return body, nil
}
