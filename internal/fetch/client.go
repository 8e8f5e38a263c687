package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher materializes a repository into dest, which must exist.
type Fetcher interface {
	Fetch(ctx context.Context, repository, dest string) error
}

// Default archive hosts per provider.
var defaultBaseURLs = map[string]string{
	ProviderGitHub:    "https://codeload.github.com",
	ProviderGitLab:    "https://gitlab.com",
	ProviderBitbucket: "https://bitbucket.org",
}

// Client is the Fetcher used by the CLI.
type Client struct {
	httpClient *http.Client
	baseURLs   map[string]string
	git        func(ctx context.Context, dir string, args ...string) error
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithBaseURL overrides the archive host of a provider. Empty values are ignored.
func WithBaseURL(provider, url string) Option {
	return func(cl *Client) {
		if url != "" {
			cl.baseURLs[provider] = strings.TrimRight(url, "/")
		}
	}
}

// WithLogger sets the logger for download progress.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// New creates a Client with the given options.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		baseURLs:   make(map[string]string, len(defaultBaseURLs)),
		git:        runGit,
		logger:     slog.New(slog.DiscardHandler),
	}
	for p, u := range defaultBaseURLs {
		c.baseURLs[p] = u
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads (or clones) repository into dest.
func (c *Client) Fetch(ctx context.Context, repository, dest string) error {
	ref, err := ParseRef(repository)
	if err != nil {
		return err
	}

	if ref.Clone {
		c.logger.Debug("cloning repository", "url", ref.URL, "ref", ref.Ref, "dest", dest)
		return c.clone(ctx, ref, dest)
	}

	archiveURL, err := c.ArchiveURL(ref)
	if err != nil {
		return err
	}
	c.logger.Debug("downloading archive", "url", archiveURL, "dest", dest)

	tmpDir, err := os.MkdirTemp("", "viewport-download-*")
	if err != nil {
		return fmt.Errorf("creating download directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath, err := c.download(ctx, ref, archiveURL, tmpDir)
	if err != nil {
		return err
	}
	return Extract(archivePath, dest, 1)
}

// ArchiveURL returns the download URL for a non-clone locator.
func (c *Client) ArchiveURL(r Ref) (string, error) {
	base := c.baseURLs[r.Provider]
	if r.Origin != "" {
		base = "https://" + r.Origin
	}

	switch r.Provider {
	case ProviderGitHub:
		return fmt.Sprintf("%s/%s/%s/tar.gz/%s", base, r.Owner, r.Name, r.Ref), nil
	case ProviderGitLab:
		return fmt.Sprintf("%s/%s/%s/-/archive/%s/%s-%s.tar.gz", base, r.Owner, r.Name, r.Ref, r.Name, r.Ref), nil
	case ProviderBitbucket:
		return fmt.Sprintf("%s/%s/%s/get/%s.tar.gz", base, r.Owner, r.Name, r.Ref), nil
	case ProviderDirect:
		return r.URL, nil
	default:
		return "", fmt.Errorf("no archive URL for provider %q", r.Provider)
	}
}

// download stores the archive under dir and returns its path. The file name
// carries the archive format so Extract can pick a decoder.
func (c *Client) download(ctx context.Context, r Ref, archiveURL, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", "viewport-cli")

	// Support an optional GitHub token for private templates.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" && r.Provider == ProviderGitHub {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", archiveURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("repository %s not found", r)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download of %s returned status %d", archiveURL, resp.StatusCode)
	}

	destPath := filepath.Join(dir, archiveName(archiveURL, resp.Header.Get("Content-Type")))

	f, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing download: %w", err)
	}
	c.logger.Debug("archive downloaded", "bytes", n)
	return destPath, nil
}

// archiveName picks the download file name. The URL path decides when it
// names a format; otherwise only an exact zip media type selects zip, so
// application/gzip and application/x-gzip stay tarballs.
func archiveName(url, contentType string) string {
	u, _, _ := strings.Cut(url, "?")
	u = strings.ToLower(u)
	switch {
	case strings.HasSuffix(u, ".zip"):
		return "archive.zip"
	case strings.HasSuffix(u, ".tar.gz"), strings.HasSuffix(u, ".tgz"), strings.Contains(u, "/tar.gz/"):
		return "archive.tar.gz"
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && (mediaType == "application/zip" || mediaType == "application/x-zip-compressed") {
		return "archive.zip"
	}
	return "archive.tar.gz"
}
