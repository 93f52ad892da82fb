package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winmate/internal/logging"
)

func TestRemoteIsNewer(t *testing.T) {
	tests := []struct {
		current, remote string
		want            bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"1.0.0", "1.0.0", false},
		{"1.2.0", "1.1.9", false},
		{"1.0.0", "1.0", false},
		{"1.0", "1.0.1", true},
		{"1.0.0", "1.0.1-beta1", true},
		{"1.0.0-beta1", "1.0.0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, remoteIsNewer(tt.current, tt.remote),
			"current=%s remote=%s", tt.current, tt.remote)
	}
}

func feedServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "winmate-updater/1.0", r.Header.Get("User-Agent"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_UpdateAvailable(t *testing.T) {
	srv := feedServer(t, `{
		"latest_version": "1.1.0",
		"minimum_supported_version": "1.0.0",
		"download_url": "https://example.org/winmate-1.1.0.exe",
		"changelog": "Faster cleanup."
	}`, http.StatusOK)

	u := New(srv.URL, "1.0.0", WithLogger(logging.NewNop()))
	result := u.Check(context.Background())

	assert.Equal(t, StatusUpdateAvailable, result.Status)
	assert.Equal(t, "1.1.0", result.RemoteVersion)
	require.NotNil(t, result.Update)
	assert.Equal(t, "https://example.org/winmate-1.1.0.exe", result.Update.DownloadURL)
	assert.Contains(t, result.Message, "A new version is available: 1.1.0")
	assert.Contains(t, result.Message, "Changelog:")
}

func TestCheck_UpToDate(t *testing.T) {
	srv := feedServer(t, `{"latest_version": "1.0.0", "download_url": "https://example.org/x.exe"}`, http.StatusOK)

	u := New(srv.URL, "1.0.0", WithLogger(logging.NewNop()))
	result := u.Check(context.Background())

	assert.Equal(t, StatusNoUpdate, result.Status)
	assert.Contains(t, result.Message, "You are up to date.")
	assert.Nil(t, result.Update)
}

func TestCheck_ErrorPaths(t *testing.T) {
	t.Run("unconfigured feed", func(t *testing.T) {
		u := New("", "1.0.0", WithLogger(logging.NewNop()))
		result := u.Check(context.Background())
		assert.Equal(t, StatusError, result.Status)
		assert.Contains(t, result.Message, "not configured")
	})

	t.Run("http error", func(t *testing.T) {
		srv := feedServer(t, "not found", http.StatusNotFound)
		u := New(srv.URL, "1.0.0", WithLogger(logging.NewNop()))
		result := u.Check(context.Background())
		assert.Equal(t, StatusError, result.Status)
	})

	t.Run("malformed json", func(t *testing.T) {
		srv := feedServer(t, "{{{", http.StatusOK)
		u := New(srv.URL, "1.0.0", WithLogger(logging.NewNop()))
		result := u.Check(context.Background())
		assert.Equal(t, StatusError, result.Status)
	})

	t.Run("missing fields", func(t *testing.T) {
		srv := feedServer(t, `{"changelog": "no version here"}`, http.StatusOK)
		u := New(srv.URL, "1.0.0", WithLogger(logging.NewNop()))
		result := u.Check(context.Background())
		assert.Equal(t, StatusError, result.Status)
		assert.Contains(t, result.Message, "missing required fields")
	})
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("binary payload"))
	}))
	t.Cleanup(srv.Close)

	u := New("", "1.0.0", WithLogger(logging.NewNop()))
	dest := t.TempDir()

	path, err := u.Download(context.Background(), Info{
		Version:     "1.1.0",
		DownloadURL: srv.URL + "/winmate-1.1.0.exe",
	}, dest)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "binary payload", string(data))
	assert.Contains(t, path, "winmate-1.1.0.exe")
}

func TestDownloadFilename(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain path", "https://example.com/releases/winmate-1.1.0.exe", "winmate-1.1.0.exe"},
		{"query string stripped", "https://example.com/winmate.exe?token=abc&x=1", "winmate.exe"},
		{"fragment stripped", "https://example.com/winmate.exe#sha256", "winmate.exe"},
		{"trailing slash falls back", "https://example.com/releases/", "winmate_1.1.0.exe"},
		{"unparseable falls back", "http://exa mple.com/file.exe", "winmate_1.1.0.exe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := downloadFilename(Info{Version: "1.1.0", DownloadURL: tt.url})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDownload_EmptyURL(t *testing.T) {
	u := New("", "1.0.0", WithLogger(logging.NewNop()))
	_, err := u.Download(context.Background(), Info{}, t.TempDir())
	assert.Error(t, err)
}
