package avatar

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/acadium/dashboard/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoint string) Config {
	return Config{
		Region:       "us-east-1",
		Bucket:       "avatars",
		BaseEndpoint: endpoint,
		AccessKey:    "minio",
		SecretKey:    "minio-secret",
		URLTTL:       5 * time.Minute,
	}
}

func TestURL_NoAvatar(t *testing.T) {
	r := NewResolver(testConfig("http://localhost:9000"))

	got, err := r.URL(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = r.URL(context.Background(), &models.Profile{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestURL_AbsoluteReferenceUnchanged(t *testing.T) {
	r := NewResolver(testConfig("http://localhost:9000"))

	ref := "https://cdn.example.com/a.png"
	got, err := r.URL(context.Background(), &models.Profile{AvatarURL: ref})
	require.NoError(t, err)
	assert.Equal(t, ref, got)
}

func TestURL_UnconfiguredReturnsKey(t *testing.T) {
	r := NewResolver(Config{})

	got, err := r.URL(context.Background(), &models.Profile{AvatarURL: "avatars/u-1/a.png"})
	require.NoError(t, err)
	assert.Equal(t, "avatars/u-1/a.png", got)
	assert.False(t, r.Enabled())
}

func TestURL_PresignsBucketKey(t *testing.T) {
	r := NewResolver(testConfig("http://localhost:9000"))

	got, err := r.URL(context.Background(), &models.Profile{AvatarURL: "/users/u-1/avatar.png"})
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "localhost:9000", u.Host)
	assert.Equal(t, "/avatars/users/u-1/avatar.png", u.Path)
	assert.Equal(t, "300", u.Query().Get("X-Amz-Expires"))
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
}

func TestUpload_PutsToPresignedURL(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	r := NewResolver(testConfig(ts.URL))
	r.now = func() time.Time { return time.Unix(1700000000, 0) }

	key, err := r.Upload(context.Background(), "u-1", "", []byte("img"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "avatars/u-1/1700000000/"), key)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/avatars/"+key, gotPath)
	assert.Equal(t, "img", string(gotBody))
}

func TestUpload_Failures(t *testing.T) {
	_, err := NewResolver(Config{}).Upload(context.Background(), "u-1", "", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	_, err = NewResolver(testConfig(ts.URL)).Upload(context.Background(), "u-1", "", []byte("img"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload avatar")
}

func TestUpload_UsesUploadSeam(t *testing.T) {
	orig := putObject
	defer func() { putObject = orig }()

	var gotURL, gotCT string
	putObject = func(_ context.Context, _ *http.Client, u, ct string, _ []byte) error {
		gotURL, gotCT = u, ct
		return nil
	}

	key, err := NewResolver(testConfig("http://localhost:9000")).Upload(context.Background(), "u-2", "image/png", []byte("x"))
	require.NoError(t, err)
	assert.Contains(t, gotURL, key)
	assert.Equal(t, "image/png", gotCT)
}
