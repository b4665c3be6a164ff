package util

import (
	"archive/zip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuman(t *testing.T) {
	assert.Equal(t, "512 B", Human(512))
	assert.Equal(t, "1.50 KB", Human(1536))
	assert.Equal(t, "2.00 MB", Human(2<<20))
	assert.Equal(t, "1.00 GB", Human(1<<30))
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(`<html><body><p id="x">hello</p><p id="ua">` + r.Header.Get("User-Agent") + `</p></body></html>`))
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPClientOptions{Timeout: 2 * time.Second, UserAgent: PickUserAgent("xkcdbot-test")})

	doc, err := FetchDocument(context.Background(), c, srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, "hello", doc.Find("#x").Text())
	assert.Equal(t, "xkcdbot-test", doc.Find("#ua").Text())

	_, err = FetchDocument(context.Background(), c, srv.URL+"/gone")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusGone, se.Code)
}

func TestPickUserAgent(t *testing.T) {
	assert.Equal(t, "custom", PickUserAgent("custom"))
	assert.Contains(t, PickUserAgent(""), "Mozilla/5.0")
}

func TestCreateCBZ(t *testing.T) {
	dir := t.TempDir()
	b := filepath.Join(dir, "b.png")
	a := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(b, []byte("bbb"), 0644))
	require.NoError(t, os.WriteFile(a, []byte("aa"), 0644))

	out := filepath.Join(dir, "comics.cbz")
	require.NoError(t, CreateCBZ([]string{b, a}, out))

	r, err := zip.OpenReader(out)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 2)
	assert.Equal(t, "a.png", r.File[0].Name)
	assert.Equal(t, "b.png", r.File[1].Name)
}

func TestRemoveIfEmpty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.Mkdir(dir, 0755))
	f := filepath.Join(dir, "x")
	require.NoError(t, os.WriteFile(f, nil, 0644))

	assert.False(t, RemoveIfEmpty(dir))
	RemoveFiles([]string{f, f})
	assert.True(t, RemoveIfEmpty(dir))
}
