package r2

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves path-style PUT/GET for a single bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/snapshots/")
	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", f.types[key])
		_, _ = w.Write(body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeS3) {
	t.Helper()

	fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := New(context.Background(), Config{
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Bucket:          "snapshots",
		Endpoint:        srv.URL,
	}, nil)
	require.NoError(t, err)
	return store, fake
}

func TestStore_PutThenGet(t *testing.T) {
	t.Parallel()

	store, fake := newTestStore(t)
	ctx := context.Background()

	body := []byte(`{"leagueCount":2}`)
	require.NoError(t, store.Put(ctx, "adp/home/s1.json", body, "application/json"))
	assert.Equal(t, "application/json", fake.types["adp/home/s1.json"])

	got, found, err := store.Get(ctx, "adp/home/s1.json")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, body, got)
}

func TestStore_GetMissingKey(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	got, found, err := store.Get(context.Background(), "adp/home/missing.json")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestConfig_Endpoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://abc123.r2.cloudflarestorage.com", Config{AccountID: "abc123"}.endpoint())
	assert.Equal(t, "http://localhost:9000", Config{AccountID: "abc123", Endpoint: "http://localhost:9000/"}.endpoint())
}

func TestNew_RequiresBucket(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Config{AccountID: "abc"}, nil)
	assert.Error(t, err)
}
