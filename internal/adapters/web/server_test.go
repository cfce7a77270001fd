package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/corey/termcheck/internal/adapters/termfile"
	"github.com/corey/termcheck/internal/domain/terms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRegistry implements Registry over an in-memory source.
type mockRegistry struct {
	src *termfile.Source
	mu  sync.Mutex
	m   map[string]*terms.Matcher
}

func newMockRegistry() *mockRegistry {
	return &mockRegistry{
		src: termfile.New(fstest.MapFS{
			"en.txt": {Data: []byte("hell\ndamn\nshit\n")},
			"es.txt": {Data: []byte("mierda\n")},
		}),
		m: make(map[string]*terms.Matcher),
	}
}

func (r *mockRegistry) Lookup(language string) (*terms.Matcher, terms.Resolution) {
	res, err := terms.Resolve(r.src, language, zap.NewNop())
	key := res.Language
	if err != nil {
		key = terms.DefaultLanguage
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.m[key]; ok {
		return m, res
	}
	m := terms.New(terms.Config{Language: key, Quiet: true}, r.src)
	r.m[key] = m
	return m, res
}

func (r *mockRegistry) Languages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for lang := range r.m {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

func setupTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	srv := NewServer(newMockRegistry(), opts)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthEndpoint(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var result HealthResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "en", result.Default)
	assert.Equal(t, []string{}, result.Languages)
}

func TestCheckEndpoint(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := postJSON(t, ts.URL+"/api/check", `{"text":"This is a test sentence with bad words like hell and damn"}`)
	assert.Equal(t, 200, resp.StatusCode)

	var result CheckResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Flagged)
	assert.Equal(t, "en", result.Language)
	assert.ElementsMatch(t, []string{"hell", "damn"}, result.Words)
}

func TestCheckEndpoint_Clean(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := postJSON(t, ts.URL+"/api/check", `{"text":"a hellish commute"}`)
	assert.Equal(t, 200, resp.StatusCode)

	var raw map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	assert.Equal(t, false, raw["flagged"])
	assert.Equal(t, []any{}, raw["words"], "words is an empty array, not null")
}

func TestCheckEndpoint_Language(t *testing.T) {
	ts := setupTestServer(t, Options{DefaultLanguage: "es"})

	resp := postJSON(t, ts.URL+"/api/check", `{"text":"qué mierda"}`)
	var result CheckResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "es", result.Language)
	assert.Equal(t, []string{"mierda"}, result.Words)

	resp = postJSON(t, ts.URL+"/api/check", `{"text":"qué mierda","language":"EN"}`)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "en", result.Language)
	assert.False(t, result.Flagged)
}

func TestCheckEndpoint_InvalidJSON(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := postJSON(t, ts.URL+"/api/check", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var result ErrorResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Contains(t, result.Error, "invalid JSON")
}

func TestCheckEndpoint_BodyTooLarge(t *testing.T) {
	ts := setupTestServer(t, Options{MaxBodyBytes: 16})

	resp := postJSON(t, ts.URL+"/api/check", `{"text":"`+strings.Repeat("a", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestCheckEndpoint_MethodNotAllowed(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/check")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestEmbeddedEndpoint(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := postJSON(t, ts.URL+"/api/embedded", `{"text":"a hellish commute"}`)
	var result CheckResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Flagged)
	assert.Equal(t, []string{"hell"}, result.Words)
}

func TestSearchEndpoint(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/search?term=HELL")
	require.NoError(t, err)
	defer resp.Body.Close()

	var result SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.True(t, result.Found)
	assert.Equal(t, "HELL", result.Term)

	resp2, err := http.Get(ts.URL + "/api/search?term=")
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&result))
	assert.False(t, result.Found)
}

func TestTermsEndpoint_Fallback(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp, err := http.Get(ts.URL + "/api/terms?language=zz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var result TermsResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "zz", result.Language)
	assert.Equal(t, "en", result.Resolved)
	assert.True(t, result.Fallback)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, []string{"hell", "damn", "shit"}, result.Terms)
}

func TestUnknownLanguagesShareOneMatcher(t *testing.T) {
	reg := newMockRegistry()
	ts := httptest.NewServer(NewServer(reg, Options{}).Handler())
	t.Cleanup(ts.Close)

	for i := 0; i < 50; i++ {
		resp, err := http.Get(fmt.Sprintf("%s/api/search?term=hell&language=zz%d", ts.URL, i))
		require.NoError(t, err)
		var result SearchResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		resp.Body.Close()
		require.True(t, result.Found)
	}
	assert.Equal(t, []string{"en"}, reg.Languages())
}

func TestStartStop(t *testing.T) {
	portFile := filepath.Join(t.TempDir(), "http.port")
	srv := NewServer(newMockRegistry(), Options{PortFile: portFile})
	require.NoError(t, srv.Start("127.0.0.1:0"))
	assert.NotZero(t, srv.Port())

	b, err := os.ReadFile(portFile)
	require.NoError(t, err)
	assert.Equal(t, srv.URL(), "http://localhost:"+string(b))

	resp, err := http.Get(srv.URL() + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 200, resp.StatusCode)

	srv.Stop()
	srv.Stop()
	_, err = os.Stat(portFile)
	assert.True(t, os.IsNotExist(err))
}

func TestStart_PortFileError(t *testing.T) {
	portFile := filepath.Join(t.TempDir(), "missing", "http.port")
	srv := NewServer(newMockRegistry(), Options{PortFile: portFile})

	err := srv.Start("127.0.0.1:0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write port file")
	assert.Zero(t, srv.Port())
	srv.Stop()
}

func TestDefaultPort(t *testing.T) {
	port := DefaultPort("/home/user/project")
	assert.GreaterOrEqual(t, port, 19000)
	assert.Less(t, port, 20000)

	// Same path should give same port
	assert.Equal(t, port, DefaultPort("/home/user/project"))
}
