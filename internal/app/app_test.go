package app

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/corey/termcheck/internal/adapters/bbolt"
	"github.com/corey/termcheck/internal/adapters/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp builds an App over temp paths with a free port.
func newTestApp(t *testing.T, mutate func(c *Config)) *App {
	t.Helper()
	root := t.TempDir()
	cfg := DefaultConfig(root)
	cfg.Quiet = true
	cfg.ListenAddress = "127.0.0.1:0"
	cfg.Watch = false
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := New(root, cfg, nil)
	require.NoError(t, err)
	return a
}

func TestNew_RequiresRoot(t *testing.T) {
	_, err := New("", DefaultConfig("."), nil)
	assert.Error(t, err)
}

func TestApp_EmbeddedListsByDefault(t *testing.T) {
	a := newTestApp(t, nil)

	m := a.Matcher("")
	assert.True(t, m.HasCurseWords("what the hell"))
	assert.Equal(t, "en", m.Resolved().Language)
	assert.True(t, a.Matcher("es").Search("mierda"))
}

func TestApp_TermsDirShadowsEmbedded(t *testing.T) {
	a := newTestApp(t, nil)
	require.NoError(t, os.MkdirAll(a.Config.TermsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(a.Config.TermsDir, "en.txt"), []byte("frak\n"), 0644))

	m := a.Matcher("en")
	assert.True(t, m.Search("frak"))
	assert.False(t, m.Search("hell"), "directory list replaces the embedded one")
	assert.True(t, a.Matcher("fr").Search("merde"), "other languages still come from the embedded lists")
}

func TestApp_StoreShadowsEverything(t *testing.T) {
	a := newTestApp(t, nil)
	require.NoError(t, os.MkdirAll(filepath.Dir(a.Config.DBPath), 0755))

	store, err := bbolt.NewStore(a.Config.DBPath)
	require.NoError(t, err)
	_, err = store.AddTerms("en", []string{"gosh"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	m := a.Matcher("en")
	assert.Equal(t, []string{"gosh"}, m.All())

	// No read lock is held between loads, so a writer can reopen the store.
	store, err = bbolt.NewStore(a.Config.DBPath)
	require.NoError(t, err)
	_, err = store.AddTerms("en", []string{"heck"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	a.Reload()
	assert.ElementsMatch(t, []string{"gosh", "heck"}, m.All())
}

func TestApp_MissingStoreIsSkipped(t *testing.T) {
	a := newTestApp(t, func(c *Config) {
		c.DBPath = filepath.Join(t.TempDir(), "absent.db")
	})
	assert.True(t, a.Matcher("en").Search("damn"))
	_, err := os.Stat(a.Config.DBPath)
	assert.True(t, os.IsNotExist(err), "lookups never create the database")
}

func TestApp_StartServesAPI(t *testing.T) {
	a := newTestApp(t, nil)
	require.NoError(t, a.Start())
	defer a.Stop()

	port, err := os.ReadFile(a.Paths.PortFile)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(string(port)))

	resp, err := http.Post(a.WebServer.URL()+"/api/check", "application/json",
		strings.NewReader(`{"text":"damn it to hell"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got web.CheckResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.True(t, got.Flagged)
	assert.Equal(t, []string{"damn", "hell"}, got.Words)
}

func TestApp_ServeStopsOnCancel(t *testing.T) {
	a := newTestApp(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(a.Paths.PortFile)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
	_, err := os.Stat(a.Paths.PortFile)
	assert.True(t, os.IsNotExist(err), "port file removed on stop")
}

func TestApp_StartFailsOnBadAddress(t *testing.T) {
	a := newTestApp(t, func(c *Config) { c.ListenAddress = "256.0.0.1:bad" })
	assert.Error(t, a.Start())
}

func TestApp_DescribeSource(t *testing.T) {
	a := newTestApp(t, nil)

	assert.Equal(t, a.Config.DBPath+"#en", a.DescribeSource("0:en"))
	assert.Equal(t, filepath.Join(a.Config.TermsDir, "fr.txt"), a.DescribeSource("1:fr.txt"))
	assert.Equal(t, filepath.Join("embedded", "en.txt"), a.DescribeSource("2:en.txt"))
	assert.Equal(t, "", a.DescribeSource(""))
	assert.Equal(t, "9:xx", a.DescribeSource("9:xx"))

	a.Matcher("en").Initialize()
	assert.Equal(t, filepath.Join("embedded", "en.txt"), a.DescribeSource(a.Matcher("en").Resolved().ID))
}
