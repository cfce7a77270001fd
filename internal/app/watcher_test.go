package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestOnListChanged_ReloadsMatchers(t *testing.T) {
	a := newTestApp(t, nil)
	require.NoError(t, os.MkdirAll(a.Config.TermsDir, 0755))
	path := filepath.Join(a.Config.TermsDir, "en.txt")
	require.NoError(t, os.WriteFile(path, []byte("frak\n"), 0644))

	m := a.Matcher("en")
	require.True(t, m.Search("frak"))

	require.NoError(t, os.WriteFile(path, []byte("gorram\n"), 0644))
	a.onListChanged(path)

	assert.False(t, m.Search("frak"))
	assert.True(t, m.Search("gorram"))
}

func TestApp_WatchReloadsOnWrite(t *testing.T) {
	a := newTestApp(t, func(c *Config) { c.Watch = true })
	require.NoError(t, os.MkdirAll(a.Config.TermsDir, 0755))
	path := filepath.Join(a.Config.TermsDir, "en.txt")
	require.NoError(t, os.WriteFile(path, []byte("frak\n"), 0644))

	require.NoError(t, a.Start())
	defer a.Stop()
	require.NotNil(t, a.Watcher)

	m := a.Matcher("en")
	require.True(t, m.Search("frak"))

	require.NoError(t, os.WriteFile(path, []byte("gorram\n"), 0644))
	assert.Eventually(t, func() bool { return m.Search("gorram") },
		3*time.Second, 20*time.Millisecond)
}

func TestApp_WatchMissingDirIsSkippedSilently(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig(root)
	cfg.ListenAddress = "127.0.0.1:0"
	require.True(t, cfg.Watch, "watching is on by default")

	core, logs := observer.New(zap.DebugLevel)
	a, err := New(root, cfg, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, a.Start())
	defer a.Stop()
	assert.Nil(t, a.Watcher)
	assert.Zero(t, logs.FilterLevelExact(zap.WarnLevel).Len(), "a fresh project has no lists dir to watch")
	assert.Equal(t, 1, logs.FilterMessage("file watcher skipped, terms_dir absent").Len())
	assert.True(t, a.Matcher("en").Search("hell"))
}

func TestApp_WatchExistingDirStartsWatcher(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultConfig(root)
	cfg.ListenAddress = "127.0.0.1:0"
	require.NoError(t, os.MkdirAll(cfg.TermsDir, 0755))

	core, logs := observer.New(zap.WarnLevel)
	a, err := New(root, cfg, zap.New(core))
	require.NoError(t, err)

	require.NoError(t, a.Start())
	defer a.Stop()
	assert.NotNil(t, a.Watcher)
	assert.Zero(t, logs.Len())
}
