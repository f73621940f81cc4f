package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/beebsbench/internal/runner"
)

// SafeBuffer is a thread-safe buffer for capturing console output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// recordingExecutor captures commands without running them.
type recordingExecutor struct {
	mu    sync.Mutex
	calls []runner.Command
}

func (r *recordingExecutor) Execute(_ context.Context, c runner.Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
	return nil
}

var fixedClock = func() time.Time { return time.Date(2024, time.May, 1, 13, 37, 0, 0, time.UTC) }

// setupAppTest builds an App over a fresh top dir, failing the test on error.
func setupAppTest(t *testing.T, cfg Config, opts ...Option) (*App, *SafeBuffer) {
	t.Helper()

	if cfg.TopDir == "" {
		cfg.TopDir = t.TempDir()
	}
	cfg.LogFormat = "text"
	appCfg, err := NewConfig(cfg)
	require.NoError(t, err)

	console := &SafeBuffer{}
	testApp, err := NewApp(console, appCfg, append([]Option{WithClock(fixedClock)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = testApp.Close()
		if os.Getenv("BEEBS_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), console.String())
		}
	})
	return testApp, console
}

// writeScript creates an executable shell script at path.
func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}
