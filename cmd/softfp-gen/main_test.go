package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_GeneratesFiles(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd(strings.NewReader("3f800000 40000000 40400000 00\n"), stdout, stderr)
	cmd.SetArgs([]string{"--out-dir", outDir, "f32_add"})

	require.NoError(t, cmd.Execute())
	require.Equal(t, "f32_add_0.s\n", stdout.String())
	require.FileExists(t, filepath.Join(outDir, "f32_add_0.s"))
}

func TestRootCmd_UnknownTestType(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	cmd := newRootCmd(strings.NewReader("3f800000 40000000 40400000 00\n"), &bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs([]string{"--out-dir", outDir, "f16_add"})

	err := cmd.Execute()
	require.ErrorContains(t, err, "unknown test type: f16_add")
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRootCmd_RequiresTestType(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	cmd.SetArgs(nil)

	require.ErrorContains(t, cmd.Execute(), "accepts 1 arg(s)")
}
