package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/pdf417go/internal/scan"
	"github.com/ericlevine/pdf417go/internal/testutil"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writePNG(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, testutil.Pad(testutil.Symbol(t, text, 2, 3), 20)))
	return path
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func TestDecodeCommand(t *testing.T) {
	dir := isolate(t)
	path := writePNG(t, dir, "a.png", "command line")

	out, err := run(t, "decode", path)
	require.NoError(t, err)
	assert.Equal(t, path+": command line\n", out)
}

func TestDecodeCommandJSON(t *testing.T) {
	dir := isolate(t)
	path := writePNG(t, dir, "a.png", "as json")

	out, err := run(t, "decode", "--json", path)
	require.NoError(t, err)
	var r scan.Record
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "as json", r.Text)
	assert.Equal(t, "2", r.ECLevel)
}

func TestDecodeCommandFailure(t *testing.T) {
	dir := isolate(t)
	missing := filepath.Join(dir, "missing.png")

	out, err := run(t, "decode", missing)
	assert.Error(t, err)
	assert.Contains(t, out, "missing.png: error:")
}

func TestBatchCommand(t *testing.T) {
	dir := isolate(t)
	scans := filepath.Join(dir, "scans")
	require.NoError(t, os.Mkdir(scans, 0o755))
	writePNG(t, scans, "1.png", "one")
	writePNG(t, scans, "2.png", "two")

	out, err := run(t, "batch", "--workers", "2", scans)
	require.NoError(t, err)
	assert.Contains(t, out, ": one\n")
	assert.Contains(t, out, ": two\n")
}

func TestInvalidLogLevel(t *testing.T) {
	dir := isolate(t)
	path := writePNG(t, dir, "a.png", "x")

	_, err := run(t, "--log-level", "loud", "decode", path)
	assert.ErrorContains(t, err, "invalid log level")
}
