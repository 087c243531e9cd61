package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_CreatesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := New(dir)
	require.NoError(t, err)
	defer func() { _ = logger.Close() }()

	_, err = os.Stat(filepath.Join(dir, "parley.log"))
	assert.NoError(t, err)
}

func TestLogger_ErrorfWritesToFile(t *testing.T) {
	dir := t.TempDir()

	logger, err := New(dir)
	require.NoError(t, err)
	logger.errw = &bytes.Buffer{}

	logger.Errorf("save %s: %v", "names.json", "disk full")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, "parley.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "save names.json: disk full")
}

func TestDebugLog_DisabledByDefault(t *testing.T) {
	var buf bytes.Buffer
	orig := debugOut
	debugOut = &buf
	defer func() { debugOut = orig }()

	SetDebug(false)
	DebugLog("displayname", "load failed: %v", "boom")

	assert.Empty(t, buf.String())
}

func TestDebugLog_Enabled(t *testing.T) {
	var buf bytes.Buffer
	orig := debugOut
	debugOut = &buf
	defer func() { debugOut = orig }()

	SetDebug(true)
	defer SetDebug(false)

	DebugLog("displayname", "load failed: %v", "boom")

	assert.Contains(t, buf.String(), "DEBUG displayname: load failed: boom")
	assert.True(t, DebugEnabled())
}

func TestDebugLog_GoesToGlobalLogFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(dir))

	SetDebug(true)
	defer SetDebug(false)

	DebugLog("e2e", "spawned pid %d", 42)
	require.NoError(t, Close())

	data, err := os.ReadFile(filepath.Join(dir, "parley.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "DEBUG e2e: spawned pid 42")
}
