package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/asteroid-belt/parley/internal/config"
	"github.com/asteroid-belt/parley/internal/displayname"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStateDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(config.EnvStateDir, dir)
	t.Setenv(config.EnvDebug, "")
	return dir
}

func TestNameCmd_Structure(t *testing.T) {
	var names []string
	for _, cmd := range nameCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{"get", "set", "clear", "list", "handle"}, names)
}

func TestNameSetCmd_ArgsValidation(t *testing.T) {
	assert.Error(t, nameSetCmd.Args(nameSetCmd, []string{"whatsapp", "alice"}))
	assert.NoError(t, nameSetCmd.Args(nameSetCmd, []string{"whatsapp", "alice", "Ali"}))
	assert.NoError(t, nameSetCmd.Args(nameSetCmd, []string{"whatsapp", "alice", "Dr.", "Ali"}))
}

func TestNameGetCmd_ArgsValidation(t *testing.T) {
	assert.Error(t, nameGetCmd.Args(nameGetCmd, []string{"whatsapp"}))
	assert.NoError(t, nameGetCmd.Args(nameGetCmd, []string{"whatsapp", "alice"}))
	assert.Error(t, nameGetCmd.Args(nameGetCmd, []string{"whatsapp", "alice", "extra"}))
}

func TestNameSetAndGet(t *testing.T) {
	dir := setupStateDir(t)

	out, err := runCLI(t, "name", "set", "WhatsApp", "Alice@S.WhatsApp.Net", "Dr.", "Ali")
	require.NoError(t, err)
	assert.Contains(t, out, `Display name set to "Dr. Ali".`)

	out, err = runCLI(t, "name", "get", "whatsapp", "alice@s.whatsapp.net")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Ali\n", out)

	name, ok := displayname.NewStore(dir).Get(displayname.PlatformWhatsApp, "alice@s.whatsapp.net")
	assert.True(t, ok)
	assert.Equal(t, "Dr. Ali", name)
}

func TestNameGet_NotSet(t *testing.T) {
	setupStateDir(t)

	out, err := runCLI(t, "name", "get", "telegram", " 12345 ")
	require.NoError(t, err)
	assert.Contains(t, out, `No display name set (shown as "12345").`)
}

func TestNameSet_UnknownPlatform(t *testing.T) {
	setupStateDir(t)

	_, err := runCLI(t, "name", "set", "myspace", "tom", "Tom")
	assert.ErrorContains(t, err, "unknown platform")
}

func TestNameSet_BlankSender(t *testing.T) {
	setupStateDir(t)

	_, err := runCLI(t, "name", "set", "whatsapp", "  ", "Tom")
	assert.ErrorContains(t, err, "invalid sender id")
}

func TestNameClear(t *testing.T) {
	setupStateDir(t)

	_, err := runCLI(t, "name", "set", "signal", "+4912345", "Sig")
	require.NoError(t, err)

	out, err := runCLI(t, "name", "clear", "signal", "+4912345")
	require.NoError(t, err)
	assert.Contains(t, out, "Display name cleared.")

	out, err = runCLI(t, "name", "clear", "signal", "+4912345")
	require.NoError(t, err)
	assert.Contains(t, out, "No display name set.")
}

func TestNameList(t *testing.T) {
	setupStateDir(t)

	out, err := runCLI(t, "name", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No display names yet.")

	_, err = runCLI(t, "name", "set", "telegram", "42", "Zaphod")
	require.NoError(t, err)

	out, err = runCLI(t, "name", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DISPLAY NAMES (1)")
	assert.Contains(t, out, "telegram:\n")
	assert.Contains(t, out, "Zaphod")
}

func TestNameList_GroupsByPlatform(t *testing.T) {
	setupStateDir(t)

	for _, args := range [][]string{
		{"whatsapp", "bob", "Bobby"},
		{"telegram", "42", "Zaphod"},
		{"whatsapp", "alice", "Ali"},
	} {
		_, err := runCLI(t, append([]string{"name", "set"}, args...)...)
		require.NoError(t, err)
	}

	out, err := runCLI(t, "name", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DISPLAY NAMES (3)")

	tg := strings.Index(out, "telegram:\n")
	wa := strings.Index(out, "whatsapp:\n")
	require.NotEqual(t, -1, tg)
	require.NotEqual(t, -1, wa)
	assert.Less(t, tg, wa)
	assert.Equal(t, 1, strings.Count(out, "whatsapp:\n"), "one header per platform")

	alice := strings.Index(out, "alice")
	bob := strings.Index(out, "bob")
	assert.Greater(t, alice, wa)
	assert.Less(t, alice, bob)
}

func TestNameSet_CreatesMissingStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh", "state")
	t.Setenv(config.EnvStateDir, dir)
	t.Setenv(config.EnvDebug, "")

	_, err := runCLI(t, "name", "set", "signal", "+4915", "Sig")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.FileExists(t, filepath.Join(dir, config.DisplayNamesFile))
}

func TestNameGet_DoesNotCreateStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "untouched")
	t.Setenv(config.EnvStateDir, dir)
	t.Setenv(config.EnvDebug, "")

	_, err := runCLI(t, "name", "get", "signal", "+4915")
	require.NoError(t, err)
	assert.NoDirExists(t, dir)
}

func TestNameHandle(t *testing.T) {
	dir := setupStateDir(t)

	out, err := runCLI(t, "name", "handle", "whatsapp", "bob", "call", "me", "Bobby")
	require.NoError(t, err)
	assert.Contains(t, out, "Got it, I'll call you Bobby.")

	out, err = runCLI(t, "name", "handle", "whatsapp", "bob", "/myname Robert")
	require.NoError(t, err)
	assert.Contains(t, out, "Robert")

	out, err = runCLI(t, "name", "handle", "whatsapp", "bob", "hello", "there")
	require.NoError(t, err)
	assert.Contains(t, out, "No name change requested.")

	name, ok := displayname.NewStore(dir).Get(displayname.PlatformWhatsApp, "bob")
	assert.True(t, ok)
	assert.Equal(t, "Robert", name)
}

func TestNameHandle_NoMatchDoesNotCreateFile(t *testing.T) {
	dir := setupStateDir(t)

	_, err := runCLI(t, "name", "handle", "telegram", "7", "call", "me")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, config.DisplayNamesFile))
	assert.True(t, os.IsNotExist(err))
}
