package e2e

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScenarios(t *testing.T) {
	scenarios := DefaultScenarios()
	require.Len(t, scenarios, 6)

	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.Name
		assert.NotEmpty(t, sc.Message)
	}
	assert.Equal(t, []string{
		"reminder-exact-time",
		"list-reminders",
		"reminder-ambiguous",
		"lookup-weather",
		"lookup-news",
		"plain-question",
	}, names)
}

func TestResolveScenarios(t *testing.T) {
	env := func(vals map[string]string) func(string) string {
		return func(k string) string { return vals[k] }
	}

	t.Run("argument wins", func(t *testing.T) {
		got := ResolveScenarios([]string{"hi there"}, env(map[string]string{EnvTestMessage: "from env"}))
		assert.Equal(t, []Scenario{{Name: "single", Message: "hi there"}}, got)
	})

	t.Run("env fallback", func(t *testing.T) {
		got := ResolveScenarios(nil, env(map[string]string{EnvTestMessage: "from env"}))
		assert.Equal(t, []Scenario{{Name: "single", Message: "from env"}}, got)
	})

	t.Run("empty argument falls through", func(t *testing.T) {
		got := ResolveScenarios([]string{""}, env(map[string]string{EnvTestMessage: "from env"}))
		assert.Equal(t, "from env", got[0].Message)
	})

	t.Run("whitespace argument is still an argument", func(t *testing.T) {
		got := ResolveScenarios([]string{"  "}, env(map[string]string{EnvTestMessage: "from env"}))
		assert.Equal(t, []Scenario{{Name: "single", Message: "  "}}, got)
	})

	t.Run("default suite", func(t *testing.T) {
		got := ResolveScenarios(nil, env(nil))
		assert.Equal(t, DefaultScenarios(), got)
	})

	t.Run("nil getenv", func(t *testing.T) {
		assert.Equal(t, DefaultScenarios(), ResolveScenarios(nil, nil))
	})
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))

	exact := strings.Repeat("a", 60)
	assert.Equal(t, exact, Preview(exact))

	long := strings.Repeat("b", 61)
	assert.Equal(t, strings.Repeat("b", 60)+"...", Preview(long))

	// Counts characters, not bytes.
	umlauts := strings.Repeat("ü", 70)
	assert.Equal(t, strings.Repeat("ü", 60)+"...", Preview(umlauts))
}
