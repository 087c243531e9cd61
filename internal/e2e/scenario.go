// Package e2e smoke-tests the agent entry point by running it once per
// scenario and checking that it replies and exits cleanly.
package e2e

// EnvTestMessage supplies a single ad-hoc scenario message.
const EnvTestMessage = "TEST_MESSAGE"

// SingleScenarioName labels an ad-hoc scenario from the command line.
const SingleScenarioName = "single"

// previewLength is how many characters of a message the report shows.
const previewLength = 60

// Scenario is one input message sent to the agent.
type Scenario struct {
	Name    string
	Message string
}

// DefaultScenarios returns the fixed smoke-test suite in run order.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "reminder-exact-time", Message: "Remind me tomorrow at 9:00 to call the dentist"},
		{Name: "list-reminders", Message: "What reminders do I have?"},
		{Name: "reminder-ambiguous", Message: "Remind me later about the thing"},
		{Name: "lookup-weather", Message: "What's the weather like in Berlin today?"},
		{Name: "lookup-news", Message: "What are the latest headlines about renewable energy?"},
		{Name: "plain-question", Message: "What is the capital of Australia?"},
	}
}

// SingleScenario wraps an ad-hoc message.
func SingleScenario(message string) Scenario {
	return Scenario{Name: SingleScenarioName, Message: message}
}

// ResolveScenarios picks what to run: the first argument if given, then the
// TEST_MESSAGE environment variable, otherwise the default suite. Only an
// empty value counts as absent; whitespace is passed to the agent as is.
func ResolveScenarios(args []string, getenv func(string) string) []Scenario {
	if len(args) > 0 && args[0] != "" {
		return []Scenario{SingleScenario(args[0])}
	}
	if getenv != nil {
		if msg := getenv(EnvTestMessage); msg != "" {
			return []Scenario{SingleScenario(msg)}
		}
	}
	return DefaultScenarios()
}

// Preview shortens a message for the report.
func Preview(message string) string {
	runes := []rune(message)
	if len(runes) <= previewLength {
		return message
	}
	return string(runes[:previewLength]) + "..."
}
