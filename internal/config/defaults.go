package config

// DefaultAgentCommand launches the bot's agent entry point from PATH.
var DefaultAgentCommand = []string{"parley-agent"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StateDir: DefaultStateDir(),

		Agent: AgentConfig{
			Command: append([]string(nil), DefaultAgentCommand...),
		},

		E2E: E2EConfig{
			StateDir: DefaultE2EStateDir(),
			Timeout:  0, // No timeout, a hung agent hangs the run
		},
	}
}
