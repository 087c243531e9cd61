package cli

import (
	"fmt"
	"strings"

	"github.com/asteroid-belt/parley/internal/config"
	"github.com/asteroid-belt/parley/internal/displayname"
	"github.com/spf13/cobra"
)

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Manage user display names",
	Long: `Manage the display names users pick for themselves.

Names are stored in group-display-names.json in the state directory,
keyed by "<platform>:<sender id>".

Subcommands:
  get <platform> <sender>             Show a sender's display name
  set <platform> <sender> <name...>   Set a sender's display name
  clear <platform> <sender>           Remove a sender's display name
  list                                List all display names
  handle <platform> <sender> <text>   Apply a "/myname" or "call me" message`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var nameGetCmd = &cobra.Command{
	Use:   "get <platform> <sender>",
	Short: "Show a sender's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runNameGet,
}

var nameSetCmd = &cobra.Command{
	Use:   "set <platform> <sender> <name...>",
	Short: "Set a sender's display name",
	Long:  `Set a sender's display name. A blank name clears it.`,
	Args:  cobra.MinimumNArgs(3),
	RunE:  runNameSet,
}

var nameClearCmd = &cobra.Command{
	Use:   "clear <platform> <sender>",
	Short: "Remove a sender's display name",
	Args:  cobra.ExactArgs(2),
	RunE:  runNameClear,
}

var nameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all display names",
	Args:  cobra.NoArgs,
	RunE:  runNameList,
}

var nameHandleCmd = &cobra.Command{
	Use:   "handle <platform> <sender> <text...>",
	Short: "Apply a name-change message from a sender",
	Long: `Run a message through the name-change parser the way the bot does for
incoming messages. If the text is "/myname <name>" or "call me <name>",
the name is stored for that same sender.`,
	Args: cobra.MinimumNArgs(3),
	RunE: runNameHandle,
}

func init() {
	nameCmd.AddCommand(nameGetCmd)
	nameCmd.AddCommand(nameSetCmd)
	nameCmd.AddCommand(nameClearCmd)
	nameCmd.AddCommand(nameListCmd)
	nameCmd.AddCommand(nameHandleCmd)
}

// openStore opens the display-name store in the configured state directory.
// Commands that write create the directory first.
func openStore(write bool) (*displayname.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if write {
		if err := config.EnsureStateDir(cfg); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	return displayname.NewStore(cfg.StateDir), nil
}

func parseSender(platformArg, sender string) (displayname.Platform, error) {
	platform, ok := displayname.ParsePlatform(platformArg)
	if !ok {
		return "", fmt.Errorf("unknown platform %q", platformArg)
	}
	if _, ok := displayname.DeriveKey(platform, sender); !ok {
		return "", fmt.Errorf("invalid sender id %q", sender)
	}
	return platform, nil
}

func runNameGet(cmd *cobra.Command, args []string) error {
	platform, err := parseSender(args[0], args[1])
	if err != nil {
		return trackCLIError("name get", err)
	}
	store, err := openStore(false)
	if err != nil {
		return trackCLIError("name get", err)
	}

	out := cmd.OutOrStdout()
	if name, ok := store.Get(platform, args[1]); ok {
		_, _ = fmt.Fprintln(out, name)
		return nil
	}
	_, _ = fmt.Fprintf(out, "No display name set (shown as %q).\n", store.SenderLabel(platform, args[1], ""))
	return nil
}

func runNameSet(cmd *cobra.Command, args []string) error {
	platform, err := parseSender(args[0], args[1])
	if err != nil {
		return trackCLIError("name set", err)
	}
	store, err := openStore(true)
	if err != nil {
		return trackCLIError("name set", err)
	}

	name := strings.TrimSpace(strings.Join(args[2:], " "))
	if err := store.Set(platform, args[1], name); err != nil {
		return trackCLIError("name set", fmt.Errorf("save display name: %w", err))
	}

	if name == "" {
		telemetryClient.TrackDisplayNameCleared(string(platform))
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Display name cleared.")
		return nil
	}
	telemetryClient.TrackDisplayNameSet(string(platform), false)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Display name set to %q.\n", name)
	return nil
}

func runNameClear(cmd *cobra.Command, args []string) error {
	platform, err := parseSender(args[0], args[1])
	if err != nil {
		return trackCLIError("name clear", err)
	}
	store, err := openStore(true)
	if err != nil {
		return trackCLIError("name clear", err)
	}

	if _, ok := store.Get(platform, args[1]); !ok {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No display name set.")
		return nil
	}
	if err := store.Clear(platform, args[1]); err != nil {
		return trackCLIError("name clear", fmt.Errorf("save display name: %w", err))
	}

	telemetryClient.TrackDisplayNameCleared(string(platform))
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Display name cleared.")
	return nil
}

func runNameList(cmd *cobra.Command, args []string) error {
	store, err := openStore(false)
	if err != nil {
		return trackCLIError("name list", err)
	}

	out := cmd.OutOrStdout()
	prefs := store.All()
	if len(prefs) == 0 {
		_, _ = fmt.Fprintln(out, "No display names yet.")
		return nil
	}

	_, _ = fmt.Fprintf(out, "DISPLAY NAMES (%d)\n", len(prefs))
	_, _ = fmt.Fprintln(out, strings.Repeat("─", 50))
	// All sorts by key, so each platform's entries are contiguous.
	var current displayname.Platform
	for _, p := range prefs {
		if platform := p.Key.Platform(); platform != current {
			current = platform
			_, _ = fmt.Fprintf(out, "%s:\n", current)
		}
		_, _ = fmt.Fprintf(out, "  %-36s %s\n", p.Key.SenderID(), p.Name)
	}
	return nil
}

func runNameHandle(cmd *cobra.Command, args []string) error {
	platform, err := parseSender(args[0], args[1])
	if err != nil {
		return trackCLIError("name handle", err)
	}

	out := cmd.OutOrStdout()
	name, ok := displayname.ParseNameChangeIntent(strings.Join(args[2:], " "))
	if !ok {
		_, _ = fmt.Fprintln(out, "No name change requested.")
		return nil
	}

	store, err := openStore(true)
	if err != nil {
		return trackCLIError("name handle", err)
	}
	// The sender argument is both the author and the target.
	if err := store.Set(platform, args[1], name); err != nil {
		return trackCLIError("name handle", fmt.Errorf("save display name: %w", err))
	}

	telemetryClient.TrackDisplayNameSet(string(platform), true)
	_, _ = fmt.Fprintf(out, "Got it, I'll call you %s.\n", name)
	return nil
}
