package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brianonbased-dev/infinity-assistant/cli/config"
)

func (a *App) newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a starter configuration file to ~/.infinity/config.yaml.

The generated file documents every setting with its default commented out.
Refuses to overwrite an existing file unless --force is given.

Example:
  infinity init
  infinity init --config ./infinity.yaml`,
		// Skip config loading; init creates the config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if dir := filepath.Dir(path); dir != "." {
				if err := os.MkdirAll(dir, 0700); err != nil {
					return fmt.Errorf("failed to create config directory: %w", err)
				}
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0600); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}

			fmt.Fprintf(a.stdout, "Created %s\n\n", path)
			fmt.Fprintln(a.stdout, "Next steps:")
			fmt.Fprintln(a.stdout, "  infinity keys set")
			fmt.Fprintln(a.stdout, "  infinity chat --message \"Hello\"")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

const starterConfig = `# Infinity Assistant CLI configuration.
# API keys are not stored here; use 'infinity keys set' or the
# INFINITY_ASSISTANT_API_KEY environment variable.

# Keystore profile holding the API key.
# api_key_ref: default

# Override the production endpoint.
# base_url: https://infinityassistant.io/api

# Per-attempt request timeout in seconds.
# timeout_seconds: 60

# Retry budget for rate limits and network failures.
# max_retries: 3

# Base delay between retries in seconds.
# retry_delay_seconds: 1

# Chat mode when --mode is not given: search, assist, or build.
# default_mode: assist

# Optional rotating log file.
# log:
#   file: ~/.infinity/cli.log
#   level: info
#   max_size_mb: 10
#   max_backups: 3
#   compress: true
`
