// Package commands implements the CLI command structure using Cobra.
package commands

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/brianonbased-dev/infinity-assistant/cli/config"
	"github.com/brianonbased-dev/infinity-assistant/cli/keystore"
	"github.com/brianonbased-dev/infinity-assistant/cli/logging"
	"github.com/brianonbased-dev/infinity-assistant/infinity"
)

// ConfigLoader loads CLI config from a path.
type ConfigLoader func(path string) (*config.Config, error)

// ClientFactory creates an API client using CLI config context.
type ClientFactory func(apiKey string, cfg *config.Config) (*infinity.Client, error)

// KeystoreFactory creates a keystore instance.
type KeystoreFactory func() (keystore.Keystore, error)

// AppOption customizes App dependencies.
type AppOption func(*App)

// App holds CLI state and runtime dependencies.
type App struct {
	root *cobra.Command

	loadConfig  ConfigLoader
	newClient   ClientFactory
	newKeystore KeystoreFactory
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer

	cfgFile    string
	mode       string
	jsonOutput bool
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger

	chatMessage string
	chatStream  bool
	chatUser    string
	chatSession string
}

// WithConfigLoader injects a config loader dependency.
func WithConfigLoader(loader ConfigLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadConfig = loader
		}
	}
}

// WithClientFactory injects a client factory dependency.
func WithClientFactory(factory ClientFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newClient = factory
		}
	}
}

// WithKeystoreFactory injects a keystore factory dependency.
func WithKeystoreFactory(factory KeystoreFactory) AppOption {
	return func(a *App) {
		if factory != nil {
			a.newKeystore = factory
		}
	}
}

// WithIO injects process I/O streams.
func WithIO(stdin io.Reader, stdout, stderr io.Writer) AppOption {
	return func(a *App) {
		if stdin != nil {
			a.stdin = stdin
		}
		if stdout != nil {
			a.stdout = stdout
		}
		if stderr != nil {
			a.stderr = stderr
		}
	}
}

// NewApp creates a new CLI app with default dependencies.
func NewApp(opts ...AppOption) *App {
	a := &App{
		loadConfig:  config.LoadConfig,
		newClient:   defaultClientFactory,
		newKeystore: keystore.NewKeystore,
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.root = a.newRootCommand()
	return a
}

func (a *App) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "infinity",
		Short: "Infinity Assistant - chat, knowledge, memory, and research from the terminal",
		Long: `Infinity is a command-line interface for the Infinity Assistant API.

Use it to chat with the assistant, search the knowledge base, store and
retrieve memories, run research tasks, and manage API keys and webhooks.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
		SilenceUsage: true,
	}

	// Global flags available to all commands.
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.infinity/config.yaml)")
	root.PersistentFlags().StringVar(&a.mode, "mode", "", "chat mode (search, assist, build)")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "emit JSON output")
	root.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "enable debug logging")

	root.AddCommand(a.newChatCommand())
	root.AddCommand(a.newSearchCommand())
	root.AddCommand(a.newMemoryCommand())
	root.AddCommand(a.newResearchCommand())
	root.AddCommand(a.newAPIKeysCommand())
	root.AddCommand(a.newWebhooksCommand())
	root.AddCommand(a.newHealthCommand())
	root.AddCommand(a.newKeysCommand())
	root.AddCommand(a.newInitCommand())
	root.AddCommand(a.newVersionCommand())

	return root
}

// Execute runs the root command.
func (a *App) Execute() error {
	return a.root.Execute()
}

func (a *App) initConfig() error {
	path := a.cfgFile
	if path == "" {
		path = config.DefaultConfigPath()
	}

	cfg, err := a.loadConfig(path)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logging.New(a.stderr, cfg.Log, a.verbose)

	// Apply config defaults if flags not set.
	if a.mode == "" && cfg.DefaultMode != "" {
		a.mode = cfg.DefaultMode
	}

	return nil
}

// resolveAPIKey finds the API key: environment first, then the keystore entry
// named by api_key_ref (default "default").
func (a *App) resolveAPIKey() (string, error) {
	if key := os.Getenv(infinity.APIKeyEnvVar); key != "" {
		return key, nil
	}

	ks, err := a.newKeystore()
	if err != nil {
		return "", exitWithCode(ExitValidation, err)
	}

	ref := "default"
	if a.cfg != nil && a.cfg.APIKeyRef != "" {
		ref = a.cfg.APIKeyRef
	}

	key, err := ks.Get(ref)
	if err != nil {
		if _, ok := err.(*keystore.ErrKeyNotFound); ok {
			return "", exitWithCode(ExitValidation,
				errNoAPIKey(ref))
		}
		return "", exitWithCode(ExitValidation, err)
	}
	return key, nil
}

// client resolves the API key and builds a configured client.
func (a *App) client() (*infinity.Client, error) {
	apiKey, err := a.resolveAPIKey()
	if err != nil {
		return nil, err
	}
	return a.newClient(apiKey, a.cfg)
}

func defaultClientFactory(apiKey string, cfg *config.Config) (*infinity.Client, error) {
	var opts []infinity.Option
	if cfg != nil {
		if cfg.BaseURL != "" {
			opts = append(opts, infinity.WithBaseURL(cfg.BaseURL))
		}
		if cfg.TimeoutSeconds > 0 {
			opts = append(opts, infinity.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
		}
		if cfg.MaxRetries > 0 {
			opts = append(opts, infinity.WithMaxRetries(cfg.MaxRetries))
		}
		if cfg.RetryDelaySeconds > 0 {
			opts = append(opts, infinity.WithRetryDelay(time.Duration(cfg.RetryDelaySeconds*float64(time.Second))))
		}
	}
	return infinity.New(apiKey, opts...), nil
}

var defaultApp = NewApp()

// Execute runs the default app root command.
func Execute() error {
	return defaultApp.Execute()
}
