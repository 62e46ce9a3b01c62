package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"docsum/internal/app"
	"docsum/internal/config"
	"docsum/internal/logger"
)

// cli carries the state shared by all subcommands.
type cli struct {
	cfg    config.Config
	newAPI func(*slog.Logger) app.API

	api          app.API
	log          *slog.Logger
	settings     config.Settings
	settingsPath string

	jsonOut bool
	verbose bool

	apiKey      string
	baseURL     string
	model       string
	maxTokens   int
	temperature float64
	timeout     int
}

func newRootCmd(cfg config.Config, newAPI func(*slog.Logger) app.API) *cobra.Command {
	c := &cli{cfg: cfg, newAPI: newAPI}

	root := &cobra.Command{
		Use:   "docsum",
		Short: "Summarize and chat about PDF documents with an LLM provider",
		Long: `docsum extracts the text of a local PDF and sends it to an OpenAI-compatible
or Anthropic-compatible provider, chosen from the base URL.

Provider flags default to the saved settings (see "docsum settings").`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&c.jsonOut, "json", false, "Print the raw JSON envelope")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	pf.StringVar(&c.settingsPath, "settings", "", "Settings file (default: $DOCSUM_SETTINGS or the user config dir)")
	pf.StringVar(&c.apiKey, "api-key", "", "Provider API key")
	pf.StringVar(&c.baseURL, "base-url", "", "Provider base URL")
	pf.StringVar(&c.model, "model", "", "Model name")
	pf.IntVar(&c.maxTokens, "max-tokens", 0, "Maximum completion tokens")
	pf.Float64Var(&c.temperature, "temperature", 0, "Sampling temperature")
	pf.IntVar(&c.timeout, "timeout", 0, "Request timeout in seconds")

	root.AddCommand(
		c.summarizeCmd(),
		c.chatCmd(),
		c.testCmd(),
		c.analyzeCmd(),
		c.extractCmd(),
		c.settingsCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	level := "warn"
	if c.verbose {
		level = "debug"
	}
	c.log = logger.NewWriter(cmd.ErrOrStderr(), level, "text")

	if c.settingsPath == "" {
		c.settingsPath = c.cfg.SettingsPath
	}
	if c.settingsPath == "" {
		c.settingsPath = config.DefaultSettingsPath()
	}
	s, err := config.LoadSettings(c.settingsPath)
	if err != nil {
		c.log.Warn("ignoring unreadable settings", "path", c.settingsPath, "err", err)
	}
	c.settings = s
	c.api = c.newAPI(c.log)
	return nil
}

// merged returns the saved settings overridden by explicitly set flags.
func (c *cli) merged(cmd *cobra.Command) config.Settings {
	s := c.settings
	f := cmd.Flags()
	if f.Changed("api-key") {
		s.APIKey = c.apiKey
	}
	if f.Changed("base-url") {
		s.BaseURL = c.baseURL
	}
	if f.Changed("model") {
		s.Model = c.model
	}
	if f.Changed("max-tokens") {
		s.MaxTokens = c.maxTokens
	}
	if f.Changed("temperature") {
		s.Temperature = c.temperature
	}
	if f.Changed("timeout") {
		s.Timeout = c.timeout
	}
	return s
}

func (c *cli) providerOptions(cmd *cobra.Command) app.ProviderOptions {
	s := c.merged(cmd)
	temperature := s.Temperature
	return app.ProviderOptions{
		APIKey:      s.APIKey,
		BaseURL:     s.BaseURL,
		Model:       s.Model,
		MaxTokens:   positive(s.MaxTokens),
		Temperature: &temperature,
		Timeout:     positive(s.Timeout),
	}
}

func positive(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
