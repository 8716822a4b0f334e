// Package main provides the CLI entrypoint for termtyper.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/termtyper/internal/config"
	"github.com/verte-zerg/termtyper/internal/input"
	"github.com/verte-zerg/termtyper/internal/model"
	"github.com/verte-zerg/termtyper/internal/prompt"
	"github.com/verte-zerg/termtyper/internal/provider"
	"github.com/verte-zerg/termtyper/internal/session"
	"github.com/verte-zerg/termtyper/internal/store"
	"github.com/verte-zerg/termtyper/internal/tui"
)

const (
	defaultLang            = "en"
	defaultSentences       = 3
	defaultTimeoutSeconds  = 30
	defaultMaxAttempts     = 3
	defaultEscapeTimeoutMs = 100
)

var (
	practiceProvider string
	practiceModel    string
	practiceMargin   int
	practiceVerbose  bool

	keyClear bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "termtyper",
		Short:         "Terminal typing practice with generated texts",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceProvider, "provider", provider.NameGemini, "text provider: gemini, openai, anthropic, openrouter, offline")
	rootCmd.Flags().StringVar(&practiceModel, "model", "", "model name for the provider (default: provider specific)")
	rootCmd.Flags().IntVar(&practiceMargin, "margin", tui.DefaultMargin, "columns kept free at the right edge")
	rootCmd.Flags().BoolVar(&practiceVerbose, "verbose", false, "log provider requests to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKeyCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	console := &prompt.Console{}
	pcfg := providerConfig(cfg)
	if err := ensureAPIKey(ctx, &pcfg, st, console); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			return nil
		}
		return err
	}

	var providerLog io.Writer
	if practiceVerbose {
		providerLog = os.Stderr
	}
	prov, err := provider.NewProvider(ctx, pcfg, providerLog)
	if err != nil {
		return fmt.Errorf("failed to create provider: %w", err)
	}
	texts := &provider.Texts{
		Provider: prov,
		Cache:    st,
		Fallback: cfg.FallbackText,
		Timeout:  cfg.Timeout,
		Log:      os.Stderr,
	}
	controller := &session.Controller{
		Attempt: session.TerminalAttempt(session.TerminalConfig{
			Margin:        cfg.Margin,
			EscapeTimeout: cfg.EscapeTimeout,
		}),
		Prompter: console,
		Out:      cmd.OutOrStdout(),
	}

	err = practiceLoop(ctx, console, texts, controller, cmd.OutOrStdout())
	if errors.Is(err, input.ErrTerminalUnavailable) {
		return fmt.Errorf("terminal error: %w (termtyper needs an interactive terminal; run `stty sane` if input stays hidden)", err)
	}
	return err
}

// The practice loop talks to prompt.Console, provider.Texts and session.Controller
// through these.
type topicAsker interface {
	Ask(question string) (string, error)
}

type textSource interface {
	Generate(ctx context.Context, topic string) string
}

type decider interface {
	Practice(ctx context.Context, reference string) (session.Decision, error)
}

func practiceLoop(ctx context.Context, asker topicAsker, texts textSource, practice decider, out io.Writer) error {
	for {
		topic, err := asker.Ask("Enter a prompt for text generation:")
		if errors.Is(err, prompt.ErrAborted) {
			break
		}
		if err != nil {
			return err
		}

		text := texts.Generate(ctx, topic)
		if _, err := fmt.Fprintln(out, "\nText fetched successfully! Get ready to type..."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		decision, err := practice.Practice(ctx, text)
		if errors.Is(err, prompt.ErrAborted) || errors.Is(err, context.Canceled) {
			break
		}
		if err != nil {
			return err
		}
		if decision == session.DecisionExit {
			break
		}
	}
	if _, err := fmt.Fprintln(out, "Thanks for practicing with termtyper!"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	applyStringConfig(cmd, "provider", &practiceProvider, fileCfg.Provider.Name)
	applyStringConfig(cmd, "model", &practiceModel, fileCfg.Provider.Model)
	applyIntConfig(cmd, "margin", &practiceMargin, fileCfg.Practice.Margin)

	cfg := model.Config{
		Margin:        practiceMargin,
		EscapeTimeout: time.Duration(intOr(fileCfg.Practice.EscapeTimeoutMs, defaultEscapeTimeoutMs)) * time.Millisecond,
		FallbackText:  stringOr(fileCfg.Practice.FallbackText, provider.DefaultFallbackText),
		Provider:      strings.ToLower(strings.TrimSpace(practiceProvider)),
		Model:         practiceModel,
		BaseURL:       stringOr(fileCfg.Provider.BaseURL, ""),
		Timeout:       time.Duration(intOr(fileCfg.Provider.TimeoutSeconds, defaultTimeoutSeconds)) * time.Second,
		MaxAttempts:   intOr(fileCfg.Provider.MaxAttempts, defaultMaxAttempts),
		Lang:          stringOr(fileCfg.Provider.Lang, defaultLang),
		Sentences:     intOr(fileCfg.Provider.Sentences, defaultSentences),
	}
	cfg.WordList = stringOr(fileCfg.Provider.WordList, config.DefaultWordListPath(cfg.Lang))
	if !cmd.Flags().Changed("provider") {
		if env := strings.TrimSpace(os.Getenv(provider.ProviderEnvVar)); env != "" {
			cfg.Provider = strings.ToLower(env)
		}
	}

	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func providerConfig(cfg model.Config) provider.Config {
	pcfg := provider.DefaultConfig()
	pcfg.Provider = cfg.Provider
	pcfg.SetModel(cfg.Model)
	pcfg.SetBaseURL(cfg.BaseURL)
	pcfg.Timeout = cfg.Timeout
	pcfg.Retry.MaxAttempts = cfg.MaxAttempts
	pcfg.Offline.WordList = cfg.WordList
	pcfg.Offline.Lang = cfg.Lang
	pcfg.Offline.Sentences = cfg.Sentences
	return pcfg
}

// credentialStore is the part of store.Store used for API keys.
type credentialStore interface {
	Credential(ctx context.Context, provider string) (string, error)
	PutCredential(ctx context.Context, provider, secret string) error
}

type secretAsker interface {
	AskSecret(question string) (string, error)
}

// ensureAPIKey resolves the key from the environment, then the store, then asks
// once and persists the answer.
func ensureAPIKey(ctx context.Context, pcfg *provider.Config, creds credentialStore, asker secretAsker) error {
	pcfg.ApplyEnv()
	if !pcfg.NeedsKey() || pcfg.APIKey() != "" {
		return nil
	}
	key, err := creds.Credential(ctx, pcfg.Provider)
	if err == nil {
		pcfg.SetAPIKey(key)
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	key, err = asker.AskSecret(fmt.Sprintf("Please enter your %s API key:", providerTitle(pcfg.Provider)))
	if err != nil {
		return err
	}
	if err := creds.PutCredential(ctx, pcfg.Provider, key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	pcfg.SetAPIKey(key)
	return nil
}

func providerTitle(name string) string {
	switch name {
	case provider.NameOpenAI:
		return "OpenAI"
	case provider.NameOpenRouter:
		return "OpenRouter"
	case "":
		return ""
	default:
		return strings.ToUpper(name[:1]) + name[1:]
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Replace or remove the stored API key",
		Args:  cobra.NoArgs,
		RunE:  runKeyCmd,
	}
	cmd.Flags().StringVar(&practiceProvider, "provider", provider.NameGemini, "provider the key belongs to")
	cmd.Flags().BoolVar(&keyClear, "clear", false, "remove the stored key")
	return cmd
}

func runKeyCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "provider", &practiceProvider, fileCfg.Provider.Name)
	name := strings.ToLower(strings.TrimSpace(practiceProvider))
	if provider.KeyEnvVar(name) == "" {
		return fmt.Errorf("provider %q does not use an API key", name)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	if keyClear {
		if err := st.DeleteCredential(ctx, name); err != nil {
			return err
		}
		_, err := fmt.Fprintf(out, "Removed the stored %s API key.\n", providerTitle(name))
		return err
	}

	key, err := (&prompt.Console{}).AskSecret(fmt.Sprintf("Please enter your %s API key:", providerTitle(name)))
	if errors.Is(err, prompt.ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := st.PutCredential(ctx, name, key); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}
	_, err = fmt.Fprintf(out, "Saved the %s API key.\n", providerTitle(name))
	return err
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func intOr(value *int, def int) int {
	if value == nil {
		return def
	}
	return *value
}

func stringOr(value *string, def string) string {
	if value == nil {
		return def
	}
	return *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# termtyper configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# margin = %d                 # Columns kept free at the right edge
# escape-timeout-ms = %d      # Wait after ESC before treating it as a cancel
# fallback-text = %q

[provider]
# name = %q               # gemini, openai, anthropic, openrouter, offline
# model = ""                 # Provider specific model name
# base-url = ""              # OpenAI-compatible or Anthropic endpoint override
# timeout-seconds = %d
# max-attempts = %d
# wordlist = %q  # Offline provider word list
# lang = %q
# sentences = %d
`,
		tui.DefaultMargin,
		defaultEscapeTimeoutMs,
		provider.DefaultFallbackText,
		provider.NameGemini,
		defaultTimeoutSeconds,
		defaultMaxAttempts,
		config.DefaultWordListPath(defaultLang),
		defaultLang,
		defaultSentences,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Margin < 0 {
		return fmt.Errorf("--margin must be >= 0")
	}
	if cfg.EscapeTimeout <= 0 {
		return fmt.Errorf("escape-timeout-ms must be > 0")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout-seconds must be > 0")
	}
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("max-attempts must be >= 1")
	}
	if cfg.Sentences < 1 {
		return fmt.Errorf("sentences must be >= 1")
	}
	switch cfg.Provider {
	case provider.NameGemini, provider.NameOpenAI, provider.NameAnthropic, provider.NameOpenRouter, provider.NameOffline:
	default:
		return fmt.Errorf("unknown provider %q", cfg.Provider)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
