// Package cmd is the thin CLI surface over the plan session. Only the
// session operation contracts matter; rendering here is plain text.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/impactlist/impactlist/llm"
	"github.com/impactlist/impactlist/models"
	"github.com/impactlist/impactlist/session"
	"github.com/impactlist/impactlist/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "impactlist",
	Short:   "Turn unstructured notes into a triaged action plan.",
	Version: version,
	Long: `ImpactList turns raw source text into a triaged list of action items:
an AI pass extracts the items, you sort them across Now/Next/Later/Skip,
and a per-item coach helps you execute them. State lives in a local,
autosaving plan file.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.impactlist/.impactlist.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// newLogger builds the slog logger the session and store log through.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if GetConfig().Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GetSession builds the session over the configured file slot. provider may
// be nil for commands that neither generate nor coach.
func GetSession(provider llm.Provider) (*session.Session, error) {
	cfg := GetConfig()
	logger := newLogger()

	slot, err := store.NewFileSlot(afero.NewOsFs(), cfg.Project.RootDir)
	if err != nil {
		return nil, err
	}

	debounce := store.DefaultDebounce
	if cfg.Data.AutosaveSeconds > 0 {
		debounce = time.Duration(cfg.Data.AutosaveSeconds) * time.Second
	}
	opts := []store.BindingOption{
		store.WithFormat(store.Format(cfg.Data.Format)),
		store.WithDebounce(debounce),
		store.WithLogger(logger),
	}

	planBinding := store.NewBinding[models.Plan](slot, cfg.Data.PlanFile, opts...)
	snapshotBinding := store.NewBinding[[]models.PlanSnapshot](slot, cfg.Data.SnapshotsFile, opts...)
	return session.New(planBinding, snapshotBinding, provider, logger), nil
}

// GetProvider builds the Eino-backed collaborator from config. Commands that
// call the model use this; triage-only commands pass nil to GetSession.
func GetProvider(cmd *cobra.Command) (llm.Provider, error) {
	cfg := GetConfig()
	name, err := llm.ValidateProvider(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	return llm.NewEinoProvider(cmd.Context(), llm.Config{
		Provider:     name,
		Model:        cfg.LLM.ModelName,
		APIKey:       cfg.LLM.APIKey,
		BaseURL:      cfg.LLM.BaseURL,
		TemplatesDir: templatesDir(),
	})
}

// commandContext derives the context for LLM-backed operations, applying the
// configured request timeout when one is set.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := GetConfig()
	if cfg.LLM.RequestTimeoutSeconds <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, time.Duration(cfg.LLM.RequestTimeoutSeconds)*time.Second)
}

func templatesDir() string {
	cfg := GetConfig()
	if cfg.Project.TemplatesDir == "" {
		return ""
	}
	return filepath.Join(cfg.Project.RootDir, cfg.Project.TemplatesDir)
}
