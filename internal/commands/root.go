package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/taxtracker/taxtracker/internal/buildinfo"
	"github.com/taxtracker/taxtracker/internal/config"
	"github.com/taxtracker/taxtracker/internal/form"
	"github.com/taxtracker/taxtracker/internal/ledger"
	"github.com/taxtracker/taxtracker/internal/logging"
	"github.com/taxtracker/taxtracker/internal/store"
)

// app carries the settings resolved before any subcommand runs.
type app struct {
	configPath string
	file       string
	strict     bool
	logLevel   string

	cfg *config.Config
	log *slog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "taxtracker",
		Short:   "Personal income and expense tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.DefaultPath, "config file")
	flags.StringVar(&a.file, "file", "", "transactions file (overrides config)")
	flags.BoolVar(&a.strict, "strict", false, "fail on the first line with an invalid amount")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newTotalsCommand(a))
	rootCmd.AddCommand(newListCommand(a))
	rootCmd.AddCommand(newAddCommand(a))

	return rootCmd
}

// setup resolves configuration in order: file, .env/environment, flags.
func (a *app) setup(cmd *cobra.Command) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Data.File = a.file
	}
	if flags.Changed("strict") {
		cfg.Data.Strict = a.strict
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("addr") {
		addr, _ := flags.GetString("addr")
		cfg.Server.Addr = addr
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.log = logger
	return nil
}

// loadForm reads the transactions file into a fresh store.
func (a *app) loadForm() (*form.Form, error) {
	s := store.New()
	_, err := ledger.LoadFile(a.cfg.Data.File, s, ledger.Options{
		Strict: a.cfg.Data.Strict,
		Logger: logging.Component(a.log, "ledger"),
	})
	if err != nil {
		return nil, err
	}
	return form.New(s), nil
}
