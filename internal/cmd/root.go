package cmd

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/config"
	"github.com/rently-vn/rently/internal/log"
	"github.com/rently-vn/rently/internal/platform"
	"github.com/rently-vn/rently/internal/session"
)

// App bundles the wired core: one client, one store, one session manager,
// constructed once at startup and shared by every command.
type App struct {
	Config   config.Config
	Logger   *log.Logger
	Client   *platform.Client
	Sessions *session.Manager
}

var app *App

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "rently",
	Short: "Command-line client for the Rently room-rental backend",
	Long: `rently is a command-line client for the Rently room-rental management
backend. It handles login, token refresh, and session persistence, and gives
you access to rooms, posts, buildings, furniture, and your account profile.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initApp() error {
	if app != nil {
		return nil
	}

	// Missing .env is the normal case
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	logCfg := log.Config{
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: log.ParseFormat(cfg.Log.Format),
		Output: log.OutputStderr(),
	}
	if verbose {
		logCfg = log.VerboseConfig()
	}
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	store := session.NewFileStore(cfg.Session.Path, logger)
	client := platform.New(cfg.API.BaseURL, store,
		platform.WithTimeout(cfg.API.Timeout),
		platform.WithLogger(logger),
	)

	sessions := session.NewManager(store, client, logger)
	sessions.Bootstrap()

	app = &App{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Sessions: sessions,
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml or ~/.rently/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
