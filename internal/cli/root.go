package cli

import (
	"fmt"

	"github.com/existflow/taskapi/internal/config"
	"github.com/existflow/taskapi/internal/db"
	"github.com/existflow/taskapi/internal/logger"
	"github.com/spf13/cobra"
)

// rootOptions carries persistent flag values and the loaded config
type rootOptions struct {
	configPath string
	logLevel   string
	logFile    string
	logConsole bool

	cfg *config.Config
}

// NewRootCmd builds the taskapi command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "taskapi",
		Short: "taskapi - project and task tracking HTTP API",
		Long: `taskapi serves a CRUD HTTP API for projects and the tasks they own,
backed by SQLite or PostgreSQL.

Run 'taskapi serve' to start the server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Info("taskapi exiting", logger.F("command", cmd.Name()))
			_ = logger.Close()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Path to log file")
	cmd.PersistentFlags().BoolVar(&opts.logConsole, "log-console", true, "Enable console logging")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newMigrateCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// load reads the config, applies flag overrides and starts the logger
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	// Override with CLI flags if provided
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	if cmd.Flags().Changed("log-console") {
		cfg.LogConsole = o.logConsole
	}

	logConfig := logger.DefaultConfig()
	logConfig.Level = logger.ParseLevel(cfg.LogLevel)
	logConfig.FilePath = cfg.LogFile
	logConfig.Console = cfg.LogConsole

	if err := logger.Init(logConfig); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	o.cfg = cfg
	logger.Info("taskapi started", logger.F("command", cmd.Name()))
	return nil
}

// openStore opens the configured database, running migrations
func (o *rootOptions) openStore() (*db.DB, error) {
	store, err := db.Open(o.cfg.DBDriver, o.cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database",
			logger.F("driver", o.cfg.DBDriver),
			logger.F("error", err))
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	logger.Info("Database ready", logger.F("driver", store.Driver()))
	return store, nil
}
