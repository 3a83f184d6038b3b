package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitlit/internal/cli"
	"github.com/julianstephens/habitlit/internal/cli/backups"
	"github.com/julianstephens/habitlit/internal/cli/habits"
	"github.com/julianstephens/habitlit/internal/cli/stats"
	"github.com/julianstephens/habitlit/internal/cli/system"
	"github.com/julianstephens/habitlit/internal/constants"
	"github.com/julianstephens/habitlit/internal/errors"
	"github.com/julianstephens/habitlit/internal/keyring"
	"github.com/julianstephens/habitlit/internal/logger"
	"github.com/julianstephens/habitlit/internal/storage"
	"github.com/julianstephens/habitlit/internal/storage/postgres"
	"github.com/julianstephens/habitlit/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or the OS keyring instead." type:"string" default:"~/.config/habitlit/habitlit.db" env:"HABITLIT_DB_CONNECTION"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init      system.InitCmd     `cmd:"" help:"Initialize habitlit storage."`
	Migrate   system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor    system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui       system.TuiCmd      `cmd:"" help:"Launch the interactive statistics viewer." default:"1"`
	Habit     habits.HabitCmd    `cmd:"" help:"Manage habits."`
	Mark      habits.MarkCmd     `cmd:"" help:"Toggle a habit's completion for a day."`
	Stats     stats.StatsCmd     `cmd:"" help:"Show per-habit statistics for a month."`
	Breakdown stats.BreakdownCmd `cmd:"" help:"Show completions per month for a year."`
	Summary   stats.SummaryCmd   `cmd:"" help:"Show highlights across all habits."`
	Export    backups.ExportCmd  `cmd:"" help:"Export all data to a JSON file."`
	Import    backups.ImportCmd  `cmd:"" help:"Replace all data with a JSON export."`
	Backup    backups.BackupCmd  `cmd:"" help:"Manage database snapshots."`
	ConfigCmd system.ConfigCmd   `cmd:"" name:"config" help:"Manage the stored database connection."`
}

// commands that manage storage state themselves and must run before Load
var skipLoad = map[string]bool{
	"init":   true,
	"doctor": true,
	"config": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, consistency scores, and monthly breakdowns"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath, err := resolveConfig(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := openStore(configPath)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	command := strings.Fields(ctx.Command())[0]
	if !skipLoad[command] {
		if err := store.Load(); err != nil {
			store.Close()
			errors.Fatal(loadHint(err))
		}
	}

	if err := ctx.Run(cli.NewContext(store)); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// resolveConfig expands the home directory and, when the default path is in
// use, prefers a connection string saved in the OS keyring.
func resolveConfig(config string) (string, error) {
	if config == constants.DefaultConfigPath {
		config = keyring.ConnectionOrDefault(config)
	}
	if postgres.IsURL(config) {
		return config, nil
	}
	return expandHome(config)
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// logDir keeps logs next to the SQLite database, or in the default config
// directory when the data lives in PostgreSQL.
func logDir(config string) string {
	if postgres.IsURL(config) {
		if dir, err := expandHome(filepath.Dir(constants.DefaultConfigPath)); err == nil {
			return dir
		}
		return os.TempDir()
	}
	return filepath.Dir(config)
}

func openStore(config string) (storage.Provider, error) {
	if !postgres.IsURL(config) {
		return sqlite.NewStore(config), nil
	}
	if err := postgres.ValidateConnString(config); err != nil {
		if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, errors.WithHint(err, fmt.Sprintf(
				"store the full connection string with '%s config set-connection', export %s, or use a .pgpass file",
				constants.AppName, constants.ConnectionEnvVar))
		}
		return nil, err
	}
	return postgres.New(config), nil
}

func loadHint(err error) error {
	if stderrors.Is(err, storage.ErrNotInitialized) {
		return errors.WithHint(err, fmt.Sprintf("run '%s init' to create the database", constants.AppName))
	}
	return errors.WithHint(err, fmt.Sprintf("run '%s doctor' to diagnose the database", constants.AppName))
}
