package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/backups"
	"github.com/julianstephens/studylit/internal/cli/optimize"
	"github.com/julianstephens/studylit/internal/cli/settings"
	"github.com/julianstephens/studylit/internal/cli/system"
	"github.com/julianstephens/studylit/internal/constants"
	apperrors "github.com/julianstephens/studylit/internal/errors"
	"github.com/julianstephens/studylit/internal/keyring"
	"github.com/julianstephens/studylit/internal/logger"
	"github.com/julianstephens/studylit/internal/notifier"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Database path (.db for SQLite, .json for a plain document) or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded here; use the keyring, STUDYLIT_DB_CONNECTION or .pgpass." type:"string" default:"${config}"`
	LogDebug bool   `name:"debug" help:"Mirror debug logs to stderr."`

	Init     system.InitCmd       `cmd:"" help:"Initialize studylit storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Log      cli.LogCmd           `cmd:"" help:"Log a study session."`
	Entry    cli.EntryCmd         `cmd:"" help:"List or delete study sessions."`
	Habit    cli.HabitCmd         `cmd:"" help:"Manage habits and habit tracking."`
	Stats    cli.StatsCmd         `cmd:"" help:"Show the dashboard: totals, streaks and goal progress."`
	Week     cli.WeekCmd          `cmd:"" help:"Compare this week with last week."`
	Rankings cli.RankingsCmd      `cmd:"" help:"Rank subjects by hours studied."`
	Badges   cli.BadgesCmd        `cmd:"" help:"Show badges and when they were unlocked."`
	Export   cli.ExportCmd        `cmd:"" help:"Export all data as JSON or YAML."`
	Optimize optimize.OptimizeCmd `cmd:"" help:"Suggest goal adjustments from recent history."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is usable."`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Debug  system.DebugCmd  `cmd:"" help:"Debug commands for troubleshooting."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Send a study reminder (for cron or launchd)."`
}

// selfLoading commands open the store themselves or do not need it.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study session and habit tracker with streaks, goals and badges"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	location, source := keyring.Resolve(CLI.Config, CLI.Config == constants.DefaultConfigPath)

	if err := logger.Init(logger.Config{Debug: CLI.LogDebug, ConfigDir: logDir(location)}); err != nil {
		apperrors.Fatal(err)
	}
	defer logger.Close()
	logger.Debug("Resolved storage", "source", source)

	store, err := system.OpenResolved(location, source)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store:    store,
		Notifier: notifier.New(),
	}

	command := strings.Fields(ctx.Command())
	if len(command) > 0 && !selfLoading[command[0]] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// logDir keeps logs next to a local store and under the default config
// directory for PostgreSQL.
func logDir(location string) string {
	if keyring.IsPostgres(location) || strings.Contains(location, "host=") {
		location = constants.DefaultConfigPath
	}
	dir := filepath.Dir(system.ExpandPath(location))
	if dir == "." {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return dir
}
