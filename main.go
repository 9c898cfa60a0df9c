package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/shelf/internal/commands"
	"github.com/colonyops/shelf/internal/core/config"
	"github.com/colonyops/shelf/internal/core/library"
	"github.com/colonyops/shelf/internal/core/styles"
	"github.com/colonyops/shelf/internal/store/jsonfile"
	"github.com/colonyops/shelf/pkg/logutils"
)

// Build information, set via -ldflags at release time. A plain `go install`
// leaves these at their defaults and build() falls back to the module
// metadata the toolchain embeds.
var (
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		info, ok := debug.ReadBuildInfo()
		if ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					c = s.Value
				}
				if s.Key == "vcs.time" {
					d = s.Value
				}
			}
		}
	}

	return fmt.Sprintf("%s (%s) %s", v, shortCommit(c), d)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "shelf",
		Usage:     "Browse and read a processed document library in the terminal",
		UsageText: "shelf [global options] command [command options]",
		Description: `Shelf is a themed browser for a directory of processed documents
and notebooks. It reads the metadata index the processing pipeline
writes, shows folders and documents in a sortable grid, and opens
documents in a built-in pager with page restore and search.

Run 'shelf' with no arguments to open the interactive browser.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SHELF_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("SHELF_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SHELF_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "library",
				Aliases:     []string{"l"},
				Usage:       "path to the processed library directory",
				Sources:     cli.EnvVars("SHELF_LIBRARY"),
				Value:       commands.DefaultLibraryDir(),
				Destination: &flags.LibraryDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.LibraryDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Apply configured theme (validation ensures name is valid)
			palette, _ := styles.GetPalette(cfg.Theme)
			styles.SetTheme(palette)

			lib, err := library.Load(cfg.LibraryDir, library.LoadOptions{Ignore: cfg.Ignore})
			if err != nil {
				return ctx, fmt.Errorf("load library: %w", err)
			}

			recentsStore := jsonfile.NewRecentsStore(cfg.RecentsFile())
			if entries, err := recentsStore.List(); err != nil {
				log.Warn().Err(err).Msg("failed to read recents file")
			} else {
				lib.ApplyRecents(entries)
			}

			flags.Library = lib
			flags.Recents = recentsStore

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = commands.NewLsCmd(flags).Register(app)
	app = commands.NewThemesCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Open the browser when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'shelf --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Println()
		fmt.Println(runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
