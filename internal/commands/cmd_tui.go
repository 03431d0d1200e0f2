package commands

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/chiclet/internal/core/logging"
	"github.com/colonyops/chiclet/internal/data/watch"
	"github.com/colonyops/chiclet/internal/tui"
	"github.com/colonyops/chiclet/pkg/profiler"
)

type TuiCmd struct {
	flags *Flags

	profilerPort int
	noWatch      bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "profiler-port",
			Usage:       "enable pprof HTTP endpoint on specified port (e.g., 6060)",
			Sources:     cli.EnvVars("CHICLET_PROFILER_PORT"),
			Destination: &cmd.profilerPort,
		},
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload when the data file changes",
			Destination: &cmd.noWatch,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	if cmd.profilerPort > 0 {
		profServer := profiler.New(cmd.profilerPort, logging.Component("profiler"))
		if err := profServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start profiler: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := profServer.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("failed to shutdown profiler server")
			}
		}()
	}

	app, err := cmd.flags.OpenApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	ctx = logging.WithSessionID(ctx, uuid.NewString())
	ctx = logging.WithDataFile(ctx, app.Scope)

	var changes <-chan watch.Event
	if cfg.Data.Watch && !cmd.noWatch {
		w, err := watch.ForFile(app.Scope, cfg.Data.WatchPattern, cfg.Data.Debounce, logging.Component("watch"))
		if err != nil {
			return fmt.Errorf("watch data file: %w", err)
		}
		defer func() { _ = w.Close() }()
		changes = w.Events()
	}

	log.Info().Ctx(ctx).Msg("starting tui")

	m := tui.New(app.Slicer, tui.Options{
		Context: ctx,
		Changes: changes,
		Logger:  logging.Component("tui"),
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
