package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/chiclet/internal/chiclet"
	"github.com/colonyops/chiclet/internal/core/dataview"
	"github.com/colonyops/chiclet/internal/core/logging"
	"github.com/colonyops/chiclet/internal/core/render"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/core/slicer"
	"github.com/colonyops/chiclet/internal/core/styles"
	"github.com/colonyops/chiclet/pkg/iojson"
)

type ConvertCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
	search     string
	all        bool
}

// NewConvertCmd creates a new convert command
func NewConvertCmd(flags *Flags) *ConvertCmd {
	return &ConvertCmd{flags: flags}
}

// Register adds the convert command to the application
func (cmd *ConvertCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "convert",
		Usage:     "Print the data points of the data file",
		UsageText: "chiclet convert [--search text] [--all] [--json]",
		Description: `Converts the data file the same way the TUI does and prints one row per
data point in display order, with the selection state from the store.

Without --search the persisted search text is applied. Use --all to keep
loading segments until the host has no more rows.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "search",
				Aliases:     []string{"s"},
				Usage:       "filter categories by substring (overrides the saved search)",
				Destination: &cmd.search,
			},
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "load every segment of the data file",
				Destination: &cmd.all,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON lines",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

// pointInfo is the output format of one data point.
type pointInfo struct {
	Index      int      `json:"index"`
	Identity   string   `json:"identity"`
	Category   string   `json:"category"`
	Value      *float64 `json:"value,omitempty"`
	ImageURL   string   `json:"image_url,omitempty"`
	Selectable bool     `json:"selectable"`
	State      string   `json:"state"`
}

func (cmd *ConvertCmd) run(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.OpenApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	view, err := loadView(ctx, app.Slicer, cmd.all)
	if err != nil {
		return err
	}

	search := cmd.search
	if !c.IsSet("search") {
		search = chiclet.SearchText(view)
	}

	res, err := app.Slicer.Convert(view, search)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if res == nil {
		if !cmd.jsonOutput {
			fmt.Fprintln(os.Stderr, "Nothing to display")
		}
		return nil
	}

	points := pointInfos(res, app.Slicer)
	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, p := range points {
			if err := iojson.WriteLine(out, p); err != nil {
				return fmt.Errorf("encode point: %w", err)
			}
		}
		return nil
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		_, _ = fmt.Fprintln(out, styles.CommandHeaderStyle.Render(res.CategorySourceName))
		_, _ = fmt.Fprintln(out, styles.DividerStyle.Render(fmt.Sprintf("%d points, %d selected", res.Points.Len(), countSelected(points))))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "INDEX\tCATEGORY\tVALUE\tSTATE\tIDENTITY")
	for _, p := range points {
		value := ""
		if p.Value != nil {
			value = dataview.Format(*p.Value, res.FormatString)
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.Index, p.Category, value, p.State, p.Identity)
	}
	return w.Flush()
}

// loadView reads the first segment, and every following one when all is set.
func loadView(ctx context.Context, svc *chiclet.Service, all bool) (*dataview.DataView, error) {
	view, err := svc.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load data view: %w", err)
	}
	for all && view.Metadata.Segment {
		view, err = svc.LoadMore(ctx)
		if err != nil {
			return nil, fmt.Errorf("load more: %w", err)
		}
	}
	return view, nil
}

// pointInfos lists the points in display order with selection state from
// the store applied the way the TUI applies it.
func pointInfos(res *slicer.Result, svc *chiclet.Service) []pointInfo {
	gen := res.Settings.General

	machine := selection.NewMachine(logging.Component("convert"))
	machine.Bind(res.Points, gen.Multiselect, svc.Store().Selected(), res.HasSelectionOverride)
	set := machine.Selection()

	display := slicer.Arrange(res.Points, gen.ShowDisabled)
	out := make([]pointInfo, 0, len(display))
	for _, dp := range display {
		info := pointInfo{
			Index:      dp.Index,
			Identity:   dp.Identity.String(),
			Category:   dp.Category,
			ImageURL:   dp.ImageURL,
			Selectable: dp.Selectable,
			State:      render.StateOf(dp, set).String(),
		}
		if dp.HasValue() {
			v := dp.Value
			info.Value = &v
		}
		out = append(out, info)
	}
	return out
}

func countSelected(points []pointInfo) int {
	n := 0
	for _, p := range points {
		if p.State == render.StateSelected.String() {
			n++
		}
	}
	return n
}
