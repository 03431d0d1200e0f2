package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/chiclet/internal/chiclet"
	"github.com/colonyops/chiclet/internal/core/identity"
	"github.com/colonyops/chiclet/internal/core/selection"
	"github.com/colonyops/chiclet/internal/core/validate"
	"github.com/colonyops/chiclet/internal/data/stores"
	"github.com/colonyops/chiclet/pkg/iojson"
)

type SelectionCmd struct {
	flags *Flags
	fr    *iojson.FileReader[SelectionInput]

	// flags
	jsonOutput bool
	scopes     bool
	toggle     bool
	byID       bool
}

// NewSelectionCmd creates a new selection command
func NewSelectionCmd(flags *Flags) *SelectionCmd {
	return &SelectionCmd{
		flags: flags,
		fr:    &iojson.FileReader[SelectionInput]{},
	}
}

// SelectionInput is the JSON accepted by selection set. Categories are
// matched against category labels, identities against identity keys.
type SelectionInput struct {
	Categories []string `json:"categories"`
	Identities []string `json:"identities"`
}

// Validate checks the input using criterio.
func (in SelectionInput) Validate() error {
	if len(in.Categories) == 0 && len(in.Identities) == 0 {
		return criterio.NewFieldErrors("categories", fmt.Errorf("categories or identities is required"))
	}

	return criterio.ValidateStruct(
		validate.Each("categories", in.Categories, validate.NotBlank),
		validate.Identities("identities", identity.FromStrings(in.Identities)),
	)
}

// Register adds the selection commands to the application
func (cmd *SelectionCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "selection",
		Usage: "Inspect and change the stored selection",
		Commands: []*cli.Command{
			{
				Name:      "ls",
				Usage:     "List selected identities for the data file",
				UsageText: "chiclet selection ls [--json] [--scopes]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
					&cli.BoolFlag{
						Name:        "scopes",
						Usage:       "list every data file with a stored selection instead",
						Destination: &cmd.scopes,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:      "set",
				Usage:     "Replace the selection",
				UsageText: "chiclet selection set [--toggle] [--id] [category...]",
				Description: `Selects the named categories, replacing the current selection. With --toggle
each category is toggled into or out of the selection instead. With --id the
arguments are identity keys rather than category labels.

Without arguments, JSON is read from -f or stdin:
  {"categories": ["Apple"], "identities": ["banana"]}

The saved selection properties are updated the same way the TUI updates them.`,
				Flags: []cli.Flag{
					cmd.fr.Flag(),
					&cli.BoolFlag{
						Name:        "toggle",
						Aliases:     []string{"t"},
						Usage:       "toggle instead of replacing",
						Destination: &cmd.toggle,
					},
					&cli.BoolFlag{
						Name:        "id",
						Usage:       "treat arguments as identity keys",
						Destination: &cmd.byID,
					},
				},
				ShellComplete: CategoryCompleter(cmd.flags),
				Action:        cmd.runSet,
			},
			{
				Name:      "clear",
				Usage:     "Clear the selection",
				UsageText: "chiclet selection clear",
				Action:    cmd.runClear,
			},
		},
	})

	return app
}

type selectedInfo struct {
	Identity string `json:"identity"`
	Category string `json:"category,omitempty"`
}

func (cmd *SelectionCmd) runList(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.OpenApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	out := c.Root().Writer

	if cmd.scopes {
		scopes, err := stores.Scopes(ctx, app.DB)
		if err != nil {
			return err
		}
		if cmd.jsonOutput {
			return iojson.WriteWith(out, c.Root().ErrWriter, scopes)
		}
		for _, s := range scopes {
			_, _ = fmt.Fprintln(out, s)
		}
		return nil
	}

	labels := cmd.labels(ctx, app)
	ids := app.Selection.Selected()
	infos := make([]selectedInfo, len(ids))
	for i, id := range ids {
		infos[i] = selectedInfo{Identity: id.String(), Category: labels[id]}
	}

	if cmd.jsonOutput {
		return iojson.WriteWith(out, c.Root().ErrWriter, infos)
	}

	if len(infos) == 0 {
		fmt.Fprintln(os.Stderr, "Nothing selected")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "IDENTITY\tCATEGORY")
	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%s\n", info.Identity, info.Category)
	}
	return w.Flush()
}

// labels maps identities in the current data view to category labels. A data
// file that cannot be read yields no labels.
func (cmd *SelectionCmd) labels(ctx context.Context, app *chiclet.App) map[identity.ID]string {
	labels := map[identity.ID]string{}

	view, err := app.Slicer.Load(ctx)
	if err != nil {
		return labels
	}
	res, err := app.Slicer.Convert(view, "")
	if err != nil || res == nil {
		return labels
	}
	for _, dp := range res.Points.Points() {
		labels[dp.Identity] = dp.Category
	}
	return labels
}

func (cmd *SelectionCmd) runSet(ctx context.Context, c *cli.Command) error {
	var input SelectionInput
	switch {
	case c.Args().Present() && cmd.byID:
		input.Identities = c.Args().Slice()
	case c.Args().Present():
		input.Categories = c.Args().Slice()
	default:
		var err error
		input, err = cmd.fr.Read(c.Root().Reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}

	if err := input.Validate(); err != nil {
		return fmt.Errorf("invalid input: %w", err)
	}

	app, err := cmd.flags.OpenApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	view, err := loadView(ctx, app.Slicer, true)
	if err != nil {
		return err
	}
	res, err := app.Slicer.Convert(view, "")
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if res == nil {
		return fmt.Errorf("data file has no categories to select")
	}

	byLabel := map[string]identity.ID{}
	for _, dp := range res.Points.Points() {
		if dp.Selectable {
			byLabel[dp.Category] = dp.Identity
		}
	}

	ids := identity.FromStrings(input.Identities)
	for _, label := range input.Categories {
		id, ok := byLabel[label]
		if !ok {
			return fmt.Errorf("no selectable category %q", label)
		}
		ids = append(ids, id)
	}

	kind := selection.KindReplace
	if cmd.toggle {
		kind = selection.KindToggle
	}
	return cmd.apply(ctx, c, app, selection.Request{Kind: kind, IDs: ids})
}

func (cmd *SelectionCmd) runClear(ctx context.Context, c *cli.Command) error {
	app, err := cmd.flags.OpenApp(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	return cmd.apply(ctx, c, app, selection.Request{Kind: selection.KindClear})
}

// apply runs req against the store and records the result as the saved
// selection of the data view.
func (cmd *SelectionCmd) apply(ctx context.Context, c *cli.Command, app *chiclet.App, req selection.Request) error {
	res := selection.Execute(ctx, app.Selection, req)
	if res.Err != nil {
		return fmt.Errorf("%s selection: %w", req.Kind, res.Err)
	}

	view, err := app.Slicer.Load(ctx)
	if err != nil {
		return fmt.Errorf("load data view: %w", err)
	}
	app.Slicer.SaveSelection(ctx, view, res.IDs)

	_, _ = fmt.Fprintf(c.Root().Writer, "%d selected\n", len(res.IDs))
	return nil
}
