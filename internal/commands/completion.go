package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/chiclet/internal/core/dataview"
)

// CategoryCompleter suggests the category labels of the configured data file,
// skipping labels already on the command line. Flags complete as usual.
func CategoryCompleter(flags *Flags) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		typed := cmd.Args().Slice()
		if n := len(typed); n > 0 && strings.HasPrefix(typed[n-1], "-") {
			cli.DefaultCompleteWithFlags(ctx, cmd)
			return
		}
		if flags.Config == nil || flags.Config.Data.File == "" {
			return
		}

		view, err := dataview.ReadFile(flags.Config.Data.File)
		if err != nil {
			return
		}
		for _, label := range categoryLabels(view) {
			if slices.Contains(typed, label) {
				continue
			}
			_, _ = fmt.Fprintln(cmd.Root().Writer, label)
		}
	}
}

// categoryLabels formats every category value the way the grid shows it.
func categoryLabels(view *dataview.DataView) []string {
	cat := view.Category()
	if cat == nil {
		return nil
	}
	labels := make([]string, 0, len(cat.Values))
	for _, v := range cat.Values {
		labels = append(labels, dataview.Format(v, cat.Source.FormatString))
	}
	return labels
}
