package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/moodclip/clipsuggest/internal/types"
)

// render prints suggestions as a table on terminals and as JSON otherwise,
// unless JSON was forced.
func render(cmd *cobra.Command, suggestions []types.Suggestion, forceJSON bool) error {
	if forceJSON || !stdoutIsTerminal() {
		b, err := json.MarshalIndent(suggestions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal suggestions: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return nil
	}

	if len(suggestions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no suggestions")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(cmd.OutOrStdout())
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Start", "End", "Conf", "Score", "Title"})
	for _, s := range suggestions {
		tw.AppendRow(table.Row{
			s.ID,
			fmt.Sprintf("%.3f", s.Start),
			fmt.Sprintf("%.3f", s.End),
			fmt.Sprintf("%.2f", s.Confidence),
			fmt.Sprintf("%.2f", s.Score),
			s.Title,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})
	tw.Render()
	return nil
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
