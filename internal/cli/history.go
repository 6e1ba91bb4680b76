package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/history"
	"github.com/mgrove/cohort/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent extract runs",
	Long: `List the extract runs recorded in this workspace, newest first.

Examples:
  cohort history
  cohort history --limit 5 --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(".")
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}
		defer store.Close()

		runs, err := store.List(historyLimit)
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(runs, &Meta{Count: len(runs)})
			return nil
		}

		if len(runs) == 0 {
			fmt.Println(ui.Hint("No extract runs recorded yet. Run 'cohort run <definition.md>' first."))
			return nil
		}

		tbl := ui.NewTable(4)
		for _, run := range runs {
			tbl.AddRow(
				run.SubmittedAt.Local().Format("2006-01-02 15:04"),
				run.Name,
				ui.Count(run.EpisodeCount, "episode", "episodes"),
				ui.Hint(strconv.Itoa(len(run.Criteria))+" criteria"),
			)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
}
