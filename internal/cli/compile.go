package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/ui"
)

// compiledExtract is the JSON shape of a compiled (but unsubmitted) extract.
type compiledExtract struct {
	Name        string                       `json:"name"`
	Conjunction string                       `json:"conjunction"`
	Criteria    []extract.FinalizedCriterion `json:"criteria"`
	DataSlice   []extract.SliceGroup         `json:"data_slice"`
}

var compileCmd = &cobra.Command{
	Use:   "compile <definition.md>",
	Short: "Compile an extract definition without submitting it",
	Long: `Compile an extract definition into its finalized form: the filter
criteria that are complete enough to run, each tagged with the
conjunction ("and"/"or"), plus the subrecord-grouped slice set.

Incomplete criteria rows (missing a column, field, or value) are dropped
silently, the same way a half-edited row would be.

Examples:
  cohort compile extracts/male-flu-cohort.md
  cohort compile extracts/ward-census.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, q, err := loadAndBuild(args[0])
		if err != nil {
			return handleError(ErrDefinitionInvalid, err, "")
		}

		compiled := compiledExtract{
			Name:        def.Name,
			Conjunction: string(q.Conjunction()),
			Criteria:    q.Compile(),
			DataSlice:   q.GroupedByOwner(),
		}

		if isJSONOutput() {
			outputSuccess(compiled, &Meta{Count: len(compiled.Criteria)})
			return nil
		}

		fmt.Println(ui.Header(compiled.Name))
		fmt.Println()

		if len(compiled.Criteria) == 0 {
			fmt.Println(ui.Hint("No complete criteria; the extract matches every episode."))
		} else {
			tbl := ui.NewTable(4)
			for _, fc := range compiled.Criteria {
				tbl.AddRow(
					fc.Column+"."+fc.Field,
					extract.HumanizeQueryType(fc.QueryType),
					fc.Query,
					ui.Hint(fc.Combine),
				)
			}
			fmt.Print(tbl.String())
		}

		fmt.Println()
		fmt.Println(ui.Header("Slices"))
		for _, group := range compiled.DataSlice {
			fmt.Printf("  %s:", ui.Accent.Render(group.Subrecord))
			for _, field := range group.Fields {
				fmt.Printf(" %s", field)
			}
			fmt.Println()
		}

		return nil
	},
}
