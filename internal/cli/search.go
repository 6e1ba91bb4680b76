package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/ui"
)

var (
	searchHospitalNumber string
	searchName           string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search patients on the extract server",
	Long: `Search patients by hospital number and/or name. Useful for
spot-checking an extract's criteria against known patients.

Examples:
  cohort search --name smith
  cohort search --hospital-number 12345678`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if searchHospitalNumber == "" && searchName == "" {
			return handleErrorMsg(ErrMissingArgument,
				"specify --hospital-number and/or --name", "")
		}

		c, err := newClient()
		if err != nil {
			return handleError(ErrServerNotConfigured, err, "")
		}

		result, err := c.SearchPatients(searchHospitalNumber, searchName)
		if err != nil {
			return handleError(ErrExtractFailed, err, "")
		}

		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: len(result.Patients)})
			return nil
		}

		if len(result.Patients) == 0 {
			fmt.Println(ui.Hint("No matching patients."))
			return nil
		}

		tbl := ui.NewTable(3)
		for _, p := range result.Patients {
			name, _ := p.Demographics["name"].(string)
			hospitalNumber, _ := p.Demographics["hospital_number"].(string)
			tbl.AddRow(fmt.Sprintf("%d", p.ID), name, ui.Hint(hospitalNumber))
		}
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchHospitalNumber, "hospital-number", "", "Hospital number to match exactly")
	searchCmd.Flags().StringVar(&searchName, "name", "", "Name substring to match")
}
