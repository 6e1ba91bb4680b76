package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/schema"
	"github.com/mgrove/cohort/internal/ui"
)

var schemaRemote bool

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "List the subrecords and fields extracts can use",
	Long: `List the subrecord/field catalog extracts are built against.

By default the workspace's schema.yaml is used (or the built-in default
when none exists). With --remote the catalog is fetched from the
configured extract server instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sch *schema.Schema
		var err error

		if schemaRemote {
			c, clientErr := newClient()
			if clientErr != nil {
				return handleError(ErrServerNotConfigured, clientErr, "")
			}
			sch, err = c.FetchSchema()
		} else {
			sch, err = loadSchema()
		}
		if err != nil {
			return handleError(ErrSchemaInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(sch, &Meta{Count: len(sch.Subrecords)})
			return nil
		}

		for _, sub := range sch.Subrecords {
			label := sub.Name
			if sub.Single {
				label += " " + ui.Hint("(singleton)")
			}
			fmt.Println(ui.Header(label))

			tbl := ui.NewTable(3)
			for _, fd := range sub.Fields {
				tbl.AddRow("  "+fd.Name, fd.Type, ui.Hint(fd.DisplayTitle()))
			}
			fmt.Print(tbl.String())
			fmt.Println()
		}

		return nil
	},
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaRemote, "remote", false, "Fetch the schema from the extract server")
}
