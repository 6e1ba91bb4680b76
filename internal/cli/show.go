package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/extract"
	"github.com/mgrove/cohort/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show <definition.md>",
	Short: "Show an extract definition in readable form",
	Long: `Show an extract definition: its description rendered for the
terminal, the filter criteria phrased readably, and the slice set grouped
by subrecord.

When output is piped, the raw markdown body is printed instead of the
rendered form.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, q, err := loadAndBuild(args[0])
		if err != nil {
			return handleError(ErrDefinitionInvalid, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"name":        def.Name,
				"conjunction": string(q.Conjunction()),
				"criteria":    q.Compile(),
				"data_slice":  q.GroupedByOwner(),
				"body":        def.Body,
			}, nil)
			return nil
		}

		body := strings.TrimSpace(def.Body)
		if body != "" {
			if IsPipedOutput() {
				fmt.Println(body)
			} else {
				display := ui.NewDisplayContext()
				rendered, err := ui.RenderMarkdown(body, display.TermWidth)
				if err != nil {
					return handleError(ErrInternal, err, "")
				}
				fmt.Print(rendered)
			}
		}

		joiner := "and"
		if q.Conjunction() == extract.ConjunctionAny {
			joiner = "or"
		}

		fmt.Println(ui.Header("Criteria"))
		compiled := q.Compile()
		if len(compiled) == 0 {
			fmt.Println(ui.Hint("  (none; matches every episode)"))
		}
		for i, fc := range compiled {
			parts := []string{fc.Column + "." + fc.Field}
			if op := extract.HumanizeQueryType(fc.QueryType); op != "" {
				parts = append(parts, op)
			}
			parts = append(parts, fc.Query)
			phrase := strings.Join(parts, " ")
			if i > 0 {
				phrase = joiner + " " + phrase
			}
			fmt.Printf("  %s\n", phrase)
		}

		fmt.Println()
		fmt.Println(ui.Header("Slices"))
		for _, group := range q.GroupedByOwner() {
			fmt.Printf("  %s: %s\n", ui.Accent.Render(group.Subrecord), strings.Join(group.Fields, ", "))
		}

		return nil
	},
}
