package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/client"
	"github.com/mgrove/cohort/internal/history"
	"github.com/mgrove/cohort/internal/render"
	"github.com/mgrove/cohort/internal/ui"
)

var runOutDir string

// runResult is the JSON shape of a completed extract run.
type runResult struct {
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	ArchivePath  string `json:"archive_path"`
}

var runCmd = &cobra.Command{
	Use:   "run <definition.md>",
	Short: "Compile, submit, and download an extract",
	Long: `Compile an extract definition, submit it to the extract server, and
write the matched episodes as a zip of per-subrecord CSV files. Each run
is recorded in the workspace history (see 'cohort history').

Examples:
  cohort run extracts/male-flu-cohort.md
  cohort run extracts/ward-census.md --out /data/extracts`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, q, err := loadAndBuild(args[0])
		if err != nil {
			return handleError(ErrDefinitionInvalid, err, "")
		}

		c, err := newClient()
		if err != nil {
			return handleError(ErrServerNotConfigured, err, "")
		}

		req := client.ExtractRequest{
			Criteria:  q.Compile(),
			DataSlice: q.GroupedByOwner(),
		}

		result, err := c.Submit(req)
		if err != nil {
			return handleError(ErrExtractFailed, err, "")
		}

		sch, err := loadSchema()
		if err != nil {
			return handleError(ErrSchemaInvalid, err, "")
		}

		outDir := runOutDir
		if outDir == "" {
			outDir = cfg.OutputDir()
		}

		now := time.Now()
		archivePath, err := render.WriteArchive(outDir, def.Name, now, req.DataSlice, sch, result)
		if err != nil {
			return handleError(ErrWriteFailed, err, "")
		}

		// History is best-effort; a failed write must not fail the run.
		if store, histErr := history.Open("."); histErr == nil {
			_ = store.Record(&history.Run{
				Name:         def.Name,
				SubmittedAt:  now,
				Criteria:     req.Criteria,
				EpisodeCount: len(result.Episodes),
				ArchivePath:  archivePath,
			})
			store.Close()
		}

		if isJSONOutput() {
			outputSuccess(runResult{
				Name:         def.Name,
				EpisodeCount: len(result.Episodes),
				ArchivePath:  archivePath,
			}, &Meta{Count: len(result.Episodes)})
			return nil
		}

		fmt.Println(ui.Successf("%s %s", def.Name, ui.Count(len(result.Episodes), "episode", "episodes")))
		fmt.Printf("  %s\n", ui.FilePath(archivePath))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runOutDir, "out", "", "Directory to write the archive to (default from config)")
}
