package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mgrove/cohort/internal/config"
	"github.com/mgrove/cohort/internal/ui"
)

var (
	// Global flags
	configPath string
	serverURL  string
	tokenFlag  string

	// Resolved config
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Cohort - build and run patient-data extracts",
	Long: `Cohort builds structured extract queries against a clinical records
server: which subrecord fields to pull (slices) and which filter criteria
to apply. Extract definitions are plain markdown files with YAML
frontmatter, compiled into a clean query payload and submitted for CSV
extraction.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch cmd.Name() {
		case "completion", "help", "version":
			return nil
		}

		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if cfg == nil {
			cfg = &config.Config{}
		}

		// Flags override config.
		if serverURL != "" {
			cfg.Server.URL = serverURL
		}
		if tokenFlag != "" {
			cfg.Server.Token = tokenFlag
		}

		ui.ConfigureTheme(cfg.UI.Accent)
		ui.ConfigureMarkdownCodeTheme(cfg.UI.CodeTheme)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Extract server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "API token (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(versionCmd)
}
