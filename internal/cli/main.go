package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:           "clipsuggest",
		Short:         "Derive fallback highlight suggestions from speech-to-text transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	root.PersistentFlags().String("config", getenvDefault("CLIPSUGGEST_CONFIG", ""), "Path to TOML config file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "Log format (text, json)")

	suggest := &cobra.Command{
		Use:   "suggest <transcript.json>",
		Short: "Generate suggestions from a transcript file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuggest(cmd, args[0])
		},
	}
	suggest.Flags().String("out", "", "Write the result JSON to this path")
	suggest.Flags().Int("limit", 0, "Maximum number of suggestions")
	suggest.Flags().String("units", "", "Declared time units (seconds, centiseconds, milliseconds, minutes)")
	suggest.Flags().Float64("duration", 0, "Known media duration in seconds")
	suggest.Flags().Bool("json", false, "Print JSON instead of a table")

	project := &cobra.Command{
		Use:   "project <project-id>",
		Short: "Generate and store suggestions for a stored project record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, args[0])
		},
	}
	project.Flags().String("db", "", "Path to the project database")
	project.Flags().Int("limit", 0, "Maximum number of suggestions")
	project.Flags().String("units", "", "Declared time units")
	project.Flags().Bool("force", false, "Regenerate even when suggestions are already stored")
	project.Flags().Bool("json", false, "Print JSON instead of a table")

	importCmd := &cobra.Command{
		Use:   "import <project-id> <record.json>",
		Short: "Import a project record into the database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], args[1])
		},
	}
	importCmd.Flags().String("db", "", "Path to the project database")

	root.AddCommand(suggest, project, importCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
