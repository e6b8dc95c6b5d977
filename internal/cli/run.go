package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/moodclip/clipsuggest/internal/config"
	"github.com/moodclip/clipsuggest/internal/logging"
	"github.com/moodclip/clipsuggest/internal/pipeline"
	"github.com/moodclip/clipsuggest/internal/ports/adapters/sqlitestore"
	"github.com/moodclip/clipsuggest/internal/types"
	"github.com/moodclip/clipsuggest/internal/usecase"
)

// setup resolves config file plus persistent flags into a Config and logger.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, nil, err
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	}, os.Stderr)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}

func engineFlags(cmd *cobra.Command, cfg config.Config) (limit int, units types.TimeUnit) {
	limit = cfg.Engine.Limit
	if v, _ := cmd.Flags().GetInt("limit"); v > 0 {
		limit = v
	}
	unitStr := cfg.Engine.Units
	if v, _ := cmd.Flags().GetString("units"); v != "" {
		unitStr = v
	}
	return limit, types.ParseTimeUnit(unitStr)
}

func runSuggest(cmd *cobra.Command, input string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	limit, units := engineFlags(cmd, cfg)
	outPath, _ := cmd.Flags().GetString("out")
	duration, _ := cmd.Flags().GetFloat64("duration")
	asJSON, _ := cmd.Flags().GetBool("json")

	runCfg := pipeline.Config{
		InputPath:   input,
		OutPath:     outPath,
		Limit:       limit,
		Units:       units,
		DurationSec: duration,
		LegacyUnits: cfg.Engine.LegacyUnits,
		Logger:      logger,
	}
	if err := runCfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	out, err := pipeline.Run(runCfg)
	if err != nil {
		return err
	}
	return render(cmd, out.Suggestions, asJSON)
}

func runProject(cmd *cobra.Command, projectID string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	limit, units := engineFlags(cmd, cfg)
	force, _ := cmd.Flags().GetBool("force")
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	uc := usecase.New(usecase.Deps{Store: store, Logger: logger})
	res, err := uc.Run(cmd.Context(), usecase.Input{
		ProjectID: projectID,
		Limit:     limit,
		Units:     units,
		Force:     force,
	})
	if err != nil {
		return err
	}
	if res.Skipped {
		fmt.Fprintln(cmd.OutOrStdout(), "suggestions already stored; use --force to regenerate")
	}
	return render(cmd, res.Suggestions, asJSON)
}

func runImport(cmd *cobra.Command, projectID, recordPath string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(recordPath)
	if err != nil {
		return fmt.Errorf("read record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode record %s: %w", recordPath, err)
	}

	store, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(cmd.Context(), projectID, fields); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %s\n", projectID)
	return nil
}

func openStore(cmd *cobra.Command, cfg config.Config) (*sqlitestore.Store, error) {
	path := cfg.DatabasePath
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		path = v
	}
	store, err := sqlitestore.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
