package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/config"
	"github.com/qagen/qagen/internal/domain/scenario"
	"github.com/qagen/qagen/internal/platform/metrics"
	"github.com/qagen/qagen/internal/platform/save"
)

func scriptsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scripts",
		Short: "Generate the automation script archive for a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _ := cmd.Flags().GetString("file")
			out, _ := cmd.Flags().GetString("out")
			interactive, _ := cmd.Flags().GetBool("interactive")
			raw, _ := cmd.Flags().GetBool("raw-names")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if out == "" {
				out = cfg.OutputDir
			}
			logger := newLogger(cfg.Env)
			fs := afs.New()
			ctx := context.Background()

			data, err := loadScenario(ctx, fs, src)
			if err != nil {
				return err
			}

			svc := scenario.NewService(metrics.New(), logger)
			svc.SetCleanNames(!raw)
			saver := save.Fallback(save.NewPromptSaver(fs, out, interactive), save.NewDirSaver(fs, out), logger)
			a, err := svc.Export(ctx, data, saver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", a.FileName, a.Size())
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "Scenario definition (.yaml, .yml or .json; local path or URL)")
	cmd.Flags().StringP("out", "o", "", "Output directory or URL (default OUTPUT_DIR)")
	cmd.Flags().Bool("interactive", false, "Prompt for the save location")
	cmd.Flags().Bool("raw-names", false, "Keep test case names as written")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// loadScenario reads a scenario definition. JSON is chosen by extension;
// anything else is parsed as YAML.
func loadScenario(ctx context.Context, fs afs.Service, src string) (scenario.ScenarioData, error) {
	var data scenario.ScenarioData
	b, err := fs.DownloadWithURL(ctx, url.Normalize(src, file.Scheme))
	if err != nil {
		return data, apperr.Environment(fmt.Sprintf("Failed to read scenario file %s", src), err)
	}

	if strings.EqualFold(path.Ext(src), ".json") {
		err = json.Unmarshal(b, &data)
	} else {
		err = yaml.Unmarshal(b, &data)
	}
	if err != nil {
		return data, apperr.Validation("invalid scenario file %s: %v", src, err)
	}
	return data, nil
}
