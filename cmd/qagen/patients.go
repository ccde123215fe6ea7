package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/afs"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/config"
	"github.com/qagen/qagen/internal/domain/patient"
	"github.com/qagen/qagen/internal/platform/metrics"
	"github.com/qagen/qagen/internal/platform/save"
)

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Generate a patient workbook from identifier batches",
		Example: `  qagen patients --batch EPRNAAAA:10 --batch QAPTAAAA:5
  qagen patients -b EPRNAAAA:25 --patient-only --file-name Cohort -o ./out`,
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, _ := cmd.Flags().GetStringArray("batch")
			patientOnly, _ := cmd.Flags().GetBool("patient-only")
			fileName, _ := cmd.Flags().GetString("file-name")
			out, _ := cmd.Flags().GetString("out")
			interactive, _ := cmd.Flags().GetBool("interactive")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addresses") {
				cfg.AddressSource, _ = cmd.Flags().GetString("addresses")
			}
			if cmd.Flags().Changed("seed") {
				cfg.RandomSeed, _ = cmd.Flags().GetInt64("seed")
			}
			if out == "" {
				out = cfg.OutputDir
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			batches, err := parseBatches(specs)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Env)
			fs := afs.New()
			svc := patient.NewService(addressSource(cfg, fs), randomFactory(cfg.RandomSeed), cfg.MaxBatchCount, metrics.New(), logger)
			saver := save.Fallback(save.NewPromptSaver(fs, out, interactive), save.NewDirSaver(fs, out), logger)

			a, err := svc.Export(context.Background(), patient.Request{
				Batches:     batches,
				FileName:    fileName,
				PatientOnly: patientOnly,
			}, saver)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes)\n", a.FileName, a.Size())
			return nil
		},
	}
	cmd.Flags().StringArrayP("batch", "b", nil, "Batch as START:COUNT, e.g. EPRNAAAA:10 (repeatable)")
	cmd.Flags().Bool("patient-only", false, "Write only identity, address and demographic columns")
	cmd.Flags().String("file-name", "", "Workbook name (default Patients_<timestamp>.xlsx)")
	cmd.Flags().StringP("out", "o", "", "Output directory or URL (default OUTPUT_DIR)")
	cmd.Flags().Bool("interactive", false, "Prompt for the save location")
	cmd.Flags().String("addresses", "", "Address pool: embedded, fake, or a URL to an address script")
	cmd.Flags().Int64("seed", 0, "Random seed; 0 draws a fresh seed")
	return cmd
}

// parseBatch reads START:COUNT. The start keeps its case; the synthesizer
// normalizes it.
func parseBatch(spec string) (patient.Batch, error) {
	start, count, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok || strings.TrimSpace(start) == "" {
		return patient.Batch{}, apperr.Validation("invalid batch %q: expected START:COUNT", spec)
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return patient.Batch{}, apperr.Validation("invalid batch %q: count must be a number", spec)
	}
	return patient.Batch{StartName: strings.TrimSpace(start), Count: n}, nil
}

func parseBatches(specs []string) ([]patient.Batch, error) {
	if len(specs) == 0 {
		return nil, apperr.Validation("at least one --batch is required")
	}
	out := make([]patient.Batch, 0, len(specs))
	for i, s := range specs {
		b, err := parseBatch(s)
		if err != nil {
			return nil, err
		}
		b.ID = strconv.Itoa(i + 1)
		out = append(out, b)
	}
	return out, nil
}
