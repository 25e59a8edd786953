package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/salesdash/salesdash/internal/export"
	"github.com/salesdash/salesdash/internal/kpi"
	"github.com/salesdash/salesdash/internal/loader"
	"github.com/salesdash/salesdash/internal/logging"
)

var (
	exportFormat string
	exportDir    string
	exportFilter filterOptions
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered dataset and monthly KPI table",
	Long: `Load the joined dataset, apply the selected filters, and write the
dataset and the monthly KPI table to files. CSV output is byte-for-byte
reproducible for identical input; xlsx writes both tables into one
workbook.

Example:
  salesdash export
  salesdash export --format xlsx --dir reports --status Completed`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "",
		"output format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportDir, "dir", "",
		"output directory")
	exportFilter.register(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if exportFormat != "" {
		cfg.Export.Format = exportFormat
	}
	if exportDir != "" {
		cfg.Export.Dir = exportDir
	}

	if err := cfg.ValidateExport(); err != nil {
		return err
	}
	filter, err := exportFilter.filter()
	if err != nil {
		return err
	}

	ld := loader.New(cfg.Store.Candidates, cfg.GenerationSpec())
	res := ld.Load(context.Background())

	view := kpi.Apply(res.Dataset, filter)
	monthly := kpi.Monthly(view)

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	if cfg.Export.Format == "xlsx" {
		path := filepath.Join(cfg.Export.Dir, "sales.xlsx")
		if err := writeFile(path, func(f *os.File) error {
			return export.WriteWorkbook(f, view, monthly)
		}); err != nil {
			return err
		}
		cmd.Printf("[OK] wrote %s\n", path)
		return nil
	}

	dataPath := filepath.Join(cfg.Export.Dir, "sales.csv")
	if err := writeFile(dataPath, func(f *os.File) error {
		return export.WriteCSV(f, view)
	}); err != nil {
		return err
	}

	monthlyPath := filepath.Join(cfg.Export.Dir, "monthly_kpis.csv")
	if err := writeFile(monthlyPath, func(f *os.File) error {
		return export.WriteMonthlyCSV(f, monthly)
	}); err != nil {
		return err
	}

	logging.Info().
		Int("rows", view.Len()).
		Int("months", len(monthly)).
		Msg("Export complete")

	cmd.Printf("[OK] wrote %s\n", dataPath)
	cmd.Printf("[OK] wrote %s\n", monthlyPath)
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
