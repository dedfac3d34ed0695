package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/moorworks/peatshelf/internal/db"
	"github.com/moorworks/peatshelf/internal/quiz"
	"github.com/moorworks/peatshelf/internal/results"
)

var (
	exportDriver string
	exportDSN    string
	exportOut    string
	exportTier   string
	exportLimit  int
)

// resultsCmd represents the results command
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Work with logged quiz results",
}

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged quiz results to a spreadsheet",
	Long: `Export reads the quiz_results table and writes an xlsx workbook with one
row per logged submission plus a per-tier summary sheet.

Example:
  shelfctl results export --db-driver sqlite --dsn "file:peatshelf.db" --out quiz-results.xlsx`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
	resultsCmd.AddCommand(resultsExportCmd)

	resultsExportCmd.Flags().StringVar(&exportDriver, "db-driver", "sqlite", "database driver (sqlite|postgres)")
	resultsExportCmd.Flags().StringVar(&exportDSN, "dsn", "", "database DSN (driver default when empty)")
	resultsExportCmd.Flags().StringVar(&exportOut, "out", "quiz-results.xlsx", "workbook output path")
	resultsExportCmd.Flags().StringVar(&exportTier, "tier", "", "only export one tier (easy|medium|hard)")
	resultsExportCmd.Flags().IntVar(&exportLimit, "limit", 500, "maximum rows to export")
}

func runExport(cmd *cobra.Command, args []string) error {
	tier := quiz.Difficulty(exportTier)
	if exportTier != "" && !tier.Valid() {
		return fmt.Errorf("unknown tier %q", exportTier)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(exportDriver), exportDSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer dbh.Close()
	store := results.NewSQLStore(dbh)

	rows, err := store.List(ctx, results.ListOpts{Difficulty: tier, Limit: exportLimit})
	if err != nil {
		return err
	}
	summary, err := store.Summary(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	headers := []string{"ID", "Difficulty", "Score", "Total", "Percentage", "Origin IP", "Submitted", "Question IDs", "Answers"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for i, r := range rows {
		values := []interface{}{
			r.ID,
			string(r.Difficulty),
			r.Score,
			r.Total,
			r.Percentage,
			r.OriginIP,
			time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339),
			strings.Join(r.QuestionIDs, ", "),
			string(r.Answers),
		}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return err
	}
	for i, h := range []string{"Difficulty", "Count", "Avg %"} {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue("Summary", cell, h); err != nil {
			return err
		}
	}
	for i, ts := range summary {
		values := []interface{}{string(ts.Difficulty), ts.Count, ts.AvgPercentage}
		for j, v := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue("Summary", cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(exportOut); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	fmt.Printf("Exported %d results to %s\n", len(rows), exportOut)
	return nil
}
