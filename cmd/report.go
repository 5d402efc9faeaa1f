package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/benefits-cli/internal/model"
	"github.com/sells-group/benefits-cli/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report <processed.json> <report.html>",
	Short: "Render the interactive HTML report from processed data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		processed, err := readProcessed(inputPath)
		if err != nil {
			return err
		}

		html, err := report.RenderHTML(processed)
		if err != nil {
			return eris.Wrap(err, "report: render html")
		}
		if err := os.WriteFile(outputPath, html, 0o644); err != nil {
			return eris.Wrapf(err, "report: write output %s", outputPath)
		}

		zap.L().Info("generated report",
			zap.String("firm", processed.FirmName),
			zap.Int("total_companies", processed.Summary.TotalCompanies),
			zap.Int("companies_with_data", processed.Summary.CompaniesWithData),
			zap.String("output", outputPath),
		)

		return nil
	},
}

// readProcessed loads a processed report artifact from disk.
func readProcessed(path string) (model.ProcessedReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.ProcessedReport{}, eris.Wrapf(err, "report: read input %s", path)
	}
	var processed model.ProcessedReport
	if err := json.Unmarshal(data, &processed); err != nil {
		return model.ProcessedReport{}, eris.Wrapf(err, "report: parse input %s", path)
	}
	return processed, nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
