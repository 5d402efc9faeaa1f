package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/benefits-cli/internal/aggregate"
	"github.com/sells-group/benefits-cli/internal/model"
)

var processFirmName string

var processCmd = &cobra.Command{
	Use:   "process <input.json> <output.json>",
	Short: "Aggregate a firm's raw filing data into per-company totals",
	Long: `Reads a raw firm dataset, resolves one reporting year per company,
and writes the aggregated report structure.

Examples:
  # Derive the firm name from the input filename
  benefits-cli process summit_partners_research_results.json processed.json

  # Override the firm name
  benefits-cli process raw.json processed.json --firm-name "Summit Partners"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		data, err := os.ReadFile(inputPath)
		if err != nil {
			return eris.Wrapf(err, "process: read input %s", inputPath)
		}

		var firm model.FirmData
		if err := json.Unmarshal(data, &firm); err != nil {
			return eris.Wrapf(err, "process: parse input %s", inputPath)
		}

		firmName := processFirmName
		if firmName == "" {
			firmName = aggregate.FirmNameFromPath(inputPath)
		}

		report, err := aggregate.ProcessFirm(firm, firmName)
		if err != nil {
			return eris.Wrap(err, "process: aggregate firm data")
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return eris.Wrap(err, "process: encode report")
		}
		if err := os.WriteFile(outputPath, out, 0o644); err != nil {
			return eris.Wrapf(err, "process: write output %s", outputPath)
		}

		zap.L().Info("processed firm data",
			zap.String("firm", firmName),
			zap.Int("total_companies", report.Summary.TotalCompanies),
			zap.Int("companies_with_data", report.Summary.CompaniesWithData),
			zap.String("output", outputPath),
		)

		return nil
	},
}

func init() {
	processCmd.Flags().StringVar(&processFirmName, "firm-name", "", "override firm name (defaults to filename-based)")
	rootCmd.AddCommand(processCmd)
}
