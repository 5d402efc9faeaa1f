package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/benefits-cli/internal/report"
)

var exportCmd = &cobra.Command{
	Use:   "export <processed.json> <report.xlsx>",
	Short: "Export processed data as an XLSX workbook",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputPath, outputPath := args[0], args[1]

		processed, err := readProcessed(inputPath)
		if err != nil {
			return err
		}

		if err := report.WriteXLSX(processed, outputPath); err != nil {
			return eris.Wrap(err, "export: write workbook")
		}

		zap.L().Info("exported workbook",
			zap.String("firm", processed.FirmName),
			zap.Int("total_companies", processed.Summary.TotalCompanies),
			zap.String("output", outputPath),
		)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
