package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/benefits-cli/internal/classify"
	"github.com/sells-group/benefits-cli/internal/config"
	"github.com/sells-group/benefits-cli/internal/filing"
	"github.com/sells-group/benefits-cli/internal/model"
	"github.com/sells-group/benefits-cli/internal/scheda"
)

var (
	classifyCompany string
	classifyExact   bool
	classifyYear    int
	classifyHeaders string
	classifyScheda  string
	classifyDebug   bool
	classifyFormat  string
	classifyOutput  string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify whether a company's medical plans are self-funded",
	Long: `Cross-references Form 5500 header funding/benefit flags against
Schedule A coverage indicators and reports a per-plan and overall
funding-arrangement verdict.

Examples:
  # Substring match on the sponsor name
  benefits-cli classify --company "acme"

  # Exact sponsor match, 2023 filings only
  benefits-cli classify --company "Acme Holdings LLC" --exact --year 2023

  # Machine-readable output
  benefits-cli classify --company acme --format json --output verdict.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if classifyDebug {
			if err := config.InitLogger(config.LogConfig{Level: "debug", Format: cfg.Log.Format}); err != nil {
				return eris.Wrap(err, "classify: init debug logger")
			}
		}

		headersPath := classifyHeaders
		if headersPath == "" {
			headersPath = cfg.Filings.HeadersPathForYear(classifyYear)
		}
		schedaPath := classifyScheda
		if schedaPath == "" {
			schedaPath = cfg.Filings.ScheduleAPathForYear(classifyYear)
		}

		loadOpts := filing.Options{Charset: cfg.Filings.Charset}

		schedARows, err := filing.LoadScheduleARows(schedaPath, loadOpts)
		if err != nil {
			return eris.Wrap(err, "classify: load schedule A")
		}
		idx := scheda.BuildParallel(schedARows, cfg.Index.Partitions)
		zap.L().Info("built schedule A index",
			zap.Int("rows", len(schedARows)),
			zap.Int("begin_keys", len(idx.ByBegin)),
			zap.Int("end_keys", len(idx.ByEnd)),
		)

		headers, err := filing.LoadHeaderRows(headersPath, loadOpts)
		if err != nil {
			return eris.Wrap(err, "classify: load headers")
		}

		report := classify.Evaluate(headers, idx, classify.Options{
			Company: classifyCompany,
			Exact:   classifyExact,
			Year:    classifyYear,
			Debug:   classifyDebug,
		})

		format := classifyFormat
		if format == "" {
			format = cfg.Classify.Format
		}
		out, err := renderClassification(report, format)
		if err != nil {
			return err
		}

		if classifyOutput != "" {
			if err := os.WriteFile(classifyOutput, out, 0o644); err != nil {
				return eris.Wrapf(err, "classify: write output %s", classifyOutput)
			}
			return nil
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

// renderClassification encodes a classification report in the requested format.
func renderClassification(report model.ClassificationReport, format string) ([]byte, error) {
	switch format {
	case "text":
		return []byte(classify.FormatText(report)), nil
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, eris.Wrap(err, "classify: encode json")
		}
		return append(out, '\n'), nil
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return nil, eris.Wrap(err, "classify: encode yaml")
		}
		return out, nil
	default:
		return nil, eris.Errorf("classify: unknown format %q (valid: text, json, yaml)", format)
	}
}

func init() {
	classifyCmd.Flags().StringVar(&classifyCompany, "company", "", "sponsor name to match (required)")
	classifyCmd.Flags().BoolVar(&classifyExact, "exact", false, "require exact sponsor-name match instead of substring")
	classifyCmd.Flags().IntVar(&classifyYear, "year", 0, "only consider plans whose year boundaries match")
	classifyCmd.Flags().StringVar(&classifyHeaders, "headers", "", "Form 5500 header file (default from config, year-templated)")
	classifyCmd.Flags().StringVar(&classifyScheda, "scheda", "", "Schedule A file (default from config, year-templated)")
	classifyCmd.Flags().BoolVar(&classifyDebug, "debug", false, "trace skipped rows and index lookups")
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "", "output format: text, json, or yaml (default from config)")
	classifyCmd.Flags().StringVar(&classifyOutput, "output", "", "write report to file (default: stdout)")
	_ = classifyCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(classifyCmd)
}
