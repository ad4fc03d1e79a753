package cli

import (
	"context"
	"fmt"

	"resumescan/internal/analysis"
	"resumescan/internal/autofix"
	"resumescan/internal/common"
	"resumescan/internal/document"
	"resumescan/internal/parser"
	"resumescan/internal/scoring"
	"resumescan/internal/types"

	"github.com/spf13/cobra"
)

var fixesCmd = &cobra.Command{
	Use:   "fixes [resume-file]",
	Short: "Generate fix recommendations for a resume",
	Long: `Generate prioritized fix recommendations for a resume document.
The resume is parsed and scored in expert mode, and every detected issue
with a known remedy becomes a recommendation. Fixes marked auto-applicable
can be applied to a stored resume through the builder API.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if fixesConfig.OutputFormat == "" {
			fixesConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if err := common.ValidateOutputFormat(fixesConfig.OutputFormat, cfg.App.SupportedFormats); err != nil {
			return err
		}
		if fixesIndustry == "" {
			fixesIndustry = cfg.Scan.DefaultIndustry
		}
		return nil
	},
	RunE: runFixes,
}

var (
	fixesConfig   common.CommandConfig
	fixesIndustry string
)

func init() {
	fixesCmd.Flags().StringVarP(&fixesConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	fixesCmd.Flags().StringVar(&fixesConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	fixesCmd.Flags().StringVar(&fixesIndustry, "industry", "", "Industry for skill matching (e.g. technology, finance)")

	// Add completion for format flag
	_ = fixesCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runFixes(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	reader := document.NewReader(int64(cfg.App.MaxFileSize), logger)
	parserService := parser.NewService(logger)
	analyzer := analysis.NewAnalyzer(logger)
	engine := scoring.NewEngine(logger)
	recommender := autofix.NewRecommender(logger)

	logDetails := func(input documentInput, cfg common.CommandConfig) {
		logger.Info("Starting fix recommendation",
			"file", input.path,
			"industry", fixesIndustry,
			"output_format", cfg.OutputFormat)
	}

	fixesOperation := func(ctx context.Context, input documentInput) ([]types.AutoFix, error) {
		doc, err := reader.Read(input.path, input.data)
		if err != nil {
			return nil, err
		}
		resume := parserService.Parse(doc)
		result := analyzer.Analyze(doc, resume)
		// Expert mode surfaces the full set of findings for the recommender.
		score := engine.Score(resume, result, scoring.Options{
			Mode:     types.ScanModeExpert,
			Industry: fixesIndustry,
		})
		return recommender.Recommend(resume, result, score.Findings), nil
	}

	err := common.RunScanCommand(
		cmd.Context(),
		logger,
		fixesConfig,
		args,
		readDocumentInput(common.NewFileProcessor(logger)),
		fixesOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate fixes: %w", err)
	}
	logger.Info("Fix recommendation completed successfully")
	return nil
}
