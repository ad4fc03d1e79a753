package cli

import (
	"context"
	"fmt"
	"strings"

	"resumescan/internal/analysis"
	"resumescan/internal/common"
	"resumescan/internal/document"
	"resumescan/internal/parser"
	"resumescan/internal/scoring"
	"resumescan/internal/types"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file]",
	Short: "Score a resume across readability, structure and content checks",
	Long: `Score a resume document. The scoring tier is selected with --mode:

  basic  - formatting, readability and section coverage
  ats    - basic checks plus applicant-tracking-system compatibility
  expert - ats checks plus experience depth and industry skill matching

Provide a job description with --job-description or --job-description-file
to add a keyword match score, and --industry to enable industry-specific
skill matching in expert mode.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		if err := common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats); err != nil {
			return err
		}
		// Apply scan defaults if not specified
		if scoreMode == "" {
			scoreMode = cfg.Scan.DefaultMode
		}
		if scoreIndustry == "" {
			scoreIndustry = cfg.Scan.DefaultIndustry
		}
		if !types.ScanMode(scoreMode).Valid() {
			return fmt.Errorf("invalid scan mode %q (must be basic, ats or expert)", scoreMode)
		}
		if scoreJobDescription != "" && scoreJobDescriptionFile != "" {
			return fmt.Errorf("--job-description and --job-description-file are mutually exclusive")
		}
		return nil
	},
	RunE: runScore,
}

var (
	scoreConfig             common.CommandConfig
	scoreMode               string
	scoreIndustry           string
	scoreJobDescription     string
	scoreJobDescriptionFile string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	scoreCmd.Flags().StringVarP(&scoreMode, "mode", "m", "", "Scan mode: basic, ats, or expert")
	scoreCmd.Flags().StringVar(&scoreIndustry, "industry", "", "Industry for skill matching (e.g. technology, finance)")
	scoreCmd.Flags().StringVar(&scoreJobDescription, "job-description", "", "Job description text for keyword matching")
	scoreCmd.Flags().StringVar(&scoreJobDescriptionFile, "job-description-file", "", "Path to a job description text file")

	// Add completion for format and mode flags
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
	_ = scoreCmd.RegisterFlagCompletionFunc("mode", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"basic", "ats", "expert"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveJobDescription returns the job description text from either the
// inline flag or the file flag.
func resolveJobDescription(fileProcessor *common.FileProcessor, inline, file string) (string, error) {
	if file == "" {
		return inline, nil
	}
	contents, err := fileProcessor.ValidateAndReadFiles(file)
	if err != nil {
		return "", fmt.Errorf("failed to read job description file: %w", err)
	}
	return strings.TrimSpace(contents[0]), nil
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	jobDescription, err := resolveJobDescription(fileProcessor, scoreJobDescription, scoreJobDescriptionFile)
	if err != nil {
		return err
	}

	reader := document.NewReader(int64(cfg.App.MaxFileSize), logger)
	parserService := parser.NewService(logger)
	analyzer := analysis.NewAnalyzer(logger)
	engine := scoring.NewEngine(logger)

	logDetails := func(input documentInput, cfg common.CommandConfig) {
		logger.Info("Starting resume scoring",
			"file", input.path,
			"mode", scoreMode,
			"industry", scoreIndustry,
			"has_job_description", jobDescription != "",
			"output_format", cfg.OutputFormat)
	}

	scoreOperation := func(ctx context.Context, input documentInput) (*types.ResumeScore, error) {
		doc, err := reader.Read(input.path, input.data)
		if err != nil {
			return nil, err
		}
		resume := parserService.Parse(doc)
		result := analyzer.Analyze(doc, resume)
		return engine.Score(resume, result, scoring.Options{
			Mode:           types.ScanMode(scoreMode),
			JobDescription: jobDescription,
			Industry:       scoreIndustry,
		}), nil
	}

	err = common.RunScanCommand(
		cmd.Context(),
		logger,
		scoreConfig,
		args,
		readDocumentInput(fileProcessor),
		scoreOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully")
	return nil
}
