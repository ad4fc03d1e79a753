package cli

import (
	"context"
	"fmt"

	"resumescan/internal/common"
	"resumescan/internal/document"
	"resumescan/internal/parser"
	"resumescan/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Parse a resume document into structured form",
	Long: `Parse a resume document into structured sections: contact details,
summary, experience, education, skills and certifications. The command takes
one argument: the path to the resume file (PDF, DOCX, TXT or Markdown).`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

// documentInput carries a resume file through the scan pipeline. The raw
// bytes are kept because PDF and DOCX files cannot be read as text.
type documentInput struct {
	path string
	data []byte
}

func readDocumentInput(fileProcessor *common.FileProcessor) common.CreateInputFunc[documentInput] {
	return func(paths []string) (documentInput, error) {
		if len(paths) != 1 {
			return documentInput{}, fmt.Errorf("expected 1 file path, got %d", len(paths))
		}
		data, err := fileProcessor.ReadFileBytes(paths[0])
		if err != nil {
			return documentInput{}, err
		}
		return documentInput{path: paths[0], data: data}, nil
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	reader := document.NewReader(int64(cfg.App.MaxFileSize), logger)
	parserService := parser.NewService(logger)

	logDetails := func(input documentInput, cfg common.CommandConfig) {
		logger.Info("Starting resume parsing",
			"file", input.path,
			"size_bytes", len(input.data),
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, input documentInput) (*types.Resume, error) {
		doc, err := reader.Read(input.path, input.data)
		if err != nil {
			return nil, err
		}
		return parserService.Parse(doc), nil
	}

	err := common.RunScanCommand(
		cmd.Context(),
		logger,
		parseConfig,
		args,
		readDocumentInput(common.NewFileProcessor(logger)),
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
