package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"golang-swiftmt-service/cmd/swiftmt/config"
	"golang-swiftmt-service/internal/decoder"
	"golang-swiftmt-service/internal/reporter"
	"golang-swiftmt-service/pkg/errors"
	"golang-swiftmt-service/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flags for the decode command
var (
	inputFiles     []string
	outputFormat   string
	outputFile     string
	maxConcurrency int
	maxFileSize    int64
	failFast       bool
	showProgress   bool
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode SWIFT MT message files",
	Long: `Decode reads one or more SWIFT MT message files, splits each message into
its framing blocks, and extracts the tagged fields of the text block into
a structured record.

Decoding is best effort: malformed headers and unknown tags never abort a
file, and a file that fails to decode does not stop the rest of the batch
unless --fail-fast is set.

Examples:
  # Decode a single message file
  swiftmt decode --input-files payment.txt

  # Decode several files with JSON output written to a file
  swiftmt decode --input-files mt103_a.txt,mt103_b.txt \
    --output-format json --output-file report.json

  # Stop the batch at the first file that fails
  swiftmt decode --input-files a.txt,b.txt,c.txt --fail-fast

  # Show progress while decoding a large batch
  swiftmt decode --input-files batch1.txt,batch2.txt --progress`,

	PreRunE: validateDecodeFlags,
	RunE:    runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)

	// Required flags
	decodeCmd.Flags().StringSliceVarP(&inputFiles, "input-files", "i", []string{}, "comma-separated paths to MT message files (required)")

	// Output flags
	decodeCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "console", "output format: console, json, csv")
	decodeCmd.Flags().StringVarP(&outputFile, "output-file", "o", "", "output file path (default: stdout)")

	// Processing flags
	decodeCmd.Flags().IntVarP(&maxConcurrency, "max-concurrency", "c", 4, "maximum number of files decoded in parallel")
	decodeCmd.Flags().Int64Var(&maxFileSize, "max-file-size", 10*1024*1024, "maximum input file size in bytes")
	decodeCmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop the batch at the first file that fails to decode")

	// UI flags
	decodeCmd.Flags().BoolVar(&showProgress, "progress", false, "show progress indicators")

	// Mark required flags
	decodeCmd.MarkFlagRequired("input-files")

	// Bind flags to viper
	viper.BindPFlag("input-files", decodeCmd.Flags().Lookup("input-files"))
	viper.BindPFlag("output-format", decodeCmd.Flags().Lookup("output-format"))
	viper.BindPFlag("output-file", decodeCmd.Flags().Lookup("output-file"))
	viper.BindPFlag("max-concurrency", decodeCmd.Flags().Lookup("max-concurrency"))
	viper.BindPFlag("max-file-size", decodeCmd.Flags().Lookup("max-file-size"))
	viper.BindPFlag("fail-fast", decodeCmd.Flags().Lookup("fail-fast"))
	viper.BindPFlag("progress", decodeCmd.Flags().Lookup("progress"))
}

func validateDecodeFlags(cmd *cobra.Command, args []string) error {
	// Get values from viper (allows override from config file)
	inputFiles = viper.GetStringSlice("input-files")
	outputFormat = viper.GetString("output-format")
	outputFile = viper.GetString("output-file")
	maxConcurrency = viper.GetInt("max-concurrency")
	maxFileSize = viper.GetInt64("max-file-size")
	failFast = viper.GetBool("fail-fast")
	showProgress = viper.GetBool("progress")

	// Validate required flags
	if len(inputFiles) == 0 {
		return fmt.Errorf("at least one input-file is required")
	}

	// Validate file existence
	for i, inputFile := range inputFiles {
		if err := validateFileExists(inputFile, fmt.Sprintf("input file %d", i+1)); err != nil {
			return err
		}
	}

	// Validate output format
	validFormats := map[string]bool{"console": true, "json": true, "csv": true}
	if !validFormats[outputFormat] {
		return fmt.Errorf("invalid output format '%s'. Valid formats: console, json, csv", outputFormat)
	}

	// Validate processing limits
	if maxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}
	if maxFileSize < 1 {
		return fmt.Errorf("max file size must be at least 1 byte")
	}

	// Validate output file directory exists if specified
	if outputFile != "" {
		dir := filepath.Dir(outputFile)
		if dir != "." {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return fmt.Errorf("output directory does not exist: %s", dir)
			}
		}
	}

	// Validate the derived configurations before doing any work
	decoderOptions := config.CreateDecoderOptions(maxConcurrency, maxFileSize, showProgress)
	reportConfig := config.CreateReportConfig(outputFormat)
	if err := config.ValidateConfigs(decoderOptions, reportConfig); err != nil {
		return err
	}

	return nil
}

func validateFileExists(filePath, description string) error {
	if filePath == "" {
		return fmt.Errorf("%s path cannot be empty", description)
	}

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("%s does not exist: %s", description, filePath)
	}
	if err != nil {
		return fmt.Errorf("error accessing %s: %w", description, err)
	}

	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a file: %s", description, filePath)
	}

	// Check if file is readable
	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("%s is not readable: %w", description, err)
	}
	file.Close()

	return nil
}

func runDecode(cmd *cobra.Command, args []string) error {
	// Interrupts cancel the batch; decoded files up to that point are still reported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "Starting decode...\n")
		fmt.Fprintf(os.Stderr, "Input files: %s\n", strings.Join(inputFiles, ", "))
		fmt.Fprintf(os.Stderr, "Output format: %s\n", outputFormat)
		if outputFile != "" {
			fmt.Fprintf(os.Stderr, "Output file: %s\n", outputFile)
		}
	}

	// Create the decode service
	decoderOptions := config.CreateDecoderOptions(maxConcurrency, maxFileSize, showProgress)
	service, err := decoder.NewService(decoderOptions)
	if err != nil {
		return fmt.Errorf("failed to create decode service: %w", err)
	}

	request := &decoder.DecodeRequest{
		InputFiles: inputFiles,
		FailFast:   failFast,
	}

	// Show progress if requested
	if showProgress {
		fmt.Fprintf(os.Stderr, "Decoding %d files...\n", len(inputFiles))
	}

	// Decode the batch
	var batch *decoder.BatchResult
	decodeErr := logger.TimedOperation("decode_files", logger.GetGlobalLogger().WithComponent("cli"), func() error {
		var err error
		batch, err = service.DecodeFiles(ctx, request)
		return err
	})
	if decodeErr != nil {
		if batch == nil || len(batch.Results) == 0 {
			return fmt.Errorf("decoding failed: %w", decodeErr)
		}
		// An interrupted batch still carries the files finished before the stop.
		fmt.Fprintf(os.Stderr, "Warning: decoding stopped early: %v\n", decodeErr)
		fmt.Fprintf(os.Stderr, "Reporting %d partial results.\n", len(batch.Results))
	}

	// Generate report
	reportConfig := config.CreateReportConfig(outputFormat)
	reportGenerator, err := reporter.NewSafeReportGenerator(reportConfig, nil)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	// Determine output destination
	var output *os.File
	if outputFile != "" {
		output, err = os.Create(outputFile)
		if err != nil {
			return errors.ReportError(errors.CodeWriteFailed, outputFile, err).
				WithSuggestion("Check that the output directory exists and is writable")
		}
		defer output.Close()
	} else {
		output = os.Stdout
	}

	if err := reportGenerator.GenerateReportSafely(batch, output); err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	// Show completion message
	if viper.GetBool("verbose") {
		fmt.Fprintf(os.Stderr, "\nDecode completed.\n")
		fmt.Fprintf(os.Stderr, "Processed %d files: %d decoded, %d failed.\n",
			batch.Summary.FilesProcessed, batch.Summary.FilesDecoded, batch.Summary.FilesFailed)
		fmt.Fprintf(os.Stderr, "Processing time: %v\n", batch.Summary.ProcessingDuration)
	}

	if batch.HasFailures() {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "\n%s\n", errors.FormatBatchErrorsForUser(batch.Errors))
		}
		if batch.Summary.FilesDecoded == 0 {
			return fmt.Errorf("all %d input files failed to decode", batch.Summary.FilesFailed)
		}
	}

	return nil
}
