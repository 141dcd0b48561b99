package reporter

import (
	"fmt"
	"io"
	"os"

	"golang-swiftmt-service/internal/decoder"
	"golang-swiftmt-service/pkg/errors"
	"golang-swiftmt-service/pkg/logger"
)

// SafeReportGenerator wraps ReportGenerator with enhanced error handling.
// When a structured format fails to render, it falls back to a console
// report so the run still produces usable output.
type SafeReportGenerator struct {
	*ReportGenerator
	logger logger.Logger
}

// NewSafeReportGenerator creates a new safe report generator with error handling
func NewSafeReportGenerator(config *ReportConfig, log logger.Logger) (*SafeReportGenerator, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}

	generator, err := NewReportGenerator(config)
	if err != nil {
		return nil, errors.ConfigurationError(
			errors.CodeInvalidConfig,
			"report_config",
			config,
			err,
		).WithSuggestion("Check the report configuration values")
	}

	return &SafeReportGenerator{
		ReportGenerator: generator,
		logger:          log.WithComponent("reporter"),
	}, nil
}

// GenerateReportSafely generates a report with error handling and a console fallback
func (srg *SafeReportGenerator) GenerateReportSafely(batch *decoder.BatchResult, writer io.Writer) error {
	srg.logger.WithFields(logger.Fields{
		"format": srg.config.Format,
		"output": getWriterDescription(writer),
	}).Info("Starting report generation")

	if err := srg.validateInputs(batch, writer); err != nil {
		srg.logger.WithError(err).Error("Report generation failed: input validation")
		return err
	}

	if err := srg.generateWithFallback(batch, writer); err != nil {
		srg.logger.WithError(err).Error("Report generation failed")
		return err
	}

	srg.logger.Info("Report generation completed successfully")
	return nil
}

// validateInputs validates the inputs for report generation
func (srg *SafeReportGenerator) validateInputs(batch *decoder.BatchResult, writer io.Writer) error {
	if batch == nil {
		return errors.ValidationError(
			errors.CodeMissingField,
			"batch_result",
			nil,
			nil,
		).WithSuggestion("Provide a valid batch decode result")
	}

	if writer == nil {
		return errors.ValidationError(
			errors.CodeMissingField,
			"writer",
			nil,
			nil,
		).WithSuggestion("Provide a valid output writer")
	}

	return nil
}

// generateWithFallback attempts the configured format, then console
func (srg *SafeReportGenerator) generateWithFallback(batch *decoder.BatchResult, writer io.Writer) error {
	err := srg.GenerateReport(batch, writer)
	if err == nil {
		return nil
	}

	if srg.config.Format == FormatConsole {
		return srg.wrapGenerationError(err, writer)
	}

	srg.logger.WithError(err).WithField("fallback_format", FormatConsole).
		Warn("Primary report generation failed, attempting console fallback")

	fallbackConfig := *srg.config
	fallbackConfig.Format = FormatConsole

	fallbackGenerator, genErr := NewReportGenerator(&fallbackConfig)
	if genErr != nil {
		return srg.wrapGenerationError(err, writer)
	}

	// Add fallback notice to the output
	fmt.Fprintf(writer, "NOTE: Report generated in fallback format due to error with requested format\n")
	fmt.Fprintf(writer, "Original error: %v\n\n", err)

	if fallbackErr := fallbackGenerator.GenerateReport(batch, writer); fallbackErr != nil {
		return errors.ReportError(
			errors.CodeWriteFailed,
			getWriterDescription(writer),
			fmt.Errorf("both primary and fallback generation failed: primary=%v, fallback=%v", err, fallbackErr),
		)
	}

	srg.logger.Info("Report generated successfully using format fallback")
	return nil
}

// wrapGenerationError wraps generation errors with output context
func (srg *SafeReportGenerator) wrapGenerationError(err error, writer io.Writer) error {
	if decoderErr, ok := errors.AsDecoderError(err); ok {
		return decoderErr
	}

	return errors.ReportError(errors.CodeWriteFailed, getWriterDescription(writer), err)
}

func getWriterDescription(writer io.Writer) string {
	switch w := writer.(type) {
	case *os.File:
		if w.Name() != "" {
			return fmt.Sprintf("file:%s", w.Name())
		}
		return "file:unnamed"
	default:
		return fmt.Sprintf("writer:%T", writer)
	}
}
