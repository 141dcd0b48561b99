package config

import (
	"fmt"

	"golang-swiftmt-service/internal/decoder"
	"golang-swiftmt-service/internal/reporter"
)

// CreateDecoderOptions creates decoder options with the CLI overrides applied
func CreateDecoderOptions(maxConcurrency int, maxFileSize int64, showProgress bool) *decoder.Options {
	options := decoder.DefaultOptions()

	// Apply CLI overrides
	options.MaxConcurrency = maxConcurrency
	options.MaxContentBytes = maxFileSize
	options.ProgressReporting = showProgress

	return options
}

// CreateReportConfig creates a report configuration for the specified output format
func CreateReportConfig(format string) *reporter.ReportConfig {
	config := reporter.DefaultReportConfig()

	// Set output format
	switch format {
	case "console":
		config.Format = reporter.FormatConsole
		config.UseColors = true
		config.IncludeMessages = true
		config.IncludeRawBlockSummary = true
		config.IncludeCharges = true
	case "json":
		config.Format = reporter.FormatJSON
		config.IncludeMessages = true
		config.IncludeRawBlockSummary = false // Block presence is visible in the message itself
		config.IncludeCharges = true
	case "csv":
		config.Format = reporter.FormatCSV
		config.CSVHeaders = true
		config.CSVDelimiter = ','
		config.IncludeCharges = true
		config.IncludeMessages = false // CSV carries one flattened row per file
	}

	return config
}

// ValidateConfigs validates that all derived configurations are valid
func ValidateConfigs(options *decoder.Options, reportConfig *reporter.ReportConfig) error {
	if err := options.Validate(); err != nil {
		return fmt.Errorf("invalid decoder options: %w", err)
	}

	if err := reportConfig.Validate(); err != nil {
		return fmt.Errorf("invalid report config: %w", err)
	}

	return nil
}

// MessageTypeProfile describes a commonly decoded MT message type
type MessageTypeProfile struct {
	Type        string
	Name        string
	Description string
}

// CommonMessageTypes returns the MT message types most often seen in decoded traffic
func CommonMessageTypes() []MessageTypeProfile {
	return []MessageTypeProfile{
		{
			Type:        "103",
			Name:        "Single Customer Credit Transfer",
			Description: "Customer payment between banks, with ordering customer and beneficiary details",
		},
		{
			Type:        "202",
			Name:        "General Financial Institution Transfer",
			Description: "Bank-to-bank funds movement without underlying customer parties",
		},
		{
			Type:        "900",
			Name:        "Confirmation of Debit",
			Description: "Advice that an account has been debited",
		},
		{
			Type:        "910",
			Name:        "Confirmation of Credit",
			Description: "Advice that an account has been credited",
		},
		{
			Type:        "940",
			Name:        "Customer Statement Message",
			Description: "End-of-day account statement with booked entries",
		},
		{
			Type:        "950",
			Name:        "Statement Message",
			Description: "Account statement exchanged between financial institutions",
		},
	}
}

// GetMessageTypeProfile returns a message type profile by its MT number
func GetMessageTypeProfile(messageType string) (*MessageTypeProfile, error) {
	for _, profile := range CommonMessageTypes() {
		if profile.Type == messageType {
			p := profile
			return &p, nil
		}
	}

	return nil, fmt.Errorf("unknown message type: %s", messageType)
}
