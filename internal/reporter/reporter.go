// Package reporter renders batch decode results for people and machines.
//
// Reports are generated from a decoder.BatchResult and written to any
// io.Writer, supporting multiple output formats:
//   - Console: Human-readable output for terminal display
//   - JSON: Structured data format for programmatic consumption
//   - CSV: Comma-separated format for spreadsheet applications
//
// Example usage:
//
//	generator, err := reporter.NewReportGenerator(reporter.DefaultReportConfig())
//	if err != nil {
//		return err
//	}
//	err = generator.GenerateReport(batch, os.Stdout)
package reporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"golang-swiftmt-service/internal/decoder"
	"golang-swiftmt-service/internal/models"
)

// OutputFormat represents the supported report output formats.
// Each format is optimized for different use cases and audiences.
type OutputFormat string

const (
	FormatConsole OutputFormat = "console"
	FormatJSON    OutputFormat = "json"
	FormatCSV     OutputFormat = "csv"
)

// IsValid checks if the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatConsole, FormatJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// Per-file report status values
const (
	statusDecoded = "decoded"
	statusFailed  = "failed"
)

// ANSI color codes for console output
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
)

// ReportConfig holds configuration options for report generation
type ReportConfig struct {
	// Output format
	Format OutputFormat `json:"format"`

	// Detail level options
	IncludeMessages        bool `json:"include_messages"`
	IncludeRawBlockSummary bool `json:"include_raw_block_summary"`
	IncludeCharges         bool `json:"include_charges"`

	// Console formatting options
	UseColors bool `json:"use_colors"`

	// CSV options
	CSVDelimiter rune `json:"csv_delimiter"`
	CSVHeaders   bool `json:"csv_headers"`
}

// DefaultReportConfig returns a default report configuration
func DefaultReportConfig() *ReportConfig {
	return &ReportConfig{
		Format:                 FormatConsole,
		IncludeMessages:        true,
		IncludeRawBlockSummary: true,
		IncludeCharges:         true,
		UseColors:              true,
		CSVDelimiter:           ',',
		CSVHeaders:             true,
	}
}

// Validate validates the report configuration
func (c *ReportConfig) Validate() error {
	if !c.Format.IsValid() {
		return fmt.Errorf("invalid output format: %s", c.Format)
	}

	if c.CSVDelimiter == 0 {
		return fmt.Errorf("csv delimiter must be set")
	}

	return nil
}

// ReportGenerator generates decode reports in various formats
type ReportGenerator struct {
	config *ReportConfig
}

// NewReportGenerator creates a new report generator with the specified configuration
func NewReportGenerator(config *ReportConfig) (*ReportGenerator, error) {
	if config == nil {
		config = DefaultReportConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}

	return &ReportGenerator{
		config: config,
	}, nil
}

// GenerateReport generates a report from batch decode results and writes it to the provided writer
func (rg *ReportGenerator) GenerateReport(batch *decoder.BatchResult, writer io.Writer) error {
	if batch == nil {
		return fmt.Errorf("batch result cannot be nil")
	}

	switch rg.config.Format {
	case FormatConsole:
		return rg.generateConsoleReport(batch, writer)
	case FormatJSON:
		return rg.generateJSONReport(batch, writer)
	case FormatCSV:
		return rg.generateCSVReport(batch, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", rg.config.Format)
	}
}

// generateConsoleReport generates a human-readable console report
func (rg *ReportGenerator) generateConsoleReport(batch *decoder.BatchResult, writer io.Writer) error {
	// Report header
	fmt.Fprintf(writer, "MESSAGE DECODE REPORT\n")
	fmt.Fprintf(writer, "Generated: %s\n", batch.ProcessedAt.Format(time.RFC3339))
	fmt.Fprintf(writer, "Processing Duration: %v\n\n", batch.Summary.ProcessingDuration)

	// Summary section
	fmt.Fprintf(writer, "=== SUMMARY ===\n")
	rg.printSummaryTable(batch.Summary, writer)
	fmt.Fprintf(writer, "\n")

	// Decoded messages
	if rg.config.IncludeMessages && batch.Summary.FilesDecoded > 0 {
		fmt.Fprintf(writer, "=== MESSAGES ===\n")
		rg.printMessages(batch.Results, writer)
		fmt.Fprintf(writer, "\n")
	}

	// Failures
	if batch.Summary.FilesFailed > 0 {
		fmt.Fprintf(writer, "=== FAILURES ===\n")
		rg.printFailures(batch.Results, writer)
	}

	return nil
}

// generateJSONReport generates a structured JSON report
func (rg *ReportGenerator) generateJSONReport(batch *decoder.BatchResult, writer io.Writer) error {
	output := rg.buildJSONDocument(batch)

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")

	return encoder.Encode(output)
}

// generateCSVReport generates a CSV report with one row per input file
func (rg *ReportGenerator) generateCSVReport(batch *decoder.BatchResult, writer io.Writer) error {
	csvWriter := csv.NewWriter(writer)
	csvWriter.Comma = rg.config.CSVDelimiter
	defer csvWriter.Flush()

	// Write headers if enabled
	if rg.config.CSVHeaders {
		if err := csvWriter.Write(rg.csvHeaders()); err != nil {
			return fmt.Errorf("failed to write CSV headers: %w", err)
		}
	}

	for _, result := range batch.Results {
		if err := csvWriter.Write(rg.csvRecord(result)); err != nil {
			return fmt.Errorf("failed to write CSV record for %s: %w", result.File, err)
		}
	}

	return nil
}

// Helper methods for console output formatting

func (rg *ReportGenerator) printSummaryTable(summary *decoder.Summary, writer io.Writer) {
	fmt.Fprintf(writer, "Files:\n")
	fmt.Fprintf(writer, "  Processed: %d\n", summary.FilesProcessed)
	fmt.Fprintf(writer, "  Decoded:   %s (%.1f%%)\n",
		rg.colorize(fmt.Sprintf("%d", summary.FilesDecoded), colorGreen),
		rg.calculatePercentage(summary.FilesDecoded, summary.FilesProcessed))
	fmt.Fprintf(writer, "  Failed:    %s (%.1f%%)\n",
		rg.colorize(fmt.Sprintf("%d", summary.FilesFailed), colorRed),
		rg.calculatePercentage(summary.FilesFailed, summary.FilesProcessed))

	fmt.Fprintf(writer, "\nBlocks Decoded: %d\n", summary.TotalBlocks)

	if len(summary.MessagesByType) > 0 {
		fmt.Fprintf(writer, "Messages By Type:\n")

		types := make([]string, 0, len(summary.MessagesByType))
		for messageType := range summary.MessagesByType {
			types = append(types, messageType)
		}
		sort.Strings(types)

		for _, messageType := range types {
			fmt.Fprintf(writer, "  MT%s: %d\n", messageType, summary.MessagesByType[messageType])
		}
	}
}

func (rg *ReportGenerator) printMessages(results []*decoder.FileResult, writer io.Writer) {
	index := 0
	for _, result := range results {
		if result.Err != nil {
			continue
		}
		index++

		fmt.Fprintf(writer, "%d. %s\n", index, result.File)
		rg.printMessageDetails(result.Message, writer)
		fmt.Fprintf(writer, "\n")
	}
}

func (rg *ReportGenerator) printMessageDetails(message *models.Message, writer io.Writer) {
	messageType := message.MessageType()
	if messageType == "" {
		messageType = "-"
	}
	fmt.Fprintf(writer, "   Type: MT%s\n", messageType)

	if reference := message.TransactionReference(); reference != "" {
		fmt.Fprintf(writer, "   Reference: %s\n", reference)
	}

	if message.BasicHeader != nil && message.BasicHeader.LogicalTerminal != "" {
		fmt.Fprintf(writer, "   Logical Terminal: %s\n", message.BasicHeader.LogicalTerminal)
	}

	if body := message.TextBody; body != nil {
		if line := formatCurrencyAmount(body.ValueDateAmount); line != "" {
			fmt.Fprintf(writer, "   Settlement: %s\n", line)
		}
		if line := formatCurrencyAmount(body.InstructedAmount); line != "" {
			fmt.Fprintf(writer, "   Instructed: %s\n", line)
		}
		if line := formatParty(body.OrderingCustomer); line != "" {
			fmt.Fprintf(writer, "   Ordering Customer: %s\n", line)
		}
		if line := formatParty(body.Beneficiary); line != "" {
			fmt.Fprintf(writer, "   Beneficiary: %s\n", line)
		}

		if rg.config.IncludeCharges {
			rg.printCharges(body, writer)
		}
	}

	if rg.config.IncludeRawBlockSummary {
		fmt.Fprintf(writer, "   Blocks: %s\n", strings.Join(presentBlocks(message), ", "))
	}
}

func (rg *ReportGenerator) printCharges(body *models.TextBody, writer io.Writer) {
	if body.ChargeDetails == "" && len(body.SenderCharges) == 0 {
		return
	}

	parts := make([]string, 0, 2)
	if body.ChargeDetails != "" {
		parts = append(parts, body.ChargeDetails)
	}
	if len(body.SenderCharges) > 0 {
		charges := make([]string, 0, len(body.SenderCharges))
		for _, charge := range body.SenderCharges {
			charges = append(charges, charge.String())
		}
		parts = append(parts, fmt.Sprintf("sender charges %s, total %s",
			strings.Join(charges, " + "), body.TotalSenderCharges().String()))
	}

	fmt.Fprintf(writer, "   Charges: %s\n", strings.Join(parts, "; "))
}

func (rg *ReportGenerator) printFailures(results []*decoder.FileResult, writer io.Writer) {
	failed := make([]*decoder.FileResult, 0)
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}

	fmt.Fprintf(writer, "Total Failed Files: %d\n\n", len(failed))

	for i, result := range failed {
		fmt.Fprintf(writer, "  %d. %s: %s\n", i+1, result.File,
			rg.colorize(result.Err.Error(), colorYellow))

		// Limit output for very long lists
		if i >= 9 && len(failed) > 10 {
			fmt.Fprintf(writer, "  ... and %d more\n", len(failed)-10)
			break
		}
	}
}

// Helper methods

func (rg *ReportGenerator) buildJSONDocument(batch *decoder.BatchResult) map[string]interface{} {
	files := make([]map[string]interface{}, 0, len(batch.Results))
	for _, result := range batch.Results {
		entry := map[string]interface{}{
			"file": result.File,
		}

		if result.Err != nil {
			entry["status"] = statusFailed
			entry["error"] = result.Err.Error()
		} else {
			entry["status"] = statusDecoded
			if rg.config.IncludeMessages {
				entry["message"] = result.Message
			}
		}

		files = append(files, entry)
	}

	return map[string]interface{}{
		"summary":      batch.Summary,
		"processed_at": batch.ProcessedAt,
		"files":        files,
	}
}

func (rg *ReportGenerator) csvHeaders() []string {
	headers := []string{
		"File",
		"Status",
		"Message_Type",
		"Transaction_Reference",
		"Value_Date",
		"Currency",
		"Amount",
		"Ordering_Customer",
		"Beneficiary",
	}
	if rg.config.IncludeCharges {
		headers = append(headers, "Charges_Total")
	}
	return append(headers, "Notes")
}

func (rg *ReportGenerator) csvRecord(result *decoder.FileResult) []string {
	if result.Err != nil {
		record := []string{result.File, statusFailed, "", "", "", "", "", "", ""}
		if rg.config.IncludeCharges {
			record = append(record, "")
		}
		return append(record, result.Err.Error())
	}

	message := result.Message
	var body *models.TextBody
	if message != nil {
		body = message.TextBody
	}

	record := []string{
		result.File,
		statusDecoded,
		message.MessageType(),
		message.TransactionReference(),
	}

	var settlement *models.CurrencyAmount
	var orderingCustomer, beneficiary *models.PartyInfo
	if body != nil {
		settlement = body.ValueDateAmount
		orderingCustomer = body.OrderingCustomer
		beneficiary = body.Beneficiary
	}

	record = append(record,
		valueDateString(settlement),
		currencyString(settlement),
		amountString(settlement),
		partyName(orderingCustomer),
		partyName(beneficiary),
	)

	if rg.config.IncludeCharges {
		record = append(record, chargesTotalString(body))
	}

	return append(record, "")
}

func (rg *ReportGenerator) calculatePercentage(part, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(part) / float64(total) * 100.0
}

func (rg *ReportGenerator) colorize(text, color string) string {
	if !rg.config.UseColors {
		return text
	}
	return color + text + colorReset
}

// Nil-safe field renderers shared by the console and CSV formats

func formatCurrencyAmount(amount *models.CurrencyAmount) string {
	if amount == nil {
		return ""
	}

	parts := make([]string, 0, 3)
	if amount.ValueDate != nil {
		parts = append(parts, amount.ValueDate.Format("2006-01-02"))
	}
	if amount.Currency != "" {
		parts = append(parts, amount.Currency)
	}
	if amount.Amount.Valid {
		parts = append(parts, amount.Amount.Decimal.String())
	}

	return strings.Join(parts, " ")
}

func formatParty(party *models.PartyInfo) string {
	if party == nil {
		return ""
	}

	switch {
	case party.Name != "" && party.HasAccount():
		return fmt.Sprintf("%s (account %s)", party.Name, party.Account)
	case party.Name != "":
		return party.Name
	case party.HasAccount():
		return fmt.Sprintf("account %s", party.Account)
	default:
		return ""
	}
}

func presentBlocks(message *models.Message) []string {
	blocks := make([]string, 0, 5)
	if message.BasicHeader != nil {
		blocks = append(blocks, "1")
	}
	if message.ApplicationHeader != nil {
		blocks = append(blocks, "2")
	}
	if message.UserHeader != nil {
		blocks = append(blocks, "3")
	}
	if message.TextBody != nil {
		blocks = append(blocks, "4")
	}
	if message.Trailer != nil {
		blocks = append(blocks, "5")
	}
	if len(blocks) == 0 {
		return []string{"none"}
	}
	return blocks
}

func valueDateString(amount *models.CurrencyAmount) string {
	if amount == nil || amount.ValueDate == nil {
		return ""
	}
	return amount.ValueDate.Format("2006-01-02")
}

func currencyString(amount *models.CurrencyAmount) string {
	if amount == nil {
		return ""
	}
	return amount.Currency
}

func amountString(amount *models.CurrencyAmount) string {
	if amount == nil || !amount.Amount.Valid {
		return ""
	}
	return amount.Amount.Decimal.String()
}

func partyName(party *models.PartyInfo) string {
	if party == nil {
		return ""
	}
	return party.Name
}

func chargesTotalString(body *models.TextBody) string {
	if body == nil || len(body.SenderCharges) == 0 {
		return ""
	}
	return body.TotalSenderCharges().String()
}

// UpdateConfiguration updates the report generator configuration
func (rg *ReportGenerator) UpdateConfiguration(config *ReportConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid report configuration: %w", err)
	}

	rg.config = config
	return nil
}

// GetConfiguration returns the current configuration
func (rg *ReportGenerator) GetConfiguration() *ReportConfig {
	return rg.config
}
