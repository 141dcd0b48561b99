// Package decoder coordinates batch decoding of SWIFT MT message files.
//
// The Service wraps the message parser with the concerns a batch run
// needs: reading and size-guarding input files, UTF-8 validation,
// bounded concurrency, per-file error collection, and progress logging.
// Individual file failures land in the per-file results; the batch
// itself only fails on an invalid request or a cancelled context.
package decoder

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang-swiftmt-service/internal/models"
	"golang-swiftmt-service/internal/mtparser"
	"golang-swiftmt-service/pkg/errors"
	"golang-swiftmt-service/pkg/logger"
)

// Options holds configuration options for the decode service
type Options struct {
	// Processing options
	MaxConcurrency  int
	MaxContentBytes int64

	// Output options
	ProgressReporting bool
}

// DefaultOptions returns a default configuration for the decode service
func DefaultOptions() *Options {
	return &Options{
		MaxConcurrency:    4,
		MaxContentBytes:   10 * 1024 * 1024,
		ProgressReporting: false,
	}
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.MaxConcurrency <= 0 {
		return fmt.Errorf("max concurrency must be positive, got %d", o.MaxConcurrency)
	}

	if o.MaxContentBytes <= 0 {
		return fmt.Errorf("max content bytes must be positive, got %d", o.MaxContentBytes)
	}

	return nil
}

// DecodeRequest represents a request to decode a set of message files
type DecodeRequest struct {
	InputFiles []string
	FailFast   bool
}

// Validate validates the decode request
func (r *DecodeRequest) Validate() error {
	if len(r.InputFiles) == 0 {
		return fmt.Errorf("at least one input file is required")
	}

	for i, path := range r.InputFiles {
		if strings.TrimSpace(path) == "" {
			return fmt.Errorf("input file path at position %d is empty", i)
		}
	}

	return nil
}

// FileResult holds the decode outcome for a single input file. Exactly
// one of Message and Err is set.
type FileResult struct {
	File    string
	Message *models.Message
	Err     error
}

// Succeeded reports whether the file decoded without error
func (fr *FileResult) Succeeded() bool {
	return fr.Err == nil
}

// Summary provides a high-level overview of a batch decode run
type Summary struct {
	// File counts
	FilesProcessed int `json:"files_processed"`
	FilesDecoded   int `json:"files_decoded"`
	FilesFailed    int `json:"files_failed"`

	// Message breakdown
	TotalBlocks    int            `json:"total_blocks"`
	MessagesByType map[string]int `json:"messages_by_type,omitempty"`

	// Processing metadata
	ProcessingDuration time.Duration `json:"processing_duration"`
}

// BatchResult contains the complete results of a batch decode run.
// Results preserves the input file order; files skipped by an early
// stop are absent.
type BatchResult struct {
	Results     []*FileResult
	Errors      []*errors.FileDecodeError
	Summary     *Summary
	ProcessedAt time.Time
}

// HasFailures reports whether any file in the batch failed to decode
func (br *BatchResult) HasFailures() bool {
	return br.Summary != nil && br.Summary.FilesFailed > 0
}

// ErrorSummary aggregates the batch failures by category and code
func (br *BatchResult) ErrorSummary() *errors.ErrorSummary {
	decoderErrors := make([]*errors.DecoderError, 0, len(br.Errors))
	for _, err := range br.Errors {
		decoderErrors = append(decoderErrors, err.DecoderError)
	}
	return errors.NewErrorSummary(decoderErrors)
}

// Service decodes SWIFT MT message files in batches
type Service struct {
	options *Options
	logger  logger.Logger
}

// NewService creates a new decode service
func NewService(options *Options) (*Service, error) {
	if options == nil {
		options = DefaultOptions()
	}

	if err := options.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	return &Service{
		options: options,
		logger:  logger.GetGlobalLogger().WithComponent("decoder"),
	}, nil
}

// GetOptions returns the current options
func (s *Service) GetOptions() *Options {
	return s.options
}

// DecodeFiles decodes every file in the request. Per-file failures are
// recorded in the returned results; the error return is reserved for an
// invalid request or a cancelled context, in which case the partial
// batch result is still returned.
func (s *Service) DecodeFiles(ctx context.Context, request *DecodeRequest) (*BatchResult, error) {
	if err := request.Validate(); err != nil {
		return nil, errors.ValidationError(
			errors.CodeMissingField,
			"decode_request",
			request,
			err,
		).WithSuggestion("Provide at least one input file path")
	}

	startTime := time.Now()

	op := logger.NewOperationLogger("batch_decode", s.logger).
		WithField("file_count", len(request.InputFiles)).
		WithField("fail_fast", request.FailFast)
	op.Step("decoding input files")

	var tracker *logger.ProgressTracker
	if s.options.ProgressReporting {
		tracker = logger.NewProgressTracker(logger.ProgressConfig{
			Operation: "decode_files",
			Total:     int64(len(request.InputFiles)),
			Logger:    s.logger,
		})
	}

	collector := errors.NewBatchErrorCollector(0, !request.FailFast)
	results := make([]*FileResult, len(request.InputFiles))

	var runErr error
	if s.options.MaxConcurrency > 1 && len(request.InputFiles) > 1 {
		runErr = s.decodeConcurrently(ctx, request.InputFiles, results, collector, tracker)
	} else {
		runErr = s.decodeSequentially(ctx, request.InputFiles, results, collector, tracker)
	}

	batch := s.buildBatchResult(results, collector, startTime)

	if tracker != nil {
		if runErr != nil {
			tracker.CompleteWithError(runErr)
		} else {
			tracker.Complete()
		}
	}

	if runErr != nil {
		op.Error(runErr, "Batch decode aborted")
		return batch, runErr
	}

	op.WithFields(logger.Fields{
		"files_decoded": batch.Summary.FilesDecoded,
		"files_failed":  batch.Summary.FilesFailed,
	}).Success("Batch decode completed")

	return batch, nil
}

// DecodeText decodes a single message given as raw text
func (s *Service) DecodeText(text string) (*models.Message, error) {
	s.logger.WithField("content_length", len(text)).Debug("Decoding message text")
	return mtparser.Parse(text)
}

// decodeSequentially processes the input files one at a time in order
func (s *Service) decodeSequentially(
	ctx context.Context,
	paths []string,
	results []*FileResult,
	collector *errors.BatchErrorCollector,
	tracker *logger.ProgressTracker,
) error {

	for i, path := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("decoding cancelled: %w", ctx.Err())
		default:
		}

		result := s.decodeOne(path)
		results[i] = result

		if tracker != nil {
			tracker.Increment()
		}

		if result.Err != nil {
			if !collector.Add(s.toFileDecodeError(path, result.Err)) {
				break
			}
		}
	}

	return nil
}

// decodeConcurrently processes the input files with bounded concurrency.
// Each goroutine writes its result into the slot matching the input
// position, so the output order never depends on scheduling.
func (s *Service) decodeConcurrently(
	parent context.Context,
	paths []string,
	results []*FileResult,
	collector *errors.BatchErrorCollector,
	tracker *logger.ProgressTracker,
) error {

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	semaphore := make(chan struct{}, s.options.MaxConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, path := range paths {
		wg.Add(1)

		go func(index int, path string) {
			defer wg.Done()

			// Acquire semaphore
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			select {
			case <-ctx.Done():
				return
			default:
			}

			result := s.decodeOne(path)

			mu.Lock()
			results[index] = result
			if result.Err != nil {
				if !collector.Add(s.toFileDecodeError(path, result.Err)) {
					cancel()
				}
			}
			mu.Unlock()

			if tracker != nil {
				tracker.Increment()
			}
		}(i, path)
	}

	wg.Wait()

	// A cancelled internal context only aborts the batch when the
	// caller's context caused it; a fail-fast stop is a normal return.
	if parent.Err() != nil {
		return fmt.Errorf("decoding cancelled: %w", parent.Err())
	}

	return nil
}

// decodeOne decodes a single file into a per-file result
func (s *Service) decodeOne(path string) *FileResult {
	result := &FileResult{File: path}

	message, err := s.decodeFile(path)
	if err != nil {
		s.logger.WithError(err).WithField("file_path", path).Error("Failed to decode message file")
		result.Err = err
		return result
	}

	s.logger.WithFields(logger.Fields{
		"file_path":    path,
		"message_type": message.MessageType(),
		"block_count":  message.BlockCount(),
	}).Debug("Decoded message file")

	result.Message = message
	return result
}

// decodeFile reads and parses a single message file
func (s *Service) decodeFile(path string) (*models.Message, error) {
	s.logger.WithField("file_path", path).Debug("Reading message file")

	info, err := os.Stat(path)
	if err != nil {
		// Determine the specific type of file error
		if os.IsNotExist(err) {
			return nil, errors.FileError(errors.CodeFileNotFound, path, err)
		}
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}

		// Generic file error
		return nil, errors.FileError(errors.CodeDirectoryError, path, err)
	}

	if info.IsDir() {
		return nil, errors.FileError(errors.CodeDirectoryError, path,
			fmt.Errorf("%s is a directory, not a message file", path))
	}

	if info.Size() > s.options.MaxContentBytes {
		return nil, errors.FileError(errors.CodeFileTooLarge, path,
			fmt.Errorf("file size %d exceeds limit of %d bytes", info.Size(), s.options.MaxContentBytes))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.FileError(errors.CodeFilePermission, path, err)
		}
		return nil, errors.FileError(errors.CodeDirectoryError, path, err)
	}

	if !utf8.Valid(content) {
		return nil, errors.ParseError(
			errors.CodeEncodingError,
			path,
			fmt.Errorf("invalid UTF-8 encoding detected"),
		).WithSuggestion("Save the file in UTF-8 encoding and try again")
	}

	return mtparser.Parse(string(content))
}

// toFileDecodeError attaches the file path to a decode failure
func (s *Service) toFileDecodeError(path string, err error) *errors.FileDecodeError {
	decoderErr := errors.WrapIfNeeded(
		err,
		errors.CategoryInternal,
		errors.CodeUnexpectedError,
		"file decode failed",
	)
	return errors.NewFileDecodeError(path, decoderErr)
}

// buildBatchResult compacts the per-file results and derives the summary
func (s *Service) buildBatchResult(
	results []*FileResult,
	collector *errors.BatchErrorCollector,
	startTime time.Time,
) *BatchResult {

	// Slots left nil by an early stop are dropped.
	processed := make([]*FileResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			processed = append(processed, result)
		}
	}

	summary := &Summary{
		FilesProcessed:     len(processed),
		MessagesByType:     make(map[string]int),
		ProcessingDuration: time.Since(startTime),
	}

	for _, result := range processed {
		if result.Err != nil {
			summary.FilesFailed++
			continue
		}

		summary.FilesDecoded++
		summary.TotalBlocks += result.Message.BlockCount()
		if messageType := result.Message.MessageType(); messageType != "" {
			summary.MessagesByType[messageType]++
		}
	}

	if len(summary.MessagesByType) == 0 {
		summary.MessagesByType = nil
	}

	return &BatchResult{
		Results:     processed,
		Errors:      collector.GetErrors(),
		Summary:     summary,
		ProcessedAt: startTime,
	}
}
