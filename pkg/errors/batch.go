package errors

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileDecodeError ties a DecoderError to the input file it occurred in
type FileDecodeError struct {
	*DecoderError
	File        string `json:"file"`
	Recoverable bool   `json:"recoverable"`
}

// NewFileDecodeError creates a file-scoped decode error
func NewFileDecodeError(file string, err *DecoderError) *FileDecodeError {
	if err == nil {
		return nil
	}

	err.WithContext("file", file)

	return &FileDecodeError{
		DecoderError: err,
		File:         file,
		Recoverable:  true, // One bad file does not stop the batch by default
	}
}

// WithRecoverable sets whether the batch can continue past this error
func (e *FileDecodeError) WithRecoverable(recoverable bool) *FileDecodeError {
	e.Recoverable = recoverable
	return e
}

// Error implements the error interface with the file location appended
func (e *FileDecodeError) Error() string {
	if e.File == "" {
		return e.DecoderError.Error()
	}
	return fmt.Sprintf("%s at %s", e.DecoderError.Error(), filepath.Base(e.File))
}

// GetDetailedError returns a detailed multi-line error description
func (e *FileDecodeError) GetDetailedError() string {
	var lines []string

	lines = append(lines, fmt.Sprintf("ERROR: %s", e.Message))

	if e.File != "" {
		lines = append(lines, fmt.Sprintf("  → File: %s", e.File))
	}
	lines = append(lines, fmt.Sprintf("  → Category: %s", e.Category))
	lines = append(lines, fmt.Sprintf("  → Code: %s", e.Code))

	if e.Cause != nil {
		lines = append(lines, fmt.Sprintf("  → Cause: %v", e.Cause))
	}

	if e.Suggestion != "" {
		lines = append(lines, fmt.Sprintf("  → Suggestion: %s", e.Suggestion))
	}

	return strings.Join(lines, "\n")
}

// BatchErrorCollector collects per-file errors during a batch decode
type BatchErrorCollector struct {
	errors          []*FileDecodeError
	maxErrors       int
	continueOnError bool
}

// NewBatchErrorCollector creates a new error collector
func NewBatchErrorCollector(maxErrors int, continueOnError bool) *BatchErrorCollector {
	return &BatchErrorCollector{
		errors:          make([]*FileDecodeError, 0),
		maxErrors:       maxErrors,
		continueOnError: continueOnError,
	}
}

// Add adds an error to the collector and reports whether processing
// should continue
func (c *BatchErrorCollector) Add(err *FileDecodeError) bool {
	if err == nil {
		return true
	}

	c.errors = append(c.errors, err)

	if c.maxErrors > 0 && len(c.errors) >= c.maxErrors {
		return false
	}

	return c.continueOnError && err.Recoverable
}

// HasErrors returns true if any errors have been collected
func (c *BatchErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// GetErrors returns all collected errors
func (c *BatchErrorCollector) GetErrors() []*FileDecodeError {
	return c.errors
}

// GetDecoderErrors converts all errors to the base DecoderError type
func (c *BatchErrorCollector) GetDecoderErrors() []*DecoderError {
	result := make([]*DecoderError, len(c.errors))
	for i, err := range c.errors {
		result[i] = err.DecoderError
	}
	return result
}

// GetSummary returns an error summary for all collected errors
func (c *BatchErrorCollector) GetSummary() *ErrorSummary {
	return NewErrorSummary(c.GetDecoderErrors())
}

// Clear clears all collected errors
func (c *BatchErrorCollector) Clear() {
	c.errors = c.errors[:0]
}

// FormatBatchErrorsForUser formats multiple decode errors in a
// user-friendly way
func FormatBatchErrorsForUser(errors []*FileDecodeError) string {
	if len(errors) == 0 {
		return "No decode errors"
	}

	if len(errors) == 1 {
		return errors[0].GetDetailedError()
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Found %d decode errors:", len(errors)))
	lines = append(lines, "")

	// Group errors by file
	errorsByFile := make(map[string][]*FileDecodeError)
	var fileOrder []string
	for _, err := range errors {
		file := "unknown"
		if err.File != "" {
			file = filepath.Base(err.File)
		}
		if _, seen := errorsByFile[file]; !seen {
			fileOrder = append(fileOrder, file)
		}
		errorsByFile[file] = append(errorsByFile[file], err)
	}

	maxDetailedErrors := 3
	for _, file := range fileOrder {
		fileErrors := errorsByFile[file]
		lines = append(lines, fmt.Sprintf("File: %s (%d errors)", file, len(fileErrors)))

		for i, err := range fileErrors {
			if i < maxDetailedErrors {
				lines = append(lines, "")
				lines = append(lines, err.GetDetailedError())
			} else {
				remaining := len(fileErrors) - maxDetailedErrors
				lines = append(lines, "")
				lines = append(lines, fmt.Sprintf("... and %d more errors in this file", remaining))
				break
			}
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
