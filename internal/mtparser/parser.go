// Package mtparser decodes SWIFT MT messages into structured records.
//
// A message is a sequence of brace-delimited blocks ({1:...} through
// {5:...}). The package scans the top-level blocks, decodes the two
// positional header blocks by fixed offsets and the three tagged blocks
// by colon-delimited field tags, and assembles the result into a
// models.Message.
//
// Decoding is best effort: only an empty or whitespace-only input is an
// error. Missing blocks leave the matching sub-record nil, short header
// content leaves fields empty, malformed dates and amounts leave the
// value unset, and unknown tags are skipped. Malformed input never
// panics.
//
// Known limitations:
//   - Block content containing a literal "}" is truncated at that
//     brace; nested braces are not balanced.
//   - Repeated blocks and repeated scalar tags keep the last
//     occurrence; only field 71F accumulates repetitions.
//
// Parse is stateless and safe for concurrent use on independent inputs.
package mtparser

import (
	"regexp"
	"strings"

	"golang-swiftmt-service/internal/models"
	"golang-swiftmt-service/pkg/errors"
)

const (
	// BlockPattern matches one top-level block: "{", a single digit
	// block identifier, ":" and the content up to the next closing
	// brace. The non-greedy body stops at the first "}".
	BlockPattern = `(?s)\{(\d):(.*?)\}`

	// TagPattern matches a colon-delimited field tag: two digits with
	// an optional trailing digit or uppercase letter (20, 23B, 32A,
	// 108) or three uppercase letters (MAC, CHK).
	TagPattern = `:(\d{2}[A-Z0-9]?|[A-Z]{3}):`
)

var (
	blockRegex = regexp.MustCompile(BlockPattern)
	tagRegex   = regexp.MustCompile(TagPattern)
)

// TagField is one tagged field occurrence in block content, in
// encounter order
type TagField struct {
	Tag   string
	Value string
}

// Parse decodes a SWIFT MT message. Blocks absent from the input leave
// the matching sub-record nil; an input without any block decodes to a
// Message with all sub-records nil. Only an empty or whitespace-only
// input returns an error.
func Parse(message string) (*models.Message, error) {
	if strings.TrimSpace(message) == "" {
		return nil, errors.ValidationError(errors.CodeEmptyMessage, "message", message, nil)
	}

	message = strings.ReplaceAll(message, "\r\n", "\n")

	blocks := scanBlocks(message)
	msg := &models.Message{}

	if content, ok := blocks["1"]; ok {
		msg.BasicHeader = decodeBasicHeader(content)
	}
	if content, ok := blocks["2"]; ok {
		msg.ApplicationHeader = decodeApplicationHeader(content)
	}
	if content, ok := blocks["3"]; ok {
		msg.UserHeader = decodeUserHeader(content)
	}
	if content, ok := blocks["4"]; ok {
		msg.TextBody = decodeTextBody(content)
	}
	if content, ok := blocks["5"]; ok {
		msg.Trailer = decodeTrailer(content)
	}

	return msg, nil
}

// scanBlocks extracts the top-level blocks keyed by their single digit
// identifier. A repeated identifier keeps the last occurrence.
func scanBlocks(message string) map[string]string {
	blocks := make(map[string]string)
	for _, match := range blockRegex.FindAllStringSubmatch(message, -1) {
		blocks[match[1]] = match[2]
	}
	return blocks
}

// scanTags extracts the tagged fields of block content in encounter
// order. A field value runs from its tag marker to the next marker or
// the end of the content, trimmed of surrounding whitespace; interior
// line breaks are preserved.
func scanTags(content string) []TagField {
	markers := tagRegex.FindAllStringSubmatchIndex(content, -1)
	fields := make([]TagField, 0, len(markers))

	for i, marker := range markers {
		tag := content[marker[2]:marker[3]]

		valueEnd := len(content)
		if i+1 < len(markers) {
			valueEnd = markers[i+1][0]
		}
		value := strings.TrimSpace(content[marker[1]:valueEnd])

		fields = append(fields, TagField{Tag: tag, Value: value})
	}

	return fields
}
