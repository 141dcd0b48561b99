package mtparser

import (
	"golang-swiftmt-service/internal/models"
)

// Block 1 content layout, by byte offset:
//
//	[0,1)   application identifier
//	[1,3)   service identifier
//	[3,12)  logical terminal prefix (not modeled)
//	[12,24) logical terminal
//	[26,30) session number
//	[32,38) sequence number
//
// Each field has a minimum-length guard taken from the wire format;
// content long enough to pass a guard but too short for the full slice
// yields the clamped substring.

// decodeBasicHeader decodes block 1 content by fixed offsets. Fields
// whose guard fails stay empty.
func decodeBasicHeader(content string) *models.BasicHeader {
	header := &models.BasicHeader{}

	if len(content) >= 3 {
		header.ApplicationID = sliceField(content, 0, 1)
		header.ServiceID = sliceField(content, 1, 3)
	}
	if len(content) > 12 {
		header.LogicalTerminal = sliceField(content, 12, 24)
	}
	if len(content) > 17 {
		header.SessionNumber = sliceField(content, 26, 30)
	}
	if len(content) > 23 {
		header.SequenceNumber = sliceField(content, 32, 38)
	}

	return header
}

// Block 2 content layout, by byte offset:
//
//	[0,1)   input/output identifier
//	[1,4)   message type
//	[4,10)  input time
//	[10,16) input date
//	[16,17) bank priority
//	[17,32) message input reference

// decodeApplicationHeader decodes block 2 content by fixed offsets.
// Fields whose guard fails stay empty.
func decodeApplicationHeader(content string) *models.ApplicationHeader {
	header := &models.ApplicationHeader{}

	if len(content) >= 2 {
		header.IOIdentifier = sliceField(content, 0, 1)
		header.MessageType = sliceField(content, 1, 4)
	}
	if len(content) > 9 {
		header.InputTime = sliceField(content, 4, 10)
	}
	if len(content) > 15 {
		header.InputDate = sliceField(content, 10, 16)
	}
	if len(content) > 16 {
		header.BankPriority = sliceField(content, 16, 17)
	}
	if len(content) > 31 {
		header.MessageInputReference = sliceField(content, 17, 32)
	}

	return header
}

// sliceField returns s[start:end] clamped to the length of s. A start
// at or past the end of s yields an empty string.
func sliceField(s string, start, end int) string {
	if start >= len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	return s[start:end]
}
