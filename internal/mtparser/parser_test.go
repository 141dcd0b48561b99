package mtparser

import (
	"strings"
	"sync"
	"testing"

	"golang-swiftmt-service/internal/models"
	"golang-swiftmt-service/pkg/errors"

	"github.com/shopspring/decimal"
)

// sampleMessage builds a complete five block payment message. Block 1
// and 2 content is composed from the positional fields with their
// filler bytes so the offsets stay visible.
func sampleMessage() string {
	block1 := "{1:" + "F" + "01" + "234567890" + "BANKBEBBAXXX" + "12" + "0001" + "34" + "000123" + "}"
	block2 := "{2:" + "O" + "103" + "153512" + "250709" + "N" + "BANKUS33AXXX123" + "}"
	block3 := "{3::108:MSGREF2025070900:121:174c7e62-8b4f-4e3a-9ef1-0c1c3a9d5f1e}"
	block4 := "{4:\n" +
		":20:REF20250709001\n" +
		":23B:CRED\n" +
		":32A:250709USD6400,50\n" +
		":33B:250709EUR5900,25\n" +
		":50K:/000002426114498\nJOHN DOE\n1 MAIN STREET\n" +
		":52A:BANKBEBB\n" +
		":59:/DE89370400440532013000\nJANE SMITH\n" +
		":70:INVOICE 4321\n" +
		":71A:SHA\n" +
		":71F:10,\n" +
		":71F:5,\n" +
		":72:/INS/CHQB" +
		"}"
	block5 := "{5::MAC:75D138E4:CHK:123456789ABC}"

	return block1 + block2 + block3 + block4 + block5
}

func TestParse_FullMessage(t *testing.T) {
	msg, err := Parse(sampleMessage())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.BlockCount() != 5 {
		t.Fatalf("expected 5 blocks, got %d", msg.BlockCount())
	}

	t.Run("basic header", func(t *testing.T) {
		h := msg.BasicHeader
		if h == nil {
			t.Fatal("expected basic header")
		}
		if h.ApplicationID != "F" {
			t.Errorf("ApplicationID = %q, want %q", h.ApplicationID, "F")
		}
		if h.ServiceID != "01" {
			t.Errorf("ServiceID = %q, want %q", h.ServiceID, "01")
		}
		if h.LogicalTerminal != "BANKBEBBAXXX" {
			t.Errorf("LogicalTerminal = %q, want %q", h.LogicalTerminal, "BANKBEBBAXXX")
		}
		if h.SessionNumber != "0001" {
			t.Errorf("SessionNumber = %q, want %q", h.SessionNumber, "0001")
		}
		if h.SequenceNumber != "000123" {
			t.Errorf("SequenceNumber = %q, want %q", h.SequenceNumber, "000123")
		}
	})

	t.Run("application header", func(t *testing.T) {
		h := msg.ApplicationHeader
		if h == nil {
			t.Fatal("expected application header")
		}
		if h.IOIdentifier != "O" {
			t.Errorf("IOIdentifier = %q, want %q", h.IOIdentifier, "O")
		}
		if h.MessageType != "103" {
			t.Errorf("MessageType = %q, want %q", h.MessageType, "103")
		}
		if h.InputTime != "153512" {
			t.Errorf("InputTime = %q, want %q", h.InputTime, "153512")
		}
		if h.InputDate != "250709" {
			t.Errorf("InputDate = %q, want %q", h.InputDate, "250709")
		}
		if h.BankPriority != "N" {
			t.Errorf("BankPriority = %q, want %q", h.BankPriority, "N")
		}
		if h.MessageInputReference != "BANKUS33AXXX123" {
			t.Errorf("MessageInputReference = %q, want %q", h.MessageInputReference, "BANKUS33AXXX123")
		}
	})

	t.Run("user header", func(t *testing.T) {
		h := msg.UserHeader
		if h == nil {
			t.Fatal("expected user header")
		}
		if h.MIR != "MSGREF2025070900" {
			t.Errorf("MIR = %q, want %q", h.MIR, "MSGREF2025070900")
		}
		if h.UniqueEndToEndReference != "174c7e62-8b4f-4e3a-9ef1-0c1c3a9d5f1e" {
			t.Errorf("UniqueEndToEndReference = %q", h.UniqueEndToEndReference)
		}
		if h.ServiceType != "" {
			t.Errorf("ServiceType = %q, want empty", h.ServiceType)
		}
	})

	t.Run("text body", func(t *testing.T) {
		b := msg.TextBody
		if b == nil {
			t.Fatal("expected text body")
		}
		if b.TransactionReference != "REF20250709001" {
			t.Errorf("TransactionReference = %q", b.TransactionReference)
		}
		if b.BankOperationCode != "CRED" {
			t.Errorf("BankOperationCode = %q, want %q", b.BankOperationCode, "CRED")
		}

		if b.ValueDateAmount == nil {
			t.Fatal("expected value date amount")
		}
		if b.ValueDateAmount.ValueDate == nil || b.ValueDateAmount.ValueDate.Format("2006-01-02") != "2025-07-09" {
			t.Errorf("ValueDateAmount.ValueDate = %v, want 2025-07-09", b.ValueDateAmount.ValueDate)
		}
		if b.ValueDateAmount.Currency != "USD" {
			t.Errorf("ValueDateAmount.Currency = %q, want USD", b.ValueDateAmount.Currency)
		}
		if !b.ValueDateAmount.AmountOrZero().Equal(decimal.RequireFromString("6400.5")) {
			t.Errorf("ValueDateAmount.Amount = %s, want 6400.5", b.ValueDateAmount.AmountOrZero())
		}

		if b.InstructedAmount == nil {
			t.Fatal("expected instructed amount")
		}
		if b.InstructedAmount.Currency != "EUR" {
			t.Errorf("InstructedAmount.Currency = %q, want EUR", b.InstructedAmount.Currency)
		}
		if !b.InstructedAmount.AmountOrZero().Equal(decimal.RequireFromString("5900.25")) {
			t.Errorf("InstructedAmount.Amount = %s, want 5900.25", b.InstructedAmount.AmountOrZero())
		}

		if b.OrderingCustomer == nil {
			t.Fatal("expected ordering customer")
		}
		if b.OrderingCustomer.Account != "000002426114498" {
			t.Errorf("OrderingCustomer.Account = %q", b.OrderingCustomer.Account)
		}
		if b.OrderingCustomer.Name != "JOHN DOE" {
			t.Errorf("OrderingCustomer.Name = %q, want JOHN DOE", b.OrderingCustomer.Name)
		}

		if b.OrderingInstitution != "BANKBEBB" {
			t.Errorf("OrderingInstitution = %q, want BANKBEBB", b.OrderingInstitution)
		}

		if b.Beneficiary == nil {
			t.Fatal("expected beneficiary")
		}
		if b.Beneficiary.Account != "DE89370400440532013000" {
			t.Errorf("Beneficiary.Account = %q", b.Beneficiary.Account)
		}
		if b.Beneficiary.Name != "JANE SMITH" {
			t.Errorf("Beneficiary.Name = %q, want JANE SMITH", b.Beneficiary.Name)
		}

		if b.PaymentDetails != "INVOICE 4321" {
			t.Errorf("PaymentDetails = %q, want INVOICE 4321", b.PaymentDetails)
		}
		if b.ChargeDetails != "SHA" {
			t.Errorf("ChargeDetails = %q, want SHA", b.ChargeDetails)
		}
		if b.SenderToReceiverInfo != "/INS/CHQB" {
			t.Errorf("SenderToReceiverInfo = %q, want /INS/CHQB", b.SenderToReceiverInfo)
		}

		wantCharges := []string{"10", "5"}
		if len(b.SenderCharges) != len(wantCharges) {
			t.Fatalf("SenderCharges length = %d, want %d", len(b.SenderCharges), len(wantCharges))
		}
		for i, want := range wantCharges {
			if !b.SenderCharges[i].Equal(decimal.RequireFromString(want)) {
				t.Errorf("SenderCharges[%d] = %s, want %s", i, b.SenderCharges[i], want)
			}
		}
	})

	t.Run("trailer", func(t *testing.T) {
		tr := msg.Trailer
		if tr == nil {
			t.Fatal("expected trailer")
		}
		if tr.MessageAuthentication != "75D138E4" {
			t.Errorf("MessageAuthentication = %q, want 75D138E4", tr.MessageAuthentication)
		}
		if tr.Checksum != "123456789ABC" {
			t.Errorf("Checksum = %q, want 123456789ABC", tr.Checksum)
		}
	})
}

func TestParse_EmptyMessage(t *testing.T) {
	for _, input := range []string{"", "   ", " \n\t "} {
		t.Run("input "+strings.ReplaceAll(input, "\n", "\\n"), func(t *testing.T) {
			msg, err := Parse(input)
			if err == nil {
				t.Fatal("expected error for empty input")
			}
			if msg != nil {
				t.Errorf("expected nil message, got %v", msg)
			}

			decoderErr, ok := errors.AsDecoderError(err)
			if !ok {
				t.Fatalf("expected a DecoderError, got %T", err)
			}
			if decoderErr.Category != errors.CategoryValidation {
				t.Errorf("category = %s, want %s", decoderErr.Category, errors.CategoryValidation)
			}
			if decoderErr.Code != errors.CodeEmptyMessage {
				t.Errorf("code = %s, want %s", decoderErr.Code, errors.CodeEmptyMessage)
			}
		})
	}
}

func TestParse_NoBlocks(t *testing.T) {
	msg, err := Parse("MT103 telegram with no delimiters at all")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.BasicHeader != nil || msg.ApplicationHeader != nil || msg.UserHeader != nil ||
		msg.TextBody != nil || msg.Trailer != nil {
		t.Errorf("expected all sub-records nil, got %s", msg)
	}
	if msg.BlockCount() != 0 {
		t.Errorf("BlockCount() = %d, want 0", msg.BlockCount())
	}
}

func TestParse_BasicHeaderRoundTrip(t *testing.T) {
	applicationID := "F"
	serviceID := "21"
	logicalTerminal := "MIDLGB22AXXX"
	sessionNumber := "0548"
	sequenceNumber := "096153"

	content := applicationID + serviceID + "ABCDEFGHI" + logicalTerminal + "XY" + sessionNumber + "ZW" + sequenceNumber
	msg, err := Parse("{1:" + content + "}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	h := msg.BasicHeader
	if h == nil {
		t.Fatal("expected basic header")
	}
	if h.ApplicationID != applicationID {
		t.Errorf("ApplicationID = %q, want %q", h.ApplicationID, applicationID)
	}
	if h.ServiceID != serviceID {
		t.Errorf("ServiceID = %q, want %q", h.ServiceID, serviceID)
	}
	if h.LogicalTerminal != logicalTerminal {
		t.Errorf("LogicalTerminal = %q, want %q", h.LogicalTerminal, logicalTerminal)
	}
	if h.SessionNumber != sessionNumber {
		t.Errorf("SessionNumber = %q, want %q", h.SessionNumber, sessionNumber)
	}
	if h.SequenceNumber != sequenceNumber {
		t.Errorf("SequenceNumber = %q, want %q", h.SequenceNumber, sequenceNumber)
	}
}

func TestParse_RepeatedBlocksLastWins(t *testing.T) {
	msg, err := Parse("{4::20:FIRST}{4::20:SECOND}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.TextBody == nil {
		t.Fatal("expected text body")
	}
	if msg.TextBody.TransactionReference != "SECOND" {
		t.Errorf("TransactionReference = %q, want SECOND", msg.TextBody.TransactionReference)
	}
}

func TestParse_RepeatedScalarTagLastWins(t *testing.T) {
	msg, err := Parse("{4:\n:20:FIRST\n:20:SECOND\n:23B:CRED}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.TextBody.TransactionReference != "SECOND" {
		t.Errorf("TransactionReference = %q, want SECOND", msg.TextBody.TransactionReference)
	}
}

func TestParse_SenderChargesAccumulate(t *testing.T) {
	t.Run("in order", func(t *testing.T) {
		msg, err := Parse("{4:\n:71F:10,\n:71F:5,\n}")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		charges := msg.TextBody.SenderCharges
		if len(charges) != 2 {
			t.Fatalf("expected 2 charges, got %d", len(charges))
		}
		if !charges[0].Equal(decimal.NewFromInt(10)) || !charges[1].Equal(decimal.NewFromInt(5)) {
			t.Errorf("charges = [%s, %s], want [10, 5]", charges[0], charges[1])
		}
	})

	t.Run("malformed occurrence dropped", func(t *testing.T) {
		msg, err := Parse("{4:\n:71F:banana\n:71F:5,\n}")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		charges := msg.TextBody.SenderCharges
		if len(charges) != 1 {
			t.Fatalf("expected 1 charge, got %d", len(charges))
		}
		if !charges[0].Equal(decimal.NewFromInt(5)) {
			t.Errorf("charge = %s, want 5", charges[0])
		}
	})
}

func TestParse_UnknownTagIgnored(t *testing.T) {
	msg, err := Parse("{4:\n:99:foo\n:20:REF001\n}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	b := msg.TextBody
	if b.TransactionReference != "REF001" {
		t.Errorf("TransactionReference = %q, want REF001", b.TransactionReference)
	}

	// The unknown tag must not leak into any other field.
	rest := &models.TextBody{TransactionReference: "REF001"}
	if !b.Equals(rest) {
		t.Errorf("unexpected fields set besides the reference: %+v", b)
	}
}

func TestParse_EmptyTagValueLeavesFieldUnset(t *testing.T) {
	msg, err := Parse("{4::32A:\n:50K:\n:20:REF001}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.TextBody.ValueDateAmount != nil {
		t.Errorf("expected nil ValueDateAmount, got %s", msg.TextBody.ValueDateAmount)
	}
	if msg.TextBody.OrderingCustomer != nil {
		t.Errorf("expected nil OrderingCustomer, got %s", msg.TextBody.OrderingCustomer)
	}
	if msg.TextBody.TransactionReference != "REF001" {
		t.Errorf("TransactionReference = %q, want REF001", msg.TextBody.TransactionReference)
	}
}

func TestParse_MalformedHeaderValuesStayRaw(t *testing.T) {
	// A malformed 32A date or amount degrades to unset without
	// touching the rest of the field.
	msg, err := Parse("{4::32A:999999USDxyz}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ca := msg.TextBody.ValueDateAmount
	if ca == nil {
		t.Fatal("expected a currency amount record")
	}
	if ca.ValueDate != nil {
		t.Errorf("expected unset value date, got %v", ca.ValueDate)
	}
	if ca.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", ca.Currency)
	}
	if ca.Amount.Valid {
		t.Errorf("expected unset amount, got %s", ca.Amount.Decimal)
	}
}

func TestParse_BlockTruncatedAtBrace(t *testing.T) {
	msg, err := Parse("{4::70:NOTE {WITH BRACE} MORE}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.TextBody == nil {
		t.Fatal("expected text body")
	}
	if msg.TextBody.PaymentDetails != "NOTE {WITH BRACE" {
		t.Errorf("PaymentDetails = %q, want %q", msg.TextBody.PaymentDetails, "NOTE {WITH BRACE")
	}
}

func TestParse_UnknownBlockIdentifierIgnored(t *testing.T) {
	msg, err := Parse("{6:ignored}{9:also ignored}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.BlockCount() != 0 {
		t.Errorf("BlockCount() = %d, want 0", msg.BlockCount())
	}
}

func TestParse_CRLFNormalized(t *testing.T) {
	unix, err := Parse("{4:\n:20:REF001\n:50K:/123\nJOHN DOE\n:23B:CRED\n}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	windows, err := Parse("{4:\r\n:20:REF001\r\n:50K:/123\r\nJOHN DOE\r\n:23B:CRED\r\n}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !unix.Equals(windows) {
		t.Errorf("CRLF input decoded differently:\nunix: %+v\nwindows: %+v", unix.TextBody, windows.TextBody)
	}
}

func TestParse_Deterministic(t *testing.T) {
	first, err := Parse(sampleMessage())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	second, err := Parse(sampleMessage())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !first.Equals(second) {
		t.Error("expected two parses of the same input to be structurally equal")
	}
}

func TestParse_ConcurrentUse(t *testing.T) {
	reference, err := Parse(sampleMessage())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				msg, err := Parse(sampleMessage())
				if err != nil {
					t.Errorf("Parse() error = %v", err)
					return
				}
				if !msg.Equals(reference) {
					t.Error("concurrent parse produced a different result")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestScanBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "single block",
			input:    "{1:F01BANK}",
			expected: map[string]string{"1": "F01BANK"},
		},
		{
			name:     "multiple blocks",
			input:    "{1:AAA}{2:BBB}{5:CCC}",
			expected: map[string]string{"1": "AAA", "2": "BBB", "5": "CCC"},
		},
		{
			name:     "repeated block keeps last",
			input:    "{1:FIRST}{1:SECOND}",
			expected: map[string]string{"1": "SECOND"},
		},
		{
			name:     "unknown digit still extracted",
			input:    "{7:SOMETHING}",
			expected: map[string]string{"7": "SOMETHING"},
		},
		{
			name:     "text between blocks ignored",
			input:    "prefix {1:AAA} middle {2:BBB} suffix",
			expected: map[string]string{"1": "AAA", "2": "BBB"},
		},
		{
			name:     "content spans lines",
			input:    "{4:\n:20:REF\n:23B:CRED\n}",
			expected: map[string]string{"4": "\n:20:REF\n:23B:CRED\n"},
		},
		{
			name:     "no blocks",
			input:    "plain text",
			expected: map[string]string{},
		},
		{
			name:     "two character identifier not a block",
			input:    "{12:AAA}",
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanBlocks(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("scanBlocks(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for id, content := range tt.expected {
				if got[id] != content {
					t.Errorf("block %s = %q, want %q", id, got[id], content)
				}
			}
		})
	}
}

func TestScanTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []TagField
	}{
		{
			name:  "two digit and letter suffixed tags",
			input: "\n:20:REF001\n:23B:CRED\n",
			expected: []TagField{
				{Tag: "20", Value: "REF001"},
				{Tag: "23B", Value: "CRED"},
			},
		},
		{
			name:  "three digit tags",
			input: ":108:MSGREF:121:abc-def",
			expected: []TagField{
				{Tag: "108", Value: "MSGREF"},
				{Tag: "121", Value: "abc-def"},
			},
		},
		{
			name:  "trailer letter tags",
			input: ":MAC:75D138E4:CHK:123456789ABC",
			expected: []TagField{
				{Tag: "MAC", Value: "75D138E4"},
				{Tag: "CHK", Value: "123456789ABC"},
			},
		},
		{
			name:  "multiline value keeps interior breaks",
			input: "\n:50K:/123\nJOHN DOE\nLONDON\n:70:NOTE\n",
			expected: []TagField{
				{Tag: "50K", Value: "/123\nJOHN DOE\nLONDON"},
				{Tag: "70", Value: "NOTE"},
			},
		},
		{
			name:  "terminator line retained in final value",
			input: "\n:23B:CRED\n-",
			expected: []TagField{
				{Tag: "23B", Value: "CRED\n-"},
			},
		},
		{
			name:     "four digits is not a tag",
			input:    ":1234:VALUE",
			expected: []TagField{},
		},
		{
			name:     "single digit is not a tag",
			input:    ":2:VALUE",
			expected: []TagField{},
		},
		{
			name:     "lowercase letters are not a tag",
			input:    ":mac:VALUE",
			expected: []TagField{},
		},
		{
			name:     "no tags",
			input:    "free text without markers",
			expected: []TagField{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanTags(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("scanTags(%q) = %v, want %v", tt.input, got, tt.expected)
			}
			for i, want := range tt.expected {
				if got[i] != want {
					t.Errorf("field %d = %+v, want %+v", i, got[i], want)
				}
			}
		})
	}
}

func TestDecodeBasicHeader(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected models.BasicHeader
	}{
		{
			name:     "empty content",
			content:  "",
			expected: models.BasicHeader{},
		},
		{
			name:     "below minimum length",
			content:  "F0",
			expected: models.BasicHeader{},
		},
		{
			name:    "application and service only",
			content: "F01",
			expected: models.BasicHeader{
				ApplicationID: "F",
				ServiceID:     "01",
			},
		},
		{
			name:    "partial logical terminal clamped",
			content: "F01ABCDEFGHIBANK",
			expected: models.BasicHeader{
				ApplicationID:   "F",
				ServiceID:       "01",
				LogicalTerminal: "BANK",
			},
		},
		{
			name:    "session guard passes but slice is out of range",
			content: "F01ABCDEFGHIBANKBEBB",
			expected: models.BasicHeader{
				ApplicationID:   "F",
				ServiceID:       "01",
				LogicalTerminal: "BANKBEBB",
			},
		},
		{
			name:    "partial session number",
			content: "F01ABCDEFGHIBANKBEBBAXXXXY05",
			expected: models.BasicHeader{
				ApplicationID:   "F",
				ServiceID:       "01",
				LogicalTerminal: "BANKBEBBAXXX",
				SessionNumber:   "05",
			},
		},
		{
			name:    "full content",
			content: "F01ABCDEFGHIBANKBEBBAXXXXY0548ZW096153",
			expected: models.BasicHeader{
				ApplicationID:   "F",
				ServiceID:       "01",
				LogicalTerminal: "BANKBEBBAXXX",
				SessionNumber:   "0548",
				SequenceNumber:  "096153",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeBasicHeader(tt.content)
			if !got.Equals(&tt.expected) {
				t.Errorf("decodeBasicHeader(%q) = %+v, want %+v", tt.content, got, tt.expected)
			}
		})
	}
}

func TestDecodeApplicationHeader(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected models.ApplicationHeader
	}{
		{
			name:     "empty content",
			content:  "",
			expected: models.ApplicationHeader{},
		},
		{
			name:     "single byte",
			content:  "O",
			expected: models.ApplicationHeader{},
		},
		{
			name:    "identifier with clamped message type",
			content: "O1",
			expected: models.ApplicationHeader{
				IOIdentifier: "O",
				MessageType:  "1",
			},
		},
		{
			name:    "identifier and type only",
			content: "O103",
			expected: models.ApplicationHeader{
				IOIdentifier: "O",
				MessageType:  "103",
			},
		},
		{
			name:    "through input time",
			content: "O103153512",
			expected: models.ApplicationHeader{
				IOIdentifier: "O",
				MessageType:  "103",
				InputTime:    "153512",
			},
		},
		{
			name:    "through bank priority",
			content: "O103153512250709N",
			expected: models.ApplicationHeader{
				IOIdentifier: "O",
				MessageType:  "103",
				InputTime:    "153512",
				InputDate:    "250709",
				BankPriority: "N",
			},
		},
		{
			name:    "full content",
			content: "O103153512250709NBANKUS33AXXX123",
			expected: models.ApplicationHeader{
				IOIdentifier:          "O",
				MessageType:           "103",
				InputTime:             "153512",
				InputDate:             "250709",
				BankPriority:          "N",
				MessageInputReference: "BANKUS33AXXX123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeApplicationHeader(tt.content)
			if !got.Equals(&tt.expected) {
				t.Errorf("decodeApplicationHeader(%q) = %+v, want %+v", tt.content, got, tt.expected)
			}
		})
	}
}

func TestParse_UserHeaderAndTrailerOnly(t *testing.T) {
	msg, err := Parse("{3::108:MIR001:111:001:121:e2e-ref}{5::MAC:ABCD:CHK:1234}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if msg.UserHeader == nil {
		t.Fatal("expected user header")
	}
	if msg.UserHeader.MIR != "MIR001" {
		t.Errorf("MIR = %q, want MIR001", msg.UserHeader.MIR)
	}
	if msg.UserHeader.ServiceType != "001" {
		t.Errorf("ServiceType = %q, want 001", msg.UserHeader.ServiceType)
	}
	if msg.UserHeader.UniqueEndToEndReference != "e2e-ref" {
		t.Errorf("UniqueEndToEndReference = %q, want e2e-ref", msg.UserHeader.UniqueEndToEndReference)
	}

	if msg.Trailer == nil {
		t.Fatal("expected trailer")
	}
	if msg.Trailer.MessageAuthentication != "ABCD" {
		t.Errorf("MessageAuthentication = %q, want ABCD", msg.Trailer.MessageAuthentication)
	}
	if msg.Trailer.Checksum != "1234" {
		t.Errorf("Checksum = %q, want 1234", msg.Trailer.Checksum)
	}

	if msg.BasicHeader != nil || msg.ApplicationHeader != nil || msg.TextBody != nil {
		t.Error("expected header and body blocks to stay nil")
	}
}
