// Package models defines the decoded representation of SWIFT MT
// messages: the Message aggregate, one sub-record per message block and
// the value objects shared by the tagged fields.
package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Message is the decoded form of a SWIFT MT message. Each pointer is
// nil when the corresponding block was absent from the input; a block
// that was present but malformed decodes to a sub-record with default
// field values instead.
type Message struct {
	BasicHeader       *BasicHeader       `json:"basic_header,omitempty"`
	ApplicationHeader *ApplicationHeader `json:"application_header,omitempty"`
	UserHeader        *UserHeader        `json:"user_header,omitempty"`
	TextBody          *TextBody          `json:"text_body,omitempty"`
	Trailer           *Trailer           `json:"trailer,omitempty"`
}

// BasicHeader carries the fixed-position fields of block 1
type BasicHeader struct {
	ApplicationID   string `json:"application_id"`
	ServiceID       string `json:"service_id"`
	LogicalTerminal string `json:"logical_terminal"`
	SessionNumber   string `json:"session_number"`
	SequenceNumber  string `json:"sequence_number"`
}

// ApplicationHeader carries the fixed-position fields of block 2
type ApplicationHeader struct {
	IOIdentifier          string `json:"io_identifier"`
	MessageType           string `json:"message_type"`
	InputTime             string `json:"input_time"`
	InputDate             string `json:"input_date"`
	BankPriority          string `json:"bank_priority"`
	MessageInputReference string `json:"message_input_reference"`
}

// UserHeader carries the tagged fields of block 3
type UserHeader struct {
	MIR                     string `json:"mir"`
	ServiceType             string `json:"service_type"`
	UniqueEndToEndReference string `json:"unique_end_to_end_reference"`
}

// TextBody carries the tagged fields of block 4, the message payload
type TextBody struct {
	TransactionReference string            `json:"transaction_reference"`
	BankOperationCode    string            `json:"bank_operation_code"`
	ValueDateAmount      *CurrencyAmount   `json:"value_date_amount,omitempty"`
	InstructedAmount     *CurrencyAmount   `json:"instructed_amount,omitempty"`
	OrderingCustomer     *PartyInfo        `json:"ordering_customer,omitempty"`
	OrderingInstitution  string            `json:"ordering_institution"`
	Beneficiary          *PartyInfo        `json:"beneficiary,omitempty"`
	PaymentDetails       string            `json:"payment_details"`
	ChargeDetails        string            `json:"charge_details"`
	SenderCharges        []decimal.Decimal `json:"sender_charges,omitempty"`
	SenderToReceiverInfo string            `json:"sender_to_receiver_info"`
}

// Trailer carries the tagged fields of block 5
type Trailer struct {
	MessageAuthentication string `json:"message_authentication"`
	Checksum              string `json:"checksum"`
}

// MessageType returns the message type from the application header, or
// an empty string when the header is absent
func (m *Message) MessageType() string {
	if m == nil || m.ApplicationHeader == nil {
		return ""
	}
	return m.ApplicationHeader.MessageType
}

// TransactionReference returns field 20 from the text body, or an empty
// string when the body is absent
func (m *Message) TransactionReference() string {
	if m == nil || m.TextBody == nil {
		return ""
	}
	return m.TextBody.TransactionReference
}

// BlockCount returns the number of blocks present in the message
func (m *Message) BlockCount() int {
	if m == nil {
		return 0
	}

	count := 0
	if m.BasicHeader != nil {
		count++
	}
	if m.ApplicationHeader != nil {
		count++
	}
	if m.UserHeader != nil {
		count++
	}
	if m.TextBody != nil {
		count++
	}
	if m.Trailer != nil {
		count++
	}
	return count
}

// String returns a string representation of the Message
func (m *Message) String() string {
	msgType := m.MessageType()
	if msgType == "" {
		msgType = "-"
	}
	return fmt.Sprintf("Message{Type: %s, Blocks: %d}", msgType, m.BlockCount())
}

// Equals compares two Message instances for structural equality
func (m *Message) Equals(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}

	return m.BasicHeader.Equals(other.BasicHeader) &&
		m.ApplicationHeader.Equals(other.ApplicationHeader) &&
		m.UserHeader.Equals(other.UserHeader) &&
		m.TextBody.Equals(other.TextBody) &&
		m.Trailer.Equals(other.Trailer)
}

// Equals compares two BasicHeader instances for equality. Both being
// nil counts as equal.
func (h *BasicHeader) Equals(other *BasicHeader) bool {
	if h == nil || other == nil {
		return h == other
	}

	return h.ApplicationID == other.ApplicationID &&
		h.ServiceID == other.ServiceID &&
		h.LogicalTerminal == other.LogicalTerminal &&
		h.SessionNumber == other.SessionNumber &&
		h.SequenceNumber == other.SequenceNumber
}

// Equals compares two ApplicationHeader instances for equality. Both
// being nil counts as equal.
func (h *ApplicationHeader) Equals(other *ApplicationHeader) bool {
	if h == nil || other == nil {
		return h == other
	}

	return h.IOIdentifier == other.IOIdentifier &&
		h.MessageType == other.MessageType &&
		h.InputTime == other.InputTime &&
		h.InputDate == other.InputDate &&
		h.BankPriority == other.BankPriority &&
		h.MessageInputReference == other.MessageInputReference
}

// Equals compares two UserHeader instances for equality. Both being nil
// counts as equal.
func (h *UserHeader) Equals(other *UserHeader) bool {
	if h == nil || other == nil {
		return h == other
	}

	return h.MIR == other.MIR &&
		h.ServiceType == other.ServiceType &&
		h.UniqueEndToEndReference == other.UniqueEndToEndReference
}

// Equals compares two TextBody instances for equality. Both being nil
// counts as equal.
func (b *TextBody) Equals(other *TextBody) bool {
	if b == nil || other == nil {
		return b == other
	}

	if len(b.SenderCharges) != len(other.SenderCharges) {
		return false
	}
	for i := range b.SenderCharges {
		if !b.SenderCharges[i].Equal(other.SenderCharges[i]) {
			return false
		}
	}

	return b.TransactionReference == other.TransactionReference &&
		b.BankOperationCode == other.BankOperationCode &&
		b.ValueDateAmount.Equals(other.ValueDateAmount) &&
		b.InstructedAmount.Equals(other.InstructedAmount) &&
		b.OrderingCustomer.Equals(other.OrderingCustomer) &&
		b.OrderingInstitution == other.OrderingInstitution &&
		b.Beneficiary.Equals(other.Beneficiary) &&
		b.PaymentDetails == other.PaymentDetails &&
		b.ChargeDetails == other.ChargeDetails &&
		b.SenderToReceiverInfo == other.SenderToReceiverInfo
}

// Equals compares two Trailer instances for equality. Both being nil
// counts as equal.
func (t *Trailer) Equals(other *Trailer) bool {
	if t == nil || other == nil {
		return t == other
	}

	return t.MessageAuthentication == other.MessageAuthentication &&
		t.Checksum == other.Checksum
}

// TotalSenderCharges sums all repetitions of field 71F
func (b *TextBody) TotalSenderCharges() decimal.Decimal {
	total := decimal.Zero
	if b == nil {
		return total
	}
	for _, charge := range b.SenderCharges {
		total = total.Add(charge)
	}
	return total
}
