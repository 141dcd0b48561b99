package mtparser

import (
	"golang-swiftmt-service/internal/models"
)

// Tag dispatch tables for the tagged blocks. Each table maps a field
// tag to the setter that applies its value to the sub-record under
// construction. Tags without a table entry are skipped. Scalar setters
// overwrite on repeat; 71F appends each parseable occurrence.

var userHeaderFields = map[string]func(*models.UserHeader, string){
	"108": func(h *models.UserHeader, value string) { h.MIR = value },
	"111": func(h *models.UserHeader, value string) { h.ServiceType = value },
	"121": func(h *models.UserHeader, value string) { h.UniqueEndToEndReference = value },
}

var textBodyFields = map[string]func(*models.TextBody, string){
	"20":  func(b *models.TextBody, value string) { b.TransactionReference = value },
	"23B": func(b *models.TextBody, value string) { b.BankOperationCode = value },
	"32A": func(b *models.TextBody, value string) {
		if amount, err := models.ParseCurrencyAmount(value); err == nil {
			b.ValueDateAmount = amount
		}
	},
	"33B": func(b *models.TextBody, value string) {
		if amount, err := models.ParseCurrencyAmount(value); err == nil {
			b.InstructedAmount = amount
		}
	},
	"50K": func(b *models.TextBody, value string) {
		if party, err := models.ParsePartyInfo(value); err == nil {
			b.OrderingCustomer = party
		}
	},
	"52A": func(b *models.TextBody, value string) { b.OrderingInstitution = value },
	"59": func(b *models.TextBody, value string) {
		if party, err := models.ParsePartyInfo(value); err == nil {
			b.Beneficiary = party
		}
	},
	"70":  func(b *models.TextBody, value string) { b.PaymentDetails = value },
	"71A": func(b *models.TextBody, value string) { b.ChargeDetails = value },
	"71F": func(b *models.TextBody, value string) {
		if charge, err := models.ParseAmount(value); err == nil {
			b.SenderCharges = append(b.SenderCharges, charge)
		}
	},
	"72": func(b *models.TextBody, value string) { b.SenderToReceiverInfo = value },
}

var trailerFields = map[string]func(*models.Trailer, string){
	"MAC": func(t *models.Trailer, value string) { t.MessageAuthentication = value },
	"CHK": func(t *models.Trailer, value string) { t.Checksum = value },
}

// decodeUserHeader decodes block 3 content
func decodeUserHeader(content string) *models.UserHeader {
	header := &models.UserHeader{}
	for _, field := range scanTags(content) {
		if apply, ok := userHeaderFields[field.Tag]; ok {
			apply(header, field.Value)
		}
	}
	return header
}

// decodeTextBody decodes block 4 content
func decodeTextBody(content string) *models.TextBody {
	body := &models.TextBody{}
	for _, field := range scanTags(content) {
		if apply, ok := textBodyFields[field.Tag]; ok {
			apply(body, field.Value)
		}
	}
	return body
}

// decodeTrailer decodes block 5 content
func decodeTrailer(content string) *models.Trailer {
	trailer := &models.Trailer{}
	for _, field := range scanTags(content) {
		if apply, ok := trailerFields[field.Tag]; ok {
			apply(trailer, field.Value)
		}
	}
	return trailer
}
