package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyAmount represents a value date, currency and amount triplet as
// carried by fields 32A and 33B. Every sub-field is optional: a nil
// ValueDate, empty Currency or invalid Amount means the corresponding
// portion of the raw field was missing or malformed.
type CurrencyAmount struct {
	ValueDate *time.Time          `json:"value_date,omitempty"`
	Currency  string              `json:"currency"`
	Amount    decimal.NullDecimal `json:"amount"`
}

// NewCurrencyAmount creates a CurrencyAmount with all sub-fields set
func NewCurrencyAmount(valueDate time.Time, currency string, amount decimal.Decimal) *CurrencyAmount {
	return &CurrencyAmount{
		ValueDate: &valueDate,
		Currency:  currency,
		Amount:    decimal.NullDecimal{Decimal: amount, Valid: true},
	}
}

// ParseCurrencyAmount decodes a raw currency amount field of the form
// YYMMDD + currency code + amount (e.g. "250709USD6400,50"). Sub-fields
// that are missing or malformed are left unset; only an empty or
// whitespace-only input is an error.
func ParseCurrencyAmount(raw string) (*CurrencyAmount, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("currency amount field cannot be empty")
	}

	ca := &CurrencyAmount{}

	if len(raw) >= 6 {
		if date, err := ParseValueDate(raw[:6]); err == nil {
			ca.ValueDate = &date
		}
	}

	if len(raw) >= 9 {
		ca.Currency = raw[6:9]

		if amount, err := ParseAmount(raw[9:]); err == nil {
			ca.Amount = decimal.NullDecimal{Decimal: amount, Valid: true}
		}
	}

	return ca, nil
}

// ParseValueDate parses a six digit YYMMDD date (e.g. "250709")
func ParseValueDate(s string) (time.Time, error) {
	date, err := time.Parse("060102", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid value date '%s': %w", s, err)
	}
	return date, nil
}

// ParseAmount parses an amount string using the comma as decimal
// separator, the convention used on the wire ("6400,50" is 6400.50).
// A plain dot separator is accepted as well. A trailing separator with
// no fraction digits is dropped, so "6400," parses to 6400.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string cannot be empty")
	}

	if strings.Count(s, ",") > 1 {
		return decimal.Zero, fmt.Errorf("invalid amount format '%s': multiple decimal separators", s)
	}

	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return decimal.Zero, fmt.Errorf("amount string contains no digits")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount format '%s': %w", s, err)
	}

	return d, nil
}

// AmountOrZero returns the amount, or zero when it is unset
func (ca *CurrencyAmount) AmountOrZero() decimal.Decimal {
	if ca == nil || !ca.Amount.Valid {
		return decimal.Zero
	}
	return ca.Amount.Decimal
}

// String returns a string representation of the CurrencyAmount
func (ca *CurrencyAmount) String() string {
	date := "-"
	if ca.ValueDate != nil {
		date = ca.ValueDate.Format("2006-01-02")
	}

	amount := "-"
	if ca.Amount.Valid {
		amount = ca.Amount.Decimal.String()
	}

	return fmt.Sprintf("CurrencyAmount{Date: %s, Currency: %s, Amount: %s}", date, ca.Currency, amount)
}

// Equals compares two CurrencyAmount instances for equality. Both being
// nil counts as equal.
func (ca *CurrencyAmount) Equals(other *CurrencyAmount) bool {
	if ca == nil || other == nil {
		return ca == other
	}

	if (ca.ValueDate == nil) != (other.ValueDate == nil) {
		return false
	}
	if ca.ValueDate != nil && !ca.ValueDate.Equal(*other.ValueDate) {
		return false
	}

	if ca.Amount.Valid != other.Amount.Valid {
		return false
	}
	if ca.Amount.Valid && !ca.Amount.Decimal.Equal(other.Amount.Decimal) {
		return false
	}

	return ca.Currency == other.Currency
}

// MarshalJSON implements custom JSON marshaling for CurrencyAmount
func (ca *CurrencyAmount) MarshalJSON() ([]byte, error) {
	type Alias CurrencyAmount
	aux := &struct {
		ValueDate *string `json:"value_date,omitempty"`
		Amount    *string `json:"amount,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(ca),
	}

	if ca.ValueDate != nil {
		date := ca.ValueDate.Format("2006-01-02")
		aux.ValueDate = &date
	}
	if ca.Amount.Valid {
		amount := ca.Amount.Decimal.String()
		aux.Amount = &amount
	}

	return json.Marshal(aux)
}
