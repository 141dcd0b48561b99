package models

import (
	"fmt"
	"strings"
)

// PartyInfo represents a transaction party as carried by fields 50K and
// 59: an optional slash-prefixed account line followed by free-form
// name and address lines. Only the account and the first name line are
// retained. An empty Account means no account line was present; the
// account-less form and an account line of "/" are not distinguishable.
type PartyInfo struct {
	Account string `json:"account"`
	Name    string `json:"name"`
}

// NewPartyInfo creates a new PartyInfo instance
func NewPartyInfo(account, name string) *PartyInfo {
	return &PartyInfo{
		Account: account,
		Name:    name,
	}
}

// ParsePartyInfo decodes a raw party field. When the field starts with
// "/" the account runs to the first space or line break; the name is
// the first line of whatever text remains. Only an empty or
// whitespace-only input is an error.
func ParsePartyInfo(raw string) (*PartyInfo, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("party information field cannot be empty")
	}

	raw = strings.ReplaceAll(raw, "\r\n", "\n")

	party := &PartyInfo{}
	text := raw

	if strings.HasPrefix(raw, "/") {
		rest := raw[1:]
		end := strings.IndexAny(rest, " \n")
		if end == -1 {
			party.Account = rest
			return party, nil
		}
		party.Account = rest[:end]
		text = rest[end+1:]
	}

	party.Name = firstLine(text)
	return party, nil
}

// firstLine returns the first line of text, trimmed of surrounding
// whitespace
func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// HasAccount returns true if an account line was present
func (p *PartyInfo) HasAccount() bool {
	return p != nil && p.Account != ""
}

// String returns a string representation of the PartyInfo
func (p *PartyInfo) String() string {
	return fmt.Sprintf("PartyInfo{Account: %s, Name: %s}", p.Account, p.Name)
}

// Equals compares two PartyInfo instances for equality. Both being nil
// counts as equal.
func (p *PartyInfo) Equals(other *PartyInfo) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.Account == other.Account && p.Name == other.Name
}
