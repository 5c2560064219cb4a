package types

import (
	"fmt"
	"strings"
)

// Contact info kinds. The capitalized names are the canonical values stored
// in the contact_info_types lookup table; the lowercase tokens are the
// user-facing serialization used in templates and CLI input.
const (
	ContactKindPhone    = "Phone"
	ContactKindWhatsApp = "WhatsApp"
	ContactKindEmail    = "Email"
)

// ContactKindNames lists the lookup table seed values in seed order.
var ContactKindNames = []string{
	ContactKindPhone,
	ContactKindWhatsApp,
	ContactKindEmail,
}

// contactKindTokens maps lowercase serialization tokens to canonical names.
// Tokens are case-sensitive: only the lowercase form is recognized.
var contactKindTokens = map[string]string{
	"phone":    ContactKindPhone,
	"whatsapp": ContactKindWhatsApp,
	"email":    ContactKindEmail,
}

// contactKindByName is the reverse of contactKindTokens.
var contactKindByName = map[string]string{
	ContactKindPhone:    "phone",
	ContactKindWhatsApp: "whatsapp",
	ContactKindEmail:    "email",
}

// ContactInfo is a single piece of contact information attached to a person.
// Details always carries the value for the kind; the two travel together and
// must never diverge.
type ContactInfo struct {
	ID       int64  // Row id, 0 until persisted.
	PersonID int64  // Owning person id.
	Kind     string // One of the ContactKind constants.
	Details  string // The value: phone number, handle, or address.
}

// NewContactInfo builds a ContactInfo for the given person, kind, and value.
// Returns ErrUnknownContactKind if kind is not a canonical kind name.
func NewContactInfo(personID int64, kind, details string) (ContactInfo, error) {
	if _, ok := contactKindByName[kind]; !ok {
		return ContactInfo{}, fmt.Errorf("%w: %q", ErrUnknownContactKind, kind)
	}
	return ContactInfo{PersonID: personID, Kind: kind, Details: details}, nil
}

// ParseContactInfo parses a "kind:value" pair, e.g. "phone:555-1234".
// The value may itself contain colons (email URIs and the like); only the
// first colon separates kind from value.
func ParseContactInfo(raw string) (ContactInfo, error) {
	token, details, found := strings.Cut(raw, ":")
	if !found {
		return ContactInfo{}, fmt.Errorf("%w: %q", ErrUnknownContactKind, raw)
	}
	kind, ok := contactKindTokens[token]
	if !ok {
		return ContactInfo{}, fmt.Errorf("%w: %q", ErrUnknownContactKind, token)
	}
	return ContactInfo{Kind: kind, Details: details}, nil
}

// ParseContactList parses a comma-separated list of "kind:value" pairs.
// An empty input yields an empty list.
func ParseContactList(raw string) ([]ContactInfo, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var infos []ContactInfo
	for _, part := range strings.Split(raw, ",") {
		ci, err := ParseContactInfo(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		infos = append(infos, ci)
	}
	return infos, nil
}

// String renders the contact info as its "kind:value" serialization.
func (c ContactInfo) String() string {
	return contactKindByName[c.Kind] + ":" + c.Details
}

// FormatContactList renders contact infos as a comma-separated list of
// "kind:value" pairs, preserving order.
func FormatContactList(infos []ContactInfo) string {
	parts := make([]string, len(infos))
	for i, ci := range infos {
		parts[i] = ci.String()
	}
	return strings.Join(parts, ",")
}
