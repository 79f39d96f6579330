package utils

import "strings"

// AccountNumberWidth is the canonical width of an account identifier as it
// appears in linkage graphs and analysis artifacts.
const AccountNumberWidth = 16

// PadAccountNumber left-pads a numeric account identifier with zeros to the
// canonical width. Identifiers already at or beyond the width, and synthetic
// entity ids containing non-digits, are returned unchanged.
func PadAccountNumber(id string) string {
	if len(id) >= AccountNumberWidth {
		return id
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return id
		}
	}
	return strings.Repeat("0", AccountNumberWidth-len(id)) + id
}
