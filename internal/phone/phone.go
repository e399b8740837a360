// Package phone normalizes billing phone numbers so guest orders placed
// with the same number in different formats map to one identity.
package phone

import "strings"

// DefaultCountryCode is prepended to numbers written in national format.
const DefaultCountryCode = "+880"

// Normalize strips formatting from a raw phone number and rewrites it in
// international format. A leading zero marks national format and is replaced
// by the country code; a number with no leading '+' gets the country code
// prepended as-is. Empty input normalizes to empty.
func Normalize(raw, countryCode string) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "0") {
		return countryCode + cleaned[1:]
	}
	if !strings.HasPrefix(cleaned, "+") {
		return countryCode + cleaned
	}
	return cleaned
}
