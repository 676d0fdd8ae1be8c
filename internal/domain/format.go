package domain

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholders substituted for missing backend fields.
const (
	NoName    = "(No Name)"
	NoContact = "(No Contact)"
	NoPrice   = "Price not available"
)

// countryCode is the Cambodian dialing prefix the CRM stores some numbers with.
const countryCode = "855"

var pricePrinter = message.NewPrinter(language.English)

// FullName joins first and last name with a single space, trimming each
// part. Both parts empty yields the NoName placeholder.
func FullName(first, last string) string {
	parts := make([]string, 0, 2)
	if f := strings.TrimSpace(first); f != "" {
		parts = append(parts, f)
	}
	if l := strings.TrimSpace(last); l != "" {
		parts = append(parts, l)
	}
	if len(parts) == 0 {
		return NoName
	}
	return strings.Join(parts, " ")
}

// FormatPhone renders a stored phone number for display.
//
// Digits are extracted first. Numbers with at least nine digits are
// grouped 3/3/rest behind a "(+855)" prefix; a leading 855 country code
// is treated as the prefix rather than part of the local number. Anything
// shorter passes through unchanged.
func FormatPhone(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	ds := digits.String()
	if len(ds) < 9 {
		return raw
	}

	local := ds
	if strings.HasPrefix(ds, countryCode) && len(ds) > len(countryCode) {
		local = ds[len(countryCode):]
	}
	// Grouping needs at least 3/3/1 local digits.
	if len(local) < 7 {
		return raw
	}

	return "(+" + countryCode + ") " + local[:3] + "-" + local[3:6] + "-" + local[6:]
}

// FormatPrice renders a price for display: "$" plus a thousands-grouped
// amount, or the NoPrice placeholder when the backend sent nothing.
func FormatPrice(price float64) string {
	if price == 0 {
		return NoPrice
	}
	if price == math.Trunc(price) {
		return pricePrinter.Sprintf("$%d", int64(price))
	}
	return pricePrinter.Sprintf("$%.2f", price)
}
