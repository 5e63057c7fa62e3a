package ocr

import (
	"regexp"
	"strings"
)

var (
	pincodeRe = regexp.MustCompile(`\b\d{6}\b`)
	mobileRe  = regexp.MustCompile(`\b\d{10}\b`)
)

// ParsedAddress is the best-effort extraction from recognized text.
// Address always carries the raw text verbatim; a missing pincode, mobile
// or name is an empty string, never an error. No plausibility check is
// made beyond the digit shapes.
type ParsedAddress struct {
	Name    string `json:"name,omitempty"`
	Mobile  string `json:"mobile"`
	Pincode string `json:"pincode"`
	Address string `json:"address"`
}

// ParseAddress pulls a 6-digit pincode and a 10-digit mobile out of raw
// OCR text, first match wins for each.
func ParseAddress(text string) ParsedAddress {
	return ParsedAddress{
		Mobile:  mobileRe.FindString(text),
		Pincode: pincodeRe.FindString(text),
		Address: text,
	}
}

// ParseAddressWithName additionally guesses a party name from the first
// non-empty line of the text.
func ParseAddressWithName(text string) ParsedAddress {
	parsed := ParseAddress(text)
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parsed.Name = trimmed
			break
		}
	}
	return parsed
}
