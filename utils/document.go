package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// NormalizeTaxID strips formatting from a CPF ("000.000.000-00" -> digits)
// for storage and de-duplication lookups.
func NormalizeTaxID(taxID string) string {
	return nonDigits.ReplaceAllString(taxID, "")
}

// ValidateTaxID checks a Brazilian CPF: 11 digits, not all repeated, valid
// check digits.
func ValidateTaxID(taxID string) bool {
	cleaned := NormalizeTaxID(taxID)
	if len(cleaned) != 11 {
		return false
	}
	if strings.Count(cleaned, string(cleaned[0])) == 11 {
		return false
	}

	digit := func(upTo int) int {
		sum := 0
		for i := 0; i < upTo; i++ {
			sum += int(cleaned[i]-'0') * (upTo + 1 - i)
		}
		rest := (sum * 10) % 11
		if rest == 10 {
			rest = 0
		}
		return rest
	}

	return digit(9) == int(cleaned[9]-'0') && digit(10) == int(cleaned[10]-'0')
}

// NormalizeZipCode strips formatting from a CEP ("00000-000" -> digits).
func NormalizeZipCode(zipCode string) string {
	return nonDigits.ReplaceAllString(zipCode, "")
}

// ValidateZipCode checks for the 8-digit CEP shape.
func ValidateZipCode(zipCode string) bool {
	return len(NormalizeZipCode(zipCode)) == 8
}

// FormatPhoneNumber normalizes a Brazilian phone number for storage:
// digits only, leading zeros trimmed, country code 55 prefixed when absent.
func FormatPhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")
	if len(digits) > 0 && !strings.HasPrefix(digits, "55") {
		digits = strings.TrimLeft(digits, "0")
		digits = "55" + digits
	}
	return digits
}
