package validation

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/pkg/constants"
)

// ValidateCustomerName checks the customer's full name: trimmed length
// between 3 and 100 characters, containing at least one letter. Returns the
// trimmed name.
func ValidateCustomerName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if len([]rune(trimmed)) < constants.MinCustomerNameLength {
		return "", &engine.InvalidInputError{
			Field:  "fullName",
			Reason: "must have at least 3 characters",
		}
	}
	if len([]rune(trimmed)) > constants.MaxCustomerNameLength {
		return "", &engine.InvalidInputError{
			Field:  "fullName",
			Reason: "must not exceed 100 characters",
		}
	}
	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return "", &engine.InvalidInputError{
			Field:  "fullName",
			Reason: "must contain at least one letter",
		}
	}
	return trimmed, nil
}

// ValidateCustomerAddress checks the customer's address: trimmed length of at
// least 10 characters. Returns the trimmed address.
func ValidateCustomerAddress(address string) (string, error) {
	trimmed := strings.TrimSpace(address)
	if len([]rune(trimmed)) < constants.MinCustomerAddressLength {
		return "", &engine.InvalidInputError{
			Field:  "address",
			Reason: "must have at least 10 characters",
		}
	}
	return trimmed, nil
}

// ParseInvoiceAmount parses a monetary string as customers type it: an
// optional "R$" prefix, spaces, thousands dots and a comma decimal separator
// are all tolerated ("R$ 1.234,56" and "439.85" both parse). The value must
// be positive and within the accepted invoice range.
func ParseInvoiceAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer("R$", "", "r$", "", " ", "", "\t", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, &engine.InvalidInputError{
			Field:  "invoiceAmount",
			Reason: "must not be empty",
		}
	}
	if strings.Contains(cleaned, ",") {
		// Brazilian notation: dots separate thousands, the comma separates
		// decimals.
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	}

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &engine.InvalidInputError{
			Field:  "invoiceAmount",
			Reason: "must be a valid number",
		}
	}
	return ValidateInvoiceAmount(amount)
}

// ValidateInvoiceAmount checks that an invoice value is positive and within
// the accepted range, returning it unchanged.
func ValidateInvoiceAmount(amount float64) (float64, error) {
	if amount <= 0 {
		return 0, &engine.InvalidInputError{
			Field:  "invoiceAmount",
			Reason: "must be positive",
		}
	}
	if amount > constants.MaxInvoiceAmount {
		return 0, &engine.InvalidInputError{
			Field:  "invoiceAmount",
			Reason: "exceeds the accepted maximum",
		}
	}
	return amount, nil
}
