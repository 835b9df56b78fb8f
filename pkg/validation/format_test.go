package validation

import "testing"

func TestValidateOutputFormat(t *testing.T) {
	for _, format := range []string{"pretty", "csv", "pdf", "xlsx"} {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("ValidateOutputFormat(%q) error = %v", format, err)
		}
	}
	for _, format := range []string{"", "json", "PDF", "excel"} {
		if err := ValidateOutputFormat(format); err == nil {
			t.Errorf("ValidateOutputFormat(%q) expected error", format)
		}
	}
}
