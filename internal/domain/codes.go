package domain

import "strings"

// DeriveCustomerCode builds a customer code from a company name:
// uppercased, non-alphanumeric characters stripped, truncated to 10
// characters. The code is assigned at creation and never regenerated.
func DeriveCustomerCode(companyName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(companyName) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 10 {
			break
		}
	}
	return b.String()
}

// DerivePortCode builds a port code from a free-text port name:
// uppercased, letters only, truncated to 5 characters. Used when a port
// is created ad hoc from the route form.
func DerivePortCode(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
		if b.Len() == 5 {
			break
		}
	}
	return b.String()
}
