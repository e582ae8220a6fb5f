package entity

// countryCodeLength is the length of an ISO 3166-1 alpha-3 identifier.
const countryCodeLength = 3

// ValidateCountryCode checks that code is a 3-letter identifier (A-Z only).
// Callers are expected to pass the value through NormalizeCountryCode first.
// Returns a ValidationError if the code is empty or malformed.
func ValidateCountryCode(code string) error {
	if code == "" {
		return &ValidationError{Field: "code", Message: "country code is required"}
	}

	if len(code) != countryCodeLength {
		return &ValidationError{Field: "code", Message: "country code must be 3 letters"}
	}

	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return &ValidationError{Field: "code", Message: "country code must contain only letters A-Z"}
		}
	}

	return nil
}
