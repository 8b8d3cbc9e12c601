package impl

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// emailPattern accepts anything of the form local@domain.tld without
// whitespace. Deliverability is the mail provider's problem, not ours.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSymbols = "!@#$%^&*()_+-=[]{};':\"\\|,.<>/?~" + "`"

const minNameLength = 2
const minPasswordLength = 8

// sanitizeText trims surrounding whitespace and strips angle brackets so
// stored values cannot smuggle markup into rendered pages.
func sanitizeText(value string) string {
	value = strings.TrimSpace(value)

	return strings.NewReplacer("<", "", ">", "").Replace(value)
}

func normalizeEmail(email string) string {
	return strings.ToLower(sanitizeText(email))
}

// registrationViolations collects every violated rule so the customer can
// fix the whole form in one round trip.
func registrationViolations(name, email, password string) []string {
	var violations []string

	if utf8.RuneCountInString(name) < minNameLength {
		violations = append(violations, "Name must be at least 2 characters")
	}
	if !emailPattern.MatchString(email) {
		violations = append(violations, "Please enter a valid email address")
	}
	violations = append(violations, passwordViolations(password)...)

	return violations
}

func passwordViolations(password string) []string {
	var violations []string

	if utf8.RuneCountInString(password) < minPasswordLength {
		violations = append(violations, "Password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	if !hasUpper {
		violations = append(violations, "Password must contain an uppercase letter")
	}
	if !hasLower {
		violations = append(violations, "Password must contain a lowercase letter")
	}
	if !hasDigit {
		violations = append(violations, "Password must contain a number")
	}
	if !hasSymbol {
		violations = append(violations, "Password must contain a special character")
	}

	return violations
}

// loginViolations only checks shape. Whether the credentials are correct
// is decided later and reported with a single uniform message.
func loginViolations(email, password string) []string {
	var violations []string

	if !emailPattern.MatchString(email) {
		violations = append(violations, "Please enter a valid email address")
	}
	if password == "" {
		violations = append(violations, "Password is required")
	}

	return violations
}

func violationMessage(violations []string) string {
	return strings.Join(violations, "; ")
}
