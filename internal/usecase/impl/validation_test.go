package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Jane Doe", sanitizeText("  Jane Doe  "))
	assert.Equal(t, "scriptalert(1)/script", sanitizeText("<script>alert(1)</script>"))
	assert.Equal(t, "", sanitizeText("   "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@glow.example", normalizeEmail("  JANE@Glow.Example "))
}

func TestEmailPattern(t *testing.T) {
	valid := []string{"a@b.co", "jane.doe+tag@shop.example.com"}
	for _, email := range valid {
		assert.True(t, emailPattern.MatchString(email), email)
	}

	invalid := []string{"", "plain", "no@tld", "spaces in@x.com", "@x.com", "a@.com "}
	for _, email := range invalid {
		assert.False(t, emailPattern.MatchString(email), email)
	}
}

func TestPasswordViolations(t *testing.T) {
	assert.Empty(t, passwordViolations("Str0ng!pass"))

	cases := []struct {
		password string
		want     string
	}{
		{"Sh0rt!", "Password must be at least 8 characters"},
		{"str0ng!pass", "Password must contain an uppercase letter"},
		{"STR0NG!PASS", "Password must contain a lowercase letter"},
		{"Strong!pass", "Password must contain a number"},
		{"Str0ngpass", "Password must contain a special character"},
	}
	for _, tc := range cases {
		assert.Contains(t, passwordViolations(tc.password), tc.want, tc.password)
	}

	// A hopeless password reports every rule at once.
	assert.Len(t, passwordViolations(""), 5)
}

func TestRegistrationViolations(t *testing.T) {
	assert.Empty(t, registrationViolations("Jane", "jane@glow.example", "Str0ng!pass"))

	violations := registrationViolations("J", "bad", "Str0ng!pass")
	assert.Contains(t, violations, "Name must be at least 2 characters")
	assert.Contains(t, violations, "Please enter a valid email address")
}

func TestLoginViolations(t *testing.T) {
	assert.Empty(t, loginViolations("jane@glow.example", "whatever"))

	violations := loginViolations("bad", "")
	assert.Contains(t, violations, "Please enter a valid email address")
	assert.Contains(t, violations, "Password is required")
}

func TestViolationMessage(t *testing.T) {
	assert.Equal(t, "a; b", violationMessage([]string{"a", "b"}))
}
