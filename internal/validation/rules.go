package validation

import (
	"regexp"
	"strings"
	"unicode"

	"weconnect/internal/models"
)

const (
	// MsgPasswordRule is returned whenever a password fails the
	// strength requirements.
	MsgPasswordRule = "password must be at least 6 characters long with numbers, lowercase and uppercase letters"

	// MsgUsernameNumeric rejects usernames composed only of digits.
	MsgUsernameNumeric = "Username cannot contain only numbers"

	// MsgInvalidEmail is returned for malformed email addresses.
	MsgInvalidEmail = "Invalid Email"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]{2,4}$`)

// NormalizeUsername trims surrounding whitespace and lowercases, the
// canonical form used for storage and uniqueness checks.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// PasswordMeetsRules reports whether the password is at least 6
// characters and contains a lowercase letter, an uppercase letter and
// a digit.
func PasswordMeetsRules(password string) bool {
	if len(password) < 6 {
		return false
	}
	var hasLower, hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLower && hasUpper && hasDigit
}

// CheckPassword is the schema check for password fields.
func CheckPassword(field, value string, errs models.FieldErrors) {
	if !PasswordMeetsRules(value) {
		errs.Add(field, MsgPasswordRule)
	}
}

// CheckUsername is the schema check for username fields. Uniqueness is
// checked separately by the service layer.
func CheckUsername(field, value string, errs models.FieldErrors) {
	normalized := NormalizeUsername(value)
	if normalized == "" {
		errs.Add(field, MsgEmpty)
		return
	}
	if isNumeric(normalized) {
		errs.Add(field, MsgUsernameNumeric)
	}
}

// CheckEmail is the schema check for email fields.
func CheckEmail(field, value string, errs models.FieldErrors) {
	if !emailRegex.MatchString(value) {
		errs.Add(field, MsgInvalidEmail)
	}
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
