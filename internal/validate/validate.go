package validate

import (
	"regexp"
	"unicode/utf8"
)

// MaxTextLength is the maximum accepted comment length, in characters.
const MaxTextLength = 1000

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error codes for failed submissions.
const (
	CodeMissingField = "missing_field"
	CodeInvalidEmail = "invalid_email"
	CodeTextTooLong  = "text_too_long"
)

// Error is a rejected user submission. Message is safe to show to the end user.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Comment checks a full comment submission. It returns nil when the
// submission is acceptable. The same checks apply regardless of which
// store backend the server runs with.
func Comment(name, email, text string) error {
	if name == "" || email == "" || text == "" {
		return &Error{Code: CodeMissingField, Message: "All fields are required"}
	}
	if !emailRegex.MatchString(email) {
		return &Error{Code: CodeInvalidEmail, Message: "Invalid email"}
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return &Error{Code: CodeTextTooLong, Message: "Comment cannot exceed 1000 characters"}
	}
	return nil
}

// Text checks a comment edit, where only the text can change.
func Text(text string) error {
	if text == "" {
		return &Error{Code: CodeMissingField, Message: "Comment cannot be empty"}
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return &Error{Code: CodeTextTooLong, Message: "Comment cannot exceed 1000 characters"}
	}
	return nil
}
