package validate

import (
	"errors"
	"strings"
	"testing"
)

func TestComment(t *testing.T) {
	tests := []struct {
		name     string
		cName    string
		email    string
		text     string
		wantCode string // "" means the submission is accepted
	}{
		{
			name:  "valid submission",
			cName: "Ana",
			email: "ana@test.com",
			text:  "Hola",
		},
		{
			name:     "missing name",
			email:    "ana@test.com",
			text:     "Hola",
			wantCode: CodeMissingField,
		},
		{
			name:     "missing email",
			cName:    "Ana",
			text:     "Hola",
			wantCode: CodeMissingField,
		},
		{
			name:     "missing text",
			cName:    "Ana",
			email:    "ana@test.com",
			wantCode: CodeMissingField,
		},
		{
			name:     "email without at sign",
			cName:    "Ana",
			email:    "ana.test.com",
			text:     "Hola",
			wantCode: CodeInvalidEmail,
		},
		{
			name:     "email without tld",
			cName:    "Ana",
			email:    "ana@test",
			text:     "Hola",
			wantCode: CodeInvalidEmail,
		},
		{
			name:     "email with whitespace",
			cName:    "Ana",
			email:    "ana @test.com",
			text:     "Hola",
			wantCode: CodeInvalidEmail,
		},
		{
			name:  "text at the limit",
			cName: "Ana",
			email: "ana@test.com",
			text:  strings.Repeat("a", MaxTextLength),
		},
		{
			name:     "text over the limit",
			cName:    "Ana",
			email:    "ana@test.com",
			text:     strings.Repeat("a", MaxTextLength+1),
			wantCode: CodeTextTooLong,
		},
		{
			// The limit counts characters, not bytes: a 1000-character
			// Spanish comment full of accents must be accepted.
			name:  "accented text at the limit",
			cName: "Ana",
			email: "ana@test.com",
			text:  strings.Repeat("á", MaxTextLength),
		},
		{
			name:     "accented text over the limit",
			cName:    "Ana",
			email:    "ana@test.com",
			text:     strings.Repeat("á", MaxTextLength+1),
			wantCode: CodeTextTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Comment(tt.cName, tt.email, tt.text)
			checkValidationResult(t, err, tt.wantCode)
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode string
	}{
		{name: "valid edit", text: "updated text"},
		{name: "empty edit", text: "", wantCode: CodeMissingField},
		{name: "edit over the limit", text: strings.Repeat("b", MaxTextLength+1), wantCode: CodeTextTooLong},
		{name: "accented edit at the limit", text: strings.Repeat("ñ", MaxTextLength)},
		{name: "accented edit over the limit", text: strings.Repeat("ñ", MaxTextLength+1), wantCode: CodeTextTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Text(tt.text)
			checkValidationResult(t, err, tt.wantCode)
		})
	}
}

func checkValidationResult(t *testing.T, err error, wantCode string) {
	t.Helper()

	if wantCode == "" {
		if err != nil {
			t.Fatalf("expected submission to pass, got %v", err)
		}
		return
	}

	var ve *Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validate.Error, got %v", err)
	}
	if ve.Code != wantCode {
		t.Errorf("code = %q, want %q", ve.Code, wantCode)
	}
	if ve.Message == "" {
		t.Error("validation error has no user-facing message")
	}
}
