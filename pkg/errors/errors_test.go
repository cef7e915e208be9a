package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNoMatchingRows, "no rows for project %s", "PRJ-X")

	if err.Code != ErrCodeNoMatchingRows {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeNoMatchingRows)
	}
	if err.Message != "no rows for project PRJ-X" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}

	want := "NO_MATCHING_ROWS: no rows for project PRJ-X"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("unexpected end of input")
	err := Wrap(ErrCodeMalformedDocument, cause, "cannot read %s", "export.xml")

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if !stderrors.Is(err, cause) {
		t.Error("wrapped error does not match its cause via errors.Is")
	}
	if !strings.Contains(err.Error(), "unexpected end of input") {
		t.Errorf("Error() = %q, missing cause text", err.Error())
	}
}

func TestIs(t *testing.T) {
	base := New(ErrCodeEmptyImport, "the document holds no rows")
	wrapped := fmt.Errorf("import failed: %w", base)

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"direct match", base, ErrCodeEmptyImport, true},
		{"direct mismatch", base, ErrCodeMalformedDocument, false},
		{"through fmt wrap", wrapped, ErrCodeEmptyImport, true},
		{"plain error", stderrors.New("boom"), ErrCodeEmptyImport, false},
		{"nil error", nil, ErrCodeEmptyImport, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnrecognizedFormat, "not csv or xml")); got != ErrCodeUnrecognizedFormat {
		t.Errorf("GetCode = %s", got)
	}
	if got := GetCode(stderrors.New("boom")); got != "" {
		t.Errorf("GetCode on plain error = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidProject, "project id cannot be empty")
	if got := UserMessage(err); got != "project id cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := stderrors.New("boom")
	if got := UserMessage(plain); got != "boom" {
		t.Errorf("UserMessage on plain error = %q", got)
	}
}
