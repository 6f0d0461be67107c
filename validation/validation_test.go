package validation

import (
	"strings"
	"testing"

	"github.com/Chundurirohan/Courtly-server/errors"
)

type exportPayload struct {
	Format string `json:"format" validate:"required"`
	Title  string `json:"title" validate:"max=128"`
}

func TestValidateStructOK(t *testing.T) {
	if err := ValidateStruct(exportPayload{Format: "txt", Title: "hearing"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStructMissingRequired(t *testing.T) {
	err := ValidateStruct(exportPayload{})
	if err == nil {
		t.Fatal("expected error for missing format")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Fatalf("expected invalid input error, got %v", err)
	}
	if !strings.Contains(appErr.Message, "format") {
		t.Errorf("json field name should be reported: %v", appErr.Message)
	}
}

func TestValidatorCollectsErrors(t *testing.T) {
	v := New().
		Required("title", "").
		Min("speakers", 0, 1).
		OneOf("format", "pdf", []string{"txt", "docx"})

	err := v.Err()
	if err == nil {
		t.Fatal("expected combined error")
	}
	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 3 {
		t.Errorf("expected 3 field errors, got %#v", appErr.Details["fields"])
	}
}

func TestValidatorPassThrough(t *testing.T) {
	v := New().
		Required("title", "hearing").
		Min("speakers", 2, 1).
		OneOf("format", "", []string{"txt"}).
		MaxLength("notes", "ok", 10).
		Custom(true, "x", "never")

	if err := v.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
