package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestProviderError(t *testing.T) {
	err := Provider("deepgram", "status 500")
	if err.Code != ErrCodeProvider {
		t.Errorf("expected code %s, got %s", ErrCodeProvider, err.Code)
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", err.HTTPStatus)
	}
	if !strings.Contains(err.Message, "deepgram") {
		t.Errorf("message should name the provider: %q", err.Message)
	}
}

func TestUnsupportedFormat(t *testing.T) {
	err := UnsupportedFormat("pdf")
	if err.Code != ErrCodeUnsupportedFormat {
		t.Errorf("expected code %s, got %s", ErrCodeUnsupportedFormat, err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if err.Details["format"] != "pdf" {
		t.Errorf("expected format detail, got %v", err.Details)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Persistence("custody record", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to match the cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAsAppError(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", MissingField("files"))
	appErr, ok := AsAppError(err)
	if !ok {
		t.Fatal("expected AsAppError to succeed through wrapping")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("expected code %s, got %s", ErrCodeMissingField, appErr.Code)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}

func TestToResponse(t *testing.T) {
	err := InvalidInput("speakers", "must be at least 1")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeInvalidInput {
		t.Errorf("unexpected code: %s", resp.Error.Code)
	}
	if resp.Error.Details["field"] != "speakers" {
		t.Errorf("unexpected details: %v", resp.Error.Details)
	}
}

func TestWithDetail(t *testing.T) {
	err := New(ErrCodeInternal, "boom", http.StatusInternalServerError).
		WithDetail("stage", "hash")
	if err.Details["stage"] != "hash" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}
