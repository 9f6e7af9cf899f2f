package platformerrors

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeExternal, http.StatusBadGateway},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("unknown"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
			t.Errorf("%s -> %d, want %d", tt.errorType, got, tt.want)
		}
	}
}

func TestAsErrorPreservesType(t *testing.T) {
	ctx := context.Background()
	original := NewError(ctx, LayerRepository, ErrorTypeNotFound, "row missing", nil, "")

	wrapped := AsError(ctx, LayerDomain, original, "lookup failed")
	if wrapped.Type != ErrorTypeNotFound {
		t.Errorf("type = %s, want NOT_FOUND preserved through wrapping", wrapped.Type)
	}
	if wrapped.Layer != LayerDomain {
		t.Errorf("layer = %s, want domain", wrapped.Layer)
	}
	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should see through the wrapper")
	}
}

func TestAsErrorUntypedBecomesInternal(t *testing.T) {
	wrapped := AsError(context.Background(), LayerDomain, errors.New("boom"), "operation failed")
	if wrapped.Type != ErrorTypeInternal {
		t.Errorf("type = %s, want INTERNAL", wrapped.Type)
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Errorf("wrapped error should unwrap to the cause")
	}
}

func TestAsErrorNil(t *testing.T) {
	if got := AsError(context.Background(), LayerDomain, nil, "no-op"); got != nil {
		t.Errorf("AsError(nil) = %v, want nil", got)
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewError(context.Background(), LayerDomain, ErrorTypeForbidden, "denied", nil, "")
	if !IsErrorType(err, ErrorTypeForbidden) {
		t.Errorf("expected forbidden match")
	}
	if IsErrorType(err, ErrorTypeNotFound) {
		t.Errorf("unexpected not-found match")
	}
	if IsErrorType(nil, ErrorTypeNotFound) {
		t.Errorf("nil error should never match")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeNotFound) {
		t.Errorf("plain error should never match")
	}
}
