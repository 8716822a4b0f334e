package provider

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		stop    string
		wantErr any
	}{
		{"valid", `{"paragraph":"Hello there."}`, StopEnd, nil},
		{"not json", `Hello there.`, StopEnd, &ErrInvalidResponse{}},
		{"missing field", `{"text":"Hello"}`, StopEnd, &ErrInvalidResponse{}},
		{"empty paragraph", `{"paragraph":""}`, StopEnd, &ErrInvalidResponse{}},
		{"extra field", `{"paragraph":"a","x":1}`, StopEnd, &ErrInvalidResponse{}},
		{"truncated", `{"paragraph":"Hello th`, StopMaxTokens, &ErrMaxTokensExceeded{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkResponse(ParagraphSchema, json.RawMessage(tt.raw), tt.stop)
			switch want := tt.wantErr.(type) {
			case nil:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			case *ErrInvalidResponse:
				if !errors.As(err, &want) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
			case *ErrMaxTokensExceeded:
				if !errors.As(err, &want) {
					t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
				}
			}
		})
	}
}

func TestCheckResponseWithoutSchema(t *testing.T) {
	if err := checkResponse(nil, json.RawMessage(`plain text`), StopEnd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
