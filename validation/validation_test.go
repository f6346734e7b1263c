package validation

import (
	"errors"
	"strings"
	"testing"
)

type clientConfig struct {
	BaseURL string `json:"base_url" validate:"required"`
	Name    string `validate:"max=16"`
	Mode    string `validate:"omitempty,oneof=json console"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   clientConfig
		wantErr bool
		field   string
		message string
	}{
		{
			name:  "valid",
			input: clientConfig{BaseURL: "https://api.example.com", Mode: "json"},
		},
		{
			name:    "missing required field",
			input:   clientConfig{},
			wantErr: true,
			field:   "base_url",
			message: "is required",
		},
		{
			name:    "max exceeded",
			input:   clientConfig{BaseURL: "https://api.example.com", Name: strings.Repeat("x", 17)},
			wantErr: true,
			field:   "name",
			message: "must be at most 16",
		},
		{
			name:    "oneof violated",
			input:   clientConfig{BaseURL: "https://api.example.com", Mode: "xml"},
			wantErr: true,
			field:   "mode",
			message: "must be one of: json console",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want *Error", err)
			}
			if len(vErr.Fields) != 1 {
				t.Fatalf("len(Fields) = %d, want 1", len(vErr.Fields))
			}
			if vErr.Fields[0].Field != tt.field {
				t.Errorf("Field = %s, want %s", vErr.Fields[0].Field, tt.field)
			}
			if vErr.Fields[0].Message != tt.message {
				t.Errorf("Message = %q, want %q", vErr.Fields[0].Message, tt.message)
			}
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"BaseURL", "base_u_r_l"},
		{"Name", "name"},
		{"TotalCountHeader", "total_count_header"},
	}
	for _, tt := range tests {
		if got := toSnakeCase(tt.in); got != tt.want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
