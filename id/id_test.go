package id

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		prefix Prefix
	}{
		{"invocation", PrefixInvocation},
		{"anomaly", PrefixAnomaly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generated := New(tt.prefix)
			if generated.IsNil() {
				t.Fatal("New returned nil ID")
			}
			if generated.Prefix() != tt.prefix {
				t.Errorf("Prefix: got %q, want %q", generated.Prefix(), tt.prefix)
			}
			if !strings.HasPrefix(generated.String(), string(tt.prefix)+"_") {
				t.Errorf("String %q does not start with %q", generated.String(), tt.prefix)
			}
		})
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := NewAnomalyID().String()
		if seen[s] {
			t.Fatalf("duplicate ID generated: %s", s)
		}
		seen[s] = true
	}
}

func TestParse(t *testing.T) {
	original := NewInvocationID()

	parsed, err := Parse(original.String())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.String() != original.String() {
		t.Errorf("round trip: got %q, want %q", parsed.String(), original.String())
	}

	if _, err := Parse(""); err == nil {
		t.Error("Parse(\"\") should fail")
	}
	if _, err := Parse("not a typeid"); err == nil {
		t.Error("Parse of garbage should fail")
	}
}

func TestParseWithPrefix(t *testing.T) {
	anomID := NewAnomalyID()

	if _, err := ParseWithPrefix(anomID.String(), PrefixAnomaly); err != nil {
		t.Errorf("matching prefix: %v", err)
	}
	if _, err := ParseWithPrefix(anomID.String(), PrefixInvocation); err == nil {
		t.Error("mismatched prefix should fail")
	}
}

func TestNilID(t *testing.T) {
	if !Nil.IsNil() {
		t.Error("Nil.IsNil() = false")
	}
	if Nil.String() != "" {
		t.Errorf("Nil.String() = %q, want empty", Nil.String())
	}
	if Nil.Prefix() != "" {
		t.Errorf("Nil.Prefix() = %q, want empty", Nil.Prefix())
	}
}

func TestTextRoundTrip(t *testing.T) {
	original := NewAnomalyID()

	data, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var decoded ID
	if err := decoded.UnmarshalText(data); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded.String() != original.String() {
		t.Errorf("round trip: got %q, want %q", decoded.String(), original.String())
	}

	var empty ID
	if err := empty.UnmarshalText(nil); err != nil {
		t.Fatalf("UnmarshalText(nil): %v", err)
	}
	if !empty.IsNil() {
		t.Error("UnmarshalText(nil) should yield Nil")
	}
}

func TestScan(t *testing.T) {
	original := NewInvocationID()

	tests := []struct {
		name    string
		src     any
		wantNil bool
		wantErr bool
	}{
		{"string", original.String(), false, false},
		{"bytes", []byte(original.String()), false, false},
		{"nil", nil, true, false},
		{"empty string", "", true, false},
		{"int", 42, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scanned ID
			err := scanned.Scan(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Scan: %v", err)
			}
			if scanned.IsNil() != tt.wantNil {
				t.Errorf("IsNil: got %v, want %v", scanned.IsNil(), tt.wantNil)
			}
		})
	}
}
