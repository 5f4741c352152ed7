package i18n

import "testing"

func TestNewResolvesCodes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"de", "de"},
		{"en", "en"},
		{"en-US", "en"},
		{"EN", "en"},
		{"de-AT", "de"},
		{"", "de"},
		{"zz", "de"},
		{"fr", "de"},
	}
	for _, tt := range tests {
		if got := New(tt.input).Code(); got != tt.expected {
			t.Fatalf("New(%q).Code() = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTr(t *testing.T) {
	if got := New("en").Tr("hallo", "hello"); got != "hello" {
		t.Fatalf("english Tr = %q", got)
	}
	if got := New("de").Tr("hallo", "hello"); got != "hallo" {
		t.Fatalf("german Tr = %q", got)
	}
}
