package util

import (
	"strings"
	"testing"
)

func TestOwnerNamespace(t *testing.T) {
	got := OwnerNamespace("user-8f14e45f")
	if got != OwnerNamespace("user-8f14e45f") {
		t.Fatalf("expected stable namespace, got %s", got)
	}
	if got == OwnerNamespace("user-other") {
		t.Fatalf("expected distinct namespaces")
	}
	if len(got) != 24 {
		t.Fatalf("expected 24 hex characters, got %d", len(got))
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("namespace contains non-hex character: %c", ch)
		}
	}
}

func TestCleanImageName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "apple.jpg", want: "apple.jpg"},
		{in: "Lunch Box.PNG", want: "Lunch_Box.png"},
		{in: " a/b\\c.webp ", want: "a_b_c.webp"},
		{in: ".jpg", want: "image.jpg"},
		{in: "../secret.png", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		got, err := CleanImageName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("CleanImageName(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("CleanImageName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestCleanImageNameClipsLongStem(t *testing.T) {
	got, err := CleanImageName(strings.Repeat("x", 300) + ".jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != maxImageName || !strings.HasSuffix(got, ".jpeg") {
		t.Fatalf("unexpected clipped name %q (%d)", got, len(got))
	}
}
