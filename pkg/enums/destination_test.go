package enums

import "testing"

func TestParseDestination(t *testing.T) {
	for _, raw := range []string{"product", "checkout"} {
		dest, err := ParseDestination(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if string(dest) != raw {
			t.Fatalf("expected %q got %q", raw, dest)
		}
	}
}

func TestParseDestinationRejectsUnknown(t *testing.T) {
	if _, err := ParseDestination("cart"); err == nil {
		t.Fatal("expected error for unknown destination")
	}
	if Destination("").IsValid() {
		t.Fatal("empty destination must be invalid")
	}
}
