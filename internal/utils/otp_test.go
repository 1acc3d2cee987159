package utils

import (
	"strconv"
	"testing"
)

func TestGenerateOTPCodeShape(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("GenerateOTPCode: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("code %q length = %d, want 4", code, len(code))
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("code %q is not numeric", code)
		}
		if n < 1000 || n > 9999 {
			t.Fatalf("code %d out of range [1000, 9999]", n)
		}
	}
}

func TestGenerateOTPCodeSpread(t *testing.T) {
	// rough uniformity check: many draws should not collapse onto few values
	seen := make(map[string]bool)
	const draws = 1000
	for i := 0; i < draws; i++ {
		code, err := GenerateOTPCode()
		if err != nil {
			t.Fatalf("GenerateOTPCode: %v", err)
		}
		seen[code] = true
	}
	// with 9000 possible values and 1000 draws, expect well over 900 distinct
	if len(seen) < 850 {
		t.Errorf("only %d distinct codes in %d draws", len(seen), draws)
	}
}
