package utils

import "testing"

func TestObfuscateMobile(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+60123456789", "******6789"},
		{"0123456789", "******6789"},
		{"123", "******"},
		{"", "******"},
	}
	for _, tt := range tests {
		if got := ObfuscateMobile(tt.in); got != tt.want {
			t.Errorf("ObfuscateMobile(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestObfuscateEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mariam.khan@gmail.com", "ma**@****.com"},
		{"ab@x.co", "**@****.co"},
		{"a@b.org", "**@****.org"},
		{"not-an-email", "**@****.***"},
		{"two@ats@here", "**@****.***"},
		{"", "**@****.***"},
	}
	for _, tt := range tests {
		if got := ObfuscateEmail(tt.in); got != tt.want {
			t.Errorf("ObfuscateEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestObfuscateICNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"880215106789", "88********89"},
		// 4-char input keeps everything, mask length is zero
		{"1234", "1234"},
		{"123", "**********"},
		{"", "**********"},
	}
	for _, tt := range tests {
		if got := ObfuscateICNumber(tt.in); got != tt.want {
			t.Errorf("ObfuscateICNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
