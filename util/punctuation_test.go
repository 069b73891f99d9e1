package util

import "testing"

func TestIsPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"。", true},
		{"，", true},
		{"「」", true},
		{" ", true},
		{".", true},
		{"東", false},
		{"東。", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsPunctuation(tt.in); got != tt.want {
			t.Errorf("IsPunctuation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestContainsPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"東家。", true},
		{"東家", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ContainsPunctuation(tt.in); got != tt.want {
			t.Errorf("ContainsPunctuation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsHan(t *testing.T) {
	tests := []struct {
		r    rune
		want bool
	}{
		{'東', true},
		{'人', true},
		{'a', false},
		{'。', false},
	}
	for _, tt := range tests {
		if got := IsHan(tt.r); got != tt.want {
			t.Errorf("IsHan(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestHasHan(t *testing.T) {
	if !HasHan("abc東") {
		t.Error("HasHan(\"abc東\") = false")
	}
	if HasHan("abc") {
		t.Error("HasHan(\"abc\") = true")
	}
}

func TestIsASCII(t *testing.T) {
	if !IsASCII('a') || !IsASCII(' ') {
		t.Error("ASCII rune not recognized")
	}
	if IsASCII('東') {
		t.Error("IsASCII('東') = true")
	}
}
