package utils

import (
	"regexp"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"punctuation and spaces", "Hello, World!", "hello-world"},
		{"already a slug", "follow-up", "follow-up"},
		{"uppercase", "GREETINGS", "greetings"},
		{"underscores", "after_sales", "after-sales"},
		{"slash", "Billing/Refunds", "billing-refunds"},
		{"accents", "Café Crème", "cafe-creme"},
		{"leading and trailing", "--Follow up--", "follow-up"},
		{"multiple separators", "a  &  b", "a-b"},
		{"digits kept", "Top 10 Answers", "top-10-answers"},
		{"only symbols", "!@#$%", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCategorySlug(t *testing.T) {
	if got := CategorySlug("Hello, World!"); got != "hello-world" {
		t.Errorf("CategorySlug ascii = %q", got)
	}
	if got := CategorySlug("!!!"); got != "" {
		t.Errorf("CategorySlug symbols = %q, want empty", got)
	}

	cjk := CategorySlug("客服")
	if !regexp.MustCompile(`^c-[0-9a-f]{8}$`).MatchString(cjk) {
		t.Fatalf("CategorySlug(客服) = %q", cjk)
	}
	if again := CategorySlug(" 客服 "); again != cjk {
		t.Errorf("expected stable slug, got %q and %q", cjk, again)
	}
	if other := CategorySlug("售后"); other == cjk {
		t.Errorf("different names share slug %q", other)
	}
	if cyrillic := CategorySlug("Привет"); cyrillic == "" || cyrillic != CategorySlug("привет") {
		t.Errorf("CategorySlug should fold case for non-ASCII names, got %q", cyrillic)
	}
}

func TestDeduplicateIDs(t *testing.T) {
	got := DeduplicateIDs([]uint{3, 1, 3, 0, 1, 2, 0})
	want := []uint{3, 1, 0, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if empty := DeduplicateIDs(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", empty)
	}
}
