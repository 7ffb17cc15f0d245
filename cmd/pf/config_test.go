package main

import "testing"

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"data_path", "data_path"},
		{"data-path", "data_path"},
		{" SCHOLAR-Author-ID ", "scholar_author_id"},
	}
	for _, tt := range tests {
		if got := normalizeKey(tt.in); got != tt.want {
			t.Errorf("normalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name       string
		key, value string
		want       string
	}{
		{"other key", "data_path", "/tmp/data", "/tmp/data"},
		{"empty", "serpapi_api_key", "", ""},
		{"short", "serpapi_api_key", "abc", "****"},
		{"long", "serpapi_api_key", "abcdef123456", "********3456"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maskSecret(tt.key, tt.value); got != tt.want {
				t.Errorf("maskSecret() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("Łąka kwietna", 8); got != "Łąka ..." {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString() = %q", got)
	}
}
