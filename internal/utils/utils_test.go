package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{61*time.Minute + 1*time.Second, "01:01:01"},
		{25*time.Hour + 45*time.Minute + 30*time.Second, "25:45:30"},
		{-5 * time.Second, "00:00:00"},
	}

	for _, test := range tests {
		result := FormatDuration(test.duration)
		if result != test.expected {
			t.Errorf("FormatDuration(%v) = %s; ожидалось %s", test.duration, result, test.expected)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{time.Hour + 2*time.Second, "1:00:02"},
	}

	for _, test := range tests {
		if result := FormatClock(test.duration); result != test.expected {
			t.Errorf("FormatClock(%v) = %s; ожидалось %s", test.duration, result, test.expected)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{1536 * 1024 * 1024, "1.5 GB"},
	}

	for _, test := range tests {
		if result := FormatFileSize(test.bytes); result != test.expected {
			t.Errorf("FormatFileSize(%d) = %s; ожидалось %s", test.bytes, result, test.expected)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a long string", 10, "this is..."},
		{"Привет, мир", 8, "Приве..."},
		{"abcdef", 2, "ab"},
	}

	for _, test := range tests {
		result := TruncateString(test.input, test.maxLen)
		if result != test.expected {
			t.Errorf("TruncateString(%q, %d) = %q; ожидалось %q", test.input, test.maxLen, result, test.expected)
		}
	}
}
