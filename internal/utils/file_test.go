package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "resume.txt")
	if err := os.WriteFile(existing, []byte("content"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := ValidateInputFile(existing); err != nil {
		t.Errorf("ValidateInputFile(existing) error: %v", err)
	}
	if err := ValidateInputFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("ValidateInputFile(missing) expected error")
	}
	if err := ValidateInputFile(dir); err == nil {
		t.Error("ValidateInputFile(directory) expected error")
	}
}

func TestIsSupportedDocument(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"resume.DOCX", true},
		{"resume.doc", true},
		{"resume.txt", true},
		{"notes.md", true},
		{"resume.rtf", false},
		{"archive.zip", false},
		{"noextension", false},
	}
	for _, tt := range tests {
		if got := IsSupportedDocument(tt.filename); got != tt.want {
			t.Errorf("IsSupportedDocument(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, tt := range tests {
		if got := FormatFileSize(tt.size); got != tt.want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", tt.size, got, tt.want)
		}
	}
}
