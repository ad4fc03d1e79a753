package document

import (
	"log/slog"
	"strings"
	"testing"

	"resumescan/internal/errors"
)

func testReader(maxSize int64) *Reader {
	return NewReader(maxSize, errors.NewLogger(slog.LevelError))
}

func TestReadText(t *testing.T) {
	reader := testReader(0)

	data := []byte("John Smith\njohn@example.com\n\nEXPERIENCE\nEngineer at Acme")
	doc, err := reader.Read("resume.txt", data)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if !strings.Contains(doc.FullText, "John Smith") {
		t.Errorf("FullText missing content: %q", doc.FullText)
	}
	if len(doc.Blocks) != 4 {
		t.Errorf("Blocks = %d, want 4", len(doc.Blocks))
	}
	if doc.PageCount != 0 {
		t.Errorf("PageCount = %d, want 0 for text input", doc.PageCount)
	}
}

func TestReadMarkdown(t *testing.T) {
	reader := testReader(0)

	doc, err := reader.Read("resume.md", []byte("# Jane Doe\n\nSome experience text"))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if !strings.Contains(doc.FullText, "Jane Doe") {
		t.Errorf("FullText missing content: %q", doc.FullText)
	}
}

func TestReadValidation(t *testing.T) {
	reader := testReader(64)

	tests := []struct {
		name     string
		filename string
		data     []byte
		wantCode string
	}{
		{
			name:     "empty filename",
			filename: "  ",
			data:     []byte("content"),
			wantCode: errors.ErrCodeInvalidRequest,
		},
		{
			name:     "empty document",
			filename: "resume.txt",
			data:     nil,
			wantCode: errors.ErrCodeDocumentEmpty,
		},
		{
			name:     "oversized document",
			filename: "resume.txt",
			data:     []byte(strings.Repeat("x", 65)),
			wantCode: errors.ErrCodeDocumentTooLarge,
		},
		{
			name:     "unsupported format",
			filename: "resume.rtf",
			data:     []byte("content"),
			wantCode: errors.ErrCodeUnsupportedFormat,
		},
		{
			name:     "whitespace only content",
			filename: "resume.txt",
			data:     []byte("   \n\t\n  "),
			wantCode: errors.ErrCodeDocumentEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.Read(tt.filename, tt.data)
			if err == nil {
				t.Fatal("Read() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantCode) {
				t.Errorf("Read() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestReadCorruptPDF(t *testing.T) {
	reader := testReader(0)

	_, err := reader.Read("resume.pdf", []byte("not a real pdf"))
	if err == nil {
		t.Fatal("Read() expected error for corrupt PDF")
	}
	if !strings.Contains(err.Error(), errors.ErrCodeDocumentUnreadable) {
		t.Errorf("Read() error = %v, want code %s", err, errors.ErrCodeDocumentUnreadable)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "crlf normalized",
			in:   "line one\r\nline two\r",
			want: "line one\nline two",
		},
		{
			name: "bullet glyphs canonicalized",
			in:   "● first\n▪ second\n‣ third",
			want: "• first\n• second\n• third",
		},
		{
			name: "newline runs collapsed",
			in:   "a\n\n\n\n\nb",
			want: "a\n\nb",
		},
		{
			name: "trailing whitespace trimmed per line",
			in:   "a  \t\nb\t ",
			want: "a\nb",
		},
		{
			name: "interior spacing preserved",
			in:   "name        value",
			want: "name        value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitBlocks(t *testing.T) {
	blocks := splitBlocks("a\n\n  b  \nc\n")
	want := []string{"a", "b", "c"}
	if len(blocks) != len(want) {
		t.Fatalf("splitBlocks() returned %d blocks, want %d", len(blocks), len(want))
	}
	for i, b := range blocks {
		if b != want[i] {
			t.Errorf("block %d = %q, want %q", i, b, want[i])
		}
	}
}
