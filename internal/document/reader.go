package document

import (
	"fmt"
	"path/filepath"
	"strings"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// DefaultMaxSize is the default upper bound on document size (10MB).
const DefaultMaxSize = 10 * 1024 * 1024

// Reader extracts plain text from resume documents. It is safe for
// concurrent use.
type Reader struct {
	maxSize int64
	logger  *errors.Logger
}

// NewReader creates a document reader. maxSize <= 0 selects DefaultMaxSize.
func NewReader(maxSize int64, logger *errors.Logger) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Reader{maxSize: maxSize, logger: logger}
}

// SupportedExtensions lists the document formats the reader accepts.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".doc", ".txt", ".md"}
}

// Read extracts a RawDocument from the named file content. The filename is
// only used for format dispatch; data carries the bytes.
func (r *Reader) Read(filename string, data []byte) (*types.RawDocument, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
			"filename is required", nil)
	}
	if len(data) == 0 {
		return nil, errors.NewDocumentError(errors.ErrCodeDocumentEmpty,
			fmt.Sprintf("document is empty: %s", filename), nil)
	}
	if int64(len(data)) > r.maxSize {
		return nil, errors.NewDocumentError(errors.ErrCodeDocumentTooLarge,
			fmt.Sprintf("document exceeds size limit of %d bytes", r.maxSize), nil).
			WithContext("size", len(data))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	var (
		text  string
		pages int
		err   error
	)
	switch ext {
	case ".pdf":
		text, pages, err = extractPDF(data)
	case ".docx", ".doc":
		text, err = extractDocx(data)
	case ".txt", ".md":
		text = string(data)
	default:
		return nil, errors.NewDocumentError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("unsupported document format: %s", ext), nil)
	}
	if err != nil {
		return nil, errors.NewDocumentError(errors.ErrCodeDocumentUnreadable,
			fmt.Sprintf("failed to extract text from %s", filename), err)
	}

	text = CleanText(text)
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewDocumentError(errors.ErrCodeDocumentEmpty,
			fmt.Sprintf("no extractable text in %s", filename), nil)
	}

	doc := &types.RawDocument{
		FullText:  text,
		Blocks:    splitBlocks(text),
		PageCount: pages,
	}

	if r.logger != nil {
		r.logger.Debug("Document extracted",
			"filename", filename,
			"format", ext,
			"chars", len(doc.FullText),
			"blocks", len(doc.Blocks),
			"pages", doc.PageCount)
	}

	return doc, nil
}

// splitBlocks splits cleaned text into non-empty paragraph blocks.
func splitBlocks(text string) []string {
	var blocks []string
	for _, b := range strings.Split(text, "\n") {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
