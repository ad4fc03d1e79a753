package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// docxEntityReplacer undoes the XML escaping Word applies to run text.
// A single replacer pass keeps doubly-escaped sequences literal.
var docxEntityReplacer = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

// extractDocx pulls plain text out of a DOCX archive by flattening
// word/document.xml: paragraph ends become newlines, tabs become tabs, and
// every remaining tag is stripped.
func extractDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", fmt.Errorf("open document.xml: %w", err)
			}
			docXML, err = io.ReadAll(rc)
			closeErr := rc.Close()
			if err != nil {
				return "", fmt.Errorf("read document.xml: %w", err)
			}
			if closeErr != nil {
				return "", fmt.Errorf("close document.xml: %w", closeErr)
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", fmt.Errorf("no document.xml found in docx")
	}

	xml := string(docXML)
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	text := docxTagPattern.ReplaceAllString(xml, " ")
	return docxEntityReplacer.Replace(text), nil
}
