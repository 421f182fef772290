package ingestion

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// ExtractError reports a file that could not be turned into text.
type ExtractError struct {
	Name    string
	Message string
	Cause   error
}

func (e *ExtractError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract %s: %s", e.Name, e.Message)
}

func (e *ExtractError) Unwrap() error {
	return e.Cause
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
	xmlEntities  = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// ExtractText returns the text of a résumé file. The format is chosen by extension:
// .pdf and .docx are parsed, everything else is read as UTF-8 text.
func ExtractText(name string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return extractPDF(name, data)
	case ".docx":
		return extractDocx(name, data)
	default:
		if !utf8.Valid(data) {
			return "", &ExtractError{Name: name, Message: "file is not valid UTF-8 text"}
		}
		return string(data), nil
	}
}

// ExtractFile reads path and extracts its text.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return ExtractText(filepath.Base(path), data)
}

func extractPDF(name string, data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Name: name, Message: "failed to read pdf", Cause: err}
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", &ExtractError{Name: name, Message: fmt.Sprintf("failed to read page %d", i), Cause: err}
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), nil
}

func extractDocx(name string, data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractError{Name: name, Message: "failed to parse docx", Cause: err}
	}
	defer doc.Close()

	return docxXMLText(doc.Editable().GetContent()), nil
}

// docxXMLText flattens WordprocessingML to text, one line per paragraph.
func docxXMLText(content string) string {
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSpace(xmlEntities.Replace(content))
}
