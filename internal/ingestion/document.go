// Package ingestion reads resume documents (.txt, .md, .pdf, .docx, .html) and
// returns their cleaned plain text.
package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-ranker/internal/fetch"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies a supported document type.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
	FormatHTML     Format = "html"
)

// ScannedThreshold is the cleaned-text length below which a document is
// treated as a scanned image with no extractable text.
const ScannedThreshold = 100

var (
	// ErrUnsupportedFormat is returned for file extensions with no extractor
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrFileNotFound is returned when the document does not exist
	ErrFileNotFound = errors.New("file not found")
)

var formatsByExt = map[string]Format{
	".txt":  FormatText,
	".text": FormatText,
	".md":   FormatMarkdown,
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

// Document is an ingested resume.
type Document struct {
	Path     string
	RawText  string
	Text     string
	Metadata *Metadata
}

// FormatFor returns the format for path's extension.
func FormatFor(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	f, ok := formatsByExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return f, nil
}

// Supported reports whether path has an extension ExtractText can read.
func Supported(path string) bool {
	_, err := FormatFor(path)
	return err == nil
}

// IsScanned reports whether cleaned text is too short to be a real text layer.
func IsScanned(cleaned string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(cleaned)) < ScannedThreshold
}

// ExtractText reads the document at path and returns its raw and cleaned text.
func ExtractText(path string) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w", ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return ExtractBytes(path, format, data)
}

// ExtractBytes extracts text from in-memory document data. name is recorded
// as the document source.
func ExtractBytes(name string, format Format, data []byte) (*Document, error) {
	var (
		raw   string
		pages int
		err   error
	)

	switch format {
	case FormatText, FormatMarkdown:
		raw = string(data)
	case FormatPDF:
		raw, pages, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	case FormatHTML:
		raw, err = fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s text from %s: %w", format, filepath.Base(name), err)
	}

	cleaned := CleanText(raw)
	meta := NewMetadata(cleaned, name, format)
	meta.PageCount = pages

	return &Document{
		Path:     name,
		RawText:  raw,
		Text:     cleaned,
		Metadata: meta,
	}, nil
}

func extractPDFText(data []byte) (string, int, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	numPages := pdfReader.NumPage()
	pageTexts := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(text) != "" {
			pageTexts = append(pageTexts, text)
		}
	}
	return strings.Join(pageTexts, "\n"), numPages, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br[^>]*/>|<w:tab[^>]*/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML to text, one paragraph per line.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if strings.HasPrefix(tag, "<w:tab") {
			return " "
		}
		return "\n"
	})
	return html.UnescapeString(xmlTag.ReplaceAllString(content, ""))
}
