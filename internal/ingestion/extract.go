package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format is a supported input file format
type Format string

// Supported formats
const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

var formatsByExtension = map[string]Format{
	".txt":  FormatText,
	".text": FormatText,
	".md":   FormatText,
	".pdf":  FormatPDF,
	".docx": FormatDOCX,
	".html": FormatHTML,
	".htm":  FormatHTML,
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>`)
	xmlTagPattern    = regexp.MustCompile(`<[^>]*>`)
)

// DetectFormat maps a filename's extension to a Format.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	format, ok := formatsByExtension[ext]
	if !ok {
		return "", &UnsupportedFormatError{Filename: filename, Extension: ext}
	}
	return format, nil
}

// ExtractText converts raw file content to clean text, choosing the format by filename extension.
func ExtractText(filename string, data []byte) (string, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return "", err
	}
	return ExtractFormat(format, data)
}

// ExtractFormat converts raw content of a known format to clean text.
func ExtractFormat(format Format, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch format {
	case FormatText:
		text = string(data)
	case FormatPDF:
		text, err = extractPDFText(data)
	case FormatDOCX:
		text, err = extractDocxText(data)
	case FormatHTML:
		text, err = ExtractHTMLText(string(data))
	default:
		return "", &UnsupportedFormatError{Filename: "(" + string(format) + ")", Extension: string(format)}
	}
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// ReadFile reads a file from disk, enforces maxBytes when it is positive, and extracts its text.
func ReadFile(path string, maxBytes int64) (string, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return "", nil, &TooLargeError{Size: info.Size(), Limit: maxBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	text, err := ExtractFormat(format, data)
	if err != nil {
		return "", nil, err
	}
	return text, NewMetadata(filepath.Base(path), format, data), nil
}

// ExtractHTMLText parses HTML and returns the visible text of its main content, one block per line.
func ExtractHTMLText(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", &ExtractionError{Format: FormatHTML, Message: "failed to parse HTML", Cause: err}
	}

	doc.Find("script, style, noscript, nav, footer, template").Remove()

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Find("body")
	}

	// Block elements end a line so headers stay on their own lines
	root.Find("br").ReplaceWithHtml("\n")
	root.Find("h1, h2, h3, h4, h5, h6, p, li, div, section, tr").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return root.Text(), nil
}

func extractPDFText(data []byte) (text string, err error) {
	// The PDF parser panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Format: FormatPDF, Message: fmt.Sprintf("malformed document: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatPDF, Message: "failed to read pdf", Cause: err}
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(pageText)
		sb.WriteString("\n\n")
	}

	if strings.TrimSpace(sb.String()) == "" {
		return "", &ExtractionError{Format: FormatPDF, Message: "no text content found in PDF"}
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Format: FormatDOCX, Message: "failed to parse docx", Cause: err}
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText strips WordprocessingML markup, keeping paragraph breaks.
func docxXMLToText(content string) string {
	content = strings.ReplaceAll(content, "<w:tab/>", " ")
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTagPattern.ReplaceAllString(content, "")
	return html.UnescapeString(content)
}
