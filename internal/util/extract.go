package util

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gen2brain/go-fitz"
	"github.com/nguyenthenguyen/docx"
)

const MaxResumeFileSize = 5 << 20

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptyDocument   = errors.New("no text extracted from document")
)

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	docxTab          = regexp.MustCompile(`<w:tab/>|<w:br/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
	blankLines       = regexp.MustCompile(`\n{3,}`)
)

// ResumeContentType maps an uploaded file name to its MIME type, or returns
// ErrUnsupportedFile.
func ResumeContentType(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf", nil
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document", nil
	case ".txt":
		return "text/plain", nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(filename))
}

// ExtractResumeText returns the plain text of a PDF, DOCX or text upload.
func ExtractResumeText(filename string, data []byte) (string, error) {
	contentType, err := ResumeContentType(filename)
	if err != nil {
		return "", err
	}

	var text string
	switch contentType {
	case "application/pdf":
		text, err = extractPDFText(data)
	case "text/plain":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: text file is not utf-8", ErrUnsupportedFile)
		}
		text = string(data)
	default:
		text, err = extractDocxText(data)
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(blankLines.ReplaceAllString(text, "\n\n"))
	if text == "" {
		return "", ErrEmptyDocument
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}
	return fullText.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent()), nil
}

// docxXMLToText flattens WordprocessingML into lines, one per paragraph.
func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = docxTab.ReplaceAllString(content, " ")
	content = xmlTag.ReplaceAllString(content, "")
	replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
	return replacer.Replace(content)
}
