package corpus

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Reader loads converted document text from disk. Converter output is
// usually plain text, but some converters emit HTML; those files are
// normalized to visible text before extraction.
type Reader struct{}

// NewReader creates a document reader
func NewReader() *Reader {
	return &Reader{}
}

// Read returns the text content of a converted document file. Invalid
// UTF-8 bytes are replaced rather than failing the document.
func (r *Reader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}

	text := sanitizeUTF8(data)
	if looksLikeHTML(text) {
		if normalized, err := NormalizeHTML(text); err == nil {
			text = normalized
		}
	}
	return text, nil
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement rune
func sanitizeUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}

// looksLikeHTML checks the leading content for markup
func looksLikeHTML(text string) bool {
	head := strings.ToLower(strings.TrimSpace(text))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") ||
		strings.HasPrefix(head, "<html") ||
		strings.Contains(head, "<body")
}

// NormalizeHTML extracts visible text from HTML content, skipping
// script, style and other non-content elements
func NormalizeHTML(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}
