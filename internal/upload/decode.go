package upload

import (
	"io"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go-resume-coach/internal/apperr"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type fileKind int

const (
	kindUnsupported fileKind = iota
	kindPDF
	kindText
)

const (
	binarySampleSize = 1024
	binaryThreshold  = 0.1
)

// detectKind accepts a matching media type or a matching extension
func detectKind(name, contentType string) fileKind {
	mediaType := strings.ToLower(strings.TrimSpace(contentType))
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}

	switch mediaType {
	case "application/pdf":
		return kindPDF
	case "text/plain":
		return kindText
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return kindPDF
	case ".txt":
		return kindText
	}
	return kindUnsupported
}

// decodeText reads a plain-text resume. A UTF-8 or UTF-16 BOM selects the
// encoding, otherwise UTF-8 is assumed.
func decodeText(r io.Reader) (string, int, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", 0, apperr.Read("Failed to read the text file", err)
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", len(raw), apperr.Read("Failed to decode the text file", err)
	}

	text := string(decoded)
	if looksBinary(text) {
		return "", len(raw), apperr.Read("The file does not look like plain text", nil)
	}
	return text, len(raw), nil
}

// looksBinary flags NUL bytes or too many control characters in the first runes
func looksBinary(text string) bool {
	if text == "" {
		return false
	}
	if strings.ContainsRune(text, 0) {
		return true
	}

	sampled, control := 0, 0
	for _, r := range text {
		if sampled == binarySampleSize {
			break
		}
		sampled++
		if r == utf8.RuneError || (r < 32 && r != '\n' && r != '\r' && r != '\t' && r != '\f') {
			control++
		}
	}
	return float64(control)/float64(sampled) > binaryThreshold
}
