package upload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        fileKind
	}{
		{"cv.pdf", "application/pdf", kindPDF},
		{"cv", "APPLICATION/PDF", kindPDF},
		{"cv.PDF", "application/octet-stream", kindPDF},
		{"cv.txt", "", kindText},
		{"cv", "text/plain; charset=utf-16", kindText},
		{"cv.md", "text/markdown", kindUnsupported},
		{"cv.doc", "application/msword", kindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name+" "+tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, detectKind(tt.name, tt.contentType))
		})
	}
}

func TestLooksBinary(t *testing.T) {
	assert.False(t, looksBinary(""))
	assert.False(t, looksBinary("Jane Doe\r\n\tSenior Engineer\f"))
	assert.False(t, looksBinary("Zoë Ångström, Kraków, 東京"))
	assert.True(t, looksBinary("PDF\x00stream"))
	assert.True(t, looksBinary(strings.Repeat("\x01\x02ab", 50)))
}
