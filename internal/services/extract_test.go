package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExtractedText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"collapses horizontal whitespace",
			"General   Studies\t\tquestion",
			"General Studies question",
		},
		{
			"strips blank-line noise",
			"line one\n\n\n\n\nline two",
			"line one\n\nline two",
		},
		{
			"trims line edges and document edges",
			"  \n  padded line  \n  ",
			"padded line",
		},
		{
			"normalizes CRLF",
			"a\r\nb\rc",
			"a\nb\nc",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizeExtractedText(tc.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abcdef", truncate("abcdef", 10))
	assert.Equal(t, "abcdef", truncate("abcdef", 0))
}

func TestExtractText_DownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	svc := NewExtractService(zerolog.Nop())

	_, err := svc.ExtractText(context.Background(), server.URL+"/missing.pdf", 1000)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestExtractText_UnparsableDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a pdf</html>"))
	}))
	defer server.Close()

	svc := NewExtractService(zerolog.Nop())

	_, err := svc.ExtractText(context.Background(), server.URL+"/paper.pdf", 1000)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestExtractText_UnreachableHost(t *testing.T) {
	svc := NewExtractService(zerolog.Nop())

	_, err := svc.ExtractText(context.Background(), "http://127.0.0.1:1/paper.pdf", 1000)

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "download"))
}
