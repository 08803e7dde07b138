package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"
)

// maxDownloadBytes bounds the size of a fetched reference document.
const maxDownloadBytes = 32 << 20

// ExtractService downloads reference documents and extracts plain text
// from them.
type ExtractService struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewExtractService(logger zerolog.Logger) *ExtractService {
	return &ExtractService{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger.With().Str("component", "extract").Logger(),
	}
}

// ExtractText fetches the document at url, extracts its text content and
// returns it whitespace-normalized and truncated to at most maxChars
// characters.
func (s *ExtractService) ExtractText(ctx context.Context, url string, maxChars int) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes))
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}

	text, err := extractPDF(body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", url, err)
	}

	return truncate(text, maxChars), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	text := normalizeExtractedText(b.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text found in pdf")
	}

	return text, nil
}

var horizontalWhitespace = regexp.MustCompile(`[ \t]+`)

// normalizeExtractedText collapses runs of horizontal whitespace to a single
// space and strips blank-line noise, keeping at most one empty line between
// paragraphs.
func normalizeExtractedText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = horizontalWhitespace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	buf := bytes.Buffer{}

	emptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			emptyCount++
			if emptyCount > 1 {
				continue
			}
			buf.WriteString("\n")
			continue
		}
		emptyCount = 0
		buf.WriteString(trimmed)
		buf.WriteString("\n")
	}

	return strings.TrimSpace(buf.String())
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	return s[:maxChars]
}
