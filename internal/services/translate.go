package services

import (
	"context"
	"fmt"
	"strings"
)

// Translate passes text through the completion provider for translation.
func (s *PaperService) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	messages := []ChatMessage{
		{
			Role:    "system",
			Content: fmt.Sprintf("You are a translator. Translate the user's text into %s. Return only the translated text, with no explanations.", targetLanguage),
		},
		{Role: "user", Content: text},
	}

	translated, err := s.completer.CompleteText(ctx, messages, 0.3)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(translated), nil
}
