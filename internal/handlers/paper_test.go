package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mockexam-backend/internal/models"
)

type stubGenerator struct {
	paper      *models.GeneratedPaper
	translated string
	err        error
	lastReq    models.GeneratePaperRequest
}

func (s *stubGenerator) Generate(ctx context.Context, req models.GeneratePaperRequest) (*models.GeneratedPaper, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.paper, nil
}

func (s *stubGenerator) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.translated, nil
}

func newTestHandler(stub *stubGenerator) *PaperHandler {
	return NewPaperHandler(stub, zerolog.Nop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestGeneratePaper_MissingExamName(t *testing.T) {
	h := newTestHandler(&stubGenerator{})

	rr := postJSON(t, h.GeneratePaper, map[string]any{"language": "English"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "examName")
}

func TestGeneratePaper_Success(t *testing.T) {
	stub := &stubGenerator{
		paper: &models.GeneratedPaper{
			DurationMinutes: 180,
			Questions: []models.Question{
				{Section: "Aptitude", Text: "2+2?", Options: []string{"1", "2", "3", "4"}, AnswerIndex: 3},
			},
		},
	}
	h := newTestHandler(stub)

	rr := postJSON(t, h.GeneratePaper, map[string]any{
		"examName":       "TNPSC Group IV",
		"totalQuestions": 50,
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "TNPSC Group IV", stub.lastReq.ExamName)
	assert.Equal(t, 50, stub.lastReq.TotalQuestions)

	var paper models.GeneratedPaper
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&paper))
	assert.Equal(t, 180, paper.DurationMinutes)
	require.Len(t, paper.Questions, 1)
	assert.Len(t, paper.Questions[0].Options, 4)
}

func TestGeneratePaper_ServiceFailure(t *testing.T) {
	h := newTestHandler(&stubGenerator{err: errors.New("(server_error): provider unavailable")})

	rr := postJSON(t, h.GeneratePaper, map[string]any{"examName": "TNPSC Group IV"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Contains(t, resp.Error, "provider unavailable")
}

func TestGeneratePaper_InvalidBody(t *testing.T) {
	h := newTestHandler(&stubGenerator{})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.GeneratePaper(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTranslate_MissingFields(t *testing.T) {
	h := newTestHandler(&stubGenerator{translated: "ignored"})

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing text", map[string]any{"targetLanguage": "Tamil"}},
		{"missing target language", map[string]any{"text": "Hello"}},
		{"empty body", map[string]any{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := postJSON(t, h.Translate, tc.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestTranslate_Success(t *testing.T) {
	h := newTestHandler(&stubGenerator{translated: "Vanakkam"})

	rr := postJSON(t, h.Translate, map[string]any{"text": "Hello", "targetLanguage": "Tamil"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp models.TranslateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Vanakkam", resp.Translated)
}

func TestTranslate_ServiceFailure(t *testing.T) {
	h := newTestHandler(&stubGenerator{err: errors.New("provider unavailable")})

	rr := postJSON(t, h.Translate, map[string]any{"text": "Hello", "targetLanguage": "Tamil"})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
