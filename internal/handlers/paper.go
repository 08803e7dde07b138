package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"mockexam-backend/internal/models"
)

// PaperGenerator is the slice of the paper service the handlers need.
type PaperGenerator interface {
	Generate(ctx context.Context, req models.GeneratePaperRequest) (*models.GeneratedPaper, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

type PaperHandler struct {
	papers PaperGenerator
	logger zerolog.Logger
}

func NewPaperHandler(papers PaperGenerator, logger zerolog.Logger) *PaperHandler {
	return &PaperHandler{
		papers: papers,
		logger: logger.With().Str("component", "handlers").Logger(),
	}
}

func (h *PaperHandler) GeneratePaper(w http.ResponseWriter, r *http.Request) {
	var req models.GeneratePaperRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.ExamName) == "" {
		writeError(w, http.StatusBadRequest, "examName is required")
		return
	}

	paper, err := h.papers.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Str("exam", req.ExamName).Msg("paper generation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, paper)
}

func (h *PaperHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req models.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Text == "" || req.TargetLanguage == "" {
		writeError(w, http.StatusBadRequest, "text and targetLanguage are required")
		return
	}

	translated, err := h.papers.Translate(r.Context(), req.Text, req.TargetLanguage)
	if err != nil {
		h.logger.Error().Err(err).Msg("translation failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.TranslateResponse{Translated: translated})
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
