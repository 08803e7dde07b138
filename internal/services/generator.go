package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"mockexam-backend/internal/exam"
	"mockexam-backend/internal/models"
)

const (
	minTotalQuestions = 10
	maxTotalQuestions = 200
	defaultBatchSize  = 25
	maxSourceDocs     = 3

	corpusSeparator = "\n\n-----\n\n"
)

var placeholderOptions = []string{"A", "B", "C", "D"}

// Completer issues chat completion requests against the configured provider.
type Completer interface {
	CompleteText(ctx context.Context, messages []ChatMessage, temperature float32) (string, error)
	CompleteStructured(ctx context.Context, messages []ChatMessage, temperature float32) (string, error)
}

// Extractor pulls truncated plain text out of a reference document URL.
type Extractor interface {
	ExtractText(ctx context.Context, url string, maxChars int) (string, error)
}

// PaperService generates mock exam papers by batching structured completion
// calls, optionally seeded with style text from reference documents.
type PaperService struct {
	completer      Completer
	extractor      Extractor
	logger         zerolog.Logger
	maxDocChars    int
	maxCorpusChars int
}

func NewPaperService(completer Completer, extractor Extractor, maxDocChars, maxCorpusChars int, logger zerolog.Logger) *PaperService {
	return &PaperService{
		completer:      completer,
		extractor:      extractor,
		logger:         logger.With().Str("component", "paper").Logger(),
		maxDocChars:    maxDocChars,
		maxCorpusChars: maxCorpusChars,
	}
}

// Generate builds a complete mock paper. Extraction and batch completion
// calls run sequentially so assembled questions follow section-queue order
// and outbound load on the provider stays bounded.
func (s *PaperService) Generate(ctx context.Context, req models.GeneratePaperRequest) (*models.GeneratedPaper, error) {
	if strings.TrimSpace(req.ExamName) == "" {
		return nil, errors.New("examName is required")
	}
	if req.Language == "" {
		req.Language = "English"
	}
	if req.Difficulty == "" {
		req.Difficulty = "moderate"
	}
	if req.MaxQuestionsPerBatch <= 0 {
		req.MaxQuestionsPerBatch = defaultBatchSize
	}

	profile := exam.Resolve(req.ExamName)

	targetTotal := profile.TotalQuestions
	if req.TotalQuestions > 0 {
		targetTotal = req.TotalQuestions
	}
	targetTotal = clamp(targetTotal, minTotalQuestions, maxTotalQuestions)

	corpus := s.buildCorpus(ctx, profile.ID)

	plan := exam.Scale(profile.Sections, targetTotal)
	queue := exam.Flatten(plan)
	batches := exam.Partition(queue, req.MaxQuestionsPerBatch)

	s.logger.Info().
		Str("exam", req.ExamName).
		Str("profile", profile.ID).
		Int("target_total", targetTotal).
		Int("batches", len(batches)).
		Int("corpus_chars", len(corpus)).
		Msg("generating paper")

	var questions []models.Question
	for i, batch := range batches {
		prompt := buildBatchPrompt(req.ExamName, req.Language, req.Difficulty, profile.ID, batch, corpus)

		raw, err := s.completer.CompleteStructured(ctx, prompt, 0.7)
		if err != nil {
			return nil, err
		}

		cleaned, err := parseBatch(raw, batch.Size)
		if err != nil {
			return nil, err
		}

		s.logger.Debug().
			Int("batch", i+1).
			Int("requested", batch.Size).
			Int("delivered", len(cleaned)).
			Msg("batch complete")

		questions = append(questions, cleaned...)
	}

	if len(questions) > targetTotal {
		questions = questions[:targetTotal]
	}

	return &models.GeneratedPaper{
		DurationMinutes: profile.DurationMinutes,
		Questions:       questions,
	}, nil
}

// buildCorpus joins text extracted from the exam's reference documents.
// A failing document degrades to empty text; only the recognized exam has
// sources, so unknown exams always get an empty corpus.
func (s *PaperService) buildCorpus(ctx context.Context, profileID string) string {
	urls := exam.SourceDocs(profileID)
	if len(urls) > maxSourceDocs {
		urls = urls[:maxSourceDocs]
	}

	var parts []string
	for _, url := range urls {
		text, err := s.extractor.ExtractText(ctx, url, s.maxDocChars)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", url).Msg("reference document skipped")
			continue
		}
		if text != "" {
			parts = append(parts, text)
		}
	}

	return truncate(strings.Join(parts, corpusSeparator), s.maxCorpusChars)
}

var difficultyRubrics = map[string]string{
	"easy":     "Easy: single-step recall of facts stated plainly in the syllabus. Distractors should be clearly distinguishable from the correct option.",
	"moderate": "Moderate: one or two reasoning steps, applying a concept rather than recalling it. Distractors should be plausible but separable with careful reading.",
	"hard":     "Hard: multi-step reasoning, synthesis or inference across topics. Distractors should be closely competing so that surface-level reading is not enough.",
}

var examGuidance = map[string]string{
	exam.TNPSCGroupIV: "Follow the TNPSC Group IV pattern: objective single-answer questions. Language questions cover Tamil and English grammar, vocabulary and comprehension. General Studies covers Indian polity, history, geography, economy, general science and current affairs with a Tamil Nadu emphasis. Aptitude covers simplification, percentages, ratio, time and work, and logical reasoning.",
}

func buildBatchPrompt(examName, language, difficulty, profileID string, batch exam.Batch, corpus string) []ChatMessage {
	rubric, ok := difficultyRubrics[strings.ToLower(difficulty)]
	if !ok {
		rubric = difficultyRubrics["moderate"]
	}

	var sys strings.Builder
	sys.WriteString("You are an expert exam paper setter. You write original multiple-choice questions in the style of official examination papers.\n\n")
	sys.WriteString("CRITICAL: Return ONLY a valid JSON object. No preamble, no markdown, no backticks.\n\n")
	sys.WriteString(`The object must match this schema exactly:
{"questions": [{"section": "string", "text": "string", "options": ["string", "string", "string", "string"], "answerIndex": 0}]}

`)
	sys.WriteString("Rules:\n")
	sys.WriteString("- Every question has exactly 4 options and exactly one correct option.\n")
	sys.WriteString("- answerIndex is the 0-based index of the correct option.\n")
	sys.WriteString("- Never copy sentences verbatim from the reference material; it is provided only to convey tone and difficulty.\n")
	sys.WriteString(fmt.Sprintf("- Write all questions and options in %s.\n\n", language))
	sys.WriteString("Difficulty calibration. " + rubric + "\n")

	if guidance, ok := examGuidance[profileID]; ok {
		sys.WriteString("\n" + guidance + "\n")
	}

	var user strings.Builder
	user.WriteString(fmt.Sprintf("Generate a batch of questions for a mock %s paper.\n", examName))
	user.WriteString(fmt.Sprintf("Generate exactly %d questions with this section distribution: %s.\n", batch.Size, batch.Distribution()))
	user.WriteString("Set each question's \"section\" field to the section it belongs to.\n\n")

	if corpus == "" {
		user.WriteString("No reference material is available. Rely on the standard syllabus for this exam.\n")
	} else {
		user.WriteString("---REFERENCE MATERIAL START---\n")
		user.WriteString(corpus)
		user.WriteString("\n---REFERENCE MATERIAL END---\n")
	}

	return []ChatMessage{
		{Role: "system", Content: sys.String()},
		{Role: "user", Content: user.String()},
	}
}

// parseBatch parses one structured completion response and returns at most
// limit cleaned questions. A response that is not a single JSON object is
// fatal for the whole request.
func parseBatch(raw string, limit int) ([]models.Question, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var payload struct {
		Questions json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, errors.New("model did not return valid JSON")
	}

	// An absent or non-list questions field is an empty batch, not an error.
	var items []json.RawMessage
	if len(payload.Questions) > 0 {
		if err := json.Unmarshal(payload.Questions, &items); err != nil {
			items = nil
		}
	}

	var cleaned []models.Question
	for _, item := range items {
		if len(cleaned) == limit {
			break
		}
		if q, ok := cleanQuestion(item); ok {
			cleaned = append(cleaned, q)
		}
	}
	return cleaned, nil
}

// cleanQuestion repairs shape drift in a single model-produced question.
// Candidates with empty text or an option count other than 4 are dropped.
func cleanQuestion(item json.RawMessage) (models.Question, bool) {
	var cand struct {
		Section     any   `json:"section"`
		Text        any   `json:"text"`
		Options     []any `json:"options"`
		AnswerIndex any   `json:"answerIndex"`
	}
	if err := json.Unmarshal(item, &cand); err != nil {
		return models.Question{}, false
	}

	q := models.Question{
		Section: asString(cand.Section),
		Text:    strings.TrimSpace(asString(cand.Text)),
	}
	if q.Text == "" {
		return models.Question{}, false
	}

	if len(cand.Options) == 0 {
		q.Options = append([]string(nil), placeholderOptions...)
	} else {
		for _, opt := range cand.Options {
			if len(q.Options) == 4 {
				break
			}
			q.Options = append(q.Options, asString(opt))
		}
	}
	if len(q.Options) != 4 {
		return models.Question{}, false
	}

	q.AnswerIndex = clamp(asInt(cand.AnswerIndex), 0, 3)
	return q, true
}

func asString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		var i int
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%d", &i); err == nil {
			return i
		}
	}
	return 0
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
