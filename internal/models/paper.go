package models

// Question is a single multiple-choice item in a generated paper.
// Options always holds exactly 4 entries and AnswerIndex is in [0,3].
type Question struct {
	Section     string   `json:"section"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
}

type GeneratedPaper struct {
	DurationMinutes int        `json:"durationMinutes"`
	Questions       []Question `json:"questions"`
}

type GeneratePaperRequest struct {
	ExamName             string `json:"examName"`
	Language             string `json:"language"`
	Difficulty           string `json:"difficulty"`
	TotalQuestions       int    `json:"totalQuestions"`
	MaxQuestionsPerBatch int    `json:"maxQuestionsPerBatch"`
}

type TranslateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"targetLanguage"`
}

type TranslateResponse struct {
	Translated string `json:"translated"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
