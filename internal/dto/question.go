package dto

// QuestionAlternative is one rendered alternative together with its stored text.
type QuestionAlternative struct {
	Letter  string  `json:"letter"`
	TextRaw *string `json:"text_raw"`
	Text    *string `json:"text"`
}

// QuestionDetail is the student-facing view of a question with file placeholders resolved.
type QuestionDetail struct {
	ID           string                `json:"id"`
	Title        string                `json:"titulo"`
	Year         int                   `json:"ano"`
	Index        int                   `json:"index"`
	Discipline   *string               `json:"disciplina"`
	Language     *string               `json:"linguagem"`
	ContextRaw   *string               `json:"contexto_raw"`
	Context      *string               `json:"contexto"`
	IntroRaw     *string               `json:"inducao_raw"`
	Intro        *string               `json:"inducao"`
	Alternatives []QuestionAlternative `json:"alternativas"`
	Files        map[string]string     `json:"files"`
}

// AnswerQuestionRequest carries the chosen alternative letter. The letter is checked by
// NormalizeAlternative in the service layer.
type AnswerQuestionRequest struct {
	Alternative string `json:"alternativa"`
}

// AnswerQuestionResult reports the outcome of an answer and always reveals the key.
type AnswerQuestionResult struct {
	ResponseID         string  `json:"resposta_id"`
	Correct            bool    `json:"correta"`
	CorrectAlternative *string `json:"alternativa_correta"`
}

// ImportQuestionsSummary reports an importer run.
type ImportQuestionsSummary struct {
	Processed int `json:"processed"`
	Overflow  int `json:"overflow"`
	Failed    int `json:"failed"`
}
