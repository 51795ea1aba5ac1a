package service

import (
	"strings"

	"github.com/noah-isme/mentoria-api/internal/dto"
	"github.com/noah-isme/mentoria-api/internal/models"
)

// CollectFiles maps each populated file slot to its URL.
func CollectFiles(q *models.Question) map[string]string {
	files := make(map[string]string)
	for i, url := range q.Files() {
		if url != nil && *url != "" {
			files[models.FileSlots[i]] = *url
		}
	}
	return files
}

// Placeholder returns the literal token that stands for slot inside question text.
func Placeholder(slot string) string {
	return "{{" + slot + "}}"
}

// RenderText substitutes every {{slot}} occurrence with its URL, slot by slot in column order.
// Placeholders for slots absent from files stay as literal text. A nil text renders as nil.
func RenderText(text *string, files map[string]string) *string {
	if text == nil {
		return nil
	}
	rendered := *text
	for _, slot := range models.FileSlots {
		if url, ok := files[slot]; ok {
			rendered = strings.ReplaceAll(rendered, Placeholder(slot), url)
		}
	}
	return &rendered
}

// RenderDetail resolves the file placeholders of q into a detail view. It never fails.
func RenderDetail(q *models.Question) dto.QuestionDetail {
	files := CollectFiles(q)

	texts := q.Alternatives()
	alternatives := make([]dto.QuestionAlternative, 0, len(models.AlternativeLetters))
	for i, letter := range models.AlternativeLetters {
		alternatives = append(alternatives, dto.QuestionAlternative{
			Letter:  letter,
			TextRaw: texts[i],
			Text:    RenderText(texts[i], files),
		})
	}

	return dto.QuestionDetail{
		ID:           q.ID,
		Title:        q.Title,
		Year:         q.Year,
		Index:        q.Index,
		Discipline:   q.Discipline,
		Language:     q.Language,
		ContextRaw:   q.Context,
		Context:      RenderText(q.Context, files),
		IntroRaw:     q.AlternativesIntro,
		Intro:        RenderText(q.AlternativesIntro, files),
		Alternatives: alternatives,
		Files:        files,
	}
}
