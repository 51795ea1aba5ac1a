package service

import (
	"strings"

	"github.com/noah-isme/mentoria-api/internal/models"
	appErrors "github.com/noah-isme/mentoria-api/pkg/errors"
)

// ScoreResult is the outcome of checking one alternative against a question's key.
type ScoreResult struct {
	Alternative        string
	Correct            bool
	CorrectAlternative *string
}

// NormalizeAlternative uppercases letter and checks it is one of A to E.
func NormalizeAlternative(letter string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(letter))
	if len(normalized) != 1 || normalized[0] < 'A' || normalized[0] > 'E' {
		return "", appErrors.ErrInvalidAlternative
	}
	return normalized, nil
}

// Score compares letter with the stored key. A question without a key never scores correct.
func Score(q *models.Question, letter string) (ScoreResult, error) {
	normalized, err := NormalizeAlternative(letter)
	if err != nil {
		return ScoreResult{}, err
	}
	correct := q.CorrectAlternative != nil && *q.CorrectAlternative == normalized
	return ScoreResult{
		Alternative:        normalized,
		Correct:            correct,
		CorrectAlternative: q.CorrectAlternative,
	}, nil
}
