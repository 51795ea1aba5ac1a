package models

import "time"

// FileSlots names the ten file-URL columns in slot order. The first slot keeps its historical spelling.
var FileSlots = [10]string{
	"aquivo1", "arquivo2", "arquivo3", "arquivo4", "arquivo5",
	"arquivo6", "arquivo7", "arquivo8", "arquivo9", "arquivo10",
}

// AlternativeLetters lists the valid alternative letters in display order.
var AlternativeLetters = [5]string{"A", "B", "C", "D", "E"}

// Question is a multiple-choice item identified by (Year, Index).
type Question struct {
	ID                 string  `db:"id" json:"id"`
	Title              string  `db:"title" json:"title"`
	Year               int     `db:"year" json:"year"`
	Index              int     `db:"question_index" json:"index"`
	Language           *string `db:"language" json:"language,omitempty"`
	Discipline         *string `db:"discipline" json:"discipline,omitempty"`
	Context            *string `db:"context" json:"context,omitempty"`
	File1              *string `db:"aquivo1" json:"aquivo1,omitempty"`
	File2              *string `db:"arquivo2" json:"arquivo2,omitempty"`
	File3              *string `db:"arquivo3" json:"arquivo3,omitempty"`
	File4              *string `db:"arquivo4" json:"arquivo4,omitempty"`
	File5              *string `db:"arquivo5" json:"arquivo5,omitempty"`
	File6              *string `db:"arquivo6" json:"arquivo6,omitempty"`
	File7              *string `db:"arquivo7" json:"arquivo7,omitempty"`
	File8              *string `db:"arquivo8" json:"arquivo8,omitempty"`
	File9              *string `db:"arquivo9" json:"arquivo9,omitempty"`
	File10             *string `db:"arquivo10" json:"arquivo10,omitempty"`
	CorrectAlternative *string `db:"correct_alternative" json:"correct_alternative,omitempty"`
	AlternativesIntro  *string `db:"alternatives_intro" json:"alternatives_intro,omitempty"`
	AlternativeA       *string `db:"alternative_a" json:"alternative_a,omitempty"`
	AlternativeB       *string `db:"alternative_b" json:"alternative_b,omitempty"`
	AlternativeC       *string `db:"alternative_c" json:"alternative_c,omitempty"`
	AlternativeD       *string `db:"alternative_d" json:"alternative_d,omitempty"`
	AlternativeE       *string `db:"alternative_e" json:"alternative_e,omitempty"`
}

// Files returns the slot values in FileSlots order.
func (q *Question) Files() [10]*string {
	return [10]*string{q.File1, q.File2, q.File3, q.File4, q.File5, q.File6, q.File7, q.File8, q.File9, q.File10}
}

// SetFile assigns the URL for the zero-based slot position.
func (q *Question) SetFile(pos int, url *string) {
	targets := [10]**string{&q.File1, &q.File2, &q.File3, &q.File4, &q.File5, &q.File6, &q.File7, &q.File8, &q.File9, &q.File10}
	if pos >= 0 && pos < len(targets) {
		*targets[pos] = url
	}
}

// Alternatives returns the alternative texts in AlternativeLetters order.
func (q *Question) Alternatives() [5]*string {
	return [5]*string{q.AlternativeA, q.AlternativeB, q.AlternativeC, q.AlternativeD, q.AlternativeE}
}

// SetAlternative assigns the text for letter; unknown letters are ignored.
func (q *Question) SetAlternative(letter string, text *string) {
	switch letter {
	case "A":
		q.AlternativeA = text
	case "B":
		q.AlternativeB = text
	case "C":
		q.AlternativeC = text
	case "D":
		q.AlternativeD = text
	case "E":
		q.AlternativeE = text
	}
}

// AnsweredResponse is one immutable entry of the answer log.
type AnsweredResponse struct {
	ID                string    `db:"id" json:"id"`
	StudentID         string    `db:"student_id" json:"student_id"`
	QuestionID        *string   `db:"question_id" json:"question_id"`
	ChosenAlternative string    `db:"chosen_alternative" json:"alternativa_escolhida"`
	Correct           bool      `db:"correct" json:"correta"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// AnswerRecord is an answer log row left-joined with its question; question columns are nil
// when the question has been removed.
type AnswerRecord struct {
	ID                 string    `db:"id" json:"id"`
	QuestionID         *string   `db:"question_id" json:"question_id"`
	QuestionIndex      *int      `db:"question_index" json:"question_index"`
	QuestionYear       *int      `db:"question_year" json:"question_year"`
	QuestionTitle      *string   `db:"question_title" json:"question_title"`
	ChosenAlternative  string    `db:"chosen_alternative" json:"alternativa_escolhida"`
	CorrectAlternative *string   `db:"correct_alternative" json:"alternativa_correta"`
	Correct            bool      `db:"correct" json:"correta"`
	RespondedAt        time.Time `db:"created_at" json:"responded_at"`
}
