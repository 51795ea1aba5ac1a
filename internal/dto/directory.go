package dto

import "time"

// CreateTeacherRequest registers a teacher account.
type CreateTeacherRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Institution string `json:"institution" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Password    string `json:"password" validate:"required,min=6"`
}

// CreateStudentRequest registers a student account on behalf of a teacher.
type CreateStudentRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6"`
}

// SelfRegisterStudentRequest registers a student who joins a teacher by tag.
type SelfRegisterStudentRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Email      string `json:"email" validate:"required,email,max=255"`
	Password   string `json:"password" validate:"required,min=6"`
	TeacherTag string `json:"teacher_tag" validate:"required,max=32"`
}

// AttachTagRequest links the current student to another teacher.
type AttachTagRequest struct {
	TeacherTag string `json:"teacher_tag" validate:"required,max=32"`
}

// TeacherResponse is the public view of a teacher account.
type TeacherResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Institution string `json:"institution"`
	Email       string `json:"email"`
	Tag         string `json:"tag"`
}

// StudentResponse is the public view of a student account.
type StudentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TagResponse returns a teacher's join code.
type TagResponse struct {
	Tag string `json:"tag"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// StudentAnswerDetail is one answer as listed for a teacher, newest first.
type StudentAnswerDetail struct {
	ID                 string    `json:"id"`
	QuestionID         *string   `json:"question_id"`
	QuestionIndex      int       `json:"question_index"`
	QuestionYear       int       `json:"question_year"`
	QuestionTitle      string    `json:"question_title"`
	ChosenAlternative  string    `json:"alternativa_escolhida"`
	CorrectAlternative *string   `json:"alternativa_correta"`
	Correct            bool      `json:"correta"`
	RespondedAt        time.Time `json:"responded_at"`
}
