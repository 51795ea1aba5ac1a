package models

import "time"

// Student is a learner account linked to zero or more teachers.
type Student struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// StudentTeacherLink associates a student with a teacher.
type StudentTeacherLink struct {
	StudentID string    `db:"student_id" json:"student_id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// StudentSummary aggregates a linked student's answer totals for their teacher.
type StudentSummary struct {
	ID             string `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Email          string `db:"email" json:"email"`
	TotalResponses int    `db:"total_respostas" json:"total_respostas"`
	TotalCorrect   int    `db:"total_corretas" json:"total_corretas"`
	TotalWrong     int    `db:"-" json:"total_erradas"`
}
