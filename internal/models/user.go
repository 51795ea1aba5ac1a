package models

// UserType discriminates the two kinds of accounts a session can belong to.
type UserType string

const (
	UserTypeTeacher UserType = "teacher"
	UserTypeStudent UserType = "student"
)

// Valid reports whether t is a known user type.
func (t UserType) Valid() bool {
	return t == UserTypeTeacher || t == UserTypeStudent
}
