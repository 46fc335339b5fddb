package models

import "time"

// Student represents a child enrolled on the platform. Each student
// belongs to exactly one parent account.
type Student struct {
	ID        string     `db:"id" json:"id"`
	ParentID  string     `db:"parent_id" json:"parent_id"`
	FullName  string     `db:"full_name" json:"full_name"`
	GradeYear int        `db:"grade_year" json:"grade_year"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates supported search parameters for listing students.
type StudentFilter struct {
	ParentID  string
	TeacherID string
	Search    string
	Active    *bool
	Page      int
	PageSize  int
}
