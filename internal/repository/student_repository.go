package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/edulane/tutoring-api/internal/models"
)

// StudentRepository manages persistence for students and their subject links.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a new repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// FindByID loads a single student.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	query := "SELECT id, parent_id, full_name, grade_year, birth_date, active, created_at, updated_at FROM students WHERE id = $1"
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// List returns students per provided filter.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	base := "FROM students s"
	where := []string{"1=1"}
	args := []interface{}{}
	if filter.ParentID != "" {
		where = append(where, fmt.Sprintf("s.parent_id = $%d", len(args)+1))
		args = append(args, filter.ParentID)
	}
	if filter.TeacherID != "" {
		base += " JOIN teacher_students ts ON ts.student_id = s.id"
		where = append(where, fmt.Sprintf("ts.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("s.full_name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if filter.Active != nil {
		where = append(where, fmt.Sprintf("s.active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	whereClause := strings.Join(where, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT s.id, s.parent_id, s.full_name, s.grade_year, s.birth_date, s.active, s.created_at, s.updated_at
%s WHERE %s ORDER BY s.full_name ASC LIMIT %d OFFSET %d`, base, whereClause, size, offset)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(DISTINCT s.id) %s WHERE %s", base, whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListSubjects returns the subjects a student is enrolled in, in
// enrollment order. The ordering matters downstream: the subject
// breakdown keeps encounter order on progress ties.
func (r *StudentRepository) ListSubjects(ctx context.Context, studentID string) ([]models.Subject, error) {
	query := `SELECT sub.id, sub.code, sub.name, sub.created_at, sub.updated_at
FROM subjects sub
JOIN student_subjects ss ON ss.subject_id = sub.id
WHERE ss.student_id = $1
ORDER BY ss.created_at ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, studentID); err != nil {
		return nil, fmt.Errorf("list student subjects: %w", err)
	}
	return subjects, nil
}
