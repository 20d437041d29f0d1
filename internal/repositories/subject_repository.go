package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"admissions/internal/models"
)

type SubjectRepository interface {
	Create(selection *models.SubjectSelection) error
	GetByApplicationID(applicationID string) (*models.SubjectSelection, error)
	Exists(applicationID string) (bool, error)
}

type subjectRepository struct {
	DB *sql.DB
}

func NewSubjectRepository(db *sql.DB) SubjectRepository {
	return &subjectRepository{DB: db}
}

func (r *subjectRepository) Create(selection *models.SubjectSelection) error {
	const q = `
		INSERT INTO subject_selections (application_id, major_subjects, minor_subject, semester)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.DB.QueryRow(q,
		selection.ApplicationID,
		pq.StringArray(selection.MajorSubjects),
		selection.MinorSubject,
		selection.Semester,
	).Scan(&selection.CreatedAt)
	if err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *subjectRepository) GetByApplicationID(applicationID string) (*models.SubjectSelection, error) {
	const q = `
		SELECT application_id, major_subjects, minor_subject, semester, created_at
		FROM subject_selections
		WHERE application_id = $1
	`
	selection := &models.SubjectSelection{}
	var major pq.StringArray
	err := r.DB.QueryRow(q, applicationID).Scan(
		&selection.ApplicationID, &major, &selection.MinorSubject,
		&selection.Semester, &selection.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject selection: %w", err)
	}
	selection.MajorSubjects = []string(major)
	return selection, nil
}

func (r *subjectRepository) Exists(applicationID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM subject_selections WHERE application_id=$1)`, applicationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("subject selection exists: %w", err)
	}
	return exists, nil
}
