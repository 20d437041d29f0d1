package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"admissions/internal/models"
)

type AcademicRepository interface {
	Create(record *models.AcademicRecord) error
	GetByApplicationID(applicationID string) (*models.AcademicRecord, error)
	Exists(applicationID string) (bool, error)
}

type academicRepository struct {
	DB *sql.DB
}

func NewAcademicRepository(db *sql.DB) AcademicRepository {
	return &academicRepository{DB: db}
}

// Create stores the full entry list as one jsonb row keyed by application id;
// the unique key on application_id gives the create-once guarantee.
func (r *academicRepository) Create(record *models.AcademicRecord) error {
	entries, err := json.Marshal(record.Entries)
	if err != nil {
		return fmt.Errorf("marshal academic entries: %w", err)
	}
	const q = `
		INSERT INTO academic_records (application_id, entries)
		VALUES ($1, $2)
		RETURNING created_at
	`
	if err := r.DB.QueryRow(q, record.ApplicationID, entries).Scan(&record.CreatedAt); err != nil {
		return mapUniqueViolation(err)
	}
	return nil
}

func (r *academicRepository) GetByApplicationID(applicationID string) (*models.AcademicRecord, error) {
	const q = `
		SELECT application_id, entries, created_at
		FROM academic_records
		WHERE application_id = $1
	`
	record := &models.AcademicRecord{}
	var entries []byte
	err := r.DB.QueryRow(q, applicationID).Scan(&record.ApplicationID, &entries, &record.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get academic record: %w", err)
	}
	if err := json.Unmarshal(entries, &record.Entries); err != nil {
		return nil, fmt.Errorf("unmarshal academic entries: %w", err)
	}
	return record, nil
}

func (r *academicRepository) Exists(applicationID string) (bool, error) {
	var exists bool
	err := r.DB.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM academic_records WHERE application_id=$1)`, applicationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("academic record exists: %w", err)
	}
	return exists, nil
}
