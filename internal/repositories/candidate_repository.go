package repositories

import (
	"database/sql"
	"fmt"

	"admissions/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	GetByEmail(email string) (*models.Candidate, error)
	GetByApplicationID(applicationID string) (*models.Candidate, error)
	MarkSubmitted(applicationID string) (bool, error)
	List(limit, offset int) ([]*models.Candidate, error)
}

type candidateRepository struct {
	DB *sql.DB
}

func NewCandidateRepository(db *sql.DB) CandidateRepository {
	return &candidateRepository{DB: db}
}

// Create inserts the candidate and mints the application id from the serial
// primary key inside the same transaction, so the id is unique by construction
// and stable for the lifetime of the account.
func (r *candidateRepository) Create(candidate *models.Candidate) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("begin candidate tx: %w", err)
	}
	defer tx.Rollback()

	const insertQ = `
		INSERT INTO candidates (email, password_hash, dob, is_submitted)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, created_at
	`
	if err := tx.QueryRow(insertQ,
		candidate.Email,
		candidate.PasswordHash,
		candidate.DateOfBirth,
	).Scan(&candidate.ID, &candidate.CreatedAt); err != nil {
		return mapUniqueViolation(err)
	}

	candidate.ApplicationID = fmt.Sprintf("APP%04d", candidate.ID)
	const updateQ = `UPDATE candidates SET application_id=$1 WHERE id=$2`
	if _, err := tx.Exec(updateQ, candidate.ApplicationID, candidate.ID); err != nil {
		return fmt.Errorf("assign application id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit candidate tx: %w", err)
	}
	return nil
}

func (r *candidateRepository) GetByEmail(email string) (*models.Candidate, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *candidateRepository) GetByApplicationID(applicationID string) (*models.Candidate, error) {
	return r.getOne(`WHERE application_id = $1`, applicationID)
}

func (r *candidateRepository) getOne(where string, arg any) (*models.Candidate, error) {
	q := `
		SELECT id, email, password_hash, dob, COALESCE(application_id,''),
		       is_submitted, submitted_at, created_at
		FROM candidates ` + where
	row := r.DB.QueryRow(q, arg)

	c := &models.Candidate{}
	var submittedAt sql.NullTime
	if err := row.Scan(
		&c.ID, &c.Email, &c.PasswordHash, &c.DateOfBirth, &c.ApplicationID,
		&c.IsSubmitted, &submittedAt, &c.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if submittedAt.Valid {
		t := submittedAt.Time
		c.SubmittedAt = &t
	}
	return c, nil
}

// MarkSubmitted flips is_submitted exactly once. The guard in the WHERE clause
// makes two concurrent submits resolve to one winner; the loser sees false.
func (r *candidateRepository) MarkSubmitted(applicationID string) (bool, error) {
	const q = `
		UPDATE candidates
		SET is_submitted=TRUE, submitted_at=NOW()
		WHERE application_id=$1 AND is_submitted=FALSE
	`
	res, err := r.DB.Exec(q, applicationID)
	if err != nil {
		return false, fmt.Errorf("mark submitted: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark submitted rows: %w", err)
	}
	return n > 0, nil
}

func (r *candidateRepository) List(limit, offset int) ([]*models.Candidate, error) {
	const q = `
		SELECT id, email, dob, COALESCE(application_id,''),
		       is_submitted, submitted_at, created_at
		FROM candidates
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	var res []*models.Candidate
	for rows.Next() {
		c := &models.Candidate{}
		var submittedAt sql.NullTime
		if err := rows.Scan(
			&c.ID, &c.Email, &c.DateOfBirth, &c.ApplicationID,
			&c.IsSubmitted, &submittedAt, &c.CreatedAt,
		); err != nil {
			return nil, err
		}
		if submittedAt.Valid {
			t := submittedAt.Time
			c.SubmittedAt = &t
		}
		res = append(res, c)
	}
	return res, rows.Err()
}
