package models

import "time"

type Candidate struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"` // never serialized
	DateOfBirth   string     `json:"dob"`
	ApplicationID string     `json:"application_id"`
	IsSubmitted   bool       `json:"is_submitted"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type RequestCodeRequest struct {
	Email string `json:"email" binding:"required"`
}

type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	DateOfBirth      string `json:"dob"`
	VerificationCode string `json:"verification_code"`
}

type LoginRequest struct {
	ApplicationID string `json:"application_id"`
	Password      string `json:"password"`
}

// StageSnapshot is what a candidate gets back on login so the dashboard can
// resume from whatever step was completed last. Missing stages stay nil.
type StageSnapshot struct {
	Personal *PersonalInfo     `json:"personal_info"`
	Academic *AcademicRecord   `json:"academic_info"`
	Subject  *SubjectSelection `json:"subject_info"`
}
