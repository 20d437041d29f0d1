package models

import "time"

type SubjectSelection struct {
	ApplicationID string    `json:"application_id"`
	MajorSubjects []string  `json:"major_subject"`
	MinorSubject  string    `json:"minor_subject"`
	Semester      string    `json:"semester"`
	CreatedAt     time.Time `json:"created_at"`
}

type WriteSubjectRequest struct {
	MajorSubjects []string `json:"major_subject"`
	MinorSubject  string   `json:"minor_subject"`
	Semester      string   `json:"semester"`
}
