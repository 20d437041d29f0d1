package models

import "time"

const (
	LevelHighSchool   = "High School"
	LevelIntermediate = "Intermediate"
	LevelGraduation   = "Graduation"

	ScoreTypePercentage = "Percentage"
	ScoreTypeCGPA       = "CGPA"
)

// AcademicEntry is one education level inside an academic record.
// Graduation entries carry nothing but the level; every other level
// must have Graded set, with exactly one of the two score variants.
type AcademicEntry struct {
	Level  string       `json:"level"`
	Graded *GradedEntry `json:"graded,omitempty"`
}

type GradedEntry struct {
	Board         string           `json:"board"`
	Subject       string           `json:"subject"`
	YearOfPassing string           `json:"year_of_passing"`
	Percentage    *PercentageScore `json:"percentage,omitempty"`
	CGPA          *CGPAScore       `json:"cgpa,omitempty"`
}

func (g *GradedEntry) ScoreType() string {
	if g.Percentage != nil {
		return ScoreTypePercentage
	}
	return ScoreTypeCGPA
}

// PercentageScore keeps the caller's precomputed percentage as submitted;
// the writer stores it without recomputing from marks.
type PercentageScore struct {
	MarksObtained float64 `json:"marks_obtained"`
	MaximumMarks  float64 `json:"maximum_marks"`
	Percentage    float64 `json:"percentage"`
}

type CGPAScore struct {
	Value string `json:"value"`
}

type AcademicRecord struct {
	ApplicationID string          `json:"application_id"`
	Entries       []AcademicEntry `json:"entries"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AcademicEntryInput is the flat wire shape the dashboard submits; the
// application service validates it and folds it into the tagged form above.
type AcademicEntryInput struct {
	Level         string  `json:"level"`
	Board         string  `json:"board"`
	Subject       string  `json:"subject"`
	YearOfPassing string  `json:"year_of_passing"`
	ScoreType     string  `json:"score_type"`
	MarksObtained float64 `json:"marks_obtained"`
	MaximumMarks  float64 `json:"maximum_marks"`
	Percentage    float64 `json:"percentage"`
	CGPA          string  `json:"cgpa"`
}

type WriteAcademicRequest struct {
	Entries []AcademicEntryInput `json:"academic_records"`
}
