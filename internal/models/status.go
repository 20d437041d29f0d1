package models

// ApplicationStatus is a derived view; nothing here is persisted.
// A missing stage is a valid state, not an error.
type ApplicationStatus struct {
	PersonalInfo    bool `json:"personal_info"`
	AcademicInfo    bool `json:"academic_info"`
	SubjectInfo     bool `json:"subject_info"`
	FinalSubmission bool `json:"final_submission"`
}

func (s ApplicationStatus) Complete() bool {
	return s.PersonalInfo && s.AcademicInfo && s.SubjectInfo
}
