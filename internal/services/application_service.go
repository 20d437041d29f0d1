package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"admissions/internal/models"
	"admissions/internal/repositories"
)

// Notifier posts a short notice to the admissions office when an application
// reaches its terminal state. Implementations must be safe to call with
// a nil receiver so the integration stays optional.
type Notifier interface {
	NotifySubmission(applicationID, fullName string) error
}

type ApplicationService interface {
	WritePersonal(info *models.PersonalInfo) error
	WriteAcademic(applicationID string, entries []models.AcademicEntryInput) (*models.AcademicRecord, error)
	WriteSubject(applicationID string, req models.WriteSubjectRequest) (*models.SubjectSelection, error)
	Submit(applicationID string) error
	Status(applicationID string) (*models.ApplicationStatus, error)
	FullApplication(applicationID string) (*models.Candidate, *models.StageSnapshot, error)
}

type applicationService struct {
	candidateRepo repositories.CandidateRepository
	personalRepo  repositories.PersonalInfoRepository
	academicRepo  repositories.AcademicRepository
	subjectRepo   repositories.SubjectRepository
	emails        EmailService
	notifier      Notifier
}

func NewApplicationService(
	candidateRepo repositories.CandidateRepository,
	personalRepo repositories.PersonalInfoRepository,
	academicRepo repositories.AcademicRepository,
	subjectRepo repositories.SubjectRepository,
	emails EmailService,
	notifier Notifier,
) ApplicationService {
	return &applicationService{
		candidateRepo: candidateRepo,
		personalRepo:  personalRepo,
		academicRepo:  academicRepo,
		subjectRepo:   subjectRepo,
		emails:        emails,
		notifier:      notifier,
	}
}

// WritePersonal stores the personal-details stage. Create-once: the unique
// key on application_id rejects a second write with a conflict instead of
// silently overwriting the first.
func (s *applicationService) WritePersonal(info *models.PersonalInfo) error {
	if strings.TrimSpace(info.PhotoRef) == "" || strings.TrimSpace(info.SignatureRef) == "" {
		return ErrMissingDocuments
	}

	if err := s.personalRepo.Create(info); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrStageConflict
		}
		return fmt.Errorf("create personal info: %w", err)
	}
	return nil
}

func (s *applicationService) WriteAcademic(applicationID string, inputs []models.AcademicEntryInput) (*models.AcademicRecord, error) {
	if len(inputs) == 0 {
		return nil, ErrEmptyAcademicList
	}

	entries := make([]models.AcademicEntry, 0, len(inputs))
	for _, in := range inputs {
		entry, err := buildAcademicEntry(in)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	record := &models.AcademicRecord{
		ApplicationID: applicationID,
		Entries:       entries,
	}
	if err := s.academicRepo.Create(record); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrStageConflict
		}
		return nil, fmt.Errorf("create academic record: %w", err)
	}
	return record, nil
}

// buildAcademicEntry folds the flat wire shape into the tagged variant form.
// Graduation entries need only the level; every other level needs the graded
// block, with score fields depending on the declared score type. The
// submitted percentage is trusted as-is, not recomputed from marks.
func buildAcademicEntry(in models.AcademicEntryInput) (models.AcademicEntry, error) {
	if in.Level == "" {
		return models.AcademicEntry{}, ErrMissingFields
	}
	if in.Level == models.LevelGraduation {
		return models.AcademicEntry{Level: in.Level}, nil
	}

	if in.Board == "" || in.Subject == "" || in.YearOfPassing == "" || in.ScoreType == "" {
		return models.AcademicEntry{}, ErrMissingFields
	}

	graded := &models.GradedEntry{
		Board:         in.Board,
		Subject:       in.Subject,
		YearOfPassing: in.YearOfPassing,
	}
	switch in.ScoreType {
	case models.ScoreTypePercentage:
		if in.MarksObtained == 0 || in.MaximumMarks == 0 || in.Percentage == 0 {
			return models.AcademicEntry{}, ErrMissingFields
		}
		graded.Percentage = &models.PercentageScore{
			MarksObtained: in.MarksObtained,
			MaximumMarks:  in.MaximumMarks,
			Percentage:    in.Percentage,
		}
	case models.ScoreTypeCGPA:
		if in.CGPA == "" {
			return models.AcademicEntry{}, ErrMissingFields
		}
		graded.CGPA = &models.CGPAScore{Value: in.CGPA}
	default:
		return models.AcademicEntry{}, ErrMissingFields
	}

	return models.AcademicEntry{Level: in.Level, Graded: graded}, nil
}

func (s *applicationService) WriteSubject(applicationID string, req models.WriteSubjectRequest) (*models.SubjectSelection, error) {
	if err := validateSelection(req); err != nil {
		return nil, err
	}

	selection := &models.SubjectSelection{
		ApplicationID: applicationID,
		MajorSubjects: req.MajorSubjects,
		MinorSubject:  req.MinorSubject,
		Semester:      req.Semester,
	}
	if err := s.subjectRepo.Create(selection); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrStageConflict
		}
		return nil, fmt.Errorf("create subject selection: %w", err)
	}
	return selection, nil
}

func validateSelection(req models.WriteSubjectRequest) error {
	if len(req.MajorSubjects) == 0 || len(req.MajorSubjects) > 2 {
		return ErrInvalidSelection
	}
	if req.MinorSubject == "" || req.Semester == "" {
		return ErrInvalidSelection
	}
	for _, major := range req.MajorSubjects {
		if major == req.MinorSubject {
			return ErrInvalidSelection
		}
	}
	return nil
}

// Submit flips the application to its terminal state. The guarded update in
// MarkSubmitted decides the winner between concurrent submits; completion
// notifications are best-effort and never fail a successful submit.
func (s *applicationService) Submit(applicationID string) error {
	candidate, err := s.candidateRepo.GetByApplicationID(applicationID)
	if err != nil {
		return fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return ErrNotFound
	}
	if candidate.IsSubmitted {
		return ErrAlreadySubmitted
	}

	status, err := s.stageStatus(applicationID)
	if err != nil {
		return err
	}
	if !status.Complete() {
		return ErrIncompleteApplication
	}

	ok, err := s.candidateRepo.MarkSubmitted(applicationID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlreadySubmitted
	}

	go s.notifySubmitted(candidate)
	return nil
}

func (s *applicationService) notifySubmitted(candidate *models.Candidate) {
	fullName := candidate.Email
	if personal, err := s.personalRepo.GetByApplicationID(candidate.ApplicationID); err == nil && personal != nil {
		fullName = personal.FullName()
	}

	if s.emails != nil {
		if err := s.emails.SendSubmissionEmail(candidate.Email, fullName, candidate.ApplicationID); err != nil {
			log.Printf("[submit] warning: failed to send submission email to %s: %v", candidate.Email, err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.NotifySubmission(candidate.ApplicationID, fullName); err != nil {
			log.Printf("[submit] warning: telegram notice failed for %s: %v", candidate.ApplicationID, err)
		}
	}
}

// Status reports the existence of each stage plus the submitted flag.
// A missing stage is a reportable state, never an error; the call is
// read-only and safe to poll.
func (s *applicationService) Status(applicationID string) (*models.ApplicationStatus, error) {
	candidate, err := s.candidateRepo.GetByApplicationID(applicationID)
	if err != nil {
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, ErrNotFound
	}

	status, err := s.stageStatus(applicationID)
	if err != nil {
		return nil, err
	}
	status.FinalSubmission = candidate.IsSubmitted
	return status, nil
}

func (s *applicationService) stageStatus(applicationID string) (*models.ApplicationStatus, error) {
	status := &models.ApplicationStatus{}
	var err error
	if status.PersonalInfo, err = s.personalRepo.Exists(applicationID); err != nil {
		return nil, err
	}
	if status.AcademicInfo, err = s.academicRepo.Exists(applicationID); err != nil {
		return nil, err
	}
	if status.SubjectInfo, err = s.subjectRepo.Exists(applicationID); err != nil {
		return nil, err
	}
	return status, nil
}

// FullApplication returns the account plus whichever stage records exist,
// used for the acknowledgement PDF and the admin listing.
func (s *applicationService) FullApplication(applicationID string) (*models.Candidate, *models.StageSnapshot, error) {
	candidate, err := s.candidateRepo.GetByApplicationID(applicationID)
	if err != nil {
		return nil, nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, nil, ErrNotFound
	}

	snap := &models.StageSnapshot{}
	if snap.Personal, err = s.personalRepo.GetByApplicationID(applicationID); err != nil {
		return nil, nil, err
	}
	if snap.Academic, err = s.academicRepo.GetByApplicationID(applicationID); err != nil {
		return nil, nil, err
	}
	if snap.Subject, err = s.subjectRepo.GetByApplicationID(applicationID); err != nil {
		return nil, nil, err
	}
	return candidate, snap, nil
}
