package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"admissions/internal/models"
	"admissions/internal/repositories"
)

type CandidateService interface {
	RequestCode(email string) error
	Register(req models.RegisterRequest) (*models.Candidate, error)
	Login(applicationID, password string) (*models.Candidate, *models.StageSnapshot, error)
	ListCandidates(limit, offset int) ([]*models.Candidate, error)
}

type candidateService struct {
	repo         repositories.CandidateRepository
	personalRepo repositories.PersonalInfoRepository
	academicRepo repositories.AcademicRepository
	subjectRepo  repositories.SubjectRepository
	otp          *OTPService
	emails       EmailService
	auth         AuthService
}

func NewCandidateService(
	repo repositories.CandidateRepository,
	personalRepo repositories.PersonalInfoRepository,
	academicRepo repositories.AcademicRepository,
	subjectRepo repositories.SubjectRepository,
	otp *OTPService,
	emails EmailService,
	auth AuthService,
) CandidateService {
	return &candidateService{
		repo:         repo,
		personalRepo: personalRepo,
		academicRepo: academicRepo,
		subjectRepo:  subjectRepo,
		otp:          otp,
		emails:       emails,
		auth:         auth,
	}
}

// RequestCode issues a fresh OTP for an unregistered email. Delivery is
// fire-and-forget: a slow or failing SMTP server never invalidates the code.
func (s *candidateService) RequestCode(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrMissingFields
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("check existing candidate: %w", err)
	}
	if existing != nil {
		return ErrAlreadyRegistered
	}

	code, err := s.otp.Issue(email)
	if err != nil {
		return err
	}

	if s.emails != nil {
		go func() {
			if err := s.emails.SendVerificationCode(email, code); err != nil {
				log.Printf("[otp][issue] warning: failed to send code to %s: %v", email, err)
			}
		}()
	}
	return nil
}

// Register creates the account once the OTP checks out. A failed verification
// leaves the ticket unconsumed, so the candidate can retry until it expires.
// The unique index on email is the real duplicate guard; the pre-check only
// exists to fail fast without burning the ticket.
func (s *candidateService) Register(req models.RegisterRequest) (*models.Candidate, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" || req.DateOfBirth == "" || req.VerificationCode == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("check existing candidate: %w", err)
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	if err := s.otp.Verify(email, req.VerificationCode); err != nil {
		return nil, err
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	candidate := &models.Candidate{
		Email:        email,
		PasswordHash: hash,
		DateOfBirth:  req.DateOfBirth,
	}
	if err := s.repo.Create(candidate); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create candidate: %w", err)
	}

	if s.emails != nil {
		go func() {
			if err := s.emails.SendRegistrationEmail(candidate.Email, candidate.ApplicationID); err != nil {
				log.Printf("[register] warning: failed to send registration email to %s: %v", candidate.Email, err)
			}
		}()
	}

	log.Printf("[register] candidate created application_id=%s", candidate.ApplicationID)
	return candidate, nil
}

// Login verifies credentials and returns a best-effort snapshot of whichever
// stage records already exist, so the client can resume where it left off.
func (s *candidateService) Login(applicationID, password string) (*models.Candidate, *models.StageSnapshot, error) {
	applicationID = strings.TrimSpace(applicationID)
	if applicationID == "" || password == "" {
		return nil, nil, ErrMissingFields
	}

	candidate, err := s.repo.GetByApplicationID(applicationID)
	if err != nil {
		return nil, nil, fmt.Errorf("get candidate: %w", err)
	}
	if candidate == nil {
		return nil, nil, ErrNotFound
	}

	if !s.auth.CheckPassword(candidate.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	return candidate, s.snapshot(applicationID), nil
}

func (s *candidateService) snapshot(applicationID string) *models.StageSnapshot {
	snap := &models.StageSnapshot{}
	var err error
	if snap.Personal, err = s.personalRepo.GetByApplicationID(applicationID); err != nil {
		log.Printf("[login] warning: personal info lookup failed for %s: %v", applicationID, err)
	}
	if snap.Academic, err = s.academicRepo.GetByApplicationID(applicationID); err != nil {
		log.Printf("[login] warning: academic record lookup failed for %s: %v", applicationID, err)
	}
	if snap.Subject, err = s.subjectRepo.GetByApplicationID(applicationID); err != nil {
		log.Printf("[login] warning: subject selection lookup failed for %s: %v", applicationID, err)
	}
	return snap
}

func (s *candidateService) ListCandidates(limit, offset int) ([]*models.Candidate, error) {
	return s.repo.List(limit, offset)
}
