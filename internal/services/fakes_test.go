package services

import (
	"fmt"
	"sync"
	"time"

	"admissions/internal/models"
	"admissions/internal/repositories"
)

// In-memory repositories mirroring the Postgres unique-key behavior, so the
// service tests can exercise the conflict paths without a database.

type fakeCandidateRepo struct {
	mu      sync.Mutex
	byEmail map[string]*models.Candidate
	byAppID map[string]*models.Candidate
	nextID  int64
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{
		byEmail: make(map[string]*models.Candidate),
		byAppID: make(map[string]*models.Candidate),
	}
}

func (r *fakeCandidateRepo) Create(c *models.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[c.Email]; ok {
		return repositories.ErrDuplicate
	}
	r.nextID++
	c.ID = r.nextID
	c.ApplicationID = fmt.Sprintf("APP%04d", c.ID)
	c.CreatedAt = time.Now()
	cp := *c
	r.byEmail[c.Email] = &cp
	r.byAppID[c.ApplicationID] = &cp
	return nil
}

func (r *fakeCandidateRepo) GetByEmail(email string) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byEmail[email]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCandidateRepo) GetByApplicationID(appID string) (*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byAppID[appID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCandidateRepo) MarkSubmitted(appID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byAppID[appID]
	if !ok || c.IsSubmitted {
		return false, nil
	}
	c.IsSubmitted = true
	now := time.Now()
	c.SubmittedAt = &now
	return true, nil
}

func (r *fakeCandidateRepo) List(limit, offset int) ([]*models.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var res []*models.Candidate
	for _, c := range r.byAppID {
		cp := *c
		res = append(res, &cp)
	}
	return res, nil
}

type fakePersonalRepo struct {
	mu      sync.Mutex
	records map[string]*models.PersonalInfo
}

func newFakePersonalRepo() *fakePersonalRepo {
	return &fakePersonalRepo{records: make(map[string]*models.PersonalInfo)}
}

func (r *fakePersonalRepo) Create(info *models.PersonalInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[info.ApplicationID]; ok {
		return repositories.ErrDuplicate
	}
	info.CreatedAt = time.Now()
	cp := *info
	r.records[info.ApplicationID] = &cp
	return nil
}

func (r *fakePersonalRepo) GetByApplicationID(appID string) (*models.PersonalInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[appID]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *fakePersonalRepo) Exists(appID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[appID]
	return ok, nil
}

type fakeAcademicRepo struct {
	mu      sync.Mutex
	records map[string]*models.AcademicRecord
}

func newFakeAcademicRepo() *fakeAcademicRepo {
	return &fakeAcademicRepo{records: make(map[string]*models.AcademicRecord)}
}

func (r *fakeAcademicRepo) Create(record *models.AcademicRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[record.ApplicationID]; ok {
		return repositories.ErrDuplicate
	}
	record.CreatedAt = time.Now()
	cp := *record
	r.records[record.ApplicationID] = &cp
	return nil
}

func (r *fakeAcademicRepo) GetByApplicationID(appID string) (*models.AcademicRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[appID]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeAcademicRepo) Exists(appID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[appID]
	return ok, nil
}

type fakeSubjectRepo struct {
	mu      sync.Mutex
	records map[string]*models.SubjectSelection
}

func newFakeSubjectRepo() *fakeSubjectRepo {
	return &fakeSubjectRepo{records: make(map[string]*models.SubjectSelection)}
}

func (r *fakeSubjectRepo) Create(sel *models.SubjectSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[sel.ApplicationID]; ok {
		return repositories.ErrDuplicate
	}
	sel.CreatedAt = time.Now()
	cp := *sel
	r.records[sel.ApplicationID] = &cp
	return nil
}

func (r *fakeSubjectRepo) GetByApplicationID(appID string) (*models.SubjectSelection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.records[appID]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSubjectRepo) Exists(appID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[appID]
	return ok, nil
}

// fakeEmailService records sends instead of dialing SMTP.
type fakeEmailService struct {
	mu            sync.Mutex
	codes         []string
	registrations []string
	submissions   []string
}

func (f *fakeEmailService) SendVerificationCode(email, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, email+":"+code)
	return nil
}

func (f *fakeEmailService) SendRegistrationEmail(email, applicationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registrations = append(f.registrations, email+":"+applicationID)
	return nil
}

func (f *fakeEmailService) SendSubmissionEmail(email, fullName, applicationID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, email+":"+applicationID)
	return nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []string
}

func (f *fakeNotifier) NotifySubmission(applicationID, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notices = append(f.notices, applicationID)
	return nil
}
