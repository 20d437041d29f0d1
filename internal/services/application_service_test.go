package services

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions/internal/models"
)

type appFixture struct {
	svc        ApplicationService
	candidates *fakeCandidateRepo
	personal   *fakePersonalRepo
	academic   *fakeAcademicRepo
	subject    *fakeSubjectRepo
	emails     *fakeEmailService
	notifier   *fakeNotifier
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	f := &appFixture{
		candidates: newFakeCandidateRepo(),
		personal:   newFakePersonalRepo(),
		academic:   newFakeAcademicRepo(),
		subject:    newFakeSubjectRepo(),
		emails:     &fakeEmailService{},
		notifier:   &fakeNotifier{},
	}
	f.svc = NewApplicationService(
		f.candidates, f.personal, f.academic, f.subject, f.emails, f.notifier,
	)
	return f
}

func (f *appFixture) addCandidate(t *testing.T, email string) *models.Candidate {
	t.Helper()
	c := &models.Candidate{Email: email, PasswordHash: "x", DateOfBirth: "2000-01-01"}
	require.NoError(t, f.candidates.Create(c))
	return c
}

func validPersonal(appID string) *models.PersonalInfo {
	return &models.PersonalInfo{
		ApplicationID: appID,
		FirstName:     "Asha", LastName: "Verma", Email: "a@x.com",
		PhotoRef:     "/uploads/photo.png",
		SignatureRef: "/uploads/signature.png",
	}
}

func graduationEntries() []models.AcademicEntryInput {
	return []models.AcademicEntryInput{{Level: models.LevelGraduation}}
}

func validSubject() models.WriteSubjectRequest {
	return models.WriteSubjectRequest{
		MajorSubjects: []string{"Physics", "Chemistry"},
		MinorSubject:  "Mathematics",
		Semester:      "First Semester",
	}
}

// ---- personal stage

func TestWritePersonalMissingDocuments(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	info := validPersonal(c.ApplicationID)
	info.SignatureRef = ""
	assert.ErrorIs(t, f.svc.WritePersonal(info), ErrMissingDocuments)

	info = validPersonal(c.ApplicationID)
	info.PhotoRef = "   "
	assert.ErrorIs(t, f.svc.WritePersonal(info), ErrMissingDocuments)
}

func TestWritePersonalCreateOnce(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	require.NoError(t, f.svc.WritePersonal(validPersonal(c.ApplicationID)))
	assert.ErrorIs(t, f.svc.WritePersonal(validPersonal(c.ApplicationID)), ErrStageConflict)
}

// ---- academic stage

func TestWriteAcademicEmptyList(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	_, err := f.svc.WriteAcademic(c.ApplicationID, nil)
	assert.ErrorIs(t, err, ErrEmptyAcademicList)
}

func TestWriteAcademicGraduationNeedsOnlyLevel(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	record, err := f.svc.WriteAcademic(c.ApplicationID, graduationEntries())
	require.NoError(t, err)
	require.Len(t, record.Entries, 1)
	assert.Equal(t, models.LevelGraduation, record.Entries[0].Level)
	assert.Nil(t, record.Entries[0].Graded)
}

func TestWriteAcademicGradedLevelRequiresFields(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	// Intermediate with Percentage but none of the score fields
	_, err := f.svc.WriteAcademic(c.ApplicationID, []models.AcademicEntryInput{{
		Level:     models.LevelIntermediate,
		ScoreType: models.ScoreTypePercentage,
	}})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestWriteAcademicPercentageEntry(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	record, err := f.svc.WriteAcademic(c.ApplicationID, []models.AcademicEntryInput{{
		Level:         models.LevelHighSchool,
		Board:         "CBSE",
		Subject:       "Science",
		YearOfPassing: "2016",
		ScoreType:     models.ScoreTypePercentage,
		MarksObtained: 432,
		MaximumMarks:  500,
		Percentage:    86.40,
	}})
	require.NoError(t, err)

	graded := record.Entries[0].Graded
	require.NotNil(t, graded)
	require.NotNil(t, graded.Percentage)
	assert.Nil(t, graded.CGPA)
	assert.Equal(t, models.ScoreTypePercentage, graded.ScoreType())
	// the caller's precomputed percentage is stored untouched
	assert.Equal(t, 86.40, graded.Percentage.Percentage)
}

func TestWriteAcademicCGPAEntry(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	record, err := f.svc.WriteAcademic(c.ApplicationID, []models.AcademicEntryInput{{
		Level:         models.LevelIntermediate,
		Board:         "CBSE",
		Subject:       "Science",
		YearOfPassing: "2018",
		ScoreType:     models.ScoreTypeCGPA,
		CGPA:          "9.2",
	}})
	require.NoError(t, err)

	graded := record.Entries[0].Graded
	require.NotNil(t, graded)
	require.NotNil(t, graded.CGPA)
	assert.Equal(t, models.ScoreTypeCGPA, graded.ScoreType())
	assert.Equal(t, "9.2", graded.CGPA.Value)
}

func TestWriteAcademicUnknownScoreType(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	_, err := f.svc.WriteAcademic(c.ApplicationID, []models.AcademicEntryInput{{
		Level:         models.LevelHighSchool,
		Board:         "CBSE",
		Subject:       "Science",
		YearOfPassing: "2016",
		ScoreType:     "Grade",
	}})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestWriteAcademicCreateOnce(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	_, err := f.svc.WriteAcademic(c.ApplicationID, graduationEntries())
	require.NoError(t, err)
	_, err = f.svc.WriteAcademic(c.ApplicationID, graduationEntries())
	assert.ErrorIs(t, err, ErrStageConflict)
}

// ---- subject stage

func TestWriteSubjectValidation(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	cases := map[string]models.WriteSubjectRequest{
		"no majors": {
			MinorSubject: "Math", Semester: "First Semester",
		},
		"three majors": {
			MajorSubjects: []string{"Physics", "Chemistry", "Biology"},
			MinorSubject:  "Math", Semester: "First Semester",
		},
		"minor duplicates major": {
			MajorSubjects: []string{"Physics", "Chemistry"},
			MinorSubject:  "Physics", Semester: "First Semester",
		},
		"missing semester": {
			MajorSubjects: []string{"Physics"},
			MinorSubject:  "Math",
		},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.WriteSubject(c.ApplicationID, req)
			assert.ErrorIs(t, err, ErrInvalidSelection)
		})
	}
}

func TestWriteSubjectCreateOnce(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	sel, err := f.svc.WriteSubject(c.ApplicationID, validSubject())
	require.NoError(t, err)
	assert.Equal(t, []string{"Physics", "Chemistry"}, sel.MajorSubjects)

	_, err = f.svc.WriteSubject(c.ApplicationID, validSubject())
	assert.ErrorIs(t, err, ErrStageConflict)
}

// ---- submission

func completeStages(t *testing.T, f *appFixture, appID string) {
	t.Helper()
	require.NoError(t, f.svc.WritePersonal(validPersonal(appID)))
	_, err := f.svc.WriteAcademic(appID, graduationEntries())
	require.NoError(t, err)
	_, err = f.svc.WriteSubject(appID, validSubject())
	require.NoError(t, err)
}

func TestSubmitUnknownApplication(t *testing.T) {
	f := newAppFixture(t)
	assert.ErrorIs(t, f.svc.Submit("APP9999"), ErrNotFound)
}

func TestSubmitIncomplete(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	require.NoError(t, f.svc.WritePersonal(validPersonal(c.ApplicationID)))
	assert.ErrorIs(t, f.svc.Submit(c.ApplicationID), ErrIncompleteApplication)
}

func TestSubmitOnceThenAlreadySubmitted(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")
	completeStages(t, f, c.ApplicationID)

	require.NoError(t, f.svc.Submit(c.ApplicationID))
	assert.ErrorIs(t, f.svc.Submit(c.ApplicationID), ErrAlreadySubmitted)

	assert.Eventually(t, func() bool {
		f.notifier.mu.Lock()
		defer f.notifier.mu.Unlock()
		return len(f.notifier.notices) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestSubmitConcurrentSingleWinner(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")
	completeStages(t, f, c.ApplicationID)

	var wins int64
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if f.svc.Submit(c.ApplicationID) == nil {
				atomic.AddInt64(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), wins)
}

// ---- status

func TestStatusUnknownApplication(t *testing.T) {
	f := newAppFixture(t)
	_, err := f.svc.Status("APP9999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatusMirrorsStageExistence(t *testing.T) {
	f := newAppFixture(t)
	c := f.addCandidate(t, "a@x.com")

	status, err := f.svc.Status(c.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, &models.ApplicationStatus{}, status)

	require.NoError(t, f.svc.WritePersonal(validPersonal(c.ApplicationID)))
	_, err = f.svc.WriteAcademic(c.ApplicationID, graduationEntries())
	require.NoError(t, err)

	status, err = f.svc.Status(c.ApplicationID)
	require.NoError(t, err)
	assert.True(t, status.PersonalInfo)
	assert.True(t, status.AcademicInfo)
	assert.False(t, status.SubjectInfo)
	assert.False(t, status.FinalSubmission)
	assert.False(t, status.Complete())

	_, err = f.svc.WriteSubject(c.ApplicationID, validSubject())
	require.NoError(t, err)
	require.NoError(t, f.svc.Submit(c.ApplicationID))

	status, err = f.svc.Status(c.ApplicationID)
	require.NoError(t, err)
	assert.True(t, status.Complete())
	assert.True(t, status.FinalSubmission)
}
