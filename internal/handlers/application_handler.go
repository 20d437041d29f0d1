package handlers

import (
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"admissions/internal/models"
	"admissions/internal/pdf"
	"admissions/internal/services"
)

type ApplicationHandler struct {
	applications services.ApplicationService
	candidates   services.CandidateService
	uploads      *services.UploadService
	pdfGen       pdf.Generator
	filesRoot    string
}

func NewApplicationHandler(
	applications services.ApplicationService,
	candidates services.CandidateService,
	uploads *services.UploadService,
	pdfGen pdf.Generator,
	filesRoot string,
) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		candidates:   candidates,
		uploads:      uploads,
		pdfGen:       pdfGen,
		filesRoot:    filesRoot,
	}
}

// @Summary      Save personal details
// @Description  Stores the personal-information stage with photo and signature uploads (create-once)
// @Tags         Application
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /applications/personal [post]
func (h *ApplicationHandler) WritePersonal(c *gin.Context) {
	applicationID, ok := applicationIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	photoRef, err := h.saveFormImage(c, "candidate_photo")
	if err != nil {
		abortWithError(c, err)
		return
	}
	signatureRef, err := h.saveFormImage(c, "candidate_signature")
	if err != nil {
		abortWithError(c, err)
		return
	}

	info := personalInfoFromForm(c, applicationID)
	info.PhotoRef = photoRef
	info.SignatureRef = signatureRef

	if err := h.applications.WritePersonal(info); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Personal info saved successfully",
		"application_id": applicationID,
		"personal_info":  info,
	})
}

// saveFormImage stores one multipart image and returns its reference.
// A missing part is reported as missing documents, per the stage contract.
func (h *ApplicationHandler) saveFormImage(c *gin.Context, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", services.ErrMissingDocuments
	}
	f, err := fh.Open()
	if err != nil {
		return "", services.ErrMissingDocuments
	}
	defer f.Close()
	return h.uploads.SaveImage(f, fh.Filename, fh.Size)
}

func personalInfoFromForm(c *gin.Context, applicationID string) *models.PersonalInfo {
	return &models.PersonalInfo{
		ApplicationID:    applicationID,
		FirstName:        c.PostForm("first_name"),
		MiddleName:       c.PostForm("middle_name"),
		LastName:         c.PostForm("last_name"),
		Email:            c.PostForm("email"),
		MobileNumber:     c.PostForm("mobile_number"),
		WhatsappNumber:   c.PostForm("whatsapp_number"),
		DateOfBirth:      c.PostForm("dob"),
		Gender:           c.PostForm("gender"),
		Nationality:      c.PostForm("nationality"),
		Caste:            c.PostForm("caste"),
		MaritalStatus:    c.PostForm("marital_status"),
		SpecialCategory:  c.PostForm("special_category"),
		Religion:         c.PostForm("religion"),
		AadharNumber:     c.PostForm("aadhar_number"),
		VoterID:          c.PostForm("voter_id"),
		WeightageClaimed: c.PostForm("weightage_claimed"),
		UniversityRegNum: c.PostForm("university_reg_num"),
		UniversityEnrNum: c.PostForm("university_enr_num"),
		PermanentAddress: models.Address{
			Address: c.PostForm("perm_address"),
			City:    c.PostForm("perm_city"),
			State:   c.PostForm("perm_state"),
			Pin:     c.PostForm("perm_pin"),
		},
		TemporaryAddress: models.Address{
			Address: c.PostForm("temp_address"),
			City:    c.PostForm("temp_city"),
			State:   c.PostForm("temp_state"),
			Pin:     c.PostForm("temp_pin"),
		},
		FathersName:   c.PostForm("fathers_name"),
		MothersName:   c.PostForm("mothers_name"),
		ParentsMobile: c.PostForm("parents_mobile"),
	}
}

// @Summary      Save academic history
// @Description  Stores the academic stage with one entry per education level (create-once)
// @Tags         Application
// @Accept       json
// @Produce      json
// @Param        request  body      models.WriteAcademicRequest  true  "Academic records"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /applications/academic [post]
func (h *ApplicationHandler) WriteAcademic(c *gin.Context) {
	applicationID, ok := applicationIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.WriteAcademicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := h.applications.WriteAcademic(applicationID, req.Entries)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Academic info saved successfully",
		"academic_info": record,
	})
}

// @Summary      Save subject selection
// @Description  Stores major/minor subjects and semester (create-once)
// @Tags         Application
// @Accept       json
// @Produce      json
// @Param        request  body      models.WriteSubjectRequest  true  "Subject selection"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /applications/subject [post]
func (h *ApplicationHandler) WriteSubject(c *gin.Context) {
	applicationID, ok := applicationIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.WriteSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selection, err := h.applications.WriteSubject(applicationID, req)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Subject info saved successfully",
		"subject_info": selection,
	})
}

// @Summary      Final submission
// @Description  Irreversibly marks the application as submitted once all stages exist
// @Tags         Application
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /applications/submit [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	applicationID, ok := applicationIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.applications.Submit(applicationID); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Application submitted successfully",
		"application_id": applicationID,
	})
}

// @Summary      Application status
// @Description  Reports which stages exist plus the final submission flag
// @Tags         Application
// @Produce      json
// @Param        application_id  path      string  true  "Application id"
// @Success      200             {object}  models.ApplicationStatus
// @Failure      404             {object}  map[string]string
// @Router       /status/{application_id} [get]
func (h *ApplicationHandler) Status(c *gin.Context) {
	applicationID := c.Param("application_id")

	status, err := h.applications.Status(applicationID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// @Summary      Acknowledgement PDF
// @Description  Downloads the printable acknowledgement form for a submitted application
// @Tags         Application
// @Produce      application/pdf
// @Success      200
// @Failure      400  {object}  map[string]string
// @Router       /applications/acknowledgement [get]
func (h *ApplicationHandler) Acknowledgement(c *gin.Context) {
	applicationID, ok := applicationIDFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	candidate, snap, err := h.applications.FullApplication(applicationID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !candidate.IsSubmitted || snap.Personal == nil || snap.Subject == nil || snap.Academic == nil {
		abortWithError(c, services.ErrIncompleteApplication)
		return
	}

	data := pdf.AcknowledgementData{
		ApplicationID: candidate.ApplicationID,
		FullName:      snap.Personal.FullName(),
		Email:         candidate.Email,
		DateOfBirth:   candidate.DateOfBirth,
		MajorSubjects: snap.Subject.MajorSubjects,
		MinorSubject:  snap.Subject.MinorSubject,
		Semester:      snap.Subject.Semester,
		Academic:      academicLines(snap.Academic.Entries),
	}
	if candidate.SubmittedAt != nil {
		data.SubmittedAt = *candidate.SubmittedAt
	}

	relPath, err := h.pdfGen.GenerateAcknowledgement(data)
	if err != nil {
		log.Printf("[ack] pdf generation failed for %s: %v", applicationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate acknowledgement"})
		return
	}

	absPath := filepath.Join(h.filesRoot, filepath.FromSlash(relPath))
	c.FileAttachment(absPath, filepath.Base(absPath))
}

func academicLines(entries []models.AcademicEntry) []pdf.AcademicLine {
	lines := make([]pdf.AcademicLine, 0, len(entries))
	for _, e := range entries {
		line := pdf.AcademicLine{Level: e.Level}
		if g := e.Graded; g != nil {
			line.Board = g.Board
			line.Subject = g.Subject
			line.Year = g.YearOfPassing
			if g.Percentage != nil {
				line.Score = strconv.FormatFloat(g.Percentage.Percentage, 'f', 2, 64) + "%"
			} else if g.CGPA != nil {
				line.Score = g.CGPA.Value + " CGPA"
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// @Summary      List candidates
// @Description  Lists all candidates with their stage records
// @Tags         Admin
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /candidates [get]
func (h *ApplicationHandler) ListCandidates(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	candidates, err := h.candidates.ListCandidates(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	type row struct {
		Candidate *models.Candidate     `json:"candidate"`
		Stages    *models.StageSnapshot `json:"stages"`
	}
	rows := make([]row, 0, len(candidates))
	for _, cand := range candidates {
		_, snap, err := h.applications.FullApplication(cand.ApplicationID)
		if err != nil {
			log.Printf("[candidates] snapshot failed for %s: %v", cand.ApplicationID, err)
			snap = &models.StageSnapshot{}
		}
		rows = append(rows, row{Candidate: cand, Stages: snap})
	}

	c.JSON(http.StatusOK, gin.H{"candidates": rows})
}
