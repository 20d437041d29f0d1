package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"admissions/internal/models"
	"admissions/internal/services"
)

type RegistrationHandler struct {
	candidates services.CandidateService
}

func NewRegistrationHandler(candidates services.CandidateService) *RegistrationHandler {
	return &RegistrationHandler{candidates: candidates}
}

// @Summary      Request a verification code
// @Description  Sends a one-time code to an unregistered email address
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        request  body      models.RequestCodeRequest  true  "Email to verify"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /otp/request [post]
func (h *RegistrationHandler) RequestCode(c *gin.Context) {
	var req models.RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.candidates.RequestCode(req.Email); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// @Summary      Register a candidate
// @Description  Creates the candidate account after OTP verification and returns the application id
// @Tags         Registration
// @Accept       json
// @Produce      json
// @Param        request  body      models.RegisterRequest  true  "Registration data"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Router       /register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	candidate, err := h.candidates.Register(req)
	if err != nil {
		log.Printf("[register] failed for %q: %v", req.Email, err)
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Candidate registered successfully",
		"application_id": candidate.ApplicationID,
		"candidate":      candidate,
	})
}
