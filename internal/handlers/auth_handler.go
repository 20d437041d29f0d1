package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"admissions/internal/middleware"
	"admissions/internal/models"
	"admissions/internal/services"
)

const tokenLifetime = 12 * time.Hour

type AuthHandler struct {
	candidates services.CandidateService
}

func NewAuthHandler(candidates services.CandidateService) *AuthHandler {
	return &AuthHandler{candidates: candidates}
}

// @Summary      Candidate login
// @Description  Authenticates by application id and password, returns a token and the stage snapshot
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login data"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	applicationID := strings.TrimSpace(req.ApplicationID)
	log.Printf("[auth][login] attempt application_id=%q", applicationID)

	candidate, snapshot, err := h.candidates.Login(applicationID, req.Password)
	if err != nil {
		log.Printf("[auth][login] failed for %q: %v", applicationID, err)
		abortWithError(c, err)
		return
	}

	claims := &middleware.Claims{
		CandidateID:   candidate.ID,
		ApplicationID: candidate.ApplicationID,
		Email:         candidate.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.JWTKey)
	if err != nil {
		log.Printf("[auth][login] sign token failed for %q: %v", applicationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Printf("[auth][login] success application_id=%s", candidate.ApplicationID)
	c.JSON(http.StatusOK, gin.H{
		"message":       "Login successful",
		"token":         tokenString,
		"user":          candidate, // PasswordHash is json:"-", never serialized
		"personal_info": snapshot.Personal,
		"academic_info": snapshot.Academic,
		"subject_info":  snapshot.Subject,
	})
}
