package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-guide/internal/service"
)

// AssessmentHandler reenvia el cuestionario al servicio de puntuacion.
type AssessmentHandler struct {
	logger         *zap.Logger
	assessmentServ *service.AssessmentService
}

func NewAssessmentHandler(logger *zap.Logger, assessmentServ *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{
		logger:         logger,
		assessmentServ: assessmentServ,
	}
}

// Analyze maneja POST /auth/analyze.
func (h *AssessmentHandler) Analyze(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req struct {
		Answers map[string]any `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	body, err := h.assessmentServ.Analyze(c.Request.Context(), userID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAnswers):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			h.logger.Error("analyze failed", zap.Error(err), zap.String("user_id", userID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze career"})
		}
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
