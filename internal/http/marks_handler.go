package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-guide/internal/domain"
	"career-guide/internal/service"
)

// MarksHandler expone la carga y consulta de notas.
type MarksHandler struct {
	logger    *zap.Logger
	marksServ *service.MarksService
}

func NewMarksHandler(logger *zap.Logger, marksServ *service.MarksService) *MarksHandler {
	return &MarksHandler{
		logger:    logger,
		marksServ: marksServ,
	}
}

// SaveMarks maneja POST /marks.
func (h *MarksHandler) SaveMarks(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	var req struct {
		Subjects []struct {
			SubjectName string   `json:"subjectName" binding:"required"`
			Marks       *float64 `json:"marks" binding:"required"`
			TotalMarks  float64  `json:"totalMarks"`
		} `json:"subjects" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid marks request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	subjects := make([]domain.SubjectMark, 0, len(req.Subjects))
	for _, s := range req.Subjects {
		subjects = append(subjects, domain.SubjectMark{
			SubjectName: s.SubjectName,
			Marks:       *s.Marks,
			TotalMarks:  s.TotalMarks,
		})
	}

	if _, err := h.marksServ.Save(c.Request.Context(), userID, subjects); err != nil {
		if errors.Is(err, service.ErrInvalidMarks) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("save marks failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save marks"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Marks saved successfully"})
}

// ListMarks maneja GET /marks.
func (h *MarksHandler) ListMarks(c *gin.Context) {
	userID, ok := GetAuthUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required"})
		return
	}

	entries, err := h.marksServ.List(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list marks failed", zap.Error(err), zap.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load marks"})
		return
	}
	if entries == nil {
		entries = []domain.MarksEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"marks": entries})
}
