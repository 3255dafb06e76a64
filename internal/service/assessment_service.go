package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"career-guide/internal/domain"
	"career-guide/internal/repository"
	"career-guide/internal/scoring"
)

var ErrInvalidAnswers = errors.New("invalid answers")

// AssessmentService guarda el cuestionario y lo reenvia al servicio de puntuacion.
type AssessmentService struct {
	logger         *zap.Logger
	users          repository.UserRepository
	questionnaires repository.QuestionnaireRepository
	scorer         scoring.Client
}

func NewAssessmentService(
	logger *zap.Logger,
	users repository.UserRepository,
	questionnaires repository.QuestionnaireRepository,
	scorer scoring.Client,
) *AssessmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		logger:         logger,
		users:          users,
		questionnaires: questionnaires,
		scorer:         scorer,
	}
}

// Analyze devuelve la respuesta del servicio de puntuacion sin modificarla.
// Un fallo al guardar el cuestionario se registra pero no corta el analisis.
func (s *AssessmentService) Analyze(ctx context.Context, userID string, answers map[string]any) (json.RawMessage, error) {
	if s.users == nil || s.scorer == nil {
		return nil, errors.New("assessment service not configured")
	}
	if len(answers) == 0 {
		return nil, ErrInvalidAnswers
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if s.questionnaires != nil {
		q := domain.Questionnaire{
			ID:           uuid.NewString(),
			UserID:       user.ID,
			StudentName:  user.FullName(),
			Age:          user.Age,
			AcademicInfo: user.AcademicInfo,
			Interests:    user.Interests,
			Answers:      answers,
			CreatedAt:    time.Now().UTC(),
		}
		if err := s.questionnaires.Create(ctx, q); err != nil {
			s.logger.Warn("save questionnaire failed", zap.Error(err), zap.String("user_id", user.ID))
		}
	}

	return s.scorer.Submit(ctx, scoring.Request{
		Answers: answers,
		StudentInfo: scoring.StudentInfo{
			Name:       user.FullName(),
			Email:      user.Email,
			SchoolName: user.SchoolName,
			Grade:      user.Standard,
			Age:        user.Age,
			Interests:  user.Interests,
		},
	})
}
