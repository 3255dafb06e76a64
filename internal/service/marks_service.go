package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"career-guide/internal/domain"
	"career-guide/internal/repository"
)

var ErrInvalidMarks = errors.New("invalid marks")

// MarksService guarda y lista las notas academicas de cada usuario.
type MarksService struct {
	marks repository.MarksRepository
}

func NewMarksService(marks repository.MarksRepository) *MarksService {
	return &MarksService{marks: marks}
}

func (s *MarksService) Save(ctx context.Context, userID string, subjects []domain.SubjectMark) (domain.MarksEntry, error) {
	if s.marks == nil {
		return domain.MarksEntry{}, errors.New("marks service not configured")
	}
	normalized, err := normalizeSubjects(subjects)
	if err != nil {
		return domain.MarksEntry{}, err
	}

	entry := domain.MarksEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Subjects:  normalized,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.marks.Create(ctx, entry); err != nil {
		return domain.MarksEntry{}, err
	}
	return entry, nil
}

func (s *MarksService) List(ctx context.Context, userID string) ([]domain.MarksEntry, error) {
	if s.marks == nil {
		return nil, errors.New("marks service not configured")
	}
	return s.marks.ListByUserID(ctx, userID)
}

func normalizeSubjects(subjects []domain.SubjectMark) ([]domain.SubjectMark, error) {
	if len(subjects) == 0 {
		return nil, fmt.Errorf("%w: at least one subject is required", ErrInvalidMarks)
	}
	out := make([]domain.SubjectMark, 0, len(subjects))
	for i, sub := range subjects {
		name := strings.TrimSpace(sub.SubjectName)
		if name == "" {
			return nil, fmt.Errorf("%w: subject %d has no name", ErrInvalidMarks, i)
		}
		total := sub.TotalMarks
		if total == 0 {
			total = domain.DefaultTotalMarks
		}
		if sub.Marks < 0 || total < 0 {
			return nil, fmt.Errorf("%w: subject %q has negative marks", ErrInvalidMarks, name)
		}
		out = append(out, domain.SubjectMark{SubjectName: name, Marks: sub.Marks, TotalMarks: total})
	}
	return out, nil
}
