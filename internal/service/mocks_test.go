package service

import (
	"context"
	"sync"

	"career-guide/internal/domain"
	"career-guide/internal/repository"
)

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
	getErr       error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.User{}, m.getErr
	}
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	user.PasswordHash = ""
	return user, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.User{}, m.getErr
	}
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.usersByID[id], nil
}

type mockMarksRepo struct {
	entries   []domain.MarksEntry
	createErr error
}

func (m *mockMarksRepo) Create(_ context.Context, entry domain.MarksEntry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockMarksRepo) ListByUserID(_ context.Context, userID string) ([]domain.MarksEntry, error) {
	out := make([]domain.MarksEntry, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

type mockQuestionnaireRepo struct {
	saved     []domain.Questionnaire
	createErr error
}

func (m *mockQuestionnaireRepo) Create(_ context.Context, q domain.Questionnaire) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.saved = append(m.saved, q)
	return nil
}

type mockLimiter struct {
	allow    bool
	keys     []string
	failures []string
	resets   []string
}

func (m *mockLimiter) Allow(key string) bool {
	m.keys = append(m.keys, key)
	return m.allow
}

func (m *mockLimiter) RecordFailure(key string) {
	m.failures = append(m.failures, key)
}

func (m *mockLimiter) Reset(key string) {
	m.resets = append(m.resets, key)
}
