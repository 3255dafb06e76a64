package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-guide/internal/domain"
	"career-guide/internal/repository"
	"career-guide/internal/scoring"
	"career-guide/internal/service"
)

const testSecret = "test-secret"

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	createErr    error
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
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.usersByID[id], nil
}

type mockMarksRepo struct {
	mu        sync.Mutex
	entries   []domain.MarksEntry
	createErr error
}

func (m *mockMarksRepo) Create(_ context.Context, entry domain.MarksEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockMarksRepo) ListByUserID(_ context.Context, userID string) ([]domain.MarksEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.MarksEntry, 0)
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].UserID == userID {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

type mockQuestionnaireRepo struct {
	saved []domain.Questionnaire
}

func (m *mockQuestionnaireRepo) Create(_ context.Context, q domain.Questionnaire) error {
	m.saved = append(m.saved, q)
	return nil
}

type testApp struct {
	router         *gin.Engine
	jwtSvc         *service.JWTService
	users          *mockUserRepo
	marks          *mockMarksRepo
	questionnaires *mockQuestionnaireRepo
	scorer         *scoring.MockClient
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := &testApp{
		jwtSvc:         service.NewJWTService(testSecret, 24*time.Hour),
		users:          newMockUserRepo(),
		marks:          &mockMarksRepo{},
		questionnaires: &mockQuestionnaireRepo{},
		scorer:         &scoring.MockClient{Response: json.RawMessage(`{"careers":["Engineer"],"report_url":"/reports/1.pdf"}`)},
	}

	logger := zap.NewNop()
	userSvc := service.NewUserService(logger, app.users, app.jwtSvc, nil)
	marksSvc := service.NewMarksService(app.marks)
	assessmentSvc := service.NewAssessmentService(logger, app.users, app.questionnaires, app.scorer)

	app.router = NewRouter(
		logger,
		"http://localhost:3000",
		nil,
		app.jwtSvc,
		NewUserHandler(logger, userSvc),
		NewMarksHandler(logger, marksSvc),
		NewAssessmentHandler(logger, assessmentSvc),
	)
	return app
}

func performRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

// signup registra un usuario de prueba y devuelve su token.
func (a *testApp) signup(t *testing.T, email string) string {
	t.Helper()
	rec := performRequest(a.router, http.MethodPost, "/auth/signup", map[string]any{
		"email":     email,
		"password":  "secret123",
		"firstName": "A",
		"lastName":  "B",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	token, _ := decodeBody(t, rec)["token"].(string)
	if token == "" {
		t.Fatalf("signup: missing token")
	}
	return token
}
