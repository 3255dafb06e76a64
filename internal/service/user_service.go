package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"career-guide/internal/domain"
	"career-guide/internal/repository"
)

// TokenIssuer es la parte del servicio de tokens que necesita el alta y el login.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// UserService coordina reglas de negocio para cuentas de usuario.
type UserService struct {
	logger       *zap.Logger
	users        repository.UserRepository
	tokens       TokenIssuer
	loginLimiter LoginRateLimiter
	hashCost     int
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, tokens TokenIssuer, loginLimiter LoginRateLimiter) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		logger:       logger,
		users:        users,
		tokens:       tokens,
		loginLimiter: loginLimiter,
		hashCost:     bcrypt.DefaultCost,
	}
}

type SignupInput struct {
	Email               string
	Password            string
	FirstName           string
	LastName            string
	Age                 string
	SchoolName          string
	Standard            string
	Interests           string
	AcademicPerformance string
}

// AuthResult es lo que devuelven signup y login: token y vista reducida.
type AuthResult struct {
	Token string             `json:"token"`
	User  domain.UserSummary `json:"user"`
}

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrRateLimited        = errors.New("rate limited")
)

// Signup registra al usuario y devuelve su token de sesion.
// El token se firma antes de persistir y solo se entrega si el registro quedo guardado.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	if s.users == nil || s.tokens == nil {
		return AuthResult{}, errors.New("user service not configured")
	}

	email := normalizeEmail(input.Email)
	if email == "" {
		return AuthResult{}, ErrInvalidEmail
	}
	if input.Password == "" {
		return AuthResult{}, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return AuthResult{}, ErrInvalidPassword
		}
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:                  uuid.NewString(),
		Email:               email,
		PasswordHash:        string(hash),
		FirstName:           strings.TrimSpace(input.FirstName),
		LastName:            strings.TrimSpace(input.LastName),
		Age:                 strings.TrimSpace(input.Age),
		SchoolName:          strings.TrimSpace(input.SchoolName),
		Standard:            strings.TrimSpace(input.Standard),
		Interests:           strings.TrimSpace(input.Interests),
		AcademicPerformance: strings.TrimSpace(input.AcademicPerformance),
		CreatedAt:           time.Now().UTC(),
	}
	user.StudentName = user.FullName()
	user.AcademicInfo = domain.DeriveAcademicInfo(user.Standard, user.AcademicPerformance)

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return AuthResult{}, ErrDuplicateEmail
		}
		return AuthResult{}, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID))
	return AuthResult{Token: token, User: user.Summary()}, nil
}

// Login valida credenciales. Email desconocido y contraseña erronea devuelven
// el mismo ErrInvalidCredentials. Solo los fallos consumen cupo del limiter;
// un login correcto lo libera.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (AuthResult, error) {
	if s.tokens == nil {
		return AuthResult{}, errors.New("user service not configured")
	}
	emailAddr = normalizeEmail(emailAddr)
	if s.loginLimiter != nil && !s.loginLimiter.Allow(emailAddr) {
		return AuthResult{}, ErrRateLimited
	}

	user, err := s.Authenticate(ctx, emailAddr, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) && s.loginLimiter != nil {
			s.loginLimiter.RecordFailure(emailAddr)
		}
		return AuthResult{}, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("issue token: %w", err)
	}
	if s.loginLimiter != nil {
		s.loginLimiter.Reset(emailAddr)
	}
	return AuthResult{Token: token, User: user.Summary()}, nil
}

func (s *UserService) Authenticate(ctx context.Context, emailAddr, password string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	if emailAddr == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// mismo costo de bcrypt que un usuario existente
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if user.PasswordHash == "" {
		return domain.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	user.PasswordHash = ""
	return user, nil
}

// Profile devuelve el registro del usuario autenticado sin el hash.
func (s *UserService) Profile(ctx context.Context, userID string) (domain.User, error) {
	if s.users == nil {
		return domain.User{}, errors.New("user service not configured")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	user.PasswordHash = ""
	return user, nil
}

var (
	dummyHashOnce  sync.Once
	dummyHashBytes []byte
)

func dummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHashBytes, _ = bcrypt.GenerateFromPassword([]byte("career-guide-placeholder"), bcrypt.DefaultCost)
	})
	return dummyHashBytes
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
