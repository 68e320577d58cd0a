package auth

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/habistudio/habi-backend/pkg/auth"
	"github.com/habistudio/habi-backend/pkg/auth/session"
	"github.com/habistudio/habi-backend/pkg/config"
	"github.com/habistudio/habi-backend/pkg/enums"
	apperrors "github.com/habistudio/habi-backend/pkg/errors"
	"github.com/habistudio/habi-backend/pkg/logger"
	"github.com/habistudio/habi-backend/pkg/metrics"
	"github.com/habistudio/habi-backend/pkg/security"
	"github.com/habistudio/habi-backend/pkg/types"
)

// LoginResult carries the minted token and the profile of the account that
// logged in.
type LoginResult struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Service owns accounts and the active login session. It implements the
// active-user surface the cart and the state manager depend on.
type Service struct {
	registry *Registry
	admins   *AdminCredentials
	remember *RememberStore
	sessions *session.Manager
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	metrics  *metrics.StoreMetrics
	log      *logger.Logger

	mu     sync.Mutex
	active *types.User
}

func NewService(
	registry *Registry,
	admins *AdminCredentials,
	remember *RememberStore,
	sessions *session.Manager,
	jwtCfg config.JWTConfig,
	pwCfg config.PasswordConfig,
	m *metrics.StoreMetrics,
	log *logger.Logger,
) *Service {
	return &Service{
		registry: registry,
		admins:   admins,
		remember: remember,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		metrics:  m,
		log:      log,
	}
}

// Register validates and stores a new customer account. No partial write
// happens on any failure.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if err := s.validateRegistration(req); err != nil {
		return err
	}

	age, _ := strconv.Atoi(strings.TrimSpace(req.Age))
	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "hashing password")
	}

	if err := s.registry.Put(req.Username, CustomerRecord{
		Password: hash,
		Name:     req.Name,
		Address:  req.Address,
		Age:      age,
	}); err != nil {
		return err
	}

	if s.log != nil {
		s.log.Info(s.log.WithUsername(ctx, req.Username), "customer registered")
	}
	return nil
}

func (s *Service) validateRegistration(req RegisterRequest) error {
	if req.Username == "" || req.Password == "" || req.ConfirmPassword == "" ||
		req.Name == "" || req.Address == "" || strings.TrimSpace(req.Age) == "" {
		return apperrors.New(apperrors.CodeValidation, "all fields are required")
	}
	if s.registry.Has(req.Username) {
		return apperrors.New(apperrors.CodeValidation, "username already exists")
	}
	for _, r := range req.Name {
		if unicode.IsDigit(r) {
			return apperrors.New(apperrors.CodeValidation, "name cannot contain numbers")
		}
	}
	age, err := strconv.Atoi(strings.TrimSpace(req.Age))
	if err != nil {
		return apperrors.New(apperrors.CodeValidation, "age must be a valid number")
	}
	if age <= 0 || age > 110 {
		return apperrors.New(apperrors.CodeValidation, "age must be between 1 and 110")
	}
	minLen := s.pwCfg.MinLength
	if minLen <= 0 {
		minLen = 6
	}
	if len(req.Password) < minLen {
		return apperrors.New(apperrors.CodeValidation, "password must be at least "+strconv.Itoa(minLen)+" characters")
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.New(apperrors.CodeValidation, "passwords do not match")
	}
	return nil
}

// Login authenticates a customer, mints a token, and makes them the active
// user.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	invalid := apperrors.New(apperrors.CodeUnauthorized, "invalid username or password")

	rec, ok := s.registry.Get(req.Username)
	if !ok {
		s.metrics.IncLogin(enums.RoleCustomer.String(), "failure")
		return LoginResult{}, invalid
	}
	match, err := security.VerifyPassword(req.Password, rec.Password)
	if err != nil || !match {
		s.metrics.IncLogin(enums.RoleCustomer.String(), "failure")
		return LoginResult{}, invalid
	}

	user := types.User{
		Username: req.Username,
		Name:     rec.Name,
		Address:  rec.Address,
		Age:      rec.Age,
	}
	token, err := s.startSession(ctx, req.Username, enums.RoleCustomer)
	if err != nil {
		return LoginResult{}, err
	}

	s.mu.Lock()
	s.active = &user
	s.mu.Unlock()

	s.metrics.IncLogin(enums.RoleCustomer.String(), "success")
	if s.log != nil {
		s.log.Info(s.log.WithUsername(ctx, req.Username), "customer logged in")
	}
	return LoginResult{Token: token, User: user}, nil
}

// AdminLogin authenticates against the credentials file and handles the
// remember-me flag.
func (s *Service) AdminLogin(ctx context.Context, req AdminLoginRequest) (string, error) {
	creds := s.admins.Load()
	stored, ok := creds[req.Username]
	if !ok || !security.ConstantTimeEquals(stored, req.Password) {
		s.metrics.IncLogin(enums.RoleAdmin.String(), "failure")
		return "", apperrors.New(apperrors.CodeUnauthorized, "invalid username or password")
	}

	if req.Remember {
		if err := s.remember.Write(req.Username, req.Password); err != nil {
			return "", err
		}
	} else {
		if err := s.remember.Clear(); err != nil {
			return "", err
		}
	}

	token, err := s.startSession(ctx, req.Username, enums.RoleAdmin)
	if err != nil {
		return "", err
	}

	s.metrics.IncLogin(enums.RoleAdmin.String(), "success")
	if s.log != nil {
		s.log.Info(s.log.WithUsername(ctx, req.Username), "admin logged in")
	}
	return token, nil
}

func (s *Service) startSession(ctx context.Context, username string, role enums.Role) (string, error) {
	jti := uuid.NewString()
	token, err := auth.MintAccessToken(s.jwtCfg, time.Now(), auth.AccessTokenPayload{
		Username: username,
		Role:     role,
		JTI:      jti,
	})
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "minting access token")
	}
	if err := s.sessions.Create(ctx, jti, role); err != nil {
		return "", apperrors.Wrap(apperrors.CodeDependency, err, "creating session")
	}
	return token, nil
}

// Remembered returns the stored admin login for form prefill, if any.
func (s *Service) Remembered() *RememberedAdmin {
	return s.remember.Read()
}

// Logout revokes the session and clears the active user.
func (s *Service) Logout(ctx context.Context, accessID string) error {
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return apperrors.Wrap(apperrors.CodeDependency, err, "revoking session")
	}
	s.mu.Lock()
	s.active = nil
	s.mu.Unlock()
	if s.log != nil {
		s.log.Info(ctx, "logged out")
	}
	return nil
}

// ActiveUser returns the customer currently stamped onto new cart lines.
func (s *Service) ActiveUser() (types.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return types.User{}, false
	}
	return *s.active, true
}

// SetActiveUser overwrites the active user, as when restoring a snapshot.
func (s *Service) SetActiveUser(user *types.User) error {
	if user != nil && user.Username == "" {
		return apperrors.New(apperrors.CodeValidation, "restored user has no username")
	}
	s.mu.Lock()
	s.active = user
	s.mu.Unlock()
	return nil
}
