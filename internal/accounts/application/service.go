package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	accounts "github.com/stiwari2004/numerology/internal/accounts/domain"
	"github.com/stiwari2004/numerology/internal/auth"
	"github.com/stiwari2004/numerology/internal/observability/metrics"
	tenancy "github.com/stiwari2004/numerology/internal/tenancy/domain"
)

const defaultTokenTTL = 24 * time.Hour

// Service implements account registration, login, and user administration.
type Service struct {
	users    accounts.UserRepository
	sessions accounts.SessionRepository
	tenants  tenancy.Repository
	secret   []byte
	tokenTTL time.Duration
	logger   *log.Logger
	now      func() time.Time
}

// NewService constructs an account service.
func NewService(users accounts.UserRepository, sessions accounts.SessionRepository, tenants tenancy.Repository, secret []byte, tokenTTL time.Duration, logger *log.Logger) (*Service, error) {
	if users == nil {
		return nil, errors.New("accounts service: nil user repository")
	}
	if tenants == nil {
		return nil, errors.New("accounts service: nil tenant repository")
	}
	if len(secret) == 0 {
		return nil, errors.New("accounts service: empty jwt secret")
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		users:    users,
		sessions: sessions,
		tenants:  tenants,
		secret:   secret,
		tokenTTL: tokenTTL,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// RegisterRequest carries a self-registration payload.
type RegisterRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// UserView is the user representation returned by the API.
type UserView struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenant_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Register creates a new user if the tenant has a free license.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*UserView, error) {
	result := metrics.ResultSuccess
	defer func() {
		metrics.IncRegister(result)
	}()

	view, err := s.register(ctx, req)
	if err != nil {
		result = metrics.ResultError
	}
	return view, err
}

func (s *Service) register(ctx context.Context, req RegisterRequest) (*UserView, error) {
	if req.TenantID == "" {
		return nil, errors.New("accounts service: empty tenant id")
	}
	tenant, err := s.tenants.Get(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.SubscriptionActive(s.now()) {
		return nil, errors.New("accounts service: tenant unavailable")
	}

	role, ok := auth.NormalizeRole(req.Role)
	if !ok {
		role = auth.RoleViewer
	}

	existing, err := s.users.GetByEmail(ctx, req.TenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, accounts.ErrDuplicateEmail
	}

	active, err := s.users.CountActive(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant.PurchasedUserLicenses > 0 && active >= tenant.PurchasedUserLicenses {
		return nil, accounts.ErrLicenseLimit
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &accounts.User{
		ID:           newUserID(),
		TenantID:     req.TenantID,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: hash,
		Role:         string(role),
		IsActive:     true,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Printf("accounts register tenant=%s user=%s role=%s", user.TenantID, user.ID, user.Role)
	view := toView(*user)
	return &view, nil
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries an issued token and the user profile.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresAt   string   `json:"expires_at"`
	User        UserView `json:"user"`
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	result := metrics.ResultSuccess
	defer func() {
		metrics.IncLogin(result)
	}()

	resp, err := s.login(ctx, req)
	if err != nil {
		result = metrics.ResultError
	}
	return resp, err
}

func (s *Service) login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.TenantID == "" || req.Email == "" || req.Password == "" {
		return nil, auth.ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, req.TenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, auth.ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	role, ok := auth.NormalizeRole(user.Role)
	if !ok {
		return nil, errors.New("accounts service: stored role invalid")
	}
	token, err := auth.NewToken(s.secret, user.TenantID, role, user.ID, s.tokenTTL)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.tokenTTL)
	if s.sessions != nil {
		session := &accounts.Session{
			ID:        newSessionID(),
			UserID:    user.ID,
			TenantID:  user.TenantID,
			TokenHash: hashToken(token),
			ExpiresAt: expiresAt,
		}
		if err := s.sessions.Save(ctx, session); err != nil {
			s.logger.Printf("accounts session save user=%s error=%v", user.ID, err)
		}
	}

	user.LastLoginAt = now
	if err := s.users.Save(ctx, user); err != nil {
		s.logger.Printf("accounts last-login update user=%s error=%v", user.ID, err)
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt.Format(time.RFC3339),
		User:        toView(*user),
	}, nil
}

// Get returns a user by id within a tenant.
func (s *Service) Get(ctx context.Context, tenantID, id string) (*UserView, error) {
	user, err := s.users.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, accounts.ErrUserNotFound
	}
	view := toView(*user)
	return &view, nil
}

// List returns all users of a tenant.
func (s *Service) List(ctx context.Context, tenantID string) ([]UserView, error) {
	users, err := s.users.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toView(user))
	}
	return views, nil
}

// Deactivate marks a user inactive, freeing a license.
func (s *Service) Deactivate(ctx context.Context, tenantID, id string) error {
	user, err := s.users.Get(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if user == nil {
		return accounts.ErrUserNotFound
	}
	if !user.IsActive {
		return nil
	}
	user.IsActive = false
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Printf("accounts deactivate tenant=%s user=%s", tenantID, id)
	return nil
}

func toView(user accounts.User) UserView {
	view := UserView{
		ID:        user.ID,
		TenantID:  user.TenantID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if !user.LastLoginAt.IsZero() {
		view.LastLoginAt = user.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return view
}

func newUserID() string {
	return "user-" + randomHex(16)
}

func newSessionID() string {
	return "sess-" + randomHex(16)
}

func randomHex(n int) string {
	buf := make([]byte, n)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
