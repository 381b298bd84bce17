package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/internal/staff"
	pkgauth "github.com/harborview-hotels/frontdesk-backend/pkg/auth"
	"github.com/harborview-hotels/frontdesk-backend/pkg/auth/session"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/harborview-hotels/frontdesk-backend/pkg/security"
	"gorm.io/gorm"
)

const minPasswordLen = 8

// Service exposes staff authentication operations.
type Service interface {
	Login(ctx context.Context, input LoginInput) (*TokenPairDTO, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPairDTO, error)
	Logout(ctx context.Context, accessToken string) error
	Register(ctx context.Context, input RegisterInput) (*StaffDTO, error)
}

// LoginInput carries the credentials plus the caller's IP for rate limiting.
type LoginInput struct {
	Email    string
	Password string
	IP       string
}

// RegisterInput seeds a staff account. Exposed on a dev-only route.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	Role     enums.StaffRole
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type staffFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.StaffUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.StaffUser, error)
	Create(ctx context.Context, user *models.StaffUser) (*models.StaffUser, error)
	TouchLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type service struct {
	staff    staffFinder
	sessions sessionManager
	limiter  rateLimiter
	jwtCfg   config.JWTConfig
	rlCfg    config.AuthRateLimitConfig
	pwCfg    config.PasswordConfig
	logg     *logger.Logger
	clock    clock.Clock
}

// ServiceParams bundles the dependencies required to build the auth service.
type ServiceParams struct {
	Staff         *staff.Repository
	Sessions      *session.Manager
	Limiter       rateLimiter
	JWT           config.JWTConfig
	AuthRateLimit config.AuthRateLimitConfig
	Password      config.PasswordConfig
	Logger        *logger.Logger
	Clock         clock.Clock
}

// NewService constructs the staff authentication service.
func NewService(params ServiceParams) (Service, error) {
	if params.Staff == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	if params.Sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	if params.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt config required")
	}
	if params.Clock == nil {
		params.Clock = clock.System()
	}
	return &service{
		staff:    params.Staff,
		sessions: params.Sessions,
		limiter:  params.Limiter,
		jwtCfg:   params.JWT,
		rlCfg:    params.AuthRateLimit,
		pwCfg:    params.Password,
		logg:     params.Logger,
		clock:    params.Clock,
	}, nil
}

// newService is the interface-typed constructor used by tests.
func newService(staffRepo staffFinder, sessions sessionManager, limiter rateLimiter, jwtCfg config.JWTConfig, rlCfg config.AuthRateLimitConfig, pwCfg config.PasswordConfig, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.System()
	}
	return &service{
		staff:    staffRepo,
		sessions: sessions,
		limiter:  limiter,
		jwtCfg:   jwtCfg,
		rlCfg:    rlCfg,
		pwCfg:    pwCfg,
		clock:    clk,
	}
}

// Login authenticates the operator and issues an access/refresh pair. Failed
// and successful attempts alike consume rate-limit budget.
func (s *service) Login(ctx context.Context, input LoginInput) (*TokenPairDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and password are required")
	}

	if err := s.allowLogin(ctx, email, input.IP); err != nil {
		return nil, err
	}

	user, err := s.staff.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup staff account")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled")
	}

	match, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !match {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.clock.Now()
	pair, err := s.issuePair(ctx, user, now)
	if err != nil {
		return nil, err
	}

	if err := s.staff.TouchLogin(ctx, user.ID, now); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, user.ID.String()), "failed to stamp last login")
	}
	return pair, nil
}

// Refresh rotates the session behind an (possibly expired) access token.
func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPairDTO, error) {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}

	newAccessID, newRefresh, err := s.sessions.Rotate(ctx, claims.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	user, err := s.staff.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account no longer exists")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account disabled")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, s.clock.Now(), pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		JTI:      newAccessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPairDTO{
		AccessToken:  access,
		RefreshToken: newRefresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
		User:         NewStaffDTO(user),
	}, nil
}

// Logout revokes the session tied to the token's jti.
func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := pkgauth.ParseAccessTokenAllowExpired(s.jwtCfg, accessToken)
	if err != nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid access token")
	}
	if err := s.sessions.Revoke(ctx, claims.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

// Register creates a staff account. Route-level guards keep this out of prod.
func (s *service) Register(ctx context.Context, input RegisterInput) (*StaffDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valid email is required")
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	}
	role := input.Role
	if role == "" {
		role = enums.StaffRoleStaff
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff role")
	}

	hash, err := security.HashPassword(input.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.StaffUser{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
	}
	if _, err := s.staff.Create(ctx, user); err != nil {
		switch {
		case db.IsUniqueViolation(err, "email"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered").
				WithDetails(map[string]string{"field": "email"})
		case db.IsUniqueViolation(err, "username"):
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken").
				WithDetails(map[string]string{"field": "username"})
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create staff account")
		}
	}
	dto := NewStaffDTO(user)
	return &dto, nil
}

func (s *service) allowLogin(ctx context.Context, email, ip string) error {
	if s.limiter == nil {
		return nil
	}
	window := s.rlCfg.LoginWindow
	if window <= 0 {
		window = time.Minute
	}
	if s.rlCfg.LoginEmailLimit > 0 {
		ok, _, err := s.limiter.FixedWindowAllow(ctx, "login:email:"+email, int64(s.rlCfg.LoginEmailLimit), window)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts for this account")
		}
	}
	if ip != "" && s.rlCfg.LoginIPLimit > 0 {
		ok, _, err := s.limiter.FixedWindowAllow(ctx, "login:ip:"+ip, int64(s.rlCfg.LoginIPLimit), window)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts from this address")
		}
	}
	return nil
}

func (s *service) issuePair(ctx context.Context, user *models.StaffUser, now time.Time) (*TokenPairDTO, error) {
	accessID := session.NewAccessID()
	refresh, err := s.sessions.Generate(ctx, accessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
	}

	access, err := pkgauth.MintAccessToken(s.jwtCfg, now, pkgauth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		JTI:      accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &TokenPairDTO{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    s.jwtCfg.ExpirationMinutes * 60,
		User:         NewStaffDTO(user),
	}, nil
}
