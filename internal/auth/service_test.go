package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/internal/staff"
	pkgauth "github.com/harborview-hotels/frontdesk-backend/pkg/auth"
	"github.com/harborview-hotels/frontdesk-backend/pkg/auth/session"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ParseAccessToken checks expiry against the wall clock, so the frozen
// service clock has to sit near now for minted tokens to verify.
var fixedNow = time.Now().UTC().Truncate(time.Second)

var testJWTConfig = config.JWTConfig{
	Secret:                 "test-secret",
	Issuer:                 "frontdesk-test",
	ExpirationMinutes:      15,
	RefreshTokenTTLMinutes: 60,
}

// staff_users carries a postgres-only column default, so the table is created
// by hand here instead of AutoMigrate.
const staffUsersDDL = `CREATE TABLE staff_users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'staff',
	is_active INTEGER NOT NULL DEFAULT 1,
	last_login_at DATETIME,
	created_at DATETIME,
	updated_at DATETIME
)`

type fakeSessions struct {
	tokens  map[string]string
	counter int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[string]string{}}
}

func (f *fakeSessions) Generate(_ context.Context, accessID string) (string, error) {
	f.counter++
	token := "refresh-" + accessID
	f.tokens[accessID] = token
	return token, nil
}

func (f *fakeSessions) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.tokens[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.tokens, oldAccessID)
	newID := session.NewAccessID()
	token := "refresh-" + newID
	f.tokens[newID] = token
	return newID, token, nil
}

func (f *fakeSessions) Revoke(_ context.Context, accessID string) error {
	delete(f.tokens, accessID)
	return nil
}

type fakeLimiter struct {
	counts map[string]int64
}

func (f *fakeLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	if f.counts == nil {
		f.counts = map[string]int64{}
	}
	f.counts[scope]++
	return f.counts[scope] <= limit, f.counts[scope], nil
}

func newTestService(t *testing.T) (Service, *fakeSessions, *gorm.DB) {
	t.Helper()
	dsn := "file:auth_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.Exec(staffUsersDDL).Error; err != nil {
		t.Fatalf("create staff_users: %v", err)
	}

	sessions := newFakeSessions()
	svc := newService(
		staff.NewRepository(conn),
		sessions,
		&fakeLimiter{},
		testJWTConfig,
		config.AuthRateLimitConfig{LoginWindow: time.Minute, LoginEmailLimit: 3, LoginIPLimit: 10},
		config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 8, ArgonKeyLen: 16},
		clock.Fixed(fixedNow),
	)
	return svc, sessions, conn
}

func registerStaff(t *testing.T, svc Service, email string) *StaffDTO {
	t.Helper()
	dto, err := svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Username: "desk_" + uuid.NewString()[:8],
		Password: "correct horse",
		Role:     enums.StaffRoleStaff,
	})
	require.NoError(t, err)
	return dto
}

func TestLoginIssuesTokenPair(t *testing.T) {
	t.Parallel()

	svc, sessions, conn := newTestService(t)
	ctx := context.Background()
	created := registerStaff(t, svc, "desk@harborview.test")

	pair, err := svc.Login(ctx, LoginInput{Email: "Desk@Harborview.test", Password: "correct horse", IP: "10.0.0.1"})
	require.NoError(t, err)
	require.Equal(t, "Bearer", pair.TokenType)
	require.Equal(t, 15*60, pair.ExpiresIn)
	require.Equal(t, created.ID, pair.User.ID)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.ID, claims.UserID)
	require.Equal(t, enums.StaffRoleStaff, claims.Role)
	require.Equal(t, "refresh-"+claims.ID, pair.RefreshToken)
	require.Contains(t, sessions.tokens, claims.ID)

	var lastLogin sql.NullTime
	require.NoError(t, conn.Raw("SELECT last_login_at FROM staff_users WHERE id = ?", created.ID).Scan(&lastLogin).Error)
	require.True(t, lastLogin.Valid)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerStaff(t, svc, "desk@harborview.test")

	_, err := svc.Login(ctx, LoginInput{Email: "desk@harborview.test", Password: "wrong"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@harborview.test", Password: "whatever"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	t.Parallel()

	svc, _, conn := newTestService(t)
	ctx := context.Background()
	created := registerStaff(t, svc, "desk@harborview.test")
	require.NoError(t, conn.Exec("UPDATE staff_users SET is_active = 0 WHERE id = ?", created.ID).Error)

	_, err := svc.Login(ctx, LoginInput{Email: "desk@harborview.test", Password: "correct horse"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeForbidden, typed.Code())
}

func TestLoginRateLimitsPerEmail(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerStaff(t, svc, "desk@harborview.test")

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, LoginInput{Email: "desk@harborview.test", Password: "wrong"})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	}

	_, err := svc.Login(ctx, LoginInput{Email: "desk@harborview.test", Password: "correct horse"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeRateLimit, typed.Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()
	registerStaff(t, svc, "desk@harborview.test")

	pair, err := svc.Login(ctx, LoginInput{Email: "desk@harborview.test", Password: "correct horse"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, rotated.AccessToken)
	require.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	// The old refresh token is spent.
	_, err = svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	// The rotated pair keeps working.
	_, err = svc.Refresh(ctx, rotated.AccessToken, rotated.RefreshToken)
	require.NoError(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	svc, sessions, _ := newTestService(t)
	ctx := context.Background()
	registerStaff(t, svc, "desk@harborview.test")

	pair, err := svc.Login(ctx, LoginInput{Email: "desk@harborview.test", Password: "correct horse"})
	require.NoError(t, err)
	require.Len(t, sessions.tokens, 1)

	require.NoError(t, svc.Logout(ctx, pair.AccessToken))
	require.Empty(t, sessions.tokens)

	_, err = svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Username: "x", Password: "long enough"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.test", Username: "x", Password: "short"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	registerStaff(t, svc, "dup@harborview.test")
	_, err = svc.Register(ctx, RegisterInput{Email: "dup@harborview.test", Username: "other", Password: "long enough"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeConflict, typed.Code())
}
