package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harborview-hotels/frontdesk-backend/internal/auth"
	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	"github.com/harborview-hotels/frontdesk-backend/internal/frontdesk"
	guest "github.com/harborview-hotels/frontdesk-backend/internal/guests"
	payment "github.com/harborview-hotels/frontdesk-backend/internal/payments"
	report "github.com/harborview-hotels/frontdesk-backend/internal/reports"
	room "github.com/harborview-hotels/frontdesk-backend/internal/rooms"
	pkgAuth "github.com/harborview-hotels/frontdesk-backend/pkg/auth"
	"github.com/harborview-hotels/frontdesk-backend/pkg/auth/session"
	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/harborview-hotels/frontdesk-backend/pkg/pagination"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, input auth.LoginInput) (*auth.TokenPairDTO, error) {
	return &auth.TokenPairDTO{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*auth.TokenPairDTO, error) {
	return &auth.TokenPairDTO{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessToken string) error {
	return nil
}

func (stubAuthService) Register(ctx context.Context, input auth.RegisterInput) (*auth.StaffDTO, error) {
	return &auth.StaffDTO{}, nil
}

type stubRoomService struct{}

func (stubRoomService) Create(ctx context.Context, input room.CreateRoomInput) (*room.RoomDTO, error) {
	return &room.RoomDTO{}, nil
}

func (stubRoomService) Update(ctx context.Context, roomNumber string, input room.UpdateRoomInput) (*room.RoomDTO, error) {
	return &room.RoomDTO{}, nil
}

func (stubRoomService) Delete(ctx context.Context, roomNumber string) error {
	return nil
}

func (stubRoomService) SetStatus(ctx context.Context, roomNumber string, status enums.RoomStatus) (*room.RoomDTO, error) {
	return &room.RoomDTO{}, nil
}

func (stubRoomService) Get(ctx context.Context, roomNumber string) (*room.RoomDTO, error) {
	return &room.RoomDTO{}, nil
}

func (stubRoomService) List(ctx context.Context) (*room.RoomListDTO, error) {
	return &room.RoomListDTO{}, nil
}

func (stubRoomService) ListByStatus(ctx context.Context, status enums.RoomStatus) ([]room.RoomDTO, error) {
	return nil, nil
}

type stubGuestService struct{}

func (stubGuestService) FindOrCreate(ctx context.Context, input guest.FindOrCreateInput) (*guest.GuestDTO, error) {
	return &guest.GuestDTO{}, nil
}

func (stubGuestService) SetActive(ctx context.Context, guestID string, active bool) (*guest.GuestDTO, error) {
	return &guest.GuestDTO{}, nil
}

func (stubGuestService) SetVIP(ctx context.Context, guestID string, vip bool) (*guest.GuestDTO, error) {
	return &guest.GuestDTO{}, nil
}

func (stubGuestService) Search(ctx context.Context, query string) ([]guest.GuestDTO, error) {
	return nil, nil
}

func (stubGuestService) Get(ctx context.Context, guestID string) (*guest.GuestDetailDTO, error) {
	return &guest.GuestDetailDTO{}, nil
}

func (stubGuestService) List(ctx context.Context, filter timefilter.Filter, page pagination.Params) (*guest.GuestListDTO, error) {
	return &guest.GuestListDTO{}, nil
}

type stubBookingService struct{}

func (stubBookingService) Create(ctx context.Context, input booking.CreateBookingInput) (*booking.BookingDTO, error) {
	return &booking.BookingDTO{}, nil
}

func (stubBookingService) Cancel(ctx context.Context, bookingID string) (*booking.BookingDTO, error) {
	return &booking.BookingDTO{}, nil
}

func (stubBookingService) Get(ctx context.Context, bookingID string) (*booking.BookingDTO, error) {
	return &booking.BookingDTO{}, nil
}

func (stubBookingService) List(ctx context.Context, filter timefilter.Filter) ([]booking.BookingDTO, error) {
	return nil, nil
}

type stubDeskService struct{}

func (stubDeskService) CheckIn(ctx context.Context, input frontdesk.CheckInInput) (*frontdesk.CheckInDTO, error) {
	return &frontdesk.CheckInDTO{}, nil
}

func (stubDeskService) CheckInFromBooking(ctx context.Context, bookingID string, input frontdesk.ArrivalInput) (*frontdesk.CheckInDTO, error) {
	return &frontdesk.CheckInDTO{}, nil
}

func (stubDeskService) CheckOut(ctx context.Context, roomNumber string) (*frontdesk.CheckOutDTO, error) {
	return &frontdesk.CheckOutDTO{}, nil
}

func (stubDeskService) ComputeBill(ctx context.Context, roomNumber string) (*frontdesk.BillDTO, error) {
	return &frontdesk.BillDTO{}, nil
}

type stubPaymentService struct{}

func (stubPaymentService) Record(ctx context.Context, input payment.RecordInput) (*payment.PaymentDTO, error) {
	return &payment.PaymentDTO{}, nil
}

func (stubPaymentService) BalanceAfter(ctx context.Context, paymentID string) (*payment.BalanceDTO, error) {
	return &payment.BalanceDTO{}, nil
}

func (stubPaymentService) List(ctx context.Context, filter timefilter.Filter, status *enums.PaymentStatus) ([]payment.PaymentDTO, error) {
	return nil, nil
}

func (stubPaymentService) ListByBooking(ctx context.Context, bookingID string) ([]payment.PaymentDTO, error) {
	return nil, nil
}

type stubReportService struct{}

func (stubReportService) Dashboard(ctx context.Context) (*report.DashboardDTO, error) {
	return &report.DashboardDTO{}, nil
}

func (stubReportService) RevenueInRange(ctx context.Context, from, to time.Time) (*report.RevenueDTO, error) {
	return &report.RevenueDTO{}, nil
}

func (stubReportService) PaymentStanding(ctx context.Context) (*report.PaymentStandingDTO, error) {
	return &report.PaymentStandingDTO{}, nil
}

func (stubReportService) RecentActivity(ctx context.Context, window time.Duration) ([]report.ActivityDTO, error) {
	return nil, nil
}

type stubExportService struct{}

func (stubExportService) WriteBookingsCSV(ctx context.Context, w io.Writer, filter timefilter.Filter) error {
	_, err := w.Write([]byte("booking_id\n"))
	return err
}

func (stubExportService) WritePaymentsCSV(ctx context.Context, w io.Writer, filter timefilter.Filter) error {
	_, err := w.Write([]byte("payment_id\n"))
	return err
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil, // *redis.Client
		nil, // *metrics.HTTPMetrics
		stubSessionManager{},
		stubAuthService{},
		stubRoomService{},
		stubGuestService{},
		stubBookingService{},
		stubDeskService{},
		stubPaymentService{},
		stubReportService{},
		stubExportService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.StaffRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupAcceptsValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRoomMutationsRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"room_number":"101","room_type":"standard","capacity":2,"price_per_night":"99.50"}`

	staff := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(body))
	staff.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, staff)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff room create got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodPost, "/api/v1/rooms", strings.NewReader(body))
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin room create got %d", resp.Code)
	}
}

func TestRegisterHiddenInProduction(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = "prod"
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound && resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected register to be unrouted in prod, got %d", resp.Code)
	}
}

func TestExportSetsAttachmentHeaders(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exports/bookings.csv", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.StaffRoleStaff))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("expected text/csv got %q", got)
	}
	if got := resp.Header().Get("Content-Disposition"); !strings.Contains(got, "bookings_") {
		t.Fatalf("expected attachment disposition got %q", got)
	}
	if !strings.Contains(resp.Body.String(), "booking_id") {
		t.Fatalf("expected csv header row, got %q", resp.Body.String())
	}
}
