package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborview-hotels/frontdesk-backend/api/controllers"
	"github.com/harborview-hotels/frontdesk-backend/api/middleware"
	"github.com/harborview-hotels/frontdesk-backend/internal/auth"
	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	export "github.com/harborview-hotels/frontdesk-backend/internal/exports"
	"github.com/harborview-hotels/frontdesk-backend/internal/frontdesk"
	guest "github.com/harborview-hotels/frontdesk-backend/internal/guests"
	payment "github.com/harborview-hotels/frontdesk-backend/internal/payments"
	report "github.com/harborview-hotels/frontdesk-backend/internal/reports"
	room "github.com/harborview-hotels/frontdesk-backend/internal/rooms"
	"github.com/harborview-hotels/frontdesk-backend/pkg/auth/session"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/config"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/harborview-hotels/frontdesk-backend/pkg/metrics"
	"github.com/harborview-hotels/frontdesk-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	sessionManager session.AccessSessionChecker,
	authService auth.Service,
	roomService room.Service,
	guestService guest.Service,
	bookingService booking.Service,
	deskService frontdesk.Service,
	paymentService payment.Service,
	reportService report.Service,
	exportService export.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	// A typed nil *redis.Client must not reach the middlewares as a non-nil
	// interface.
	var idemStore redis.IdempotencyStore
	var rateStore interface {
		IncrWithTTL(context.Context, string, time.Duration) (int64, error)
	}
	var redisProbe interface {
		Ping(context.Context) error
	}
	if redisClient != nil {
		idemStore = redisClient
		rateStore = redisClient
		redisProbe = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisProbe))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.Post("/logout", controllers.AuthLogout(authService, logg))
		if !cfg.App.IsProd() {
			r.Post("/register", controllers.AuthRegister(authService, logg))
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/auth/me", controllers.StaffMe(logg))

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", controllers.RoomList(roomService, logg))
			r.Get("/{roomNumber}", controllers.RoomGet(roomService, logg))
			r.Get("/{roomNumber}/bill", controllers.Bill(deskService, logg))
			r.Put("/{roomNumber}/status", controllers.RoomSetStatus(roomService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole("admin", logg))
				r.Post("/", controllers.RoomCreate(roomService, logg))
				r.Patch("/{roomNumber}", controllers.RoomUpdate(roomService, logg))
				r.Delete("/{roomNumber}", controllers.RoomDelete(roomService, logg))
			})
		})

		r.Route("/guests", func(r chi.Router) {
			r.Post("/", controllers.GuestRegister(guestService, logg))
			r.Get("/", controllers.GuestList(guestService, logg))
			r.Get("/search", controllers.GuestSearch(guestService, logg))
			r.Get("/{guestId}", controllers.GuestGet(guestService, logg))
			r.Put("/{guestId}/active", controllers.GuestSetActive(guestService, logg))
			r.Put("/{guestId}/vip", controllers.GuestSetVIP(guestService, logg))
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", controllers.BookingCreate(bookingService, logg))
			r.Get("/", controllers.BookingList(bookingService, logg))
			r.Get("/{bookingId}", controllers.BookingGet(bookingService, logg))
			r.Post("/{bookingId}/cancel", controllers.BookingCancel(bookingService, logg))
			r.Post("/{bookingId}/check-in", controllers.CheckInFromBooking(deskService, logg))
			r.Get("/{bookingId}/payments", controllers.PaymentListByBooking(paymentService, logg))
		})

		r.Post("/check-in", controllers.CheckIn(deskService, logg))
		r.Post("/check-out/{roomNumber}", controllers.CheckOut(deskService, logg))

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", controllers.PaymentRecord(paymentService, logg))
			r.Get("/", controllers.PaymentList(paymentService, logg))
			r.Get("/{paymentId}/balance", controllers.PaymentBalance(paymentService, logg))
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/dashboard", controllers.ReportDashboard(reportService, logg))
			r.Get("/revenue", controllers.ReportRevenue(reportService, logg))
			r.Get("/payment-status", controllers.ReportPaymentStanding(reportService, logg))
			r.Get("/activity", controllers.ReportActivity(reportService, logg))
		})

		r.Route("/exports", func(r chi.Router) {
			r.Get("/bookings.csv", controllers.ExportBookingsCSV(exportService, clock.System(), logg))
			r.Get("/payments.csv", controllers.ExportPaymentsCSV(exportService, clock.System(), logg))
		})
	})

	return r
}
