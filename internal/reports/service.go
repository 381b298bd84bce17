package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harborview-hotels/frontdesk-backend/internal/frontdesk"
	room "github.com/harborview-hotels/frontdesk-backend/internal/rooms"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/db/models"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
)

const (
	// DefaultActivityWindow bounds the recent-activity feed when the caller
	// does not narrow it.
	DefaultActivityWindow = 6 * time.Hour

	activityCap = 50
)

// Service exposes the read-only reporting queries.
type Service interface {
	Dashboard(ctx context.Context) (*DashboardDTO, error)
	RevenueInRange(ctx context.Context, from, to time.Time) (*RevenueDTO, error)
	PaymentStanding(ctx context.Context) (*PaymentStandingDTO, error)
	RecentActivity(ctx context.Context, window time.Duration) ([]ActivityDTO, error)
}

type service struct {
	reports  *Repository
	rooms    *room.Repository
	checkIns *frontdesk.Repository
	clock    clock.Clock
}

// NewService constructs the reporting service.
func NewService(reports *Repository, rooms *room.Repository, checkIns *frontdesk.Repository, clk clock.Clock) (Service, error) {
	if reports == nil {
		return nil, fmt.Errorf("report repository required")
	}
	if rooms == nil {
		return nil, fmt.Errorf("room repository required")
	}
	if checkIns == nil {
		return nil, fmt.Errorf("check-in repository required")
	}
	if clk == nil {
		clk = clock.System()
	}
	return &service{reports: reports, rooms: rooms, checkIns: checkIns, clock: clk}, nil
}

// Dashboard assembles the landing summary in one pass.
func (s *service) Dashboard(ctx context.Context) (*DashboardDTO, error) {
	now := s.clock.Now()
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	counts, err := s.rooms.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count rooms")
	}
	currentGuests, err := s.checkIns.CountOpen(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open check-ins")
	}
	todayRevenue, err := s.reports.RevenueOn(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum today revenue")
	}
	totalGuests, err := s.reports.CountGuests(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count guests")
	}
	totalBookings, err := s.reports.CountBookings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count bookings")
	}
	todayCheckIns, err := s.reports.CountCheckInsBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count today check-ins")
	}

	occupancy := 0.0
	if counts.Total > 0 {
		occupancy = float64(counts.Occupied) / float64(counts.Total) * 100
	}

	return &DashboardDTO{
		Rooms: RoomTotalsDTO{
			Total:        counts.Total,
			Available:    counts.Available,
			Occupied:     counts.Occupied,
			Maintenance:  counts.Maintenance,
			OutOfService: counts.OutOfService,
		},
		OccupancyRate: occupancy,
		TodayRevenue:  todayRevenue,
		CurrentGuests: currentGuests,
		TotalGuests:   totalGuests,
		TotalBookings: totalBookings,
		TodayCheckIns: todayCheckIns,
		GeneratedAt:   now,
	}, nil
}

// RevenueInRange sums booked revenue between from (inclusive) and to
// (exclusive) with a per-day breakdown.
func (s *service) RevenueInRange(ctx context.Context, from, to time.Time) (*RevenueDTO, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range end must be after start")
	}
	total, rows, err := s.reports.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	daily := make([]DailyRevenueDTO, 0, len(rows))
	for _, row := range rows {
		daily = append(daily, DailyRevenueDTO{Date: row.Day, Total: row.Total})
	}
	return &RevenueDTO{From: from, To: to, Total: total, Daily: daily}, nil
}

// PaymentStanding buckets every booking by settlement state.
func (s *service) PaymentStanding(ctx context.Context) (*PaymentStandingDTO, error) {
	standing, err := s.reports.CountPaymentStanding(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count payment standing")
	}
	return &PaymentStandingDTO{
		FullyPaid:     standing.FullyPaid,
		PartiallyPaid: standing.PartiallyPaid,
		Unpaid:        standing.Unpaid,
	}, nil
}

// RecentActivity merges bookings, arrivals, and departures inside the trailing
// window, newest first, capped.
func (s *service) RecentActivity(ctx context.Context, window time.Duration) ([]ActivityDTO, error) {
	if window <= 0 {
		window = DefaultActivityWindow
	}
	since := s.clock.Now().Add(-window)

	checkIns, err := s.reports.RecentCheckIns(ctx, since, activityCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent check-ins")
	}
	checkOuts, err := s.reports.RecentCheckOuts(ctx, since, activityCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent check-outs")
	}
	bookings, err := s.reports.RecentBookings(ctx, since, activityCap)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent bookings")
	}

	feed := make([]ActivityDTO, 0, len(checkIns)+len(checkOuts)+len(bookings))
	for i := range checkIns {
		feed = append(feed, activityFromCheckIn(&checkIns[i], ActivityCheckIn, checkIns[i].ActualCheckIn))
	}
	for i := range checkOuts {
		if checkOuts[i].ActualCheckOut == nil {
			continue
		}
		feed = append(feed, activityFromCheckIn(&checkOuts[i], ActivityCheckOut, *checkOuts[i].ActualCheckOut))
	}
	for i := range bookings {
		entry := ActivityDTO{
			Kind:       ActivityBooking,
			At:         bookings[i].CreatedAt,
			BookingID:  bookings[i].BookingID,
			RoomNumber: bookings[i].RoomNumber,
		}
		if bookings[i].Guest != nil {
			entry.GuestName = bookings[i].Guest.FullName()
		}
		feed = append(feed, entry)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].At.After(feed[j].At)
	})
	if len(feed) > activityCap {
		feed = feed[:activityCap]
	}
	return feed, nil
}

func activityFromCheckIn(checkIn *models.CheckIn, kind string, at time.Time) ActivityDTO {
	entry := ActivityDTO{
		Kind:      kind,
		At:        at,
		BookingID: checkIn.BookingID,
	}
	if checkIn.Booking != nil {
		entry.RoomNumber = checkIn.Booking.RoomNumber
		if checkIn.Booking.Guest != nil {
			entry.GuestName = checkIn.Booking.Guest.FullName()
		}
	}
	return entry
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
