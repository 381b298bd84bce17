package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomTotalsDTO carries the per-status room counts.
type RoomTotalsDTO struct {
	Total        int64 `json:"total"`
	Available    int64 `json:"available"`
	Occupied     int64 `json:"occupied"`
	Maintenance  int64 `json:"maintenance"`
	OutOfService int64 `json:"out_of_service"`
}

// DashboardDTO is the front-desk landing summary.
type DashboardDTO struct {
	Rooms         RoomTotalsDTO   `json:"rooms"`
	OccupancyRate float64         `json:"occupancy_rate"`
	TodayRevenue  decimal.Decimal `json:"today_revenue"`
	CurrentGuests int64           `json:"current_guests"`
	TotalGuests   int64           `json:"total_guests"`
	TotalBookings int64           `json:"total_bookings"`
	TodayCheckIns int64           `json:"today_check_ins"`
	GeneratedAt   time.Time       `json:"generated_at"`
}

// DailyRevenueDTO is one day's booked revenue.
type DailyRevenueDTO struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// RevenueDTO reports booked revenue over a range with the daily breakdown.
type RevenueDTO struct {
	From  time.Time         `json:"from"`
	To    time.Time         `json:"to"`
	Total decimal.Decimal   `json:"total"`
	Daily []DailyRevenueDTO `json:"daily"`
}

// PaymentStandingDTO buckets bookings by settlement state.
type PaymentStandingDTO struct {
	FullyPaid     int64 `json:"fully_paid"`
	PartiallyPaid int64 `json:"partially_paid"`
	Unpaid        int64 `json:"unpaid"`
}

// Activity kinds surfaced by RecentActivity.
const (
	ActivityBooking  = "booking"
	ActivityCheckIn  = "check_in"
	ActivityCheckOut = "check_out"
)

// ActivityDTO is one entry in the recent-activity feed.
type ActivityDTO struct {
	Kind       string    `json:"kind"`
	At         time.Time `json:"at"`
	BookingID  string    `json:"booking_id"`
	RoomNumber string    `json:"room_number,omitempty"`
	GuestName  string    `json:"guest_name,omitempty"`
}
