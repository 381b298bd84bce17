package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harborview-hotels/frontdesk-backend/api/responses"
	"github.com/harborview-hotels/frontdesk-backend/api/validators"
	booking "github.com/harborview-hotels/frontdesk-backend/internal/bookings"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

type createBookingRequest struct {
	GuestID        string `json:"guest_id" validate:"required"`
	RoomNumber     string `json:"room_number" validate:"required"`
	CheckInDate    string `json:"check_in_date" validate:"required"`
	CheckOutDate   string `json:"check_out_date" validate:"required"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
}

// BookingCreate registers a reservation for a future stay.
func BookingCreate(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createBookingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		checkIn, err := parseDate(body.CheckInDate, "check_in_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		checkOut, err := parseDate(body.CheckOutDate, "check_out_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Create(r.Context(), booking.CreateBookingInput{
			GuestID:        body.GuestID,
			RoomNumber:     body.RoomNumber,
			CheckInDate:    checkIn,
			CheckOutDate:   checkOut,
			NumberOfGuests: body.NumberOfGuests,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// BookingCancel cancels a confirmed reservation and frees its room hold.
func BookingCancel(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Cancel(r.Context(), chi.URLParam(r, "bookingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// BookingGet returns one reservation.
func BookingGet(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Get(r.Context(), chi.URLParam(r, "bookingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// BookingList returns reservations created inside the requested window.
func BookingList(svc booking.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTimeFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseDate(value, field string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "date must be formatted YYYY-MM-DD").
			WithDetails(map[string]string{"field": field})
	}
	return parsed, nil
}
