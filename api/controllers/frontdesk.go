package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/harborview-hotels/frontdesk-backend/api/responses"
	"github.com/harborview-hotels/frontdesk-backend/api/validators"
	"github.com/harborview-hotels/frontdesk-backend/internal/frontdesk"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

type checkInRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"first_name" validate:"required,max=64"`
	LastName       string `json:"last_name" validate:"required,max=64"`
	Phone          string `json:"phone" validate:"required,max=32"`
	RoomNumber     string `json:"room_number" validate:"required"`
	CheckInDate    string `json:"check_in_date" validate:"omitempty"`
	CheckOutDate   string `json:"check_out_date" validate:"required"`
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
	IDProofType    string `json:"id_proof_type" validate:"required"`
	IDProofNumber  string `json:"id_proof_number" validate:"required,max=64"`
}

type arrivalRequest struct {
	NumberOfGuests int    `json:"number_of_guests" validate:"required,min=1"`
	IDProofType    string `json:"id_proof_type" validate:"required"`
	IDProofNumber  string `json:"id_proof_number" validate:"required,max=64"`
}

// CheckIn handles a walk-in arrival: guest resolution, booking, and room claim.
func CheckIn(svc frontdesk.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkInRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		checkOut, err := parseDate(body.CheckOutDate, "check_out_date")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var checkIn time.Time
		if body.CheckInDate != "" {
			if checkIn, err = parseDate(body.CheckInDate, "check_in_date"); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		proofType, err := enums.ParseIDProofType(body.IDProofType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id_proof_type"))
			return
		}

		result, err := svc.CheckIn(r.Context(), frontdesk.CheckInInput{
			Email:          body.Email,
			FirstName:      body.FirstName,
			LastName:       body.LastName,
			Phone:          body.Phone,
			RoomNumber:     body.RoomNumber,
			CheckInDate:    checkIn,
			CheckOutDate:   checkOut,
			NumberOfGuests: body.NumberOfGuests,
			IDProofType:    proofType,
			IDProofNumber:  body.IDProofNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CheckInFromBooking converts a confirmed reservation into an open stay.
func CheckInFromBooking(svc frontdesk.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body arrivalRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		proofType, err := enums.ParseIDProofType(body.IDProofType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id_proof_type"))
			return
		}

		result, err := svc.CheckInFromBooking(r.Context(), chi.URLParam(r, "bookingId"), frontdesk.ArrivalInput{
			NumberOfGuests: body.NumberOfGuests,
			IDProofType:    proofType,
			IDProofNumber:  body.IDProofNumber,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// CheckOut settles the open stay for a room and frees it.
func CheckOut(svc frontdesk.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.CheckOut(r.Context(), chi.URLParam(r, "roomNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// Bill computes the running bill for a room's open stay.
func Bill(svc frontdesk.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ComputeBill(r.Context(), chi.URLParam(r, "roomNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
