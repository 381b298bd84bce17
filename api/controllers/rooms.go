package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/harborview-hotels/frontdesk-backend/api/responses"
	"github.com/harborview-hotels/frontdesk-backend/api/validators"
	room "github.com/harborview-hotels/frontdesk-backend/internal/rooms"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

type createRoomRequest struct {
	RoomNumber    string          `json:"room_number" validate:"required,max=16"`
	RoomName      string          `json:"room_name" validate:"omitempty,max=128"`
	RoomType      string          `json:"room_type" validate:"required"`
	Capacity      int             `json:"capacity" validate:"required,min=1,max=16"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"required"`
	Amenities     string          `json:"amenities" validate:"omitempty,max=512"`
	Description   string          `json:"description" validate:"omitempty,max=1024"`
}

type updateRoomRequest struct {
	RoomName      *string          `json:"room_name" validate:"omitempty,max=128"`
	RoomType      *string          `json:"room_type"`
	Capacity      *int             `json:"capacity" validate:"omitempty,min=1,max=16"`
	PricePerNight *decimal.Decimal `json:"price_per_night"`
	Amenities     *string          `json:"amenities" validate:"omitempty,max=512"`
	Description   *string          `json:"description" validate:"omitempty,max=1024"`
}

type roomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RoomCreate registers a room in the inventory.
func RoomCreate(svc room.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createRoomRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roomType, err := enums.ParseRoomType(body.RoomType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid room_type"))
			return
		}

		result, err := svc.Create(r.Context(), room.CreateRoomInput{
			RoomNumber:    body.RoomNumber,
			RoomName:      body.RoomName,
			RoomType:      roomType,
			Capacity:      body.Capacity,
			PricePerNight: body.PricePerNight,
			Amenities:     body.Amenities,
			Description:   body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// RoomUpdate applies a partial update to a room.
func RoomUpdate(svc room.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateRoomRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := room.UpdateRoomInput{
			RoomName:      body.RoomName,
			Capacity:      body.Capacity,
			PricePerNight: body.PricePerNight,
			Amenities:     body.Amenities,
			Description:   body.Description,
		}
		if body.RoomType != nil {
			roomType, err := enums.ParseRoomType(*body.RoomType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid room_type"))
				return
			}
			input.RoomType = &roomType
		}

		result, err := svc.Update(r.Context(), chi.URLParam(r, "roomNumber"), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RoomDelete removes a room from the inventory. Deleting cascades to the
// room's bookings, check-ins, and payments, so the caller must acknowledge
// with confirm=true.
func RoomDelete(svc room.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("confirm") != "true" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(
				pkgerrors.CodeValidation,
				"deleting a room cascades to its bookings, check-ins, and payments; pass confirm=true to proceed",
			))
			return
		}
		if err := svc.Delete(r.Context(), chi.URLParam(r, "roomNumber")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{
			"status": "deleted",
			"note":   "dependent bookings, check-ins, and payments were removed",
		})
	}
}

// RoomSetStatus moves a room through the housekeeping state machine.
func RoomSetStatus(svc room.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body roomStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseRoomStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		result, err := svc.SetStatus(r.Context(), chi.URLParam(r, "roomNumber"), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RoomGet returns a single room.
func RoomGet(svc room.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Get(r.Context(), chi.URLParam(r, "roomNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// RoomList returns the full inventory, optionally narrowed by status.
func RoomList(svc room.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("status"); raw != "" {
			status, err := enums.ParseRoomStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			result, err := svc.ListByStatus(r.Context(), status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, result)
			return
		}

		result, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
