package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/harborview-hotels/frontdesk-backend/api/responses"
	"github.com/harborview-hotels/frontdesk-backend/api/validators"
	guest "github.com/harborview-hotels/frontdesk-backend/internal/guests"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
	"github.com/harborview-hotels/frontdesk-backend/pkg/pagination"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
)

type guestRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name" validate:"required,max=64"`
	Phone     string `json:"phone" validate:"required,max=32"`
	Address   string `json:"address" validate:"omitempty,max=256"`
}

type guestFlagRequest struct {
	Value bool `json:"value"`
}

// GuestRegister resolves or creates a guest record by email.
func GuestRegister(svc guest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body guestRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.FindOrCreate(r.Context(), guest.FindOrCreateInput{
			Email:     body.Email,
			FirstName: body.FirstName,
			LastName:  body.LastName,
			Phone:     body.Phone,
			Address:   body.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GuestSearch matches guests by name, email, or phone fragment.
func GuestSearch(svc guest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := validators.SanitizeString(r.URL.Query().Get("q"), 128)
		result, err := svc.Search(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GuestGet returns one guest with stay statistics.
func GuestGet(svc guest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Get(r.Context(), chi.URLParam(r, "guestId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GuestList returns a page of guests registered within the requested window.
func GuestList(svc guest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTimeFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), filter, pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GuestSetActive toggles the active flag on a guest record.
func GuestSetActive(svc guest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body guestFlagRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SetActive(r.Context(), chi.URLParam(r, "guestId"), body.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GuestSetVIP toggles the VIP flag on a guest record.
func GuestSetVIP(svc guest.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body guestFlagRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SetVIP(r.Context(), chi.URLParam(r, "guestId"), body.Value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func parseTimeFilter(r *http.Request) (timefilter.Filter, error) {
	raw := r.URL.Query().Get("filter")
	if raw == "" {
		return timefilter.All, nil
	}
	filter, err := timefilter.Parse(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid filter")
	}
	return filter, nil
}
