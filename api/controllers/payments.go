package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/harborview-hotels/frontdesk-backend/api/middleware"
	"github.com/harborview-hotels/frontdesk-backend/api/responses"
	"github.com/harborview-hotels/frontdesk-backend/api/validators"
	payment "github.com/harborview-hotels/frontdesk-backend/internal/payments"
	"github.com/harborview-hotels/frontdesk-backend/pkg/enums"
	pkgerrors "github.com/harborview-hotels/frontdesk-backend/pkg/errors"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

type recordPaymentRequest struct {
	BookingID     string          `json:"booking_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Method        string          `json:"method" validate:"required"`
	Status        string          `json:"status" validate:"omitempty"`
	Type          string          `json:"type" validate:"omitempty"`
	TransactionID *string         `json:"transaction_id" validate:"omitempty,max=128"`
	DueDate       *string         `json:"due_date"`
	Description   string          `json:"description" validate:"omitempty,max=512"`
}

// PaymentRecord appends a row to the payment ledger and reconciles the booking.
func PaymentRecord(svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body recordPaymentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(body.Method)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid method"))
			return
		}

		input := payment.RecordInput{
			BookingID:     body.BookingID,
			Amount:        body.Amount,
			Method:        method,
			TransactionID: body.TransactionID,
			Description:   body.Description,
			CreatedBy:     middleware.UserIDFromContext(r.Context()),
		}

		if body.Status != "" {
			status, err := enums.ParsePaymentStatus(body.Status)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			input.Status = status
		}
		if body.Type != "" {
			paymentType, err := enums.ParsePaymentType(body.Type)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type"))
				return
			}
			input.Type = paymentType
		}
		if body.DueDate != nil && *body.DueDate != "" {
			due, err := parseDate(*body.DueDate, "due_date")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.DueDate = &due
		}
		if key := strings.TrimSpace(r.Header.Get("Idempotency-Key")); key != "" {
			input.IdempotencyKey = &key
		}

		result, err := svc.Record(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.Replayed {
			responses.WriteSuccess(w, result)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// PaymentBalance reports the running balance as of one ledger row.
func PaymentBalance(svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.BalanceAfter(r.Context(), chi.URLParam(r, "paymentId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PaymentList returns ledger rows inside the requested window.
func PaymentList(svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTimeFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var status *enums.PaymentStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := enums.ParsePaymentStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}

		result, err := svc.List(r.Context(), filter, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// PaymentListByBooking returns the ledger for one booking, oldest first.
func PaymentListByBooking(svc payment.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ListByBooking(r.Context(), chi.URLParam(r, "bookingId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
