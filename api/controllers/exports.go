package controllers

import (
	"fmt"
	"net/http"

	"github.com/harborview-hotels/frontdesk-backend/api/responses"
	export "github.com/harborview-hotels/frontdesk-backend/internal/exports"
	"github.com/harborview-hotels/frontdesk-backend/pkg/clock"
	"github.com/harborview-hotels/frontdesk-backend/pkg/logger"
)

// ExportBookingsCSV streams the booking register as a CSV attachment.
func ExportBookingsCSV(svc export.Service, clk clock.Clock, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTimeFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setCSVHeaders(w, export.AttachmentName("bookings", clk.Now()))
		if err := svc.WriteBookingsCSV(r.Context(), w, filter); err != nil {
			logCSVFailure(r, logg, "bookings", err)
		}
	}
}

// ExportPaymentsCSV streams the payment ledger as a CSV attachment.
func ExportPaymentsCSV(svc export.Service, clk clock.Clock, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseTimeFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setCSVHeaders(w, export.AttachmentName("payments", clk.Now()))
		if err := svc.WritePaymentsCSV(r.Context(), w, filter); err != nil {
			logCSVFailure(r, logg, "payments", err)
		}
	}
}

func setCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

// Headers are already on the wire when the writer fails mid-stream, so the
// error can only be logged, not returned to the client.
func logCSVFailure(r *http.Request, logg *logger.Logger, dataset string, err error) {
	if logg == nil {
		return
	}
	ctx := logg.WithField(r.Context(), "dataset", dataset)
	logg.Error(ctx, "csv export aborted", err)
}
