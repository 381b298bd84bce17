package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	guest "github.com/harborview-hotels/frontdesk-backend/internal/guests"
	"github.com/harborview-hotels/frontdesk-backend/pkg/pagination"
	"github.com/harborview-hotels/frontdesk-backend/pkg/timefilter"
)

type listCapturingGuestService struct {
	guest.Service

	filter timefilter.Filter
	page   pagination.Params
}

func (s *listCapturingGuestService) List(ctx context.Context, filter timefilter.Filter, page pagination.Params) (*guest.GuestListDTO, error) {
	s.filter = filter
	s.page = page
	return &guest.GuestListDTO{Items: []guest.GuestDTO{}, Cursor: "next"}, nil
}

func TestGuestListForwardsFilterAndPage(t *testing.T) {
	t.Parallel()

	svc := &listCapturingGuestService{}
	handler := GuestList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/guests?filter=month&limit=10&cursor=abc", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, timefilter.Month, svc.filter)
	require.Equal(t, 10, svc.page.Limit)
	require.Equal(t, "abc", svc.page.Cursor)

	var envelope struct {
		Data guest.GuestListDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "next", envelope.Data.Cursor)
}

func TestGuestListRejectsBadQuery(t *testing.T) {
	t.Parallel()

	svc := &listCapturingGuestService{}
	handler := GuestList(svc, nil)

	for _, target := range []string{
		"/api/v1/guests?filter=fortnight",
		"/api/v1/guests?limit=abc",
		"/api/v1/guests?limit=1000",
	} {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, target, nil))
		require.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
