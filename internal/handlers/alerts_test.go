package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ukydev/transit-fleet/internal/models"
)

func TestAlertHandler_List(t *testing.T) {
	sample := []models.Alert{{ID: 1, VehicleID: 2, Kind: models.AlertMaintenance, Status: models.AlertActive}}

	tests := []struct {
		name       string
		query      string
		setup      func(m *MockAlertService)
		wantStatus int
	}{
		{
			name:       "all",
			setup:      func(m *MockAlertService) { m.On("AllAlerts", mock.Anything).Return(sample, nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "by vehicle",
			query:      "?vehicle_id=2",
			setup:      func(m *MockAlertService) { m.On("AlertsByVehicle", mock.Anything, int64(2)).Return(sample, nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:  "by kind",
			query: "?kind=maintenance",
			setup: func(m *MockAlertService) {
				m.On("AlertsByKind", mock.Anything, models.AlertMaintenance).Return(sample, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "active",
			query:      "?status=active",
			setup:      func(m *MockAlertService) { m.On("ActiveAlerts", mock.Anything).Return(sample, nil) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad vehicle id",
			query:      "?vehicle_id=x",
			setup:      func(m *MockAlertService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad kind",
			query:      "?kind=flat_tyre",
			setup:      func(m *MockAlertService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAlertService)
			tt.setup(svc)
			h := NewAlertHandler(svc)

			w := httptest.NewRecorder()
			h.List(w, httptest.NewRequest(http.MethodGet, "/api/alerts"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestAlertHandler_Process(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		action     string
		setup      func(m *MockAlertService)
		wantStatus int
	}{
		{
			name:   "acknowledge",
			id:     "5",
			action: "acknowledge",
			setup: func(m *MockAlertService) {
				m.On("ProcessAlert", mock.Anything, int64(5), "acknowledge").
					Return(&models.Alert{ID: 5, Status: models.AlertAcknowledged}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown action",
			id:     "5",
			action: "snooze",
			setup: func(m *MockAlertService) {
				m.On("ProcessAlert", mock.Anything, int64(5), "snooze").Return(nil, models.ErrInvalidAction)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "already resolved",
			id:     "5",
			action: "escalate",
			setup: func(m *MockAlertService) {
				m.On("ProcessAlert", mock.Anything, int64(5), "escalate").Return(nil, models.ErrAlertResolved)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "missing alert",
			id:     "99",
			action: "resolve",
			setup: func(m *MockAlertService) {
				m.On("ProcessAlert", mock.Anything, int64(99), "resolve").Return(nil, models.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad id",
			id:         "0",
			action:     "resolve",
			setup:      func(m *MockAlertService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAlertService)
			tt.setup(svc)
			h := NewAlertHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/alerts/"+tt.id+"/"+tt.action, nil)
			req.SetPathValue("id", tt.id)
			req.SetPathValue("action", tt.action)
			w := httptest.NewRecorder()
			h.Process(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}
