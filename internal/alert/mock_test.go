package alert

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/ukydev/transit-fleet/internal/models"
)

// MockAlertCollection is a mock implementation of db.AlertCollection
type MockAlertCollection struct {
	mock.Mock
}

func (m *MockAlertCollection) InsertAlert(ctx context.Context, a models.Alert) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAlertCollection) UpdateAlert(ctx context.Context, a models.Alert) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAlertCollection) FindAlertByID(ctx context.Context, id int64) (*models.Alert, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Alert), args.Error(1)
}

func (m *MockAlertCollection) FindActiveAlerts(ctx context.Context) ([]models.Alert, error) {
	args := m.Called(ctx)
	return alertsArg(args), args.Error(1)
}

func (m *MockAlertCollection) FindAlertsByVehicle(ctx context.Context, vehicleID int64) ([]models.Alert, error) {
	args := m.Called(ctx, vehicleID)
	return alertsArg(args), args.Error(1)
}

func (m *MockAlertCollection) FindAlertsByKind(ctx context.Context, kind models.AlertKind) ([]models.Alert, error) {
	args := m.Called(ctx, kind)
	return alertsArg(args), args.Error(1)
}

func (m *MockAlertCollection) FindAlerts(ctx context.Context) ([]models.Alert, error) {
	args := m.Called(ctx)
	return alertsArg(args), args.Error(1)
}

func alertsArg(args mock.Arguments) []models.Alert {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Alert)
}

// recorder is a listener that remembers every call.
type recorder struct {
	kinds  []models.AlertKind
	alerts []models.Alert
	err    error
}

func (r *recorder) OnAlert(_ context.Context, kind models.AlertKind, a models.Alert) error {
	r.kinds = append(r.kinds, kind)
	r.alerts = append(r.alerts, a)
	return r.err
}
