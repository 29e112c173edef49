package fleet

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/transit-fleet/internal/models"
)

// StartMaintenance takes a vehicle out of service for purpose.
func (s *Service) StartMaintenance(ctx context.Context, id int64, purpose models.MaintenancePurpose, cost float64) (int64, error) {
	if !models.IsValidPurpose(purpose) {
		return 0, fmt.Errorf("%q: %w", purpose, models.ErrInvalidPurpose)
	}
	unlock := s.locks.Lock(id)
	defer unlock()

	recID, err := s.store.StartMaintenance(ctx, models.MaintenanceRecord{
		VehicleID: id,
		Purpose:   purpose,
		Cost:      cost,
		StartTime: s.now(),
	})
	if err != nil {
		return 0, err
	}

	log.WithFields(log.Fields{
		"vehicle_id":     id,
		"maintenance_id": recID,
		"purpose":        purpose,
	}).Info("Maintenance started")
	return recID, nil
}

// EndMaintenance returns a vehicle to service with fresh components.
func (s *Service) EndMaintenance(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	v, err := s.store.FindVehicleByID(ctx, id)
	if err != nil {
		return err
	}
	p, err := profileFor(v.Kind())
	if err != nil {
		return err
	}
	if err := s.store.EndMaintenance(ctx, id); err != nil {
		return err
	}
	if err := p.afterMaintenance(ctx, s.store, id); err != nil {
		return fmt.Errorf("refresh %s components: %w", v.Kind(), err)
	}

	log.WithFields(log.Fields{"vehicle_id": id, "kind": v.Kind()}).Info("Maintenance finished")
	return nil
}

// OngoingMaintenance lists maintenance that has not finished yet.
func (s *Service) OngoingMaintenance(ctx context.Context) ([]models.MaintenanceRecord, error) {
	return s.store.FindOngoingMaintenance(ctx)
}
