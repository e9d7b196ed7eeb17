// Package occupancy holds the occupancy store and the tenant lifecycle
// manager. The store maintains the derived status field on properties; the
// manager routes every tenant mutation through it so the status can never be
// silently forgotten.
package occupancy

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hillgate/server/internal/models"
)

// Store maintains the derived occupancy status of properties.
type Store struct {
	logger *logrus.Logger
}

// NewStore creates a new occupancy store.
func NewStore(logger *logrus.Logger) *Store {
	return &Store{logger: logger}
}

// RecomputeStatus derives and persists the status of a property: occupied
// while at least one non-archived tenant is assigned to it, vacant otherwise.
// A property with zero tenants is vacant. The write happens on tx so it
// commits or rolls back together with the tenant mutation that triggered it.
func (s *Store) RecomputeStatus(tx *gorm.DB, propertyID uint) (string, error) {
	var active int64
	if err := tx.Model(&models.Tenant{}).
		Where("property_id = ? AND archived = ?", propertyID, false).
		Count(&active).Error; err != nil {
		return "", fmt.Errorf("failed to count active tenants: %w", err)
	}

	status := models.StatusVacant
	if active > 0 {
		status = models.StatusOccupied
	}

	if err := tx.Model(&models.Property{}).
		Where("id = ?", propertyID).
		Update("status", status).Error; err != nil {
		return "", fmt.Errorf("failed to update property status: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"property_id":    propertyID,
		"active_tenants": active,
		"status":         status,
	}).Debug("Recomputed property status")

	return status, nil
}
