package occupancy

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hillgate/server/internal/apperrors"
	"hillgate/server/internal/models"
)

// PropertyInput carries the already-validated fields for creating or updating
// a property.
type PropertyInput struct {
	Cluster string
	Villa   string
	Floors  string
	Type    string
	Status  string
}

// CreateProperty registers a new housing unit. The status is forced to vacant
// regardless of input; occupancy is derived, never chosen.
func (m *Manager) CreateProperty(input PropertyInput) (*models.Property, error) {
	property := models.Property{
		Cluster: input.Cluster,
		Villa:   input.Villa,
		Floors:  input.Floors,
		Type:    input.Type,
		Status:  models.StatusVacant,
	}
	if property.Floors == "" {
		property.Floors = models.FloorsTwo
	}
	if property.Type == "" {
		property.Type = models.TypeIndividuals
	}

	if err := m.db.Create(&property).Error; err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	m.logger.WithField("property_id", property.ID).Info("Property created")
	return &property, nil
}

// UpdateProperty updates a property's location and categorical fields.
// Tenants keep the cluster/villa snapshot taken when they were assigned.
func (m *Manager) UpdateProperty(id uint, input PropertyInput) (*models.Property, error) {
	var property models.Property
	if err := m.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("property", id)
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	property.Cluster = input.Cluster
	property.Villa = input.Villa
	if input.Floors != "" {
		property.Floors = input.Floors
	}
	if input.Type != "" {
		property.Type = input.Type
	}
	if input.Status != "" {
		property.Status = input.Status
	}

	if err := m.db.Save(&property).Error; err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}
	return &property, nil
}

// DeleteProperty hard-deletes a housing unit. Nothing cascades: tenants that
// reference the property keep their property_id, matching the original
// system's behavior.
func (m *Manager) DeleteProperty(id uint) error {
	result := m.db.Delete(&models.Property{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("property", id)
	}

	m.logger.WithField("property_id", id).Info("Property deleted")
	return nil
}

// GetProperty loads a single property by id.
func (m *Manager) GetProperty(id uint) (*models.Property, error) {
	var property models.Property
	if err := m.db.First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("property", id)
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return &property, nil
}

// ListProperties returns all housing units.
func (m *Manager) ListProperties() ([]models.Property, error) {
	var properties []models.Property
	if err := m.db.Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// ListVacantProperties returns the units assignable to a new tenant. The set
// is filtered by status at query time; CreateTenant re-checks vacancy inside
// its transaction before committing.
func (m *Manager) ListVacantProperties() ([]models.Property, error) {
	var properties []models.Property
	if err := m.db.Where("status = ?", models.StatusVacant).Order("id").Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list vacant properties: %w", err)
	}
	return properties, nil
}

// WorkplaceCount is one row of the dashboard summary.
type WorkplaceCount struct {
	Workplace string `json:"workplace"`
	Count     int64  `json:"count"`
}

// Summary is the dashboard view: unit counts by status and active tenants
// grouped by sector.
type Summary struct {
	VacantProperties   int64            `json:"vacant_properties"`
	OccupiedProperties int64            `json:"occupied_properties"`
	TenantsByWorkplace []WorkplaceCount `json:"tenants_by_workplace"`
}

// GetSummary computes the dashboard summary.
func (m *Manager) GetSummary() (*Summary, error) {
	summary := &Summary{}

	if err := m.db.Model(&models.Property{}).
		Where("status = ?", models.StatusVacant).
		Count(&summary.VacantProperties).Error; err != nil {
		return nil, fmt.Errorf("failed to count vacant properties: %w", err)
	}
	if err := m.db.Model(&models.Property{}).
		Where("status = ?", models.StatusOccupied).
		Count(&summary.OccupiedProperties).Error; err != nil {
		return nil, fmt.Errorf("failed to count occupied properties: %w", err)
	}

	if err := m.db.Model(&models.Tenant{}).
		Select("workplace, COUNT(id) AS count").
		Where("archived = ?", false).
		Group("workplace").
		Order("workplace").
		Scan(&summary.TenantsByWorkplace).Error; err != nil {
		return nil, fmt.Errorf("failed to group tenants by workplace: %w", err)
	}

	return summary, nil
}
