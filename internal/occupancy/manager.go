package occupancy

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"hillgate/server/internal/apperrors"
	"hillgate/server/internal/models"
)

// TenantInput carries the already-validated fields for creating or updating a
// tenant. PropertyID names the unit the tenant occupies.
type TenantInput struct {
	Name       string
	NationalID string
	Mobile     string
	StartDate  time.Time
	Workplace  string
	PropertyID uint
}

// Manager exposes the tenant lifecycle operations. Every mutation and the
// status recompute it requires run inside a single transaction, so a crash
// can never leave a property with a stale status.
type Manager struct {
	db     *gorm.DB
	store  *Store
	logger *logrus.Logger
}

// NewManager creates a lifecycle manager backed by the given database.
func NewManager(db *gorm.DB, store *Store, logger *logrus.Logger) *Manager {
	return &Manager{db: db, store: store, logger: logger}
}

// today returns the current date with the time component dropped, matching
// how eviction dates are recorded.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// CreateTenant registers a new tenant on a vacant property. The vacancy check
// runs inside the transaction, so two concurrent assignments to the same unit
// cannot both succeed. Returns ErrNoVacantProperty when no unit is assignable
// at all, or a ValidationError when the chosen unit is already occupied.
func (m *Manager) CreateTenant(input TenantInput) (*models.Tenant, error) {
	var vacant int64
	if err := m.db.Model(&models.Property{}).
		Where("status = ?", models.StatusVacant).
		Count(&vacant).Error; err != nil {
		return nil, fmt.Errorf("failed to count vacant properties: %w", err)
	}
	if vacant == 0 {
		return nil, apperrors.ErrNoVacantProperty
	}

	var tenant models.Tenant
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, input.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("property", input.PropertyID)
			}
			return fmt.Errorf("failed to load property: %w", err)
		}
		if property.Status != models.StatusVacant {
			return apperrors.NewValidationError("property %d is not vacant", property.ID)
		}

		tenant = models.Tenant{
			Name:       input.Name,
			NationalID: input.NationalID,
			Mobile:     input.Mobile,
			StartDate:  input.StartDate,
			Workplace:  input.Workplace,
			PropertyID: &property.ID,
			Cluster:    property.Cluster,
			Villa:      property.Villa,
			Archived:   false,
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		_, err := m.store.RecomputeStatus(tx, property.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"tenant_id":   tenant.ID,
		"property_id": input.PropertyID,
	}).Info("Tenant created")
	return &tenant, nil
}

// UpdateTenant updates a tenant's identity fields and property assignment,
// re-snapshotting cluster/villa from the (possibly new) property. The new
// property's status is recomputed, and so is the old property's when the
// assignment changed, so a vacated unit does not stay marked occupied.
func (m *Manager) UpdateTenant(id uint, input TenantInput) (*models.Tenant, error) {
	var tenant models.Tenant
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("tenant", id)
			}
			return fmt.Errorf("failed to load tenant: %w", err)
		}

		var property models.Property
		if err := tx.First(&property, input.PropertyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("property", input.PropertyID)
			}
			return fmt.Errorf("failed to load property: %w", err)
		}

		previousPropertyID := tenant.PropertyID

		tenant.Name = input.Name
		tenant.NationalID = input.NationalID
		tenant.Mobile = input.Mobile
		tenant.StartDate = input.StartDate
		tenant.Workplace = input.Workplace
		tenant.PropertyID = &property.ID
		tenant.Cluster = property.Cluster
		tenant.Villa = property.Villa

		if err := tx.Save(&tenant).Error; err != nil {
			return fmt.Errorf("failed to update tenant: %w", err)
		}

		if _, err := m.store.RecomputeStatus(tx, property.ID); err != nil {
			return err
		}
		if previousPropertyID != nil && *previousPropertyID != property.ID {
			if _, err := m.store.RecomputeStatus(tx, *previousPropertyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ArchiveTenant marks a tenant as vacated and stamps the eviction date with
// the current date. Archiving an already-archived tenant just re-stamps the
// date; it is not an error.
func (m *Manager) ArchiveTenant(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("tenant", id)
			}
			return fmt.Errorf("failed to load tenant: %w", err)
		}

		evictionDate := today()
		tenant.Archived = true
		tenant.EvictionDate = &evictionDate
		if err := tx.Save(&tenant).Error; err != nil {
			return fmt.Errorf("failed to archive tenant: %w", err)
		}

		if tenant.PropertyID != nil {
			if _, err := m.store.RecomputeStatus(tx, *tenant.PropertyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.WithField("tenant_id", id).Info("Tenant archived")
	return &tenant, nil
}

// UnarchiveTenant reactivates an archived tenant. The eviction date is left
// untouched; it records the last archival.
func (m *Manager) UnarchiveTenant(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&tenant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("tenant", id)
			}
			return fmt.Errorf("failed to load tenant: %w", err)
		}

		tenant.Archived = false
		if err := tx.Save(&tenant).Error; err != nil {
			return fmt.Errorf("failed to unarchive tenant: %w", err)
		}

		if tenant.PropertyID != nil {
			if _, err := m.store.RecomputeStatus(tx, *tenant.PropertyID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.WithField("tenant_id", id).Info("Tenant unarchived")
	return &tenant, nil
}

// DeleteTenant permanently removes an archived tenant. Deleting an active
// tenant is refused. The property status is intentionally not recomputed:
// an archived tenant never counts towards occupancy, so the status cannot
// change.
func (m *Manager) DeleteTenant(id uint) error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		var tenant models.Tenant
		if err := tx.First(&tenant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFoundError("tenant", id)
			}
			return fmt.Errorf("failed to load tenant: %w", err)
		}
		if !tenant.Archived {
			return apperrors.NewValidationError("tenant %d is still active and cannot be deleted", id)
		}

		if err := tx.Delete(&tenant).Error; err != nil {
			return fmt.Errorf("failed to delete tenant: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.WithField("tenant_id", id).Info("Tenant permanently deleted")
	return nil
}

// GetTenant loads a single tenant by id.
func (m *Manager) GetTenant(id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := m.db.First(&tenant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("tenant", id)
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}
	return &tenant, nil
}

// ListActiveTenants returns all tenants that have not been archived.
func (m *Manager) ListActiveTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := m.db.Where("archived = ?", false).Order("id").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to list active tenants: %w", err)
	}
	return tenants, nil
}

// ListArchivedTenants returns all archived tenants, the set exported to the
// spreadsheet.
func (m *Manager) ListArchivedTenants() ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := m.db.Where("archived = ?", true).Order("id").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to list archived tenants: %w", err)
	}
	return tenants, nil
}
