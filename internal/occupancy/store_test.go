package occupancy

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hillgate/server/internal/database"
	"hillgate/server/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.NewTestDB()
	require.NoError(t, err)

	err = database.MigrateSchema(db)
	require.NoError(t, err)

	return db
}

func newTestManager(t *testing.T) (*Manager, *gorm.DB) {
	db := setupTestDB(t)
	logger := logrus.New()
	store := NewStore(logger)
	return NewManager(db, store, logger), db
}

func TestRecomputeStatusNoTenants(t *testing.T) {
	manager, db := newTestManager(t)

	property, err := manager.CreateProperty(PropertyInput{Cluster: "A", Villa: "1"})
	require.NoError(t, err)

	status, err := manager.store.RecomputeStatus(db, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVacant, status)
}

func TestRecomputeStatusOnlyArchivedTenants(t *testing.T) {
	manager, db := newTestManager(t)

	property, err := manager.CreateProperty(PropertyInput{Cluster: "A", Villa: "1"})
	require.NoError(t, err)

	tenant := models.Tenant{
		Name:       "Archived Occupant",
		NationalID: "1000000001",
		Mobile:     "0500000001",
		Workplace:  models.Workplaces[0],
		PropertyID: &property.ID,
		Cluster:    property.Cluster,
		Villa:      property.Villa,
		Archived:   true,
	}
	require.NoError(t, db.Create(&tenant).Error)

	status, err := manager.store.RecomputeStatus(db, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusVacant, status)
}

func TestRecomputeStatusMixedTenants(t *testing.T) {
	manager, db := newTestManager(t)

	property, err := manager.CreateProperty(PropertyInput{Cluster: "A", Villa: "1"})
	require.NoError(t, err)

	for _, archived := range []bool{true, false} {
		tenant := models.Tenant{
			Name:       "Occupant",
			NationalID: "1000000002",
			Mobile:     "0500000002",
			Workplace:  models.Workplaces[0],
			PropertyID: &property.ID,
			Cluster:    property.Cluster,
			Villa:      property.Villa,
			Archived:   archived,
		}
		require.NoError(t, db.Create(&tenant).Error)
	}

	status, err := manager.store.RecomputeStatus(db, property.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusOccupied, status)

	var reloaded models.Property
	require.NoError(t, db.First(&reloaded, property.ID).Error)
	assert.Equal(t, models.StatusOccupied, reloaded.Status)
}
