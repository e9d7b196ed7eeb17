package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hillgate/server/config"
	"hillgate/server/internal/database"
	"hillgate/server/internal/export"
	"hillgate/server/internal/models"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestRouter(t *testing.T) *gin.Engine {
	db, err := database.NewTestDB()
	require.NoError(t, err)
	require.NoError(t, database.MigrateSchema(db))

	cfg := &config.Config{
		JWTSecret:      "test-secret",
		JWTExpiryHours: 1,
		GinMode:        gin.TestMode,
	}
	return SetupRouter(db, cfg, logrus.New())
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router *gin.Engine) string {
	w := doJSON(router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "warden",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "warden",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	require.NotEmpty(t, login.Token)
	return login.Token
}

func createProperty(t *testing.T, router *gin.Engine, token, cluster, villa string) models.Property {
	w := doJSON(router, http.MethodPost, "/api/properties", token, gin.H{
		"cluster": cluster,
		"villa":   villa,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var property models.Property
	require.NoError(t, json.Unmarshal(resp.Data, &property))
	return property
}

func tenantPayload(propertyID uint) gin.H {
	return gin.H{
		"name":        "X",
		"national_id": "1234567890",
		"mobile":      "0501234567",
		"start_date":  "2024-01-15",
		"workplace":   "Border Guard",
		"property_id": propertyID,
	}
}

func TestEndpointsRequireAuth(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/properties", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/properties", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router := setupTestRouter(t)
	registerAndLogin(t, router)

	w := doJSON(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "warden",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := setupTestRouter(t)
	registerAndLogin(t, router)

	w := doJSON(router, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "warden",
		"password": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTenantLifecycleFlow(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router)

	property := createProperty(t, router, token, "A", "1")
	assert.Equal(t, models.StatusVacant, property.Status)

	w := doJSON(router, http.MethodPost, "/api/tenants", token, tenantPayload(property.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var tenant models.Tenant
	require.NoError(t, json.Unmarshal(resp.Data, &tenant))

	// The unit is now occupied
	w = doJSON(router, http.MethodGet, "/api/properties/vacant", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var vacant []models.Property
	require.NoError(t, json.Unmarshal(resp.Data, &vacant))
	assert.Empty(t, vacant)

	// Archive frees the unit again
	w = doJSON(router, http.MethodPost, fmt.Sprintf("/api/tenants/%d/archive", tenant.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, http.MethodGet, "/api/properties/vacant", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, &vacant))
	assert.Len(t, vacant, 1)

	// Permanent delete of the archived tenant
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/tenants/%d", tenant.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTenantNoVacantUnits(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router)

	w := doJSON(router, http.MethodPost, "/api/tenants", token, tenantPayload(1))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "no vacant units")
}

func TestCreateTenantRejectsUnknownWorkplace(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router)

	property := createProperty(t, router, token, "A", "1")
	payload := tenantPayload(property.ID)
	payload["workplace"] = "Space Program"

	w := doJSON(router, http.MethodPost, "/api/tenants", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportArchivedTenants(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router)

	property := createProperty(t, router, token, "A", "1")

	w := doJSON(router, http.MethodPost, "/api/tenants", token, tenantPayload(property.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var tenant models.Tenant
	require.NoError(t, json.Unmarshal(resp.Data, &tenant))

	w = doJSON(router, http.MethodPost, fmt.Sprintf("/api/tenants/%d/archive", tenant.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// A second, still-active tenant must not show up in the export
	second := createProperty(t, router, token, "A", "2")
	payload := tenantPayload(second.ID)
	payload["name"] = "T2"
	payload["national_id"] = "2222222222"
	w = doJSON(router, http.MethodPost, "/api/tenants", token, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/tenants/archived/export", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "archived_tenants.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the single archived tenant")
	assert.Equal(t, export.Columns, rows[0])
	assert.Equal(t, "X", rows[1][0])
}

func TestGetSummary(t *testing.T) {
	router := setupTestRouter(t)
	token := registerAndLogin(t, router)

	property := createProperty(t, router, token, "A", "1")
	createProperty(t, router, token, "A", "2")

	w := doJSON(router, http.MethodPost, "/api/tenants", token, tenantPayload(property.ID))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodGet, "/api/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	var summary struct {
		VacantProperties   int64 `json:"vacant_properties"`
		OccupiedProperties int64 `json:"occupied_properties"`
		TenantsByWorkplace []struct {
			Workplace string `json:"workplace"`
			Count     int64  `json:"count"`
		} `json:"tenants_by_workplace"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &summary))

	assert.Equal(t, int64(1), summary.VacantProperties)
	assert.Equal(t, int64(1), summary.OccupiedProperties)
	require.Len(t, summary.TenantsByWorkplace, 1)
	assert.Equal(t, "Border Guard", summary.TenantsByWorkplace[0].Workplace)
}
