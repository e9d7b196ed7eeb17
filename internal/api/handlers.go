package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"hillgate/server/internal/auth"
	"hillgate/server/internal/export"
	"hillgate/server/internal/occupancy"
)

// Handler holds the services the HTTP layer delegates to.
type Handler struct {
	manager     *occupancy.Manager
	authService *auth.Service
	logger      *logrus.Logger
}

// NewHandler creates the API handler.
func NewHandler(manager *occupancy.Manager, authService *auth.Service, logger *logrus.Logger) *Handler {
	return &Handler{
		manager:     manager,
		authService: authService,
		logger:      logger,
	}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,min=4,max=150"`
	Password string `json:"password" binding:"required"`
}

type propertyRequest struct {
	Cluster string `json:"cluster" binding:"required"`
	Villa   string `json:"villa" binding:"required"`
	Floors  string `json:"floors" binding:"omitempty,oneof=two-floor three-floor"`
	Type    string `json:"type" binding:"omitempty,oneof=officers individuals"`
	Status  string `json:"status" binding:"omitempty,oneof=vacant occupied"`
}

type tenantRequest struct {
	Name       string `json:"name" binding:"required"`
	NationalID string `json:"national_id" binding:"required"`
	Mobile     string `json:"mobile" binding:"required"`
	StartDate  string `json:"start_date" binding:"required,datetime=2006-01-02"`
	Workplace  string `json:"workplace" binding:"required,workplace"`
	PropertyID uint   `json:"property_id" binding:"required"`
}

func (r *tenantRequest) toInput() occupancy.TenantInput {
	// StartDate already validated by the datetime binding rule
	startDate, _ := time.Parse("2006-01-02", r.StartDate)
	return occupancy.TenantInput{
		Name:       r.Name,
		NationalID: r.NationalID,
		Mobile:     r.Mobile,
		StartDate:  startDate,
		Workplace:  r.Workplace,
		PropertyID: r.PropertyID,
	}
}

// Login authenticates a staff member and returns a bearer token.
func (h *Handler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

// Register creates a new staff account.
func (h *Handler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.authService.Register(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, user)
}

// GetSummary returns the dashboard counts.
func (h *Handler) GetSummary(c *gin.Context) {
	summary, err := h.manager.GetSummary()
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute summary")
		respondError(c, err)
		return
	}
	respondOK(c, summary)
}

// ListProperties returns all housing units.
func (h *Handler) ListProperties(c *gin.Context) {
	properties, err := h.manager.ListProperties()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list properties")
		respondError(c, err)
		return
	}
	respondOK(c, properties)
}

// ListVacantProperties returns the units assignable to a new tenant.
func (h *Handler) ListVacantProperties(c *gin.Context) {
	properties, err := h.manager.ListVacantProperties()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list vacant properties")
		respondError(c, err)
		return
	}
	respondOK(c, properties)
}

// CreateProperty registers a new housing unit.
func (h *Handler) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	property, err := h.manager.CreateProperty(occupancy.PropertyInput{
		Cluster: req.Cluster,
		Villa:   req.Villa,
		Floors:  req.Floors,
		Type:    req.Type,
	})
	if err != nil {
		h.logger.WithError(err).Error("Failed to create property")
		respondError(c, err)
		return
	}
	respondCreated(c, property)
}

// UpdateProperty edits a housing unit.
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	property, err := h.manager.UpdateProperty(id, occupancy.PropertyInput{
		Cluster: req.Cluster,
		Villa:   req.Villa,
		Floors:  req.Floors,
		Type:    req.Type,
		Status:  req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, property)
}

// DeleteProperty removes a housing unit.
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.manager.DeleteProperty(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// ListTenants returns all active tenants.
func (h *Handler) ListTenants(c *gin.Context) {
	tenants, err := h.manager.ListActiveTenants()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list tenants")
		respondError(c, err)
		return
	}
	respondOK(c, tenants)
}

// ListArchivedTenants returns all archived tenants.
func (h *Handler) ListArchivedTenants(c *gin.Context) {
	tenants, err := h.manager.ListArchivedTenants()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list archived tenants")
		respondError(c, err)
		return
	}
	respondOK(c, tenants)
}

// CreateTenant assigns a new tenant to a vacant unit.
func (h *Handler) CreateTenant(c *gin.Context) {
	var req tenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, err := h.manager.CreateTenant(req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, tenant)
}

// UpdateTenant edits a tenant and possibly reassigns their unit.
func (h *Handler) UpdateTenant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req tenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tenant, err := h.manager.UpdateTenant(id, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tenant)
}

// ArchiveTenant records a tenant's eviction.
func (h *Handler) ArchiveTenant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tenant, err := h.manager.ArchiveTenant(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tenant)
}

// UnarchiveTenant reactivates an archived tenant.
func (h *Handler) UnarchiveTenant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	tenant, err := h.manager.UnarchiveTenant(id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, tenant)
}

// DeleteTenant permanently removes an archived tenant.
func (h *Handler) DeleteTenant(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.manager.DeleteTenant(id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

// ExportArchivedTenants streams the archived-tenant history as an XLSX file.
func (h *Handler) ExportArchivedTenants(c *gin.Context) {
	tenants, err := h.manager.ListArchivedTenants()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list archived tenants for export")
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="archived_tenants.xlsx"`)
	if err := export.WriteArchivedTenants(c.Writer, tenants); err != nil {
		h.logger.WithError(err).Error("Failed to write export")
		// Headers are already sent, nothing more to report to the client
	}
}

func parseID(c *gin.Context) (uint, bool) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("invalid id: %v", err),
		})
		return 0, false
	}
	return uri.ID, true
}
