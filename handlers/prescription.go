package handlers

import (
	"net/http"

	prescriptionRepo "healthhub/database/repository/prescription"
	"healthhub/middleware"
	"healthhub/models"
	"healthhub/services/prescription"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PrescriptionHandler exposes prescription endpoints.
type PrescriptionHandler struct {
	Svc prescription.PrescriptionService
}

// NewPrescriptionHandler wires the prescription endpoints.
func NewPrescriptionHandler(svc prescription.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{Svc: svc}
}

// Create issues a new prescription. Doctors only; the issuing doctor is the
// authenticated user.
func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req models.Prescription
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = c.GetString(middleware.ContextUserID)

	created, err := h.Svc.Create(req)
	if err != nil {
		getLogger(c).Warn("failed to create prescription", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the caller's prescriptions, role scoped.
func (h *PrescriptionHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := prescriptionRepo.PrescriptionFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	}

	userID := c.GetString(middleware.ContextUserID)
	switch c.GetString(middleware.ContextUserRole) {
	case models.RoleDoctor:
		filter.DoctorID = userID
	case models.RoleAdmin:
		filter.PatientID = c.Query("patient")
		filter.DoctorID = c.Query("doctor")
	default:
		filter.PatientID = userID
	}

	prescriptions, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list prescriptions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve prescriptions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       prescriptions,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns one prescription if the caller is a participant or an admin.
func (h *PrescriptionHandler) Get(c *gin.Context) {
	p, err := h.Svc.GetByID(c.Param("prescriptionId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prescription not found"})
		return
	}

	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextUserRole)
	if role != models.RoleAdmin && p.PatientID != userID && p.DoctorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// Update modifies an active prescription. Doctors only.
func (h *PrescriptionHandler) Update(c *gin.Context) {
	var req models.Prescription
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("prescriptionId")

	updated, err := h.Svc.Update(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Cancel voids an active prescription. Doctors only.
func (h *PrescriptionHandler) Cancel(c *gin.Context) {
	if err := h.Svc.Cancel(c.Param("prescriptionId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescription cancelled"})
}

// Stats returns aggregate prescription numbers scoped to the caller.
func (h *PrescriptionHandler) Stats(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var patientID, doctorID string
	switch c.GetString(middleware.ContextUserRole) {
	case models.RoleDoctor:
		doctorID = userID
	case models.RoleAdmin:
	default:
		patientID = userID
	}

	stats, err := h.Svc.Stats(patientID, doctorID)
	if err != nil {
		getLogger(c).Error("failed to compute prescription stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
