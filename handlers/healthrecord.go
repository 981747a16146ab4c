package handlers

import (
	"net/http"
	"strconv"

	healthRecordRepo "healthhub/database/repository/healthrecord"
	"healthhub/middleware"
	"healthhub/models"
	"healthhub/services/healthrecord"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthRecordHandler exposes patient health record endpoints.
type HealthRecordHandler struct {
	Svc healthrecord.HealthRecordService
}

// NewHealthRecordHandler wires the health record endpoints.
func NewHealthRecordHandler(svc healthrecord.HealthRecordService) *HealthRecordHandler {
	return &HealthRecordHandler{Svc: svc}
}

// Create adds an entry to a patient's record. Patients write to their own
// record; doctors and admins may write for any patient.
func (h *HealthRecordHandler) Create(c *gin.Context) {
	var req models.HealthRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if c.GetString(middleware.ContextUserRole) == models.RolePatient {
		req.PatientID = c.GetString(middleware.ContextUserID)
	}

	created, err := h.Svc.Create(req)
	if err != nil {
		getLogger(c).Warn("failed to create health record", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns health records, scoped to the caller for patients.
func (h *HealthRecordHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := healthRecordRepo.HealthRecordFilter{
		RecordType: c.Query("recordType"),
		Page:       page,
		Limit:      limit,
	}

	if c.GetString(middleware.ContextUserRole) == models.RolePatient {
		filter.PatientID = c.GetString(middleware.ContextUserID)
	} else {
		filter.PatientID = c.Query("patient")
	}

	records, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list health records", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve health records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       records,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns one record if the caller may read it.
func (h *HealthRecordHandler) Get(c *gin.Context) {
	record, err := h.Svc.GetByID(c.Param("recordId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Health record not found"})
		return
	}

	role := c.GetString(middleware.ContextUserRole)
	if role == models.RolePatient && record.PatientID != c.GetString(middleware.ContextUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// Update modifies a record entry.
func (h *HealthRecordHandler) Update(c *gin.Context) {
	var req models.HealthRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("recordId")

	updated, err := h.Svc.Update(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a record entry.
func (h *HealthRecordHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("recordId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Health record deleted"})
}

// Stats returns aggregate record numbers, scoped to the caller for patients.
func (h *HealthRecordHandler) Stats(c *gin.Context) {
	patientID := c.GetString(middleware.ContextUserID)
	if c.GetString(middleware.ContextUserRole) != models.RolePatient {
		patientID = c.Query("patient")
	}

	stats, err := h.Svc.Stats(patientID)
	if err != nil {
		getLogger(c).Error("failed to compute health record stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// VitalsTimeline returns the patient's recent vital sign readings.
func (h *HealthRecordHandler) VitalsTimeline(c *gin.Context) {
	patientID := c.GetString(middleware.ContextUserID)
	if c.GetString(middleware.ContextUserRole) != models.RolePatient {
		patientID = c.Query("patient")
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.Svc.VitalsTimeline(patientID, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}
