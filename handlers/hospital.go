package handlers

import (
	"net/http"
	"strconv"

	hospitalRepo "healthhub/database/repository/hospital"
	"healthhub/models"
	"healthhub/services/doctor"
	"healthhub/services/hospital"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HospitalHandler exposes hospital directory endpoints.
type HospitalHandler struct {
	Svc       hospital.HospitalService
	DoctorSvc doctor.DoctorService
}

// NewHospitalHandler wires the hospital endpoints.
func NewHospitalHandler(svc hospital.HospitalService, doctorSvc doctor.DoctorService) *HospitalHandler {
	return &HospitalHandler{Svc: svc, DoctorSvc: doctorSvc}
}

// ListHospitals returns active hospitals matching the filter.
func (h *HospitalHandler) ListHospitals(c *gin.Context) {
	page, limit := pageParams(c)
	filter := hospitalRepo.HospitalFilter{
		City:      c.Query("city"),
		State:     c.Query("state"),
		Type:      c.Query("type"),
		Specialty: c.Query("specialty"),
		Page:      page,
		Limit:     limit,
	}

	hospitals, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list hospitals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hospitals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       hospitals,
		"pagination": paginate(page, limit, total),
	})
}

// NearbyHospitals returns hospitals within a radius of the given point.
func (h *HospitalHandler) NearbyHospitals(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid lat and lng are required"})
		return
	}
	radius, _ := strconv.ParseFloat(c.DefaultQuery("radius", "25"), 64)

	hospitals, err := h.Svc.Nearby(lat, lng, radius)
	if err != nil {
		getLogger(c).Error("failed to find nearby hospitals", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve hospitals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hospitals})
}

// GetHospital returns one hospital.
func (h *HospitalHandler) GetHospital(c *gin.Context) {
	hosp, err := h.Svc.GetByID(c.Param("hospitalId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
		return
	}
	c.JSON(http.StatusOK, hosp)
}

// GetHospitalDoctors returns the active doctors of one hospital.
func (h *HospitalHandler) GetHospitalDoctors(c *gin.Context) {
	doctors, err := h.DoctorSvc.GetByHospital(c.Param("hospitalId"), c.Query("specialization"))
	if err != nil {
		getLogger(c).Error("failed to list hospital doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": doctors})
}

// CreateHospital registers a new hospital. Admin only.
func (h *HospitalHandler) CreateHospital(c *gin.Context) {
	var req models.Hospital
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Svc.Create(req)
	if err != nil {
		getLogger(c).Error("failed to create hospital", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateHospital updates a hospital. Admin only.
func (h *HospitalHandler) UpdateHospital(c *gin.Context) {
	var req models.Hospital
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("hospitalId")

	updated, err := h.Svc.Update(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteHospital deactivates a hospital. Admin only.
func (h *HospitalHandler) DeleteHospital(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("hospitalId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Hospital not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Hospital deactivated"})
}

// HospitalStats returns aggregate numbers over active hospitals. Admin only.
func (h *HospitalHandler) HospitalStats(c *gin.Context) {
	stats, err := h.Svc.Stats()
	if err != nil {
		getLogger(c).Error("failed to compute hospital stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
