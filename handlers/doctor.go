package handlers

import (
	"errors"
	"net/http"
	"time"

	doctorRepo "healthhub/database/repository/doctor"
	"healthhub/models"
	"healthhub/services/availability"
	"healthhub/services/doctor"
	"healthhub/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DoctorHandler exposes doctor directory and availability endpoints.
type DoctorHandler struct {
	Svc          doctor.DoctorService
	Availability availability.Service
}

// NewDoctorHandler wires the doctor endpoints.
func NewDoctorHandler(svc doctor.DoctorService, avail availability.Service) *DoctorHandler {
	return &DoctorHandler{Svc: svc, Availability: avail}
}

// ListDoctors returns active doctors matching the filter.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	page, limit := pageParams(c)
	filter := doctorRepo.DoctorFilter{
		HospitalID:     c.Query("hospital"),
		Specialization: c.Query("specialization"),
		Page:           page,
		Limit:          limit,
	}

	doctors, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list doctors", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve doctors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       doctors,
		"pagination": paginate(page, limit, total),
	})
}

// GetDoctor returns one doctor profile.
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doc, err := h.Svc.GetByID(c.Param("doctorId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetAvailableSlots returns the free slots for a doctor on a given date.
func (h *DoctorHandler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Param("doctorId")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
		return
	}

	result, err := h.Availability.Query(c.Request.Context(), doctorID, date)
	if err != nil {
		var notFound *scheduling.DoctorNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		var missing *scheduling.MissingParameterError
		if errors.As(err, &missing) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
			return
		}
		if isMalformedDateError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
		getLogger(c).Error("availability query failed",
			zap.String("doctorId", doctorID), zap.String("date", date), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve availability"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// isMalformedDateError tells a bad date or clock string in the query apart
// from a data-access failure, which must surface as a server error.
func isMalformedDateError(err error) bool {
	var badClock *scheduling.InvalidClockError
	var badDate *time.ParseError
	return errors.As(err, &badClock) || errors.As(err, &badDate)
}

// CreateDoctor registers a new doctor profile. Admin only.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req models.Doctor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	created, err := h.Svc.Create(req)
	if err != nil {
		getLogger(c).Error("failed to create doctor", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateDoctor updates a doctor profile. Admin only.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	var req models.Doctor
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.ID = c.Param("doctorId")

	updated, err := h.Svc.Update(req)
	if err != nil {
		getLogger(c).Error("failed to update doctor", zap.String("doctorId", req.ID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetAvailability replaces a doctor's weekly schedule template. The doctor
// themselves or an admin may change it.
func (h *DoctorHandler) SetAvailability(c *gin.Context) {
	doctorID := c.Param("doctorId")

	var req models.WeeklyAvailability
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.Svc.SetAvailability(doctorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteDoctor deactivates a doctor profile. Admin only.
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.Svc.Delete(c.Param("doctorId")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor deactivated"})
}

// DoctorStats returns aggregate numbers over active doctors. Admin only.
func (h *DoctorHandler) DoctorStats(c *gin.Context) {
	stats, err := h.Svc.Stats()
	if err != nil {
		getLogger(c).Error("failed to compute doctor stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
