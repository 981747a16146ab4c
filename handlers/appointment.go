package handlers

import (
	"errors"
	"net/http"

	appointmentRepo "healthhub/database/repository/appointment"
	"healthhub/middleware"
	"healthhub/models"
	"healthhub/services/appointment"
	"healthhub/services/availability"
	"healthhub/services/scheduling"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes booking and appointment lifecycle endpoints.
type AppointmentHandler struct {
	Svc          appointment.AppointmentService
	Availability availability.Service
}

// NewAppointmentHandler wires the appointment endpoints.
func NewAppointmentHandler(svc appointment.AppointmentService, avail availability.Service) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Availability: avail}
}

// Book creates a new appointment for the authenticated patient. A slot that
// overlaps an active appointment of the doctor is rejected.
func (h *AppointmentHandler) Book(c *gin.Context) {
	logger := getLogger(c)
	patientID := c.GetString(middleware.ContextUserID)

	var req appointment.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Svc.Book(c.Request.Context(), patientID, req)
	if err != nil {
		var conflict *scheduling.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Doctor has a conflicting appointment at this time"})
			return
		}
		var notFound *scheduling.DoctorNotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Doctor not found"})
			return
		}
		logger.Warn("booking failed", zap.String("patientId", patientID), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// AvailableSlots answers an availability query using doctor/date query
// parameters.
func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctor")
	date := c.Query("date")
	if doctorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Doctor ID and date are required"})
		return
	}
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

// List returns the caller's appointments. Patients see their own bookings,
// doctors their schedule, admins everything.
func (h *AppointmentHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := appointmentRepo.AppointmentFilter{
		Status:          c.Query("status"),
		Department:      c.Query("department"),
		AppointmentType: c.Query("type"),
		Date:            c.Query("date"),
		DateFrom:        c.Query("dateFrom"),
		DateTo:          c.Query("dateTo"),
		Search:          c.Query("search"),
		Page:            page,
		Limit:           limit,
	}

	userID := c.GetString(middleware.ContextUserID)
	switch c.GetString(middleware.ContextUserRole) {
	case models.RoleDoctor:
		filter.DoctorID = userID
	case models.RoleAdmin:
		filter.DoctorID = c.Query("doctor")
		filter.PatientID = c.Query("patient")
	default:
		filter.PatientID = userID
	}

	appts, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list appointments", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve appointments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       appts,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns one appointment if the caller is a participant or an admin.
func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.Svc.GetByID(c.Param("appointmentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if !canAccessAppointment(c, appt) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	c.JSON(http.StatusOK, appt)
}

func canAccessAppointment(c *gin.Context, appt *models.Appointment) bool {
	userID := c.GetString(middleware.ContextUserID)
	switch c.GetString(middleware.ContextUserRole) {
	case models.RoleAdmin:
		return true
	case models.RoleDoctor:
		return appt.DoctorID == userID
	default:
		return appt.PatientID == userID
	}
}

// UpdateStatus moves an appointment through its lifecycle. Doctors and
// admins only.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status      string `json:"status" binding:"required"`
		DoctorNotes string `json:"doctorNotes"`
		Diagnosis   string `json:"diagnosis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("appointmentId"), req.Status, req.DoctorNotes, req.Diagnosis)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel cancels a booking under the 24-hour rule.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextUserRole)

	appt, err := h.Svc.Cancel(c.Request.Context(), c.Param("appointmentId"), userID, role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Reschedule moves an appointment to a new free slot.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req struct {
		AppointmentDate string `json:"appointmentDate" binding:"required"`
		AppointmentTime string `json:"appointmentTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	appt, err := h.Svc.GetByID(c.Param("appointmentId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Appointment not found"})
		return
	}
	if !canAccessAppointment(c, appt) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	updated, err := h.Svc.Reschedule(c.Request.Context(), appt.ID, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		var conflict *scheduling.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Doctor has a conflicting appointment at this time"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Stats returns aggregate appointment numbers scoped to the caller.
func (h *AppointmentHandler) Stats(c *gin.Context) {
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
		getLogger(c).Error("failed to compute appointment stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
