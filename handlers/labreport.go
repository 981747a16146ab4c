package handlers

import (
	"net/http"

	labReportRepo "healthhub/database/repository/labreport"
	"healthhub/middleware"
	"healthhub/models"
	"healthhub/services/labreport"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxAttachmentBytes caps uploaded lab documents at 10 MB.
const maxAttachmentBytes = 10 << 20

// LabReportHandler exposes laboratory report endpoints.
type LabReportHandler struct {
	Svc labreport.LabReportService
}

// NewLabReportHandler wires the lab report endpoints.
func NewLabReportHandler(svc labreport.LabReportService) *LabReportHandler {
	return &LabReportHandler{Svc: svc}
}

// Create files a new lab report. Doctors only.
func (h *LabReportHandler) Create(c *gin.Context) {
	var req models.LabReport
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	req.DoctorID = c.GetString(middleware.ContextUserID)

	created, err := h.Svc.Create(req)
	if err != nil {
		getLogger(c).Warn("failed to create lab report", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the caller's lab reports, role scoped.
func (h *LabReportHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	filter := labReportRepo.LabReportFilter{
		TestType: c.Query("testType"),
		Page:     page,
		Limit:    limit,
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

	reports, total, err := h.Svc.List(filter)
	if err != nil {
		getLogger(c).Error("failed to list lab reports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lab reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       reports,
		"pagination": paginate(page, limit, total),
	})
}

// Get returns one lab report if the caller is a participant or an admin.
func (h *LabReportHandler) Get(c *gin.Context) {
	report, err := h.Svc.GetByID(c.Param("reportId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lab report not found"})
		return
	}
	if !h.canAccess(c, report) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *LabReportHandler) canAccess(c *gin.Context, report *models.LabReport) bool {
	userID := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextUserRole)
	return role == models.RoleAdmin || report.PatientID == userID || report.DoctorID == userID
}

// Upload attaches a document file to a lab report. Doctors only.
func (h *LabReportHandler) Upload(c *gin.Context) {
	reportID := c.Param("reportId")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A file is required"})
		return
	}
	if fileHeader.Size > maxAttachmentBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	attachment, err := h.Svc.AttachFile(c.Request.Context(), reportID, fileHeader.Filename, file)
	if err != nil {
		getLogger(c).Error("failed to attach file",
			zap.String("reportId", reportID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// Download returns a signed URL for one attachment.
func (h *LabReportHandler) Download(c *gin.Context) {
	report, err := h.Svc.GetByID(c.Param("reportId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Lab report not found"})
		return
	}
	if !h.canAccess(c, report) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return
	}

	url, err := h.Svc.AttachmentURL(report.ID, c.Query("publicId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Attachment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// Stats returns aggregate lab report numbers scoped to the caller.
func (h *LabReportHandler) Stats(c *gin.Context) {
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
		getLogger(c).Error("failed to compute lab report stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Delete removes a lab report and its attachments. Admin only.
func (h *LabReportHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("reportId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lab report deleted"})
}
