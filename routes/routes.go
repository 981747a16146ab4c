package routes

import (
	"net/http"
	"time"

	"healthhub/handlers"
	"healthhub/middleware"
	"healthhub/models"
	"healthhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and token endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.Register)
		api.POST("/login", hb.Auth.Login)
		api.POST("/refresh", hb.Auth.Refresh)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterUserRoutes registers profile and account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/profile", hb.User.GetProfile)
		api.PUT("/profile", hb.User.UpdateProfile)
		api.POST("/device", hb.User.RegisterDevice)

		admin := api.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		admin.GET("", hb.User.ListUsers)
		admin.GET("/stats/overview", hb.User.UserStats)
		admin.GET("/:userId", hb.User.GetUser)
		admin.PUT("/:userId", hb.User.UpdateUser)
		admin.DELETE("/:userId", hb.User.DeactivateUser)
	}
}

// RegisterDoctorRoutes registers the doctor directory and availability
// endpoints. Directory reads are public; writes need an admin, and a doctor
// may manage their own schedule.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("", hb.Doctor.ListDoctors)
		api.GET("/:doctorId", hb.Doctor.GetDoctor)
		api.GET("/:doctorId/available-slots", hb.Doctor.GetAvailableSlots)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		protected.PUT("/:doctorId/availability",
			middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin), hb.Doctor.SetAvailability)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRoles(models.RoleAdmin))
		admin.POST("", hb.Doctor.CreateDoctor)
		admin.PUT("/:doctorId", hb.Doctor.UpdateDoctor)
		admin.DELETE("/:doctorId", hb.Doctor.DeleteDoctor)
		admin.GET("/stats/overview", hb.Doctor.DoctorStats)
	}
}

// RegisterHospitalRoutes registers the hospital directory endpoints.
func RegisterHospitalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/hospitals")
	{
		api.GET("", hb.Hospital.ListHospitals)
		api.GET("/nearby", hb.Hospital.NearbyHospitals)
		api.GET("/:hospitalId", hb.Hospital.GetHospital)
		api.GET("/:hospitalId/doctors", hb.Hospital.GetHospitalDoctors)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.RequireRoles(models.RoleAdmin))
		admin.POST("", hb.Hospital.CreateHospital)
		admin.PUT("/:hospitalId", hb.Hospital.UpdateHospital)
		admin.DELETE("/:hospitalId", hb.Hospital.DeleteHospital)
		admin.GET("/stats/overview", hb.Hospital.HospitalStats)
	}
}

// RegisterAppointmentRoutes registers booking and lifecycle endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("/available-slots", hb.Appointment.AvailableSlots)
		api.POST("", middleware.RequireRoles(models.RolePatient), hb.Appointment.Book)
		api.GET("", hb.Appointment.List)
		api.GET("/stats", hb.Appointment.Stats)
		api.GET("/:appointmentId", hb.Appointment.Get)
		api.PUT("/:appointmentId/status",
			middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin), hb.Appointment.UpdateStatus)
		api.PUT("/:appointmentId/cancel", hb.Appointment.Cancel)
		api.PUT("/:appointmentId/reschedule", hb.Appointment.Reschedule)
	}
}

// RegisterPrescriptionRoutes registers prescription endpoints.
func RegisterPrescriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/prescriptions")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.Prescription.List)
		api.GET("/stats", hb.Prescription.Stats)
		api.GET("/:prescriptionId", hb.Prescription.Get)

		doctors := api.Group("")
		doctors.Use(middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin))
		doctors.POST("", hb.Prescription.Create)
		doctors.PUT("/:prescriptionId", hb.Prescription.Update)
		doctors.PUT("/:prescriptionId/cancel", hb.Prescription.Cancel)
	}
}

// RegisterLabReportRoutes registers lab report endpoints.
func RegisterLabReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/lab-reports")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.GET("", hb.LabReport.List)
		api.GET("/stats", hb.LabReport.Stats)
		api.GET("/:reportId", hb.LabReport.Get)
		api.GET("/:reportId/download", hb.LabReport.Download)

		doctors := api.Group("")
		doctors.Use(middleware.RequireRoles(models.RoleDoctor, models.RoleAdmin))
		doctors.POST("", hb.LabReport.Create)
		doctors.POST("/:reportId/upload", hb.LabReport.Upload)

		admin := api.Group("")
		admin.Use(middleware.RequireRoles(models.RoleAdmin))
		admin.DELETE("/:reportId", hb.LabReport.Delete)
	}
}

// RegisterHealthRecordRoutes registers patient record endpoints.
func RegisterHealthRecordRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/health-records")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.HealthRecord.Create)
		api.GET("", hb.HealthRecord.List)
		api.GET("/vitals", hb.HealthRecord.VitalsTimeline)
		api.GET("/stats", hb.HealthRecord.Stats)
		api.GET("/:recordId", hb.HealthRecord.Get)
		api.PUT("/:recordId", hb.HealthRecord.Update)
		api.DELETE("/:recordId", hb.HealthRecord.Delete)
	}
}

// RegisterPaymentRoutes registers consultation fee endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
	{
		api.POST("/charge", hb.Payment.Charge)
		api.POST("/confirm", hb.Payment.Confirm)
		api.GET("/appointment/:appointmentId", hb.Payment.History)
	}
}

// RegisterHealthRoute registers the health-check endpoint serving the latest
// dependency snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterHospitalRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterPrescriptionRoutes(r, hb)
	RegisterLabReportRoutes(r, hb)
	RegisterHealthRecordRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
}
