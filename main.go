package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthhub/config"
	"healthhub/cron"
	"healthhub/database"
	appointmentRepoPkg "healthhub/database/repository/appointment"
	doctorRepoPkg "healthhub/database/repository/doctor"
	healthRecordRepoPkg "healthhub/database/repository/healthrecord"
	hospitalRepoPkg "healthhub/database/repository/hospital"
	invoiceRepoPkg "healthhub/database/repository/invoice"
	labReportRepoPkg "healthhub/database/repository/labreport"
	prescriptionRepoPkg "healthhub/database/repository/prescription"
	userRepoPkg "healthhub/database/repository/user"
	"healthhub/handlers"
	"healthhub/middleware"
	"healthhub/routes"
	"healthhub/services/appointment"
	"healthhub/services/availability"
	"healthhub/services/doctor"
	"healthhub/services/healthrecord"
	"healthhub/services/hospital"
	"healthhub/services/labreport"
	"healthhub/services/notification"
	"healthhub/services/payment"
	"healthhub/services/prescription"
	"healthhub/services/storage"
	"healthhub/services/tasks"
	"healthhub/services/user"
	"healthhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	hospitalRepo := hospitalRepoPkg.NewMongoHospitalRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	prescriptionRepo := prescriptionRepoPkg.NewMongoPrescriptionRepo()
	labReportRepo := labReportRepoPkg.NewMongoLabReportRepo()
	healthRecordRepo := healthRecordRepoPkg.NewMongoHealthRecordRepo()
	invoiceRepo := invoiceRepoPkg.NewMongoInvoiceRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo:      userRepo,
		AuthCache: utils.GetAuthCacheClient(),
	}
	doctorService := &doctor.DefaultDoctorService{Repo: doctorRepo}
	hospitalService := &hospital.DefaultHospitalService{Repo: hospitalRepo}
	availabilityService := availability.NewDefaultService(doctorRepo, appointmentRepo)

	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	reminderQueue := tasks.NewQueueClient()
	defer reminderQueue.Close()

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:        appointmentRepo,
		DoctorRepo:  doctorRepo,
		UserRepo:    userRepo,
		Queue:       reminderQueue,
		Invalidator: availabilityService,
	}
	prescriptionService := &prescription.DefaultPrescriptionService{Repo: prescriptionRepo}
	labReportService := &labreport.DefaultLabReportService{
		Repo:    labReportRepo,
		Storage: storageService,
	}
	healthRecordService := &healthrecord.DefaultHealthRecordService{Repo: healthRecordRepo}
	paymentService := payment.NewDefaultPaymentService(invoiceRepo, appointmentRepo)

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		Auth:         handlers.NewAuthHandler(userService),
		User:         handlers.NewUserHandler(userService),
		Doctor:       handlers.NewDoctorHandler(doctorService, availabilityService),
		Hospital:     handlers.NewHospitalHandler(hospitalService, doctorService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService, availabilityService),
		Prescription: handlers.NewPrescriptionHandler(prescriptionService),
		LabReport:    handlers.NewLabReportHandler(labReportService),
		HealthRecord: handlers.NewHealthRecordHandler(healthRecordService),
		Payment:      handlers.NewPaymentHandler(paymentService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// background workers.
	cron.InitReminderWorker(notificationService, appointmentRepo)
	utils.StartHealthMonitor(
		map[string]*redis.Client{
			"cache":         utils.GetCacheClient(),
			"auth":          utils.GetAuthCacheClient(),
			"reminderQueue": utils.GetReminderQueueClient(),
		},
		database.MongoClient,
	)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
