package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carebridge/config"
	"carebridge/cron"
	"carebridge/database"
	bookingRepoPkg "carebridge/database/repository/booking"
	doctorRepoPkg "carebridge/database/repository/doctor"
	patientRepoPkg "carebridge/database/repository/patient"
	pharmacistRepoPkg "carebridge/database/repository/pharmacist"
	prescriptionRepoPkg "carebridge/database/repository/prescription"
	"carebridge/handlers"
	"carebridge/routes"
	"carebridge/services/account"
	bookingSvc "carebridge/services/booking"
	doctorSvc "carebridge/services/doctor"
	patientSvc "carebridge/services/patient"
	pharmacistSvc "carebridge/services/pharmacist"
	prescriptionSvc "carebridge/services/prescription"
	"carebridge/services/scheduling"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor(utils.GetCacheClient(), utils.GetAuthCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	pharmacistRepo := pharmacistRepoPkg.NewMongoPharmacistRepo()
	prescriptionRepo := prescriptionRepoPkg.NewMongoPrescriptionRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	accountService := &account.DefaultAccountService{
		Doctors:     doctorRepo,
		Patients:    patientRepo,
		Pharmacists: pharmacistRepo,
	}
	scheduleService := &scheduling.DefaultScheduleService{
		Repo: doctorRepo,
	}
	bookingService := &bookingSvc.DefaultBookingService{
		Bookings:  bookingRepo,
		Doctors:   doctorRepo,
		Patients:  patientRepo,
		Reminders: cron.NewAsynqReminderScheduler(),
	}
	doctorService := &doctorSvc.DefaultDoctorService{
		Repo:     doctorRepo,
		Patients: patientRepo,
	}
	patientService := &patientSvc.DefaultPatientService{
		Repo:    patientRepo,
		Doctors: doctorRepo,
		Cache:   utils.GetCacheClient(),
	}
	pharmacistService := &pharmacistSvc.DefaultPharmacistService{
		Repo: pharmacistRepo,
	}
	prescriptionService := &prescriptionSvc.DefaultPrescriptionService{
		Repo: prescriptionRepo,
	}

	// handlers.
	authHandler := &handlers.AuthHandler{AccountService: accountService}
	doctorHandler := &handlers.DoctorHandler{
		DoctorService:   doctorService,
		ScheduleService: scheduleService,
	}
	patientHandler := &handlers.PatientHandler{
		PatientService: patientService,
		BookingService: bookingService,
	}
	pharmacistHandler := &handlers.PharmacistHandler{PharmacistService: pharmacistService}
	prescriptionHandler := &handlers.PrescriptionHandler{PrescriptionService: prescriptionService}

	handlerBundle := handlers.NewHandlerBundle(
		authHandler,
		doctorHandler,
		patientHandler,
		pharmacistHandler,
		prescriptionHandler,
	)

	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker.
	cron.InitReminderWorker(bookingRepo)

	// Start the HTTP server.
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

	// Wait for an OS signal to gracefully shutdown.
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
